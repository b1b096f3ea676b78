// Package logger provides tag-prefixed console logging for procur's
// pipeline and negotiation stages. Output is colorized only when stdout
// is a terminal.
package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

var colorEnabled = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

const (
	colorReset  = "\033[0m"
	colorBlue   = "\033[34m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

func paint(color, s string) string {
	if !colorEnabled {
		return s
	}
	return color + s + colorReset
}

func emit(tagColor, tag, msg string) {
	ts := time.Now().Format("15:04:05")
	fmt.Printf("%s %s %s\n", paint(colorGray, ts), paint(tagColor, "["+tag+"]"), msg)
}

// Info logs a neutral status line under tag.
func Info(tag, msg string) { emit(colorBlue, tag, msg) }

// Success logs a positive-outcome line under tag.
func Success(tag, msg string) { emit(colorGreen, tag, msg) }

// Warn logs a recoverable-problem line under tag.
func Warn(tag, msg string) { emit(colorYellow, tag, msg) }

// Error logs a failure line under tag.
func Error(tag, msg string) { emit(colorRed, tag, msg) }

// Banner prints the startup banner for the given version string.
func Banner(version string) {
	label := "procur"
	if version != "" {
		label = fmt.Sprintf("procur %s", version)
	}
	fmt.Println(paint(colorBold, label))
	fmt.Println(paint(colorGray, "machine-to-machine procurement negotiation engine"))
}

// Section prints a visual section divider with the given title.
func Section(title string) {
	fmt.Println()
	fmt.Println(paint(colorBold, "== "+title+" =="))
}

// Stats prints a single key/value diagnostic line.
func Stats(key string, value interface{}) {
	fmt.Printf("  %s %v\n", paint(colorGray, key+":"), value)
}
