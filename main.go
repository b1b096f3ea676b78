package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/clockutil"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/config"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/logger"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/pipeline"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/proposal"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/retrieval"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/seedcatalog"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/store"
)

var version = "dev"

// loadDotEnv loads environment variables from a local .env file so that
// double-clicked binaries (without a shell) can still pick up overrides.
// Existing OS env vars are never overridden.
func loadDotEnv() {
	paths := []string{".env"}
	if exePath, err := os.Executable(); err == nil {
		if exeDir := filepath.Dir(exePath); exeDir != "" {
			paths = append(paths, filepath.Join(exeDir, ".env"))
		}
	}

	seen := make(map[string]bool)
	for _, p := range paths {
		if seen[p] {
			continue
		}
		seen[p] = true

		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		for _, line := range strings.Split(string(data), "\n") {
			l := strings.TrimSpace(line)
			if l == "" || strings.HasPrefix(l, "#") {
				continue
			}
			parts := strings.SplitN(l, "=", 2)
			if len(parts) != 2 {
				continue
			}
			key := strings.TrimSpace(parts[0])
			val := strings.TrimSpace(parts[1])
			if key != "" && os.Getenv(key) == "" {
				os.Setenv(key, val)
			}
		}
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func main() {
	loadDotEnv()

	requestPath := flag.String("request", "", "path to a raw request JSON/text file (default: read stdin)")
	policySummary := flag.String("policy", "default procurement policy", "free-text policy summary passed to intake")
	vendorCatalogPath := flag.String("vendors", "", "path to a vendor catalog JSON file (default: built-in seed catalog)")
	dbPath := flag.String("db", "", "path to the SQLite audit/memory database (default: ./procur.db)")
	topN := flag.Int("top-n", 5, "maximum number of vendors to shortlist and negotiate with")
	flag.Parse()

	logger.Banner(version)

	rawText, err := readRequestInput(*requestPath)
	if err != nil {
		logger.Error("MAIN", fmt.Sprintf("read request input: %v", err))
		os.Exit(1)
	}

	catalog, err := seedcatalog.Load(envOrDefault("PROCUR_VENDOR_CATALOG", *vendorCatalogPath))
	if err != nil {
		logger.Error("MAIN", fmt.Sprintf("load vendor catalog: %v", err))
		os.Exit(1)
	}

	clock := clockutil.System{}

	db, err := store.Open(envOrDefault("PROCUR_DB_PATH", *dbPath), clock)
	if err != nil {
		logger.Error("MAIN", fmt.Sprintf("open store: %v", err))
		os.Exit(1)
	}
	defer db.Close()

	generator := proposal.NewDeterministic()

	p := &pipeline.Pipeline{
		Config:    config.Default(),
		Generator: generator,
		Fallback:  generator,
		Vendors:   catalog.All(),
		Audit:     store.NewAuditSink(db),
		Memory:    store.NewMemoryStore(db),
		Clock:     clock,
		Retrieval: retrieval.NewService(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := p.Run(ctx, rawText, *policySummary, *topN)
	if err != nil {
		logger.Error("MAIN", fmt.Sprintf("pipeline run failed: %v", err))
		os.Exit(1)
	}

	if len(result.ClarificationQuestions) > 0 {
		logger.Info("MAIN", "intake needs clarification before negotiation can start")
	} else {
		logger.Success("MAIN", fmt.Sprintf("negotiated %d vendor(s) for request %s", len(result.Vendors), result.Request.RequestID))
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("MAIN", fmt.Sprintf("encode result: %v", err))
		os.Exit(1)
	}
	fmt.Println(string(encoded))
}

func readRequestInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
