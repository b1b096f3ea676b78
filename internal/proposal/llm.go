package proposal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/logger"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

const (
	llmMaxRetries    = 3
	llmRetryBaseWait = time.Second
)

// isRetryableStatus mirrors the ESI client's retry classification: server
// errors and rate limiting are worth retrying, client errors are not.
func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// LLM is the network-backed Generator of spec §4.M: it POSTs a structured
// prompt to an HTTP completion endpoint and strictly parses the JSON
// response, retrying transient failures with exponential backoff before
// the caller falls back to Deterministic.
type LLM struct {
	http     *http.Client
	endpoint string
	apiKey   string
	validate *validator.Validate
}

// NewLLM constructs an LLM-backed Generator against endpoint, authenticated
// with apiKey via a bearer header.
func NewLLM(endpoint, apiKey string, timeout time.Duration) *LLM {
	return &LLM{
		http:     &http.Client{Timeout: timeout},
		endpoint: endpoint,
		apiKey:   apiKey,
		validate: validator.New(),
	}
}

type intakeRequestPayload struct {
	RawText       string `json:"raw_text"`
	PolicySummary string `json:"policy_summary"`
	Task          string `json:"task"`
}

type proposeRequestPayload struct {
	Request       *model.Request          `json:"request"`
	VendorContext VendorContext           `json:"vendor_context"`
	Strategy      string                  `json:"strategy"`
	Bundle        model.OfferComponents   `json:"bundle"`
	Round         int                     `json:"round"`
	Task          string                  `json:"task"`
}

type intakeResponsePayload struct {
	Request        *model.Request           `json:"request"`
	Clarifications []ClarificationQuestion  `json:"clarifications"`
}

func (g *LLM) Intake(ctx context.Context, rawText, policySummary string) (IntakeResult, error) {
	var out intakeResponsePayload
	err := g.callWithRetry(ctx, "intake", intakeRequestPayload{
		RawText:       rawText,
		PolicySummary: policySummary,
		Task:          "intake",
	}, &out)
	if err != nil {
		return IntakeResult{}, err
	}

	if out.Request != nil {
		if verr := g.validate.Struct(out.Request); verr != nil {
			return IntakeResult{}, fmt.Errorf("proposal: llm intake response failed schema validation: %w", verr)
		}
	}
	return IntakeResult{Request: out.Request, Clarifications: out.Clarifications}, nil
}

func (g *LLM) Propose(ctx context.Context, req *model.Request, vendorCtx VendorContext, strategy string, bundle model.OfferComponents, round int) (model.NegotiationMessage, error) {
	var out model.NegotiationMessage
	err := g.callWithRetry(ctx, "propose", proposeRequestPayload{
		Request:       req,
		VendorContext: vendorCtx,
		Strategy:      strategy,
		Bundle:        bundle,
		Round:         round,
		Task:          "propose",
	}, &out)
	if err != nil {
		return model.NegotiationMessage{}, err
	}
	if verr := g.validate.Struct(&out); verr != nil {
		return model.NegotiationMessage{}, fmt.Errorf("proposal: llm propose response failed schema validation: %w", verr)
	}
	return out, nil
}

// callWithRetry POSTs payload as JSON and strictly decodes the response
// into out, retrying transient (429/5xx) failures with exponential
// backoff: 1s, 2s, 4s.
func (g *LLM) callWithRetry(ctx context.Context, label string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("proposal: marshal %s request: %w", label, err)
	}

	var lastErr error
	for attempt := 0; attempt <= llmMaxRetries; attempt++ {
		if attempt > 0 {
			wait := llmRetryBaseWait * time.Duration(1<<(attempt-1))
			logger.Warn("PROPOSAL", fmt.Sprintf("%s retry %d/%d after %s: %v", label, attempt, llmMaxRetries, wait, lastErr))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("proposal: build %s request: %w", label, err)
		}
		req.Header.Set("Content-Type", "application/json")
		if g.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+g.apiKey)
		}

		resp, err := g.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("proposal: %s returned HTTP %d", label, resp.StatusCode)
				resp.Body.Close()
				continue
			}
			resp.Body.Close()
			return fmt.Errorf("proposal: %s returned non-retryable HTTP %d", label, resp.StatusCode)
		}

		dec := json.NewDecoder(resp.Body)
		dec.DisallowUnknownFields()
		decErr := dec.Decode(out)
		resp.Body.Close()
		if decErr != nil {
			lastErr = fmt.Errorf("proposal: strict-decode %s response: %w", label, decErr)
			continue
		}
		return nil
	}
	return fmt.Errorf("proposal: %s exhausted %d retries: %w", label, llmMaxRetries, lastErr)
}
