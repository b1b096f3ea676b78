// Package pipeline implements the top-level orchestrator of spec §4.L:
// intake, shortlist, per-vendor negotiation fan-out, and bundle
// presentation.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/audit"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/buyer"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/clockutil"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/compliance"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/config"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/errkind"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/intake"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/logger"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/matcher"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/memory"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/policy"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/proposal"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/retrieval"
)

const defaultTopN = 5

// featureFloor is spec §4.L step 3's minimum feature score for shortlisting.
const featureFloor = 0.3

// Pipeline bundles the collaborators a single run needs. One Pipeline is
// constructed per host process and reused across runs.
type Pipeline struct {
	Config    *config.Config
	Generator proposal.Generator
	Fallback  proposal.Generator
	Vendors   []*model.VendorProfile
	Audit     audit.AuditSink
	Memory    memory.MemorySink
	Clock     clockutil.Clock
	// Retrieval indexes finalized negotiation memories by scenario tag
	// across every Run call on this Pipeline (§4.K). Nil disables it.
	Retrieval *retrieval.Service
}

// ShortlistDiagnostics records why each seed vendor did or didn't make the
// shortlist (a supplement over the base spec's silent filtering).
type ShortlistDiagnostics struct {
	TotalSeedVendors int      `json:"total_seed_vendors"`
	Shortlisted      int      `json:"shortlisted"`
	ExcludedCategory int      `json:"excluded_category_mismatch"`
	ExcludedFeature  int      `json:"excluded_feature_floor"`
	ExcludedCompliance int    `json:"excluded_compliance_block"`
	Notes            []string `json:"notes,omitempty"`
}

// VendorBundlePresentation is one labeled slot in PipelineResult.Bundles.
type VendorBundlePresentation struct {
	OfferID  string   `json:"offer_id"`
	VendorID string   `json:"vendor_id"`
	Bullets  []string `json:"bullets"`
}

// VendorResult is the per-vendor outcome surfaced to the host (§6 wire shape).
type VendorResult struct {
	VendorID         string   `json:"vendor_id"`
	VendorName       string   `json:"vendor_name"`
	FinalPrice       float64  `json:"final_price"`
	TermMonths       int      `json:"term_months"`
	PaymentTerms     string   `json:"payment_terms"`
	ComplianceStatus []string `json:"compliance_status"`
	Accepted         bool     `json:"accepted"`
	Outcome          string   `json:"outcome"`
	Rounds           int      `json:"rounds"`
}

// PipelineResult is the run's complete output (§6).
type PipelineResult struct {
	Request               *model.Request                      `json:"request"`
	ClarificationQuestions []proposal.ClarificationQuestion    `json:"clarification_questions,omitempty"`
	Shortlist             []model.VendorMatchSummary           `json:"shortlist"`
	Bundles               map[string]VendorBundlePresentation  `json:"bundles"`
	Vendors               []VendorResult                       `json:"vendors"`
	ShortlistDiagnostics  ShortlistDiagnostics                 `json:"shortlist_diagnostics"`
	AuditExport           audit.Export                         `json:"audit"`
}

// Run implements spec §4.L's run(): intake, validate, shortlist, fan out
// one buyer-agent negotiation per shortlisted vendor, then present bundles.
func (p *Pipeline) Run(ctx context.Context, rawText, policySummary string, topN int) (PipelineResult, error) {
	if topN <= 0 {
		topN = defaultTopN
	}

	intakeResult, err := p.Generator.Intake(ctx, rawText, policySummary)
	if err != nil {
		return PipelineResult{}, fmt.Errorf("pipeline: intake: %w", err)
	}
	if intakeResult.Request == nil {
		return PipelineResult{ClarificationQuestions: intakeResult.Clarifications}, nil
	}
	req := intakeResult.Request

	if err := req.Validate(); err != nil {
		return PipelineResult{}, errkind.New(errkind.Validation, true, err, "request %s failed its cross-field invariants", req.RequestID)
	}
	if err := intake.ValidateRequest(req); err != nil {
		return PipelineResult{}, errkind.New(errkind.Validation, true, err, "request %s failed boundary schema validation", req.RequestID)
	}
	if res := policy.ValidateRequest(req); !res.Valid {
		return PipelineResult{}, fmt.Errorf("pipeline: policy.validate_request: %v", res.Violations)
	}

	shortlist, diagnostics := p.shortlistVendors(req, topN)
	logger.Info("PIPELINE", fmt.Sprintf("shortlisted %d/%d vendors for request %s", diagnostics.Shortlisted, diagnostics.TotalSeedVendors, req.RequestID))

	results, err := p.negotiateAll(ctx, req, shortlist)
	if err != nil {
		return PipelineResult{}, fmt.Errorf("pipeline: negotiation fan-out: %w", err)
	}

	vendors, bundles := presentResults(req, shortlist, results)

	return PipelineResult{
		Request:              req,
		Shortlist:            shortlist,
		Bundles:              bundles,
		Vendors:              vendors,
		ShortlistDiagnostics: diagnostics,
		AuditExport:          p.Audit.Export(req.RequestID),
	}, nil
}

// shortlistVendors implements spec §4.L step 3: rank, filter, keep top N.
func (p *Pipeline) shortlistVendors(req *model.Request, topN int) ([]model.VendorMatchSummary, ShortlistDiagnostics) {
	diag := ShortlistDiagnostics{TotalSeedVendors: len(p.Vendors)}
	budgetPerUnit := req.BudgetPerUnit()

	var ranked []model.VendorMatchSummary
	for _, vendor := range p.Vendors {
		summary := matcher.EvaluateVendorAgainstRequest(req, vendor, budgetPerUnit, req.NiceToHaves)
		switch {
		case !summary.CategoryMatch:
			diag.ExcludedCategory++
			continue
		case summary.ComplianceBlock:
			diag.ExcludedCompliance++
			continue
		case summary.FeatureScore < featureFloor:
			diag.ExcludedFeature++
			continue
		}
		ranked = append(ranked, summary)
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Composite > ranked[j].Composite })
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	diag.Shortlisted = len(ranked)
	if diag.Shortlisted == 0 {
		diag.Notes = append(diag.Notes, "no vendor passed the category/compliance/feature-floor gate")
	}
	return ranked, diag
}

// negotiateAll implements spec §5's fan-out/fan-in: one worker per
// shortlisted vendor, bounded concurrency, first-error propagation via
// errgroup.
func (p *Pipeline) negotiateAll(ctx context.Context, req *model.Request, shortlist []model.VendorMatchSummary) ([]buyer.Result, error) {
	results := make([]buyer.Result, len(shortlist))
	vendorByID := make(map[string]*model.VendorProfile, len(p.Vendors))
	for _, v := range p.Vendors {
		vendorByID[v.VendorID] = v
	}

	limit := p.Config.MaxConcurrentNegotiations
	if limit <= 0 || limit > len(shortlist) {
		limit = len(shortlist)
	}

	g, gCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	deps := buyer.Deps{
		Config:    p.Config,
		Generator: p.Generator,
		Fallback:  p.Fallback,
		Audit:     p.Audit,
		Memory:    p.Memory,
		Clock:     p.Clock,
		Retrieval: p.Retrieval,
	}

	for i, summary := range shortlist {
		i, summary := i, summary
		vendor, ok := vendorByID[summary.VendorID]
		if !ok {
			continue
		}
		g.Go(func() error {
			competing := competingOffersExcept(req, shortlist, vendorByID, summary.VendorID)
			results[i] = buyer.NegotiateVendor(gCtx, deps, req, vendor, summary, competing)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		kind := errkind.Cancelled
		if errors.Is(err, context.DeadlineExceeded) {
			kind = errkind.Timeout
		}
		return nil, errkind.New(kind, true, err, "negotiation run interrupted for request %s", req.RequestID)
	}
	return results, nil
}

// competingOffersExcept implements the state.competing_offers input (§4.G):
// every other shortlisted vendor's list price at the request quantity,
// used by the strategy selector's competitor-pressure precedence.
func competingOffersExcept(req *model.Request, shortlist []model.VendorMatchSummary, vendorByID map[string]*model.VendorProfile, excludeVendorID string) []model.CompetingOffer {
	var offers []model.CompetingOffer
	for _, s := range shortlist {
		if s.VendorID == excludeVendorID {
			continue
		}
		vendor, ok := vendorByID[s.VendorID]
		if !ok {
			continue
		}
		offers = append(offers, model.CompetingOffer{VendorID: s.VendorID, UnitPrice: vendor.ListPrice(req.Quantity)})
	}
	return offers
}

// presentResults implements spec §4.L step 5's bundle presentation:
// best_value (highest buyer utility), lowest_cost (lowest unit price),
// lowest_risk (lowest vendor risk_level), with the vendor list sorted by
// the §5 stable-output rule. Slots are not deduplicated: an accepted
// vendor that wins several slots fills each of them.
func presentResults(req *model.Request, shortlist []model.VendorMatchSummary, results []buyer.Result) ([]VendorResult, map[string]VendorBundlePresentation) {
	vendorByID := make(map[string]model.VendorMatchSummary, len(shortlist))
	for _, s := range shortlist {
		vendorByID[s.VendorID] = s
	}

	vendors := make([]VendorResult, 0, len(results))
	var accepted []buyer.Result
	for _, r := range results {
		if r.State == nil {
			continue
		}
		vr := VendorResult{
			VendorID: r.VendorID,
			Accepted: r.Accepted,
			Outcome:  string(r.State.FSMState),
			Rounds:   r.State.Round,
		}
		if r.State.BestOffer != nil {
			vr.FinalPrice = r.State.BestOffer.Components.UnitPrice
			vr.TermMonths = r.State.BestOffer.Components.TermMonths
			vr.PaymentTerms = string(r.State.BestOffer.Components.PaymentTerms)
		}
		assessment := compliance.AssessVendor(req, r.State.Vendor)
		for _, s := range assessment.Statuses {
			if s.Compliant {
				vr.ComplianceStatus = append(vr.ComplianceStatus, s.Framework)
			}
		}
		vendors = append(vendors, vr)
		if r.Accepted {
			accepted = append(accepted, r)
		}
	}

	sort.SliceStable(vendors, func(i, j int) bool {
		return stableOfferLess(vendors[i], vendors[j])
	})

	bundles := make(map[string]VendorBundlePresentation)
	if len(accepted) == 0 {
		return vendors, bundles
	}

	bestValue := accepted[0]
	lowestCost := accepted[0]
	lowestRisk := accepted[0]
	for _, r := range accepted[1:] {
		if r.State.BestOffer.Score.Utility > bestValue.State.BestOffer.Score.Utility {
			bestValue = r
		}
		if r.State.BestOffer.Components.UnitPrice < lowestCost.State.BestOffer.Components.UnitPrice {
			lowestCost = r
		}
		if riskRank(r.State.Vendor.RiskLevel) < riskRank(lowestRisk.State.Vendor.RiskLevel) {
			lowestRisk = r
		}
	}

	bundles["best_value"] = bundlePresentation(bestValue, vendorByID)
	bundles["lowest_cost"] = bundlePresentation(lowestCost, vendorByID)
	bundles["lowest_risk"] = bundlePresentation(lowestRisk, vendorByID)
	return vendors, bundles
}

func bundlePresentation(r buyer.Result, vendorByID map[string]model.VendorMatchSummary) VendorBundlePresentation {
	offer := r.State.BestOffer
	bullets := []string{
		fmt.Sprintf("unit_price %.2f over %d months, %s", offer.Components.UnitPrice, offer.Components.TermMonths, offer.Components.PaymentTerms),
		fmt.Sprintf("closed in %d rounds", r.State.Round),
	}
	if summary, ok := vendorByID[r.VendorID]; ok && len(summary.Reasons) > 0 {
		bullets = append(bullets, summary.Reasons[0])
	}
	return VendorBundlePresentation{
		OfferID:  offer.OfferID,
		VendorID: r.VendorID,
		Bullets:  bullets,
	}
}

func riskRank(level model.RiskLevel) int {
	switch level {
	case model.RiskLow:
		return 0
	case model.RiskMedium:
		return 1
	default:
		return 2
	}
}

func stableOfferLess(a, b VendorResult) bool {
	if a.FinalPrice != b.FinalPrice {
		return a.FinalPrice < b.FinalPrice
	}
	return a.VendorID < b.VendorID
}
