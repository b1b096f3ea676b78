package buyer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/audit"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/clockutil"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/compliance"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/config"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/errkind"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/guardrail"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/kernel"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/logger"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/memory"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/negotiation"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/policy"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/proposal"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/retrieval"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/seller"
)

// proposeRetries is how many times a round retries the primary Generator
// before falling back to the deterministic one (§4.H step 4, §7).
const proposeRetries = 2

// Deps bundles the collaborators one NegotiateVendor call needs. The host
// constructs one Deps per run and shares it across every vendor worker.
type Deps struct {
	Config    *config.Config
	Generator proposal.Generator
	Fallback  proposal.Generator
	Audit     audit.AuditSink
	Memory    memory.MemorySink
	Clock     clockutil.Clock
	// Retrieval is optional: when set, a negotiation is seeded with
	// exemplars from past runs and, on finalize, registers its own
	// memory for future retrieval (§4.K).
	Retrieval *retrieval.Service
}

// Result is what a completed negotiation returns to the pipeline: the
// final state plus the best offer reached, if any.
type Result struct {
	RequestID string
	VendorID  string
	State     *model.VendorNegotiationState
	Accepted  bool
}

// NegotiateVendor runs one (request, vendor) negotiation to completion
// (§4.H): a ZOPA gate, then a round-bounded loop of buyer proposal, seller
// counter, and close evaluation, finalizing to accepted/dropped/stalemate.
func NegotiateVendor(ctx context.Context, deps Deps, req *model.Request, vendor *model.VendorProfile, matchSummary model.VendorMatchSummary, competingOffers []model.CompetingOffer) Result {
	cfg := deps.Config
	state := newState(req, vendor, matchSummary, competingOffers, cfg)
	listPrice := vendor.ListPrice(req.Quantity)
	tags := memory.ScenarioTags(req, vendor.Category, memory.BudgetTightness(req.BudgetMax, listPrice*float64(req.Quantity)))

	if !hasZOPA(req, vendor) {
		state.FSMState = model.FSMNoZOPA
		state.Active = false
		state.OutcomeReason = "no feasible price: buyer budget below seller floor and best concession price"
		deps.Audit.RecordEvent(model.Event{
			Name:      "vendor.no_zopa",
			RequestID: req.RequestID,
			VendorID:  vendor.VendorID,
			Timestamp: deps.Clock.Now(),
		})
		deps.Memory.Finalize(req.RequestID, vendor.VendorID, model.OutcomeDropped, 0)
		finalizeMemory(deps, req, vendor, tags)
		return Result{RequestID: req.RequestID, VendorID: vendor.VendorID, State: state, Accepted: false}
	}

	state.FSMState = model.FSMNegotiating
	assessment := compliance.AssessVendor(req, vendor)

	var exemplars []retrieval.Exemplar
	if deps.Retrieval != nil {
		exemplars = deps.Retrieval.Retrieve(tags, 3)
	}

	maxRounds := state.Plan.ExchangePolicy.MaxRounds

	for state.Round < maxRounds {
		state.Round++

		strategy, strategyReason := negotiation.SelectBuyerStrategy(state, cfg.MaxStalledRounds)
		state.Plan.CurrentStrategy = strategy

		bundles := candidateBundles(state, req, strategy, cfg, deps.Clock)
		buyerCandidate, rejectedBuyer := chooseBest(bundles, func(model.OfferComponents) model.Lever { return primaryLeverFor(strategy) }, req, vendor, matchSummary, cfg)

		buyerOffer := buyerCandidate.Offer
		var exchangeNote string
		if prevBuyer, ok := state.LastBuyerOffer(); ok {
			buyerOffer, exchangeNote = negotiation.EnforceExchangeRequirements(prevBuyer, buyerOffer, vendor, state.Plan.ExchangePolicy, cfg.DiscountRate)
		}
		buyerOffer = normalizeOffer(buyerOffer, req)

		vendorCtx := proposal.VendorContext{
			Vendor:        vendor,
			MatchSummary:  matchSummary,
			OpponentModel: state.OpponentModel,
			History:       state.History,
			Exemplars:     exemplars,
		}
		buyerMessage, genErr := proposeWithFallback(ctx, deps, req, vendorCtx, string(strategy), buyerOffer, state.Round)
		if genErr == nil && buyerMessage.Proposal.UnitPrice > 0 {
			buyerOffer = buyerMessage.Proposal
		}

		buyerPolicy := policy.ValidateOffer(req, &buyerOffer, vendor, true)
		buyerAlerts := guardrail.RunAll(vendor, &buyerOffer, cfg)
		if !buyerPolicy.Valid || hasBlockingAlert(buyerAlerts) {
			buyerOffer = buyerCandidate.Offer
			buyerPolicy = policy.ValidateOffer(req, &buyerOffer, vendor, true)
			buyerAlerts = guardrail.RunAll(vendor, &buyerOffer, cfg)
		}

		buyerTCO, tcoErr := kernel.TCO(kernel.TCOInput{Offer: buyerOffer})
		if tcoErr != nil {
			return abortOnRoundingDrift(deps, req, vendor, state, tags, tcoErr)
		}
		buyerUtility := kernel.BuyerUtility(kernel.BuyerUtilityInput{
			UnitPrice:       buyerOffer.UnitPrice,
			BudgetPerUnit:   req.BudgetPerUnit(),
			FeatureScore:    matchSummary.FeatureScore,
			ComplianceScore: matchSummary.ComplianceScore,
			SLAScore:        matchSummary.SLAScore,
			Weights:         cfg.ScoringWeights,
		})

		buyerRecord := model.Offer{
			OfferID:    uuid.NewString(),
			RequestID:  req.RequestID,
			VendorID:   vendor.VendorID,
			Round:      state.Round,
			Actor:      "buyer",
			Components: buyerOffer,
			Score: model.OfferScore{
				TCO:     buyerTCO,
				Utility: buyerUtility,
			},
			Confidence: negotiation.AcceptanceProbability(priceFit(buyerOffer.UnitPrice, req.BudgetPerUnit()), 0.5, buyerUtility, state.Round),
		}
		state.History = append(state.History, buyerRecord)

		buyerRationale := buyerMessage.JustificationBullets
		if exchangeNote != "" {
			buyerRationale = append(append([]string{}, buyerRationale...), exchangeNote)
			state.ConcessionNotes = append(state.ConcessionNotes, fmt.Sprintf("round %d buyer: %s", state.Round, exchangeNote))
		}
		recordMove(deps, req, vendor, model.ActorBuyer, state.Round, buyerOffer, primaryLeverFor(strategy), buyerRationale, buyerUtility, 0, buyerTCO, model.DecisionCounter, buyerPolicy, buyerAlerts, assessment)
		deps.Memory.RecordRound(req.RequestID, vendor.VendorID, model.RoundMemory{
			RequestID:   req.RequestID,
			VendorID:    vendor.VendorID,
			RoundNumber: state.Round,
			Timestamp:   deps.Clock.Now(),
			Actor:       model.ActorBuyer,
			Strategy:    string(strategy) + ": " + strategyReason,
			Selected:    buyerCandidate,
			Rejected:    rejectedBuyer,
			Decision:    model.DecisionCounter,
		})

		sellerStrategy := seller.DetermineStrategy(state, buyerOffer)
		sellerOffer, sellerViolations, sellerAlerts := seller.GenerateSellerCounter(state, buyerOffer, sellerStrategy, req, cfg)
		sellerOffer, sellerExchangeNote := negotiation.EnforceExchangeRequirements(buyerOffer, sellerOffer, vendor, state.Plan.ExchangePolicy, cfg.DiscountRate)

		sellerTCO, tcoErr := kernel.TCO(kernel.TCOInput{Offer: sellerOffer})
		if tcoErr != nil {
			return abortOnRoundingDrift(deps, req, vendor, state, tags, tcoErr)
		}
		sellerUtility := kernel.SellerUtility(kernel.SellerUtilityInput{
			Price:              sellerOffer.UnitPrice,
			Floor:              vendor.Guardrails.PriceFloor,
			List:               listPrice,
			MinAcceptThreshold: cfg.SellerAcceptThreshold,
		})
		sellerBuyerUtility := kernel.BuyerUtility(kernel.BuyerUtilityInput{
			UnitPrice:       sellerOffer.UnitPrice,
			BudgetPerUnit:   req.BudgetPerUnit(),
			FeatureScore:    matchSummary.FeatureScore,
			ComplianceScore: matchSummary.ComplianceScore,
			SLAScore:        matchSummary.SLAScore,
			Weights:         cfg.ScoringWeights,
		})

		sellerRecord := model.Offer{
			OfferID:    uuid.NewString(),
			RequestID:  req.RequestID,
			VendorID:   vendor.VendorID,
			Round:      state.Round,
			Actor:      "seller",
			Components: sellerOffer,
			Score: model.OfferScore{
				TCO:     sellerTCO,
				Utility: sellerBuyerUtility,
			},
			Confidence: negotiation.AcceptanceProbability(priceFit(sellerOffer.UnitPrice, req.BudgetPerUnit()), 0.5, sellerBuyerUtility, state.Round),
		}

		prevSeller, hadPrevSeller := state.LastSellerOffer()
		state.History = append(state.History, sellerRecord)
		negotiation.UpdateOpponentModel(&state.OpponentModel, prevSeller, hadPrevSeller, sellerOffer)

		sellerPolicyViolations := model.NewPolicyResult(sellerViolations)
		sellerRationale := []string{fmt.Sprintf("seller strategy %s", sellerStrategy)}
		if sellerExchangeNote != "" {
			sellerRationale = append(sellerRationale, sellerExchangeNote)
			state.ConcessionNotes = append(state.ConcessionNotes, fmt.Sprintf("round %d seller: %s", state.Round, sellerExchangeNote))
		}
		recordMove(deps, req, vendor, model.ActorSeller, state.Round, sellerOffer, primaryLeverFor(sellerStrategyLever(sellerStrategy)), sellerRationale, sellerBuyerUtility, sellerUtility, sellerTCO, model.DecisionCounter, sellerPolicyViolations, sellerAlerts, assessment)

		sellerCandidateEval := model.CandidateEvaluation{
			Offer:         sellerOffer,
			PrimaryLever:  model.LeverPrice,
			TCO:           sellerTCO,
			BuyerUtility:  sellerBuyerUtility,
			SellerUtility: &sellerUtility,
			Valid:         sellerPolicyViolations.Valid,
		}
		deps.Memory.RecordRound(req.RequestID, vendor.VendorID, model.RoundMemory{
			RequestID:   req.RequestID,
			VendorID:    vendor.VendorID,
			RoundNumber: state.Round,
			Timestamp:   deps.Clock.Now(),
			Actor:       model.ActorSeller,
			Strategy:    string(sellerStrategy),
			Selected:    sellerCandidateEval,
			Decision:    model.DecisionCounter,
			DeltaUtility: sellerBuyerUtility - buyerUtility,
			DeltaTCO:     buyerTCO - sellerTCO,
		})

		if negotiation.IsStalemate(state) {
			state.StalemateRounds++
			state.ConcessionIndex++
		} else {
			state.StalemateRounds = 0
		}

		closeInput := negotiation.CloseDecisionInput{
			Request:               req,
			Vendor:                vendor,
			Candidate:             sellerOffer,
			TCO:                   sellerTCO,
			BuyerUtility:          sellerBuyerUtility,
			SellerUtility:         sellerUtility,
			BuyerThreshold:        cfg.BuyerAcceptThreshold,
			SellerThreshold:       cfg.SellerAcceptThreshold,
			LastTwoOpponentOffers: lastTwoSellerOffers(state),
			FinalizeGapAbs:        5.0,
			FinalizeGapPct:        0.01,
		}

		if negotiation.ShouldCloseDeal(closeInput) {
			state.Active = false
			state.FSMState = model.FSMAccepted
			state.History[len(state.History)-1].Accepted = true
			state.BestOffer = &state.History[len(state.History)-1]
			savings := (listPrice - sellerOffer.UnitPrice) * float64(req.Quantity)
			if savings < 0 {
				savings = 0
			}
			deps.Memory.Finalize(req.RequestID, vendor.VendorID, model.OutcomeAccepted, savings)
			finalizeMemory(deps, req, vendor, tags)
			deps.Audit.RecordEvent(model.Event{
				Name:      "vendor.accepted",
				RequestID: req.RequestID,
				VendorID:  vendor.VendorID,
				Timestamp: deps.Clock.Now(),
				Fields:    map[string]interface{}{"round": state.Round, "unit_price": sellerOffer.UnitPrice},
			})
			logger.Success("BUYER", fmt.Sprintf("vendor %s accepted at round %d: %.2f/unit", vendor.VendorID, state.Round, sellerOffer.UnitPrice))
			return Result{RequestID: req.RequestID, VendorID: vendor.VendorID, State: state, Accepted: true}
		}

		if state.ConcessionIndex >= len(concessionLadder) && state.StalemateRounds >= cfg.MaxStalledRounds {
			state.Active = false
			state.FSMState = model.FSMDropped
			state.OutcomeReason = "concession ladder exhausted under sustained stalemate"
			deps.Memory.Finalize(req.RequestID, vendor.VendorID, model.OutcomeStalemate, 0)
			finalizeMemory(deps, req, vendor, tags)
			deps.Audit.RecordEvent(model.Event{
				Name:      "vendor.dropped",
				RequestID: req.RequestID,
				VendorID:  vendor.VendorID,
				Timestamp: deps.Clock.Now(),
				Fields:    map[string]interface{}{"reason": state.OutcomeReason, "round": state.Round},
			})
			logger.Warn("BUYER", fmt.Sprintf("vendor %s dropped at round %d: ladder exhausted", vendor.VendorID, state.Round))
			return Result{RequestID: req.RequestID, VendorID: vendor.VendorID, State: state, Accepted: false}
		}
	}

	state.Active = false
	state.FSMState = model.FSMDropped
	state.OutcomeReason = "max rounds exhausted without agreement"
	deps.Memory.Finalize(req.RequestID, vendor.VendorID, model.OutcomeStalemate, 0)
	finalizeMemory(deps, req, vendor, tags)
	deps.Audit.RecordEvent(model.Event{
		Name:      "vendor.max_rounds_exhausted",
		RequestID: req.RequestID,
		VendorID:  vendor.VendorID,
		Timestamp: deps.Clock.Now(),
	})
	logger.Warn("BUYER", fmt.Sprintf("vendor %s exhausted %d rounds without agreement", vendor.VendorID, maxRounds))
	return Result{RequestID: req.RequestID, VendorID: vendor.VendorID, State: state, Accepted: false}
}

// finalizeMemory tags and registers a completed negotiation so future
// requests with similar scenario tags can retrieve it as an exemplar
// (§4.K). Retrieval is optional; deps.Retrieval may be nil.
func finalizeMemory(deps Deps, req *model.Request, vendor *model.VendorProfile, tags []string) {
	deps.Memory.SetScenarioTags(req.RequestID, vendor.VendorID, tags)
	if deps.Retrieval == nil {
		return
	}
	if mem, ok := deps.Memory.Get(req.RequestID, vendor.VendorID); ok {
		deps.Retrieval.RegisterMemory(mem)
	}
}

// abortOnRoundingDrift finalizes a vendor negotiation as dropped when the
// kernel's TCO invariant check fails (§7, §8 TCO-Rounding): a rounding
// drift is treated as fatal to that vendor rather than silently ignored.
func abortOnRoundingDrift(deps Deps, req *model.Request, vendor *model.VendorProfile, state *model.VendorNegotiationState, tags []string, cause error) Result {
	kerr := errkind.New(errkind.RoundingDrift, true, cause, "TCO invariant breach for vendor %s at round %d", vendor.VendorID, state.Round)
	state.Active = false
	state.FSMState = model.FSMDropped
	state.OutcomeReason = kerr.Error()
	deps.Memory.Finalize(req.RequestID, vendor.VendorID, model.OutcomeDropped, 0)
	finalizeMemory(deps, req, vendor, tags)
	deps.Audit.RecordEvent(model.Event{
		Name:      "vendor.rounding_drift",
		RequestID: req.RequestID,
		VendorID:  vendor.VendorID,
		Timestamp: deps.Clock.Now(),
		Fields:    map[string]interface{}{"reason": kerr.Error(), "round": state.Round},
	})
	logger.Error("BUYER", fmt.Sprintf("vendor %s dropped at round %d: %v", vendor.VendorID, state.Round, kerr))
	return Result{RequestID: req.RequestID, VendorID: vendor.VendorID, State: state, Accepted: false}
}

// proposeWithFallback calls the primary Generator up to proposeRetries+1
// times (one attempt plus proposeRetries retries), falling back to
// deps.Fallback on exhaustion (§4.H step 4, §7).
func proposeWithFallback(ctx context.Context, deps Deps, req *model.Request, vendorCtx proposal.VendorContext, strategy string, bundle model.OfferComponents, round int) (model.NegotiationMessage, error) {
	var lastErr error
	for attempt := 0; attempt <= proposeRetries; attempt++ {
		msg, err := deps.Generator.Propose(ctx, req, vendorCtx, strategy, bundle, round)
		if err == nil {
			return msg, nil
		}
		lastErr = err
		logger.Warn("BUYER", fmt.Sprintf("propose attempt %d/%d failed: %v", attempt+1, proposeRetries+1, err))
	}
	if deps.Fallback != nil {
		msg, err := deps.Fallback.Propose(ctx, req, vendorCtx, strategy, bundle, round)
		if err == nil {
			return msg, nil
		}
		lastErr = err
	}
	return model.NegotiationMessage{
		Actor:                model.MessageActorBuyer,
		Round:                round,
		Proposal:             bundle,
		JustificationBullets: proposal.SyntheticRationale(bundle, strategy),
		NextStepHint:         model.NextStepCounter,
	}, errkind.New(errkind.IntegrationFailure, false, lastErr, "generator exhausted after %d attempt(s) for round %d", proposeRetries+1, round)
}

func recordMove(deps Deps, req *model.Request, vendor *model.VendorProfile, actor model.Actor, round int, offer model.OfferComponents, lever model.Lever, rationale []string, buyerUtility, sellerUtility, tco float64, decision model.Decision, policyResult model.PolicyResult, alerts []model.Alert, assessment model.ComplianceAssessment) {
	var policyNotes, guardrailNotes, complianceNotes []string
	for _, v := range policyResult.Violations {
		policyNotes = append(policyNotes, v.Message)
	}
	for _, a := range alerts {
		guardrailNotes = append(guardrailNotes, a.Message)
	}
	for _, s := range assessment.Statuses {
		if !s.Compliant {
			complianceNotes = append(complianceNotes, fmt.Sprintf("%s not demonstrated", s.Framework))
		}
	}

	deps.Audit.RecordMove(req.RequestID, vendor.VendorID, model.MoveLog{
		Actor:           actor,
		RoundNumber:     round,
		Offer:           offer,
		Lever:           lever,
		Rationale:       rationale,
		BuyerUtility:    buyerUtility,
		SellerUtility:   sellerUtility,
		TCO:             tco,
		Decision:        decision,
		Timestamp:       deps.Clock.Now(),
		PolicyNotes:     policyNotes,
		GuardrailNotes:  guardrailNotes,
		ComplianceNotes: complianceNotes,
	})
}

func normalizeOffer(offer model.OfferComponents, req *model.Request) model.OfferComponents {
	out := offer
	out.Quantity = req.Quantity
	if out.Currency == "" {
		out.Currency = req.Currency
	}
	return out
}

func hasBlockingAlert(alerts []model.Alert) bool {
	for _, a := range alerts {
		if a.Blocking {
			return true
		}
	}
	return false
}

func priceFit(unitPrice, budgetPerUnit float64) float64 {
	if budgetPerUnit <= 0 {
		return 0
	}
	if unitPrice <= budgetPerUnit {
		return 1
	}
	fit := 1 - (unitPrice-budgetPerUnit)/budgetPerUnit
	if fit < 0 {
		return 0
	}
	return fit
}

func lastTwoSellerOffers(state *model.VendorNegotiationState) []model.OfferComponents {
	var sellerOffers []model.OfferComponents
	for _, o := range state.History {
		if o.Actor == "seller" {
			sellerOffers = append(sellerOffers, o.Components)
		}
	}
	if len(sellerOffers) < 2 {
		return nil
	}
	return sellerOffers[len(sellerOffers)-2:]
}

// primaryLeverFor maps a buyer strategy onto the lever it primarily moves,
// for move-log labeling.
func primaryLeverFor(strategy model.BuyerStrategy) model.Lever {
	switch strategy {
	case model.StrategyTermTrade:
		return model.LeverTerm
	case model.StrategyPaymentTrade:
		return model.LeverPayment
	case model.StrategyValueAdd:
		return model.LeverValue
	default:
		return model.LeverPrice
	}
}

func sellerStrategyLever(strategy model.SellerStrategy) model.BuyerStrategy {
	switch strategy {
	case model.StrategyTermValue:
		return model.StrategyTermTrade
	case model.StrategyPaymentPremium:
		return model.StrategyPaymentTrade
	default:
		return model.StrategyPriceAnchor
	}
}
