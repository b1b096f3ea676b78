package negotiation

import (
	"testing"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

func TestSelectBuyerStrategyRoundOne(t *testing.T) {
	state := &model.VendorNegotiationState{Round: 1}
	strategy, _ := SelectBuyerStrategy(state, 3)
	if strategy != model.StrategyPriceAnchor {
		t.Errorf("strategy = %v, want PRICE_ANCHOR", strategy)
	}
}

func TestSelectBuyerStrategyCompetitorPressure(t *testing.T) {
	state := &model.VendorNegotiationState{
		Round: 3,
		History: []model.Offer{
			{Actor: "seller", Components: model.OfferComponents{UnitPrice: 1000}},
		},
		CompetingOffers: []model.CompetingOffer{{VendorID: "v2", UnitPrice: 900}},
	}
	strategy, reason := SelectBuyerStrategy(state, 3)
	if strategy != model.StrategyPricePressure {
		t.Errorf("strategy = %v, want PRICE_PRESSURE, reason=%s", strategy, reason)
	}
}

func TestSelectBuyerStrategyStalemateLadder(t *testing.T) {
	state := &model.VendorNegotiationState{Round: 5, StalemateRounds: 3, ConcessionIndex: 0}
	strategy, _ := SelectBuyerStrategy(state, 3)
	if strategy != model.StrategyTermTrade {
		t.Errorf("strategy = %v, want TERM_TRADE (ladder position 0)", strategy)
	}
}

func TestSelectBuyerStrategyRoundTwoNoPriceMove(t *testing.T) {
	state := &model.VendorNegotiationState{Round: 2}
	state.OpponentModel.ConsecutiveNoPriceMoves = 1
	strategy, _ := SelectBuyerStrategy(state, 3)
	if strategy != model.StrategyTermTrade {
		t.Errorf("strategy = %v, want TERM_TRADE", strategy)
	}
}

func TestIsStalemateRequiresEnoughHistory(t *testing.T) {
	state := &model.VendorNegotiationState{
		History: []model.Offer{
			{Actor: "buyer", Score: model.OfferScore{Utility: 0.5, TCO: 1000}},
		},
	}
	if IsStalemate(state) {
		t.Error("expected false with insufficient history")
	}
}

func TestIsStalemateDetectsFlatProgress(t *testing.T) {
	state := &model.VendorNegotiationState{
		History: []model.Offer{
			{Actor: "buyer", Score: model.OfferScore{Utility: 0.50, TCO: 10000}},
			{Actor: "buyer", Score: model.OfferScore{Utility: 0.505, TCO: 9980}},
			{Actor: "buyer", Score: model.OfferScore{Utility: 0.508, TCO: 9960}},
			{Actor: "buyer", Score: model.OfferScore{Utility: 0.509, TCO: 9950}},
		},
	}
	if !IsStalemate(state) {
		t.Error("expected stalemate on near-flat utility/TCO progress")
	}
}
