package guardrail

import (
	"testing"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/config"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

func TestCheckCounterpartySkippedInSimulation(t *testing.T) {
	vendor := &model.VendorProfile{ContactEndpoints: model.ContactEndpoints{BankAccount: false}}
	if a := CheckCounterparty(vendor, config.RunModeSimulation); a != nil {
		t.Errorf("expected nil alert in simulation mode, got %+v", a)
	}
}

func TestCheckCounterpartyFlagsInProduction(t *testing.T) {
	vendor := &model.VendorProfile{VendorID: "v1", ContactEndpoints: model.ContactEndpoints{BankAccount: false}}
	a := CheckCounterparty(vendor, config.RunModeProduction)
	if a == nil || a.Code != CodeMissingBankVerification || a.Blocking {
		t.Errorf("expected non-blocking missing_bank_verification alert, got %+v", a)
	}
}

func TestCheckCounterpartyPassesWhenVerified(t *testing.T) {
	vendor := &model.VendorProfile{ContactEndpoints: model.ContactEndpoints{BankAccount: true}}
	if a := CheckCounterparty(vendor, config.RunModeProduction); a != nil {
		t.Errorf("expected nil, got %+v", a)
	}
}

func TestCheckPriceOutlierFlagsLargeDeviation(t *testing.T) {
	vendor := &model.VendorProfile{PriceTiers: map[int]float64{10: 1000}}
	offer := &model.OfferComponents{Quantity: 10, UnitPrice: 1400}
	a := CheckPriceOutlier(vendor, offer, 0.30)
	if a == nil || a.Code != CodePriceOutlier {
		t.Fatalf("expected price_outlier alert, got %+v", a)
	}
	if a.SuggestedPrice == nil || *a.SuggestedPrice != 1000 {
		t.Errorf("expected suggested price 1000, got %v", a.SuggestedPrice)
	}
}

func TestCheckPriceOutlierWithinThreshold(t *testing.T) {
	vendor := &model.VendorProfile{PriceTiers: map[int]float64{10: 1000}}
	offer := &model.OfferComponents{Quantity: 10, UnitPrice: 1100}
	if a := CheckPriceOutlier(vendor, offer, 0.30); a != nil {
		t.Errorf("expected nil within threshold, got %+v", a)
	}
}

func TestCheckDepositPolicyBlocksUnverified(t *testing.T) {
	vendor := &model.VendorProfile{VendorID: "v1", ContactEndpoints: model.ContactEndpoints{DepositPolicy: false}}
	offer := &model.OfferComponents{PaymentTerms: model.PaymentDeposit}
	a := CheckDepositPolicy(vendor, offer)
	if a == nil || !a.Blocking || a.Code != CodeDepositTermsUnverified {
		t.Errorf("expected blocking deposit_terms_unverified, got %+v", a)
	}
}

func TestCheckDepositPolicyIgnoresOtherTerms(t *testing.T) {
	vendor := &model.VendorProfile{}
	offer := &model.OfferComponents{PaymentTerms: model.PaymentNet30}
	if a := CheckDepositPolicy(vendor, offer); a != nil {
		t.Errorf("expected nil for non-deposit terms, got %+v", a)
	}
}

func TestRunAllAggregates(t *testing.T) {
	cfg := config.Default()
	vendor := &model.VendorProfile{
		VendorID:         "v1",
		PriceTiers:       map[int]float64{10: 1000},
		ContactEndpoints: model.ContactEndpoints{},
	}
	offer := &model.OfferComponents{Quantity: 10, UnitPrice: 1500, PaymentTerms: model.PaymentDeposit}
	cfg.RunMode = config.RunModeProduction
	alerts := RunAll(vendor, offer, cfg)
	if len(alerts) != 3 {
		t.Errorf("expected 3 alerts (bank, price outlier, deposit), got %d: %+v", len(alerts), alerts)
	}
}
