// Package guardrail runs stateless checks on a (vendor, offer) pair that
// the policy engine does not own: counterparty verification, reference-price
// deviation, and deposit-term safety (§4.C). Every check returns zero or one
// model.Alert; callers aggregate the results themselves.
package guardrail

import (
	"fmt"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/config"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

const (
	CodeMissingBankVerification = "missing_bank_verification"
	CodePriceOutlier            = "price_outlier"
	CodeDepositTermsUnverified  = "deposit_terms_unverified"
)

// CheckCounterparty implements spec §4.C counterparty verification: in
// production mode a vendor lacking bank_account verification draws a
// non-blocking alert; simulation runs skip the check entirely.
func CheckCounterparty(vendor *model.VendorProfile, runMode config.RunMode) *model.Alert {
	if runMode != config.RunModeProduction {
		return nil
	}
	if vendor.ContactEndpoints.BankAccount {
		return nil
	}
	return &model.Alert{
		Code:     CodeMissingBankVerification,
		Message:  fmt.Sprintf("vendor %s has no verified bank_account on file", vendor.VendorID),
		Blocking: false,
	}
}

// CheckPriceOutlier implements spec §4.C price outlier: flags an offer
// whose unit price deviates from the vendor's listed tier price for the
// same quantity by more than threshold (default 0.30), carrying the
// reference price forward as a suggested correction.
func CheckPriceOutlier(vendor *model.VendorProfile, offer *model.OfferComponents, threshold float64) *model.Alert {
	reference, ok := vendor.PriceTiers[offer.Quantity]
	if !ok {
		reference = vendor.ListPrice(offer.Quantity)
	}
	if reference <= 0 {
		return nil
	}
	deviation := (offer.UnitPrice - reference)
	if deviation < 0 {
		deviation = -deviation
	}
	if deviation/reference <= threshold {
		return nil
	}
	suggested := reference
	return &model.Alert{
		Code:           CodePriceOutlier,
		Message:        fmt.Sprintf("unit_price %.2f deviates %.0f%% from reference price %.2f", offer.UnitPrice, deviation/reference*100, reference),
		Blocking:       false,
		SuggestedPrice: &suggested,
	}
}

// CheckDepositPolicy implements spec §4.C deposit policy: a Deposit
// payment schedule requires the vendor to expose a verified deposit
// policy endpoint, else the offer is blocked outright.
func CheckDepositPolicy(vendor *model.VendorProfile, offer *model.OfferComponents) *model.Alert {
	if offer.PaymentTerms != model.PaymentDeposit {
		return nil
	}
	if vendor.ContactEndpoints.DepositPolicy {
		return nil
	}
	return &model.Alert{
		Code:     CodeDepositTermsUnverified,
		Message:  fmt.Sprintf("vendor %s offers Deposit terms with no verified deposit_policy endpoint", vendor.VendorID),
		Blocking: true,
	}
}

// RunAll evaluates every guardrail check and returns the alerts that fired.
func RunAll(vendor *model.VendorProfile, offer *model.OfferComponents, cfg *config.Config) []model.Alert {
	var alerts []model.Alert
	if a := CheckCounterparty(vendor, cfg.RunMode); a != nil {
		alerts = append(alerts, *a)
	}
	if a := CheckPriceOutlier(vendor, offer, cfg.PriceOutlierThreshold); a != nil {
		alerts = append(alerts, *a)
	}
	if a := CheckDepositPolicy(vendor, offer); a != nil {
		alerts = append(alerts, *a)
	}
	return alerts
}
