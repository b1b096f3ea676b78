// Package concession enumerates the lever combinations a vendor's exchange
// policy permits and picks the cheapest one that still clears the vendor's
// floor (§4.F): build every candidate, score it, keep the best that
// satisfies a hard constraint.
package concession

import (
	"sort"

	"golang.org/x/exp/maps"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

// Lever is one named discount or credit source drawn from the vendor's
// exchange policy, tagged with the kind of lever it represents.
type Lever struct {
	Kind     string // "payment", "term", "value_add"
	Label    string
	Discount float64 // fractional discount, 0 for a pure value-add credit
	Credit   float64 // flat per-seat credit, 0 for pure discounts
}

// Combination is a set of levers applied together.
type Combination struct {
	Levers         []Lever
	EffectivePrice float64
}

// BestPriceResult is the outcome of Search: the cheapest feasible price and
// the combination of levers that produced it.
type BestPriceResult struct {
	BestPrice   float64
	AppliedList Combination
	Feasible    bool
}

// topN returns the n levers with the highest Discount, stable-sorted by
// label to keep enumeration deterministic across runs.
func topN(levers []Lever, n int) []Lever {
	sorted := make([]Lever, len(levers))
	copy(sorted, levers)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Discount != sorted[j].Discount {
			return sorted[i].Discount > sorted[j].Discount
		}
		return sorted[i].Label < sorted[j].Label
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// levers extracts the deterministic lever set from a vendor's exchange
// policy, iterating maps.Keys in sorted order so repeated calls enumerate
// the same candidates in the same sequence.
func levers(policy *model.ExchangePolicy, seats int) (payment, term []Lever, valueAdd []Lever) {
	paymentKeys := maps.Keys(policy.PaymentTrade)
	sort.Slice(paymentKeys, func(i, j int) bool { return paymentKeys[i] < paymentKeys[j] })
	for _, terms := range paymentKeys {
		discount := policy.PaymentTrade[terms]
		if discount <= 0 {
			continue
		}
		payment = append(payment, Lever{Kind: "payment", Label: string(terms), Discount: discount})
	}

	termKeys := maps.Keys(policy.TermTrade)
	sort.Ints(termKeys)
	for _, months := range termKeys {
		discount := policy.TermTrade[months]
		if discount <= 0 {
			continue
		}
		term = append(term, Lever{Kind: "term", Label: itoa(months), Discount: discount})
	}

	vaKeys := maps.Keys(policy.ValueAddOffsets)
	sort.Strings(vaKeys)
	for _, label := range vaKeys {
		credit := policy.ValueAddOffsets[label]
		if credit <= 0 {
			continue
		}
		valueAdd = append(valueAdd, Lever{Kind: "value_add", Label: label, Credit: credit * float64(seats)})
	}

	return payment, term, valueAdd
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// effectivePrice implements spec §4.F: effective_price = list *
// product(1 - discount_i) - per_seat_credit.
func effectivePrice(listPrice float64, combo []Lever) float64 {
	price := listPrice
	credit := 0.0
	for _, l := range combo {
		if l.Discount > 0 {
			price *= 1 - l.Discount
		}
		credit += l.Credit
	}
	return price - credit
}

// EnumerateCombinations implements spec §4.F's single/pair/triple lever
// enumeration over a vendor's exchange policy.
func EnumerateCombinations(policy *model.ExchangePolicy, seats int) []Combination {
	var combos []Combination
	paymentLevers, termLevers, valueAddLevers := levers(policy, seats)

	// Singles: each payment discount, each term discount, each value-add credit.
	for _, l := range paymentLevers {
		combos = append(combos, Combination{Levers: []Lever{l}})
	}
	for _, l := range termLevers {
		combos = append(combos, Combination{Levers: []Lever{l}})
	}
	for _, l := range valueAddLevers {
		combos = append(combos, Combination{Levers: []Lever{l}})
	}

	// Pairs: payment x term, payment + value-add, term + value-add.
	for _, p := range paymentLevers {
		for _, term := range termLevers {
			combos = append(combos, Combination{Levers: []Lever{p, term}})
		}
		for _, va := range valueAddLevers {
			combos = append(combos, Combination{Levers: []Lever{p, va}})
		}
	}
	for _, term := range termLevers {
		for _, va := range valueAddLevers {
			combos = append(combos, Combination{Levers: []Lever{term, va}})
		}
	}

	// Triples: payment x term - value-add, limited to the top-2 payment and
	// top-2 term options by discount to bound the search.
	topPayment := topN(paymentLevers, 2)
	topTerm := topN(termLevers, 2)
	for _, p := range topPayment {
		for _, term := range topTerm {
			for _, va := range valueAddLevers {
				combos = append(combos, Combination{Levers: []Lever{p, term, va}})
			}
		}
	}

	return combos
}

// Search implements spec §4.F's feasible_with_trades / opening-bundle
// seeding primitive: enumerate every lever combination (plus the no-lever
// baseline at list price) and return the cheapest price that still clears
// floorPrice.
func Search(listPrice, floorPrice float64, seats int, policy *model.ExchangePolicy) BestPriceResult {
	combos := EnumerateCombinations(policy, seats)
	combos = append(combos, Combination{}) // list price, no levers

	best := BestPriceResult{}
	for _, combo := range combos {
		price := effectivePrice(listPrice, combo.Levers)
		if price < floorPrice {
			continue
		}
		combo.EffectivePrice = price
		if !best.Feasible || price < best.BestPrice {
			best = BestPriceResult{BestPrice: price, AppliedList: combo, Feasible: true}
		}
	}
	return best
}
