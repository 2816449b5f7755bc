package shipment

import (
	"fmt"
	"sort"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// RateRequest is a read-only snapshot combining the origin postal code, the
// destination postal code parsed from the buyer address, and the package
// specification. It is recomputed every time rates are fetched, never cached
// across requests, because origin, destination, or package may change between
// fetches.
type RateRequest struct {
	Origin      kernel.PostalCode
	Destination kernel.PostalCode
	Package     PackageSpec
}

// RateQuote is a single carrier service offer for a shipment.
type RateQuote struct {
	Carrier       Carrier
	Service       string
	Cost          decimal.Decimal
	International bool
}

// DisplayCost renders the quote for the operator, e.g. "USPS Ground Advantage - $8.40".
func (q RateQuote) DisplayCost() string {
	return fmt.Sprintf("%s %s - $%s", q.Carrier, q.Service, q.Cost.StringFixed(2))
}

/// less implements the total order on quotes: ascending cost, ties broken by
// carrier name and then service name lexical order. The order is deterministic
// so that the "cheapest rate" default selection is reproducible.
func less(a RateQuote, b RateQuote) bool {
	if cmp := a.Cost.Cmp(b.Cost); cmp != 0 {
		return cmp < 0
	}
	if a.Carrier.String() != b.Carrier.String() {
		return a.Carrier.String() < b.Carrier.String()
	}
	return a.Service < b.Service
}

// SortQuotes returns a sorted copy of quotes, ascending by cost with
// carrier-then-service tie-breaking. The input slice is not modified.
func SortQuotes(quotes []RateQuote) []RateQuote {
	sorted := make([]RateQuote, len(quotes))
	copy(sorted, quotes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}
