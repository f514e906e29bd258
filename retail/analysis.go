package retail

import (
	"math"
	"sort"
)

// Pure reducers over transaction records. Money values round to cents.

// Ranked is a name with its aggregated amount, used by the top-N reducers
type Ranked struct {
	Name   string
	Amount float64
}

// Valid drops cancellations and rows with non-positive quantity or price
func Valid(records []Transaction) []Transaction {
	out := make([]Transaction, 0, len(records))
	for _, t := range records {
		if !t.IsCancellation() && t.Quantity > 0 && t.UnitPrice > 0 {
			out = append(out, t)
		}
	}
	return out
}

func TotalRevenue(records []Transaction) float64 {
	var total float64
	for _, t := range records {
		total += t.LineTotal()
	}
	return roundCents(total)
}

func RevenueByCountry(records []Transaction) map[string]float64 {
	totals := make(map[string]float64)
	for _, t := range records {
		totals[t.Country] += t.LineTotal()
	}
	return roundAll(totals)
}

// MonthlyRevenue aggregates per calendar month, keyed YYYY-MM
func MonthlyRevenue(records []Transaction) map[string]float64 {
	totals := make(map[string]float64)
	for _, t := range records {
		totals[t.InvoiceDate.Format("2006-01")] += t.LineTotal()
	}
	return roundAll(totals)
}

// TopProductsByRevenue keys by Description, falling back to StockCode
func TopProductsByRevenue(records []Transaction, n int) []Ranked {
	totals := make(map[string]float64)
	for _, t := range records {
		key := t.Description
		if key == "" {
			key = t.StockCode
		}
		totals[key] += t.LineTotal()
	}
	return topN(totals, n)
}

// TopCustomersByRevenue ignores rows with a missing CustomerID
func TopCustomersByRevenue(records []Transaction, n int) []Ranked {
	totals := make(map[string]float64)
	for _, t := range records {
		if t.CustomerID == "" {
			continue
		}
		totals[t.CustomerID] += t.LineTotal()
	}
	return topN(totals, n)
}

// AvgOrderValue is the average revenue per invoice
func AvgOrderValue(records []Transaction) float64 {
	invoices := make(map[string]float64)
	for _, t := range records {
		invoices[t.InvoiceNo] += t.LineTotal()
	}
	if len(invoices) == 0 {
		return 0
	}
	var sum float64
	for _, total := range invoices {
		sum += total
	}
	return roundCents(sum / float64(len(invoices)))
}

// UnitsSoldPerProduct keys by StockCode, falling back to Description
func UnitsSoldPerProduct(records []Transaction) map[string]int {
	counts := make(map[string]int)
	for _, t := range records {
		key := t.StockCode
		if key == "" {
			key = t.Description
		}
		counts[key] += t.Quantity
	}
	return counts
}

// CancellationRate is the percentage of cancelled revenue over gross revenue.
// Feed it the raw records, cancellations included.
func CancellationRate(records []Transaction) float64 {
	var total, cancelled float64
	for _, t := range records {
		total += math.Abs(t.LineTotal())
		if t.IsCancellation() {
			cancelled += math.Abs(t.LineTotal())
		}
	}
	if total == 0 {
		return 0
	}
	return roundCents(100 * cancelled / total)
}

func topN(totals map[string]float64, n int) []Ranked {
	ranked := make([]Ranked, 0, len(totals))
	for name, amount := range totals {
		ranked = append(ranked, Ranked{Name: name, Amount: roundCents(amount)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Amount != ranked[j].Amount {
			return ranked[i].Amount > ranked[j].Amount
		}
		return ranked[i].Name < ranked[j].Name // Deterministic on ties
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundAll(totals map[string]float64) map[string]float64 {
	for k, v := range totals {
		totals[k] = roundCents(v)
	}
	return totals
}
