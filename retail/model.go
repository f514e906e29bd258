package retail

import (
	"strings"
	"time"
)

// Transaction is one line item of the UCI Online Retail dataset.
// Empty Description and CustomerID mean the field was absent in the row.
type Transaction struct {
	InvoiceNo   string    `json:"invoice_no"`
	StockCode   string    `json:"stock_code"`
	Description string    `json:"description,omitempty"`
	Quantity    int       `json:"quantity"`
	InvoiceDate time.Time `json:"invoice_date"`
	UnitPrice   float64   `json:"unit_price"`
	CustomerID  string    `json:"customer_id,omitempty"`
	Country     string    `json:"country"`
}

// LineTotal is the value of this line item
func (t Transaction) LineTotal() float64 {
	return float64(t.Quantity) * t.UnitPrice
}

// Invoice numbers starting with "C" mark cancellations in the dataset
func (t Transaction) IsCancellation() bool {
	return strings.HasPrefix(t.InvoiceNo, "C")
}
