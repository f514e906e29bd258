package retail

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const invoiceDateLayout = "1/2/06 15:04"

// CSVSource streams transactions out of an Online Retail CSV file one row at
// a time, so the whole dataset never has to sit in memory at once. It
// satisfies the pipeline source contract. Rows with broken numerics or dates
// are skipped silently, the public dataset contains plenty of them.
type CSVSource struct {
	file   *os.File
	reader *csv.Reader
	col    map[string]int
}

func OpenCSV(path string) (*CSVSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	// Public copies of the dataset are ISO-8859-1 encoded
	reader := csv.NewReader(transform.NewReader(file, charmap.ISO8859_1.NewDecoder()))
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		file.Close()
		if err == io.EOF {
			return nil, errors.New("dataset has no header row")
		}
		return nil, err
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	s := &CSVSource{file: file, reader: reader, col: col}
	return s, nil
}

func (s *CSVSource) Next() (Transaction, bool, error) {
	for {
		row, err := s.reader.Read()
		if err == io.EOF {
			return Transaction{}, false, nil
		}
		if err != nil {
			return Transaction{}, false, err
		}
		if t, ok := s.parse(row); ok {
			return t, true, nil
		}
	}
}

func (s *CSVSource) Close() error {
	return s.file.Close()
}

func (s *CSVSource) field(row []string, name string) string {
	i, ok := s.col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (s *CSVSource) parse(row []string) (Transaction, bool) {
	quantity, err := strconv.Atoi(s.field(row, "Quantity"))
	if err != nil {
		return Transaction{}, false
	}
	unitPrice, err := strconv.ParseFloat(s.field(row, "UnitPrice"), 64)
	if err != nil {
		return Transaction{}, false
	}
	invoiceDate, err := time.Parse(invoiceDateLayout, s.field(row, "InvoiceDate"))
	if err != nil {
		return Transaction{}, false
	}
	return Transaction{
		InvoiceNo:   s.field(row, "InvoiceNo"),
		StockCode:   s.field(row, "StockCode"),
		Description: s.field(row, "Description"),
		Quantity:    quantity,
		InvoiceDate: invoiceDate,
		UnitPrice:   unitPrice,
		CustomerID:  s.field(row, "CustomerID"),
		Country:     s.field(row, "Country"),
	}, true
}
