package retail_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Dinesh0602/Producer-Consumer-Online-Retail-Analysis/pipeline"
	"github.com/Dinesh0602/Producer-Consumer-Online-Retail-Analysis/retail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The file source must plug straight into the pipeline
var _ pipeline.Source[retail.Transaction] = (*retail.CSVSource)(nil)

const csvHeader = "InvoiceNo,StockCode,Description,Quantity,InvoiceDate,UnitPrice,CustomerID,Country\n"

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "retail.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0666))
	return path
}

func drain(t *testing.T, s *retail.CSVSource) []retail.Transaction {
	t.Helper()
	var out []retail.Transaction
	for {
		rec, ok, err := s.Next()
		require.NoError(t, err)
		if !ok {
			return out
		}
		out = append(out, rec)
	}
}

func TestCSVSource(t *testing.T) {
	t.Run("Just Work", func(t *testing.T) {
		path := writeDataset(t, csvHeader+
			"536365,85123A,WHITE HANGING HEART T-LIGHT HOLDER,6,12/1/10 8:26,2.55,17850,United Kingdom\n"+
			"536370,84029G,KNITTED UNION FLAG HOT WATER BOTTLE,2,12/1/10 9:00,3.39,13047,France\n")
		s, err := retail.OpenCSV(path)
		require.NoError(t, err)
		defer s.Close()

		records := drain(t, s)
		require.Len(t, records, 2)
		assert.Equal(t, "536365", records[0].InvoiceNo)
		assert.Equal(t, "85123A", records[0].StockCode)
		assert.Equal(t, "WHITE HANGING HEART T-LIGHT HOLDER", records[0].Description)
		assert.Equal(t, 6, records[0].Quantity)
		assert.Equal(t, time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC), records[0].InvoiceDate)
		assert.InDelta(t, 2.55, records[0].UnitPrice, 0.001)
		assert.Equal(t, "17850", records[0].CustomerID)
		assert.Equal(t, "United Kingdom", records[0].Country)
		assert.Equal(t, "France", records[1].Country)
	})

	t.Run("Latin1 Descriptions", func(t *testing.T) {
		// 0xC9 is E-acute in ISO-8859-1; raw bytes, not UTF-8
		path := writeDataset(t, csvHeader+
			"536380,22900,SET 2 TEA TOWELS CAF\xc9 DESIGN,4,12/1/10 10:00,2.95,14688,France\n")
		s, err := retail.OpenCSV(path)
		require.NoError(t, err)
		defer s.Close()

		records := drain(t, s)
		require.Len(t, records, 1)
		assert.Equal(t, "SET 2 TEA TOWELS CAFÉ DESIGN", records[0].Description)
	})

	t.Run("Malformed Rows Skipped", func(t *testing.T) {
		path := writeDataset(t, csvHeader+
			"536365,85123A,GOOD ROW,6,12/1/10 8:26,2.55,17850,United Kingdom\n"+
			"536366,85123B,BAD QUANTITY,abc,12/1/10 8:26,2.55,17850,United Kingdom\n"+
			"536367,85123C,BAD PRICE,6,12/1/10 8:26,x.y,17850,United Kingdom\n"+
			"536368,85123D,BAD DATE,6,not-a-date,2.55,17850,United Kingdom\n"+
			"536369,85123E,ANOTHER GOOD ROW,1,12/1/10 9:30,1.25,,United Kingdom\n")
		s, err := retail.OpenCSV(path)
		require.NoError(t, err)
		defer s.Close()

		records := drain(t, s)
		require.Len(t, records, 2)
		assert.Equal(t, "GOOD ROW", records[0].Description)
		assert.Equal(t, "ANOTHER GOOD ROW", records[1].Description)
		assert.Empty(t, records[1].CustomerID)
	})

	t.Run("Cancellations Kept Raw", func(t *testing.T) {
		// Skipping is about malformed data only, cancellations must flow
		// through so CancellationRate can see them
		path := writeDataset(t, csvHeader+
			"C536379,85123A,WHITE HANGING HEART T-LIGHT HOLDER,-6,12/1/10 9:41,2.55,17850,United Kingdom\n")
		s, err := retail.OpenCSV(path)
		require.NoError(t, err)
		defer s.Close()

		records := drain(t, s)
		require.Len(t, records, 1)
		assert.True(t, records[0].IsCancellation())
		assert.Equal(t, -6, records[0].Quantity)
	})

	t.Run("Missing File", func(t *testing.T) {
		s, err := retail.OpenCSV(filepath.Join(t.TempDir(), "absent.csv"))
		assert.Error(t, err)
		assert.Nil(t, s)
	})

	t.Run("Empty File", func(t *testing.T) {
		s, err := retail.OpenCSV(writeDataset(t, ""))
		assert.Error(t, err)
		assert.Nil(t, s)
	})

	t.Run("Streams Through Pipeline", func(t *testing.T) {
		path := writeDataset(t, csvHeader+
			"536365,85123A,WHITE HANGING HEART T-LIGHT HOLDER,6,12/1/10 8:26,2.55,17850,United Kingdom\n"+
			"536365,71053,WHITE METAL LANTERN,6,12/1/10 8:26,3.39,17850,United Kingdom\n"+
			"536370,84029G,KNITTED UNION FLAG HOT WATER BOTTLE,2,12/1/10 9:00,3.39,13047,France\n")
		s, err := retail.OpenCSV(path)
		require.NoError(t, err)
		defer s.Close()

		records, err := pipeline.Run[retail.Transaction](s, 2)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.InDelta(t, 42.42, retail.TotalRevenue(retail.Valid(records)), 0.001)
	})
}
