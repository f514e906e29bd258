package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/Dinesh0602/Producer-Consumer-Online-Retail-Analysis/pipeline"
	"github.com/Dinesh0602/Producer-Consumer-Online-Retail-Analysis/retail"
)

func main() {
	csvPath := flag.String("csv", "", "path to Online Retail CSV file")
	capacity := flag.Int("capacity", 10, "bounded queue capacity for the ingestion pipeline")
	top := flag.Int("top", 10, "how many products/customers/countries to report")
	persistTo := flag.String("persist", "", "table prefix; when set, the report is stored in Postgres")
	flag.Parse()

	logger := log.New(os.Stdout, "INFO: ", log.Lmicroseconds|log.Lshortfile)

	if *csvPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	source, err := retail.OpenCSV(*csvPath)
	if err != nil {
		logger.Fatalf("cannot open dataset: %v", err)
	}
	defer source.Close()

	// One producer streams the file, one consumer collects, the caller joins
	raw, err := pipeline.Run[retail.Transaction](source, *capacity)
	if err != nil {
		logger.Fatalf("ingestion pipeline failed: %v", err)
	}

	records := retail.Valid(raw)
	report(records, *top)

	fmt.Println("\nCancellation rate (percentage of cancelled revenue over gross):")
	fmt.Printf("  %.2f%%\n", retail.CancellationRate(raw))

	if *persistTo != "" {
		store := retail.NewReportStore(*persistTo)
		store.Save(records, raw)
		logger.Printf("report stored under prefix %q", *persistTo)
	}
}

func report(records []retail.Transaction, top int) {
	fmt.Println("=== Online Retail Sales Analysis (UCI) ===")

	fmt.Println("\nTotal revenue (valid, non-cancelled):")
	fmt.Printf("  $%.2f\n", retail.TotalRevenue(records))

	fmt.Printf("\nRevenue by country (top %d):\n", top)
	for _, entry := range rankedCountries(records, top) {
		fmt.Printf("  %-20s $%.2f\n", entry.Name, entry.Amount)
	}

	fmt.Println("\nMonthly revenue (YYYY-MM):")
	monthly := retail.MonthlyRevenue(records)
	for _, month := range sortedKeys(monthly) {
		fmt.Printf("  %s  $%.2f\n", month, monthly[month])
	}

	fmt.Printf("\nTop %d products by revenue:\n", top)
	for _, entry := range retail.TopProductsByRevenue(records, top) {
		fmt.Printf("  %-40s $%.2f\n", clip(entry.Name, 40), entry.Amount)
	}

	fmt.Printf("\nTop %d customers by revenue:\n", top)
	for _, entry := range retail.TopCustomersByRevenue(records, top) {
		fmt.Printf("  %-10s $%.2f\n", entry.Name, entry.Amount)
	}

	fmt.Println("\nAverage order value (per invoice):")
	fmt.Printf("  $%.2f\n", retail.AvgOrderValue(records))
}

func rankedCountries(records []retail.Transaction, top int) []retail.Ranked {
	byCountry := retail.RevenueByCountry(records)
	ranked := make([]retail.Ranked, 0, len(byCountry))
	for country, amount := range byCountry {
		ranked = append(ranked, retail.Ranked{Name: country, Amount: amount})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Amount != ranked[j].Amount {
			return ranked[i].Amount > ranked[j].Amount
		}
		return ranked[i].Name < ranked[j].Name
	})
	if top < len(ranked) {
		ranked = ranked[:top]
	}
	return ranked
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func clip(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
