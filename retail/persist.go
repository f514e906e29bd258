package retail

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	SummaryTableSuffix = "_summary"
	CountryTableSuffix = "_country_revenue"
	MonthTableSuffix   = "_monthly_revenue"
)

type Summary struct {
	gorm.Model
	TotalRevenue     float64
	AvgOrderValue    float64
	CancellationRate float64
	Records          int
}

type CountryRevenue struct {
	Country string `gorm:"primaryKey"`
	Revenue float64
}

type MonthRevenue struct {
	Month   string `gorm:"primaryKey"`
	Revenue float64
}

// ReportStore persists analysis summaries under a per-run table prefix
type ReportStore struct {
	prefix string
	db     *gorm.DB
}

func NewReportStore(prefix string) *ReportStore {
	dsn := fmt.Sprintf(
		"host=%v user=%v password=%v dbname=%v port=%v sslmode=disable",
		os.Getenv("PG_HOST"),
		os.Getenv("PG_USER"),
		os.Getenv("PG_PASS"),
		os.Getenv("PG_DB"),
		os.Getenv("PG_PORT"),
	)
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("cannot establish connection to database: %v", err)
	}
	store := &ReportStore{db: conn, prefix: prefix}
	store.Init()
	return store
}

func (s *ReportStore) Init() {
	if !s.db.Migrator().HasTable(&Summary{}) {
		s.db.
			Table(s.prefix + SummaryTableSuffix).
			AutoMigrate(&Summary{})
	}
	if !s.db.Migrator().HasTable(&CountryRevenue{}) {
		s.db.
			Table(s.prefix + CountryTableSuffix).
			AutoMigrate(&CountryRevenue{})
	}
	if !s.db.Migrator().HasTable(&MonthRevenue{}) {
		s.db.
			Table(s.prefix + MonthTableSuffix).
			AutoMigrate(&MonthRevenue{})
	}
}

func (s *ReportStore) ShutDown() {
	s.db.Migrator().DropTable(&Summary{}, &CountryRevenue{}, &MonthRevenue{})
}

// Save writes one full report in a single transaction.
// records must already be filtered, raw keeps the cancellations.
func (s *ReportStore) Save(records, raw []Transaction) {
	txn := s.db.Begin()
	txn.
		Table(s.prefix + SummaryTableSuffix).
		Create(&Summary{
			TotalRevenue:     TotalRevenue(records),
			AvgOrderValue:    AvgOrderValue(records),
			CancellationRate: CancellationRate(raw),
			Records:          len(records),
		})
	for country, revenue := range RevenueByCountry(records) {
		txn.
			Table(s.prefix + CountryTableSuffix).
			Create(&CountryRevenue{Country: country, Revenue: revenue})
	}
	for month, revenue := range MonthlyRevenue(records) {
		txn.
			Table(s.prefix + MonthTableSuffix).
			Create(&MonthRevenue{Month: month, Revenue: revenue})
	}
	txn.Commit()
}
