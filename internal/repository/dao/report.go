package dao

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DailyReport aggregates tickets sold and revenue per (store, lottery,
// book, date). Derived data, rebuildable from the scan log.
type DailyReport struct {
	ID uint `gorm:"primaryKey"`

	StoreID    uint      `gorm:"not null;uniqueIndex:idx_daily_reports_key,priority:1"`
	LotteryID  uint      `gorm:"not null;uniqueIndex:idx_daily_reports_key,priority:2"`
	BookID     uint      `gorm:"not null;uniqueIndex:idx_daily_reports_key,priority:3"`
	ReportDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_daily_reports_key,priority:4"`

	TicketsSold int             `gorm:"not null"`
	TotalSales  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LastScanID  *uint

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type DailyReportRow struct {
	BookID        uint
	SerialNumber  string
	LotteryID     uint
	LotteryNumber string
	LotteryName   string
	TicketsSold   int
	TotalSales    decimal.Decimal
}

type DayTotalRow struct {
	Date        time.Time
	TicketsSold int
	TotalSales  decimal.Decimal
}

type LotteryTotalRow struct {
	LotteryID     uint
	LotteryNumber string
	LotteryName   string
	TicketsSold   int
	TotalSales    decimal.Decimal
}

type ReportDAO struct {
	db *gorm.DB
}

func NewReportDAO(db *gorm.DB) *ReportDAO {
	return &ReportDAO{
		db: db,
	}
}

// UpsertAdditive inserts the aggregate row or, on conflict with the
// (store, lottery, book, date) key, adds the new delta to the existing
// totals. Adding instead of replacing keeps the row correct across multiple
// scans of the same book on the same day.
func (d *ReportDAO) UpsertAdditive(ctx context.Context, report DailyReport) error {
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "store_id"},
			{Name: "lottery_id"},
			{Name: "book_id"},
			{Name: "report_date"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"tickets_sold": gorm.Expr("daily_reports.tickets_sold + EXCLUDED.tickets_sold"),
			"total_sales":  gorm.Expr("daily_reports.total_sales + EXCLUDED.total_sales"),
			"last_scan_id": gorm.Expr("EXCLUDED.last_scan_id"),
			"updated_at":   time.Now(),
		}),
	}).Create(&report).Error
}

// FindRowsByStoreAndRange returns the per-book breakdown for a store over
// an inclusive date window.
func (d *ReportDAO) FindRowsByStoreAndRange(ctx context.Context, storeID uint, from, to time.Time) ([]DailyReportRow, error) {
	var rows []DailyReportRow

	result := d.db.WithContext(ctx).
		Table("daily_reports").
		Select(`daily_reports.book_id AS book_id,
			store_lottery_inventories.serial_number AS serial_number,
			daily_reports.lottery_id AS lottery_id,
			lottery_masters.lottery_number AS lottery_number,
			lottery_masters.name AS lottery_name,
			SUM(daily_reports.tickets_sold) AS tickets_sold,
			SUM(daily_reports.total_sales) AS total_sales`).
		Joins("JOIN store_lottery_inventories ON store_lottery_inventories.id = daily_reports.book_id").
		Joins("JOIN lottery_masters ON lottery_masters.id = daily_reports.lottery_id").
		Where("daily_reports.store_id = ? AND daily_reports.report_date BETWEEN ? AND ?", storeID, from, to).
		Group("daily_reports.book_id, store_lottery_inventories.serial_number, daily_reports.lottery_id, lottery_masters.lottery_number, lottery_masters.name").
		Order("daily_reports.book_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

// FindDayTotalsByStoreAndRange returns one aggregate per calendar day with
// activity inside the window.
func (d *ReportDAO) FindDayTotalsByStoreAndRange(ctx context.Context, storeID uint, from, to time.Time) ([]DayTotalRow, error) {
	var rows []DayTotalRow

	result := d.db.WithContext(ctx).
		Table("daily_reports").
		Select(`daily_reports.report_date AS date,
			SUM(daily_reports.tickets_sold) AS tickets_sold,
			SUM(daily_reports.total_sales) AS total_sales`).
		Where("daily_reports.store_id = ? AND daily_reports.report_date BETWEEN ? AND ?", storeID, from, to).
		Group("daily_reports.report_date").
		Order("daily_reports.report_date").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

// FindLotteryTotalsByStoreAndRange returns one aggregate per game inside
// the window.
func (d *ReportDAO) FindLotteryTotalsByStoreAndRange(ctx context.Context, storeID uint, from, to time.Time) ([]LotteryTotalRow, error) {
	var rows []LotteryTotalRow

	result := d.db.WithContext(ctx).
		Table("daily_reports").
		Select(`daily_reports.lottery_id AS lottery_id,
			lottery_masters.lottery_number AS lottery_number,
			lottery_masters.name AS lottery_name,
			SUM(daily_reports.tickets_sold) AS tickets_sold,
			SUM(daily_reports.total_sales) AS total_sales`).
		Joins("JOIN lottery_masters ON lottery_masters.id = daily_reports.lottery_id").
		Where("daily_reports.store_id = ? AND daily_reports.report_date BETWEEN ? AND ?", storeID, from, to).
		Group("daily_reports.lottery_id, lottery_masters.lottery_number, lottery_masters.name").
		Order("daily_reports.lottery_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}
