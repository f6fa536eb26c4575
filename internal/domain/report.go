package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyReport is derived data: a per-(store, lottery, book, date) aggregate
// of tickets sold and revenue, rebuildable from the scan log.
type DailyReport struct {
	ID          uint            `json:"id"`
	StoreID     uint            `json:"store_id"`
	LotteryID   uint            `json:"lottery_id"`
	BookID      uint            `json:"book_id"`
	ReportDate  time.Time       `json:"report_date"`
	TicketsSold int             `json:"tickets_sold"`
	TotalSales  decimal.Decimal `json:"total_sales"`
	LastScanID  *uint           `json:"last_scan_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DailyReportRow is one book's line in a store report, joined with catalog
// metadata for display.
type DailyReportRow struct {
	BookID        uint            `json:"book_id"`
	SerialNumber  string          `json:"serial_number"`
	LotteryID     uint            `json:"lottery_id"`
	LotteryNumber string          `json:"lottery_number"`
	LotteryName   string          `json:"lottery_name"`
	TicketsSold   int             `json:"tickets_sold"`
	TotalSales    decimal.Decimal `json:"total_sales"`
}

// MonthlyDayTotal aggregates one calendar day inside a monthly report.
type MonthlyDayTotal struct {
	Date        time.Time       `json:"date"`
	TicketsSold int             `json:"tickets_sold"`
	TotalSales  decimal.Decimal `json:"total_sales"`
}

// DailyReportSummary is the per-book breakdown plus grand totals for a
// selected window.
type DailyReportSummary struct {
	StoreID     uint             `json:"store_id"`
	From        time.Time        `json:"from"`
	To          time.Time        `json:"to"`
	Rows        []DailyReportRow `json:"rows"`
	TicketsSold int              `json:"tickets_sold"`
	TotalSales  decimal.Decimal  `json:"total_sales"`
}

// MonthlyReport carries the daily and per-lottery aggregates for one month.
type MonthlyReport struct {
	StoreID     uint                  `json:"store_id"`
	Month       string                `json:"month"`
	Days        []MonthlyDayTotal     `json:"days"`
	Lotteries   []MonthlyLotteryTotal `json:"lotteries"`
	TicketsSold int                   `json:"tickets_sold"`
	TotalSales  decimal.Decimal       `json:"total_sales"`
}

// MonthlyLotteryTotal aggregates one game across a month.
type MonthlyLotteryTotal struct {
	LotteryID     uint            `json:"lottery_id"`
	LotteryNumber string          `json:"lottery_number"`
	LotteryName   string          `json:"lottery_name"`
	TicketsSold   int             `json:"tickets_sold"`
	TotalSales    decimal.Decimal `json:"total_sales"`
}
