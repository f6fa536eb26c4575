package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lottotrack/backoffice/internal/domain"
)

var ErrInvalidDateRange = errors.New("invalid date or range selection")

const dateLayout = "2006-01-02"

// ReportQuery selects the reporting window. Either Date is set, or Range is
// one of today/last7/this_month/custom; custom requires StartDate and
// EndDate. An empty query means today.
type ReportQuery struct {
	Date      string
	Range     string
	StartDate string
	EndDate   string
}

type ReportRepository interface {
	FindRowsByStoreAndRange(ctx context.Context, storeID uint, from, to time.Time) ([]domain.DailyReportRow, error)
	FindDayTotalsByStoreAndRange(ctx context.Context, storeID uint, from, to time.Time) ([]domain.MonthlyDayTotal, error)
	FindLotteryTotalsByStoreAndRange(ctx context.Context, storeID uint, from, to time.Time) ([]domain.MonthlyLotteryTotal, error)
}

type ReportService struct {
	repo ReportRepository
	now  func() time.Time
}

func NewReportService(repo ReportRepository) *ReportService {
	return &ReportService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *ReportService) GetDailyReport(ctx context.Context, storeID uint, query ReportQuery) (domain.DailyReportSummary, error) {
	from, to, err := s.resolveWindow(query)
	if err != nil {
		return domain.DailyReportSummary{}, err
	}

	rows, err := s.repo.FindRowsByStoreAndRange(ctx, storeID, from, to)
	if err != nil {
		return domain.DailyReportSummary{}, fmt.Errorf("s.repo.FindRowsByStoreAndRange -> %w", err)
	}

	summary := domain.DailyReportSummary{
		StoreID:    storeID,
		From:       from,
		To:         to,
		Rows:       rows,
		TotalSales: decimal.Zero,
	}
	for _, row := range rows {
		summary.TicketsSold += row.TicketsSold
		summary.TotalSales = summary.TotalSales.Add(row.TotalSales)
	}

	return summary, nil
}

func (s *ReportService) GetMonthlyReport(ctx context.Context, storeID uint, month string) (domain.MonthlyReport, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return domain.MonthlyReport{}, fmt.Errorf("%w: month %q", ErrInvalidDateRange, month)
	}
	end := start.AddDate(0, 1, -1)

	days, err := s.repo.FindDayTotalsByStoreAndRange(ctx, storeID, start, end)
	if err != nil {
		return domain.MonthlyReport{}, fmt.Errorf("s.repo.FindDayTotalsByStoreAndRange -> %w", err)
	}

	lotteries, err := s.repo.FindLotteryTotalsByStoreAndRange(ctx, storeID, start, end)
	if err != nil {
		return domain.MonthlyReport{}, fmt.Errorf("s.repo.FindLotteryTotalsByStoreAndRange -> %w", err)
	}

	report := domain.MonthlyReport{
		StoreID:    storeID,
		Month:      month,
		Days:       days,
		Lotteries:  lotteries,
		TotalSales: decimal.Zero,
	}
	for _, day := range days {
		report.TicketsSold += day.TicketsSold
		report.TotalSales = report.TotalSales.Add(day.TotalSales)
	}

	return report, nil
}

func (s *ReportService) resolveWindow(query ReportQuery) (from, to time.Time, err error) {
	today := s.today()

	if query.Date != "" {
		day, parseErr := time.Parse(dateLayout, query.Date)
		if parseErr != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidDateRange, query.Date)
		}

		return day, day, nil
	}

	switch query.Range {
	case "", "today":
		return today, today, nil
	case "last7":
		return today.AddDate(0, 0, -6), today, nil
	case "this_month":
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), today, nil
	case "custom":
		start, parseErr := time.Parse(dateLayout, query.StartDate)
		if parseErr != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date %q", ErrInvalidDateRange, query.StartDate)
		}
		end, parseErr := time.Parse(dateLayout, query.EndDate)
		if parseErr != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date %q", ErrInvalidDateRange, query.EndDate)
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date before start_date", ErrInvalidDateRange)
		}

		return start, end, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: range %q", ErrInvalidDateRange, query.Range)
	}
}

func (s *ReportService) today() time.Time {
	now := s.now()

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
