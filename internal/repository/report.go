package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/lottotrack/backoffice/internal/domain"
	"github.com/lottotrack/backoffice/internal/repository/dao"
)

type ReportDAO interface {
	UpsertAdditive(ctx context.Context, report dao.DailyReport) error
	FindRowsByStoreAndRange(ctx context.Context, storeID uint, from, to time.Time) ([]dao.DailyReportRow, error)
	FindDayTotalsByStoreAndRange(ctx context.Context, storeID uint, from, to time.Time) ([]dao.DayTotalRow, error)
	FindLotteryTotalsByStoreAndRange(ctx context.Context, storeID uint, from, to time.Time) ([]dao.LotteryTotalRow, error)
}

type ReportRepository struct {
	dao ReportDAO
}

func NewReportRepository(dao ReportDAO) *ReportRepository {
	return &ReportRepository{
		dao: dao,
	}
}

func (r *ReportRepository) UpsertAdditive(ctx context.Context, report domain.DailyReport) error {
	err := r.dao.UpsertAdditive(ctx, dao.DailyReport{
		StoreID:     report.StoreID,
		LotteryID:   report.LotteryID,
		BookID:      report.BookID,
		ReportDate:  report.ReportDate,
		TicketsSold: report.TicketsSold,
		TotalSales:  report.TotalSales,
		LastScanID:  report.LastScanID,
	})
	if err != nil {
		return fmt.Errorf("r.dao.UpsertAdditive -> %w", err)
	}

	return nil
}

func (r *ReportRepository) FindRowsByStoreAndRange(ctx context.Context, storeID uint, from, to time.Time) ([]domain.DailyReportRow, error) {
	found, err := r.dao.FindRowsByStoreAndRange(ctx, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRowsByStoreAndRange -> %w", err)
	}

	rows := make([]domain.DailyReportRow, len(found))
	for i, row := range found {
		rows[i] = domain.DailyReportRow{
			BookID:        row.BookID,
			SerialNumber:  row.SerialNumber,
			LotteryID:     row.LotteryID,
			LotteryNumber: row.LotteryNumber,
			LotteryName:   row.LotteryName,
			TicketsSold:   row.TicketsSold,
			TotalSales:    row.TotalSales,
		}
	}

	return rows, nil
}

func (r *ReportRepository) FindDayTotalsByStoreAndRange(ctx context.Context, storeID uint, from, to time.Time) ([]domain.MonthlyDayTotal, error) {
	found, err := r.dao.FindDayTotalsByStoreAndRange(ctx, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindDayTotalsByStoreAndRange -> %w", err)
	}

	totals := make([]domain.MonthlyDayTotal, len(found))
	for i, row := range found {
		totals[i] = domain.MonthlyDayTotal{
			Date:        row.Date,
			TicketsSold: row.TicketsSold,
			TotalSales:  row.TotalSales,
		}
	}

	return totals, nil
}

func (r *ReportRepository) FindLotteryTotalsByStoreAndRange(ctx context.Context, storeID uint, from, to time.Time) ([]domain.MonthlyLotteryTotal, error) {
	found, err := r.dao.FindLotteryTotalsByStoreAndRange(ctx, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindLotteryTotalsByStoreAndRange -> %w", err)
	}

	totals := make([]domain.MonthlyLotteryTotal, len(found))
	for i, row := range found {
		totals[i] = domain.MonthlyLotteryTotal{
			LotteryID:     row.LotteryID,
			LotteryNumber: row.LotteryNumber,
			LotteryName:   row.LotteryName,
			TicketsSold:   row.TicketsSold,
			TotalSales:    row.TotalSales,
		}
	}

	return totals, nil
}
