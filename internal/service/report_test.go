package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottotrack/backoffice/internal/domain"
	"github.com/lottotrack/backoffice/internal/service"
)

// stubReportQueryRepo records the requested window and serves canned rows.
type stubReportQueryRepo struct {
	from, to time.Time
	rows     []domain.DailyReportRow
	days     []domain.MonthlyDayTotal
	totals   []domain.MonthlyLotteryTotal
}

func (r *stubReportQueryRepo) FindRowsByStoreAndRange(_ context.Context, _ uint, from, to time.Time) ([]domain.DailyReportRow, error) {
	r.from, r.to = from, to

	return r.rows, nil
}

func (r *stubReportQueryRepo) FindDayTotalsByStoreAndRange(_ context.Context, _ uint, from, to time.Time) ([]domain.MonthlyDayTotal, error) {
	r.from, r.to = from, to

	return r.days, nil
}

func (r *stubReportQueryRepo) FindLotteryTotalsByStoreAndRange(_ context.Context, _ uint, _, _ time.Time) ([]domain.MonthlyLotteryTotal, error) {
	return r.totals, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestReportService_GetDailyReport_Windows(t *testing.T) {
	tests := []struct {
		name     string
		query    service.ReportQuery
		wantFrom time.Time
		wantTo   time.Time
		wantErr  bool
	}{
		{
			name:     "explicit date is a one-day window",
			query:    service.ReportQuery{Date: "2026-08-01"},
			wantFrom: date(2026, time.August, 1),
			wantTo:   date(2026, time.August, 1),
		},
		{
			name:     "custom range",
			query:    service.ReportQuery{Range: "custom", StartDate: "2026-08-01", EndDate: "2026-08-15"},
			wantFrom: date(2026, time.August, 1),
			wantTo:   date(2026, time.August, 15),
		},
		{
			name:    "custom range reversed",
			query:   service.ReportQuery{Range: "custom", StartDate: "2026-08-15", EndDate: "2026-08-01"},
			wantErr: true,
		},
		{
			name:    "custom range missing dates",
			query:   service.ReportQuery{Range: "custom"},
			wantErr: true,
		},
		{
			name:    "unknown range",
			query:   service.ReportQuery{Range: "fortnight"},
			wantErr: true,
		},
		{
			name:    "unparseable date",
			query:   service.ReportQuery{Date: "01/08/2026"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubReportQueryRepo{}
			svc := service.NewReportService(repo)

			summary, err := svc.GetDailyReport(context.Background(), 1, tt.query)
			if tt.wantErr {
				assert.ErrorIs(t, err, service.ErrInvalidDateRange)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, repo.from)
			assert.Equal(t, tt.wantTo, repo.to)
			assert.Equal(t, tt.wantFrom, summary.From)
			assert.Equal(t, tt.wantTo, summary.To)
		})
	}
}

func TestReportService_GetDailyReport_RelativeWindows(t *testing.T) {
	t.Run("empty query means today", func(t *testing.T) {
		repo := &stubReportQueryRepo{}
		svc := service.NewReportService(repo)

		_, err := svc.GetDailyReport(context.Background(), 1, service.ReportQuery{})

		require.NoError(t, err)
		assert.Equal(t, repo.from, repo.to)
		assert.Equal(t, time.UTC, repo.from.Location())
	})

	t.Run("last7 spans seven days inclusive", func(t *testing.T) {
		repo := &stubReportQueryRepo{}
		svc := service.NewReportService(repo)

		_, err := svc.GetDailyReport(context.Background(), 1, service.ReportQuery{Range: "last7"})

		require.NoError(t, err)
		assert.Equal(t, repo.to.AddDate(0, 0, -6), repo.from)
	})

	t.Run("this_month starts on the first", func(t *testing.T) {
		repo := &stubReportQueryRepo{}
		svc := service.NewReportService(repo)

		_, err := svc.GetDailyReport(context.Background(), 1, service.ReportQuery{Range: "this_month"})

		require.NoError(t, err)
		assert.Equal(t, 1, repo.from.Day())
		assert.Equal(t, repo.to.Month(), repo.from.Month())
	})
}

func TestReportService_GetDailyReport_Totals(t *testing.T) {
	repo := &stubReportQueryRepo{
		rows: []domain.DailyReportRow{
			{BookID: 1, TicketsSold: 14, TotalSales: decimal.NewFromInt(70)},
			{BookID: 2, TicketsSold: 3, TotalSales: decimal.RequireFromString("7.50")},
		},
	}
	svc := service.NewReportService(repo)

	summary, err := svc.GetDailyReport(context.Background(), 1, service.ReportQuery{Date: "2026-08-01"})

	require.NoError(t, err)
	assert.Equal(t, 17, summary.TicketsSold)
	assert.True(t, summary.TotalSales.Equal(decimal.RequireFromString("77.50")))
	assert.Len(t, summary.Rows, 2)
}

func TestReportService_GetMonthlyReport(t *testing.T) {
	t.Run("sums the day totals", func(t *testing.T) {
		repo := &stubReportQueryRepo{
			days: []domain.MonthlyDayTotal{
				{Date: date(2026, time.August, 1), TicketsSold: 10, TotalSales: decimal.NewFromInt(50)},
				{Date: date(2026, time.August, 2), TicketsSold: 4, TotalSales: decimal.NewFromInt(20)},
			},
			totals: []domain.MonthlyLotteryTotal{
				{LotteryID: 9, TicketsSold: 14, TotalSales: decimal.NewFromInt(70)},
			},
		}
		svc := service.NewReportService(repo)

		report, err := svc.GetMonthlyReport(context.Background(), 1, "2026-08")

		require.NoError(t, err)
		assert.Equal(t, "2026-08", report.Month)
		assert.Equal(t, 14, report.TicketsSold)
		assert.True(t, report.TotalSales.Equal(decimal.NewFromInt(70)))
		assert.Equal(t, date(2026, time.August, 1), repo.from)
		assert.Equal(t, date(2026, time.August, 31), repo.to)
		assert.Len(t, report.Lotteries, 1)
	})

	t.Run("rejects a malformed month", func(t *testing.T) {
		svc := service.NewReportService(&stubReportQueryRepo{})

		_, err := svc.GetMonthlyReport(context.Background(), 1, "August 2026")

		assert.ErrorIs(t, err, service.ErrInvalidDateRange)
	})
}
