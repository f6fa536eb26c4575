package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottotrack/backoffice/internal/domain"
	"github.com/lottotrack/backoffice/internal/pkg/barcode"
	"github.com/lottotrack/backoffice/internal/repository"
	"github.com/lottotrack/backoffice/internal/service"
)

type stubLotteryRepo struct {
	master domain.LotteryMaster
	err    error
}

func (r *stubLotteryRepo) FindByNumber(_ context.Context, lotteryNumber string) (domain.LotteryMaster, error) {
	if r.err != nil {
		return domain.LotteryMaster{}, r.err
	}
	if r.master.LotteryNumber != lotteryNumber {
		return domain.LotteryMaster{}, repository.ErrLotteryNotFound
	}

	return r.master, nil
}

// stubInventoryRepo keeps a single book in memory and replays the
// repository's reconcile contract: load-or-create, run the callback, save.
type stubInventoryRepo struct {
	book   domain.Book
	exists bool
}

func (r *stubInventoryRepo) Reconcile(_ context.Context, storeID, lotteryID uint, serialNumber string,
	fn func(book *domain.Book, isNew bool) error) (domain.Book, error) {
	book := r.book
	if !r.exists {
		book = domain.Book{
			StoreID:      storeID,
			LotteryID:    lotteryID,
			SerialNumber: serialNumber,
		}
	}

	if err := fn(&book, !r.exists); err != nil {
		return domain.Book{}, err
	}

	book.ID = 77
	r.book = book
	r.exists = true

	return book, nil
}

type stubScanLog struct {
	fail    bool
	entries []domain.ScannedTicket
}

func (r *stubScanLog) Append(_ context.Context, entry domain.ScannedTicket) (domain.ScannedTicket, error) {
	if r.fail {
		return domain.ScannedTicket{}, errors.New("log table is down")
	}

	entry.ID = uint(len(r.entries) + 1)
	r.entries = append(r.entries, entry)

	return entry, nil
}

func (r *stubScanLog) FindRecentByStore(_ context.Context, _ uint, limit int) ([]domain.ScanHistoryEntry, error) {
	out := make([]domain.ScanHistoryEntry, 0, limit)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, domain.ScanHistoryEntry{ScannedTicket: r.entries[i]})
	}

	return out, nil
}

type stubReportRepo struct {
	fail    bool
	upserts []domain.DailyReport
}

func (r *stubReportRepo) UpsertAdditive(_ context.Context, report domain.DailyReport) error {
	if r.fail {
		return errors.New("report table is down")
	}

	r.upserts = append(r.upserts, report)

	return nil
}

func activeMaster() domain.LotteryMaster {
	return domain.LotteryMaster{
		ID:            9,
		LotteryNumber: "045",
		Name:          "Gold Rush",
		Price:         decimal.NewFromInt(5),
		StartNumber:   0,
		EndNumber:     149,
		Status:        domain.LotteryStatusActive,
	}
}

func newScanFixture(master domain.LotteryMaster) (*service.ScanService, *stubInventoryRepo, *stubScanLog, *stubReportRepo) {
	inventories := &stubInventoryRepo{}
	scans := &stubScanLog{}
	reports := &stubReportRepo{}
	svc := service.NewScanService(&stubLotteryRepo{master: master}, inventories, scans, reports)

	return svc, inventories, scans, reports
}

func TestScanService_ProcessScan_UnknownGame(t *testing.T) {
	svc, inventories, scans, _ := newScanFixture(activeMaster())

	result, err := svc.ProcessScan(context.Background(), service.ScanInput{
		StoreID: 1,
		Payload: barcode.Payload{Raw: "999-000123-001"},
	})

	require.NoError(t, err, "an unknown game is a result, not an error")
	assert.False(t, result.GameActive)
	assert.Equal(t, domain.ScanReasonNotFound, result.Reason)
	assert.Nil(t, result.LotteryMaster)
	assert.False(t, inventories.exists, "no book should be touched")
	assert.Empty(t, scans.entries, "no scan should be logged")
}

func TestScanService_ProcessScan_InactiveGame(t *testing.T) {
	master := activeMaster()
	master.Status = domain.LotteryStatusInactive
	svc, inventories, _, _ := newScanFixture(master)

	result, err := svc.ProcessScan(context.Background(), service.ScanInput{
		StoreID: 1,
		Payload: barcode.Payload{Raw: "045-000123-001"},
	})

	require.NoError(t, err)
	assert.False(t, result.GameActive)
	assert.Equal(t, domain.ScanReasonInactive, result.Reason)
	require.NotNil(t, result.LotteryMaster)
	assert.Equal(t, "Gold Rush", result.LotteryMaster.Name)
	assert.False(t, inventories.exists)
}

func TestScanService_ProcessScan_FirstThenSecondScan(t *testing.T) {
	svc, _, scans, reports := newScanFixture(activeMaster())
	ctx := context.Background()

	// First scan of the book: baseline only, nothing sold.
	first, err := svc.ProcessScan(ctx, service.ScanInput{
		StoreID:   1,
		Payload:   barcode.Payload{Raw: "045-000123-001"},
		Direction: "asc",
		ScannedBy: 42,
	})

	require.NoError(t, err)
	assert.True(t, first.GameActive)
	assert.Equal(t, 0, first.TicketsSoldThisScan)
	require.NotNil(t, first.Book)
	assert.Equal(t, 1, first.Book.CurrentCount)
	assert.Equal(t, domain.DirectionAsc, first.Book.Direction)
	assert.Len(t, scans.entries, 1)
	assert.Empty(t, reports.upserts, "a zero-delta scan must not create a report row")

	// Second scan jumps to ticket 15: fourteen sold.
	second, err := svc.ProcessScan(ctx, service.ScanInput{
		StoreID:   1,
		Payload:   barcode.Payload{Raw: "045-000123-015"},
		ScannedBy: 42,
	})

	require.NoError(t, err)
	assert.Equal(t, 14, second.TicketsSoldThisScan)
	assert.Equal(t, 135, second.Remaining)

	require.Len(t, reports.upserts, 1)
	report := reports.upserts[0]
	assert.Equal(t, uint(1), report.StoreID)
	assert.Equal(t, uint(9), report.LotteryID)
	assert.Equal(t, 14, report.TicketsSold)
	assert.True(t, report.TotalSales.Equal(decimal.NewFromInt(70)), "14 tickets at $5")
	require.NotNil(t, report.LastScanID)
	assert.Equal(t, uint(2), *report.LastScanID)
}

func TestScanService_ProcessScan_StructuredPayload(t *testing.T) {
	svc, _, _, _ := newScanFixture(activeMaster())

	result, err := svc.ProcessScan(context.Background(), service.ScanInput{
		StoreID: 1,
		Payload: barcode.Payload{
			LotteryNumber: "045",
			TicketSerial:  "000123",
			TicketNumber:  "7",
		},
		Direction: "desc",
	})

	require.NoError(t, err)
	require.NotNil(t, result.Book)
	assert.Equal(t, domain.DirectionDesc, result.Book.Direction)
	assert.Equal(t, 7, result.Book.CurrentCount)
}

func TestScanService_ProcessScan_EngineRejections(t *testing.T) {
	tests := []struct {
		name    string
		input   service.ScanInput
		wantErr error
	}{
		{
			name:    "malformed barcode",
			input:   service.ScanInput{StoreID: 1, Payload: barcode.Payload{Raw: "garbage"}},
			wantErr: barcode.ErrInvalidFormat,
		},
		{
			name:    "empty payload",
			input:   service.ScanInput{StoreID: 1},
			wantErr: barcode.ErrMissingFields,
		},
		{
			name: "invalid direction string",
			input: service.ScanInput{
				StoreID:   1,
				Payload:   barcode.Payload{Raw: "045-000123-001"},
				Direction: "sideways",
			},
			wantErr: domain.ErrInvalidDirection,
		},
		{
			name: "first scan without direction",
			input: service.ScanInput{
				StoreID: 1,
				Payload: barcode.Payload{Raw: "045-000123-001"},
			},
			wantErr: service.ErrDirectionRequired,
		},
		{
			name: "ticket outside the game range",
			input: service.ScanInput{
				StoreID:   1,
				Payload:   barcode.Payload{Raw: "045-000123-150"},
				Direction: "asc",
			},
			wantErr: service.ErrOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, scans, reports := newScanFixture(activeMaster())

			_, err := svc.ProcessScan(context.Background(), tt.input)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, scans.entries, "rejected scans must not be logged")
			assert.Empty(t, reports.upserts)
		})
	}
}

func TestScanService_ProcessScan_BackwardMovement(t *testing.T) {
	svc, _, _, _ := newScanFixture(activeMaster())
	ctx := context.Background()

	_, err := svc.ProcessScan(ctx, service.ScanInput{
		StoreID:   1,
		Payload:   barcode.Payload{Raw: "045-000123-015"},
		Direction: "asc",
	})
	require.NoError(t, err)

	_, err = svc.ProcessScan(ctx, service.ScanInput{
		StoreID: 1,
		Payload: barcode.Payload{Raw: "045-000123-010"},
	})

	assert.ErrorIs(t, err, service.ErrBackwardMovement)
}

func TestScanService_ProcessScan_SideEffectFailures(t *testing.T) {
	t.Run("scan log failure does not fail the scan", func(t *testing.T) {
		svc, _, scans, reports := newScanFixture(activeMaster())
		ctx := context.Background()

		_, err := svc.ProcessScan(ctx, service.ScanInput{
			StoreID:   1,
			Payload:   barcode.Payload{Raw: "045-000123-001"},
			Direction: "asc",
		})
		require.NoError(t, err)

		scans.fail = true
		result, err := svc.ProcessScan(ctx, service.ScanInput{
			StoreID: 1,
			Payload: barcode.Payload{Raw: "045-000123-015"},
		})

		require.NoError(t, err)
		assert.Equal(t, 14, result.TicketsSoldThisScan)
		assert.Empty(t, reports.upserts, "without a scan ID the report row is skipped")
	})

	t.Run("report failure does not fail the scan", func(t *testing.T) {
		svc, _, _, reports := newScanFixture(activeMaster())
		ctx := context.Background()

		_, err := svc.ProcessScan(ctx, service.ScanInput{
			StoreID:   1,
			Payload:   barcode.Payload{Raw: "045-000123-001"},
			Direction: "asc",
		})
		require.NoError(t, err)

		reports.fail = true
		result, err := svc.ProcessScan(ctx, service.ScanInput{
			StoreID: 1,
			Payload: barcode.Payload{Raw: "045-000123-015"},
		})

		require.NoError(t, err)
		assert.Equal(t, 14, result.TicketsSoldThisScan)
	})
}

func TestScanService_GetHistory_LimitClamping(t *testing.T) {
	scans := &stubScanLog{}
	for i := 0; i < 300; i++ {
		_, err := scans.Append(context.Background(), domain.ScannedTicket{StoreID: 1})
		require.NoError(t, err)
	}
	svc := service.NewScanService(&stubLotteryRepo{}, &stubInventoryRepo{}, scans, &stubReportRepo{})

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "zero falls back to the default", limit: 0, want: 50},
		{name: "negative falls back to the default", limit: -5, want: 50},
		{name: "explicit limit is honored", limit: 10, want: 10},
		{name: "oversized limit is capped", limit: 1000, want: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := svc.GetHistory(context.Background(), 1, tt.limit)

			require.NoError(t, err)
			assert.Len(t, entries, tt.want)
		})
	}
}
