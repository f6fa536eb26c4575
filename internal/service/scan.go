package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lottotrack/backoffice/internal/domain"
	"github.com/lottotrack/backoffice/internal/pkg/barcode"
	"github.com/lottotrack/backoffice/internal/repository"
)

// Engine errors, re-exported so handlers depend on the service layer only.
var (
	ErrOutOfRange        = domain.ErrOutOfRange
	ErrDirectionRequired = domain.ErrDirectionRequired
	ErrDirectionConflict = domain.ErrDirectionConflict
	ErrBackwardMovement  = domain.ErrBackwardMovement
	ErrForwardMovement   = domain.ErrForwardMovement
	ErrBookExhausted     = domain.ErrBookExhausted
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

type ScanLotteryRepository interface {
	FindByNumber(ctx context.Context, lotteryNumber string) (domain.LotteryMaster, error)
}

type ScanInventoryRepository interface {
	Reconcile(ctx context.Context, storeID, lotteryID uint, serialNumber string,
		fn func(book *domain.Book, isNew bool) error) (domain.Book, error)
}

type ScanLogRepository interface {
	Append(ctx context.Context, entry domain.ScannedTicket) (domain.ScannedTicket, error)
	FindRecentByStore(ctx context.Context, storeID uint, limit int) ([]domain.ScanHistoryEntry, error)
}

type ScanReportRepository interface {
	UpsertAdditive(ctx context.Context, report domain.DailyReport) error
}

// ScanInput is one scan request after authorization. Payload carries either
// the raw barcode or the pre-split fields; Direction is only required on
// the first scan of a book.
type ScanInput struct {
	StoreID   uint
	Payload   barcode.Payload
	Direction string
	ScannedBy uint
}

// ScanService runs the inventory reconciliation pipeline: decode the
// barcode, look up the master catalog, reconcile the book under a row
// lock, then append the audit log and accumulate the daily report as
// best-effort side effects.
type ScanService struct {
	lotteries   ScanLotteryRepository
	inventories ScanInventoryRepository
	scans       ScanLogRepository
	reports     ScanReportRepository
	now         func() time.Time
}

func NewScanService(lotteries ScanLotteryRepository, inventories ScanInventoryRepository,
	scans ScanLogRepository, reports ScanReportRepository) *ScanService {
	return &ScanService{
		lotteries:   lotteries,
		inventories: inventories,
		scans:       scans,
		reports:     reports,
		now:         time.Now,
	}
}

func (s *ScanService) ProcessScan(ctx context.Context, input ScanInput) (domain.ScanResult, error) {
	ticket, err := barcode.Decode(input.Payload)
	if err != nil {
		return domain.ScanResult{}, err
	}

	requested, err := domain.ParseDirection(input.Direction)
	if err != nil {
		return domain.ScanResult{}, err
	}

	master, err := s.lotteries.FindByNumber(ctx, ticket.LotteryNumber)
	if err != nil {
		if errors.Is(err, repository.ErrLotteryNotFound) {
			return domain.ScanResult{GameActive: false, Reason: domain.ScanReasonNotFound}, nil
		}

		return domain.ScanResult{}, fmt.Errorf("s.lotteries.FindByNumber -> %w", err)
	}

	if !master.IsActive() {
		return domain.ScanResult{
			GameActive:    false,
			Reason:        domain.ScanReasonInactive,
			LotteryMaster: &master,
		}, nil
	}

	var delta int
	book, err := s.inventories.Reconcile(ctx, input.StoreID, master.ID, ticket.TicketSerial,
		func(b *domain.Book, isNew bool) error {
			d, reconcileErr := b.Reconcile(master, ticket.TicketNumber, requested, isNew)
			if reconcileErr != nil {
				return reconcileErr
			}
			delta = d

			return nil
		})
	if err != nil {
		return domain.ScanResult{}, err
	}

	scanID := s.appendScanLog(ctx, input, ticket, master)
	s.accumulateReport(ctx, book, master, delta, scanID)

	return domain.ScanResult{
		GameActive:          true,
		LotteryMaster:       &master,
		Book:                &book,
		TicketsSoldThisScan: delta,
		Remaining:           book.Remaining(master),
	}, nil
}

// appendScanLog writes the audit row. The log is best-effort: a failure is
// logged and the scan still succeeds, so callers get nil back instead of an
// error and the report accumulator knows to skip.
func (s *ScanService) appendScanLog(ctx context.Context, input ScanInput, ticket barcode.Ticket, master domain.LotteryMaster) *uint {
	entry, err := s.scans.Append(ctx, domain.ScannedTicket{
		StoreID:      input.StoreID,
		RawBarcode:   ticket.Raw,
		LotteryID:    master.ID,
		TicketNumber: ticket.TicketNumber,
		ScannedBy:    input.ScannedBy,
		ScannedAt:    s.now(),
	})
	if err != nil {
		zap.L().Warn("scan log write failed, continuing",
			zap.Uint("store_id", input.StoreID),
			zap.String("lottery_number", master.LotteryNumber),
			zap.Error(err))

		return nil
	}

	return &entry.ID
}

// accumulateReport upserts the per-day aggregate. Skipped when the scan
// sold nothing or the log write failed; a failed upsert is logged and
// swallowed because inventory state is authoritative, report state is
// advisory.
func (s *ScanService) accumulateReport(ctx context.Context, book domain.Book, master domain.LotteryMaster, delta int, scanID *uint) {
	if delta <= 0 || scanID == nil {
		return
	}

	now := s.now()
	err := s.reports.UpsertAdditive(ctx, domain.DailyReport{
		StoreID:     book.StoreID,
		LotteryID:   master.ID,
		BookID:      book.ID,
		ReportDate:  time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		TicketsSold: delta,
		TotalSales:  master.Price.Mul(decimal.NewFromInt(int64(delta))),
		LastScanID:  scanID,
	})
	if err != nil {
		zap.L().Warn("daily report upsert failed, continuing",
			zap.Uint("store_id", book.StoreID),
			zap.Uint("book_id", book.ID),
			zap.Int("delta", delta),
			zap.Error(err))
	}
}

func (s *ScanService) GetHistory(ctx context.Context, storeID uint, limit int) ([]domain.ScanHistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	entries, err := s.scans.FindRecentByStore(ctx, storeID, limit)
	if err != nil {
		return nil, fmt.Errorf("s.scans.FindRecentByStore -> %w", err)
	}

	return entries, nil
}
