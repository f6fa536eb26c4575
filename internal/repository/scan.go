package repository

import (
	"context"
	"fmt"

	"github.com/lottotrack/backoffice/internal/domain"
	"github.com/lottotrack/backoffice/internal/repository/dao"
)

type ScanDAO interface {
	Insert(ctx context.Context, entry dao.ScannedTicket) (dao.ScannedTicket, error)
	FindRecentByStore(ctx context.Context, storeID uint, limit int) ([]dao.ScanHistoryRow, error)
}

type ScanRepository struct {
	dao ScanDAO
}

func NewScanRepository(dao ScanDAO) *ScanRepository {
	return &ScanRepository{
		dao: dao,
	}
}

func (r *ScanRepository) Append(ctx context.Context, entry domain.ScannedTicket) (domain.ScannedTicket, error) {
	created, err := r.dao.Insert(ctx, dao.ScannedTicket{
		StoreID:      entry.StoreID,
		RawBarcode:   entry.RawBarcode,
		LotteryID:    entry.LotteryID,
		TicketNumber: entry.TicketNumber,
		ScannedBy:    entry.ScannedBy,
		ScannedAt:    entry.ScannedAt,
	})
	if err != nil {
		return domain.ScannedTicket{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ScanRepository) FindRecentByStore(ctx context.Context, storeID uint, limit int) ([]domain.ScanHistoryEntry, error) {
	found, err := r.dao.FindRecentByStore(ctx, storeID, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRecentByStore -> %w", err)
	}

	entries := make([]domain.ScanHistoryEntry, len(found))
	for i, row := range found {
		entries[i] = domain.ScanHistoryEntry{
			ScannedTicket: r.daoToDomain(row.ScannedTicket),
			LotteryNumber: row.LotteryNumber,
			LotteryName:   row.LotteryName,
		}
	}

	return entries, nil
}

func (r *ScanRepository) daoToDomain(s dao.ScannedTicket) domain.ScannedTicket {
	return domain.ScannedTicket{
		ID:           s.ID,
		StoreID:      s.StoreID,
		RawBarcode:   s.RawBarcode,
		LotteryID:    s.LotteryID,
		TicketNumber: s.TicketNumber,
		ScannedBy:    s.ScannedBy,
		ScannedAt:    s.ScannedAt,
	}
}
