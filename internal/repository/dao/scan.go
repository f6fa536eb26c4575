package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// ScannedTicket is the append-only scan log. Rows are never updated.
type ScannedTicket struct {
	ID uint `gorm:"primaryKey"`

	StoreID      uint   `gorm:"not null;index"`
	RawBarcode   string `gorm:"not null"`
	LotteryID    uint   `gorm:"not null;index"`
	TicketNumber int    `gorm:"not null"`
	ScannedBy    uint   `gorm:"not null"`
	ScannedAt    time.Time `gorm:"not null;index"`
}

func (ScannedTicket) TableName() string {
	return "scanned_tickets"
}

// ScanHistoryRow joins a scan log entry with catalog metadata.
type ScanHistoryRow struct {
	ScannedTicket
	LotteryNumber string
	LotteryName   string
}

type ScanDAO struct {
	db *gorm.DB
}

func NewScanDAO(db *gorm.DB) *ScanDAO {
	return &ScanDAO{
		db: db,
	}
}

func (d *ScanDAO) Insert(ctx context.Context, entry ScannedTicket) (ScannedTicket, error) {
	result := d.db.WithContext(ctx).Create(&entry)
	if result.Error != nil {
		return ScannedTicket{}, result.Error
	}

	return entry, nil
}

func (d *ScanDAO) FindRecentByStore(ctx context.Context, storeID uint, limit int) ([]ScanHistoryRow, error) {
	var rows []ScanHistoryRow

	result := d.db.WithContext(ctx).
		Table("scanned_tickets").
		Select(`scanned_tickets.*,
			lottery_masters.lottery_number AS lottery_number,
			lottery_masters.name AS lottery_name`).
		Joins("JOIN lottery_masters ON lottery_masters.id = scanned_tickets.lottery_id").
		Where("scanned_tickets.store_id = ?", storeID).
		Order("scanned_tickets.scanned_at DESC").
		Limit(limit).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}
