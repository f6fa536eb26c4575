package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrBookNotFound = errors.New("book not found")

// StoreLotteryInventory is one book of tickets at a store. CurrentCount is
// the last observed ticket number.
type StoreLotteryInventory struct {
	ID uint `gorm:"primaryKey"`

	StoreID      uint   `gorm:"not null;uniqueIndex:idx_books_store_lottery_serial,priority:1"`
	LotteryID    uint   `gorm:"not null;uniqueIndex:idx_books_store_lottery_serial,priority:2"`
	SerialNumber string `gorm:"not null;uniqueIndex:idx_books_store_lottery_serial,priority:3"`

	TotalCount   int    `gorm:"not null"`
	CurrentCount int    `gorm:"not null"`
	Direction    string `gorm:"not null;default:'unknown'"` // "unknown", "asc", or "desc"
	Status       string `gorm:"not null;default:'active'"`  // "active" or "finished"

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (StoreLotteryInventory) TableName() string {
	return "store_lottery_inventories"
}

// InventoryWithMaster is a book row joined with its catalog record, for the
// store inventory listing.
type InventoryWithMaster struct {
	StoreLotteryInventory
	LotteryNumber string
	LotteryName   string
	Price         decimal.Decimal
	StartNumber   int
	EndNumber     int
	MasterStatus  string
}

type InventoryDAO struct {
	db *gorm.DB
}

func NewInventoryDAO(db *gorm.DB) *InventoryDAO {
	return &InventoryDAO{
		db: db,
	}
}

// UpdateUnderLock runs fn against the book identified by (store, lottery,
// serial) inside one transaction, holding a FOR UPDATE row lock so that two
// concurrent scans of the same book serialize instead of losing an update.
// When no row exists yet, fn receives a zero-valued book with isNew true and
// the row is created on commit.
func (d *InventoryDAO) UpdateUnderLock(ctx context.Context, storeID, lotteryID uint, serialNumber string,
	fn func(inv *StoreLotteryInventory, isNew bool) error) (StoreLotteryInventory, error) {
	var inv StoreLotteryInventory

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		isNew := false
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("store_id = ? AND lottery_id = ? AND serial_number = ?", storeID, lotteryID, serialNumber).
			First(&inv).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			isNew = true
			inv = StoreLotteryInventory{
				StoreID:      storeID,
				LotteryID:    lotteryID,
				SerialNumber: serialNumber,
			}
		}

		if err = fn(&inv, isNew); err != nil {
			return err
		}

		return tx.Save(&inv).Error
	})
	if err != nil {
		return StoreLotteryInventory{}, err
	}

	return inv, nil
}

func (d *InventoryDAO) FindByID(ctx context.Context, id uint) (StoreLotteryInventory, error) {
	var inv StoreLotteryInventory

	result := d.db.WithContext(ctx).First(&inv, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return StoreLotteryInventory{}, ErrBookNotFound
		}

		return StoreLotteryInventory{}, result.Error
	}

	return inv, nil
}

func (d *InventoryDAO) FindByStoreID(ctx context.Context, storeID uint) ([]InventoryWithMaster, error) {
	var rows []InventoryWithMaster

	result := d.db.WithContext(ctx).
		Table("store_lottery_inventories").
		Select(`store_lottery_inventories.*,
			lottery_masters.lottery_number AS lottery_number,
			lottery_masters.name AS lottery_name,
			lottery_masters.price AS price,
			lottery_masters.start_number AS start_number,
			lottery_masters.end_number AS end_number,
			lottery_masters.status AS master_status`).
		Joins("JOIN lottery_masters ON lottery_masters.id = store_lottery_inventories.lottery_id").
		Where("store_lottery_inventories.store_id = ?", storeID).
		Order("store_lottery_inventories.id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}
