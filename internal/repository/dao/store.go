package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrStoreNotFound = errors.New("store not found")

type Store struct {
	ID uint `gorm:"primaryKey"`

	OwnerID uint   `gorm:"not null;index"`
	Name    string `gorm:"not null"`
	Address string
	Phone   string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type NotificationSetting struct {
	ID uint `gorm:"primaryKey"`

	StoreID           uint `gorm:"not null;uniqueIndex"`
	LowStockThreshold int  `gorm:"not null;default:10"`
	NotifyOnFinished  bool `gorm:"not null;default:true"`
	Email             string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type StoreDAO struct {
	db *gorm.DB
}

func NewStoreDAO(db *gorm.DB) *StoreDAO {
	return &StoreDAO{
		db: db,
	}
}

func (d *StoreDAO) Insert(ctx context.Context, store Store) (Store, error) {
	result := d.db.WithContext(ctx).Create(&store)
	if result.Error != nil {
		return Store{}, result.Error
	}

	return store, nil
}

func (d *StoreDAO) FindByID(ctx context.Context, id uint) (Store, error) {
	var store Store

	result := d.db.WithContext(ctx).First(&store, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Store{}, ErrStoreNotFound
		}

		return Store{}, result.Error
	}

	return store, nil
}

func (d *StoreDAO) FindAll(ctx context.Context) ([]Store, error) {
	var stores []Store

	result := d.db.WithContext(ctx).Order("id").Find(&stores)
	if result.Error != nil {
		return nil, result.Error
	}

	return stores, nil
}

func (d *StoreDAO) FindByOwnerID(ctx context.Context, ownerID uint) ([]Store, error) {
	var stores []Store

	result := d.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&stores)
	if result.Error != nil {
		return nil, result.Error
	}

	return stores, nil
}

func (d *StoreDAO) Update(ctx context.Context, store Store) (Store, error) {
	result := d.db.WithContext(ctx).Model(&Store{}).Where("id = ?", store.ID).Updates(map[string]interface{}{
		"name":    store.Name,
		"address": store.Address,
		"phone":   store.Phone,
	})
	if result.Error != nil {
		return Store{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Store{}, ErrStoreNotFound
	}

	return d.FindByID(ctx, store.ID)
}

// DeleteCascade removes a store and its dependent rows (reports, scan logs,
// books, notification settings, clerk bindings) in one transaction.
func (d *StoreDAO) DeleteCascade(ctx context.Context, storeID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("store_id = ?", storeID).Delete(&DailyReport{}).Error; err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", storeID).Delete(&ScannedTicket{}).Error; err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", storeID).Delete(&StoreLotteryInventory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", storeID).Delete(&NotificationSetting{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&User{}).Where("store_id = ?", storeID).Update("store_id", nil).Error; err != nil {
			return err
		}

		result := tx.Delete(&Store{}, storeID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStoreNotFound
		}

		return nil
	})
}

func (d *StoreDAO) FindNotificationSetting(ctx context.Context, storeID uint) (NotificationSetting, error) {
	var setting NotificationSetting

	result := d.db.WithContext(ctx).Where("store_id = ?", storeID).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return NotificationSetting{}, gorm.ErrRecordNotFound
		}

		return NotificationSetting{}, result.Error
	}

	return setting, nil
}

func (d *StoreDAO) UpsertNotificationSetting(ctx context.Context, setting NotificationSetting) (NotificationSetting, error) {
	var existing NotificationSetting
	err := d.db.WithContext(ctx).Where("store_id = ?", setting.StoreID).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return NotificationSetting{}, err
		}

		if err = d.db.WithContext(ctx).Create(&setting).Error; err != nil {
			return NotificationSetting{}, err
		}

		return setting, nil
	}

	existing.LowStockThreshold = setting.LowStockThreshold
	existing.NotifyOnFinished = setting.NotifyOnFinished
	existing.Email = setting.Email
	if err = d.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return NotificationSetting{}, err
	}

	return existing, nil
}
