package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserEmailExists = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	Name    string `gorm:"not null"`
	Role    string `gorm:"not null"` // "owner", "clerk", or "super_admin"
	StoreID *uint  `gorm:"index"`    // clerks are bound to one store

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_users_email"`) {
			return User{}, ErrUserEmailExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

// DeleteOwnerCascade removes an owner account and everything hanging off it:
// daily reports, scan logs, books, clerk accounts, stores, then the owner.
// The whole fan-out runs in one transaction; any failure rolls it all back.
func (d *UserDAO) DeleteOwnerCascade(ctx context.Context, ownerID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var storeIDs []uint
		if err := tx.Model(&Store{}).Where("owner_id = ?", ownerID).Pluck("id", &storeIDs).Error; err != nil {
			return err
		}

		if len(storeIDs) > 0 {
			if err := tx.Where("store_id IN ?", storeIDs).Delete(&DailyReport{}).Error; err != nil {
				return err
			}
			if err := tx.Where("store_id IN ?", storeIDs).Delete(&ScannedTicket{}).Error; err != nil {
				return err
			}
			if err := tx.Where("store_id IN ?", storeIDs).Delete(&StoreLotteryInventory{}).Error; err != nil {
				return err
			}
			if err := tx.Where("store_id IN ?", storeIDs).Delete(&NotificationSetting{}).Error; err != nil {
				return err
			}
			if err := tx.Where("store_id IN ? AND role = ?", storeIDs, "clerk").Delete(&User{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", storeIDs).Delete(&Store{}).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&User{}, ownerID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		return nil
	})
}
