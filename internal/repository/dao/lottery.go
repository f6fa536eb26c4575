package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrLotteryNotFound     = errors.New("lottery not found")
	ErrLotteryNumberExists = errors.New("lottery number already exists")
)

type LotteryMaster struct {
	ID uint `gorm:"primaryKey"`

	LotteryNumber string          `gorm:"unique;not null"`
	Name          string          `gorm:"not null"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StartNumber   int             `gorm:"not null"`
	EndNumber     int             `gorm:"not null"`
	Status        string          `gorm:"not null"` // "active" or "inactive"

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type LotteryDAO struct {
	db *gorm.DB
}

func NewLotteryDAO(db *gorm.DB) *LotteryDAO {
	return &LotteryDAO{
		db: db,
	}
}

func (d *LotteryDAO) Insert(ctx context.Context, master LotteryMaster) (LotteryMaster, error) {
	result := d.db.WithContext(ctx).Create(&master)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, "lottery_number") {
			return LotteryMaster{}, ErrLotteryNumberExists
		}

		return LotteryMaster{}, result.Error
	}

	return master, nil
}

func (d *LotteryDAO) FindByID(ctx context.Context, id uint) (LotteryMaster, error) {
	var master LotteryMaster

	result := d.db.WithContext(ctx).First(&master, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return LotteryMaster{}, ErrLotteryNotFound
		}

		return LotteryMaster{}, result.Error
	}

	return master, nil
}

func (d *LotteryDAO) FindByNumber(ctx context.Context, lotteryNumber string) (LotteryMaster, error) {
	var master LotteryMaster

	result := d.db.WithContext(ctx).First(&master, "lottery_number = ?", lotteryNumber)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return LotteryMaster{}, ErrLotteryNotFound
		}

		return LotteryMaster{}, result.Error
	}

	return master, nil
}

func (d *LotteryDAO) FindAll(ctx context.Context) ([]LotteryMaster, error) {
	var masters []LotteryMaster

	result := d.db.WithContext(ctx).Order("lottery_number").Find(&masters)
	if result.Error != nil {
		return nil, result.Error
	}

	return masters, nil
}

func (d *LotteryDAO) Update(ctx context.Context, master LotteryMaster) (LotteryMaster, error) {
	result := d.db.WithContext(ctx).Model(&LotteryMaster{}).Where("id = ?", master.ID).Updates(map[string]interface{}{
		"lottery_number": master.LotteryNumber,
		"name":           master.Name,
		"price":          master.Price,
		"start_number":   master.StartNumber,
		"end_number":     master.EndNumber,
		"status":         master.Status,
	})
	if result.Error != nil {
		return LotteryMaster{}, result.Error
	}
	if result.RowsAffected == 0 {
		return LotteryMaster{}, ErrLotteryNotFound
	}

	return d.FindByID(ctx, master.ID)
}

func (d *LotteryDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&LotteryMaster{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLotteryNotFound
	}

	return nil
}
