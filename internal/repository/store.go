package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lottotrack/backoffice/internal/domain"
	"github.com/lottotrack/backoffice/internal/repository/dao"
)

var ErrStoreNotFound = dao.ErrStoreNotFound

type StoreDAO interface {
	Insert(ctx context.Context, store dao.Store) (dao.Store, error)
	FindByID(ctx context.Context, id uint) (dao.Store, error)
	FindAll(ctx context.Context) ([]dao.Store, error)
	FindByOwnerID(ctx context.Context, ownerID uint) ([]dao.Store, error)
	Update(ctx context.Context, store dao.Store) (dao.Store, error)
	DeleteCascade(ctx context.Context, storeID uint) error
	FindNotificationSetting(ctx context.Context, storeID uint) (dao.NotificationSetting, error)
	UpsertNotificationSetting(ctx context.Context, setting dao.NotificationSetting) (dao.NotificationSetting, error)
}

type StoreRepository struct {
	dao StoreDAO
}

func NewStoreRepository(dao StoreDAO) *StoreRepository {
	return &StoreRepository{
		dao: dao,
	}
}

func (r *StoreRepository) Create(ctx context.Context, store domain.Store) (domain.Store, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(store))
	if err != nil {
		return domain.Store{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *StoreRepository) FindByID(ctx context.Context, id uint) (domain.Store, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Store{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StoreRepository) FindAll(ctx context.Context) ([]domain.Store, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	stores := make([]domain.Store, len(found))
	for i, s := range found {
		stores[i] = r.daoToDomain(s)
	}

	return stores, nil
}

func (r *StoreRepository) FindByOwnerID(ctx context.Context, ownerID uint) ([]domain.Store, error) {
	found, err := r.dao.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByOwnerID -> %w", err)
	}

	stores := make([]domain.Store, len(found))
	for i, s := range found {
		stores[i] = r.daoToDomain(s)
	}

	return stores, nil
}

func (r *StoreRepository) Update(ctx context.Context, store domain.Store) (domain.Store, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(store))
	if err != nil {
		return domain.Store{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *StoreRepository) DeleteCascade(ctx context.Context, storeID uint) error {
	if err := r.dao.DeleteCascade(ctx, storeID); err != nil {
		return fmt.Errorf("r.dao.DeleteCascade -> %w", err)
	}

	return nil
}

// FindNotificationSetting returns the store's settings, falling back to
// defaults when none were saved yet.
func (r *StoreRepository) FindNotificationSetting(ctx context.Context, storeID uint) (domain.NotificationSetting, error) {
	found, err := r.dao.FindNotificationSetting(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NotificationSetting{
				StoreID:           storeID,
				LowStockThreshold: 10,
				NotifyOnFinished:  true,
			}, nil
		}

		return domain.NotificationSetting{}, fmt.Errorf("r.dao.FindNotificationSetting -> %w", err)
	}

	return r.settingDaoToDomain(found), nil
}

func (r *StoreRepository) UpsertNotificationSetting(ctx context.Context, setting domain.NotificationSetting) (domain.NotificationSetting, error) {
	saved, err := r.dao.UpsertNotificationSetting(ctx, dao.NotificationSetting{
		StoreID:           setting.StoreID,
		LowStockThreshold: setting.LowStockThreshold,
		NotifyOnFinished:  setting.NotifyOnFinished,
		Email:             setting.Email,
	})
	if err != nil {
		return domain.NotificationSetting{}, fmt.Errorf("r.dao.UpsertNotificationSetting -> %w", err)
	}

	return r.settingDaoToDomain(saved), nil
}

func (r *StoreRepository) domainToDao(s domain.Store) dao.Store {
	return dao.Store{
		ID:      s.ID,
		OwnerID: s.OwnerID,
		Name:    s.Name,
		Address: s.Address,
		Phone:   s.Phone,
	}
}

func (r *StoreRepository) daoToDomain(s dao.Store) domain.Store {
	return domain.Store{
		ID:        s.ID,
		OwnerID:   s.OwnerID,
		Name:      s.Name,
		Address:   s.Address,
		Phone:     s.Phone,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (r *StoreRepository) settingDaoToDomain(s dao.NotificationSetting) domain.NotificationSetting {
	return domain.NotificationSetting{
		ID:                s.ID,
		StoreID:           s.StoreID,
		LowStockThreshold: s.LowStockThreshold,
		NotifyOnFinished:  s.NotifyOnFinished,
		Email:             s.Email,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}
