package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lottotrack/backoffice/internal/domain"
	"github.com/lottotrack/backoffice/internal/repository"
)

var (
	ErrStoreNotFound     = repository.ErrStoreNotFound
	ErrStoreAccessDenied = errors.New("user does not have access to this store")
)

type StoreRepository interface {
	Create(ctx context.Context, store domain.Store) (domain.Store, error)
	FindByID(ctx context.Context, id uint) (domain.Store, error)
	FindAll(ctx context.Context) ([]domain.Store, error)
	FindByOwnerID(ctx context.Context, ownerID uint) ([]domain.Store, error)
	Update(ctx context.Context, store domain.Store) (domain.Store, error)
	DeleteCascade(ctx context.Context, storeID uint) error
	FindNotificationSetting(ctx context.Context, storeID uint) (domain.NotificationSetting, error)
	UpsertNotificationSetting(ctx context.Context, setting domain.NotificationSetting) (domain.NotificationSetting, error)
}

type StoreInventoryRepository interface {
	FindByStoreID(ctx context.Context, storeID uint) ([]domain.InventoryItem, error)
}

type StoreService struct {
	repo          StoreRepository
	inventoryRepo StoreInventoryRepository
}

func NewStoreService(repo StoreRepository, inventoryRepo StoreInventoryRepository) *StoreService {
	return &StoreService{
		repo:          repo,
		inventoryRepo: inventoryRepo,
	}
}

// AuthorizeAccess is the store access check every store-scoped operation
// goes through: the super admin sees everything, owners see their own
// stores, clerks see the one store they are bound to.
func (s *StoreService) AuthorizeAccess(ctx context.Context, user domain.User, storeID uint) (domain.Store, error) {
	store, err := s.repo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return domain.Store{}, ErrStoreNotFound
		}

		return domain.Store{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	switch user.Role {
	case domain.RoleSuperAdmin:
		return store, nil
	case domain.RoleOwner:
		if store.OwnerID == user.ID {
			return store, nil
		}
	case domain.RoleClerk:
		if user.StoreID != nil && *user.StoreID == storeID {
			return store, nil
		}
	}

	return domain.Store{}, ErrStoreAccessDenied
}

func (s *StoreService) CreateStore(ctx context.Context, store domain.Store) (domain.Store, error) {
	created, err := s.repo.Create(ctx, store)
	if err != nil {
		return domain.Store{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *StoreService) GetStores(ctx context.Context, user domain.User) ([]domain.Store, error) {
	if user.IsSuperAdmin() {
		stores, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
		}

		return stores, nil
	}

	if user.Role == domain.RoleClerk {
		if user.StoreID == nil {
			return []domain.Store{}, nil
		}

		store, err := s.repo.FindByID(ctx, *user.StoreID)
		if err != nil {
			return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
		}

		return []domain.Store{store}, nil
	}

	stores, err := s.repo.FindByOwnerID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByOwnerID -> %w", err)
	}

	return stores, nil
}

func (s *StoreService) UpdateStore(ctx context.Context, user domain.User, store domain.Store) (domain.Store, error) {
	existing, err := s.AuthorizeAccess(ctx, user, store.ID)
	if err != nil {
		return domain.Store{}, err
	}
	store.OwnerID = existing.OwnerID

	updated, err := s.repo.Update(ctx, store)
	if err != nil {
		return domain.Store{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *StoreService) DeleteStore(ctx context.Context, user domain.User, storeID uint) error {
	if _, err := s.AuthorizeAccess(ctx, user, storeID); err != nil {
		return err
	}

	if err := s.repo.DeleteCascade(ctx, storeID); err != nil {
		return fmt.Errorf("s.repo.DeleteCascade -> %w", err)
	}

	return nil
}

func (s *StoreService) GetInventory(ctx context.Context, user domain.User, storeID uint) ([]domain.InventoryItem, error) {
	if _, err := s.AuthorizeAccess(ctx, user, storeID); err != nil {
		return nil, err
	}

	items, err := s.inventoryRepo.FindByStoreID(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("s.inventoryRepo.FindByStoreID -> %w", err)
	}

	return items, nil
}

func (s *StoreService) GetNotificationSetting(ctx context.Context, user domain.User, storeID uint) (domain.NotificationSetting, error) {
	if _, err := s.AuthorizeAccess(ctx, user, storeID); err != nil {
		return domain.NotificationSetting{}, err
	}

	setting, err := s.repo.FindNotificationSetting(ctx, storeID)
	if err != nil {
		return domain.NotificationSetting{}, fmt.Errorf("s.repo.FindNotificationSetting -> %w", err)
	}

	return setting, nil
}

func (s *StoreService) UpdateNotificationSetting(ctx context.Context, user domain.User, setting domain.NotificationSetting) (domain.NotificationSetting, error) {
	if _, err := s.AuthorizeAccess(ctx, user, setting.StoreID); err != nil {
		return domain.NotificationSetting{}, err
	}

	saved, err := s.repo.UpsertNotificationSetting(ctx, setting)
	if err != nil {
		return domain.NotificationSetting{}, fmt.Errorf("s.repo.UpsertNotificationSetting -> %w", err)
	}

	return saved, nil
}
