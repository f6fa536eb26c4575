package repository

import (
	"context"
	"fmt"

	"github.com/lottotrack/backoffice/internal/domain"
	"github.com/lottotrack/backoffice/internal/repository/dao"
)

var ErrBookNotFound = dao.ErrBookNotFound

type InventoryDAO interface {
	UpdateUnderLock(ctx context.Context, storeID, lotteryID uint, serialNumber string,
		fn func(inv *dao.StoreLotteryInventory, isNew bool) error) (dao.StoreLotteryInventory, error)
	FindByID(ctx context.Context, id uint) (dao.StoreLotteryInventory, error)
	FindByStoreID(ctx context.Context, storeID uint) ([]dao.InventoryWithMaster, error)
}

type InventoryRepository struct {
	dao InventoryDAO
}

func NewInventoryRepository(dao InventoryDAO) *InventoryRepository {
	return &InventoryRepository{
		dao: dao,
	}
}

// Reconcile runs fn against the book identified by (store, lottery, serial)
// under the dao's row lock. fn sees the domain book plus an isNew flag and
// may mutate it; the mutated state is what gets persisted.
func (r *InventoryRepository) Reconcile(ctx context.Context, storeID, lotteryID uint, serialNumber string,
	fn func(book *domain.Book, isNew bool) error) (domain.Book, error) {
	updated, err := r.dao.UpdateUnderLock(ctx, storeID, lotteryID, serialNumber,
		func(inv *dao.StoreLotteryInventory, isNew bool) error {
			book := r.daoToDomain(*inv)
			if err := fn(&book, isNew); err != nil {
				return err
			}

			inv.TotalCount = book.TotalCount
			inv.CurrentCount = book.CurrentCount
			inv.Direction = string(book.Direction)
			inv.Status = string(book.Status)

			return nil
		})
	if err != nil {
		return domain.Book{}, fmt.Errorf("r.dao.UpdateUnderLock -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *InventoryRepository) FindByID(ctx context.Context, id uint) (domain.Book, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Book{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *InventoryRepository) FindByStoreID(ctx context.Context, storeID uint) ([]domain.InventoryItem, error) {
	found, err := r.dao.FindByStoreID(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStoreID -> %w", err)
	}

	items := make([]domain.InventoryItem, len(found))
	for i, row := range found {
		book := r.daoToDomain(row.StoreLotteryInventory)
		master := domain.LotteryMaster{
			ID:            row.LotteryID,
			LotteryNumber: row.LotteryNumber,
			Name:          row.LotteryName,
			Price:         row.Price,
			StartNumber:   row.StartNumber,
			EndNumber:     row.EndNumber,
			Status:        domain.LotteryStatus(row.MasterStatus),
		}

		items[i] = domain.InventoryItem{
			Book:          book,
			LotteryNumber: master.LotteryNumber,
			LotteryName:   master.Name,
			Price:         master.Price,
			Remaining:     book.Remaining(master),
			GameActive:    master.IsActive(),
		}
	}

	return items, nil
}

func (r *InventoryRepository) daoToDomain(inv dao.StoreLotteryInventory) domain.Book {
	return domain.Book{
		ID:           inv.ID,
		StoreID:      inv.StoreID,
		LotteryID:    inv.LotteryID,
		SerialNumber: inv.SerialNumber,
		TotalCount:   inv.TotalCount,
		CurrentCount: inv.CurrentCount,
		Direction:    domain.Direction(inv.Direction),
		Status:       domain.BookStatus(inv.Status),
		CreatedAt:    inv.CreatedAt,
		UpdatedAt:    inv.UpdatedAt,
	}
}
