package repository

import (
	"context"
	"fmt"

	"github.com/lottotrack/backoffice/internal/domain"
	"github.com/lottotrack/backoffice/internal/repository/dao"
)

var (
	ErrLotteryNotFound     = dao.ErrLotteryNotFound
	ErrLotteryNumberExists = dao.ErrLotteryNumberExists
)

type LotteryDAO interface {
	Insert(ctx context.Context, master dao.LotteryMaster) (dao.LotteryMaster, error)
	FindByID(ctx context.Context, id uint) (dao.LotteryMaster, error)
	FindByNumber(ctx context.Context, lotteryNumber string) (dao.LotteryMaster, error)
	FindAll(ctx context.Context) ([]dao.LotteryMaster, error)
	Update(ctx context.Context, master dao.LotteryMaster) (dao.LotteryMaster, error)
	Delete(ctx context.Context, id uint) error
}

type LotteryRepository struct {
	dao LotteryDAO
}

func NewLotteryRepository(dao LotteryDAO) *LotteryRepository {
	return &LotteryRepository{
		dao: dao,
	}
}

func (r *LotteryRepository) Create(ctx context.Context, master domain.LotteryMaster) (domain.LotteryMaster, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(master))
	if err != nil {
		return domain.LotteryMaster{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *LotteryRepository) FindByID(ctx context.Context, id uint) (domain.LotteryMaster, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.LotteryMaster{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *LotteryRepository) FindByNumber(ctx context.Context, lotteryNumber string) (domain.LotteryMaster, error) {
	found, err := r.dao.FindByNumber(ctx, lotteryNumber)
	if err != nil {
		return domain.LotteryMaster{}, fmt.Errorf("r.dao.FindByNumber -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *LotteryRepository) FindAll(ctx context.Context) ([]domain.LotteryMaster, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	masters := make([]domain.LotteryMaster, len(found))
	for i, m := range found {
		masters[i] = r.daoToDomain(m)
	}

	return masters, nil
}

func (r *LotteryRepository) Update(ctx context.Context, master domain.LotteryMaster) (domain.LotteryMaster, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(master))
	if err != nil {
		return domain.LotteryMaster{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *LotteryRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *LotteryRepository) domainToDao(m domain.LotteryMaster) dao.LotteryMaster {
	return dao.LotteryMaster{
		ID:            m.ID,
		LotteryNumber: m.LotteryNumber,
		Name:          m.Name,
		Price:         m.Price,
		StartNumber:   m.StartNumber,
		EndNumber:     m.EndNumber,
		Status:        string(m.Status),
	}
}

func (r *LotteryRepository) daoToDomain(m dao.LotteryMaster) domain.LotteryMaster {
	return domain.LotteryMaster{
		ID:            m.ID,
		LotteryNumber: m.LotteryNumber,
		Name:          m.Name,
		Price:         m.Price,
		StartNumber:   m.StartNumber,
		EndNumber:     m.EndNumber,
		Status:        domain.LotteryStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
