package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lottotrack/backoffice/internal/domain"
	"github.com/lottotrack/backoffice/internal/repository"
)

var (
	ErrLotteryNotFound     = repository.ErrLotteryNotFound
	ErrLotteryNumberExists = repository.ErrLotteryNumberExists
	ErrInvalidTicketRange  = errors.New("start_number must not exceed end_number")
)

type CatalogRepository interface {
	Create(ctx context.Context, master domain.LotteryMaster) (domain.LotteryMaster, error)
	FindByID(ctx context.Context, id uint) (domain.LotteryMaster, error)
	FindAll(ctx context.Context) ([]domain.LotteryMaster, error)
	Update(ctx context.Context, master domain.LotteryMaster) (domain.LotteryMaster, error)
	Delete(ctx context.Context, id uint) error
}

// CatalogService manages the master lottery catalog. Mutations are
// super-admin only; enforcement sits in the route guard.
type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

func (s *CatalogService) CreateLottery(ctx context.Context, master domain.LotteryMaster) (domain.LotteryMaster, error) {
	// Bounds() tolerates reversed legacy rows; new catalog entries must be
	// stored in ascending print order.
	if master.EndNumber < master.StartNumber {
		return domain.LotteryMaster{}, ErrInvalidTicketRange
	}

	created, err := s.repo.Create(ctx, master)
	if err != nil {
		if errors.Is(err, repository.ErrLotteryNumberExists) {
			return domain.LotteryMaster{}, ErrLotteryNumberExists
		}

		return domain.LotteryMaster{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CatalogService) GetLotteries(ctx context.Context) ([]domain.LotteryMaster, error) {
	masters, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return masters, nil
}

func (s *CatalogService) GetLottery(ctx context.Context, id uint) (domain.LotteryMaster, error) {
	master, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.LotteryMaster{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return master, nil
}

func (s *CatalogService) UpdateLottery(ctx context.Context, master domain.LotteryMaster) (domain.LotteryMaster, error) {
	if master.EndNumber < master.StartNumber {
		return domain.LotteryMaster{}, ErrInvalidTicketRange
	}

	updated, err := s.repo.Update(ctx, master)
	if err != nil {
		return domain.LotteryMaster{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *CatalogService) DeleteLottery(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
