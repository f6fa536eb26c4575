package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottotrack/backoffice/internal/domain"
	"github.com/lottotrack/backoffice/internal/repository"
	"github.com/lottotrack/backoffice/internal/service"
)

type stubCatalogRepo struct {
	created []domain.LotteryMaster
	err     error
}

func (r *stubCatalogRepo) Create(_ context.Context, master domain.LotteryMaster) (domain.LotteryMaster, error) {
	if r.err != nil {
		return domain.LotteryMaster{}, r.err
	}
	master.ID = uint(len(r.created) + 1)
	r.created = append(r.created, master)

	return master, nil
}

func (r *stubCatalogRepo) FindByID(_ context.Context, _ uint) (domain.LotteryMaster, error) {
	return domain.LotteryMaster{}, repository.ErrLotteryNotFound
}

func (r *stubCatalogRepo) FindAll(_ context.Context) ([]domain.LotteryMaster, error) {
	return r.created, nil
}

func (r *stubCatalogRepo) Update(_ context.Context, master domain.LotteryMaster) (domain.LotteryMaster, error) {
	return master, nil
}

func (r *stubCatalogRepo) Delete(_ context.Context, _ uint) error {
	return nil
}

func TestCatalogService_TicketRange(t *testing.T) {
	svc := service.NewCatalogService(&stubCatalogRepo{})
	ctx := context.Background()

	base := domain.LotteryMaster{
		LotteryNumber: "045",
		Name:          "Gold Rush",
		Price:         decimal.NewFromInt(5),
		Status:        domain.LotteryStatusActive,
	}

	t.Run("rejects a reversed range on create", func(t *testing.T) {
		master := base
		master.StartNumber = 149
		master.EndNumber = 0

		_, err := svc.CreateLottery(ctx, master)

		assert.ErrorIs(t, err, service.ErrInvalidTicketRange)
	})

	t.Run("rejects a reversed range on update", func(t *testing.T) {
		master := base
		master.ID = 1
		master.StartNumber = 10
		master.EndNumber = 9

		_, err := svc.UpdateLottery(ctx, master)

		assert.ErrorIs(t, err, service.ErrInvalidTicketRange)
	})

	t.Run("accepts a single-ticket range", func(t *testing.T) {
		master := base
		master.StartNumber = 7
		master.EndNumber = 7

		created, err := svc.CreateLottery(ctx, master)

		require.NoError(t, err)
		assert.Equal(t, 1, created.TotalCount())
	})
}

func TestCatalogService_DuplicateNumber(t *testing.T) {
	svc := service.NewCatalogService(&stubCatalogRepo{err: repository.ErrLotteryNumberExists})

	_, err := svc.CreateLottery(context.Background(), domain.LotteryMaster{
		LotteryNumber: "045",
		Name:          "Gold Rush",
		Price:         decimal.NewFromInt(5),
		EndNumber:     149,
	})

	assert.ErrorIs(t, err, service.ErrLotteryNumberExists)
}
