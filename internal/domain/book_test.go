package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottotrack/backoffice/internal/domain"
)

func testMaster() domain.LotteryMaster {
	return domain.LotteryMaster{
		ID:            1,
		LotteryNumber: "045",
		Name:          "Gold Rush",
		Price:         decimal.NewFromInt(5),
		StartNumber:   0,
		EndNumber:     149,
		Status:        domain.LotteryStatusActive,
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input   string
		want    domain.Direction
		wantErr bool
	}{
		{input: "", want: domain.DirectionUnknown},
		{input: "asc", want: domain.DirectionAsc},
		{input: "desc", want: domain.DirectionDesc},
		{input: "up", wantErr: true},
		{input: "ASC", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := domain.ParseDirection(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidDirection)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBook_Reconcile_FirstScan(t *testing.T) {
	t.Run("requires a direction", func(t *testing.T) {
		book := domain.Book{}

		_, err := book.Reconcile(testMaster(), 10, domain.DirectionUnknown, true)

		assert.ErrorIs(t, err, domain.ErrDirectionRequired)
	})

	t.Run("establishes the baseline with zero delta", func(t *testing.T) {
		book := domain.Book{}

		delta, err := book.Reconcile(testMaster(), 1, domain.DirectionAsc, true)

		require.NoError(t, err)
		assert.Equal(t, 0, delta)
		assert.Equal(t, domain.DirectionAsc, book.Direction)
		assert.Equal(t, 1, book.CurrentCount)
		assert.Equal(t, 150, book.TotalCount)
		assert.Equal(t, domain.BookStatusActive, book.Status)
	})

	t.Run("rejects a ticket outside the game range", func(t *testing.T) {
		book := domain.Book{}

		_, err := book.Reconcile(testMaster(), 150, domain.DirectionAsc, true)

		assert.ErrorIs(t, err, domain.ErrOutOfRange)
	})
}

func TestBook_Reconcile_Ascending(t *testing.T) {
	master := testMaster()

	t.Run("delta is the distance moved forward", func(t *testing.T) {
		book := domain.Book{Direction: domain.DirectionAsc, CurrentCount: 1, TotalCount: 150}

		delta, err := book.Reconcile(master, 15, domain.DirectionUnknown, false)

		require.NoError(t, err)
		assert.Equal(t, 14, delta)
		assert.Equal(t, 15, book.CurrentCount)
	})

	t.Run("rescanning the same ticket sells nothing", func(t *testing.T) {
		book := domain.Book{Direction: domain.DirectionAsc, CurrentCount: 15, TotalCount: 150}

		delta, err := book.Reconcile(master, 15, domain.DirectionUnknown, false)

		require.NoError(t, err)
		assert.Equal(t, 0, delta)
	})

	t.Run("rejects backward movement", func(t *testing.T) {
		book := domain.Book{Direction: domain.DirectionAsc, CurrentCount: 15, TotalCount: 150}

		_, err := book.Reconcile(master, 10, domain.DirectionUnknown, false)

		assert.ErrorIs(t, err, domain.ErrBackwardMovement)
		assert.Equal(t, 15, book.CurrentCount, "a rejected scan must not move the baseline")
	})

	t.Run("observing the last ticket finishes the book", func(t *testing.T) {
		book := domain.Book{Direction: domain.DirectionAsc, CurrentCount: 145, TotalCount: 150}

		delta, err := book.Reconcile(master, 149, domain.DirectionUnknown, false)

		require.NoError(t, err)
		assert.Equal(t, 4, delta)
		assert.Equal(t, domain.BookStatusFinished, book.Status)
		assert.Equal(t, 0, book.Remaining(master))
	})

	t.Run("rejects scans once the last ticket was observed", func(t *testing.T) {
		book := domain.Book{Direction: domain.DirectionAsc, CurrentCount: 149, TotalCount: 150}

		_, err := book.Reconcile(master, 149, domain.DirectionUnknown, false)

		assert.ErrorIs(t, err, domain.ErrBookExhausted)
	})
}

func TestBook_Reconcile_Descending(t *testing.T) {
	master := testMaster()

	t.Run("delta is the distance moved downward", func(t *testing.T) {
		book := domain.Book{Direction: domain.DirectionDesc, CurrentCount: 149, TotalCount: 150}

		delta, err := book.Reconcile(master, 140, domain.DirectionUnknown, false)

		require.NoError(t, err)
		assert.Equal(t, 9, delta)
		assert.Equal(t, 140, book.CurrentCount)
	})

	t.Run("rejects forward movement", func(t *testing.T) {
		book := domain.Book{Direction: domain.DirectionDesc, CurrentCount: 140, TotalCount: 150}

		_, err := book.Reconcile(master, 145, domain.DirectionUnknown, false)

		assert.ErrorIs(t, err, domain.ErrForwardMovement)
	})

	t.Run("observing the low bound finishes the book", func(t *testing.T) {
		book := domain.Book{Direction: domain.DirectionDesc, CurrentCount: 3, TotalCount: 150}

		delta, err := book.Reconcile(master, 0, domain.DirectionUnknown, false)

		require.NoError(t, err)
		assert.Equal(t, 3, delta)
		assert.Equal(t, domain.BookStatusFinished, book.Status)
		assert.Equal(t, 0, book.Remaining(master))
	})

	t.Run("rejects scans once the low bound was observed", func(t *testing.T) {
		book := domain.Book{Direction: domain.DirectionDesc, CurrentCount: 0, TotalCount: 150}

		_, err := book.Reconcile(master, 0, domain.DirectionUnknown, false)

		assert.ErrorIs(t, err, domain.ErrBookExhausted)
	})
}

func TestBook_Reconcile_DirectionRules(t *testing.T) {
	master := testMaster()

	t.Run("established direction wins over a conflicting request", func(t *testing.T) {
		book := domain.Book{Direction: domain.DirectionAsc, CurrentCount: 10, TotalCount: 150}

		_, err := book.Reconcile(master, 20, domain.DirectionDesc, false)

		assert.ErrorIs(t, err, domain.ErrDirectionConflict)
		assert.Equal(t, domain.DirectionAsc, book.Direction)
	})

	t.Run("matching request is a no-op", func(t *testing.T) {
		book := domain.Book{Direction: domain.DirectionAsc, CurrentCount: 10, TotalCount: 150}

		delta, err := book.Reconcile(master, 20, domain.DirectionAsc, false)

		require.NoError(t, err)
		assert.Equal(t, 10, delta)
	})

	t.Run("a stored unknown direction is settled by the next scan", func(t *testing.T) {
		// Rows migrated from systems that never recorded a direction.
		book := domain.Book{Direction: domain.DirectionUnknown, CurrentCount: 10, TotalCount: 150}

		_, err := book.Reconcile(master, 20, domain.DirectionUnknown, false)
		assert.ErrorIs(t, err, domain.ErrDirectionRequired)

		delta, err := book.Reconcile(master, 20, domain.DirectionAsc, false)
		require.NoError(t, err)
		assert.Equal(t, 10, delta)
		assert.Equal(t, domain.DirectionAsc, book.Direction)
	})
}

func TestBook_SoldFromStart(t *testing.T) {
	master := testMaster()

	tests := []struct {
		name string
		book domain.Book
		want int
	}{
		{
			name: "ascending counts from the low bound",
			book: domain.Book{Direction: domain.DirectionAsc, CurrentCount: 15},
			want: 15,
		},
		{
			name: "descending counts from the high bound",
			book: domain.Book{Direction: domain.DirectionDesc, CurrentCount: 140},
			want: 9,
		},
		{
			name: "unknown direction sold nothing",
			book: domain.Book{Direction: domain.DirectionUnknown, CurrentCount: 15},
			want: 0,
		},
		{
			name: "ascending book at the high bound is fully sold",
			book: domain.Book{Direction: domain.DirectionAsc, CurrentCount: 149},
			want: 150,
		},
		{
			name: "descending book at the low bound is fully sold",
			book: domain.Book{Direction: domain.DirectionDesc, CurrentCount: 0},
			want: 150,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.book.SoldFromStart(master))
			assert.Equal(t, master.TotalCount()-tt.want, tt.book.Remaining(master))
		})
	}
}

func TestLotteryMaster_Bounds(t *testing.T) {
	t.Run("descending print order is normalized", func(t *testing.T) {
		m := domain.LotteryMaster{StartNumber: 149, EndNumber: 0}

		minTicket, maxTicket := m.Bounds()

		assert.Equal(t, 0, minTicket)
		assert.Equal(t, 149, maxTicket)
		assert.Equal(t, 150, m.TotalCount())
	})

	t.Run("single ticket game", func(t *testing.T) {
		m := domain.LotteryMaster{StartNumber: 7, EndNumber: 7}

		assert.Equal(t, 1, m.TotalCount())
	})
}
