package domain

import (
	"errors"
	"fmt"
	"time"
)

// Direction is the order a book's tickets are sold in. It is inferred on
// the first scan and immutable afterwards.
type Direction string

const (
	DirectionUnknown Direction = "unknown"
	DirectionAsc     Direction = "asc"
	DirectionDesc    Direction = "desc"
)

// ParseDirection maps a request string onto a Direction. The empty string
// means "not supplied" and yields DirectionUnknown.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "":
		return DirectionUnknown, nil
	case string(DirectionAsc):
		return DirectionAsc, nil
	case string(DirectionDesc):
		return DirectionDesc, nil
	default:
		return DirectionUnknown, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

type BookStatus string

const (
	BookStatusActive   BookStatus = "active"
	BookStatusFinished BookStatus = "finished"
)

var (
	ErrInvalidDirection  = errors.New("direction must be asc or desc")
	ErrOutOfRange        = errors.New("ticket number is outside the game's numeric range")
	ErrDirectionRequired = errors.New("direction is required on the first scan of a book")
	ErrDirectionConflict = errors.New("direction conflicts with the book's established direction")
	ErrBackwardMovement  = errors.New("ticket number moved backward for an ascending book")
	ErrForwardMovement   = errors.New("ticket number moved forward for a descending book")
	ErrBookExhausted     = errors.New("book is already fully sold")
)

// Book is one physical pack of tickets of a lottery game at a store,
// identified by (store, lottery, serial number). CurrentCount holds the
// last observed ticket number, not a remaining count.
type Book struct {
	ID           uint       `json:"id"`
	StoreID      uint       `json:"store_id"`
	LotteryID    uint       `json:"lottery_id"`
	SerialNumber string     `json:"serial_number"`
	TotalCount   int        `json:"total_count"`
	CurrentCount int        `json:"current_count"`
	Direction    Direction  `json:"direction"`
	Status       BookStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// SoldFromStart is the cumulative distance travelled from the book's start
// boundary in the counting direction, clamped to [0, TotalCount]. The start
// boundary is the low bound for ascending books and the high bound for
// descending ones. The end boundary is inclusive: once the last ticket in
// the counting direction has been observed, the whole book is sold.
func (b Book) SoldFromStart(m LotteryMaster) int {
	minTicket, maxTicket := m.Bounds()

	var sold int
	switch b.Direction {
	case DirectionAsc:
		sold = b.CurrentCount - minTicket
		if b.CurrentCount >= maxTicket {
			sold = m.TotalCount()
		}
	case DirectionDesc:
		sold = maxTicket - b.CurrentCount
		if b.CurrentCount <= minTicket {
			sold = m.TotalCount()
		}
	default:
		return 0
	}

	return clamp(sold, 0, m.TotalCount())
}

// Remaining derives the unsold ticket count: total minus sold.
func (b Book) Remaining(m LotteryMaster) int {
	return m.TotalCount() - b.SoldFromStart(m)
}

// Reconcile applies one scan to the book and returns the number of tickets
// sold since the previous scan. isNew marks the first scan of this serial
// number, where no baseline exists yet and the delta is zero.
//
// State machine: {no record} -> unknown -> asc|desc, then active until
// remaining reaches zero. The direction transition happens at most once.
func (b *Book) Reconcile(m LotteryMaster, ticketNumber int, requested Direction, isNew bool) (int, error) {
	minTicket, maxTicket := m.Bounds()

	if ticketNumber < minTicket || ticketNumber > maxTicket {
		return 0, fmt.Errorf("%w: %d not in [%d, %d]", ErrOutOfRange, ticketNumber, minTicket, maxTicket)
	}

	direction := b.Direction
	if isNew || direction == DirectionUnknown {
		if requested == DirectionUnknown {
			return 0, ErrDirectionRequired
		}
		direction = requested
	} else if requested != DirectionUnknown && requested != direction {
		return 0, fmt.Errorf("%w: book is %s, scan says %s", ErrDirectionConflict, direction, requested)
	}

	delta := 0
	if !isNew {
		previous := b.CurrentCount

		switch direction {
		case DirectionAsc:
			if previous >= maxTicket {
				return 0, ErrBookExhausted
			}
			delta = ticketNumber - previous
			if delta < 0 {
				return 0, fmt.Errorf("%w: %d < %d", ErrBackwardMovement, ticketNumber, previous)
			}
		case DirectionDesc:
			if previous <= minTicket {
				return 0, ErrBookExhausted
			}
			delta = previous - ticketNumber
			if delta < 0 {
				return 0, fmt.Errorf("%w: %d > %d", ErrForwardMovement, ticketNumber, previous)
			}
		}
	}

	b.Direction = direction
	b.CurrentCount = ticketNumber
	b.TotalCount = m.TotalCount()

	if b.Remaining(m) <= 0 {
		b.Status = BookStatusFinished
	} else {
		b.Status = BookStatusActive
	}

	return delta, nil
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}

	return v
}
