package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LotteryStatus string

const (
	LotteryStatusActive   LotteryStatus = "active"
	LotteryStatusInactive LotteryStatus = "inactive"
)

// LotteryMaster is a lottery game definition from the master catalog.
// StartNumber and EndNumber are inclusive bounds and are not necessarily
// ascending; descending games print their range the other way around.
type LotteryMaster struct {
	ID            uint            `json:"id"`
	LotteryNumber string          `json:"lottery_number"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StartNumber   int             `json:"start_number"`
	EndNumber     int             `json:"end_number"`
	Status        LotteryStatus   `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (m LotteryMaster) IsActive() bool {
	return m.Status == LotteryStatusActive
}

// Bounds returns the normalized inclusive ticket number range.
func (m LotteryMaster) Bounds() (minTicket, maxTicket int) {
	if m.StartNumber <= m.EndNumber {
		return m.StartNumber, m.EndNumber
	}

	return m.EndNumber, m.StartNumber
}

// TotalCount is the number of tickets in one book of this game.
func (m LotteryMaster) TotalCount() int {
	minTicket, maxTicket := m.Bounds()

	return maxTicket - minTicket + 1
}
