package domain

import "github.com/shopspring/decimal"

// InventoryItem is one book in a store's inventory listing, joined with its
// catalog record and carrying the derived remaining count.
type InventoryItem struct {
	Book
	LotteryNumber string          `json:"lottery_number"`
	LotteryName   string          `json:"lottery_name"`
	Price         decimal.Decimal `json:"price"`
	Remaining     int             `json:"remaining"`
	GameActive    bool            `json:"game_active"`
}
