package domain

import "time"

// ScannedTicket is an immutable audit row, one per scan attempt that
// reaches the logging step.
type ScannedTicket struct {
	ID           uint      `json:"id"`
	StoreID      uint      `json:"store_id"`
	RawBarcode   string    `json:"raw_barcode"`
	LotteryID    uint      `json:"lottery_id"`
	TicketNumber int       `json:"ticket_number"`
	ScannedBy    uint      `json:"scanned_by"`
	ScannedAt    time.Time `json:"scanned_at"`
}

// ScanHistoryEntry is a scan log row joined with its lottery master metadata.
type ScanHistoryEntry struct {
	ScannedTicket
	LotteryNumber string `json:"lottery_number"`
	LotteryName   string `json:"lottery_name"`
}

const (
	ScanReasonNotFound = "not_found"
	ScanReasonInactive = "inactive_in_master"
)

// ScanResult is the outcome of one processed scan. When GameActive is
// false the game is missing or retired in the master catalog; that is not
// an error for point-of-sale callers, so Reason explains it instead.
type ScanResult struct {
	GameActive          bool           `json:"game_active"`
	Reason              string         `json:"reason,omitempty"`
	LotteryMaster       *LotteryMaster `json:"lottery_master,omitempty"`
	Book                *Book          `json:"inventory,omitempty"`
	TicketsSoldThisScan int            `json:"tickets_sold_this_scan"`
	Remaining           int            `json:"remaining"`
}
