package domain

import "time"

// NotificationSetting holds a store's alerting preferences. Delivery is out
// of scope; these settings only drive what the reporting UI highlights.
type NotificationSetting struct {
	ID                uint      `json:"id"`
	StoreID           uint      `json:"store_id"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	NotifyOnFinished  bool      `json:"notify_on_finished"`
	Email             string    `json:"email"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
