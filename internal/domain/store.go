package domain

import "time"

type Store struct {
	ID        uint      `json:"id"`
	OwnerID   uint      `json:"owner_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
