package domain

import "time"

const (
	RoleOwner      = "owner"
	RoleClerk      = "clerk"
	RoleSuperAdmin = "super_admin"
)

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	StoreID   *uint     `json:"store_id,omitempty"` // set for clerks only
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}
