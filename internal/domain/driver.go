package domain

import "time"

// Driver identifies a driver within a company. Profile data beyond identity
// lives with the account layer, which is outside this engine.
type Driver struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
