package model

// Realtor is the agent who owns listings.
type Realtor struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	IsMVP       bool   `json:"is_mvp"`
}
