package domain

import "time"

// Instance identifies one colorhash server installation. It is created on
// first start and keeps its ID across restarts.
type Instance struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
