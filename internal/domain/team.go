package domain

import "time"

// Team groups participants competing together in events.
type Team struct {
	ID        string
	Name      string
	College   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
