package models

import (
	"time"

	"github.com/planet-texas-2050/sites-stories/internal/interaction"
)

// Session represents one browser's interaction with the page
type Session struct {
	ID        string            `json:"id"`
	State     interaction.State `json:"state"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
