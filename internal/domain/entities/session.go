package entities

import (
	"time"

	"github.com/google/uuid"
)

// Session is the explicit per-session context that every handler operates
// on: the wishlist, the draft rows being edited, and the result of the last
// validation run. Nothing outlives the session.
type Session struct {
	ID         uuid.UUID           `json:"id"`
	Wishlist   []string            `json:"wishlist"`
	Draft      []DraftRow          `json:"draft"`
	Validated  *ValidatedPortfolio `json:"validated,omitempty"`
	Metrics    *PortfolioMetrics   `json:"metrics,omitempty"`
	Stats      *WeightStats        `json:"stats,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	LastSeenAt time.Time           `json:"last_seen_at"`
	ExpiresAt  time.Time           `json:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
