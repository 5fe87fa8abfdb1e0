// Package deal persists analyzed deals per owner and coordinates the
// analyze-then-save flow.
package deal

import (
	"errors"

	"github.com/re-hustle/rehustle-api/internal/scoring"
)

var ErrNotFound = errors.New("deal not found")

// Deal is one saved analysis: the raw submitted fields plus the engine's
// outputs and ownership metadata.
type Deal struct {
	ID           string               `json:"id"`
	UserID       string               `json:"user_id"`
	PropertyType scoring.PropertyType `json:"property_type"`
	Address      string               `json:"address,omitempty"`
	Notes        string               `json:"notes,omitempty"`
	Fields       scoring.Fields       `json:"fields"`

	SniperScore      int               `json:"sniper_score"`
	RiskLevel        scoring.RiskLevel `json:"risk_level"`
	ExitStrategy     string            `json:"exit_strategy"`
	RecommendedOffer float64           `json:"recommended_offer"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at,omitempty"`
}

// Update carries the caller-editable fields; analysis outputs and ownership
// are immutable once saved.
type Update struct {
	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}
