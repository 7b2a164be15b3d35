package model

import (
	"time"

	"gig-market.com/gig-market/internal/constants"
)

type Gig struct {
	ID          string              `gorm:"primaryKey;size:36" json:"id"`
	Title       string              `gorm:"size:100;not null" json:"title"`
	Description string              `gorm:"size:2000;not null" json:"description"`
	Budget      float64             `gorm:"not null" json:"budget"`
	OwnerID     string              `gorm:"size:36;not null;index" json:"owner_id"`
	Status      constants.GigStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	HiredBidID  *string             `gorm:"size:36" json:"hired_bid_id,omitempty"`
	Version     uint                `gorm:"not null;default:1" json:"version"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// IsOwnedBy reports whether userID may mutate this gig.
func (g *Gig) IsOwnedBy(userID string) bool {
	return g.OwnerID == userID
}

func (g *Gig) IsOpen() bool {
	return g.Status == constants.GigStatusOpen
}
