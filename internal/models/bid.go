package model

import (
	"time"

	"gig-market.com/gig-market/internal/constants"
)

// Bid carries a unique (gig, bidder) pair: a freelancer holds at most one
// bid per gig.
type Bid struct {
	ID            string              `gorm:"primaryKey;size:36" json:"id"`
	GigID         string              `gorm:"size:36;not null;uniqueIndex:idx_gig_bidder" json:"gig_id"`
	BidderID      string              `gorm:"size:36;not null;uniqueIndex:idx_gig_bidder" json:"bidder_id"`
	Message       string              `gorm:"size:1000;not null" json:"message"`
	ProposedPrice float64             `gorm:"not null" json:"proposed_price"`
	Status        constants.BidStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// IsOwnedBy reports whether userID may mutate this bid.
func (b *Bid) IsOwnedBy(userID string) bool {
	return b.BidderID == userID
}

// IsPending reports whether the bid can still be edited, deleted or decided.
func (b *Bid) IsPending() bool {
	return b.Status == constants.BidStatusPending
}
