package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gig-market.com/gig-market/internal/constants"
	model "gig-market.com/gig-market/internal/models"
)

type BidRepository struct {
	db *gorm.DB
}

func NewBidRepository(db *gorm.DB) *BidRepository {
	return &BidRepository{db: db}
}

func (r *BidRepository) Create(ctx context.Context, gigID, bidderID, message string, proposedPrice float64) (*model.Bid, error) {
	now := time.Now().UTC()
	bid := &model.Bid{
		ID:            uuid.NewString(),
		GigID:         gigID,
		BidderID:      bidderID,
		Message:       message,
		ProposedPrice: proposedPrice,
		Status:        constants.BidStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := r.db.WithContext(ctx).Create(bid).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}

	return bid, nil
}

func (r *BidRepository) FindByID(ctx context.Context, id string) (*model.Bid, error) {
	var bid model.Bid
	err := r.db.WithContext(ctx).First(&bid, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &bid, nil
}

func (r *BidRepository) ListByGig(ctx context.Context, gigID string) ([]model.Bid, error) {
	var bids []model.Bid
	err := r.db.WithContext(ctx).
		Where("gig_id = ?", gigID).
		Order("created_at desc").
		Find(&bids).Error
	return bids, err
}

func (r *BidRepository) ListByBidder(ctx context.Context, bidderID string) ([]model.Bid, error) {
	var bids []model.Bid
	err := r.db.WithContext(ctx).
		Where("bidder_id = ?", bidderID).
		Order("created_at desc").
		Find(&bids).Error
	return bids, err
}

// Update rewrites message and price while the bid is still pending. A bid
// decided in the meantime matches no rows.
func (r *BidRepository) Update(ctx context.Context, bid *model.Bid) error {
	res := r.db.WithContext(ctx).Model(&model.Bid{}).
		Where("id = ? AND status = ?", bid.ID, constants.BidStatusPending).
		Updates(map[string]interface{}{
			"message":        bid.Message,
			"proposed_price": bid.ProposedPrice,
			"updated_at":     time.Now().UTC(),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}

	return nil
}

func (r *BidRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, constants.BidStatusPending).
		Delete(&model.Bid{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}

	return nil
}

// CountByGigAndStatus supports the marketplace invariant checks in tests
// and the gig detail view.
func (r *BidRepository) CountByGigAndStatus(ctx context.Context, gigID string, status constants.BidStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Bid{}).
		Where("gig_id = ? AND status = ?", gigID, status).
		Count(&count).Error
	return count, err
}
