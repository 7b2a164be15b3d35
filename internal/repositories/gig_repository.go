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

type GigRepository struct {
	db *gorm.DB
}

func NewGigRepository(db *gorm.DB) *GigRepository {
	return &GigRepository{db: db}
}

// SearchFilter narrows and pages the gig listing. Zero values mean
// "no constraint"; Status defaults to open in the service layer.
type SearchFilter struct {
	Search string
	Status constants.GigStatus
	Page   int
	Limit  int
}

func (r *GigRepository) Create(ctx context.Context, title, description string, budget float64, ownerID string) (*model.Gig, error) {
	now := time.Now().UTC()
	gig := &model.Gig{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Budget:      budget,
		OwnerID:     ownerID,
		Status:      constants.GigStatusOpen,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.db.WithContext(ctx).Create(gig).Error; err != nil {
		return nil, err
	}

	return gig, nil
}

func (r *GigRepository) FindByID(ctx context.Context, id string) (*model.Gig, error) {
	var gig model.Gig
	err := r.db.WithContext(ctx).First(&gig, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &gig, nil
}

func (r *GigRepository) Search(ctx context.Context, filter SearchFilter) ([]model.Gig, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Gig{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit

	var gigs []model.Gig
	err := query.Order("created_at desc").Offset(offset).Limit(filter.Limit).Find(&gigs).Error
	if err != nil {
		return nil, 0, err
	}

	return gigs, total, nil
}

func (r *GigRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Gig, error) {
	var gigs []model.Gig
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&gigs).Error
	return gigs, err
}

// Update persists mutable gig fields guarded by the version column. A
// concurrent writer bumps the version first and this write matches no rows.
func (r *GigRepository) Update(ctx context.Context, gig *model.Gig) error {
	res := r.db.WithContext(ctx).Model(&model.Gig{}).
		Where("id = ? AND version = ?", gig.ID, gig.Version).
		Updates(map[string]interface{}{
			"title":        gig.Title,
			"description":  gig.Description,
			"budget":       gig.Budget,
			"status":       gig.Status,
			"hired_bid_id": gig.HiredBidID,
			"updated_at":   time.Now().UTC(),
			"version":      gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}

	gig.Version++
	return nil
}

// Delete removes a gig while it is still open; a decided gig is kept for
// the hired bid's sake. The gig's bids go with it.
func (r *GigRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.
			Where("id = ? AND status = ?", id, constants.GigStatusOpen).
			Delete(&model.Gig{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		return tx.Where("gig_id = ?", id).Delete(&model.Bid{}).Error
	})
}

// AssignToBid is the hiring transaction's atomic section. All three writes
// ride one transaction; the open→assigned flip is a compare-and-swap on the
// gig's status, so of two concurrent hire attempts exactly one commits and
// the loser aborts with ErrConflict.
func (r *GigRepository) AssignToBid(ctx context.Context, gigID, bidID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		res := tx.Model(&model.Gig{}).
			Where("id = ? AND status = ?", gigID, constants.GigStatusOpen).
			Updates(map[string]interface{}{
				"status":       constants.GigStatusAssigned,
				"hired_bid_id": bidID,
				"updated_at":   now,
				"version":      gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		res = tx.Model(&model.Bid{}).
			Where("id = ? AND gig_id = ? AND status = ?", bidID, gigID, constants.BidStatusPending).
			Updates(map[string]interface{}{
				"status":     constants.BidStatusHired,
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// The chosen bid is not pending anymore; never double-decide it.
			return ErrConflict
		}

		return tx.Model(&model.Bid{}).
			Where("gig_id = ? AND id <> ? AND status = ?", gigID, bidID, constants.BidStatusPending).
			Updates(map[string]interface{}{
				"status":     constants.BidStatusRejected,
				"updated_at": now,
			}).Error
	})
}
