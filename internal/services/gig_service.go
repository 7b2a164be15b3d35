package services

import (
	"context"
	stderrors "errors"

	"gig-market.com/gig-market/internal/constants"
	errs "gig-market.com/gig-market/internal/errors"
	model "gig-market.com/gig-market/internal/models"
	repository "gig-market.com/gig-market/internal/repositories"
)

type GigService struct {
	gigRepo *repository.GigRepository
	bidRepo *repository.BidRepository
}

// GigPage is one page of search results.
type GigPage struct {
	Gigs       []model.Gig `json:"gigs"`
	Total      int64       `json:"total"`
	TotalPages int         `json:"total_pages"`
	Page       int         `json:"current_page"`
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

func NewGigService(gigRepo *repository.GigRepository, bidRepo *repository.BidRepository) *GigService {
	return &GigService{gigRepo: gigRepo, bidRepo: bidRepo}
}

func (s *GigService) CreateGig(ctx context.Context, title, description string, budget float64, ownerID string) (*model.Gig, error) {
	return s.gigRepo.Create(ctx, title, description, budget, ownerID)
}

func (s *GigService) GetGig(ctx context.Context, id string) (*model.Gig, error) {
	gig, err := s.gigRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrRecordNotFound) {
			return nil, errs.ErrGigNotFound
		}
		return nil, err
	}
	return gig, nil
}

// SearchGigs lists open gigs by default, newest first, filtered by a
// free-text match on title or description.
func (s *GigService) SearchGigs(ctx context.Context, search string, status constants.GigStatus, page, limit int) (*GigPage, error) {
	if status == "" {
		status = constants.GigStatusOpen
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	gigs, total, err := s.gigRepo.Search(ctx, repository.SearchFilter{
		Search: search,
		Status: status,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &GigPage{
		Gigs:       gigs,
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
	}, nil
}

func (s *GigService) ListMyGigs(ctx context.Context, ownerID string) ([]model.Gig, error) {
	return s.gigRepo.ListByOwner(ctx, ownerID)
}

func (s *GigService) UpdateGig(ctx context.Context, id, requesterID, title, description string, budget float64) (*model.Gig, error) {
	gig, err := s.GetGig(ctx, id)
	if err != nil {
		return nil, err
	}

	if !gig.IsOwnedBy(requesterID) {
		return nil, errs.ErrNotGigOwner
	}
	if !gig.IsOpen() {
		return nil, errs.ErrGigAssigned
	}

	gig.Title = title
	gig.Description = description
	gig.Budget = budget

	if err := s.gigRepo.Update(ctx, gig); err != nil {
		if stderrors.Is(err, repository.ErrConflict) {
			return nil, errs.ErrGigAlreadyDecided
		}
		return nil, err
	}

	return gig, nil
}

func (s *GigService) DeleteGig(ctx context.Context, id, requesterID string) error {
	gig, err := s.GetGig(ctx, id)
	if err != nil {
		return err
	}

	if !gig.IsOwnedBy(requesterID) {
		return errs.ErrNotGigOwner
	}
	if !gig.IsOpen() {
		return errs.ErrGigAssigned
	}

	if err := s.gigRepo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, repository.ErrConflict) {
			return errs.ErrGigAlreadyDecided
		}
		return err
	}

	return nil
}

// CancelGig withdraws an open gig from the market without deleting it.
func (s *GigService) CancelGig(ctx context.Context, id, requesterID string) (*model.Gig, error) {
	return s.transition(ctx, id, requesterID, constants.GigStatusOpen, constants.GigStatusCancelled)
}

// CompleteGig is owner bookkeeping once the hired work is done.
func (s *GigService) CompleteGig(ctx context.Context, id, requesterID string) (*model.Gig, error) {
	return s.transition(ctx, id, requesterID, constants.GigStatusAssigned, constants.GigStatusCompleted)
}

func (s *GigService) transition(ctx context.Context, id, requesterID string, from, to constants.GigStatus) (*model.Gig, error) {
	gig, err := s.GetGig(ctx, id)
	if err != nil {
		return nil, err
	}

	if !gig.IsOwnedBy(requesterID) {
		return nil, errs.ErrNotGigOwner
	}
	if gig.Status != from {
		return nil, errs.ErrGigAlreadyDecided
	}

	gig.Status = to

	if err := s.gigRepo.Update(ctx, gig); err != nil {
		if stderrors.Is(err, repository.ErrConflict) {
			return nil, errs.ErrGigAlreadyDecided
		}
		return nil, err
	}

	return gig, nil
}
