package services

import (
	"context"
	stderrors "errors"

	errs "gig-market.com/gig-market/internal/errors"
	model "gig-market.com/gig-market/internal/models"
	repository "gig-market.com/gig-market/internal/repositories"
)

type BidService struct {
	bidRepo *repository.BidRepository
	gigRepo *repository.GigRepository
}

func NewBidService(bidRepo *repository.BidRepository, gigRepo *repository.GigRepository) *BidService {
	return &BidService{bidRepo: bidRepo, gigRepo: gigRepo}
}

// CreateBid submits a bid on an open gig. Owners cannot bid on their own
// gig, and a bidder holds at most one bid per gig; the second rule is also
// enforced by the store's unique (gig, bidder) index so two concurrent
// submissions cannot slip through.
func (s *BidService) CreateBid(ctx context.Context, gigID, bidderID, message string, proposedPrice float64) (*model.Bid, error) {
	gig, err := s.gigRepo.FindByID(ctx, gigID)
	if err != nil {
		if stderrors.Is(err, repository.ErrRecordNotFound) {
			return nil, errs.ErrGigNotFound
		}
		return nil, err
	}

	if !gig.IsOpen() {
		return nil, errs.ErrGigNotOpen
	}
	if gig.IsOwnedBy(bidderID) {
		return nil, errs.ErrOwnGigBid
	}

	bid, err := s.bidRepo.Create(ctx, gigID, bidderID, message, proposedPrice)
	if err != nil {
		if stderrors.Is(err, repository.ErrDuplicateKey) {
			return nil, errs.ErrDuplicateBid
		}
		return nil, err
	}

	return bid, nil
}

func (s *BidService) GetBid(ctx context.Context, id string) (*model.Bid, error) {
	bid, err := s.bidRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrRecordNotFound) {
			return nil, errs.ErrBidNotFound
		}
		return nil, err
	}
	return bid, nil
}

// ListBidsForGig is owner-only: competing freelancers cannot see each
// other's offers.
func (s *BidService) ListBidsForGig(ctx context.Context, gigID, requesterID string) ([]model.Bid, error) {
	gig, err := s.gigRepo.FindByID(ctx, gigID)
	if err != nil {
		if stderrors.Is(err, repository.ErrRecordNotFound) {
			return nil, errs.ErrGigNotFound
		}
		return nil, err
	}

	if !gig.IsOwnedBy(requesterID) {
		return nil, errs.ErrNotGigOwner
	}

	return s.bidRepo.ListByGig(ctx, gigID)
}

func (s *BidService) ListMyBids(ctx context.Context, bidderID string) ([]model.Bid, error) {
	return s.bidRepo.ListByBidder(ctx, bidderID)
}

func (s *BidService) UpdateBid(ctx context.Context, id, requesterID, message string, proposedPrice float64) (*model.Bid, error) {
	bid, err := s.GetBid(ctx, id)
	if err != nil {
		return nil, err
	}

	if !bid.IsOwnedBy(requesterID) {
		return nil, errs.ErrNotBidOwner
	}
	if !bid.IsPending() {
		return nil, errs.ErrBidNotPending
	}

	bid.Message = message
	bid.ProposedPrice = proposedPrice

	if err := s.bidRepo.Update(ctx, bid); err != nil {
		if stderrors.Is(err, repository.ErrConflict) {
			return nil, errs.ErrBidNotPending
		}
		return nil, err
	}

	return bid, nil
}

func (s *BidService) DeleteBid(ctx context.Context, id, requesterID string) error {
	bid, err := s.GetBid(ctx, id)
	if err != nil {
		return err
	}

	if !bid.IsOwnedBy(requesterID) {
		return errs.ErrNotBidOwner
	}
	if !bid.IsPending() {
		return errs.ErrBidNotPending
	}

	if err := s.bidRepo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, repository.ErrConflict) {
			return errs.ErrBidNotPending
		}
		return err
	}

	return nil
}
