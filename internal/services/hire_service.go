package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"log"

	errs "gig-market.com/gig-market/internal/errors"
	model "gig-market.com/gig-market/internal/models"
	"gig-market.com/gig-market/internal/notify"
	repository "gig-market.com/gig-market/internal/repositories"
)

// HiredBid is the hire call's result: the winning bid with its gig and
// bidder attached for the caller's convenience.
type HiredBid struct {
	Bid    *model.Bid  `json:"bid"`
	Gig    *model.Gig  `json:"gig"`
	Bidder *model.User `json:"bidder"`
}

// HireService coordinates the one multi-entity transition in the
// marketplace: hiring a freelancer for a gig. All contention is resolved by
// the store's conditional writes; the service holds no cross-request state.
type HireService struct {
	gigRepo    *repository.GigRepository
	bidRepo    *repository.BidRepository
	userRepo   *repository.UserRepository
	dispatcher *notify.Dispatcher
}

func NewHireService(
	gigRepo *repository.GigRepository,
	bidRepo *repository.BidRepository,
	userRepo *repository.UserRepository,
	dispatcher *notify.Dispatcher,
) *HireService {
	return &HireService{
		gigRepo:    gigRepo,
		bidRepo:    bidRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
	}
}

// Hire marks the chosen bid hired, flips its gig open→assigned and rejects
// every other pending bid on the gig, all atomically. Exactly one of any
// set of concurrent hire attempts on a gig can succeed; the rest observe
// ErrGigAlreadyDecided. On commit the winning bidder is notified
// asynchronously; notification failure never fails the call.
func (s *HireService) Hire(ctx context.Context, gigID, bidID, requesterID string) (*HiredBid, error) {
	bid, err := s.bidRepo.FindByID(ctx, bidID)
	if err != nil {
		if stderrors.Is(err, repository.ErrRecordNotFound) {
			return nil, errs.ErrBidNotFound
		}
		return nil, s.storeFailure("load bid", err)
	}

	if gigID != "" && bid.GigID != gigID {
		return nil, errs.ErrBidNotFound
	}

	gig, err := s.gigRepo.FindByID(ctx, bid.GigID)
	if err != nil {
		if stderrors.Is(err, repository.ErrRecordNotFound) {
			return nil, errs.ErrGigNotFound
		}
		return nil, s.storeFailure("load gig", err)
	}

	if !gig.IsOwnedBy(requesterID) {
		return nil, errs.ErrNotGigOwner
	}

	if !gig.IsOpen() {
		return nil, errs.ErrGigAlreadyDecided
	}

	// Atomic section. The precondition above is advisory only; the
	// compare-and-swap inside the transaction is what decides the race.
	if err := s.gigRepo.AssignToBid(ctx, gig.ID, bid.ID); err != nil {
		if stderrors.Is(err, repository.ErrConflict) {
			return nil, errs.ErrGigAlreadyDecided
		}
		return nil, s.storeFailure("assign gig", err)
	}

	result, err := s.loadHiredView(ctx, bid.ID)
	if err != nil {
		// The hire committed; reading the result back failed. Surface the
		// read failure, the state itself is consistent.
		return nil, s.storeFailure("reload hired bid", err)
	}

	s.dispatcher.Dispatch(result.Bid.BidderID, notify.HireEvent{
		BidID:    result.Bid.ID,
		GigID:    result.Gig.ID,
		GigTitle: result.Gig.Title,
		Message:  fmt.Sprintf("Congratulations! You have been hired for %q", result.Gig.Title),
	})

	return result, nil
}

func (s *HireService) loadHiredView(ctx context.Context, bidID string) (*HiredBid, error) {
	bid, err := s.bidRepo.FindByID(ctx, bidID)
	if err != nil {
		return nil, err
	}

	gig, err := s.gigRepo.FindByID(ctx, bid.GigID)
	if err != nil {
		return nil, err
	}

	bidder, err := s.userRepo.FindByID(ctx, bid.BidderID)
	if err != nil {
		return nil, err
	}

	return &HiredBid{Bid: bid, Gig: gig, Bidder: bidder}, nil
}

// storeFailure folds infrastructure errors into the transient taxonomy so
// callers can tell "re-fetch and look" conflicts from "try again later"
// outages. The write is never retried here.
func (s *HireService) storeFailure(op string, err error) error {
	log.Printf("hire: %s failed: %v", op, err)
	return errs.ErrStoreUnavailable
}
