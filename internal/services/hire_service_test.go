package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gig-market.com/gig-market/internal/constants"
	errs "gig-market.com/gig-market/internal/errors"
	model "gig-market.com/gig-market/internal/models"
	"gig-market.com/gig-market/internal/notify"
	repository "gig-market.com/gig-market/internal/repositories"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(&model.User{}, &model.Gig{}, &model.Bid{})
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

type fixture struct {
	db         *gorm.DB
	userRepo   *repository.UserRepository
	gigRepo    *repository.GigRepository
	bidRepo    *repository.BidRepository
	broker     *notify.MemoryBroker
	dispatcher *notify.Dispatcher
	hire       *HireService
}

func newFixture(t *testing.T) *fixture {
	db := setupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	gigRepo := repository.NewGigRepository(db)
	bidRepo := repository.NewBidRepository(db)
	broker := notify.NewMemoryBroker()
	dispatcher := notify.NewDispatcher(broker, 16)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		dispatcher.Shutdown(ctx)
	})

	return &fixture{
		db:         db,
		userRepo:   userRepo,
		gigRepo:    gigRepo,
		bidRepo:    bidRepo,
		broker:     broker,
		dispatcher: dispatcher,
		hire:       NewHireService(gigRepo, bidRepo, userRepo, dispatcher),
	}
}

func (f *fixture) createUser(t *testing.T, name, email string) *model.User {
	user, err := f.userRepo.Create(context.Background(), name, email, "x")
	if err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return user
}

func (f *fixture) createGig(t *testing.T, ownerID string, budget float64) *model.Gig {
	gig, err := f.gigRepo.Create(context.Background(), "Build a website", "A simple landing page", budget, ownerID)
	if err != nil {
		t.Fatalf("failed to create gig: %v", err)
	}
	return gig
}

func (f *fixture) createBid(t *testing.T, gigID, bidderID string, price float64) *model.Bid {
	bid, err := f.bidRepo.Create(context.Background(), gigID, bidderID, "I can do this", price)
	if err != nil {
		t.Fatalf("failed to create bid: %v", err)
	}
	return bid
}

func (f *fixture) reloadGig(t *testing.T, id string) *model.Gig {
	gig, err := f.gigRepo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to reload gig: %v", err)
	}
	return gig
}

func (f *fixture) reloadBid(t *testing.T, id string) *model.Bid {
	bid, err := f.bidRepo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to reload bid: %v", err)
	}
	return bid
}

func TestHire_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.createUser(t, "Owner", "owner@example.com")
	alice := f.createUser(t, "Alice", "alice@example.com")
	bob := f.createUser(t, "Bob", "bob@example.com")

	gig := f.createGig(t, owner.ID, 100)
	bidA := f.createBid(t, gig.ID, alice.ID, 80)
	bidB := f.createBid(t, gig.ID, bob.ID, 90)

	hired, err := f.hire.Hire(ctx, gig.ID, bidA.ID, owner.ID)
	if err != nil {
		t.Fatalf("hire failed: %v", err)
	}

	if hired.Bid.ID != bidA.ID {
		t.Errorf("expected hired bid %s, got %s", bidA.ID, hired.Bid.ID)
	}
	if hired.Bid.Status != constants.BidStatusHired {
		t.Errorf("expected hired bid status %s, got %s", constants.BidStatusHired, hired.Bid.Status)
	}
	if hired.Bidder.ID != alice.ID {
		t.Errorf("expected bidder %s, got %s", alice.ID, hired.Bidder.ID)
	}

	gotGig := f.reloadGig(t, gig.ID)
	if gotGig.Status != constants.GigStatusAssigned {
		t.Errorf("expected gig status %s, got %s", constants.GigStatusAssigned, gotGig.Status)
	}
	if gotGig.HiredBidID == nil || *gotGig.HiredBidID != bidA.ID {
		t.Errorf("expected gig hired bid id %s, got %v", bidA.ID, gotGig.HiredBidID)
	}

	gotB := f.reloadBid(t, bidB.ID)
	if gotB.Status != constants.BidStatusRejected {
		t.Errorf("expected losing bid status %s, got %s", constants.BidStatusRejected, gotB.Status)
	}
}

func TestHire_SecondAttemptConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.createUser(t, "Owner", "owner@example.com")
	alice := f.createUser(t, "Alice", "alice@example.com")
	bob := f.createUser(t, "Bob", "bob@example.com")

	gig := f.createGig(t, owner.ID, 100)
	bidA := f.createBid(t, gig.ID, alice.ID, 80)
	bidB := f.createBid(t, gig.ID, bob.ID, 90)

	if _, err := f.hire.Hire(ctx, gig.ID, bidA.ID, owner.ID); err != nil {
		t.Fatalf("first hire failed: %v", err)
	}

	// Same bid again: harmless conflict, state unchanged.
	if _, err := f.hire.Hire(ctx, gig.ID, bidA.ID, owner.ID); !errors.Is(err, errs.ErrGigAlreadyDecided) {
		t.Errorf("expected ErrGigAlreadyDecided for repeated hire, got %v", err)
	}

	// A different bid must never win after a commit.
	if _, err := f.hire.Hire(ctx, gig.ID, bidB.ID, owner.ID); !errors.Is(err, errs.ErrGigAlreadyDecided) {
		t.Errorf("expected ErrGigAlreadyDecided for competing hire, got %v", err)
	}

	if got := f.reloadBid(t, bidA.ID); got.Status != constants.BidStatusHired {
		t.Errorf("winner status changed to %s", got.Status)
	}
	if got := f.reloadBid(t, bidB.ID); got.Status != constants.BidStatusRejected {
		t.Errorf("loser status changed to %s", got.Status)
	}
}

func TestHire_NonOwnerForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.createUser(t, "Owner", "owner@example.com")
	alice := f.createUser(t, "Alice", "alice@example.com")
	mallory := f.createUser(t, "Mallory", "mallory@example.com")

	gig := f.createGig(t, owner.ID, 100)
	bid := f.createBid(t, gig.ID, alice.ID, 80)

	if _, err := f.hire.Hire(ctx, gig.ID, bid.ID, mallory.ID); !errors.Is(err, errs.ErrNotGigOwner) {
		t.Errorf("expected ErrNotGigOwner, got %v", err)
	}

	if got := f.reloadGig(t, gig.ID); got.Status != constants.GigStatusOpen {
		t.Errorf("gig status changed to %s", got.Status)
	}
	if got := f.reloadBid(t, bid.ID); got.Status != constants.BidStatusPending {
		t.Errorf("bid status changed to %s", got.Status)
	}
}

func TestHire_MissingEntities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.createUser(t, "Owner", "owner@example.com")
	alice := f.createUser(t, "Alice", "alice@example.com")

	gig := f.createGig(t, owner.ID, 100)
	bid := f.createBid(t, gig.ID, alice.ID, 80)

	if _, err := f.hire.Hire(ctx, gig.ID, "no-such-bid", owner.ID); !errors.Is(err, errs.ErrBidNotFound) {
		t.Errorf("expected ErrBidNotFound, got %v", err)
	}

	// Orphan the bid to exercise the missing-gig path.
	if err := f.db.Where("id = ?", gig.ID).Delete(&model.Gig{}).Error; err != nil {
		t.Fatalf("failed to delete gig: %v", err)
	}
	if _, err := f.hire.Hire(ctx, gig.ID, bid.ID, owner.ID); !errors.Is(err, errs.ErrGigNotFound) {
		t.Errorf("expected ErrGigNotFound, got %v", err)
	}
}

func TestHire_CascadeRejectsOnlyPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.createUser(t, "Owner", "owner@example.com")
	alice := f.createUser(t, "Alice", "alice@example.com")
	bob := f.createUser(t, "Bob", "bob@example.com")
	carol := f.createUser(t, "Carol", "carol@example.com")

	gig := f.createGig(t, owner.ID, 100)
	bidA := f.createBid(t, gig.ID, alice.ID, 80)
	bidB := f.createBid(t, gig.ID, bob.ID, 90)
	bidC := f.createBid(t, gig.ID, carol.ID, 95)

	if _, err := f.hire.Hire(ctx, gig.ID, bidA.ID, owner.ID); err != nil {
		t.Fatalf("hire failed: %v", err)
	}

	for _, id := range []string{bidB.ID, bidC.ID} {
		if got := f.reloadBid(t, id); got.Status != constants.BidStatusRejected {
			t.Errorf("bid %s: expected %s, got %s", id, constants.BidStatusRejected, got.Status)
		}
	}

	hiredCount, err := f.bidRepo.CountByGigAndStatus(ctx, gig.ID, constants.BidStatusHired)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if hiredCount != 1 {
		t.Errorf("expected exactly 1 hired bid, got %d", hiredCount)
	}
}

func TestHire_ConcurrentAttemptsExactlyOneWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.createUser(t, "Owner", "owner@example.com")
	alice := f.createUser(t, "Alice", "alice@example.com")
	bob := f.createUser(t, "Bob", "bob@example.com")

	gig := f.createGig(t, owner.ID, 100)
	bidA := f.createBid(t, gig.ID, alice.ID, 80)
	bidB := f.createBid(t, gig.ID, bob.ID, 90)

	var wg sync.WaitGroup
	results := make(chan error, 2)

	for _, bidID := range []string{bidA.ID, bidB.ID} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := f.hire.Hire(ctx, gig.ID, id, owner.ID)
			results <- err
		}(bidID)
	}

	wg.Wait()
	close(results)

	successes, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, errs.ErrGigAlreadyDecided):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if successes != 1 || conflicts != 1 {
		t.Errorf("expected 1 success and 1 conflict, got %d and %d", successes, conflicts)
	}

	hiredCount, _ := f.bidRepo.CountByGigAndStatus(ctx, gig.ID, constants.BidStatusHired)
	rejectedCount, _ := f.bidRepo.CountByGigAndStatus(ctx, gig.ID, constants.BidStatusRejected)
	if hiredCount != 1 || rejectedCount != 1 {
		t.Errorf("post-state: expected 1 hired and 1 rejected, got %d and %d", hiredCount, rejectedCount)
	}

	gotGig := f.reloadGig(t, gig.ID)
	if gotGig.Status != constants.GigStatusAssigned {
		t.Errorf("expected gig status %s, got %s", constants.GigStatusAssigned, gotGig.Status)
	}
	if gotGig.HiredBidID == nil {
		t.Fatal("gig has no hired bid reference after a successful hire")
	}
	if got := f.reloadBid(t, *gotGig.HiredBidID); got.Status != constants.BidStatusHired {
		t.Errorf("gig points at bid %s with status %s", got.ID, got.Status)
	}
}

func TestHire_NotifiesWinner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.createUser(t, "Owner", "owner@example.com")
	alice := f.createUser(t, "Alice", "alice@example.com")

	gig := f.createGig(t, owner.ID, 100)
	bid := f.createBid(t, gig.ID, alice.ID, 80)

	events, cancel := f.broker.Subscribe(notify.Channel(alice.ID))
	defer cancel()

	if _, err := f.hire.Hire(ctx, gig.ID, bid.ID, owner.ID); err != nil {
		t.Fatalf("hire failed: %v", err)
	}

	select {
	case event := <-events:
		if event.BidID != bid.ID {
			t.Errorf("expected event for bid %s, got %s", bid.ID, event.BidID)
		}
		if event.GigID != gig.ID {
			t.Errorf("expected event for gig %s, got %s", gig.ID, event.GigID)
		}
		if event.GigTitle != gig.Title {
			t.Errorf("expected gig title %q, got %q", gig.Title, event.GigTitle)
		}
	case <-time.After(5 * time.Second):
		t.Error("no hire notification received")
	}
}

func TestHire_SucceedsWithoutSubscriber(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.createUser(t, "Owner", "owner@example.com")
	alice := f.createUser(t, "Alice", "alice@example.com")

	gig := f.createGig(t, owner.ID, 100)
	bid := f.createBid(t, gig.ID, alice.ID, 80)

	// Nobody is listening; the hire must still commit.
	if _, err := f.hire.Hire(ctx, gig.ID, bid.ID, owner.ID); err != nil {
		t.Fatalf("hire failed: %v", err)
	}

	if got := f.reloadGig(t, gig.ID); got.Status != constants.GigStatusAssigned {
		t.Errorf("expected gig status %s, got %s", constants.GigStatusAssigned, got.Status)
	}
}
