package booking

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type ReviewInput struct {
	Actor     auth.Actor
	BookingID uint
	Rating    int
	Comment   string
}

type ReviewBooking struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewReviewBooking(repo domain.Repository, audit audit.Recorder) *ReviewBooking {
	return &ReviewBooking{repo: repo, audit: audit}
}

func (uc *ReviewBooking) Execute(ctx context.Context, in ReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, httperr.ErrBusiness("invalid_rating")
	}

	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != in.Actor.UserID {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	if domain.Status(b.Status) != domain.StatusCompleted {
		return nil, httperr.ErrBusiness("booking_not_completed")
	}

	reviewed, err := uc.repo.HasReview(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, httperr.ErrBusiness("already_reviewed")
	}

	review := &models.Review{
		BookingID:  b.ID,
		ShopID:     b.ShopID,
		CustomerID: b.CustomerID,
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
	}
	if err := uc.repo.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   b.ShopID,
		UserID:   &in.Actor.UserID,
		Action:   "review_created",
		Entity:   "review",
		EntityID: &review.ID,
		Metadata: map[string]any{"booking_id": b.ID, "rating": in.Rating},
	})

	return review, nil
}
