package commands

import (
	"context"
	"time"

	"gin-booking-engine/internal/domain/rating"
	domreview "gin-booking-engine/internal/domain/review"
	"gin-booking-engine/internal/infra"
	"gin-booking-engine/internal/pkg/clock"
	"gin-booking-engine/internal/pkg/errs"
	"gin-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReviewInput struct {
	BookingID uuid.UUID
	Rating    int
	Comment   string
}

type CreateReviewResult struct {
	Review *domreview.Review
	// ResourceRating is nil when the booking had no resource.
	ResourceRating *rating.State
}

type ReviewCommands interface {
	CreateReview(ctx context.Context, in CreateReviewInput) (*CreateReviewResult, error)
}

type reviewUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReviewUseCase(uow shared.UnitOfWork, clk clock.Clock) ReviewCommands {
	return &reviewUseCaseImpl{uow: uow, clock: clk}
}

func (uc *reviewUseCaseImpl) CreateReview(ctx context.Context, in CreateReviewInput) (*CreateReviewResult, error) {
	if _, err := domreview.NewRating(in.Rating); err != nil {
		return nil, invalid(err)
	}
	if _, err := domreview.NewComment(in.Comment); err != nil {
		return nil, invalid(err)
	}
	now := uc.clock.Now()

	var res *CreateReviewResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, in.BookingID)
		if err != nil {
			return notFound(err, ErrBookingNotFound)
		}

		rev, err := domreview.NewReview(b, in.Rating, in.Comment, now)
		if err != nil {
			return invalid(err)
		}

		exists, err := tx.Reviews().ExistsForBooking(ctx, b.ID())
		if err != nil {
			return err
		}
		if exists {
			return ErrReviewExists
		}
		if err := tx.Reviews().Create(ctx, rev); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrReviewExists
			}
			return err
		}

		res = &CreateReviewResult{Review: rev}
		if rid := rev.ResourceID(); rid != nil {
			state, err := uc.recordRating(ctx, tx, *rid, in.Rating, now)
			if err != nil {
				return err
			}
			res.ResourceRating = &state
		}

		return enqueueReviewEvent(ctx, tx, rev, res.ResourceRating, now)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// recordRating is the only writer of resource rating state.
func (uc *reviewUseCaseImpl) recordRating(ctx context.Context, tx shared.Tx, resourceID uuid.UUID, value int, now time.Time) (rating.State, error) {
	current, err := tx.RatingStates().GetForUpdate(ctx, resourceID)
	if err != nil {
		return rating.State{}, err
	}
	next, err := current.Record(value, now)
	if err != nil {
		return rating.State{}, invalid(err)
	}
	if err := tx.RatingStates().Save(ctx, next); err != nil {
		return rating.State{}, err
	}
	return next, nil
}

type reviewEvent struct {
	ReviewID      uuid.UUID  `json:"review_id"`
	BookingID     uuid.UUID  `json:"booking_id"`
	ResourceID    *uuid.UUID `json:"resource_id,omitempty"`
	Rating        int        `json:"rating"`
	AverageRating *float64   `json:"average_rating,omitempty"`
	ReviewCount   *int       `json:"review_count,omitempty"`
}

func enqueueReviewEvent(ctx context.Context, tx shared.Tx, rev *domreview.Review, state *rating.State, now time.Time) error {
	payload := reviewEvent{
		ReviewID:   rev.ID(),
		BookingID:  rev.BookingID(),
		ResourceID: rev.ResourceID(),
		Rating:     rev.Rating().Value(),
	}
	if state != nil {
		payload.AverageRating = &state.Average
		payload.ReviewCount = &state.Count
	}
	ev, err := shared.NewOutboxEvent(rev.BookingID(), shared.EventReviewCreated, payload, now)
	if err != nil {
		return errs.Wrap(err, "marshal review event")
	}
	return tx.Outbox().Enqueue(ctx, ev)
}
