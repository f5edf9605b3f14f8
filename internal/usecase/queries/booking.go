package queries

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrNotOwner        = errs.New("booking belongs to another user")
	ErrQueryFailed     = errs.New("query failed")
)

type BookingQueries interface {
	// GetByID enforces ownership: non-admin callers only see their own
	// bookings.
	GetByID(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, filter BookingFilter, sort BookingSort, page Page) ([]*BookingListItem, int64, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	Search(ctx context.Context, filter BookingFilter, sort BookingSort, limit, offset int32) ([]*BookingListItem, int64, error)
}

type bookingQueriesImpl struct {
	repo BookingViewRepo
}

func NewBookingQueries(repo BookingViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	if !isAdmin && view.UserID != actorID {
		return nil, ErrNotOwner
	}
	return view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, filter BookingFilter, sort BookingSort, page Page) ([]*BookingListItem, int64, error) {
	limit, offset := page.LimitOffset()
	items, total, err := q.repo.Search(ctx, filter, sort, limit, offset)
	if err != nil {
		return nil, 0, errs.Mark(err, ErrQueryFailed)
	}
	return items, total, nil
}
