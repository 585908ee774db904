package readstore

import (
	"context"

	"gin-booking-engine/internal/domain/money"
	"gin-booking-engine/internal/infra"
	"gin-booking-engine/internal/infra/db"
	"gin-booking-engine/internal/pkg/pgconv"
	"gin-booking-engine/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type InvoiceReadStore struct {
	db db.DBTX
}

func NewInvoiceReadStore(dbtx db.DBTX) *InvoiceReadStore {
	return &InvoiceReadStore{db: dbtx}
}

func (r *InvoiceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.InvoiceView, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *InvoiceReadStore) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*queries.InvoiceView, error) {
	return r.findOne(ctx, sq.Eq{"booking_id": bookingID})
}

func (r *InvoiceReadStore) findOne(ctx context.Context, where sq.Eq) (*queries.InvoiceView, error) {
	query, args, err := psql.Select(
		"id", "booking_id", "invoice_number", "subtotal_cents", "tax_rate::text", "tax_cents",
		"discount_cents", "total_cents", "issue_date", "due_date", "is_paid", "paid_at", "notes", "created_at",
	).From("invoices").Where(where).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build invoice query", err)
	}

	var (
		v                       queries.InvoiceView
		rate                    string
		subtotal, tax, discount int64
		total                   int64
		issueDate, dueDate      pgtype.Date
		paidAt                  pgtype.Timestamptz
		notes                   pgtype.Text
	)
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&v.ID, &v.BookingID, &v.InvoiceNumber, &subtotal, &rate, &tax,
		&discount, &total, &issueDate, &dueDate, &v.IsPaid, &paidAt, &notes, &v.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("invoice not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find invoice", err)
	}

	for _, c := range []struct {
		dst   *string
		cents int64
	}{
		{&v.Subtotal, subtotal},
		{&v.TaxAmount, tax},
		{&v.Discount, discount},
		{&v.Total, total},
	} {
		if *c.dst, err = amount(c.cents); err != nil {
			return nil, infra.WrapRepoErr("stored invoice amount is invalid", err, infra.KindDBFailure)
		}
	}
	taxRate, err := money.ParseRate(rate)
	if err != nil {
		return nil, infra.WrapRepoErr("stored tax rate is invalid", err, infra.KindDBFailure)
	}
	v.TaxRate = taxRate.String()
	v.IssueDate = dateString(issueDate.Time)
	v.DueDate = dateString(dueDate.Time)
	v.PaidAt = pgconv.TimePtrFromPgtype(paidAt)
	v.Notes = pgconv.StringFromPgtype(notes)
	return &v, nil
}
