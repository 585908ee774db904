package repository

import (
	"context"
	"time"

	"gin-booking-engine/internal/domain/invoice"
	"gin-booking-engine/internal/domain/money"
	"gin-booking-engine/internal/infra"
	"gin-booking-engine/internal/infra/db"
	"gin-booking-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// tax_rate is NUMERIC(7,4) and crosses the wire as text so no float is involved.
const invoiceColumns = `id, booking_id, invoice_number, subtotal_cents, tax_rate::text, tax_cents,
	discount_cents, total_cents, issue_date, due_date, notes, is_paid, paid_at, created_at, updated_at`

type InvoiceRepository struct {
	db  db.DBTX
	loc *time.Location
}

func NewInvoiceRepository(dbtx db.DBTX, loc *time.Location) *InvoiceRepository {
	return &InvoiceRepository{db: dbtx, loc: loc}
}

// Create reports KindDuplicateKey when the booking is already invoiced.
func (r *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	s := inv.Snapshot()
	_, err := r.db.Exec(ctx, `
		INSERT INTO invoices (
			id, booking_id, invoice_number, subtotal_cents, tax_rate, tax_cents,
			discount_cents, total_cents, issue_date, due_date, notes, is_paid, paid_at,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		s.ID, s.BookingID, s.Number,
		s.Totals.Subtotal.Cents(), s.Totals.TaxRate.String(), s.Totals.TaxAmount.Cents(),
		s.Totals.Discount.Cents(), s.Totals.Total.Cents(),
		pgconv.DateToPgtype(s.IssuedOn), pgconv.DateToPgtype(s.DueOn),
		pgconv.OptionalText(s.Notes), s.Paid, pgconv.TimePtrToPgtype(s.PaidAt),
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create invoice", err)
	}
	return nil
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	inv, err := r.scan(r.db.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find invoice", err)
	}
	return inv, nil
}

func (r *InvoiceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	inv, err := r.scan(r.db.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock invoice", err)
	}
	return inv, nil
}

func (r *InvoiceRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*invoice.Invoice, error) {
	inv, err := r.scan(r.db.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE booking_id = $1`, bookingID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find invoice by booking", err)
	}
	return inv, nil
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	s := inv.Snapshot()
	tag, err := r.db.Exec(ctx, `
		UPDATE invoices SET notes = $2, is_paid = $3, paid_at = $4, updated_at = $5
		WHERE id = $1`,
		s.ID, pgconv.OptionalText(s.Notes), s.Paid, pgconv.TimePtrToPgtype(s.PaidAt), s.UpdatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to update invoice", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "invoice not found")
	}
	return nil
}

func (r *InvoiceRepository) scan(row pgx.Row) (*invoice.Invoice, error) {
	var (
		s                       invoice.Snapshot
		subtotal, tax, discount int64
		total                   int64
		rate                    string
		issueDate, dueDate      pgtype.Date
		notes                   pgtype.Text
		paidAt                  pgtype.Timestamptz
	)
	err := row.Scan(
		&s.ID, &s.BookingID, &s.Number, &subtotal, &rate, &tax,
		&discount, &total, &issueDate, &dueDate, &notes, &s.Paid, &paidAt,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	totals, err := totalsFromColumns(subtotal, rate, tax, discount, total)
	if err != nil {
		return nil, err
	}
	s.Totals = totals
	s.IssuedOn = pgconv.DateFromPgtype(issueDate, r.loc)
	s.DueOn = pgconv.DateFromPgtype(dueDate, r.loc)
	s.Notes = pgconv.StringFromPgtype(notes)
	s.PaidAt = pgconv.TimePtrFromPgtype(paidAt)
	return invoice.Reconstruct(s), nil
}

func totalsFromColumns(subtotal int64, rate string, tax, discount, total int64) (invoice.Totals, error) {
	var (
		t   invoice.Totals
		err error
	)
	if t.TaxRate, err = money.ParseRate(rate); err != nil {
		return t, err
	}
	for _, c := range []struct {
		dst   *money.Money
		cents int64
	}{
		{&t.Subtotal, subtotal},
		{&t.TaxAmount, tax},
		{&t.Discount, discount},
		{&t.Total, total},
	} {
		if *c.dst, err = money.FromCents(c.cents); err != nil {
			return t, err
		}
	}
	return t, nil
}
