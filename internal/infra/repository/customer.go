package repository

import (
	"context"
	"time"

	"gin-booking-engine/internal/domain/customer"
	"gin-booking-engine/internal/infra"
	"gin-booking-engine/internal/infra/db"
	"gin-booking-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CustomerRepository struct {
	db db.DBTX
}

func NewCustomerRepository(dbtx db.DBTX) *CustomerRepository {
	return &CustomerRepository{db: dbtx}
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	var (
		name, email   string
		phone         pgtype.Text
		totalBookings int
		createdAt     time.Time
	)
	err := r.db.QueryRow(ctx, `
		SELECT name, email, phone, total_bookings, created_at
		FROM customers WHERE id = $1`, id).
		Scan(&name, &email, &phone, &totalBookings, &createdAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find customer", err)
	}
	return customer.ReconstructCustomer(id, name, email, pgconv.StringFromPgtype(phone), totalBookings, createdAt), nil
}

// Create reports KindDuplicateKey for an id or email already registered.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO customers (id, name, email, phone, total_bookings, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID(), c.Name(), c.Email(), pgconv.OptionalText(c.Phone()), c.TotalBookings(), c.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create customer", err)
	}
	return nil
}

func (r *CustomerRepository) IncrementBookings(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE customers SET total_bookings = total_bookings + 1 WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to count customer booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "customer not found")
	}
	return nil
}
