package store

import (
	"context"
	"fmt"
	"time"

	"debtportal/internal/utils"
	"debtportal/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentTableName = "debtportal.payments"

var paymentColumns = utils.StructTagValues(types.Payment{})

type PaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// PaymentsByCaseID returns the case's payment history, newest first.
func (r *PaymentRepository) PaymentsByCaseID(ctx context.Context, caseID string) ([]types.Payment, error) {
	query, args, err := psql().
		Select(paymentColumns...).
		From(paymentTableName).
		Where(sq.Eq{"case_id": caseID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate payments query: %w", err)
	}

	payments := make([]types.Payment, 0)
	err = pgxscan.Select(ctx, r.pool, &payments, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payments: %w", err)
	}

	return payments, nil
}

func (r *PaymentRepository) CreatePayment(ctx context.Context, payment *types.Payment) error {
	if payment.ID == "" {
		payment.ID = utils.NanoID()
	}
	// Seed data backdates payments to exercise history ordering.
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}

	query, args, err := psql().
		Insert(paymentTableName).
		SetMap(utils.StructToMap(payment)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create payment query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create payment")
}
