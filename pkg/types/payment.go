package types

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// Payment is a recorded transfer against a case's balance. Gateway
// identifiers are copied in by the payment webhook pipeline, which is
// outside this service.
type Payment struct {
	ID              string        `db:"id" json:"id"`
	CaseID          *string       `db:"case_id" json:"case_id"`
	AmountReceived  float64       `db:"amount_received" json:"amount_received"`
	Currency        string        `db:"currency" json:"currency"`
	PaymentMethod   *string       `db:"payment_method" json:"payment_method"`
	PaymentIntentID *string       `db:"payment_intent_id" json:"payment_intent_id"`
	PaymentLinkID   *string       `db:"payment_link_id" json:"payment_link_id"`
	PaymentLinkURL  *string       `db:"payment_link_url" json:"payment_link_url"`
	Status          PaymentStatus `db:"status" json:"status"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
}
