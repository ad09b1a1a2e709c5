package types

import "time"

// Debtor is the individual who owes money. Rows are created by the
// collection back office, never by the portal; the portal only reads
// them, keyed by phone number at login.
type Debtor struct {
	ID                 string    `db:"id" json:"id"`
	FirstName          string    `db:"first_name" json:"first_name"`
	LastName           string    `db:"last_name" json:"last_name"`
	Email              *string   `db:"email" json:"email"`
	PhoneNumber        *string   `db:"phone_number" json:"phone_number"`
	PersonalID         *string   `db:"personal_id" json:"personal_id"`
	Language           *string   `db:"language" json:"language"`
	Status             *string   `db:"status" json:"status"`
	TotalDebtAmount    float64   `db:"total_debt_amount" json:"total_debt_amount"`
	TotalDebtRemaining float64   `db:"total_debt_remaining" json:"total_debt_remaining"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}
