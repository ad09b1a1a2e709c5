package types

import "time"

type CaseStatus string

const (
	CaseStatusActive CaseStatus = "ACTIVE"
	CaseStatusClosed CaseStatus = "CLOSED"
)

type CasePriority string

const (
	CasePriorityLow    CasePriority = "LOW"
	CasePriorityMedium CasePriority = "MEDIUM"
	CasePriorityHigh   CasePriority = "HIGH"
	CasePriorityUrgent CasePriority = "URGENT"
)

// Case is a single debt under collection, owned by at most one debtor.
type Case struct {
	ID                string       `db:"id" json:"id"`
	DebtorID          *string      `db:"debtor_id" json:"debtor_id"`
	CaseNumber        string       `db:"case_number" json:"case_number"`
	CreditorName      string       `db:"creditor_name" json:"creditor_name"`
	Currency          string       `db:"currency" json:"currency"`
	DebtAmount        float64      `db:"debt_amount" json:"debt_amount"`
	DebtRemaining     float64      `db:"debt_remaining" json:"debt_remaining"`
	DebtDate          *time.Time   `db:"debt_date" json:"debt_date"`
	DueDate           time.Time    `db:"due_date" json:"due_date"`
	CaseDescription   *string      `db:"case_description" json:"case_description"`
	Priority          CasePriority `db:"priority" json:"priority"`
	Status            CaseStatus   `db:"status" json:"status"`
	PaymentLinkURL    *string      `db:"payment_link_url" json:"payment_link_url"`
	PaymentLinkAmount *float64     `db:"payment_link_amount" json:"payment_link_amount"`
	CreatedAt         time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time    `db:"updated_at" json:"updated_at"`
}
