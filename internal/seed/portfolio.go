package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"debtportal/internal/store"
	"debtportal/internal/utils"
	"debtportal/pkg/types"

	"github.com/k0kubun/pp"
)

// SeedPortfolio loads a small coherent sample: debtors with one case
// each, attachments, a backdated payment history, and comms rows.
// Seeding is idempotent per debtor: an already-present phone number is
// skipped entirely.
//
// To generate new IDs: `go run ./cmd/debtportal nanoid`
func SeedPortfolio(
	ctx context.Context,
	debtorRepo *store.DebtorRepository,
	caseRepo *store.CaseRepository,
	attachmentRepo *store.AttachmentRepository,
	paymentRepo *store.PaymentRepository,
	commRepo *store.CommRepository,
) error {
	now := time.Now()

	debtors := []types.Debtor{
		{
			ID:                 "rJ2mK8vQx4tYw7nLc3bF9sD1gH5pZ6aE",
			FirstName:          "Anna",
			LastName:           "Kowalska",
			Email:              utils.StringPtr("anna.kowalska+seed@example.com"),
			PhoneNumber:        utils.StringPtr("+48123456789"),
			Language:           utils.StringPtr("pl"),
			Status:             utils.StringPtr("active"),
			TotalDebtAmount:    4500,
			TotalDebtRemaining: 3000,
		},
		{
			ID:                 "uX9cV2bN7mQ4wE1rT6yK3oP8sA5dF0gJ",
			FirstName:          "Tomasz",
			LastName:           "Nowak",
			Email:              utils.StringPtr("tomasz.nowak+seed@example.com"),
			PhoneNumber:        utils.StringPtr("+48987654321"),
			Language:           utils.StringPtr("pl"),
			Status:             utils.StringPtr("active"),
			TotalDebtAmount:    1200,
			TotalDebtRemaining: 1200,
		},
	}

	cases := map[string]types.Case{
		// keyed by debtor ID
		"rJ2mK8vQx4tYw7nLc3bF9sD1gH5pZ6aE": {
			ID:              "aQ7wE3rT9yU1iO5pK8jH2gF6dS4lZ0xC",
			CaseNumber:      "C-1001",
			CreditorName:    "Vistula Bank S.A.",
			Currency:        "PLN",
			DebtAmount:      4500,
			DebtRemaining:   3000,
			DebtDate:        utils.TimePtr(now.AddDate(0, -8, 0)),
			DueDate:         now.AddDate(0, 2, 0),
			CaseDescription: utils.StringPtr("Unpaid consumer loan installments"),
			Priority:        types.CasePriorityHigh,
			Status:          types.CaseStatusActive,
		},
		"uX9cV2bN7mQ4wE1rT6yK3oP8sA5dF0gJ": {
			ID:              "bM4nB8vC2xZ6aS0dF5gH9jK3lQ7wE1rT",
			CaseNumber:      "C-1002",
			CreditorName:    "Telkom Polska",
			Currency:        "PLN",
			DebtAmount:      1200,
			DebtRemaining:   1200,
			DueDate:         now.AddDate(0, 1, 0),
			CaseDescription: utils.StringPtr("Outstanding telecom invoices"),
			Priority:        types.CasePriorityMedium,
			Status:          types.CaseStatusActive,
		},
	}

	seeded := 0
	for _, debtor := range debtors {
		existing, err := debtorRepo.DebtorByPhoneNumber(ctx, *debtor.PhoneNumber)
		if err != nil && !errors.Is(err, types.ErrDebtorNotFound) {
			return fmt.Errorf("failed to check debtor %s: %w", debtor.ID, err)
		}
		if existing != nil {
			continue
		}

		d := debtor
		if err := debtorRepo.CreateDebtor(ctx, &d); err != nil {
			return fmt.Errorf("failed to create debtor %s: %w", d.ID, err)
		}

		c := cases[d.ID]
		c.DebtorID = utils.StringPtr(d.ID)
		if err := caseRepo.CreateCase(ctx, &c); err != nil {
			return fmt.Errorf("failed to create case %s: %w", c.CaseNumber, err)
		}

		if err := seedCaseRecords(ctx, attachmentRepo, paymentRepo, commRepo, &c, now); err != nil {
			return err
		}

		seeded++
	}

	pp.Println("portfolio seeded, debtors created:", seeded)
	return nil
}

// seedCaseRecords attaches documents, payments, and comms to the first
// seeded case only; the second debtor deliberately has a bare case so
// the empty-history paths stay visible in a seeded environment.
func seedCaseRecords(
	ctx context.Context,
	attachmentRepo *store.AttachmentRepository,
	paymentRepo *store.PaymentRepository,
	commRepo *store.CommRepository,
	c *types.Case,
	now time.Time,
) error {
	if c.CaseNumber != "C-1001" {
		return nil
	}

	attachments := []types.CaseAttachment{
		{
			CaseID:      utils.StringPtr(c.ID),
			FileName:    "loan-agreement.pdf",
			StoragePath: fmt.Sprintf("cases/%s/loan-agreement.pdf", c.ID),
			Description: utils.StringPtr("Signed loan agreement"),
		},
		{
			CaseID:      utils.StringPtr(c.ID),
			FileName:    "payment-schedule.pdf",
			StoragePath: fmt.Sprintf("cases/%s/payment-schedule.pdf", c.ID),
		},
	}
	for i := range attachments {
		if err := attachmentRepo.CreateAttachment(ctx, &attachments[i]); err != nil {
			return fmt.Errorf("failed to create attachment %s: %w", attachments[i].FileName, err)
		}
	}

	// Backdated so history ordering (newest first) shows in the UI.
	payments := []types.Payment{
		{
			CaseID:         utils.StringPtr(c.ID),
			AmountReceived: 500,
			Currency:       c.Currency,
			PaymentMethod:  utils.StringPtr("card"),
			Status:         types.PaymentStatusCompleted,
			CreatedAt:      now.AddDate(0, -3, 0),
		},
		{
			CaseID:         utils.StringPtr(c.ID),
			AmountReceived: 1000,
			Currency:       c.Currency,
			PaymentMethod:  utils.StringPtr("transfer"),
			Status:         types.PaymentStatusCompleted,
			CreatedAt:      now.AddDate(0, -1, 0),
		},
	}
	for i := range payments {
		if err := paymentRepo.CreatePayment(ctx, &payments[i]); err != nil {
			return fmt.Errorf("failed to create payment for case %s: %w", c.CaseNumber, err)
		}
	}

	comms := []types.Comm{
		{
			CaseID:    c.ID,
			CommsType: types.CommsTypeSMS,
			Direction: types.CommsDirectionOutbound,
			Content:   utils.StringPtr("Payment reminder sent ahead of due date"),
			Status:    types.CommsStatusCompleted,
		},
		{
			CaseID:    c.ID,
			CommsType: types.CommsTypeCall,
			Direction: types.CommsDirectionInbound,
			Status:    types.CommsStatusCompleted,
		},
	}
	for i := range comms {
		if err := commRepo.CreateComm(ctx, &comms[i]); err != nil {
			return fmt.Errorf("failed to create comm for case %s: %w", c.CaseNumber, err)
		}
	}

	return nil
}
