package main

import (
	"context"
	"fmt"

	"debtportal/internal/db"
	"debtportal/internal/payments"
	"debtportal/internal/store"

	"github.com/sirupsen/logrus"
	stripe "github.com/stripe/stripe-go/v84"
	"github.com/urfave/cli/v2"
)

var paymentLinkCommand = &cli.Command{
	Name:  "payment-link",
	Usage: "Provision a Stripe payment link for a case and store it on the case row",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "case-number",
			Aliases:  []string{"n"},
			Usage:    "Human-readable case number, e.g. C-1001",
			Required: true,
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cfg.StripeSecretKey == "" {
			return fmt.Errorf("set STRIPE_SECRET_KEY")
		}
		stripe.Key = cfg.StripeSecretKey

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		caseRepo := store.NewCaseRepository(pool)

		cs, err := caseRepo.CaseByNumber(ctx, c.String("case-number"))
		if err != nil {
			return fmt.Errorf("failed to look up case: %w", err)
		}

		linkURL, linkAmount, err := payments.ProvisionCaseLink(ctx, cs)
		if err != nil {
			return err
		}

		if err := caseRepo.UpdatePaymentLink(ctx, cs.ID, linkURL, linkAmount); err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"case_number":         cs.CaseNumber,
			"payment_link_url":    linkURL,
			"payment_link_amount": linkAmount,
		}).Info("payment link provisioned")

		return nil
	},
}
