package main

import (
	"context"
	"fmt"

	"debtportal/internal/db"
	"debtportal/internal/seed"
	"debtportal/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with a sample debt portfolio",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		debtorRepo := store.NewDebtorRepository(pool)
		caseRepo := store.NewCaseRepository(pool)
		attachmentRepo := store.NewAttachmentRepository(pool)
		paymentRepo := store.NewPaymentRepository(pool)
		commRepo := store.NewCommRepository(pool)

		logrus.Info("Seeding portfolio...")
		if err := seed.SeedPortfolio(ctx, debtorRepo, caseRepo, attachmentRepo, paymentRepo, commRepo); err != nil {
			return fmt.Errorf("failed to seed portfolio: %w", err)
		}

		logrus.Info("Portfolio seeded successfully")

		return nil
	},
}
