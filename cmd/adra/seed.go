package main

import (
	"context"
	"fmt"

	"adra/internal/db"
	"adra/internal/seed"
	"adra/internal/store"
	"adra/pkg/types"

	"github.com/k0kubun/pp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with demo data",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cfg.DatabaseURL == "" {
			return fmt.Errorf("set DATABASE_URL")
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		beneficiaries := store.NewBeneficiaryRepository(pool)
		donations := store.NewDonationRepository(pool)
		requests := store.NewRequestRepository(pool)

		logrus.Info("Seeding demo data...")
		if err := seed.Demo(ctx, beneficiaries, donations, requests); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}

		seeded, _, err := beneficiaries.List(ctx, types.ListFilter{})
		if err != nil {
			return fmt.Errorf("failed to list seeded beneficiaries: %w", err)
		}
		pp.Println(seeded)

		logrus.Info("Demo data seeded successfully")

		return nil
	},
}
