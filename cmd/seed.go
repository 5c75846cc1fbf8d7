package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/csfund/crowdfund-system/internal/infrastructure/config"
	csvstore "github.com/csfund/crowdfund-system/internal/infrastructure/db/csv"
	mongostore "github.com/csfund/crowdfund-system/internal/infrastructure/db/mongo"
	"github.com/csfund/crowdfund-system/internal/seed"
)

var (
	seedDataDir  string
	seedFixtures string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Provision the configured store with demo data",
	Long: `Seed validates the fixture set and writes it to the configured store
backend, replacing any existing data and starting with an empty pledge
ledger. Without --fixtures the built-in demo data set is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context())
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedDataDir, "data-dir", "", "target directory for the csv backend (defaults to DATA_DIR)")
	seedCmd.Flags().StringVar(&seedFixtures, "fixtures", "", "YAML fixtures file (defaults to the built-in demo set)")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	fixtures := seed.Default()
	if seedFixtures != "" {
		fixtures, err = seed.Load(seedFixtures)
		if err != nil {
			return err
		}
	}

	projects, tiers, users, err := fixtures.Entities(time.Now().UTC())
	if err != nil {
		return err
	}

	switch cfg.StoreBackend {
	case "mongo":
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(ctx) }()

		if err := db.Drop(ctx); err != nil {
			return fmt.Errorf("reset database: %w", err)
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		if err := mongostore.NewProjectRepository(db).InsertAll(ctx, projects); err != nil {
			return err
		}
		if err := mongostore.NewTierRepository(db).InsertAll(ctx, tiers); err != nil {
			return err
		}
		if err := mongostore.NewUserRepository(db).InsertAll(ctx, users); err != nil {
			return err
		}
		fmt.Printf("Seeded %d projects, %d tiers, %d users into %s\n",
			len(projects), len(tiers), len(users), cfg.Mongo.Database)
		return nil

	default: // csv
		dir := seedDataDir
		if dir == "" {
			dir = cfg.DataDir
		}
		if err := csvstore.Bootstrap(dir, projects, tiers, users); err != nil {
			return err
		}
		fmt.Printf("Seeded %d projects, %d tiers, %d users into %s\n",
			len(projects), len(tiers), len(users), dir)
		return nil
	}
}
