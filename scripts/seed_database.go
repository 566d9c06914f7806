package main

import (
	"context"
	"fmt"
	"os"

	"github.com/franciscosanchezn/gin-restaurant-api/internal/config"
	"github.com/franciscosanchezn/gin-restaurant-api/internal/database"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var dbURI string

	root := &cobra.Command{
		Use:           "seed_database",
		Short:         "Manage the restaurant pizzas development data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dbURI, "db-uri", "", "database URI (defaults to DB_URI or "+config.DefaultDatabaseURL+")")

	open := func() (*gorm.DB, error) {
		if dbURI == "" {
			_ = godotenv.Load()
			dbURI = config.GetEnvWithDefault("DB_URI", config.DefaultDatabaseURL)
		}
		cfg, err := database.ParseDatabaseURI(dbURI)
		if err != nil {
			return nil, err
		}
		cfg.MaxRetries = 1
		db, err := database.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db); err != nil {
			_ = database.Close(db)
			return nil, err
		}
		return db, nil
	}

	var force bool
	seed := &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample restaurants, pizzas and offerings",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			defer database.Close(db)

			ctx := cmd.Context()
			if force {
				if err := database.Seed(ctx, db); err != nil {
					return err
				}
				fmt.Println("✓ Sample data inserted")
				return nil
			}
			seeded, err := database.SeedIfEmpty(ctx, db)
			if err != nil {
				return err
			}
			if seeded {
				fmt.Println("✓ Sample data inserted")
			} else {
				fmt.Println("Database already contains data, nothing to do (use --force to insert anyway)")
			}
			return nil
		},
	}
	seed.Flags().BoolVar(&force, "force", false, "insert the sample data even if the database is not empty")

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Delete every row and insert the sample data again",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			defer database.Close(db)

			ctx := cmd.Context()
			if err := database.Reset(ctx, db); err != nil {
				return err
			}
			if err := database.Seed(ctx, db); err != nil {
				return err
			}
			fmt.Println("✓ Database reset with sample data")
			return nil
		},
	}

	root.AddCommand(seed, reset)
	root.SetContext(context.Background())
	return root
}
