package cmd

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/udem-connect/campus-connect/internal/logger"
	"github.com/udem-connect/campus-connect/internal/seed"
	"github.com/udem-connect/campus-connect/internal/store"
)

var errSeedInMemory = errors.New("seeding an in-memory store has no lasting effect, unset store.in-memory")

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the demo students (" + seed.CampusDomain + " accounts) with the built-in roster",
	Run: func(_ *cobra.Command, _ []string) {
		logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}
		defer logger.Sync()

		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}

		if err := seedStudents(context.Background(), config.Store, time.Now(), logger); err != nil {
			logger.Fatal("seeding students", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

// seedStudents closes the store before returning, so callers may exit on error.
func seedStudents(ctx context.Context, cfg *StoreConfig, now time.Time, logger *zap.Logger) (err error) {
	if cfg.InMemory {
		return errSeedInMemory
	}

	db, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, db.Close())
	}()

	result, err := seed.Apply(ctx, db.Collection(store.Students), now, logger)
	if err != nil {
		return err
	}

	for _, p := range result.Inserted {
		logger.Info("demo student",
			zap.String("name", p.Name),
			zap.String("email", p.Email),
			zap.String("french_level", p.Level),
			zap.Strings("languages", p.Languages),
		)
	}
	return nil
}
