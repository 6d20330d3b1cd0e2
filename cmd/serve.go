package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/udem-connect/campus-connect/internal/logger"
	"github.com/udem-connect/campus-connect/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", "", "listen address, overrides server.address")
	serveCmd.Flags().Bool("in-memory", false, "keep data in memory only, overrides store.in-memory")

	viper.BindPFlag("server.address", serveCmd.Flags().Lookup("address"))
	viper.BindPFlag("store.in-memory", serveCmd.Flags().Lookup("in-memory"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the campus-connect api", zap.String("version", version))
	logger.Debug("starting with config", zap.Any("config", config))

	db, err := openStore(config.Store, logger)
	if err != nil {
		logger.Fatal("opening the store", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("closing the store", zap.Error(err))
		}
	}()

	srv, err := server.New(server.Options{
		Address:     config.Server.Address,
		CORSOrigins: config.Server.CORSOrigins,
		RateLimit:   config.Server.RateLimit,
		Version:     version,

		IncludeInactive: config.Matching.IncludeInactive,
		Store:       db,
		Matcher:     newSelector(ctx, config, logger),
		Logger:      logger.Named("http"),
	})
	if err != nil {
		logger.Fatal("creating the http server", zap.Error(err))
	}

	if err := srv.Run(ctx); err != nil {
		logger.Error("http server stopped", zap.Error(err))
		return
	}

	logger.Info("exiting", zap.String("reason", "shutdown requested"))
}
