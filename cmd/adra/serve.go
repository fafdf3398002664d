package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adra/internal/db"
	"adra/internal/notify"
	"adra/internal/query"
	"adra/internal/server"
	"adra/internal/session"
	"adra/internal/storage"
	"adra/internal/store"
	"adra/internal/workflow"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "Start the HTTP server",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "in-memory",
			Usage: "Use in-memory stores instead of Postgres (development only)",
		},
	},
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	var (
		beneficiaries store.BeneficiaryStore
		donations     store.DonationStore
		requests      store.RequestStore
		codes         store.CodeStore
	)

	if cCtx.Bool("in-memory") {
		logger.Warn("running with in-memory stores, data will not survive a restart")
		beneficiaries = store.NewMemoryBeneficiaryStore()
		donations = store.NewMemoryDonationStore()
		requests = store.NewMemoryRequestStore()
		codes = store.NewMemoryCodeStore()
	} else {
		if config.DatabaseURL == "" {
			return fmt.Errorf("set DATABASE_URL")
		}

		pool, err := db.Connect(ctx, config)
		if err != nil {
			return err
		}
		defer pool.Close()

		beneficiaries = store.NewBeneficiaryRepository(pool)
		donations = store.NewDonationRepository(pool)
		requests = store.NewRequestRepository(pool)
		codes = store.NewCodeRepository(pool)
	}

	var sessions session.Store
	if config.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}

		sessions = session.NewRedisStore(client)
	} else {
		sessions = session.NewMemoryStore()
	}

	guard := session.NewGuard(
		logger,
		sessions,
		config.AdminPassword,
		time.Duration(config.SessionTTLSec)*time.Second,
	)

	var sender notify.CodeSender = notify.NewLogSender(logger)
	if config.NotifyWebhookURL != "" {
		sender = notify.NewWebhookSender(config.NotifyWebhookURL, config.NotifyWebhookKey)
	}

	gate := workflow.NewGate(
		logger,
		beneficiaries,
		codes,
		sender,
		time.Duration(config.CodeTTLSec)*time.Second,
		time.Duration(config.ResendCooldownSec)*time.Second,
	)
	review := workflow.NewReview(logger, beneficiaries, donations)
	intake := workflow.NewIntake(logger, beneficiaries, donations, requests, gate)
	queries := query.NewService(beneficiaries, donations, requests)

	var archiver *storage.ExportArchiver
	if config.ExportBucket != "" {
		awsConfig, err := loadAWSConfig(ctx)
		if err != nil {
			return err
		}
		archiver = storage.NewExportArchiver(s3.NewFromConfig(awsConfig), config.ExportBucket)
	}

	srv, err := server.New(config, logger, guard, gate, intake, review, queries, archiver)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
