package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"orplanning/config"
	"orplanning/internal/adapters/email"
	"orplanning/internal/adapters/events"
	"orplanning/internal/adapters/metrics"
	"orplanning/internal/adapters/snapshot"
	"orplanning/internal/domain"
	"orplanning/internal/repository/memory"
	"orplanning/internal/repository/postgres"
	"orplanning/internal/services"
	"orplanning/internal/supervision"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// app holds the services shared by the HTTP server and the CLI commands.
type app struct {
	supervision domain.SupervisionService
	rules       domain.RuleService
	sectors     domain.SectorService
	recorder    *metrics.Recorder

	closers []func() error
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}

type repositories struct {
	rules       domain.RuleRepository
	sectors     domain.SectorRepository
	assignments domain.AssignmentRepository
}

func openRepositories(ctx context.Context, cfg *config.Config, migrate bool, logger *slog.Logger) (repositories, func() error, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		snap, err := snapshot.Load(cfg.SnapshotFile)
		if err != nil {
			return repositories{}, nil, err
		}
		repos := memory.FromSnapshot(snap)
		logger.Info("using snapshot storage", "file", cfg.SnapshotFile,
			"rules", len(snap.Rules), "sectors", len(snap.Sectors), "rooms", len(snap.Rooms))
		return repositories{rules: repos.Rules, sectors: repos.Sectors, assignments: repos.Assignments}, func() error { return nil }, nil
	default:
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			return repositories{}, nil, fmt.Errorf("open database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return repositories{}, nil, fmt.Errorf("ping database: %w", err)
		}
		if migrate {
			if err := postgres.Migrate(ctx, db); err != nil {
				db.Close()
				return repositories{}, nil, err
			}
			logger.Info("database schema applied")
		}
		return repositories{
			rules:       postgres.NewRuleRepository(db),
			sectors:     postgres.NewSectorRepository(db),
			assignments: postgres.NewAssignmentRepository(db),
		}, db.Close, nil
	}
}

func newApp(ctx context.Context, cfg *config.Config, migrate bool, logger *slog.Logger) (*app, error) {
	mode, err := supervision.ParseCompatibilityMode(cfg.CompatibilityMode)
	if err != nil {
		return nil, err
	}

	a := &app{}
	repos, closeRepos, err := openRepositories(ctx, cfg, migrate, logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeRepos)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Mail.FromAddress,
		FromName:    cfg.Mail.FromName,
		SES: email.SESConfig{
			Region:             cfg.Mail.AWSRegion,
			AccessKeyID:        cfg.Mail.AWSAccessKeyID,
			SecretAccessKey:    cfg.Mail.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Mail.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("create mailer: %w", err)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	publisher := events.NewNoopPublisher()
	if cfg.RedisAddr != "" {
		redisPublisher, err := events.NewRedisPublisher(ctx, events.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			Channel:  cfg.RedisChannel,
		}, nodeID(), logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, redisPublisher.Close)
		publisher = redisPublisher
	}

	a.recorder = metrics.NewRecorder()
	a.supervision = services.NewSupervisionService(services.SupervisionConfig{
		RuleRepo:          repos.rules,
		SectorRepo:        repos.sectors,
		AssignmentRepo:    repos.assignments,
		EmailService:      emailService,
		Publisher:         publisher,
		Recorder:          a.recorder,
		AlertRecipients:   cfg.AlertRecipients,
		CompatibilityMode: mode,
		HighLoadThreshold: cfg.HighLoadThreshold,
		ContextTimeout:    cfg.ContextTimeout,
		Logger:            logger,
	})
	a.rules = services.NewRuleService(repos.rules, cfg.ContextTimeout)
	a.sectors = services.NewSectorService(repos.sectors, cfg.ContextTimeout)
	return a, nil
}

// nodeID identifies this process in published events.
func nodeID() string {
	if host, err := os.Hostname(); err == nil && host != "" {
		return host + "-" + uuid.NewString()[:8]
	}
	return uuid.NewString()
}
