package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/greyfold/contactbook/internal/account"
	"github.com/greyfold/contactbook/internal/auth"
	"github.com/greyfold/contactbook/internal/config"
	"github.com/greyfold/contactbook/internal/contacts"
	"github.com/greyfold/contactbook/internal/httpapi"
	"github.com/greyfold/contactbook/internal/mailer"
	"github.com/greyfold/contactbook/internal/repository"
	"github.com/greyfold/contactbook/internal/storage"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("app", "contactbook").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx := context.Background()

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DatabaseDSN)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to reach database")
	}

	if err := repository.CreateSchema(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("failed to create schema")
	}

	repo := repository.NewManager(db)

	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenExpirationHrs)

	mail := mailer.New(mailer.Config{
		Host:          cfg.SMTPHost,
		Port:          cfg.SMTPPort,
		Username:      cfg.SMTPUsername,
		Password:      cfg.SMTPPassword,
		From:          cfg.SMTPFrom,
		PublicBaseURL: cfg.PublicBaseURL,
	}, logger.With().Str("component", "mailer").Logger())

	avatars, err := storage.NewAvatarStore(cfg.AvatarDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare avatar storage")
	}

	accounts := account.NewService(repo, tokens, mail, logger.With().Str("component", "account").Logger())
	book := contacts.NewService(repo, logger.With().Str("component", "contacts").Logger())

	app := httpapi.NewServer(httpapi.ServerDeps{
		Logger:   logger.With().Str("component", "http").Logger(),
		Repo:     repo,
		Tokens:   tokens,
		Accounts: accounts,
		Contacts: book,
		Avatars:  avatars,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	logger.Info().Str("addr", cfg.HTTPAddr).Msg("server started")

	waitExitSignal()

	if err := app.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("failed to shut down cleanly")
	}
}

func waitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
