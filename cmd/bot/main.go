package main

import (
	"context"
	"log/slog"
	"os"

	"areamsg/internal/adapters/discord"
	"areamsg/internal/application"
	"areamsg/internal/config"
	"areamsg/internal/infrastructure/database"
	"areamsg/internal/infrastructure/format"
	"areamsg/internal/infrastructure/i18n"
	"areamsg/pkg/logger"
	"areamsg/pkg/tz"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log, flush := logger.New(logger.Config{
		SentryDSN:         cfg.SentryDSN,
		SentryEnvironment: cfg.SentryEnvironment,
	})
	defer flush()

	// fatal flushes Sentry itself since os.Exit skips deferred calls.
	fatal := func(msg string, err error) {
		log.Error(msg, slog.Any("error", err))
		flush()
		os.Exit(1)
	}

	location, err := tz.Load(cfg.Timezone)
	if err != nil {
		fatal("invalid timezone", err)
	}

	templates, err := i18n.NewTemplateStore(cfg.Locale, i18n.WithOverrideDir(cfg.LangDir), i18n.WithLogger(log))
	if err != nil {
		fatal("loading message catalog failed", err)
	}

	ctx := context.Background()
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
		fatal("database migrations failed", err)
	}
	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		fatal("database initialisation failed", err)
	}
	defer pool.Close()

	resolver := application.NewResolver(templates,
		application.WithReplacementLimit(cfg.ReplacementLimit),
		application.WithLogger(log),
		application.WithMissingKeyHandler(func(key string) {
			log.Warn("message key missing from catalog", slog.String("key", key))
		}),
	)
	messages := application.NewMessageService(templates, resolver, format.New(), application.Settings{
		RichMessages:  cfg.RichMessages,
		ConsoleColors: cfg.ConsoleColors,
	}, log)
	regions := application.NewRegionService(database.NewRegionRepository(pool), messages, templates.Language(), location)

	bot, err := discord.NewBot(cfg, messages, regions, templates, log)
	if err != nil {
		fatal("creating Discord bot failed", err)
	}
	if err := bot.Start(); err != nil {
		fatal("bot stopped", err)
	}
}
