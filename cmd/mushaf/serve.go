package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/mushaf/internal/config"
	"github.com/aliskhannn/mushaf/internal/delivery/rest"
	"github.com/aliskhannn/mushaf/internal/delivery/telegram"
	"github.com/aliskhannn/mushaf/internal/infra/postgres"
	"github.com/aliskhannn/mushaf/internal/infra/postgres/repository"
	"github.com/aliskhannn/mushaf/internal/quran"
	"github.com/aliskhannn/mushaf/internal/service"
	"github.com/aliskhannn/mushaf/internal/storage"
)

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the Telegram bot and the maintenance job",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg, log)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "apply pending migrations before serving")
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if serveMigrate {
		if err := runMigrations(ctx, cfg.DB, log); err != nil {
			return err
		}
	}

	pool, err := openPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	// Initialize repositories.
	accounts := accountStore(pool)
	noteRepo := repository.NewNoteRepository(pool)
	bookmarkRepo := repository.NewBookmarkRepository(pool)
	challenges := storage.NewChallengeStorage()

	content := quran.NewClient(cfg.Quran.BaseURL, cfg.Quran.Timeout)
	edition, reciter := cfg.Quran.DefaultEdition, cfg.Quran.DefaultReciter

	// Initialize services.
	prefs := service.NewPreferences(accounts.Settings, edition, reciter, log.Named("preferences"))
	readerService := service.NewReaderService(content, prefs)
	noteService := service.NewNoteService(noteRepo)
	ayahService := service.NewAyahService(content, noteService, bookmarkRepo, prefs)
	bookmarkService := service.NewBookmarkService(bookmarkRepo, content, prefs, log.Named("bookmarks"))
	memorisationService := service.NewMemorisationService(content, challenges, service.NewRecitationValidator(), prefs)
	settingsService := service.NewSettingsService(accounts.Settings)
	authService := service.NewAuthService(
		accounts,
		accountTransactor{tx: postgres.NewTransactor(pool)},
		service.NewLogMailer(log.Named("mailer")),
		service.AuthConfig{
			SessionTTL:       cfg.Auth.SessionTTL,
			ResetTTL:         cfg.Auth.ResetTTL,
			ResetRedirectURL: cfg.Auth.ResetRedirectURL,
		},
		log.Named("auth"),
	)
	maintenanceService := service.NewMaintenanceService(
		accounts.Sessions, accounts.Resets, challenges, cfg.Maintenance.Schedule, log.Named("maintenance"),
	)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	handler := rest.NewHandler(rest.Services{
		Reader:    readerService,
		Ayahs:     ayahService,
		Notes:     noteService,
		Bookmarks: bookmarkService,
		Memoriser: memorisationService,
		Auth:      authService,
		Settings:  settingsService,
	}, log.Named("http"))

	router, err := rest.NewRouter(handler, log.Named("http"), cfg.HTTP.TrustedProxies)
	if err != nil {
		return err
	}

	server := rest.NewServer(rest.ServerConfig{
		Addr:         cfg.HTTP.Addr,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}, router, log.Named("http"))

	var bot *telegram.Handler
	if cfg.TelegramEnabled() {
		api, err := newBot(cfg.TelegramAPIToken, log)
		if err != nil {
			return err
		}

		bot = telegram.NewHandler(api, log.Named("telegram"), telegram.Services{
			Users:        authService,
			Reader:       readerService,
			Ayahs:        ayahService,
			Notes:        noteService,
			Bookmarks:    bookmarkService,
			Memorisation: memorisationService,
			Settings:     settingsService,
		})
	} else {
		log.Info("telegram token not set, bot disabled")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Run(ctx) })
	g.Go(func() error { return maintenanceService.Start(ctx) })
	if bot != nil {
		g.Go(func() error { return bot.Run(ctx) })
	}

	return g.Wait()
}

func newBot(token string, log *zap.Logger) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "surahs", Description: "Browse the Surahs"},
		{Command: "surah", Description: "Read a Surah (usage: /surah 2)"},
		{Command: "ayah", Description: "Open an Ayah (usage: /ayah 2:255)"},
		{Command: "note", Description: "Save a note (usage: /note 2:255 text)"},
		{Command: "bookmarks", Description: "Your bookmarks"},
		{Command: "page", Description: "Read a mushaf page (usage: /page 1)"},
		{Command: "memorise", Description: "Memorisation (usage: /memorise surah 112)"},
		{Command: "reciter", Description: "Choose a reciter"},
		{Command: "help", Description: "Help"},
	}

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		log.Warn("failed to set bot commands", zap.Error(err))
	}

	log.Info("authorized on telegram", zap.String("account", bot.Self.UserName))
	return bot, nil
}
