package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VinothPrinzz/student-tutor-automation/internal/app"
	"github.com/VinothPrinzz/student-tutor-automation/internal/infra/ai"
	"github.com/VinothPrinzz/student-tutor-automation/internal/infra/config"
	idb "github.com/VinothPrinzz/student-tutor-automation/internal/infra/database"
	idiscord "github.com/VinothPrinzz/student-tutor-automation/internal/infra/discord"
	"github.com/VinothPrinzz/student-tutor-automation/internal/infra/httpapi"
	"github.com/VinothPrinzz/student-tutor-automation/internal/infra/logger"
	"github.com/VinothPrinzz/student-tutor-automation/internal/infra/scheduler"
	"github.com/VinothPrinzz/student-tutor-automation/internal/infra/sheets"
	itelegram "github.com/VinothPrinzz/student-tutor-automation/internal/infra/telegram"
	"github.com/VinothPrinzz/student-tutor-automation/internal/infra/vision"

	"github.com/bwmarrin/discordgo"
	"gopkg.in/telebot.v3"
)

func main() {
	fmt.Println("Student Tutor Automation starting...")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load application configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg)
	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s", cfg.LogLevel, cfg.Environment)

	// Database and repositories
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully.")

	questionRepo := idb.NewPostgresQuestionRepository(db)
	studentRepo := idb.NewPostgresStudentRepository(db)

	// Outbound adapters
	generator := ai.NewGenerator(ai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
	}, log)

	extractor := vision.NewExtractor(cfg.ImageDir, log)

	archive := sheets.NewArchive(cfg.ArchiveSpreadsheetID, cfg.ArchiveSheetName, cfg.GoogleCredentialsFile, log)

	// Telegram bot (student-facing channel)
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			log.Errorf("telebot: %v", err)
		},
	})
	if err != nil {
		log.Fatalf("Could not create Telegram bot: %v", err)
	}
	messenger := itelegram.NewTelebotAdapter(bot)

	// Discord session (teacher-facing review channel)
	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		log.Fatalf("Could not create Discord session: %v", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages
	reviewChannel := idiscord.NewReviewChannel(session, cfg.ReviewChannelID, log)

	// Core workflow
	workflow := app.NewWorkflowService(
		questionRepo,
		studentRepo,
		generator,
		extractor,
		reviewChannel,
		messenger,
		archive,
		log,
		cfg.ImageDir,
	)
	digest := app.NewDigestService(questionRepo, reviewChannel, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Inbound event handlers
	idiscord.NewHandlers(ctx, workflow, log).Register(session)
	itelegram.RegisterStudentHandlers(ctx, bot, workflow, log)
	log.Info("Review and student handlers registered.")

	if err := session.Open(); err != nil {
		log.Fatalf("Could not open Discord gateway connection: %v", err)
	}
	defer session.Close()
	log.Info("Discord gateway connection established.")

	digestScheduler := scheduler.NewDigestScheduler(digest, log, cfg.CronSpecDigest)
	if err := digestScheduler.Start(); err != nil {
		log.Fatalf("Could not start digest scheduler: %v", err)
	}

	apiServer := httpapi.NewServer(questionRepo, studentRepo, log)
	go func() {
		if err := apiServer.Listen(cfg.HTTPListenAddr); err != nil {
			log.Errorf("HTTP API server stopped: %v", err)
		}
	}()
	log.Infof("HTTP API listening on %s.", cfg.HTTPListenAddr)

	go bot.Start()
	log.Info("Application setup complete. Bot is running.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down application...")
	cancel()
	digestScheduler.Stop()
	bot.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP API shutdown failed: %v", err)
	}

	log.Info("Application shut down gracefully.")
}
