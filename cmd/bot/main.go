package main

import (
	"os"
	"os/signal"
	"syscall"

	"shift-leave-bot/internal/app"
	"shift-leave-bot/internal/config"
	"shift-leave-bot/internal/handler"
	"shift-leave-bot/internal/repository"
	"shift-leave-bot/internal/service"
	"shift-leave-bot/pkg/telegram"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetConfig()
	cfg.ApplyLogLevel()
	if err := cfg.RequireTelegram(); err != nil {
		logrus.Fatal("Invalid bot config: ", err)
	}
	logrus.Info("Config initialized...")

	leaveApp, err := app.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to open ledger")
	}

	// Пользователи бота хранятся в SQLite отдельно от книги отпусков
	db, err := repository.OpenDatabase(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatal("Failed to connect to database: ", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatal("Failed to get database instance: ", err)
	}

	userRepo, err := repository.NewUserRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create user repository")
	}

	userService := service.NewUserService(userRepo, leaveApp.Ledger)

	// Инициализируем администратора из конфига
	if err := userService.InitializeAdmin(cfg.BaseAdminChatID); err != nil {
		logrus.Infof("Warning: Failed to initialize admin: %v", err)
	} else if cfg.BaseAdminChatID != 0 {
		logrus.Infof("Admin initialized with chat ID: %d", cfg.BaseAdminChatID)
	}

	client, err := telegram.NewClient(cfg.TelegramToken, cfg.TelegramDebug)
	if err != nil {
		logrus.Fatal("Failed to create Telegram client: ", err)
	}

	logrus.Infof("Authorized on account %s", client.Bot.Self.UserName)

	botHandler := handler.NewHandler(
		client,
		userService,
		leaveApp.Leave,
		leaveApp.Roster,
		leaveApp.Audit,
		cfg,
	)

	updates := client.Bot.GetUpdatesChan(client.UpdateConfig)

	// Обработка сигналов для graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go botHandler.HandleUpdates(updates)

	logrus.Info("Bot started. Press Ctrl+C to stop.")
	<-stop

	client.Bot.StopReceivingUpdates()
	leaveApp.Close()
	if err := sqlDB.Close(); err != nil {
		logrus.Infof("Error closing database: %v", err)
	}

	logrus.Info("Bot stopped gracefully")
}
