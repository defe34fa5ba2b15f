package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"nanny-payroll-bot/internal/config"
	"nanny-payroll-bot/internal/handler"
	"nanny-payroll-bot/internal/logging"
	"nanny-payroll-bot/internal/repository"
	"nanny-payroll-bot/internal/service"
	"nanny-payroll-bot/pkg/telegram"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetBotConfig()
	logrus.Info("Config initialized...")

	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		logrus.WithError(err).Warn("Unknown LOG_LEVEL, using info")
	}

	// Инициализируем SQLite базу данных
	db, err := repository.Open(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	store, err := repository.NewStore(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize repositories")
	}

	userService := service.NewUserService(store.Users)
	contractService := service.NewContractService(store.Contracts)
	eventService := service.NewScheduleEventService(store.Events)

	payrollService := service.NewPayrollService(store, cfg.Policy())
	payrollService.SetLocation(cfg.Location)

	ctx := context.Background()

	// Инициализируем администратора из конфига
	if err := userService.InitializeAdmin(ctx, cfg.BaseAdminChatID); err != nil {
		logrus.Infof("Warning: Failed to initialize admin: %v", err)
	} else if cfg.BaseAdminChatID != 0 {
		logrus.Infof("Admin initialized with chat ID: %d", cfg.BaseAdminChatID)
	}

	// Начальный импорт календаря
	if cfg.EventsSeedFile != "" {
		count, err := eventService.ImportFile(ctx, cfg.EventsSeedFile)
		if err != nil {
			logrus.WithError(err).WithField("file", cfg.EventsSeedFile).Warn("Failed to import schedule events")
		} else {
			logrus.WithField("count", count).Info("Schedule events imported from seed file")
		}
	}

	// Создаем клиент Telegram
	client, err := telegram.NewClient(cfg.TelegramToken, cfg.Debug)
	if err != nil {
		logrus.Fatal("Failed to create Telegram client:", err)
	}

	logrus.Infof("Authorized on account %s", client.Bot.Self.UserName)

	botHandler := handler.NewHandler(
		client,
		userService,
		payrollService,
		contractService,
		eventService,
		cfg,
	)

	// Настраиваем канал обновлений
	updates := client.Bot.GetUpdatesChan(client.UpdateConfig)

	// Обработка сигналов для graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Запускаем обработку сообщений
	go botHandler.HandleUpdates(updates)

	logrus.Info("Bot started. Press Ctrl+C to stop.")
	<-stop

	client.Bot.StopReceivingUpdates()

	// Закрываем соединение с БД
	if err := repository.Close(db); err != nil {
		logrus.Infof("Error closing database: %v", err)
	}

	logrus.Info("Bot stopped gracefully")
}
