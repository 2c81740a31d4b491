package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"

	"inspection-viewer/config"
	"inspection-viewer/internal/api/telegram"
	"inspection-viewer/internal/api/web"
	"inspection-viewer/internal/container"
	"inspection-viewer/internal/domain/port"
	"inspection-viewer/internal/infrastructure/storage"
	"inspection-viewer/internal/infrastructure/viewstate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := container.NewLogger(cfg.LogLevel)

	if cfg.TelegramToken == "" && cfg.HTTPAddr == "" {
		log.Fatal("TELEGRAM_TOKEN or HTTP_ADDR is required")
	}

	// Создаём хранилище операторов
	operators := storage.NewMemoryOperatorRepository()

	// Собираем сервисы приложения
	appContainer := container.New(cfg, log, operators)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	if cfg.TelegramToken != "" {
		newViewer := func(view port.View, l logrus.FieldLogger) telegram.Viewer {
			return appContainer.NewViewer(view, l)
		}
		bot, err := telegram.NewBot(cfg.TelegramToken, appContainer.OperatorService, newViewer, appContainer.Printer, log.WithField("component", "telegram"))
		if err != nil {
			log.Fatalf("Failed to create bot: %v", err)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Info("Bot is running...")
			if err := bot.Run(ctx); err != nil {
				log.WithError(err).Error("Bot error")
				stop()
			}
		}()
	}

	if cfg.HTTPAddr != "" {
		state := viewstate.NewStore()
		viewerLog := log.WithField("component", "web")
		dispatcher := appContainer.NewViewer(state, viewerLog)
		server := web.NewServer(dispatcher, state, viewerLog)

		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = dispatcher.Run(ctx)
		}()
		go func() {
			defer wg.Done()
			if err := server.Run(ctx, cfg.HTTPAddr); err != nil {
				log.WithError(err).Error("HTTP server error")
				stop()
			}
		}()
	}

	wg.Wait()
	log.Info("stopped")
}
