package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shift-leave-bot/internal/api"
	"shift-leave-bot/internal/app"
	"shift-leave-bot/internal/config"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.GetConfig()
	cfg.ApplyLogLevel()

	leaveApp, err := app.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to open ledger")
	}
	defer leaveApp.Close()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewServer(leaveApp.Leave, leaveApp.Audit, leaveApp.Roster).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("Server starting on %s...", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logrus.Infof("Error shutting down server: %v", err)
	}

	logrus.Info("Server stopped gracefully")
}
