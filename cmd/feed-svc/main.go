package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"socialfeed/internal/common"
	"socialfeed/internal/dbmysql"
	"socialfeed/internal/di"

	"github.com/gorilla/mux"
)

func main() {
	app, cleanup, err := di.InitializeFeedService()
	if err != nil {
		common.Log.WithError(err).Fatal("failed to initialize feed service")
	}
	defer cleanup()

	cfg := app.Config
	common.InitLogger(cfg.Logging.Level, cfg.Logging.Format, cfg.Server.Environment)

	if err := app.DB.AutoMigrate(&dbmysql.Post{}, &dbmysql.Friend{}, &dbmysql.User{}); err != nil {
		common.Log.WithError(err).Fatal("mysql migration failed")
	}

	idxCtx, idxCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := app.Mongo.EnsureIndexes(idxCtx); err != nil {
		idxCancel()
		common.Log.WithError(err).Fatal("mongo index creation failed")
	}
	idxCancel()

	router := mux.NewRouter()
	router.Use(common.LoggingMiddleware)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(common.AuthMiddleware)
	app.Handler.Register(api)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	app.Worker.Start(workerCtx)

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		common.Log.WithField("addr", srv.Addr).Info("feed service listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.Log.WithError(err).Fatal("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	common.Log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.Log.WithError(err).Error("http shutdown failed")
	}

	workerCancel()
	app.Worker.Stop()
	common.Log.Info("feed service stopped")
}
