// Package main initializes and starts the memo board server, setting up
// configuration, logging, the database connection, repositories, services,
// and handlers.
package main

import (
	"cmp"
	"fmt"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/sunshine-community/memoboard/internal/auth"
	"github.com/sunshine-community/memoboard/internal/config"
	"github.com/sunshine-community/memoboard/internal/db"
	"github.com/sunshine-community/memoboard/internal/logger"
	"github.com/sunshine-community/memoboard/internal/repository"
	"github.com/sunshine-community/memoboard/internal/server/handler/http"
	"github.com/sunshine-community/memoboard/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection and apply migrations.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories for users, memos, and settings.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	memoRepo := repository.NewPostgresMemoRepository(postgresDB)
	settingRepo := repository.NewPostgresSettingRepository(postgresDB)

	// Initialize business-logic services and the token service.
	tokens := auth.NewTokenService(options.JWTSecret)
	userService := service.NewUserService(userRepo, settingRepo)
	memoService := service.NewMemoService(memoRepo)
	adminService := service.NewAdminService(userRepo, memoRepo, settingRepo)

	// Create HTTP handlers for auth, memo, and admin endpoints.
	authHandler := &http.AuthHandler{UserService: userService, Tokens: tokens}
	memoHandler := &http.MemoHandler{MemoService: memoService}
	adminHandler := &http.AdminHandler{AdminService: adminService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, memoHandler, adminHandler, tokens, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
