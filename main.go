package main

import (
	"context"
	"embed"
	"fmt"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"

	"diotrix/internal/config"
	"diotrix/internal/database"
	"diotrix/internal/events"
	"diotrix/internal/imagen"
	"diotrix/internal/services"
	"diotrix/internal/storage"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg, err := config.New()
	if err != nil {
		panic(err)
	}

	zapLogger, err := newLogger(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = zapLogger.Sync() }()
	sugar := zapLogger.Sugar()

	app := NewApp()

	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}
	db, err := database.Init(database.Config{
		Path:     cfg.DatabasePath,
		LogLevel: logLevel,
	})
	if err != nil {
		sugar.Errorw("failed to open database", "error", err)
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		app.dbClose = sqlDB.Close
	}

	blobs := storage.NewDiskBlobStore(cfg.GalleryDir, sugar)

	// Create each service
	dbService := services.NewDbServices(db, blobs, sugar)
	keyringService := services.NewKeyringService()

	var provider services.SubscriptionProvider
	if cfg.RevenueCatAPIKey != "" && cfg.RevenueCatAppUserID != "" {
		provider = services.NewRevenueCatProvider(cfg.RevenueCatAPIKey, cfg.RevenueCatAppUserID, sugar)
	} else {
		sugar.Infow("no subscription credentials configured, running free tier only")
		provider = services.NewMemorySubscriptionProvider()
	}
	entitlementService := services.NewEntitlementService(dbService.Settings, provider, sugar)

	generator := imagen.NewClient(cfg.GoogleAIKey, sugar)
	generationService := services.NewGenerationService(generator, dbService.Gallery, entitlementService, keyringService, sugar)

	app.Gallery = dbService.Gallery
	app.Settings = dbService.Settings
	app.Entitlements = entitlementService

	// Create application with options
	err = wails.Run(&options.App{
		Title:  "Diotrix",
		Width:  1024,
		Height: 768,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Linux: &linux.Options{
			WindowIsTranslucent: false,
			WebviewGpuPolicy:    linux.WebviewGpuPolicyAlways,
			ProgramName:         "Diotrix",
		},
		BackgroundColour: &options.RGBA{R: 16, G: 18, B: 33, A: 1},
		OnStartup: func(ctx context.Context) {
			events.EnableRuntimeEmitter()
			app.startup(ctx)
			dbService.StartDbServices(ctx)
			entitlementService.Startup(ctx)
			generationService.Startup(ctx)
			keyringService.Startup()

			// First paint should not wait for the gallery scan.
			dbService.Gallery.RefreshInBackground()
		},
		OnShutdown: app.shutdown,
		Bind: []interface{}{
			app,
			dbService.Gallery,
			dbService.Settings,
			entitlementService,
			generationService,
			keyringService,
		},
	})

	if err != nil {
		fmt.Println("Error:", err.Error())
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
