package main

import (
	"context"
	"fmt"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"diotrix/internal/config"
	"diotrix/internal/models"
	"diotrix/internal/services"
)

// App struct
type App struct {
	ctx          context.Context
	Gallery      services.GalleryService
	Settings     services.SettingsService
	Entitlements services.EntitlementService
	dbClose      func() error
}

// NewApp creates a new App application struct
func NewApp() *App {
	return &App{}
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// shutdown is called when the app is closing. Clean up resources here.
func (a *App) shutdown(ctx context.Context) {
	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			runtime.LogError(ctx, fmt.Sprintf("failed to close database: %v", err))
		} else {
			runtime.LogInfo(ctx, "database closed")
		}
		a.dbClose = nil
	}
}

// StylePresets returns the style catalogue for the create screen.
func (a *App) StylePresets() []models.StylePreset {
	return models.StylePresets
}

// AspectRatios returns the fixed aspect-ratio enumeration.
func (a *App) AspectRatios() []string {
	return models.AspectRatios
}

// IsDevelopment reports whether the app runs in dev mode.
func (a *App) IsDevelopment() bool {
	return config.IsDevelopment()
}

// GalleryState returns the current in-memory gallery projection.
func (a *App) GalleryState() services.GalleryState {
	return a.Gallery.State()
}

// CompleteOnboarding clears the first-run flag.
func (a *App) CompleteOnboarding() error {
	show := false
	if _, err := a.Settings.Update(a.ctx, models.SettingsPatch{ShowOnboarding: &show}); err != nil {
		runtime.LogError(a.ctx, fmt.Sprintf("failed to complete onboarding: %v", err))
		return err
	}
	return nil
}

// ResetExperience wipes the gallery and restores default settings.
func (a *App) ResetExperience() error {
	if err := a.Gallery.ClearGallery(a.ctx); err != nil {
		runtime.LogError(a.ctx, fmt.Sprintf("failed to clear gallery: %v", err))
		return err
	}
	if _, err := a.Settings.Clear(a.ctx); err != nil {
		runtime.LogError(a.ctx, fmt.Sprintf("failed to reset settings: %v", err))
		return err
	}
	return nil
}
