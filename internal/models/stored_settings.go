package models

import (
	"strings"
	"time"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// DefaultFreeCredits is the free-tier generation allowance granted on a
// fresh install.
const DefaultFreeCredits = 5

// StoredSettings is the single merged preference record per installation.
type StoredSettings struct {
	Theme            string    `json:"theme"`
	AIAPIKey         string    `json:"aiApiKey"`
	ShowOnboarding   bool      `json:"showOnboarding"`
	IsTrialVersion   bool      `json:"isTrialVersion"`
	RemainingCredits *int      `json:"remainingCredits,omitempty"`
	LastUpdatedAt    time.Time `json:"lastUpdatedAt"`
}

// DefaultSettings returns the record a fresh installation starts with.
func DefaultSettings() StoredSettings {
	credits := DefaultFreeCredits
	return StoredSettings{
		Theme:            ThemeDark,
		AIAPIKey:         "",
		ShowOnboarding:   true,
		IsTrialVersion:   true,
		RemainingCredits: &credits,
		LastUpdatedAt:    time.Now(),
	}
}

// HasCustomAIKey reports whether the user supplied their own API key.
// Whitespace-only values do not count; the stored value is trimmed on
// write but this guards values assembled elsewhere.
func (s StoredSettings) HasCustomAIKey() bool {
	return strings.TrimSpace(s.AIAPIKey) != ""
}

// SettingsPatch is a field-wise partial update. A nil field means "no
// change"; explicit zero values (empty key, zero credits) are applied.
type SettingsPatch struct {
	Theme            *string `json:"theme,omitempty"`
	AIAPIKey         *string `json:"aiApiKey,omitempty"`
	ShowOnboarding   *bool   `json:"showOnboarding,omitempty"`
	IsTrialVersion   *bool   `json:"isTrialVersion,omitempty"`
	RemainingCredits *int    `json:"remainingCredits,omitempty"`
}
