package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratedImage_DecodedMetadata(t *testing.T) {
	seed := int64(42)
	encoded := EncodeMetadata(&ImageMetadata{
		AspectRatio:   AspectWide,
		GuidanceScale: 7.5,
		Model:         "imagen-4.0-generate-001",
		Seed:          &seed,
		Extras:        map[string]any{"styleId": "anime"},
	})
	require.NotEmpty(t, encoded)

	img := GeneratedImage{Metadata: encoded}
	meta := img.DecodedMetadata()
	require.NotNil(t, meta)
	assert.Equal(t, AspectWide, meta.AspectRatio)
	assert.Equal(t, 7.5, meta.GuidanceScale)
	require.NotNil(t, meta.Seed)
	assert.Equal(t, int64(42), *meta.Seed)
	assert.Equal(t, "anime", meta.Extras["styleId"])
}

func TestGeneratedImage_DecodedMetadata_Lenient(t *testing.T) {
	empty := GeneratedImage{}
	assert.Nil(t, empty.DecodedMetadata())

	corrupt := GeneratedImage{Metadata: "{broken"}
	assert.Nil(t, corrupt.DecodedMetadata())
}

func TestGeneratedImage_MarshalCarriesDecodedMetadata(t *testing.T) {
	img := GeneratedImage{
		ID:       1,
		URI:      "/gallery/cat.png",
		Prompt:   "a cat",
		Metadata: EncodeMetadata(&ImageMetadata{AspectRatio: AspectSquare, Model: "imagen-4.0-generate-001"}),
	}
	require.NoError(t, img.AfterFind(nil))
	require.NotNil(t, img.Meta)

	data, err := json.Marshal(img)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"metadata":{`)
	assert.Contains(t, string(data), `"aspectRatio":"1:1"`)

	var round map[string]any
	require.NoError(t, json.Unmarshal(data, &round))
	assert.NotContains(t, round, "Metadata", "the raw column stays internal")
}

func TestGeneratedImage_AfterFind_CorruptColumnYieldsNilMeta(t *testing.T) {
	img := GeneratedImage{Metadata: "{broken"}
	require.NoError(t, img.AfterFind(nil))
	assert.Nil(t, img.Meta)
}

func TestEncodeMetadata_Nil(t *testing.T) {
	assert.Empty(t, EncodeMetadata(nil))
}

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	assert.Equal(t, ThemeDark, settings.Theme)
	assert.Empty(t, settings.AIAPIKey)
	assert.True(t, settings.ShowOnboarding)
	assert.True(t, settings.IsTrialVersion)
	require.NotNil(t, settings.RemainingCredits)
	assert.Equal(t, DefaultFreeCredits, *settings.RemainingCredits)
}

func TestStoredSettings_HasCustomAIKey(t *testing.T) {
	assert.False(t, StoredSettings{}.HasCustomAIKey())
	assert.False(t, StoredSettings{AIAPIKey: "   "}.HasCustomAIKey())
	assert.True(t, StoredSettings{AIAPIKey: "sk-123"}.HasCustomAIKey())
}

func TestStylePresetByID(t *testing.T) {
	preset := StylePresetByID("watercolor")
	require.NotNil(t, preset)
	assert.Equal(t, "Watercolor", preset.Name)
	assert.True(t, preset.Premium)

	assert.Nil(t, StylePresetByID("does-not-exist"))
	assert.Nil(t, StylePresetByID(""))
}

func TestIsValidAspectRatio(t *testing.T) {
	for _, ratio := range AspectRatios {
		assert.True(t, IsValidAspectRatio(ratio), ratio)
	}
	assert.False(t, IsValidAspectRatio("2:1"))
	assert.False(t, IsValidAspectRatio(""))
}
