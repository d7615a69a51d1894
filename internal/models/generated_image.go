package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// GeneratedImage is one row per generated artwork in the gallery table.
// The metadata column holds serialized JSON; decoding is lenient so one
// corrupt row never blocks the rest of the gallery. Meta is the decoded
// projection the frontend reads; the raw column never leaves the process.
type GeneratedImage struct {
	ID        int64          `gorm:"primaryKey" json:"id"`
	URI       string         `gorm:"not null" json:"uri"`
	Prompt    string         `gorm:"type:text;not null" json:"prompt"`
	Metadata  string         `gorm:"type:text" json:"-"`
	Meta      *ImageMetadata `gorm:"-" json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (GeneratedImage) TableName() string {
	return "generated_images"
}

// AfterFind decodes the metadata column so every loaded record carries
// its generation parameters. A corrupt column degrades to a nil Meta.
func (g *GeneratedImage) AfterFind(tx *gorm.DB) error {
	g.Meta = g.DecodedMetadata()
	return nil
}

// ImageMetadata carries the generation parameters recorded alongside an
// image. Extras is an open map for style info, resolution tier, person
// generation policy and the negative prompt.
type ImageMetadata struct {
	AspectRatio   string         `json:"aspectRatio,omitempty"`
	GuidanceScale float64        `json:"guidanceScale,omitempty"`
	Model         string         `json:"model,omitempty"`
	Seed          *int64         `json:"seed,omitempty"`
	Extras        map[string]any `json:"extras,omitempty"`
}

// DecodedMetadata parses the stored metadata column. Malformed JSON
// degrades to nil rather than returning an error.
func (g *GeneratedImage) DecodedMetadata() *ImageMetadata {
	if g.Metadata == "" {
		return nil
	}
	var meta ImageMetadata
	if err := json.Unmarshal([]byte(g.Metadata), &meta); err != nil {
		return nil
	}
	return &meta
}

// EncodeMetadata serializes metadata for storage. A nil metadata or a
// serialization failure both map to the empty column value.
func EncodeMetadata(meta *ImageMetadata) string {
	if meta == nil {
		return ""
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return ""
	}
	return string(data)
}
