package models

// StylePreset is a named visual style merged into the prompt. Premium
// styles are gated behind the paid tier.
type StylePreset struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Tagline string `json:"tagline"`
	Premium bool   `json:"premium"`
}

// StylePresets is the fixed catalogue offered by the create screen.
var StylePresets = []StylePreset{
	{ID: "photo", Name: "Photorealistic", Tagline: "crisp natural light"},
	{ID: "digital", Name: "Digital Art", Tagline: "vivid rendered detail"},
	{ID: "anime", Name: "Anime", Tagline: "soft shading"},
	{ID: "watercolor", Name: "Watercolor", Tagline: "loose washes of pigment", Premium: true},
	{ID: "neon", Name: "Neon Noir", Tagline: "moody cyberpunk glow", Premium: true},
	{ID: "sketch", Name: "Pencil Sketch", Tagline: "rough graphite strokes", Premium: true},
}

// StylePresetByID returns the preset with the given id, or nil.
func StylePresetByID(id string) *StylePreset {
	for i := range StylePresets {
		if StylePresets[i].ID == id {
			return &StylePresets[i]
		}
	}
	return nil
}
