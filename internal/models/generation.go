package models

// Aspect ratios accepted by the Imagen endpoint.
const (
	AspectSquare    = "1:1"
	AspectPortrait  = "3:4"
	AspectLandscape = "4:3"
	AspectWide      = "16:9"
	AspectTall      = "9:16"
)

// AspectRatios lists every ratio the generation call accepts.
var AspectRatios = []string{AspectSquare, AspectPortrait, AspectLandscape, AspectWide, AspectTall}

// IsValidAspectRatio reports whether ratio is one of the fixed enumeration.
func IsValidAspectRatio(ratio string) bool {
	for _, r := range AspectRatios {
		if r == ratio {
			return true
		}
	}
	return false
}

// Person-generation policies supported by the endpoint.
const (
	PersonGenerationDontAllow  = "dont_allow"
	PersonGenerationAllowAdult = "allow_adult"
)

// GenerationRequest is the contract of the external image-generation call.
type GenerationRequest struct {
	Prompt           string  `json:"prompt"`
	NegativePrompt   string  `json:"negativePrompt,omitempty"`
	AspectRatio      string  `json:"aspectRatio"`
	GuidanceScale    float64 `json:"guidanceScale,omitempty"`
	Seed             *int64  `json:"seed,omitempty"`
	NumberOfImages   int     `json:"numberOfImages"`
	ImageSize        string  `json:"imageSize,omitempty"` // "1K" | "2K"
	PersonGeneration string  `json:"personGeneration,omitempty"`
	APIKeyOverride   string  `json:"-"`
}

// GeneratedAsset is one binary payload returned by the generation call.
type GeneratedAsset struct {
	Base64Data string `json:"base64Data"`
	MimeType   string `json:"mimeType"`
	FileName   string `json:"fileName,omitempty"`
	Seed       *int64 `json:"seed,omitempty"`
}

// GenerationResult bundles the returned assets with the echoed parameters.
type GenerationResult struct {
	Assets   []GeneratedAsset `json:"assets"`
	Metadata ImageMetadata    `json:"metadata"`
}
