// Package imagen wraps the Google GenAI Imagen endpoint behind the
// request/response contract the rest of the app speaks.
package imagen

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"diotrix/internal/apperrors"
	"diotrix/internal/models"
)

// ModelName is the Imagen model every generation call targets.
const ModelName = "imagen-4.0-generate-001"

// Generator is the external image-generation collaborator. A nil error
// guarantees at least one asset in the result.
type Generator interface {
	Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error)
}

// Client calls the Imagen API. A fresh genai client is built per call
// because the effective API key can change between calls (user override
// versus the bundled key).
type Client struct {
	defaultAPIKey string
	logger        *zap.SugaredLogger
}

func NewClient(defaultAPIKey string, logger *zap.SugaredLogger) *Client {
	return &Client{defaultAPIKey: defaultAPIKey, logger: logger}
}

func (c *Client) resolveAPIKey(override string) (string, error) {
	if trimmed := strings.TrimSpace(override); trimmed != "" {
		return trimmed, nil
	}
	if c.defaultAPIKey != "" {
		return c.defaultAPIKey, nil
	}
	return "", errors.New("missing Google Imagen API key: set GOOGLE_AI_API_KEY or supply a key in settings")
}

func personGenerationValue(policy string) genai.PersonGeneration {
	switch policy {
	case models.PersonGenerationDontAllow:
		return genai.PersonGenerationDontAllow
	case models.PersonGenerationAllowAdult:
		return genai.PersonGenerationAllowAdult
	default:
		return genai.PersonGenerationAllowAdult
	}
}

var invalidKeyMessageRe = regexp.MustCompile(`(?i)api key`)
var invalidKeyReasonRe = regexp.MustCompile(`(?i)invalid|unauthorized|missing|expired|permission`)

// isInvalidAPIKeyErr recognizes the distinguished "bad key" failure so
// the UI can route to key management instead of a generic retry prompt.
func isInvalidAPIKeyErr(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 401 || apiErr.Code == 403 {
			return true
		}
	}
	msg := err.Error()
	return invalidKeyMessageRe.MatchString(msg) && invalidKeyReasonRe.MatchString(msg)
}

func (c *Client) Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, apperrors.Validation("prompt cannot be empty when generating an image")
	}

	apiKey, err := c.resolveAPIKey(req.APIKeyOverride)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	number := req.NumberOfImages
	if number < 1 {
		number = 1
	}
	if number > 4 {
		number = 4
	}

	aspectRatio := req.AspectRatio
	if !models.IsValidAspectRatio(aspectRatio) {
		aspectRatio = models.AspectSquare
	}

	// The resolution tier rides along in the prompt and metadata; the
	// config struct has no field for it.
	cfg := &genai.GenerateImagesConfig{
		NumberOfImages:   int32(number),
		AspectRatio:      aspectRatio,
		NegativePrompt:   req.NegativePrompt,
		OutputMIMEType:   "image/png",
		PersonGeneration: personGenerationValue(req.PersonGeneration),
	}
	if req.GuidanceScale > 0 {
		scale := float32(req.GuidanceScale)
		cfg.GuidanceScale = &scale
	}
	if req.Seed != nil {
		seed := int32(*req.Seed)
		cfg.Seed = &seed
	}

	resp, err := client.Models.GenerateImages(ctx, ModelName, req.Prompt, cfg)
	if err != nil {
		if isInvalidAPIKeyErr(err) {
			c.logger.Warnw("generation rejected for a bad API key", "override", req.APIKeyOverride != "")
			return nil, apperrors.InvalidAPIKey()
		}
		return nil, fmt.Errorf("generate image: %w", err)
	}

	var assets []models.GeneratedAsset
	for i, generated := range resp.GeneratedImages {
		if generated == nil || generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
			continue
		}
		mimeType := generated.Image.MIMEType
		if mimeType == "" {
			mimeType = "image/png"
		}
		assets = append(assets, models.GeneratedAsset{
			Base64Data: base64.StdEncoding.EncodeToString(generated.Image.ImageBytes),
			MimeType:   mimeType,
			FileName:   fmt.Sprintf("diotrix-%d-%d", time.Now().UnixMilli(), i),
			Seed:       req.Seed,
		})
	}
	if len(assets) == 0 {
		return nil, errors.New("Imagen API returned an empty response, try adjusting the prompt or parameters")
	}

	return &models.GenerationResult{
		Assets: assets,
		Metadata: models.ImageMetadata{
			AspectRatio:   aspectRatio,
			GuidanceScale: req.GuidanceScale,
			Model:         ModelName,
			Seed:          req.Seed,
		},
	}, nil
}
