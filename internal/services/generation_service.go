package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"diotrix/internal/apperrors"
	"diotrix/internal/imagen"
	"diotrix/internal/models"
	"diotrix/internal/prompt"
)

// GenerateImageInput is what the create screen submits.
type GenerateImageInput struct {
	Prompt           string  `json:"prompt"`
	NegativePrompt   string  `json:"negativePrompt,omitempty"`
	StyleID          string  `json:"styleId,omitempty"`
	AspectRatio      string  `json:"aspectRatio"`
	GuidanceScale    float64 `json:"guidanceScale,omitempty"`
	Seed             *int64  `json:"seed,omitempty"`
	ImageSize        string  `json:"imageSize,omitempty"`
	PersonGeneration string  `json:"personGeneration,omitempty"`
}

// GenerateImageOutcome reports either the saved record or a denial.
// Denial is a normal outcome surfaced as an upgrade prompt, never an
// error.
type GenerateImageOutcome struct {
	Denied bool                   `json:"denied"`
	Reason string                 `json:"reason,omitempty"`
	Record *models.GeneratedImage `json:"record,omitempty"`
}

// GenerationService runs the full flow: compose the prompt, check the
// entitlement, call Imagen, save the result, and charge a credit only
// after success.
type GenerationService interface {
	Startup(ctx context.Context)
	GenerateAndSave(ctx context.Context, input GenerateImageInput) (*GenerateImageOutcome, error)
}

type generationService struct {
	generator    imagen.Generator
	gallery      GalleryService
	entitlements EntitlementService
	keyring      *KeyringService
	logger       *zap.SugaredLogger
	context      context.Context
}

func NewGenerationService(generator imagen.Generator, gallery GalleryService, entitlements EntitlementService, keyring *KeyringService, logger *zap.SugaredLogger) GenerationService {
	return &generationService{
		generator:    generator,
		gallery:      gallery,
		entitlements: entitlements,
		keyring:      keyring,
		logger:       logger,
	}
}

func (s *generationService) Startup(ctx context.Context) {
	s.context = ctx
}

func mimeTypeToExtension(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return "jpeg"
	case "image/webp":
		return "webp"
	default:
		return "png"
	}
}

func (s *generationService) GenerateAndSave(ctx context.Context, input GenerateImageInput) (*GenerateImageOutcome, error) {
	if input.Prompt == "" {
		return nil, apperrors.Validation("describe what you would like to create before generating")
	}

	style := models.StylePresetByID(input.StyleID)
	isPro := s.entitlements.IsPro(ctx)
	if style != nil && style.Premium && !isPro {
		return &GenerateImageOutcome{Denied: true, Reason: fmt.Sprintf("the %s style is part of Diotrix Pro", style.Name)}, nil
	}

	auth, err := s.entitlements.Authorize(ctx)
	if err != nil {
		return nil, err
	}
	if !auth.Allowed {
		return &GenerateImageOutcome{Denied: true, Reason: "no free generations left"}, nil
	}

	// A key stored in the OS keyring counts as the user's own key: the
	// call runs on it and no free credit is charged.
	apiKeyOverride := auth.APIKeyOverride
	if apiKeyOverride == "" && s.keyring != nil {
		if stored, err := s.keyring.GetAIKey(); err == nil && stored != "" {
			apiKeyOverride = stored
			auth.ShouldConsumeCredit = false
		}
	}

	aspectRatio := input.AspectRatio
	if !models.IsValidAspectRatio(aspectRatio) {
		aspectRatio = models.AspectSquare
	}

	extras := []string{fmt.Sprintf("Aspect ratio %s", aspectRatio)}
	if input.GuidanceScale > 0 {
		extras = append(extras, fmt.Sprintf("Guidance scale %.1f", input.GuidanceScale))
	}
	if input.ImageSize != "" {
		extras = append(extras, fmt.Sprintf("Resolution %s", input.ImageSize))
	}
	composed := prompt.Compose(input.Prompt, input.NegativePrompt, style, extras)

	result, err := s.generator.Generate(ctx, models.GenerationRequest{
		Prompt:           composed.Positive,
		NegativePrompt:   composed.Negative,
		AspectRatio:      aspectRatio,
		GuidanceScale:    input.GuidanceScale,
		Seed:             input.Seed,
		NumberOfImages:   1,
		ImageSize:        input.ImageSize,
		PersonGeneration: input.PersonGeneration,
		APIKeyOverride:   apiKeyOverride,
	})
	if err != nil {
		return nil, err
	}
	if len(result.Assets) == 0 {
		return nil, errors.New("generation returned no image data")
	}

	asset := result.Assets[0]
	metadata := result.Metadata
	metadata.Extras = map[string]any{
		"imageSize":        input.ImageSize,
		"personGeneration": input.PersonGeneration,
		"negativePrompt":   composed.Negative,
	}
	if style != nil {
		metadata.Extras["styleId"] = style.ID
		metadata.Extras["styleName"] = style.Name
		metadata.Extras["styleTagline"] = style.Tagline
	}

	record, err := s.gallery.SaveGeneratedImage(ctx, SaveGeneratedImageInput{
		Prompt:     composed.Positive,
		Base64Data: asset.Base64Data,
		Extension:  mimeTypeToExtension(asset.MimeType),
		FileName:   asset.FileName,
		Metadata:   &metadata,
	})
	if err != nil {
		return nil, err
	}

	// Charged only now: a failed generation or save never costs a credit.
	if auth.ShouldConsumeCredit {
		if err := s.entitlements.ConsumeCredit(ctx); err != nil {
			s.logger.Warnw("generation succeeded but credit consumption failed", "error", err)
		}
	}

	return &GenerateImageOutcome{Record: record}, nil
}
