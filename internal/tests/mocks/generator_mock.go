package mocks

import (
	"context"
	"encoding/base64"

	"diotrix/internal/models"
)

type GeneratorMock struct {
	GenerateFunc func(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error)

	LastRequest *models.GenerationRequest
}

func (m *GeneratorMock) Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error) {
	m.LastRequest = &req
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return &models.GenerationResult{
		Assets: []models.GeneratedAsset{{
			Base64Data: base64.StdEncoding.EncodeToString([]byte("fake image bytes")),
			MimeType:   "image/png",
			FileName:   "mock-asset",
		}},
		Metadata: models.ImageMetadata{
			AspectRatio:   req.AspectRatio,
			GuidanceScale: req.GuidanceScale,
			Model:         "imagen-4.0-generate-001",
			Seed:          req.Seed,
		},
	}, nil
}
