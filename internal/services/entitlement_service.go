package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"diotrix/internal/models"
)

// GenerationAuthorization is the outcome of the per-attempt entitlement
// check. Denial is a normal outcome, not an error.
type GenerationAuthorization struct {
	Allowed             bool   `json:"allowed"`
	APIKeyOverride      string `json:"apiKeyOverride,omitempty"`
	ShouldConsumeCredit bool   `json:"shouldConsumeCredit"`
}

// ResolveGenerationAuthorization decides which of three paths applies:
// a paid entitlement grants unlimited use, a user-supplied API key
// grants unlimited use via that key, and otherwise one free credit is
// consumed while any remain. Pure function of its inputs.
func ResolveGenerationAuthorization(settings models.StoredSettings, isPro bool) GenerationAuthorization {
	if isPro {
		return GenerationAuthorization{Allowed: true}
	}
	if settings.HasCustomAIKey() {
		return GenerationAuthorization{Allowed: true, APIKeyOverride: strings.TrimSpace(settings.AIAPIKey)}
	}
	if settings.RemainingCredits != nil && *settings.RemainingCredits > 0 {
		return GenerationAuthorization{Allowed: true, ShouldConsumeCredit: true}
	}
	return GenerationAuthorization{Allowed: false}
}

// EntitlementService derives "may this user generate" from settings and
// the external subscription provider. Nothing here is persisted; pro
// state is recomputed on every query.
type EntitlementService interface {
	Startup(ctx context.Context)
	IsPro(ctx context.Context) bool
	Authorize(ctx context.Context) (GenerationAuthorization, error)
	ConsumeCredit(ctx context.Context) error
	Purchase(ctx context.Context, packageID string) error
	Restore(ctx context.Context) error
}

type entitlementService struct {
	settings SettingsService
	provider SubscriptionProvider
	logger   *zap.SugaredLogger
	context  context.Context
}

func NewEntitlementService(settings SettingsService, provider SubscriptionProvider, logger *zap.SugaredLogger) EntitlementService {
	return &entitlementService{settings: settings, provider: provider, logger: logger}
}

func (s *entitlementService) Startup(ctx context.Context) {
	s.context = ctx
}

// IsPro treats the named pro entitlement, or any active entitlement or
// subscription at all, as the paid tier. Provider failures degrade to
// the free tier rather than blocking the user.
func (s *entitlementService) IsPro(ctx context.Context) bool {
	entitlements, err := s.provider.ActiveEntitlements(ctx)
	if err != nil {
		s.logger.Warnw("failed to read entitlements, assuming free tier", "error", err)
		return false
	}
	for _, e := range entitlements {
		if e == ProEntitlement {
			return true
		}
	}
	if len(entitlements) > 0 {
		return true
	}

	subs, err := s.provider.ActiveSubscriptionIDs(ctx)
	if err != nil {
		s.logger.Warnw("failed to read subscriptions, assuming free tier", "error", err)
		return false
	}
	return len(subs) > 0
}

func (s *entitlementService) Authorize(ctx context.Context) (GenerationAuthorization, error) {
	settings, err := s.settings.Refresh(ctx)
	if err != nil {
		return GenerationAuthorization{}, err
	}
	return ResolveGenerationAuthorization(settings, s.IsPro(ctx)), nil
}

// ConsumeCredit decrements the free allowance. Called only after a
// successful generation; a failed generation never costs a credit.
func (s *entitlementService) ConsumeCredit(ctx context.Context) error {
	settings, err := s.settings.Refresh(ctx)
	if err != nil {
		return err
	}
	if settings.RemainingCredits == nil || *settings.RemainingCredits <= 0 {
		return nil
	}
	remaining := *settings.RemainingCredits - 1
	_, err = s.settings.Update(ctx, models.SettingsPatch{RemainingCredits: &remaining})
	return err
}

func (s *entitlementService) Purchase(ctx context.Context, packageID string) error {
	if err := s.provider.Purchase(ctx, packageID); err != nil {
		return err
	}
	// A verified paid entitlement ends the trial for good.
	trial := false
	if _, err := s.settings.Update(ctx, models.SettingsPatch{IsTrialVersion: &trial}); err != nil {
		s.logger.Warnw("purchase succeeded but trial flag update failed", "error", err)
	}
	return nil
}

func (s *entitlementService) Restore(ctx context.Context) error {
	return s.provider.Restore(ctx)
}
