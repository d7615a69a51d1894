package unit_tests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"diotrix/internal/models"
	"diotrix/internal/services"
	"diotrix/internal/tests/mocks"
)

func TestResolveGenerationAuthorization(t *testing.T) {
	tests := []struct {
		name     string
		settings models.StoredSettings
		isPro    bool
		want     services.GenerationAuthorization
	}{
		{
			name:     "pro user generates without consuming anything",
			settings: models.StoredSettings{AIAPIKey: "sk-123", RemainingCredits: intPtr(0)},
			isPro:    true,
			want:     services.GenerationAuthorization{Allowed: true},
		},
		{
			name:     "custom key overrides generation with no credit cost",
			settings: models.StoredSettings{AIAPIKey: "sk-123", RemainingCredits: intPtr(0)},
			want:     services.GenerationAuthorization{Allowed: true, APIKeyOverride: "sk-123"},
		},
		{
			name:     "free user with credits left consumes one",
			settings: models.StoredSettings{RemainingCredits: intPtr(1)},
			want:     services.GenerationAuthorization{Allowed: true, ShouldConsumeCredit: true},
		},
		{
			name:     "free user with no credits is denied",
			settings: models.StoredSettings{RemainingCredits: intPtr(0)},
			want:     services.GenerationAuthorization{Allowed: false},
		},
		{
			name:     "missing credit counter means no free allowance",
			settings: models.StoredSettings{},
			want:     services.GenerationAuthorization{Allowed: false},
		},
		{
			name:     "blank key does not count as a custom key",
			settings: models.StoredSettings{AIAPIKey: "   ", RemainingCredits: intPtr(0)},
			want:     services.GenerationAuthorization{Allowed: false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.ResolveGenerationAuthorization(tt.settings, tt.isPro)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newEntitlementService(repo *mocks.SettingsRepositoryMock, provider *mocks.SubscriptionProviderMock) services.EntitlementService {
	logger := zap.NewNop().Sugar()
	return services.NewEntitlementService(services.NewSettingsService(repo, logger), provider, logger)
}

func TestEntitlementService_IsPro(t *testing.T) {
	t.Run("named entitlement", func(t *testing.T) {
		svc := newEntitlementService(&mocks.SettingsRepositoryMock{}, &mocks.SubscriptionProviderMock{
			ActiveEntitlementsFunc: func(ctx context.Context) ([]string, error) {
				return []string{services.ProEntitlement}, nil
			},
		})
		assert.True(t, svc.IsPro(context.Background()))
	})

	t.Run("any active subscription counts", func(t *testing.T) {
		svc := newEntitlementService(&mocks.SettingsRepositoryMock{}, &mocks.SubscriptionProviderMock{
			ActiveSubscriptionIDsFunc: func(ctx context.Context) ([]string, error) {
				return []string{"diotrix.pro.monthly"}, nil
			},
		})
		assert.True(t, svc.IsPro(context.Background()))
	})

	t.Run("nothing active", func(t *testing.T) {
		svc := newEntitlementService(&mocks.SettingsRepositoryMock{}, &mocks.SubscriptionProviderMock{})
		assert.False(t, svc.IsPro(context.Background()))
	})

	t.Run("provider failure degrades to free tier", func(t *testing.T) {
		svc := newEntitlementService(&mocks.SettingsRepositoryMock{}, &mocks.SubscriptionProviderMock{
			ActiveEntitlementsFunc: func(ctx context.Context) ([]string, error) {
				return nil, errors.New("network down")
			},
		})
		assert.False(t, svc.IsPro(context.Background()))
	})
}

func TestEntitlementService_Authorize_FreeTierConsumesCredit(t *testing.T) {
	svc := newEntitlementService(&mocks.SettingsRepositoryMock{}, &mocks.SubscriptionProviderMock{})

	auth, err := svc.Authorize(context.Background())
	require.NoError(t, err)
	assert.True(t, auth.Allowed, "fresh install starts with free credits")
	assert.True(t, auth.ShouldConsumeCredit)
	assert.Empty(t, auth.APIKeyOverride)
}

func TestEntitlementService_ConsumeCredit_Decrements(t *testing.T) {
	repo := &mocks.SettingsRepositoryMock{}
	logger := zap.NewNop().Sugar()
	settings := services.NewSettingsService(repo, logger)
	svc := services.NewEntitlementService(settings, &mocks.SubscriptionProviderMock{}, logger)

	require.NoError(t, svc.ConsumeCredit(context.Background()))

	stored, err := settings.Refresh(context.Background())
	require.NoError(t, err)
	require.NotNil(t, stored.RemainingCredits)
	assert.Equal(t, models.DefaultFreeCredits-1, *stored.RemainingCredits)
}

func TestEntitlementService_ConsumeCredit_NeverGoesNegative(t *testing.T) {
	repo := &mocks.SettingsRepositoryMock{}
	logger := zap.NewNop().Sugar()
	settings := services.NewSettingsService(repo, logger)
	svc := services.NewEntitlementService(settings, &mocks.SubscriptionProviderMock{}, logger)

	_, err := settings.Update(context.Background(), models.SettingsPatch{RemainingCredits: intPtr(0)})
	require.NoError(t, err)

	require.NoError(t, svc.ConsumeCredit(context.Background()))

	stored, err := settings.Refresh(context.Background())
	require.NoError(t, err)
	require.NotNil(t, stored.RemainingCredits)
	assert.Equal(t, 0, *stored.RemainingCredits)
}

func TestEntitlementService_Purchase_EndsTrial(t *testing.T) {
	repo := &mocks.SettingsRepositoryMock{}
	logger := zap.NewNop().Sugar()
	settings := services.NewSettingsService(repo, logger)
	svc := services.NewEntitlementService(settings, &mocks.SubscriptionProviderMock{}, logger)

	require.NoError(t, svc.Purchase(context.Background(), "diotrix.pro.monthly"))

	stored, err := settings.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, stored.IsTrialVersion)
}

func TestEntitlementService_Purchase_ProviderFailurePropagates(t *testing.T) {
	repo := &mocks.SettingsRepositoryMock{}
	svc := newEntitlementService(repo, &mocks.SubscriptionProviderMock{
		PurchaseFunc: func(ctx context.Context, packageID string) error {
			return errors.New("store rejected the purchase")
		},
	})

	err := svc.Purchase(context.Background(), "diotrix.pro.monthly")
	require.Error(t, err)
	assert.Nil(t, repo.Stored, "settings stay untouched when the purchase fails")
}
