package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"diotrix/internal/apperrors"
)

func newRevenueCatTestProvider(t *testing.T, handler http.HandlerFunc) *revenueCatProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &revenueCatProvider{
		apiKey:    "test-key",
		appUserID: "user-1",
		baseURL:   server.URL,
		client:    server.Client(),
		logger:    zap.NewNop().Sugar(),
	}
}

func TestRevenueCatProvider_ActiveEntitlements(t *testing.T) {
	future := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	past := time.Now().Add(-24 * time.Hour).UTC().Format(time.RFC3339)

	provider := newRevenueCatTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/subscribers/user-1", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"subscriber": {
				"entitlements": {
					"Diotrix Pro": {"expires_date": "` + future + `"},
					"legacy": {"expires_date": "` + past + `"},
					"lifetime": {"expires_date": null}
				},
				"subscriptions": {}
			}
		}`))
	})

	active, err := provider.ActiveEntitlements(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Diotrix Pro", "lifetime"}, active)
}

func TestRevenueCatProvider_ActiveSubscriptionIDs(t *testing.T) {
	past := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)

	provider := newRevenueCatTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"subscriber": {
				"entitlements": {},
				"subscriptions": {
					"diotrix.pro.monthly": {"expires_date": null},
					"diotrix.pro.trial": {"expires_date": "` + past + `"}
				}
			}
		}`))
	})

	active, err := provider.ActiveSubscriptionIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"diotrix.pro.monthly"}, active)
}

func TestRevenueCatProvider_UnauthorizedMapsToInvalidKey(t *testing.T) {
	provider := newRevenueCatTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := provider.ActiveEntitlements(context.Background())
	assert.True(t, apperrors.IsInvalidAPIKey(err))
}

func TestRevenueCatProvider_ServerErrorSurfacesStatus(t *testing.T) {
	provider := newRevenueCatTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})

	_, err := provider.ActiveEntitlements(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestRevenueCatProvider_PurchaseIsStoreOwned(t *testing.T) {
	provider := newRevenueCatTestProvider(t, func(w http.ResponseWriter, r *http.Request) {})

	err := provider.Purchase(context.Background(), "diotrix.pro.monthly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "platform store")
}

func TestRevenueCatProvider_Restore(t *testing.T) {
	provider := newRevenueCatTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"subscriber": {"entitlements": {}, "subscriptions": {}}}`))
	})

	assert.NoError(t, provider.Restore(context.Background()))
}
