package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"diotrix/internal/apperrors"
)

const revenueCatBaseURL = "https://api.revenuecat.com/v1"

// revenueCatProvider reads subscriber state from the RevenueCat REST
// API. Purchases themselves happen through the platform store; Restore
// re-reads the subscriber so restored purchases become visible.
type revenueCatProvider struct {
	apiKey    string
	appUserID string
	baseURL   string
	client    *http.Client
	logger    *zap.SugaredLogger
}

// NewRevenueCatProvider returns a SubscriptionProvider backed by the
// RevenueCat subscriber endpoint.
func NewRevenueCatProvider(apiKey, appUserID string, logger *zap.SugaredLogger) SubscriptionProvider {
	return &revenueCatProvider{
		apiKey:    apiKey,
		appUserID: appUserID,
		baseURL:   revenueCatBaseURL,
		client:    &http.Client{Timeout: 15 * time.Second},
		logger:    logger,
	}
}

type rcEntitlement struct {
	ExpiresDate *time.Time `json:"expires_date"`
}

type rcSubscription struct {
	ExpiresDate *time.Time `json:"expires_date"`
}

type rcSubscriberResponse struct {
	Subscriber struct {
		Entitlements  map[string]rcEntitlement  `json:"entitlements"`
		Subscriptions map[string]rcSubscription `json:"subscriptions"`
	} `json:"subscriber"`
}

func (p *revenueCatProvider) fetchSubscriber(ctx context.Context) (*rcSubscriberResponse, error) {
	endpoint := fmt.Sprintf("%s/subscribers/%s", p.baseURL, url.PathEscape(p.appUserID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch subscriber: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, apperrors.InvalidAPIKey()
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch subscriber: unexpected status %d: %s", resp.StatusCode, body)
	}

	var parsed rcSubscriberResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode subscriber response: %w", err)
	}
	return &parsed, nil
}

func activeAt(expires *time.Time) bool {
	return expires == nil || expires.After(time.Now())
}

func (p *revenueCatProvider) ActiveEntitlements(ctx context.Context) ([]string, error) {
	sub, err := p.fetchSubscriber(ctx)
	if err != nil {
		return nil, err
	}
	var active []string
	for name, ent := range sub.Subscriber.Entitlements {
		if activeAt(ent.ExpiresDate) {
			active = append(active, name)
		}
	}
	return active, nil
}

func (p *revenueCatProvider) ActiveSubscriptionIDs(ctx context.Context) ([]string, error) {
	sub, err := p.fetchSubscriber(ctx)
	if err != nil {
		return nil, err
	}
	var active []string
	for id, s := range sub.Subscriber.Subscriptions {
		if activeAt(s.ExpiresDate) {
			active = append(active, id)
		}
	}
	return active, nil
}

// Purchase cannot be completed over REST; the platform store owns the
// payment flow.
func (p *revenueCatProvider) Purchase(ctx context.Context, packageID string) error {
	return fmt.Errorf("package %q must be purchased through the platform store", packageID)
}

// Restore re-reads the subscriber; RevenueCat reconciles restored store
// purchases server-side.
func (p *revenueCatProvider) Restore(ctx context.Context) error {
	if _, err := p.fetchSubscriber(ctx); err != nil {
		return fmt.Errorf("restore purchases: %w", err)
	}
	p.logger.Infow("subscriber state restored", "appUserID", p.appUserID)
	return nil
}
