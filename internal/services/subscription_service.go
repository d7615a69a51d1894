package services

import (
	"context"
	"sync"
)

// ProEntitlement is the named capability that unlocks the paid tier.
const ProEntitlement = "Diotrix Pro"

// SubscriptionProvider is the external purchase-management capability.
// The core only derives entitlement state from it; purchase mechanics
// stay behind this boundary.
type SubscriptionProvider interface {
	ActiveEntitlements(ctx context.Context) ([]string, error)
	ActiveSubscriptionIDs(ctx context.Context) ([]string, error)
	Purchase(ctx context.Context, packageID string) error
	Restore(ctx context.Context) error
}

// memorySubscriptionProvider backs keyless runs and tests. Purchase
// grants the pro entitlement immediately.
type memorySubscriptionProvider struct {
	mu            sync.Mutex
	entitlements  []string
	subscriptions []string
}

// NewMemorySubscriptionProvider returns a provider with no active
// entitlements until Purchase is called.
func NewMemorySubscriptionProvider() SubscriptionProvider {
	return &memorySubscriptionProvider{}
}

func (p *memorySubscriptionProvider) ActiveEntitlements(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.entitlements...), nil
}

func (p *memorySubscriptionProvider) ActiveSubscriptionIDs(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.subscriptions...), nil
}

func (p *memorySubscriptionProvider) Purchase(ctx context.Context, packageID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entitlements = append(p.entitlements, ProEntitlement)
	p.subscriptions = append(p.subscriptions, packageID)
	return nil
}

func (p *memorySubscriptionProvider) Restore(ctx context.Context) error {
	return nil
}
