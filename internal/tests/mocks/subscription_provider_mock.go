package mocks

import "context"

type SubscriptionProviderMock struct {
	ActiveEntitlementsFunc    func(ctx context.Context) ([]string, error)
	ActiveSubscriptionIDsFunc func(ctx context.Context) ([]string, error)
	PurchaseFunc              func(ctx context.Context, packageID string) error
	RestoreFunc               func(ctx context.Context) error
}

func (m *SubscriptionProviderMock) ActiveEntitlements(ctx context.Context) ([]string, error) {
	if m.ActiveEntitlementsFunc != nil {
		return m.ActiveEntitlementsFunc(ctx)
	}
	return nil, nil
}

func (m *SubscriptionProviderMock) ActiveSubscriptionIDs(ctx context.Context) ([]string, error) {
	if m.ActiveSubscriptionIDsFunc != nil {
		return m.ActiveSubscriptionIDsFunc(ctx)
	}
	return nil, nil
}

func (m *SubscriptionProviderMock) Purchase(ctx context.Context, packageID string) error {
	if m.PurchaseFunc != nil {
		return m.PurchaseFunc(ctx, packageID)
	}
	return nil
}

func (m *SubscriptionProviderMock) Restore(ctx context.Context) error {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx)
	}
	return nil
}
