package mocks

import "context"

// MockTxRunner runs the function directly unless a WithinTxFunc is set.
type MockTxRunner struct {
	WithinTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *MockTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.WithinTxFunc != nil {
		return m.WithinTxFunc(ctx, fn)
	}

	return fn(ctx)
}
