package mocks

import (
	"context"
)

// FakeTxManager runs the transactional function directly against the given
// context. Rollback-on-error semantics reduce to error propagation, which is
// what use case tests assert on.
type FakeTxManager struct {
	// BeginErr, when set, is returned before the function runs.
	BeginErr error
}

// WithTx executes fn with the caller's context.
func (f *FakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.BeginErr != nil {
		return f.BeginErr
	}
	return fn(ctx)
}
