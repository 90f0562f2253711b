package redeem

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/kingko/bd2redeem-bot/internal/common/domain"
)

type mockBindingsRepo struct {
	insertFn func(ctx context.Context, binding *domain.Binding) error
	deleteFn func(ctx context.Context, userID int64) (bool, error)
	getAllFn func(ctx context.Context) ([]*domain.Binding, error)

	inserts atomic.Int64
	deletes atomic.Int64
}

func (m *mockBindingsRepo) InsertBinding(ctx context.Context, binding *domain.Binding) error {
	m.inserts.Add(1)
	if m.insertFn != nil {
		return m.insertFn(ctx, binding)
	}
	return nil
}

func (m *mockBindingsRepo) DeleteBinding(ctx context.Context, userID int64) (bool, error) {
	m.deletes.Add(1)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID)
	}
	return true, nil
}

func (m *mockBindingsRepo) GetAllBindings(ctx context.Context) ([]*domain.Binding, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return nil, nil
}

type mockRedemptionsRepo struct {
	insertFn func(ctx context.Context, redemption *domain.Redemption) error
	deleteFn func(ctx context.Context, userID int64, code string) error
	getAllFn func(ctx context.Context) ([]*domain.Redemption, error)

	inserts atomic.Int64
	deletes atomic.Int64
}

func (m *mockRedemptionsRepo) InsertRedemption(ctx context.Context, redemption *domain.Redemption) error {
	m.inserts.Add(1)
	if m.insertFn != nil {
		return m.insertFn(ctx, redemption)
	}
	return nil
}

func (m *mockRedemptionsRepo) DeleteRedemption(ctx context.Context, userID int64, code string) error {
	m.deletes.Add(1)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, code)
	}
	return nil
}

func (m *mockRedemptionsRepo) GetAllRedemptions(ctx context.Context) ([]*domain.Redemption, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return nil, nil
}

type fakeCouponClient struct {
	outcome domain.Outcome
	gate    chan struct{}

	calls atomic.Int64
}

func (f *fakeCouponClient) Redeem(ctx context.Context, accountID, code string) domain.Outcome {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	return f.outcome
}

// replySink collects replies delivered from redeemer goroutines.
type replySink struct {
	mu      sync.Mutex
	replies []string
	ch      chan string
}

func newReplySink() *replySink {
	return &replySink{
		ch: make(chan string, 16),
	}
}

func (r *replySink) reply(text string) {
	r.mu.Lock()
	r.replies = append(r.replies, text)
	r.mu.Unlock()

	r.ch <- text
}

func (r *replySink) wait() string {
	return <-r.ch
}

func (r *replySink) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.replies))
	copy(out, r.replies)
	return out
}
