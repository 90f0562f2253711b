package redeem

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/kingko/bd2redeem-bot/internal/boterrs"
	"github.com/kingko/bd2redeem-bot/internal/common/domain"
	"github.com/kingko/bd2redeem-bot/pkg/keylock"
)

const minAccountIDLen = 2

// Bindings keeps the authoritative user -> account map in memory and
// writes through to the repository before reporting success, so a
// restart replays the same state via Load. Bind and Unbind for one
// user serialize on a keyed lock; the inner RWMutex only guards map
// access and is never held across a repository call.
type Bindings struct {
	locks *keylock.KeyedMutex

	mu sync.RWMutex
	m  map[int64]string

	repo    domain.BindingsRepository
	pattern *regexp.Regexp
}

// NewBindings builds the store. pattern optionally restricts account
// ids beyond the fixed rules; empty disables the extra check.
func NewBindings(repo domain.BindingsRepository, pattern string) (*Bindings, error) {
	b := &Bindings{
		locks: keylock.New(),
		m:     make(map[int64]string),
		repo:  repo,
	}

	if pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile account id pattern: %w", err)
		}

		b.pattern = re
	}

	return b, nil
}

// Load replaces the in-memory map with the repository contents.
// Called once at startup before the bot accepts messages.
func (b *Bindings) Load(ctx context.Context) error {
	bindings, err := b.repo.GetAllBindings(ctx)
	if err != nil {
		return err
	}

	m := make(map[int64]string, len(bindings))
	for _, binding := range bindings {
		m[binding.UserID] = binding.AccountID
	}

	b.mu.Lock()
	b.m = m
	b.mu.Unlock()

	return nil
}

func (b *Bindings) Get(userID int64) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	accountID, ok := b.m[userID]

	return accountID, ok
}

func (b *Bindings) Bind(ctx context.Context, userID int64, accountID string) error {
	if err := b.validateAccountID(accountID); err != nil {
		return err
	}

	b.locks.Lock(userID)
	defer b.locks.Unlock(userID)

	if _, ok := b.Get(userID); ok {
		return boterrs.ErrAlreadyBound
	}

	if err := b.repo.InsertBinding(ctx, &domain.Binding{
		UserID:    userID,
		AccountID: accountID,
	}); err != nil {
		return err
	}

	b.mu.Lock()
	b.m[userID] = accountID
	b.mu.Unlock()

	return nil
}

func (b *Bindings) Unbind(ctx context.Context, userID int64) (bool, error) {
	b.locks.Lock(userID)
	defer b.locks.Unlock(userID)

	if _, ok := b.Get(userID); !ok {
		return false, nil
	}

	if _, err := b.repo.DeleteBinding(ctx, userID); err != nil {
		return false, err
	}

	b.mu.Lock()
	delete(b.m, userID)
	b.mu.Unlock()

	return true, nil
}

// List returns all bindings sorted by user id, so the admin listing is
// deterministic for a given state.
func (b *Bindings) List() []*domain.Binding {
	b.mu.RLock()

	bindings := make([]*domain.Binding, 0, len(b.m))
	for userID, accountID := range b.m {
		bindings = append(bindings, &domain.Binding{
			UserID:    userID,
			AccountID: accountID,
		})
	}

	b.mu.RUnlock()

	sort.Slice(bindings, func(i, j int) bool {
		return bindings[i].UserID < bindings[j].UserID
	})

	return bindings
}

func (b *Bindings) validateAccountID(accountID string) error {
	if utf8.RuneCountInString(accountID) < minAccountIDLen {
		return boterrs.ErrInvalidAccountID
	}

	if strings.ContainsFunc(accountID, unicode.IsSpace) {
		return boterrs.ErrInvalidAccountID
	}

	if b.pattern != nil && !b.pattern.MatchString(accountID) {
		return boterrs.ErrInvalidAccountID
	}

	return nil
}
