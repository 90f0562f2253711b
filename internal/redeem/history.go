package redeem

import (
	"context"
	"sync"

	"github.com/kingko/bd2redeem-bot/internal/common/domain"
	"github.com/kingko/bd2redeem-bot/pkg/keylock"
	"github.com/kingko/bd2redeem-bot/pkg/log"
	"go.uber.org/zap"
)

// History tracks the last domain.HistoryCap successfully redeemed
// codes per user, oldest first. Recording is idempotent and evicts the
// oldest entry past the cap. The check-then-record span for one user
// serializes on a keyed lock so double-submitted commands cannot both
// pass the duplicate gate.
type History struct {
	locks *keylock.KeyedMutex

	mu sync.RWMutex
	m  map[int64][]string

	repo domain.RedemptionsRepository
}

func NewHistory(repo domain.RedemptionsRepository) *History {
	return &History{
		locks: keylock.New(),
		m:     make(map[int64][]string),
		repo:  repo,
	}
}

// Load replaces the in-memory history with the repository contents,
// which GetAllRedemptions returns oldest first per user. Entries past
// the cap (possible after a failed eviction delete) are dropped here.
func (h *History) Load(ctx context.Context) error {
	redemptions, err := h.repo.GetAllRedemptions(ctx)
	if err != nil {
		return err
	}

	m := make(map[int64][]string)
	for _, redemption := range redemptions {
		m[redemption.UserID] = append(m[redemption.UserID], redemption.Code)
	}

	for userID, codes := range m {
		if len(codes) > domain.HistoryCap {
			m[userID] = codes[len(codes)-domain.HistoryCap:]
		}
	}

	h.mu.Lock()
	h.m = m
	h.mu.Unlock()

	return nil
}

func (h *History) HasRedeemed(userID int64, code string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.m[userID] {
		if c == code {
			return true
		}
	}

	return false
}

// Record appends code to the user's history. A code already present is
// a no-op. The repository insert happens before the map update, so a
// recorded redemption is always durable.
func (h *History) Record(ctx context.Context, userID int64, code string) error {
	h.locks.Lock(userID)
	defer h.locks.Unlock(userID)

	if h.HasRedeemed(userID, code) {
		return nil
	}

	if err := h.repo.InsertRedemption(ctx, &domain.Redemption{
		UserID: userID,
		Code:   code,
	}); err != nil {
		return err
	}

	h.mu.Lock()
	codes := append(h.m[userID], code)

	var evicted string
	var hasEvicted bool
	if len(codes) > domain.HistoryCap {
		evicted = codes[0]
		hasEvicted = true
		codes = codes[1:]
	}

	h.m[userID] = codes
	h.mu.Unlock()

	if hasEvicted {
		// The in-memory view is already trimmed; a failed delete only
		// leaves an extra row that Load drops on the next start.
		if err := h.repo.DeleteRedemption(ctx, userID, evicted); err != nil {
			log.Warn("failed to delete evicted redemption",
				zap.Int64("user_id", userID),
				zap.String("code", evicted),
				zap.Error(err),
			)
		}
	}

	return nil
}

// RecentFor returns the user's history oldest first, most recent last.
func (h *History) RecentFor(userID int64) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	codes := h.m[userID]
	if len(codes) == 0 {
		return nil
	}

	out := make([]string, len(codes))
	copy(out, codes)

	return out
}
