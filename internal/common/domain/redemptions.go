package domain

import (
	"context"
	"time"
)

// HistoryCap is the number of most recent successfully redeemed codes
// kept per user. Older entries are evicted first.
const HistoryCap = 5

type RedemptionsRepository interface {
	InsertRedemption(ctx context.Context, redemption *Redemption) error
	DeleteRedemption(ctx context.Context, userID int64, code string) error
	GetAllRedemptions(ctx context.Context) ([]*Redemption, error)
}

// Redemption is one successfully redeemed code for one user.
type Redemption struct {
	UserID int64  `json:"user_id"`
	Code   string `json:"code"`

	RedeemedAt time.Time `json:"redeemed_at"`
}
