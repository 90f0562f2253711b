package postgres

import (
	"time"

	"github.com/kingko/bd2redeem-bot/internal/common/domain"
)

type Binding struct {
	UserID    int64  `db:"user_id"`
	AccountID string `db:"account_id"`

	CreatedAt time.Time `db:"created_at"`
}

func (b *Binding) CreateDomain() *domain.Binding {
	return &domain.Binding{
		UserID:    b.UserID,
		AccountID: b.AccountID,
		CreatedAt: b.CreatedAt,
	}
}

type Redemption struct {
	UserID int64  `db:"user_id"`
	Code   string `db:"code"`

	RedeemedAt time.Time `db:"redeemed_at"`
}

func (r *Redemption) CreateDomain() *domain.Redemption {
	return &domain.Redemption{
		UserID:     r.UserID,
		Code:       r.Code,
		RedeemedAt: r.RedeemedAt,
	}
}
