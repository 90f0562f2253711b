package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kingko/bd2redeem-bot/internal/common/domain"
	"github.com/kingko/bd2redeem-bot/pkg/errs"
)

type redemptionsRepository struct {
	psql *pgxpool.Pool
}

func NewRedemptionsRepository(pool *pgxpool.Pool) domain.RedemptionsRepository {
	return &redemptionsRepository{
		psql: pool,
	}
}

// InsertRedemption stores one redeemed code for a user. Repeated
// inserts of the same (user_id, code) pair are no-ops, matching the
// idempotent in-memory record path.
func (rr *redemptionsRepository) InsertRedemption(ctx context.Context, redemption *domain.Redemption) error {
	query := `INSERT INTO bd2redeem.redemptions(user_id, code)
		VALUES ($1, $2)
		ON CONFLICT (user_id, code) DO NOTHING`
	if _, err := rr.psql.Exec(ctx, query, redemption.UserID, redemption.Code); err != nil {
		return errs.NewStack(err)
	}

	return nil
}

func (rr *redemptionsRepository) DeleteRedemption(ctx context.Context, userID int64, code string) error {
	query := `DELETE FROM bd2redeem.redemptions WHERE user_id = $1 AND code = $2`
	if _, err := rr.psql.Exec(ctx, query, userID, code); err != nil {
		return errs.NewStack(err)
	}

	return nil
}

func (rr *redemptionsRepository) GetAllRedemptions(ctx context.Context) ([]*domain.Redemption, error) {
	query := `SELECT user_id, code, redeemed_at FROM bd2redeem.redemptions
		ORDER BY user_id, redeemed_at, code`
	rows, err := rr.psql.Query(ctx, query)
	if err != nil {
		return nil, errs.NewStack(err)
	}
	defer rows.Close()

	var redemptions []*domain.Redemption

	for rows.Next() {
		redemption := &Redemption{}
		if err := rows.Scan(
			&redemption.UserID,
			&redemption.Code,
			&redemption.RedeemedAt,
		); err != nil {
			return nil, errs.NewStack(err)
		}

		redemptions = append(redemptions, redemption.CreateDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, errs.NewStack(err)
	}

	return redemptions, nil
}
