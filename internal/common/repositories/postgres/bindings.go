package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kingko/bd2redeem-bot/internal/common/domain"
	"github.com/kingko/bd2redeem-bot/pkg/errs"
)

type bindingsRepository struct {
	psql *pgxpool.Pool
}

func NewBindingsRepository(pool *pgxpool.Pool) domain.BindingsRepository {
	return &bindingsRepository{
		psql: pool,
	}
}

func (br *bindingsRepository) InsertBinding(ctx context.Context, binding *domain.Binding) error {
	query := `INSERT INTO bd2redeem.bindings(user_id, account_id) VALUES ($1, $2)`
	if _, err := br.psql.Exec(ctx, query, binding.UserID, binding.AccountID); err != nil {
		return errs.NewStack(err)
	}

	return nil
}

func (br *bindingsRepository) DeleteBinding(ctx context.Context, userID int64) (bool, error) {
	query := `DELETE FROM bd2redeem.bindings WHERE user_id = $1`
	tag, err := br.psql.Exec(ctx, query, userID)
	if err != nil {
		return false, errs.NewStack(err)
	}

	return tag.RowsAffected() > 0, nil
}

func (br *bindingsRepository) GetAllBindings(ctx context.Context) ([]*domain.Binding, error) {
	query := `SELECT user_id, account_id, created_at FROM bd2redeem.bindings ORDER BY user_id`
	rows, err := br.psql.Query(ctx, query)
	if err != nil {
		return nil, errs.NewStack(err)
	}
	defer rows.Close()

	var bindings []*domain.Binding

	for rows.Next() {
		binding := &Binding{}
		if err := rows.Scan(
			&binding.UserID,
			&binding.AccountID,
			&binding.CreatedAt,
		); err != nil {
			return nil, errs.NewStack(err)
		}

		bindings = append(bindings, binding.CreateDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, errs.NewStack(err)
	}

	return bindings, nil
}
