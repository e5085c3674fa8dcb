package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/openshelf/catalog/internal/catalog/domain"
)

type revokedTokensRepo struct {
	db *sql.DB
}

func (r *revokedTokensRepo) CreateRevokedToken(ctx context.Context, t domain.RevokedToken) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO revoked_tokens (token, expires_at, created_at) VALUES (?, ?, ?)`,
		t.Token, t.ExpiresAt, t.CreatedAt)
	return mapConflict(err)
}

func (r *revokedTokensRepo) IsTokenRevoked(ctx context.Context, token string, since time.Time) (bool, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM revoked_tokens WHERE token = ? AND created_at >= ?`,
		token, since).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *revokedTokensRepo) DeleteExpiredRevokedTokens(
	ctx context.Context,
	createdBefore, expiresBefore time.Time,
) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM revoked_tokens WHERE created_at < ? OR expires_at < ?`,
		createdBefore, expiresBefore)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *revokedTokensRepo) CountRevokedTokens(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM revoked_tokens`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
