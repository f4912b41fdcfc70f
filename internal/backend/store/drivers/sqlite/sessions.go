package sqlite

import (
	"context"
	"database/sql"

	"github.com/soloday/soloday/internal/backend/domain"
)

type authSessionsRepo struct {
	db dbtx
}

func (r *authSessionsRepo) CreateAuthSession(ctx context.Context, s domain.AuthSession) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO auth_sessions (id, identity_id, token_hash, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.IdentityID, s.TokenHash, s.ExpiresAt, s.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *authSessionsRepo) GetAuthSessionByTokenHash(ctx context.Context, hash string) (domain.AuthSession, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, identity_id, token_hash, expires_at, revoked_at, created_at
		FROM auth_sessions WHERE token_hash = ?`,
		hash,
	)

	var s domain.AuthSession
	var revokedAt sql.NullTime
	err := row.Scan(&s.ID, &s.IdentityID, &s.TokenHash, &s.ExpiresAt, &revokedAt, &s.CreatedAt)
	if err != nil {
		return domain.AuthSession{}, mapNotFound(err)
	}
	s.RevokedAt = mapNullTimePtr(revokedAt)
	return s, nil
}

func (r *authSessionsRepo) RevokeAuthSession(ctx context.Context, hash string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE auth_sessions SET revoked_at = CURRENT_TIMESTAMP
		WHERE token_hash = ? AND revoked_at IS NULL`,
		hash,
	)
	return err
}

func (r *authSessionsRepo) DeleteExpiredAuthSessions(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM auth_sessions
		WHERE expires_at <= CURRENT_TIMESTAMP OR revoked_at IS NOT NULL`)
	return err
}
