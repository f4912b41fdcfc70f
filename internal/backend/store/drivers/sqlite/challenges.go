package sqlite

import (
	"context"
	"database/sql"

	"github.com/soloday/soloday/internal/backend/domain"
)

type challengesRepo struct {
	db dbtx
}

func (r *challengesRepo) CreateChallenge(ctx context.Context, c domain.Challenge) error {
	var first, last, username, dob sql.NullString
	if c.Pending != nil {
		first = mapOptionalString(c.Pending.FirstName)
		last = mapOptionalString(c.Pending.LastName)
		username = mapOptionalString(c.Pending.Username)
		dob = mapOptionalString(c.Pending.DateOfBirth)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO challenges (id, target, code_hash, attempts, first_name, last_name, username, date_of_birth, expires_at, created_at)
		VALUES (?, ?, ?, 0, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Target, c.CodeHash, first, last, username, dob, c.ExpiresAt, c.CreatedAt,
	)
	return err
}

func (r *challengesRepo) GetActiveChallengeByTarget(ctx context.Context, target string) (domain.Challenge, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, target, code_hash, attempts, first_name, last_name, username, date_of_birth, expires_at, verified_at, created_at
		FROM challenges
		WHERE target = ? AND verified_at IS NULL AND expires_at > CURRENT_TIMESTAMP
		ORDER BY created_at DESC
		LIMIT 1`,
		target,
	)
	return scanChallenge(row)
}

func (r *challengesRepo) IncrementChallengeAttempts(ctx context.Context, id string) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE challenges SET attempts = attempts + 1 WHERE id = ?
		RETURNING attempts`,
		id,
	)

	var attempts int
	if err := row.Scan(&attempts); err != nil {
		return 0, mapNotFound(err)
	}
	return attempts, nil
}

func (r *challengesRepo) MarkChallengeVerified(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE challenges SET verified_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	return err
}

func (r *challengesRepo) DeleteChallengesForTarget(ctx context.Context, target string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM challenges WHERE target = ?`, target)
	return err
}

func (r *challengesRepo) DeleteExpiredChallenges(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM challenges WHERE expires_at <= CURRENT_TIMESTAMP OR verified_at IS NOT NULL`)
	return err
}

func scanChallenge(row *sql.Row) (domain.Challenge, error) {
	var c domain.Challenge
	var first, last, username, dob sql.NullString
	var verifiedAt sql.NullTime

	err := row.Scan(&c.ID, &c.Target, &c.CodeHash, &c.Attempts,
		&first, &last, &username, &dob, &c.ExpiresAt, &verifiedAt, &c.CreatedAt)
	if err != nil {
		return domain.Challenge{}, mapNotFound(err)
	}

	c.VerifiedAt = mapNullTimePtr(verifiedAt)

	// A signup challenge always carries at least a username.
	if username.Valid {
		c.Pending = &domain.PendingProfile{
			FirstName:   first.String,
			LastName:    last.String,
			Username:    username.String,
			DateOfBirth: dob.String,
		}
	}

	return c, nil
}
