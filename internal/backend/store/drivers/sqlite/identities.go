package sqlite

import (
	"context"

	"github.com/soloday/soloday/internal/backend/domain"
)

type identitiesRepo struct {
	db dbtx
}

func (r *identitiesRepo) CreateIdentity(ctx context.Context, id domain.Identity) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO identities (id, target, created_at) VALUES (?, ?, ?)`,
		id.ID, id.Target, id.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *identitiesRepo) GetIdentityByID(ctx context.Context, id string) (domain.Identity, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, target, created_at FROM identities WHERE id = ?`, id)

	var out domain.Identity
	if err := row.Scan(&out.ID, &out.Target, &out.CreatedAt); err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return out, nil
}

func (r *identitiesRepo) GetIdentityByTarget(ctx context.Context, target string) (domain.Identity, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, target, created_at FROM identities WHERE target = ?`, target)

	var out domain.Identity
	if err := row.Scan(&out.ID, &out.Target, &out.CreatedAt); err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return out, nil
}
