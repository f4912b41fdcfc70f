package sqlite

import (
	"context"
	"database/sql"

	"github.com/soloday/soloday/internal/backend/domain"
)

type profilesRepo struct {
	db dbtx
}

const profileColumns = `id, identity_id, username, first_name, last_name, email, date_of_birth, created_at, updated_at`

func (r *profilesRepo) CreateProfile(ctx context.Context, p domain.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (id, identity_id, username, first_name, last_name, email, date_of_birth, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.IdentityID, p.Username, p.FirstName, p.LastName, p.Email,
		mapOptionalString(p.DateOfBirth), p.CreatedAt, p.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *profilesRepo) GetProfileByID(ctx context.Context, id string) (domain.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
}

func (r *profilesRepo) GetProfileByIdentity(ctx context.Context, identityID string) (domain.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE identity_id = ?`, identityID)
}

func (r *profilesRepo) GetProfileByUsername(ctx context.Context, username string) (domain.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE username = ?`, username)
}

func (r *profilesRepo) getOne(ctx context.Context, query string, arg any) (domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, query, arg)

	var p domain.Profile
	var dob sql.NullString
	err := row.Scan(&p.ID, &p.IdentityID, &p.Username, &p.FirstName, &p.LastName,
		&p.Email, &dob, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	p.DateOfBirth = dob.String
	return p, nil
}
