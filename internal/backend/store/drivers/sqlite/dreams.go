package sqlite

import (
	"context"
	"database/sql"

	"github.com/soloday/soloday/internal/backend/domain"
)

type dreamsRepo struct {
	db dbtx
}

const dreamColumns = `id, profile_id, content, interpretation, uniqueness_score, interpreted_at, created_at`

func (r *dreamsRepo) CreateDream(ctx context.Context, d domain.Dream) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dreams (id, profile_id, content, interpretation, uniqueness_score, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, d.ProfileID, d.Content, d.Interpretation, d.UniquenessScore, d.CreatedAt,
	)
	return err
}

func (r *dreamsRepo) GetDreamByID(ctx context.Context, id string) (domain.Dream, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+dreamColumns+` FROM dreams WHERE id = ?`, id)
	return scanDream(row.Scan)
}

func (r *dreamsRepo) ListUninterpretedDreams(ctx context.Context, limit int) ([]domain.Dream, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+dreamColumns+` FROM dreams
		WHERE interpreted_at IS NULL
		ORDER BY created_at ASC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Dream
	for rows.Next() {
		d, err := scanDream(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *dreamsRepo) SetDreamInterpretation(ctx context.Context, id, interpretation string, score int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE dreams
		SET interpretation = ?, uniqueness_score = ?, interpreted_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		interpretation, score, id,
	)
	return err
}

func scanDream(scan func(dest ...any) error) (domain.Dream, error) {
	var d domain.Dream
	var interpretedAt sql.NullTime
	err := scan(&d.ID, &d.ProfileID, &d.Content, &d.Interpretation,
		&d.UniquenessScore, &interpretedAt, &d.CreatedAt)
	if err != nil {
		return domain.Dream{}, mapNotFound(err)
	}
	d.InterpretedAt = mapNullTimePtr(interpretedAt)
	return d, nil
}
