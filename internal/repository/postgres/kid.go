package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/medikids/clinic-api/internal/model"
	"github.com/medikids/clinic-api/internal/repository"
	apperrors "github.com/medikids/clinic-api/pkg/errors"
)

type kidRepository struct {
	BaseRepository
}

func NewKidRepository(base BaseRepository) repository.KidRepository {
	return &kidRepository{base}
}

func (r *kidRepository) FindByID(ctx context.Context, id int64) (_ *model.Kid, err error) {
	defer r.observe("kids.find_by_id", time.Now(), &err)

	query := `SELECT * FROM kids WHERE id = $1`

	var kid model.Kid
	if err := r.db.GetContext(ctx, &kid, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("kid", err)
		}
		return nil, fmt.Errorf("failed to get kid: %w", err)
	}
	return &kid, nil
}

// FindByKey looks up by (name, birthday) across deleted and active
// rows. A nil birthday never matches: kids without a birthday on record
// are not unique-enforced, so every such create is a fresh insert.
func (r *kidRepository) FindByKey(ctx context.Context, key model.KidKey) (_ *model.Kid, err error) {
	if key.Birthday == nil {
		return nil, apperrors.NotFound("kid", nil)
	}

	defer r.observe("kids.find_by_key", time.Now(), &err)

	query := `SELECT * FROM kids WHERE name = $1 AND birthday = $2 ORDER BY deleted ASC LIMIT 1`

	var kid model.Kid
	if err := r.db.GetContext(ctx, &kid, query, key.Name, key.Birthday); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("kid", err)
		}
		return nil, fmt.Errorf("failed to get kid by name and birthday: %w", err)
	}
	return &kid, nil
}

func (r *kidRepository) Insert(ctx context.Context, kid *model.Kid) (err error) {
	defer r.observe("kids.insert", time.Now(), &err)

	query := `
		INSERT INTO kids (parent_id, name, birthday, note, deleted, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, query,
			kid.ParentID,
			kid.Name,
			kid.Birthday,
			kid.Note,
			kid.Deleted,
			kid.DeletedAt,
		).Scan(&kid.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.Conflict("kid already registered", err)
			}
			return fmt.Errorf("failed to create kid: %w", err)
		}
		return nil
	})
}

func (r *kidRepository) Update(ctx context.Context, kid *model.Kid) (err error) {
	defer r.observe("kids.update", time.Now(), &err)

	query := `
		UPDATE kids SET
			parent_id = $1,
			name = $2,
			birthday = $3,
			note = $4,
			deleted = $5,
			deleted_at = $6
		WHERE id = $7
	`

	result, err := r.db.ExecContext(ctx, query,
		kid.ParentID,
		kid.Name,
		kid.Birthday,
		kid.Note,
		kid.Deleted,
		kid.DeletedAt,
		kid.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update kid: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("kid", nil)
	}

	return nil
}

func (r *kidRepository) ListWithParent(ctx context.Context, filter *model.SearchFilter) (_ []*model.KidWithParent, err error) {
	defer r.observe("kids.list_with_parent", time.Now(), &err)

	query := `
		SELECT k.*, p.name AS parent_name, p.last_visit AS parent_last_visit
		FROM kids k
		LEFT JOIN parents p ON p.id = k.parent_id AND p.deleted = FALSE
		WHERE k.deleted = FALSE
	`
	args := []interface{}{}

	if filter.Query != "" {
		query += fmt.Sprintf(" AND k.name ILIKE $%d", len(args)+1)
		args = append(args, "%"+filter.Query+"%")
	}

	query += fmt.Sprintf(" ORDER BY k.id DESC LIMIT $%d", len(args)+1)
	args = append(args, filter.Limit)

	var kids []*model.KidWithParent
	if err := r.db.SelectContext(ctx, &kids, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list kids: %w", err)
	}
	return kids, nil
}
