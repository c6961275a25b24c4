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

type parentRepository struct {
	BaseRepository
}

func NewParentRepository(base BaseRepository) repository.ParentRepository {
	return &parentRepository{base}
}

func (r *parentRepository) FindByID(ctx context.Context, id int64) (_ *model.Parent, err error) {
	defer r.observe("parents.find_by_id", time.Now(), &err)

	query := `SELECT * FROM parents WHERE id = $1`

	var parent model.Parent
	if err := r.db.GetContext(ctx, &parent, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("parent", err)
		}
		return nil, fmt.Errorf("failed to get parent: %w", err)
	}
	return &parent, nil
}

// FindByKey looks up by phone across deleted and active rows. The
// partial unique index on (phone) WHERE NOT deleted guarantees at most
// one active match; a deleted match is the restore candidate.
func (r *parentRepository) FindByKey(ctx context.Context, phone string) (_ *model.Parent, err error) {
	defer r.observe("parents.find_by_key", time.Now(), &err)

	query := `SELECT * FROM parents WHERE phone = $1 ORDER BY deleted ASC LIMIT 1`

	var parent model.Parent
	if err := r.db.GetContext(ctx, &parent, query, phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("parent", err)
		}
		return nil, fmt.Errorf("failed to get parent by phone: %w", err)
	}
	return &parent, nil
}

func (r *parentRepository) Insert(ctx context.Context, parent *model.Parent) (err error) {
	defer r.observe("parents.insert", time.Now(), &err)

	query := `
		INSERT INTO parents (phone, name, address, note, last_visit, expected_date, deleted, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, query,
			parent.Phone,
			parent.Name,
			parent.Address,
			parent.Note,
			parent.LastVisit,
			parent.ExpectedDate,
			parent.Deleted,
			parent.DeletedAt,
		).Scan(&parent.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.Conflict("phone already registered", err)
			}
			return fmt.Errorf("failed to create parent: %w", err)
		}
		return nil
	})
}

func (r *parentRepository) Update(ctx context.Context, parent *model.Parent) (err error) {
	defer r.observe("parents.update", time.Now(), &err)

	query := `
		UPDATE parents SET
			name = $1,
			address = $2,
			note = $3,
			last_visit = $4,
			expected_date = $5,
			deleted = $6,
			deleted_at = $7
		WHERE id = $8
	`

	result, err := r.db.ExecContext(ctx, query,
		parent.Name,
		parent.Address,
		parent.Note,
		parent.LastVisit,
		parent.ExpectedDate,
		parent.Deleted,
		parent.DeletedAt,
		parent.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update parent: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("parent", nil)
	}

	return nil
}

func (r *parentRepository) Search(ctx context.Context, filter *model.SearchFilter) (_ []*model.Parent, err error) {
	defer r.observe("parents.search", time.Now(), &err)

	query := `SELECT * FROM parents WHERE deleted = FALSE`
	args := []interface{}{}

	if filter.Phone != "" {
		query += fmt.Sprintf(" AND phone ILIKE $%d", len(args)+1)
		args = append(args, "%"+filter.Phone+"%")
	}

	if filter.Query != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args)+1)
		args = append(args, "%"+filter.Query+"%")
	}

	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d", len(args)+1)
	args = append(args, filter.Limit)

	var parents []*model.Parent
	if err := r.db.SelectContext(ctx, &parents, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search parents: %w", err)
	}
	return parents, nil
}
