package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/medikids/clinic-api/internal/model"
	"github.com/medikids/clinic-api/internal/repository"
	apperrors "github.com/medikids/clinic-api/pkg/errors"
)

type examRepository struct {
	BaseRepository
}

func NewExamRepository(base BaseRepository) repository.ExamRepository {
	return &examRepository{base}
}

func (r *examRepository) FindByID(ctx context.Context, id string) (_ *model.Exam, err error) {
	defer r.observe("exams.find_by_id", time.Now(), &err)

	query := `SELECT * FROM exams WHERE id = $1`

	var exam model.Exam
	if err := r.db.GetContext(ctx, &exam, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("exam", err)
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}
	return &exam, nil
}

// FindByKey is FindByID: exams have no natural key beyond their UUID,
// so the restore-by-key path never applies to them.
func (r *examRepository) FindByKey(ctx context.Context, id string) (*model.Exam, error) {
	return r.FindByID(ctx, id)
}

func (r *examRepository) Insert(ctx context.Context, exam *model.Exam) (err error) {
	defer r.observe("exams.insert", time.Now(), &err)

	query := `
		INSERT INTO exams (
			id, parent_id, kid_id, exam_time, weight, height, history,
			drugs, reexam_date, paid, note, created_at, deleted, deleted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = r.db.ExecContext(ctx, query,
		exam.ID,
		exam.ParentID,
		exam.KidID,
		exam.ExamTime,
		exam.Weight,
		exam.Height,
		exam.History,
		exam.Drugs,
		exam.ReexamDate,
		exam.Paid,
		exam.Note,
		exam.CreatedAt,
		exam.Deleted,
		exam.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create exam: %w", err)
	}
	return nil
}

func (r *examRepository) Update(ctx context.Context, exam *model.Exam) (err error) {
	defer r.observe("exams.update", time.Now(), &err)

	query := `
		UPDATE exams SET
			kid_id = $1,
			exam_time = $2,
			weight = $3,
			height = $4,
			history = $5,
			drugs = $6,
			reexam_date = $7,
			paid = $8,
			note = $9,
			updated_at = $10,
			deleted = $11,
			deleted_at = $12
		WHERE id = $13
	`

	now := time.Now()
	exam.UpdatedAt = &now

	result, err := r.db.ExecContext(ctx, query,
		exam.KidID,
		exam.ExamTime,
		exam.Weight,
		exam.Height,
		exam.History,
		exam.Drugs,
		exam.ReexamDate,
		exam.Paid,
		exam.Note,
		exam.UpdatedAt,
		exam.Deleted,
		exam.DeletedAt,
		exam.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update exam: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("exam", nil)
	}

	return nil
}

func (r *examRepository) ListByParent(ctx context.Context, parentID int64, limit int) (_ []*model.Exam, err error) {
	defer r.observe("exams.list_by_parent", time.Now(), &err)

	query := `
		SELECT * FROM exams
		WHERE parent_id = $1 AND deleted = FALSE
		ORDER BY exam_time DESC
		LIMIT $2
	`

	var exams []*model.Exam
	if err := r.db.SelectContext(ctx, &exams, query, parentID, limit); err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}
	return exams, nil
}

type examImageRepository struct {
	BaseRepository
}

func NewExamImageRepository(base BaseRepository) repository.ExamImageRepository {
	return &examImageRepository{base}
}

func (r *examImageRepository) Insert(ctx context.Context, image *model.ExamImage) (err error) {
	defer r.observe("exam_images.insert", time.Now(), &err)

	query := `
		INSERT INTO exam_images (id, exam_id, filename, storage_path, url, mimetype, size, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = r.db.ExecContext(ctx, query,
		image.ID,
		image.ExamID,
		image.Filename,
		image.StoragePath,
		image.URL,
		image.Mimetype,
		image.Size,
		image.Position,
		image.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create exam image: %w", err)
	}
	return nil
}

func (r *examImageRepository) ListByExam(ctx context.Context, examID string) (_ []*model.ExamImage, err error) {
	defer r.observe("exam_images.list_by_exam", time.Now(), &err)

	query := `
		SELECT * FROM exam_images
		WHERE exam_id = $1
		ORDER BY position ASC NULLS LAST, created_at ASC
	`

	var images []*model.ExamImage
	if err := r.db.SelectContext(ctx, &images, query, examID); err != nil {
		return nil, fmt.Errorf("failed to list exam images: %w", err)
	}
	return images, nil
}
