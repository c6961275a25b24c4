package exam

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medikids/clinic-api/internal/model"
	apperrors "github.com/medikids/clinic-api/pkg/errors"
)

type fakeExamRepo struct {
	rows map[string]model.Exam
}

func newFakeExamRepo() *fakeExamRepo {
	return &fakeExamRepo{rows: make(map[string]model.Exam)}
}

func (r *fakeExamRepo) FindByID(_ context.Context, id string) (*model.Exam, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, apperrors.NotFound("exam", nil)
	}
	return &row, nil
}

func (r *fakeExamRepo) FindByKey(ctx context.Context, id string) (*model.Exam, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeExamRepo) Insert(_ context.Context, e *model.Exam) error {
	r.rows[e.ID] = *e
	return nil
}

func (r *fakeExamRepo) Update(_ context.Context, e *model.Exam) error {
	if _, ok := r.rows[e.ID]; !ok {
		return apperrors.NotFound("exam", nil)
	}
	r.rows[e.ID] = *e
	return nil
}

func (r *fakeExamRepo) ListByParent(_ context.Context, parentID int64, _ int) ([]*model.Exam, error) {
	out := []*model.Exam{}
	for _, row := range r.rows {
		if row.ParentID == parentID && !row.Deleted {
			copied := row
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeImageRepo struct {
	rows []*model.ExamImage
}

func (r *fakeImageRepo) Insert(_ context.Context, img *model.ExamImage) error {
	r.rows = append(r.rows, img)
	return nil
}

func (r *fakeImageRepo) ListByExam(_ context.Context, examID string) ([]*model.ExamImage, error) {
	out := []*model.ExamImage{}
	for _, img := range r.rows {
		if img.ExamID == examID {
			out = append(out, img)
		}
	}
	return out, nil
}

type fakeParentRepo struct {
	rows map[int64]model.Parent
}

func (r *fakeParentRepo) FindByID(_ context.Context, id int64) (*model.Parent, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, apperrors.NotFound("parent", nil)
	}
	return &row, nil
}

func (r *fakeParentRepo) FindByKey(_ context.Context, _ string) (*model.Parent, error) {
	return nil, apperrors.NotFound("parent", nil)
}

func (r *fakeParentRepo) Insert(_ context.Context, _ *model.Parent) error { return nil }

func (r *fakeParentRepo) Update(_ context.Context, _ *model.Parent) error { return nil }

func (r *fakeParentRepo) Search(_ context.Context, _ *model.SearchFilter) ([]*model.Parent, error) {
	return nil, nil
}

type fakeKidRepo struct {
	rows map[int64]model.Kid
}

func (r *fakeKidRepo) FindByID(_ context.Context, id int64) (*model.Kid, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, apperrors.NotFound("kid", nil)
	}
	return &row, nil
}

func (r *fakeKidRepo) FindByKey(_ context.Context, _ model.KidKey) (*model.Kid, error) {
	return nil, apperrors.NotFound("kid", nil)
}

func (r *fakeKidRepo) Insert(_ context.Context, _ *model.Kid) error { return nil }

func (r *fakeKidRepo) Update(_ context.Context, _ *model.Kid) error { return nil }

func (r *fakeKidRepo) ListWithParent(_ context.Context, _ *model.SearchFilter) ([]*model.KidWithParent, error) {
	return nil, nil
}

func newTestService() (*Service, *fakeExamRepo, *fakeParentRepo) {
	examRepo := newFakeExamRepo()
	parents := &fakeParentRepo{rows: map[int64]model.Parent{1: {ID: 1, Phone: "0912345678"}}}
	kids := &fakeKidRepo{rows: map[int64]model.Kid{7: {ID: 7, Name: "An"}}}
	svc := NewService(examRepo, &fakeImageRepo{}, parents, kids, model.SearchLimits{Default: 50, Max: 200})
	return svc, examRepo, parents
}

func TestCreateAssignsUUIDAndValidatesParent(t *testing.T) {
	svc, _, parents := newTestService()
	ctx := context.Background()

	e, err := svc.Create(ctx, 1, model.ExamFields{})
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, int64(1), e.ParentID)
	assert.False(t, e.ExamTime.IsZero(), "exam time defaults to now")

	_, err = svc.Create(ctx, 99, model.ExamFields{})
	assert.True(t, apperrors.IsNotFound(err))

	now := time.Now()
	parents.rows[2] = model.Parent{ID: 2, Lifecycle: model.Lifecycle{Deleted: true, DeletedAt: &now}}
	_, err = svc.Create(ctx, 2, model.ExamFields{})
	assert.True(t, apperrors.IsNotFound(err), "soft-deleted parent must not accept exams")
}

func TestCreateValidatesKidWhenLinked(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	kidID := int64(7)
	_, err := svc.Create(ctx, 1, model.ExamFields{KidID: &kidID})
	require.NoError(t, err)

	missing := int64(404)
	_, err = svc.Create(ctx, 1, model.ExamFields{KidID: &missing})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateOnSoftDeletedExam(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	e, err := svc.Create(ctx, 1, model.ExamFields{})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, e.ID))

	paid := true
	_, err = svc.Update(ctx, e.ID, &model.UpdateExamPatch{Paid: &paid})
	assert.True(t, apperrors.IsNotFound(err))

	// Restoring makes it updatable again.
	_, err = svc.Restore(ctx, e.ID)
	require.NoError(t, err)
	updated, err := svc.Update(ctx, e.ID, &model.UpdateExamPatch{Paid: &paid})
	require.NoError(t, err)
	assert.True(t, updated.Paid)
}

func TestAddImageRejectsDeletedExam(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	e, err := svc.Create(ctx, 1, model.ExamFields{})
	require.NoError(t, err)

	img, err := svc.AddImage(ctx, e.ID, &model.ExamImage{Filename: "xray.png", StoragePath: "exams/xray.png"})
	require.NoError(t, err)
	assert.NotEmpty(t, img.ID)

	images, err := svc.ListImages(ctx, e.ID)
	require.NoError(t, err)
	assert.Len(t, images, 1)

	require.NoError(t, svc.Delete(ctx, e.ID))
	_, err = svc.AddImage(ctx, e.ID, &model.ExamImage{Filename: "x.png", StoragePath: "p"})
	assert.True(t, apperrors.IsNotFound(err))
}
