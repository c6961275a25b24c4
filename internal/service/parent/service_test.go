package parent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medikids/clinic-api/internal/model"
	apperrors "github.com/medikids/clinic-api/pkg/errors"
)

type fakeParentRepo struct {
	nextID    int64
	rows      map[int64]model.Parent
	lastLimit int
}

func newFakeParentRepo() *fakeParentRepo {
	return &fakeParentRepo{rows: make(map[int64]model.Parent)}
}

func (r *fakeParentRepo) FindByID(_ context.Context, id int64) (*model.Parent, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, apperrors.NotFound("parent", nil)
	}
	return &row, nil
}

func (r *fakeParentRepo) FindByKey(_ context.Context, phone string) (*model.Parent, error) {
	for _, row := range r.rows {
		if row.Phone == phone {
			return &row, nil
		}
	}
	return nil, apperrors.NotFound("parent", nil)
}

func (r *fakeParentRepo) Insert(_ context.Context, p *model.Parent) error {
	for _, row := range r.rows {
		if row.Phone == p.Phone && !row.Deleted {
			return apperrors.Conflict("duplicate phone", nil)
		}
	}
	r.nextID++
	p.ID = r.nextID
	r.rows[p.ID] = *p
	return nil
}

func (r *fakeParentRepo) Update(_ context.Context, p *model.Parent) error {
	if _, ok := r.rows[p.ID]; !ok {
		return apperrors.NotFound("parent", nil)
	}
	r.rows[p.ID] = *p
	return nil
}

func (r *fakeParentRepo) Search(_ context.Context, filter *model.SearchFilter) ([]*model.Parent, error) {
	r.lastLimit = filter.Limit
	out := []*model.Parent{}
	for _, row := range r.rows {
		if !row.Deleted {
			copied := row
			out = append(out, &copied)
		}
	}
	return out, nil
}

func TestSearchClampsLimit(t *testing.T) {
	repo := newFakeParentRepo()
	svc := NewService(repo, model.SearchLimits{Default: 50, Max: 200})
	ctx := context.Background()

	cases := []struct {
		requested int
		want      int
	}{
		{0, 50},
		{-5, 50},
		{10, 10},
		{1000, 200},
	}
	for _, tc := range cases {
		_, err := svc.Search(ctx, &model.SearchFilter{Limit: tc.requested})
		require.NoError(t, err)
		assert.Equal(t, tc.want, repo.lastLimit, "requested %d", tc.requested)
	}
}

func TestCreateRestoresDeletedPhone(t *testing.T) {
	repo := newFakeParentRepo()
	svc := NewService(repo, model.SearchLimits{Default: 50, Max: 200})
	ctx := context.Background()

	first, err := svc.Create(ctx, "0912345678", model.ParentFields{Name: "A", Address: "addr"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, first.ID))

	revived, err := svc.Create(ctx, "0912345678", model.ParentFields{Name: "B", Address: "addr"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, revived.ID)
	assert.Equal(t, "B", revived.Name)
	assert.False(t, revived.Deleted)
}

func TestUpdateLeavesAbsentFieldsUntouched(t *testing.T) {
	repo := newFakeParentRepo()
	svc := NewService(repo, model.SearchLimits{Default: 50, Max: 200})
	ctx := context.Background()

	p, err := svc.Create(ctx, "0912345678", model.ParentFields{Name: "A", Address: "1 Clinic Rd"})
	require.NoError(t, err)

	name := "B"
	updated, err := svc.Update(ctx, p.ID, &model.UpdateParentPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "B", updated.Name)
	assert.Equal(t, "1 Clinic Rd", updated.Address)
}
