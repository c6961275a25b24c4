package parent

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medikids/clinic-api/internal/model"
	"github.com/medikids/clinic-api/pkg/errors"
	"github.com/medikids/clinic-api/pkg/validator"
)

type fakeParentService struct {
	parents map[int64]*model.Parent
	byPhone map[string]*model.Parent
	nextID  int64
}

func newFakeParentService() *fakeParentService {
	return &fakeParentService{
		parents: make(map[int64]*model.Parent),
		byPhone: make(map[string]*model.Parent),
		nextID:  1,
	}
}

func (f *fakeParentService) Create(_ context.Context, phone string, fields model.ParentFields) (*model.Parent, error) {
	if existing, ok := f.byPhone[phone]; ok {
		if !existing.Deleted {
			return nil, errors.AlreadyExists("parent", nil)
		}
		existing.Deleted = false
		existing.DeletedAt = nil
		existing.Apply(fields)
		return existing, nil
	}
	p := &model.Parent{ID: f.nextID, Phone: phone, ParentFields: fields}
	f.nextID++
	f.parents[p.ID] = p
	f.byPhone[phone] = p
	return p, nil
}

func (f *fakeParentService) Get(_ context.Context, id int64) (*model.Parent, error) {
	p, ok := f.parents[id]
	if !ok || p.Deleted {
		return nil, errors.NotFound("parent", nil)
	}
	return p, nil
}

func (f *fakeParentService) Update(_ context.Context, id int64, patch *model.UpdateParentPatch) (*model.Parent, error) {
	p, ok := f.parents[id]
	if !ok || p.Deleted {
		return nil, errors.NotFound("parent", nil)
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	if patch.Note != nil {
		p.Note = patch.Note
	}
	return p, nil
}

func (f *fakeParentService) Delete(_ context.Context, id int64) error {
	p, ok := f.parents[id]
	if !ok {
		return errors.NotFound("parent", nil)
	}
	p.Deleted = true
	return nil
}

func (f *fakeParentService) Restore(_ context.Context, id int64) (*model.Parent, error) {
	p, ok := f.parents[id]
	if !ok || !p.Deleted {
		return nil, errors.NotFound("deleted parent", nil)
	}
	p.Deleted = false
	return p, nil
}

func (f *fakeParentService) Search(_ context.Context, _ *model.SearchFilter) ([]*model.Parent, error) {
	var out []*model.Parent
	for _, p := range f.parents {
		if !p.Deleted {
			out = append(out, p)
		}
	}
	return out, nil
}

func setupRouter(svc *fakeParentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validator.RegisterCustomValidations()
	r := gin.New()
	api := r.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateParent(t *testing.T) {
	r := setupRouter(newFakeParentService())

	w := doJSON(t, r, http.MethodPost, "/api/v1/parents", gin.H{
		"phone":      "0912345678",
		"name":       "Alice Nguyen",
		"address":    "12 Elm St",
		"last_visit": "02/01/2026",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Status string       `json:"status"`
		Data   model.Parent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "0912345678", resp.Data.Phone)
	require.NotNil(t, resp.Data.LastVisit)
	assert.Equal(t, "2026-01-02", resp.Data.LastVisit.Format("2006-01-02"))
}

func TestCreateParentDuplicate(t *testing.T) {
	svc := newFakeParentService()
	r := setupRouter(svc)

	body := gin.H{"phone": "0912345678", "name": "Alice", "address": "12 Elm St"}
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/api/v1/parents", body).Code)

	w := doJSON(t, r, http.MethodPost, "/api/v1/parents", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateParentBadPhone(t *testing.T) {
	r := setupRouter(newFakeParentService())

	w := doJSON(t, r, http.MethodPost, "/api/v1/parents", gin.H{
		"phone":   "123",
		"name":    "Alice",
		"address": "12 Elm St",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateParentBadDate(t *testing.T) {
	r := setupRouter(newFakeParentService())

	w := doJSON(t, r, http.MethodPost, "/api/v1/parents", gin.H{
		"phone":      "0912345678",
		"name":       "Alice",
		"address":    "12 Elm St",
		"last_visit": "31-31-2026",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetParentNotFound(t *testing.T) {
	r := setupRouter(newFakeParentService())

	w := doJSON(t, r, http.MethodGet, "/api/v1/parents/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetParentInvalidID(t *testing.T) {
	r := setupRouter(newFakeParentService())

	w := doJSON(t, r, http.MethodGet, "/api/v1/parents/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSoftDeleteThenRestore(t *testing.T) {
	svc := newFakeParentService()
	r := setupRouter(svc)

	created := doJSON(t, r, http.MethodPost, "/api/v1/parents", gin.H{
		"phone": "0912345678", "name": "Alice", "address": "12 Elm St",
	})
	require.Equal(t, http.StatusCreated, created.Code)

	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, "/api/v1/parents/1/soft-delete", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/api/v1/parents/1", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, "/api/v1/parents/1/restore", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/api/v1/parents/1", nil).Code)
}

func TestUpdateParentPartial(t *testing.T) {
	svc := newFakeParentService()
	r := setupRouter(svc)

	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/api/v1/parents", gin.H{
		"phone": "0912345678", "name": "Alice", "address": "12 Elm St",
	}).Code)

	w := doJSON(t, r, http.MethodPut, "/api/v1/parents/1", gin.H{"name": "Alice Tran"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data model.Parent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Alice Tran", resp.Data.Name)
	assert.Equal(t, "12 Elm St", resp.Data.Address)
}
