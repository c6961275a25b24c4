package parent

import (
	"context"

	"github.com/medikids/clinic-api/internal/lifecycle"
	"github.com/medikids/clinic-api/internal/model"
	"github.com/medikids/clinic-api/internal/repository"
)

type ParentServicer interface {
	Create(ctx context.Context, phone string, fields model.ParentFields) (*model.Parent, error)
	Get(ctx context.Context, id int64) (*model.Parent, error)
	Update(ctx context.Context, id int64, patch *model.UpdateParentPatch) (*model.Parent, error)
	Delete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) (*model.Parent, error)
	Search(ctx context.Context, filter *model.SearchFilter) ([]*model.Parent, error)
}

type Service struct {
	repo   repository.ParentRepository
	mgr    *lifecycle.Manager[int64, string, model.ParentFields, *model.Parent]
	limits model.SearchLimits
}

func NewService(repo repository.ParentRepository, limits model.SearchLimits) *Service {
	mgr := lifecycle.NewManager[int64, string]("parent", repo,
		func(phone string, fields model.ParentFields) *model.Parent {
			return &model.Parent{Phone: phone, ParentFields: fields}
		})
	return &Service{repo: repo, mgr: mgr, limits: limits}
}

// Create registers a parent under their phone number, reviving a
// previously deleted record for the same phone instead of duplicating
// it.
func (s *Service) Create(ctx context.Context, phone string, fields model.ParentFields) (*model.Parent, error) {
	return s.mgr.CreateOrRestore(ctx, phone, fields)
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Parent, error) {
	return s.mgr.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, patch *model.UpdateParentPatch) (*model.Parent, error) {
	return s.mgr.UpdateFields(ctx, id, func(p *model.Parent) {
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Address != nil {
			p.Address = *patch.Address
		}
		if patch.Note != nil {
			p.Note = patch.Note
		}
		if patch.LastVisit != nil {
			p.LastVisit = patch.LastVisit
		}
		if patch.ExpectedDate != nil {
			p.ExpectedDate = patch.ExpectedDate
		}
	})
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.mgr.SoftDelete(ctx, id)
}

func (s *Service) Restore(ctx context.Context, id int64) (*model.Parent, error) {
	return s.mgr.Restore(ctx, id)
}

func (s *Service) Search(ctx context.Context, filter *model.SearchFilter) ([]*model.Parent, error) {
	filter.ClampLimit(s.limits)
	return s.repo.Search(ctx, filter)
}
