package kid

import (
	"context"

	"github.com/medikids/clinic-api/internal/lifecycle"
	"github.com/medikids/clinic-api/internal/model"
	"github.com/medikids/clinic-api/internal/repository"
	apperrors "github.com/medikids/clinic-api/pkg/errors"
)

type KidServicer interface {
	Create(ctx context.Context, key model.KidKey, fields model.KidFields) (*model.Kid, error)
	Get(ctx context.Context, id int64) (*model.Kid, error)
	Update(ctx context.Context, id int64, patch *model.UpdateKidPatch) (*model.Kid, error)
	Delete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) (*model.Kid, error)
	ListWithParent(ctx context.Context, filter *model.SearchFilter) ([]*model.KidWithParent, error)
}

type Service struct {
	repo       repository.KidRepository
	parentRepo repository.ParentRepository
	mgr        *lifecycle.Manager[int64, model.KidKey, model.KidFields, *model.Kid]
	limits     model.SearchLimits
}

func NewService(repo repository.KidRepository, parentRepo repository.ParentRepository, limits model.SearchLimits) *Service {
	mgr := lifecycle.NewManager[int64, model.KidKey]("kid", repo,
		func(key model.KidKey, fields model.KidFields) *model.Kid {
			return &model.Kid{Name: key.Name, Birthday: key.Birthday, KidFields: fields}
		})
	return &Service{repo: repo, parentRepo: parentRepo, mgr: mgr, limits: limits}
}

// Create registers a kid under (name, birthday), reviving a previously
// deleted record for the same key. The referenced parent must exist and
// be active.
func (s *Service) Create(ctx context.Context, key model.KidKey, fields model.KidFields) (*model.Kid, error) {
	if fields.ParentID != nil {
		if err := s.requireActiveParent(ctx, *fields.ParentID); err != nil {
			return nil, err
		}
	}
	return s.mgr.CreateOrRestore(ctx, key, fields)
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Kid, error) {
	return s.mgr.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, patch *model.UpdateKidPatch) (*model.Kid, error) {
	if patch.ParentID != nil {
		if err := s.requireActiveParent(ctx, *patch.ParentID); err != nil {
			return nil, err
		}
	}
	return s.mgr.UpdateFields(ctx, id, func(k *model.Kid) {
		if patch.Name != nil {
			k.Name = *patch.Name
		}
		if patch.Birthday != nil {
			k.Birthday = patch.Birthday
		}
		if patch.ParentID != nil {
			k.ParentID = patch.ParentID
		}
		if patch.Note != nil {
			k.Note = patch.Note
		}
	})
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.mgr.SoftDelete(ctx, id)
}

func (s *Service) Restore(ctx context.Context, id int64) (*model.Kid, error) {
	return s.mgr.Restore(ctx, id)
}

func (s *Service) ListWithParent(ctx context.Context, filter *model.SearchFilter) ([]*model.KidWithParent, error) {
	filter.ClampLimit(s.limits)
	return s.repo.ListWithParent(ctx, filter)
}

func (s *Service) requireActiveParent(ctx context.Context, parentID int64) error {
	parent, err := s.parentRepo.FindByID(ctx, parentID)
	if err != nil {
		return err
	}
	if parent.Deleted {
		return apperrors.NotFound("parent", nil)
	}
	return nil
}
