package exam

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medikids/clinic-api/internal/lifecycle"
	"github.com/medikids/clinic-api/internal/model"
	"github.com/medikids/clinic-api/internal/repository"
	apperrors "github.com/medikids/clinic-api/pkg/errors"
)

type ExamServicer interface {
	Create(ctx context.Context, parentID int64, fields model.ExamFields) (*model.Exam, error)
	Get(ctx context.Context, id string) (*model.Exam, error)
	Update(ctx context.Context, id string, patch *model.UpdateExamPatch) (*model.Exam, error)
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (*model.Exam, error)
	ListByParent(ctx context.Context, parentID int64, limit int) ([]*model.Exam, error)
	AddImage(ctx context.Context, examID string, image *model.ExamImage) (*model.ExamImage, error)
	ListImages(ctx context.Context, examID string) ([]*model.ExamImage, error)
}

type Service struct {
	repo       repository.ExamRepository
	imageRepo  repository.ExamImageRepository
	parentRepo repository.ParentRepository
	kidRepo    repository.KidRepository
	mgr        *lifecycle.Manager[string, string, model.ExamFields, *model.Exam]
	limits     model.SearchLimits
}

func NewService(
	repo repository.ExamRepository,
	imageRepo repository.ExamImageRepository,
	parentRepo repository.ParentRepository,
	kidRepo repository.KidRepository,
	limits model.SearchLimits,
) *Service {
	// Exams have no natural key, so the manager only runs the
	// soft-delete operations; creation is a plain insert below.
	mgr := lifecycle.NewManager[string, string, model.ExamFields, *model.Exam]("exam", repo, nil)
	return &Service{
		repo:       repo,
		imageRepo:  imageRepo,
		parentRepo: parentRepo,
		kidRepo:    kidRepo,
		mgr:        mgr,
		limits:     limits,
	}
}

// Create records a new exam for an active parent, optionally linked to
// one of their kids.
func (s *Service) Create(ctx context.Context, parentID int64, fields model.ExamFields) (*model.Exam, error) {
	parent, err := s.parentRepo.FindByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent.Deleted {
		return nil, apperrors.NotFound("parent", nil)
	}

	if fields.KidID != nil {
		kid, err := s.kidRepo.FindByID(ctx, *fields.KidID)
		if err != nil {
			return nil, err
		}
		if kid.Deleted {
			return nil, apperrors.NotFound("kid", nil)
		}
	}

	if fields.ExamTime.IsZero() {
		fields.ExamTime = time.Now()
	}

	exam := &model.Exam{
		ID:         uuid.NewString(),
		ParentID:   parentID,
		ExamFields: fields,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.Insert(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Exam, error) {
	return s.mgr.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, patch *model.UpdateExamPatch) (*model.Exam, error) {
	return s.mgr.UpdateFields(ctx, id, func(e *model.Exam) {
		if patch.KidID != nil {
			e.KidID = patch.KidID
		}
		if patch.ExamTime != nil {
			e.ExamTime = *patch.ExamTime
		}
		if patch.Weight != nil {
			e.Weight = patch.Weight
		}
		if patch.Height != nil {
			e.Height = patch.Height
		}
		if patch.History != nil {
			e.History = patch.History
		}
		if patch.Drugs != nil {
			e.Drugs = patch.Drugs
		}
		if patch.ReexamDate != nil {
			e.ReexamDate = patch.ReexamDate
		}
		if patch.Paid != nil {
			e.Paid = *patch.Paid
		}
		if patch.Note != nil {
			e.Note = patch.Note
		}
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.mgr.SoftDelete(ctx, id)
}

func (s *Service) Restore(ctx context.Context, id string) (*model.Exam, error) {
	return s.mgr.Restore(ctx, id)
}

func (s *Service) ListByParent(ctx context.Context, parentID int64, limit int) ([]*model.Exam, error) {
	filter := model.SearchFilter{Limit: limit}
	filter.ClampLimit(s.limits)
	return s.repo.ListByParent(ctx, parentID, filter.Limit)
}

// AddImage attaches an uploaded image to an active exam.
func (s *Service) AddImage(ctx context.Context, examID string, image *model.ExamImage) (*model.ExamImage, error) {
	if _, err := s.mgr.Get(ctx, examID); err != nil {
		return nil, err
	}

	image.ID = uuid.NewString()
	image.ExamID = examID
	image.CreatedAt = time.Now()
	if err := s.imageRepo.Insert(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *Service) ListImages(ctx context.Context, examID string) ([]*model.ExamImage, error) {
	if _, err := s.mgr.Get(ctx, examID); err != nil {
		return nil, err
	}
	return s.imageRepo.ListByExam(ctx, examID)
}
