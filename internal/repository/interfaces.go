package repository

import (
	"context"

	"github.com/medikids/clinic-api/internal/model"
)

// All repository interfaces in one file. FindByID and FindByKey return
// soft-deleted rows too; the lifecycle manager needs them for restore.
// Search and List exclude deleted rows and order by id descending.
type (
	ParentRepository interface {
		FindByID(ctx context.Context, id int64) (*model.Parent, error)
		FindByKey(ctx context.Context, phone string) (*model.Parent, error)
		Insert(ctx context.Context, parent *model.Parent) error
		Update(ctx context.Context, parent *model.Parent) error
		Search(ctx context.Context, filter *model.SearchFilter) ([]*model.Parent, error)
	}

	KidRepository interface {
		FindByID(ctx context.Context, id int64) (*model.Kid, error)
		FindByKey(ctx context.Context, key model.KidKey) (*model.Kid, error)
		Insert(ctx context.Context, kid *model.Kid) error
		Update(ctx context.Context, kid *model.Kid) error
		ListWithParent(ctx context.Context, filter *model.SearchFilter) ([]*model.KidWithParent, error)
	}

	DrugRepository interface {
		FindByID(ctx context.Context, id int64) (*model.Drug, error)
		FindByKey(ctx context.Context, name string) (*model.Drug, error)
		Insert(ctx context.Context, drug *model.Drug) error
		Update(ctx context.Context, drug *model.Drug) error
		List(ctx context.Context, filter *model.SearchFilter) ([]*model.Drug, error)
	}

	PurchaseRepository interface {
		Insert(ctx context.Context, purchase *model.Purchase) error
		List(ctx context.Context, limit int) ([]*model.PurchaseWithDrug, error)
	}

	ExamRepository interface {
		FindByID(ctx context.Context, id string) (*model.Exam, error)
		FindByKey(ctx context.Context, id string) (*model.Exam, error)
		Insert(ctx context.Context, exam *model.Exam) error
		Update(ctx context.Context, exam *model.Exam) error
		ListByParent(ctx context.Context, parentID int64, limit int) ([]*model.Exam, error)
	}

	ExamImageRepository interface {
		Insert(ctx context.Context, image *model.ExamImage) error
		ListByExam(ctx context.Context, examID string) ([]*model.ExamImage, error)
	}
)
