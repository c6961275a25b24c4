package drug

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/medikids/clinic-api/internal/lifecycle"
	"github.com/medikids/clinic-api/internal/model"
	"github.com/medikids/clinic-api/internal/repository"
	apperrors "github.com/medikids/clinic-api/pkg/errors"
	"github.com/medikids/clinic-api/pkg/metrics"
)

type DrugServicer interface {
	Create(ctx context.Context, name string, fields model.DrugFields) (*model.Drug, error)
	Get(ctx context.Context, id int64) (*model.Drug, error)
	Update(ctx context.Context, id int64, patch *model.UpdateDrugPatch) (*model.Drug, error)
	Delete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) (*model.Drug, error)
	List(ctx context.Context, filter *model.SearchFilter) ([]*model.Drug, error)
	Import(ctx context.Context, items []model.DrugImport) (*model.ImportResult, error)
	CreatePurchase(ctx context.Context, purchase *model.Purchase) (*model.Purchase, error)
	ListPurchases(ctx context.Context, limit int) ([]*model.PurchaseWithDrug, error)
}

type Service struct {
	repo         repository.DrugRepository
	purchaseRepo repository.PurchaseRepository
	mgr          *lifecycle.Manager[int64, string, model.DrugFields, *model.Drug]
	limits       model.SearchLimits
	cache        *gocache.Cache
	metrics      *metrics.Metrics
}

func NewService(
	repo repository.DrugRepository,
	purchaseRepo repository.PurchaseRepository,
	limits model.SearchLimits,
	cacheTTL time.Duration,
	m *metrics.Metrics,
) *Service {
	mgr := lifecycle.NewManager[int64, string]("drug", repo,
		func(name string, fields model.DrugFields) *model.Drug {
			return &model.Drug{Name: name, DrugFields: fields}
		})
	return &Service{
		repo:         repo,
		purchaseRepo: purchaseRepo,
		mgr:          mgr,
		limits:       limits,
		cache:        gocache.New(cacheTTL, 2*cacheTTL),
		metrics:      m,
	}
}

// Create registers a drug under its name, reviving a previously deleted
// record for the same name instead of duplicating it.
func (s *Service) Create(ctx context.Context, name string, fields model.DrugFields) (*model.Drug, error) {
	drug, err := s.mgr.CreateOrRestore(ctx, name, fields)
	if err != nil {
		return nil, err
	}
	s.invalidateListCache()
	return drug, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Drug, error) {
	return s.mgr.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, patch *model.UpdateDrugPatch) (*model.Drug, error) {
	drug, err := s.mgr.UpdateFields(ctx, id, func(d *model.Drug) {
		if patch.SKU != nil {
			d.SKU = *patch.SKU
		}
		if patch.SellPrice != nil {
			d.SellPrice = *patch.SellPrice
		}
		if patch.PurchasePrice != nil {
			d.PurchasePrice = *patch.PurchasePrice
		}
		if patch.Stock != nil {
			d.Stock = *patch.Stock
		}
	})
	if err != nil {
		return nil, err
	}
	s.invalidateListCache()
	return drug, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.mgr.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidateListCache()
	return nil
}

func (s *Service) Restore(ctx context.Context, id int64) (*model.Drug, error) {
	drug, err := s.mgr.Restore(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidateListCache()
	return drug, nil
}

// List returns active drugs. The unfiltered listing backs both the HTML
// inventory page and the JSON API and is hot, so it is served from an
// in-process cache between mutations.
func (s *Service) List(ctx context.Context, filter *model.SearchFilter) ([]*model.Drug, error) {
	filter.ClampLimit(s.limits)

	cacheable := filter.Query == ""
	key := fmt.Sprintf("drugs:list:%d", filter.Limit)
	if cacheable {
		if cached, ok := s.cache.Get(key); ok {
			return cached.([]*model.Drug), nil
		}
	}

	drugs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if cacheable {
		s.cache.SetDefault(key, drugs)
	}
	return drugs, nil
}

// Import loads a batch of drugs. Each item goes through the same
// create-or-restore path as a single create; a failing item is counted
// and skipped, never aborting the rest of the batch.
func (s *Service) Import(ctx context.Context, items []model.DrugImport) (*model.ImportResult, error) {
	result := &model.ImportResult{}

	for _, item := range items {
		if item.Name == "" {
			result.FailedCount++
			s.metrics.ImportItemsFailed.Inc()
			continue
		}

		_, err := s.mgr.CreateOrRestore(ctx, item.Name, model.DrugFields{
			SKU:           item.SKU,
			SellPrice:     item.SellPrice,
			PurchasePrice: item.PurchasePrice,
			Stock:         item.Stock,
		})
		if err != nil {
			result.FailedCount++
			s.metrics.ImportItemsFailed.Inc()
			continue
		}
		result.SuccessCount++
		s.metrics.ImportItemsSucceeded.Inc()
	}

	s.invalidateListCache()
	return result, nil
}

// CreatePurchase records a restock order for an active drug.
func (s *Service) CreatePurchase(ctx context.Context, purchase *model.Purchase) (*model.Purchase, error) {
	drug, err := s.repo.FindByID(ctx, purchase.DrugID)
	if err != nil {
		return nil, err
	}
	if drug.Deleted {
		return nil, apperrors.NotFound("drug", nil)
	}

	if purchase.OrderDate.IsZero() {
		purchase.OrderDate = time.Now()
	}
	if err := s.purchaseRepo.Insert(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

func (s *Service) ListPurchases(ctx context.Context, limit int) ([]*model.PurchaseWithDrug, error) {
	filter := model.SearchFilter{Limit: limit}
	filter.ClampLimit(s.limits)
	return s.purchaseRepo.List(ctx, filter.Limit)
}

func (s *Service) invalidateListCache() {
	s.cache.Flush()
}
