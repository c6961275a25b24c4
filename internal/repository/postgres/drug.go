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

type drugRepository struct {
	BaseRepository
}

func NewDrugRepository(base BaseRepository) repository.DrugRepository {
	return &drugRepository{base}
}

func (r *drugRepository) FindByID(ctx context.Context, id int64) (_ *model.Drug, err error) {
	defer r.observe("drugs.find_by_id", time.Now(), &err)

	query := `SELECT * FROM drugs WHERE id = $1`

	var drug model.Drug
	if err := r.db.GetContext(ctx, &drug, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("drug", err)
		}
		return nil, fmt.Errorf("failed to get drug: %w", err)
	}
	return &drug, nil
}

// FindByKey looks up by exact drug name across deleted and active rows.
func (r *drugRepository) FindByKey(ctx context.Context, name string) (_ *model.Drug, err error) {
	defer r.observe("drugs.find_by_key", time.Now(), &err)

	query := `SELECT * FROM drugs WHERE name = $1 ORDER BY deleted ASC LIMIT 1`

	var drug model.Drug
	if err := r.db.GetContext(ctx, &drug, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("drug", err)
		}
		return nil, fmt.Errorf("failed to get drug by name: %w", err)
	}
	return &drug, nil
}

func (r *drugRepository) Insert(ctx context.Context, drug *model.Drug) (err error) {
	defer r.observe("drugs.insert", time.Now(), &err)

	query := `
		INSERT INTO drugs (sku, name, sell_price, purchase_price, stock, deleted, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, query,
			drug.SKU,
			drug.Name,
			drug.SellPrice,
			drug.PurchasePrice,
			drug.Stock,
			drug.Deleted,
			drug.DeletedAt,
		).Scan(&drug.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.Conflict("drug name already registered", err)
			}
			return fmt.Errorf("failed to create drug: %w", err)
		}
		return nil
	})
}

func (r *drugRepository) Update(ctx context.Context, drug *model.Drug) (err error) {
	defer r.observe("drugs.update", time.Now(), &err)

	query := `
		UPDATE drugs SET
			sku = $1,
			sell_price = $2,
			purchase_price = $3,
			stock = $4,
			deleted = $5,
			deleted_at = $6
		WHERE id = $7
	`

	result, err := r.db.ExecContext(ctx, query,
		drug.SKU,
		drug.SellPrice,
		drug.PurchasePrice,
		drug.Stock,
		drug.Deleted,
		drug.DeletedAt,
		drug.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update drug: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("drug", nil)
	}

	return nil
}

func (r *drugRepository) List(ctx context.Context, filter *model.SearchFilter) (_ []*model.Drug, err error) {
	defer r.observe("drugs.list", time.Now(), &err)

	query := `SELECT * FROM drugs WHERE deleted = FALSE`
	args := []interface{}{}

	if filter.Query != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args)+1)
		args = append(args, "%"+filter.Query+"%")
	}

	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d", len(args)+1)
	args = append(args, filter.Limit)

	var drugs []*model.Drug
	if err := r.db.SelectContext(ctx, &drugs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list drugs: %w", err)
	}
	return drugs, nil
}

type purchaseRepository struct {
	BaseRepository
}

func NewPurchaseRepository(base BaseRepository) repository.PurchaseRepository {
	return &purchaseRepository{base}
}

func (r *purchaseRepository) Insert(ctx context.Context, purchase *model.Purchase) (err error) {
	defer r.observe("purchases.insert", time.Now(), &err)

	query := `
		INSERT INTO drug_purchases (drug_id, quantity, subcost, order_date, paid, paid_date, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err = r.db.QueryRowxContext(ctx, query,
		purchase.DrugID,
		purchase.Quantity,
		purchase.Subcost,
		purchase.OrderDate,
		purchase.Paid,
		purchase.PaidDate,
		purchase.Note,
	).Scan(&purchase.ID)
	if err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}
	return nil
}

func (r *purchaseRepository) List(ctx context.Context, limit int) (_ []*model.PurchaseWithDrug, err error) {
	defer r.observe("purchases.list", time.Now(), &err)

	query := `
		SELECT dp.*, d.name AS drug_name
		FROM drug_purchases dp
		JOIN drugs d ON d.id = dp.drug_id
		ORDER BY dp.id DESC
		LIMIT $1
	`

	var purchases []*model.PurchaseWithDrug
	if err := r.db.SelectContext(ctx, &purchases, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return purchases, nil
}
