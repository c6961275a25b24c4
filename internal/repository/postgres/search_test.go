package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medikids/clinic-api/internal/model"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func parentColumns() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "phone", "name", "address", "note",
		"last_visit", "expected_date", "deleted", "deleted_at",
	})
}

func TestParentSearchExcludesDeleted(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewParentRepository(NewBaseRepository(db, nil))

	rows := parentColumns().
		AddRow(int64(2), "0912345679", "B", "", nil, nil, nil, false, nil).
		AddRow(int64(1), "0912345678", "A", "", nil, nil, nil, false, nil)

	mock.ExpectQuery(`SELECT \* FROM parents WHERE deleted = FALSE ORDER BY id DESC LIMIT \$1`).
		WithArgs(20).
		WillReturnRows(rows)

	parents, err := repo.Search(context.Background(), &model.SearchFilter{Limit: 20})

	require.NoError(t, err)
	require.Len(t, parents, 2)
	assert.Equal(t, int64(2), parents[0].ID, "newest row comes first")
	assert.Equal(t, int64(1), parents[1].ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParentSearchFiltersCombine(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewParentRepository(NewBaseRepository(db, nil))

	// Phone and name filters are both substring matches and must AND
	// together, phone binding first.
	mock.ExpectQuery(`SELECT \* FROM parents WHERE deleted = FALSE AND phone ILIKE \$1 AND name ILIKE \$2 ORDER BY id DESC LIMIT \$3`).
		WithArgs("%091%", "%an%", 5).
		WillReturnRows(parentColumns().
			AddRow(int64(7), "0912345678", "Lan", "", nil, nil, nil, false, nil))

	parents, err := repo.Search(context.Background(), &model.SearchFilter{
		Query: "an",
		Phone: "091",
		Limit: 5,
	})

	require.NoError(t, err)
	require.Len(t, parents, 1)
	assert.Equal(t, "Lan", parents[0].Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParentSearchNameOnly(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewParentRepository(NewBaseRepository(db, nil))

	mock.ExpectQuery(`SELECT \* FROM parents WHERE deleted = FALSE AND name ILIKE \$1 ORDER BY id DESC LIMIT \$2`).
		WithArgs("%an%", 20).
		WillReturnRows(parentColumns())

	parents, err := repo.Search(context.Background(), &model.SearchFilter{Query: "an", Limit: 20})

	require.NoError(t, err)
	assert.Empty(t, parents)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestKidListWithParentHidesDeletedRows(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewKidRepository(NewBaseRepository(db, nil))

	birthday := time.Date(2020, 3, 14, 0, 0, 0, 0, time.UTC)
	lastVisit := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	parentName := "Lan"

	rows := sqlmock.NewRows([]string{
		"id", "name", "birthday", "parent_id", "note",
		"deleted", "deleted_at", "parent_name", "parent_last_visit",
	}).AddRow(int64(3), "Bao", birthday, int64(7), nil, false, nil, parentName, lastVisit)

	// Deleted kids are filtered out and deleted parents drop off the
	// join instead of dropping the kid.
	mock.ExpectQuery(`(?s)SELECT k\.\*, p\.name AS parent_name, p\.last_visit AS parent_last_visit.*LEFT JOIN parents p ON p\.id = k\.parent_id AND p\.deleted = FALSE.*WHERE k\.deleted = FALSE.*ORDER BY k\.id DESC LIMIT \$1`).
		WithArgs(20).
		WillReturnRows(rows)

	kids, err := repo.ListWithParent(context.Background(), &model.SearchFilter{Limit: 20})

	require.NoError(t, err)
	require.Len(t, kids, 1)
	assert.Equal(t, "Bao", kids[0].Name)
	require.NotNil(t, kids[0].ParentName)
	assert.Equal(t, "Lan", *kids[0].ParentName)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestKidListWithParentNameFilter(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewKidRepository(NewBaseRepository(db, nil))

	mock.ExpectQuery(`(?s)WHERE k\.deleted = FALSE AND k\.name ILIKE \$1 ORDER BY k\.id DESC LIMIT \$2`).
		WithArgs("%ba%", 10).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "birthday", "parent_id", "note",
			"deleted", "deleted_at", "parent_name", "parent_last_visit",
		}))

	kids, err := repo.ListWithParent(context.Background(), &model.SearchFilter{Query: "ba", Limit: 10})

	require.NoError(t, err)
	assert.Empty(t, kids)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDrugListExcludesDeletedAndFilters(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDrugRepository(NewBaseRepository(db, nil))

	rows := sqlmock.NewRows([]string{
		"id", "name", "sku", "sell_price", "purchase_price", "stock", "deleted", "deleted_at",
	}).AddRow(int64(4), "Paracetamol", "PARA-500", 2.5, 1.0, 30, false, nil)

	mock.ExpectQuery(`SELECT \* FROM drugs WHERE deleted = FALSE AND name ILIKE \$1 ORDER BY id DESC LIMIT \$2`).
		WithArgs("%para%", 20).
		WillReturnRows(rows)

	drugs, err := repo.List(context.Background(), &model.SearchFilter{Query: "para", Limit: 20})

	require.NoError(t, err)
	require.Len(t, drugs, 1)
	assert.Equal(t, "Paracetamol", drugs[0].Name)

	require.NoError(t, mock.ExpectationsWereMet())
}
