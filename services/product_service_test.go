package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/CopperGroup/JoyFer/models"
)

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) ClearCatalogCache(ctx context.Context) error {
	c.calls++
	return nil
}

// newMockDB wires gorm's postgres dialector to a sqlmock connection
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open gorm on sqlmock")
	return db, mock
}

var categoryColumns = []string{"id", "name", "products", "total_value", "created_at", "updated_at"}

func TestProductService_CreateSyncsCategoryTotal(t *testing.T) {
	db, mock := newMockDB(t)
	cache := &countingInvalidator{}
	svc := NewProductService(db, cache)

	categoryID := uuid.New()
	existingID := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "products"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT \* FROM "categories" WHERE name = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(categoryColumns).
			AddRow(categoryID, "Шафи", []byte(`["`+existingID.String()+`"]`), 10.5, now, now))
	mock.ExpectQuery(`SELECT "id","price_to_show" FROM "products" WHERE category = \$1`).
		WithArgs("Шафи").
		WillReturnRows(sqlmock.NewRows([]string{"id", "price_to_show"}).
			AddRow(existingID, 10.5).
			AddRow(uuid.New(), 20.25))
	mock.ExpectExec(`UPDATE "categories" SET "products"=\$1,"total_value"=\$2`).
		WithArgs(sqlmock.AnyArg(), 30.75, sqlmock.AnyArg(), categoryID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	product, err := svc.Create(context.Background(), models.ProductRequest{
		Name:        "Шафа Nordic",
		Category:    " Шафи ",
		PriceToShow: 20.25,
	})
	require.NoError(t, err)
	assert.Equal(t, "Шафи", product.Category)
	assert.Equal(t, 20.25, product.Price, "list price falls back to the display price")
	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.Equal(t, 1, cache.calls)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductService_DeleteMissingProduct(t *testing.T) {
	db, mock := newMockDB(t)
	cache := &countingInvalidator{}
	svc := NewProductService(db, cache)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, cache.calls)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductService_DeleteEmptiesCategory(t *testing.T) {
	db, mock := newMockDB(t)
	cache := &countingInvalidator{}
	svc := NewProductService(db, cache)

	productID := uuid.New()
	categoryID := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category", "price_to_show"}).
			AddRow(productID, "Лампа", "Лампи", 15.0))
	mock.ExpectExec(`DELETE FROM "products" WHERE id = \$1`).
		WithArgs(productID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "categories" WHERE name = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(categoryColumns).
			AddRow(categoryID, "Лампи", []byte(`["`+productID.String()+`"]`), 15.0, now, now))
	mock.ExpectQuery(`SELECT "id","price_to_show" FROM "products" WHERE category = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "price_to_show"}))
	mock.ExpectExec(`UPDATE "categories" SET "products"=\$1,"total_value"=\$2`).
		WithArgs(sqlmock.AnyArg(), 0.0, sqlmock.AnyArg(), categoryID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Delete(context.Background(), productID))
	assert.Equal(t, 1, cache.calls)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregateMembers(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	ids, total := aggregateMembers([]categoryMember{{ID: a, PriceToShow: 0.1}, {ID: b, PriceToShow: 0.2}})
	assert.Equal(t, models.UUIDList{a, b}, ids)
	assert.Equal(t, 0.3, total)

	ids, total = aggregateMembers(nil)
	assert.Empty(t, ids)
	assert.NotNil(t, ids)
	assert.Equal(t, 0.0, total)
}

func TestCategoryDetails_Discount(t *testing.T) {
	details := categoryDetails(models.Category{Name: "Шафи"}, []models.Product{
		{Price: 100, PriceToShow: 80},
		{Price: 200, PriceToShow: 160},
	})

	assert.Equal(t, 2, details.TotalProducts)
	assert.Equal(t, 240.0, details.TotalValue)
	assert.Equal(t, 120.0, details.AverageProductPrice)
	assert.Equal(t, 20, details.AverageDiscountPercentage)
}

func TestUniqueSorted(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, uniqueSorted([]string{"B", "", "A", "B"}))
}
