package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CopperGroup/JoyFer/models"
)

const previewFeed = `<?xml version="1.0" encoding="UTF-8"?>
<yml_catalog>
  <shop>
    <categories>
      <category id="7">Шафи</category>
    </categories>
    <offers>
      <offer id="101" available="true">
        <name>Шафа Nordic</name>
        <price>9999</price>
        <price_old>12999</price_old>
        <categoryId>7</categoryId>
        <picture>https://img.example/101.jpg</picture>
        <param name="Колір">Білий</param>
      </offer>
    </offers>
  </shop>
</yml_catalog>`

func TestFeedService_PreviewInlineXML(t *testing.T) {
	svc := NewFeedService(nil, nil)

	products, err := svc.Preview(context.Background(), models.FeedPreviewRequest{XML: previewFeed})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "101", *products[0].ExternalID)
	assert.Equal(t, "Шафи", products[0].Category)
	assert.Equal(t, 9999.0, products[0].PriceToShow)
}

func TestFeedService_PreviewDownloadsURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(previewFeed))
	}))
	defer server.Close()

	svc := NewFeedService(nil, nil)
	products, err := svc.Preview(context.Background(), models.FeedPreviewRequest{URL: server.URL})
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestFeedService_PreviewErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	svc := NewFeedService(nil, nil)

	_, err := svc.Preview(context.Background(), models.FeedPreviewRequest{})
	assert.ErrorIs(t, err, ErrInvalidFeed)

	_, err = svc.Preview(context.Background(), models.FeedPreviewRequest{URL: server.URL})
	assert.ErrorIs(t, err, ErrInvalidFeed)

	_, err = svc.Preview(context.Background(), models.FeedPreviewRequest{XML: "<offers><offer>"})
	assert.ErrorIs(t, err, ErrInvalidFeed)
}

func TestFeedService_ProceedSyncsProducts(t *testing.T) {
	db, mock := newMockDB(t)
	cache := &countingInvalidator{}
	svc := NewFeedService(db, cache)

	keptID, goneID, categoryID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()
	productColumns := []string{"id", "external_id", "name", "category", "price_to_show", "is_fetched", "liked_by"}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE external_id IS NOT NULL AND is_fetched = \$1 FOR UPDATE`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow(keptID, "1", "Old name", "Шафи", 10.0, true, []byte(`["user-1"]`)).
			AddRow(goneID, "2", "Gone", "Шафи", 20.0, true, []byte(`[]`)))
	mock.ExpectQuery(`SELECT "external_id" FROM "products" WHERE external_id IS NOT NULL AND is_fetched = \$1`).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows([]string{"external_id"}))
	mock.ExpectExec(`DELETE FROM "products" WHERE id IN \(\$1\)`).
		WithArgs(goneID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "products" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "products"`).WillReturnResult(sqlmock.NewResult(1, 1))

	// No-category sorts before Шафи and does not exist yet
	mock.ExpectQuery(`SELECT \* FROM "categories" WHERE name = \$1`).
		WillReturnRows(sqlmock.NewRows(categoryColumns))
	mock.ExpectQuery(`SELECT "id","price_to_show" FROM "products" WHERE category = \$1`).
		WithArgs(models.DefaultCategoryName).
		WillReturnRows(sqlmock.NewRows([]string{"id", "price_to_show"}).AddRow(uuid.New(), 30.0))
	mock.ExpectExec(`INSERT INTO "categories"`).WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectQuery(`SELECT \* FROM "categories" WHERE name = \$1`).
		WillReturnRows(sqlmock.NewRows(categoryColumns).
			AddRow(categoryID, "Шафи", []byte(`[]`), 30.0, now, now))
	mock.ExpectQuery(`SELECT "id","price_to_show" FROM "products" WHERE category = \$1`).
		WithArgs("Шафи").
		WillReturnRows(sqlmock.NewRows([]string{"id", "price_to_show"}).AddRow(keptID, 15.0))
	mock.ExpectExec(`UPDATE "categories" SET "products"=\$1,"total_value"=\$2`).
		WithArgs(sqlmock.AnyArg(), 15.0, sqlmock.AnyArg(), categoryID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := svc.Proceed(context.Background(), models.FeedProceedRequest{
		Products: []models.Product{
			{ExternalID: ptrTo("1"), Name: "New name", Category: "Шафи", PriceToShow: 15},
			{ExternalID: ptrTo("3"), Name: "Fresh", PriceToShow: 30},
			{ExternalID: ptrTo("4"), Name: "Not selected", Category: "Шафи"},
		},
		SelectedIDs: []string{"1", "3"},
	})
	require.NoError(t, err)
	assert.Equal(t, &models.FeedSyncResult{Created: 1, Updated: 1, Deleted: 1}, result)
	assert.Equal(t, 1, cache.calls)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedService_ProceedSkipsAdminProducts(t *testing.T) {
	db, mock := newMockDB(t)
	cache := &countingInvalidator{}
	svc := NewFeedService(db, cache)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE external_id IS NOT NULL AND is_fetched = \$1 FOR UPDATE`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "external_id", "is_fetched"}))
	mock.ExpectQuery(`SELECT "external_id" FROM "products" WHERE external_id IS NOT NULL AND is_fetched = \$1`).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows([]string{"external_id"}).AddRow("9"))
	mock.ExpectCommit()

	result, err := svc.Proceed(context.Background(), models.FeedProceedRequest{
		Products:    []models.Product{{ExternalID: ptrTo("9"), Name: "Feed copy", Category: "Шафи", PriceToShow: 50}},
		SelectedIDs: []string{"9"},
	})
	require.NoError(t, err)
	assert.Equal(t, &models.FeedSyncResult{Skipped: 1}, result)
	assert.Equal(t, 1, cache.calls)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyFeedProduct_KeepsLikes(t *testing.T) {
	id := uuid.New()
	dst := models.Product{ID: id, LikedBy: models.StringList{"u1"}}

	applyFeedProduct(&dst, models.Product{Name: "Шафа", PriceToShow: 5}, "Шафи")

	assert.Equal(t, id, dst.ID)
	assert.Equal(t, models.StringList{"u1"}, dst.LikedBy)
	assert.Equal(t, "Шафи", dst.Category)
	assert.True(t, dst.IsFetched)
	assert.NotNil(t, dst.Images)
	assert.NotNil(t, dst.Params)
}
