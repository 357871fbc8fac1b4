package postgres

import (
	"context"
	"testing"
	"time"

	"real-estate-service/internal/core/domain"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyRepository_GetDetails_NotFound(t *testing.T) {
	uow, mock := newMockedUow(t)

	mock.ExpectQuery("SELECT (.+) FROM properties p").
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	details, err := uow.Properties().GetDetails(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, details)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_GetDetails_Full(t *testing.T) {
	uow, mock := newMockedUow(t)
	birthday := time.Date(1980, 5, 20, 0, 0, 0, 0, time.UTC)

	propertyRow := pgxmock.NewRows([]string{
		"id", "name", "street", "city", "state", "zip_code",
		"price", "code_internal", "year", "owner_id",
		"o_id", "o_name", "o_street", "o_city", "o_state", "o_zip_code", "o_photo", "o_birthday",
	}).AddRow(
		int64(7), "Casa", strPtr("Calle 1"), strPtr("Bogota"), strPtr("DC"), strPtr("110111"),
		100000.0, "CR-001", (*int16)(nil), int64(10),
		int64(10), "Ana", (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil),
		strPtr("ana.jpg"), &birthday,
	)
	mock.ExpectQuery("SELECT (.+) FROM properties p").
		WithArgs(int64(7)).
		WillReturnRows(propertyRow)

	// Строгие шаблоны: сортировка задаётся только в SQL, поэтому
	// ORDER BY входит в ожидаемый запрос.
	mock.ExpectQuery(`SELECT (.+) FROM property_images WHERE property_id = (.+) ORDER BY id ASC$`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "property_id", "stored_key", "enabled"}).
			AddRow(int64(1), int64(7), "properties/7/a.jpg", true).
			AddRow(int64(2), int64(7), "properties/7/b.jpg", false))

	mock.ExpectQuery(`SELECT (.+) FROM property_traces WHERE property_id = (.+) ORDER BY date_of_change DESC, id DESC$`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "property_id", "date_of_change", "name", "value", "tax"}).
			AddRow(int64(11), int64(7), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "Price updated", 100000.0, 0.0).
			AddRow(int64(10), int64(7), time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), "Initial", 90000.0, 500.0))

	details, err := uow.Properties().GetDetails(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, details)

	assert.Equal(t, "Casa", details.Name)
	assert.Equal(t, "Ana", details.Owner.Name)
	assert.Nil(t, details.Owner.Address)
	require.NotNil(t, details.Owner.Birthday)

	// Порядок из хранилища сохраняется как есть: изображения по
	// возрастанию ID, трейсы от новых к старым.
	require.Len(t, details.Images, 2)
	assert.Equal(t, int64(1), details.Images[0].ID)
	assert.Equal(t, int64(2), details.Images[1].ID)
	require.Len(t, details.Traces, 2)
	assert.Equal(t, int64(11), details.Traces[0].ID)
	assert.Equal(t, int64(10), details.Traces[1].ID)
	assert.Equal(t, "Price updated", details.Traces[0].Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_GetDetails_EmptyCollections(t *testing.T) {
	uow, mock := newMockedUow(t)

	propertyRow := pgxmock.NewRows([]string{
		"id", "name", "street", "city", "state", "zip_code",
		"price", "code_internal", "year", "owner_id",
		"o_id", "o_name", "o_street", "o_city", "o_state", "o_zip_code", "o_photo", "o_birthday",
	}).AddRow(
		int64(7), "Casa", (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil),
		100000.0, "CR-001", (*int16)(nil), int64(10),
		int64(10), "Ana", (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil),
		(*string)(nil), (*time.Time)(nil),
	)
	mock.ExpectQuery("SELECT (.+) FROM properties p").
		WithArgs(int64(7)).
		WillReturnRows(propertyRow)
	mock.ExpectQuery(`SELECT (.+) FROM property_images WHERE property_id = (.+) ORDER BY id ASC$`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "property_id", "stored_key", "enabled"}))
	mock.ExpectQuery(`SELECT (.+) FROM property_traces WHERE property_id = (.+) ORDER BY date_of_change DESC, id DESC$`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "property_id", "date_of_change", "name", "value", "tax"}))

	details, err := uow.Properties().GetDetails(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, details)
	assert.NotNil(t, details.Images)
	assert.NotNil(t, details.Traces)
	assert.Empty(t, details.Images)
	assert.Empty(t, details.Traces)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_FindWithFilters_EmptyResultSkipsDataQuery(t *testing.T) {
	uow, mock := newMockedUow(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("%Bogota%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))

	result, err := uow.Properties().FindWithFilters(context.Background(), domain.PropertyFilters{
		Address:  domain.AddressFilters{City: "Bogota"},
		Page:     5,
		PageSize: 20,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Total)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
	assert.Equal(t, 5, result.Page)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_FindWithFilters_PagedQuery(t *testing.T) {
	uow, mock := newMockedUow(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(42)))

	// Вторая страница по 20: LIMIT 20 OFFSET 20. Шаблон фиксирует
	// детерминированную сортировку страницы.
	mock.ExpectQuery(`SELECT (.+) FROM properties p ORDER BY p.price ASC, p.id ASC LIMIT (.+) OFFSET (.+)$`).
		WithArgs(20, 20).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "street", "city", "state", "zip_code",
			"price", "code_internal", "year", "owner_id",
		}).AddRow(int64(21), "Casa 21", (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil),
			150000.0, "CR-021", (*int16)(nil), int64(10)))

	result, err := uow.Properties().FindWithFilters(context.Background(), domain.PropertyFilters{
		Page:     2,
		PageSize: 20,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, int64(21), result.Items[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
