package usecase

import (
	"context"
	"testing"
	"time"

	"real-estate-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDetailsFixture(details *domain.PropertyDetails) (*fakeUowFactory, *GetPropertyDetailsUseCase) {
	uow := &fakeUnitOfWork{
		owners:     &fakeOwnerRepo{},
		properties: &fakePropertyRepo{details: details},
	}
	factory := &fakeUowFactory{uow: uow}
	return factory, NewGetPropertyDetailsUseCase(factory, fakeURLBuilder{})
}

func TestGetPropertyDetails_NotFound(t *testing.T) {
	_, uc := newDetailsFixture(nil)

	view, err := uc.Execute(context.Background(), 404, domain.RequestInfo{Scheme: "http", Host: "localhost"})

	require.NoError(t, err, "missing property is a value outcome")
	assert.Nil(t, view)
}

func TestGetPropertyDetails_ResolvesImageURLs(t *testing.T) {
	_, uc := newDetailsFixture(&domain.PropertyDetails{
		Property: domain.Property{
			ID: 7, Name: "Casa", Price: 100, OwnerID: 10,
			Images: []domain.PropertyImage{
				{ID: 1, PropertyID: 7, StoredKey: "properties/7/a.jpg", Enabled: true},
				{ID: 2, PropertyID: 7, StoredKey: "properties/7/b.jpg", Enabled: false},
			},
			Traces: []domain.PriceTrace{
				{ID: 5, PropertyID: 7, DateOfChange: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Name: "Price updated", Value: 100},
			},
		},
		Owner: domain.Owner{ID: 10, Name: "Ana"},
	})

	view, err := uc.Execute(context.Background(), 7, domain.RequestInfo{Scheme: "https", Host: "api.example.com"})

	require.NoError(t, err)
	require.NotNil(t, view)
	require.Len(t, view.Images, 2)
	assert.Equal(t, "https://api.example.com/media/properties/7/a.jpg", view.Images[0].URL)
	assert.Equal(t, "https://api.example.com/media/properties/7/b.jpg", view.Images[1].URL)
	assert.True(t, view.Images[0].Enabled)
	assert.False(t, view.Images[1].Enabled)
	assert.Equal(t, "Ana", view.Owner.Name)
	require.Len(t, view.Traces, 1)
}

func TestGetPropertyDetails_EmptyCollectionsNormalized(t *testing.T) {
	_, uc := newDetailsFixture(&domain.PropertyDetails{
		Property: domain.Property{ID: 7, Name: "Casa", Price: 100, OwnerID: 10},
		Owner:    domain.Owner{ID: 10},
	})

	view, err := uc.Execute(context.Background(), 7, domain.RequestInfo{Scheme: "http", Host: "localhost"})

	require.NoError(t, err)
	require.NotNil(t, view)
	assert.NotNil(t, view.Images, "images must be an empty slice, not nil")
	assert.NotNil(t, view.Traces, "traces must be an empty slice, not nil")
	assert.Empty(t, view.Images)
	assert.Empty(t, view.Traces)
}

func TestGetPropertyDetails_StorageError(t *testing.T) {
	factory, uc := newDetailsFixture(nil)
	factory.uow.properties.detailsErr = errStorage

	view, err := uc.Execute(context.Background(), 7, domain.RequestInfo{Scheme: "http", Host: "localhost"})

	require.ErrorIs(t, err, errStorage)
	assert.Nil(t, view)
}
