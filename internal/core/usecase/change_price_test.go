package usecase

import (
	"context"
	"testing"

	"real-estate-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChangePriceFixture(affectedRows int64) (*fakeUowFactory, *fakePropertyEvents, *ChangePriceUseCase) {
	uow := &fakeUnitOfWork{
		owners:     &fakeOwnerRepo{},
		properties: &fakePropertyRepo{setPriceRows: affectedRows},
	}
	factory := &fakeUowFactory{uow: uow}
	events := &fakePropertyEvents{}
	return factory, events, NewChangePriceUseCase(factory, events)
}

func TestChangePrice_Success(t *testing.T) {
	factory, events, uc := newChangePriceFixture(1)

	updated, err := uc.Execute(context.Background(), domain.ChangePriceCommand{
		PropertyID: 7, NewPrice: 99000,
	})

	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, []float64{99000}, factory.uow.properties.setPriceCalls)
	assert.Equal(t, 1, factory.uow.committed)

	require.Len(t, events.priced, 1)
	assert.Equal(t, int64(7), events.priced[0].propertyID)
	assert.Equal(t, 99000.0, events.priced[0].price)
}

func TestChangePrice_NonPositiveRejectedBeforeStorage(t *testing.T) {
	factory, events, uc := newChangePriceFixture(1)

	for _, price := range []float64{0, -100} {
		updated, err := uc.Execute(context.Background(), domain.ChangePriceCommand{
			PropertyID: 7, NewPrice: price,
		})
		require.ErrorIs(t, err, domain.ErrInvalidPrice)
		assert.False(t, updated)
	}

	assert.Equal(t, 0, factory.newCalls, "storage must not be touched at all")
	assert.Empty(t, events.priced)
}

func TestChangePrice_MissingProperty(t *testing.T) {
	factory, events, uc := newChangePriceFixture(0)

	updated, err := uc.Execute(context.Background(), domain.ChangePriceCommand{
		PropertyID: 404, NewPrice: 99000,
	})

	require.NoError(t, err, "zero affected rows is a value outcome")
	assert.False(t, updated)
	assert.Equal(t, 1, factory.uow.rolledBack)
	assert.Equal(t, 0, factory.uow.committed)
	assert.Empty(t, events.priced)
}

func TestChangePrice_StorageFailureRollsBack(t *testing.T) {
	factory, events, uc := newChangePriceFixture(1)
	factory.uow.properties.setPriceErr = errStorage

	updated, err := uc.Execute(context.Background(), domain.ChangePriceCommand{
		PropertyID: 7, NewPrice: 99000,
	})

	require.ErrorIs(t, err, errStorage)
	assert.False(t, updated)
	assert.Equal(t, 1, factory.uow.rolledBack)
	assert.Empty(t, events.priced)
}

// Два последовательных изменения цены оба проходят: модель опирается на
// изоляцию строк в хранилище без optimistic-токенов, побеждает последняя запись.
func TestChangePrice_LastWriteWins(t *testing.T) {
	factory, events, uc := newChangePriceFixture(1)

	for _, price := range []float64{150000, 140000} {
		updated, err := uc.Execute(context.Background(), domain.ChangePriceCommand{
			PropertyID: 7, NewPrice: price,
		})
		require.NoError(t, err)
		assert.True(t, updated)
	}

	assert.Equal(t, []float64{150000, 140000}, factory.uow.properties.setPriceCalls)
	assert.Equal(t, 2, factory.uow.committed)
	require.Len(t, events.priced, 2)
	assert.Equal(t, 140000.0, events.priced[1].price)
}

func TestChangePrice_EventFailureDoesNotFailCommand(t *testing.T) {
	factory, events, uc := newChangePriceFixture(1)
	events.err = errStorage

	updated, err := uc.Execute(context.Background(), domain.ChangePriceCommand{
		PropertyID: 7, NewPrice: 99000,
	})

	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, 1, factory.uow.committed)
}
