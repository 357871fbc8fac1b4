package usecase

import (
	"context"
	"testing"

	"real-estate-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAddImageFixture() (*fakeUowFactory, *fakeImageStorage, *AddPropertyImageUseCase) {
	uow := &fakeUnitOfWork{
		owners: &fakeOwnerRepo{},
		properties: &fakePropertyRepo{
			existing:    map[int64]bool{7: true},
			nextImageID: 3,
		},
	}
	factory := &fakeUowFactory{uow: uow}
	storage := &fakeImageStorage{uploadKey: "properties/7/abc.jpg"}
	return factory, storage, NewAddPropertyImageUseCase(factory, storage)
}

func imageCommand(propertyID int64) domain.AddPropertyImageCommand {
	return domain.AddPropertyImageCommand{
		PropertyID: propertyID,
		Image: domain.ImageUpload{
			FileName:    "front.jpg",
			ContentType: "image/jpeg",
			Content:     []byte{0xFF, 0xD8},
		},
		Enabled: true,
	}
}

func TestAddPropertyImage_Success(t *testing.T) {
	factory, storage, uc := newAddImageFixture()

	image, err := uc.Execute(context.Background(), imageCommand(7))

	require.NoError(t, err)
	require.NotNil(t, image)
	assert.Equal(t, int64(3), image.ID)
	assert.Equal(t, int64(7), image.PropertyID)
	assert.Equal(t, "properties/7/abc.jpg", image.StoredKey)
	assert.True(t, image.Enabled)

	assert.Equal(t, 1, factory.uow.committed)
	assert.Empty(t, storage.deletedKey, "no compensation on success")
}

func TestAddPropertyImage_PropertyMissing(t *testing.T) {
	factory, storage, uc := newAddImageFixture()

	image, err := uc.Execute(context.Background(), imageCommand(404))

	require.ErrorIs(t, err, domain.ErrPropertyNotFound)
	assert.Nil(t, image)
	assert.Equal(t, 0, storage.uploadCalls, "blob must not be uploaded")
	assert.Equal(t, 0, factory.uow.began)
}

func TestAddPropertyImage_UploadFailure(t *testing.T) {
	factory, storage, uc := newAddImageFixture()
	storage.uploadErr = errStorage

	image, err := uc.Execute(context.Background(), imageCommand(7))

	require.ErrorIs(t, err, errStorage)
	assert.Nil(t, image)
	assert.Equal(t, 1, factory.uow.rolledBack)
	assert.Empty(t, storage.deletedKey, "nothing was uploaded, nothing to compensate")
}

func TestAddPropertyImage_PersistFailureCompensatesBlob(t *testing.T) {
	factory, storage, uc := newAddImageFixture()
	factory.uow.properties.addImageErr = errStorage

	image, err := uc.Execute(context.Background(), imageCommand(7))

	require.ErrorIs(t, err, errStorage)
	assert.Nil(t, image)
	assert.Equal(t, 1, factory.uow.rolledBack)
	assert.Equal(t, 0, factory.uow.committed)
	assert.Equal(t, []string{"properties/7/abc.jpg"}, storage.deletedKey,
		"uploaded blob must be deleted exactly once")
}

func TestAddPropertyImage_DeleteFailureDoesNotMaskOriginalError(t *testing.T) {
	factory, storage, uc := newAddImageFixture()
	factory.uow.properties.addImageErr = errStorage
	storage.deleteErr = context.DeadlineExceeded

	image, err := uc.Execute(context.Background(), imageCommand(7))

	require.ErrorIs(t, err, errStorage, "persist error must survive a failed compensation")
	assert.NotErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, image)
	assert.Len(t, storage.deletedKey, 1)
	assert.Equal(t, 1, factory.uow.rolledBack)
}
