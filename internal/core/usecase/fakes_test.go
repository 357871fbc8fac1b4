package usecase

import (
	"context"
	"errors"

	"real-estate-service/internal/core/domain"
	"real-estate-service/internal/core/port"
)

// Фейки для изоляции use case от адаптеров. Поведение настраивается
// полями, вызовы записываются для проверок.

type fakeOwnerRepo struct {
	existing map[int64]bool
	err      error
}

func (f *fakeOwnerRepo) Exists(ctx context.Context, ownerID int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.existing[ownerID], nil
}

type fakePropertyRepo struct {
	byID     map[int64]*domain.Property
	existing map[int64]bool

	createErr   error
	nextID      int64
	updateOK    bool
	updateErr   error
	updatedWith *domain.Property

	setPriceRows  int64
	setPriceErr   error
	setPriceCalls []float64

	addImageErr error
	nextImageID int64
	images      []domain.PropertyImage

	addTraceErr error
	traces      []domain.PriceTrace

	details    *domain.PropertyDetails
	detailsErr error

	paged       *domain.PagedProperties
	pagedErr    error
	lastFilters domain.PropertyFilters
}

func (f *fakePropertyRepo) Create(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	property.ID = f.nextID
	for i := range property.Traces {
		property.Traces[i].PropertyID = property.ID
		property.Traces[i].ID = int64(i + 1)
		f.traces = append(f.traces, property.Traces[i])
	}
	return property, nil
}

func (f *fakePropertyRepo) GetByID(ctx context.Context, propertyID int64) (*domain.Property, error) {
	p, ok := f.byID[propertyID]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakePropertyRepo) GetDetails(ctx context.Context, propertyID int64) (*domain.PropertyDetails, error) {
	if f.detailsErr != nil {
		return nil, f.detailsErr
	}
	return f.details, nil
}

func (f *fakePropertyRepo) Update(ctx context.Context, property *domain.Property) (bool, error) {
	if f.updateErr != nil {
		return false, f.updateErr
	}
	copied := *property
	f.updatedWith = &copied
	return f.updateOK, nil
}

func (f *fakePropertyRepo) SetPrice(ctx context.Context, propertyID int64, newPrice float64) (int64, error) {
	if f.setPriceErr != nil {
		return 0, f.setPriceErr
	}
	f.setPriceCalls = append(f.setPriceCalls, newPrice)
	return f.setPriceRows, nil
}

func (f *fakePropertyRepo) AddImage(ctx context.Context, image *domain.PropertyImage) (int64, error) {
	if f.addImageErr != nil {
		return 0, f.addImageErr
	}
	f.images = append(f.images, *image)
	return f.nextImageID, nil
}

func (f *fakePropertyRepo) AddTrace(ctx context.Context, trace *domain.PriceTrace) (int64, error) {
	if f.addTraceErr != nil {
		return 0, f.addTraceErr
	}
	f.traces = append(f.traces, *trace)
	return int64(len(f.traces)), nil
}

func (f *fakePropertyRepo) Exists(ctx context.Context, propertyID int64) (bool, error) {
	return f.existing[propertyID], nil
}

func (f *fakePropertyRepo) FindWithFilters(ctx context.Context, filters domain.PropertyFilters) (*domain.PagedProperties, error) {
	f.lastFilters = filters
	if f.pagedErr != nil {
		return nil, f.pagedErr
	}
	return f.paged, nil
}

// fakeUnitOfWork воспроизводит контракт порта: один дескриптор на
// открытую транзакцию, Commit сверяет его, Rollback идемпотентен.
type fakeUnitOfWork struct {
	owners     *fakeOwnerRepo
	properties *fakePropertyRepo

	beginErr  error
	commitErr error

	openTx     bool
	began      int
	committed  int
	rolledBack int
}

func (u *fakeUnitOfWork) Owners() port.OwnerRepositoryPort        { return u.owners }
func (u *fakeUnitOfWork) Properties() port.PropertyRepositoryPort { return u.properties }

func (u *fakeUnitOfWork) Begin(ctx context.Context) (port.TxHandle, error) {
	if u.beginErr != nil {
		return nil, u.beginErr
	}
	if u.openTx {
		return nil, domain.ErrTxAlreadyOpen
	}
	u.openTx = true
	u.began++
	return u, nil
}

func (u *fakeUnitOfWork) Commit(ctx context.Context, tx port.TxHandle) error {
	if !u.openTx || tx != port.TxHandle(u) {
		return domain.ErrTxMismatch
	}
	u.openTx = false
	if u.commitErr != nil {
		return u.commitErr
	}
	u.committed++
	return nil
}

func (u *fakeUnitOfWork) Rollback(ctx context.Context, tx port.TxHandle) error {
	if !u.openTx || tx != port.TxHandle(u) {
		return nil
	}
	u.openTx = false
	u.rolledBack++
	return nil
}

type fakeUowFactory struct {
	uow      *fakeUnitOfWork
	newCalls int
}

func (f *fakeUowFactory) New() port.UnitOfWorkPort {
	f.newCalls++
	return f.uow
}

type fakeImageStorage struct {
	uploadKey   string
	uploadErr   error
	uploadCalls int

	deleteErr  error
	deletedKey []string
}

func (f *fakeImageStorage) Upload(ctx context.Context, content []byte, fileName, contentType, keyPrefix string) (string, error) {
	f.uploadCalls++
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return f.uploadKey, nil
}

func (f *fakeImageStorage) Delete(ctx context.Context, storedKey string) error {
	f.deletedKey = append(f.deletedKey, storedKey)
	return f.deleteErr
}

type publishedEvent struct {
	propertyID int64
	price      float64
}

type fakePropertyEvents struct {
	err     error
	created []publishedEvent
	priced  []publishedEvent
}

func (f *fakePropertyEvents) PropertyCreated(ctx context.Context, propertyID int64, price float64) error {
	f.created = append(f.created, publishedEvent{propertyID, price})
	return f.err
}

func (f *fakePropertyEvents) PriceChanged(ctx context.Context, propertyID int64, newPrice float64) error {
	f.priced = append(f.priced, publishedEvent{propertyID, newPrice})
	return f.err
}

type fakeURLBuilder struct{}

func (fakeURLBuilder) ToPublicURL(storedKey string, req domain.RequestInfo) string {
	return req.Scheme + "://" + req.Host + "/media/" + storedKey
}

var errStorage = errors.New("storage is down")
