package postgres

import (
	"context"
	"errors"
	"fmt"

	"real-estate-service/internal/contextkeys"
	"real-estate-service/internal/core/domain"
	"real-estate-service/internal/core/port"

	"github.com/jackc/pgx/v5"
)

type PropertyRepository struct {
	uow *UnitOfWork
}

// addressColumns раскладывает опциональный Address по nullable-колонкам.
func addressColumns(a *domain.Address) (street, city, state, zip *string) {
	if a == nil {
		return nil, nil, nil, nil
	}
	return &a.Street, &a.City, &a.State, &a.ZipCode
}

// addressFromColumns собирает Address обратно; все колонки пустые -
// адреса нет.
func addressFromColumns(street, city, state, zip *string) *domain.Address {
	if street == nil && city == nil && state == nil && zip == nil {
		return nil
	}
	a := &domain.Address{}
	if street != nil {
		a.Street = *street
	}
	if city != nil {
		a.City = *city
	}
	if state != nil {
		a.State = *state
	}
	if zip != nil {
		a.ZipCode = *zip
	}
	return a
}

func (r *PropertyRepository) Create(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PropertyRepository",
		"method":    "Create",
	})

	street, city, state, zip := addressColumns(property.Address)
	err := r.uow.q().QueryRow(ctx, `
		INSERT INTO properties (name, street, city, state, zip_code, price, code_internal, year, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		property.Name, street, city, state, zip,
		property.Price, property.CodeInternal, property.Year, property.OwnerID,
	).Scan(&property.ID)
	if err != nil {
		logger.Error("Failed to insert property", err, nil)
		return nil, fmt.Errorf("failed to insert property: %w", err)
	}

	// Каскадная запись начальных трейсов.
	for i := range property.Traces {
		property.Traces[i].PropertyID = property.ID
		id, err := r.AddTrace(ctx, &property.Traces[i])
		if err != nil {
			return nil, err
		}
		property.Traces[i].ID = id
	}

	logger.Debug("Property inserted", port.Fields{"property_id": property.ID})
	return property, nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, propertyID int64) (*domain.Property, error) {
	var (
		p                        domain.Property
		street, city, state, zip *string
	)
	err := r.uow.q().QueryRow(ctx, `
		SELECT id, name, street, city, state, zip_code, price, code_internal, year, owner_id
		FROM properties
		WHERE id = $1`, propertyID,
	).Scan(&p.ID, &p.Name, &street, &city, &state, &zip, &p.Price, &p.CodeInternal, &p.Year, &p.OwnerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load property %d: %w", propertyID, err)
	}
	p.Address = addressFromColumns(street, city, state, zip)
	return &p, nil
}

func (r *PropertyRepository) Update(ctx context.Context, property *domain.Property) (bool, error) {
	street, city, state, zip := addressColumns(property.Address)
	tag, err := r.uow.q().Exec(ctx, `
		UPDATE properties
		SET name = $2, street = $3, city = $4, state = $5, zip_code = $6,
		    price = $7, code_internal = $8, year = $9, owner_id = $10
		WHERE id = $1`,
		property.ID, property.Name, street, city, state, zip,
		property.Price, property.CodeInternal, property.Year, property.OwnerID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update property %d: %w", property.ID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PropertyRepository) SetPrice(ctx context.Context, propertyID int64, newPrice float64) (int64, error) {
	tag, err := r.uow.q().Exec(ctx,
		"UPDATE properties SET price = $2 WHERE id = $1", propertyID, newPrice,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to set price of property %d: %w", propertyID, err)
	}
	return tag.RowsAffected(), nil
}

func (r *PropertyRepository) AddImage(ctx context.Context, image *domain.PropertyImage) (int64, error) {
	var id int64
	err := r.uow.q().QueryRow(ctx, `
		INSERT INTO property_images (property_id, stored_key, enabled)
		VALUES ($1, $2, $3)
		RETURNING id`,
		image.PropertyID, image.StoredKey, image.Enabled,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert image for property %d: %w", image.PropertyID, err)
	}
	return id, nil
}

func (r *PropertyRepository) AddTrace(ctx context.Context, trace *domain.PriceTrace) (int64, error) {
	var id int64
	err := r.uow.q().QueryRow(ctx, `
		INSERT INTO property_traces (property_id, date_of_change, name, value, tax)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		trace.PropertyID, trace.DateOfChange, trace.Name, trace.Value, trace.Tax,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert trace for property %d: %w", trace.PropertyID, err)
	}
	return id, nil
}

func (r *PropertyRepository) Exists(ctx context.Context, propertyID int64) (bool, error) {
	var exists bool
	err := r.uow.q().QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM properties WHERE id = $1)", propertyID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check property %d existence: %w", propertyID, err)
	}
	return exists, nil
}
