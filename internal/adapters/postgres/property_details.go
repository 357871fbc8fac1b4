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

// GetDetails читает объект вместе с владельцем, изображениями и
// трейсами. Порядок фиксирован: изображения по возрастанию ID, трейсы
// от новых к старым (дата, затем ID по убыванию).
func (r *PropertyRepository) GetDetails(ctx context.Context, propertyID int64) (*domain.PropertyDetails, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PropertyRepository",
		"method":      "GetDetails",
		"property_id": propertyID,
	})

	q := r.uow.q()

	var details domain.PropertyDetails
	var pStreet, pCity, pState, pZip *string
	var oStreet, oCity, oState, oZip *string
	err := q.QueryRow(ctx, `
		SELECT p.id, p.name, p.street, p.city, p.state, p.zip_code,
		       p.price, p.code_internal, p.year, p.owner_id,
		       o.id, o.name, o.street, o.city, o.state, o.zip_code, o.photo, o.birthday
		FROM properties p
		JOIN owners o ON o.id = p.owner_id
		WHERE p.id = $1`, propertyID,
	).Scan(
		&details.ID, &details.Name, &pStreet, &pCity, &pState, &pZip,
		&details.Price, &details.CodeInternal, &details.Year, &details.OwnerID,
		&details.Owner.ID, &details.Owner.Name, &oStreet, &oCity, &oState, &oZip,
		&details.Owner.Photo, &details.Owner.Birthday,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to load property with owner", err, nil)
		return nil, fmt.Errorf("failed to load property %d with owner: %w", propertyID, err)
	}
	details.Address = addressFromColumns(pStreet, pCity, pState, pZip)
	details.Owner.Address = addressFromColumns(oStreet, oCity, oState, oZip)

	images, err := r.loadImages(ctx, q, propertyID)
	if err != nil {
		logger.Error("Failed to load property images", err, nil)
		return nil, err
	}
	details.Images = images

	traces, err := r.loadTraces(ctx, q, propertyID)
	if err != nil {
		logger.Error("Failed to load property traces", err, nil)
		return nil, err
	}
	details.Traces = traces

	return &details, nil
}

func (r *PropertyRepository) loadImages(ctx context.Context, q querier, propertyID int64) ([]domain.PropertyImage, error) {
	rows, err := q.Query(ctx, `
		SELECT id, property_id, stored_key, enabled
		FROM property_images
		WHERE property_id = $1
		ORDER BY id ASC`, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query images of property %d: %w", propertyID, err)
	}
	defer rows.Close()

	images := make([]domain.PropertyImage, 0)
	for rows.Next() {
		var img domain.PropertyImage
		if err := rows.Scan(&img.ID, &img.PropertyID, &img.StoredKey, &img.Enabled); err != nil {
			return nil, fmt.Errorf("failed to scan image row: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during images iteration: %w", err)
	}
	return images, nil
}

func (r *PropertyRepository) loadTraces(ctx context.Context, q querier, propertyID int64) ([]domain.PriceTrace, error) {
	rows, err := q.Query(ctx, `
		SELECT id, property_id, date_of_change, name, value, tax
		FROM property_traces
		WHERE property_id = $1
		ORDER BY date_of_change DESC, id DESC`, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query traces of property %d: %w", propertyID, err)
	}
	defer rows.Close()

	traces := make([]domain.PriceTrace, 0)
	for rows.Next() {
		var tr domain.PriceTrace
		if err := rows.Scan(&tr.ID, &tr.PropertyID, &tr.DateOfChange, &tr.Name, &tr.Value, &tr.Tax); err != nil {
			return nil, fmt.Errorf("failed to scan trace row: %w", err)
		}
		traces = append(traces, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during traces iteration: %w", err)
	}
	return traces, nil
}

// FindWithFilters считает общее число совпадений и возвращает одну
// страницу. Сортировка фиксирована (цена, затем ID по возрастанию),
// чтобы пагинация была детерминированной между страницами.
func (r *PropertyRepository) FindWithFilters(ctx context.Context, filters domain.PropertyFilters) (*domain.PagedProperties, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PropertyRepository",
		"method":    "FindWithFilters",
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})

	whereClause, args := applyFilters(filters)
	q := r.uow.q()

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM properties p %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		logger.Error("Failed to count properties", err, port.Fields{"query": countQuery})
		return nil, fmt.Errorf("failed to count properties: %w", err)
	}

	result := &domain.PagedProperties{
		Items:    []domain.PropertySummary{},
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	}

	// Ничего не найдено - второй запрос не нужен.
	if total == 0 {
		return result, nil
	}

	dataQuery := fmt.Sprintf(`
		SELECT p.id, p.name, p.street, p.city, p.state, p.zip_code,
		       p.price, p.code_internal, p.year, p.owner_id
		FROM properties p
		%s
		ORDER BY p.price ASC, p.id ASC
		LIMIT $%d OFFSET $%d`,
		whereClause, len(args)+1, len(args)+2)

	offset := (filters.Page - 1) * filters.PageSize
	pageArgs := append(args, filters.PageSize, offset)

	rows, err := q.Query(ctx, dataQuery, pageArgs...)
	if err != nil {
		logger.Error("Failed to query properties page", err, nil)
		return nil, fmt.Errorf("failed to query properties page: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			s                        domain.PropertySummary
			street, city, state, zip *string
		)
		if err := rows.Scan(&s.ID, &s.Name, &street, &city, &state, &zip,
			&s.Price, &s.CodeInternal, &s.Year, &s.OwnerID); err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		s.Address = addressFromColumns(street, city, state, zip)
		result.Items = append(result.Items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during properties iteration: %w", err)
	}

	logger.Info("Properties page loaded", port.Fields{
		"total": total, "returned": len(result.Items),
	})
	return result, nil
}
