package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"real-estate-service/internal/contextkeys"
	"real-estate-service/internal/core/domain"
	"real-estate-service/internal/core/port"
	"real-estate-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

// Лимит на разбор multipart-формы в памяти, остальное уходит во
// временные файлы.
const maxMultipartMemory = 32 << 20

type PropertyHandler struct {
	createPropertyUC usecases_port.CreatePropertyUseCasePort
	updatePropertyUC usecases_port.UpdatePropertyUseCasePort
	changePriceUC    usecases_port.ChangePriceUseCasePort
	addImageUC       usecases_port.AddPropertyImageUseCasePort
	getDetailsUC     usecases_port.GetPropertyDetailsUseCasePort
	listPropertiesUC usecases_port.ListPropertiesUseCasePort
}

func NewPropertyHandler(
	createPropertyUC usecases_port.CreatePropertyUseCasePort,
	updatePropertyUC usecases_port.UpdatePropertyUseCasePort,
	changePriceUC usecases_port.ChangePriceUseCasePort,
	addImageUC usecases_port.AddPropertyImageUseCasePort,
	getDetailsUC usecases_port.GetPropertyDetailsUseCasePort,
	listPropertiesUC usecases_port.ListPropertiesUseCasePort) *PropertyHandler {
	return &PropertyHandler{
		createPropertyUC: createPropertyUC,
		updatePropertyUC: updatePropertyUC,
		changePriceUC:    changePriceUC,
		addImageUC:       addImageUC,
		getDetailsUC:     getDetailsUC,
		listPropertiesUC: listPropertiesUC,
	}
}

// requestInfoFrom достает схему и хост входящего запроса. За прокси
// доверяем X-Forwarded-Proto.
func requestInfoFrom(r *http.Request) domain.RequestInfo {
	scheme := r.Header.Get("X-Forwarded-Proto")
	if scheme == "" {
		if r.TLS != nil {
			scheme = "https"
		} else {
			scheme = "http"
		}
	}
	return domain.RequestInfo{Scheme: scheme, Host: r.Host}
}

func propertyIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "propertyID"), 10, 64)
}

// CreateProperty обрабатывает POST /api/v1/properties
func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	var req CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Invalid request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := domain.CreatePropertyCommand{
		Name:         req.Name,
		Address:      addressToDomain(req.Address),
		Price:        req.Price,
		CodeInternal: req.CodeInternal,
		Year:         req.Year,
		OwnerID:      req.OwnerID,
	}
	if req.InitialTrace != nil {
		cmd.CreateInitialTrace = true
		cmd.InitialTraceName = req.InitialTrace.Name
		cmd.InitialTax = req.InitialTrace.Tax
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler":  "CreateProperty",
		"owner_id": req.OwnerID,
	})
	handlerLogger.Debug("Processing request to create property", nil)

	view, err := h.createPropertyUC.Execute(r.Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPrice):
			WriteJSONError(w, http.StatusBadRequest, "Price must be greater than zero")
		case errors.Is(err, domain.ErrOwnerNotFound):
			WriteJSONError(w, http.StatusNotFound, "Owner not found")
		default:
			handlerLogger.Error("Use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to create property")
		}
		return
	}

	handlerLogger.Info("Property created", port.Fields{"property_id": view.ID})
	RespondWithJSON(w, http.StatusCreated, detailsToResponse(view))
}

// UpdateProperty обрабатывает PUT /api/v1/properties/{propertyID}
func (h *PropertyHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	propertyID, err := propertyIDFromURL(r)
	if err != nil {
		logger.Warn("Invalid property ID format", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid property ID format")
		return
	}

	var req UpdatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Invalid request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := domain.UpdatePropertyCommand{
		PropertyID:   propertyID,
		Name:         req.Name,
		Address:      addressToDomain(req.Address),
		Price:        req.Price,
		CodeInternal: req.CodeInternal,
		Year:         req.Year,
		OwnerID:      req.OwnerID,
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler":     "UpdateProperty",
		"property_id": propertyID,
	})

	updated, err := h.updatePropertyUC.Execute(r.Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPrice):
			WriteJSONError(w, http.StatusBadRequest, "Price must be greater than zero")
		case errors.Is(err, domain.ErrOwnerNotFound):
			WriteJSONError(w, http.StatusNotFound, "Owner not found")
		default:
			handlerLogger.Error("Use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to update property")
		}
		return
	}
	if !updated {
		WriteJSONError(w, http.StatusNotFound, "Property not found")
		return
	}

	handlerLogger.Info("Property updated", nil)
	RespondWithJSON(w, http.StatusOK, UpdatedResponse{Updated: true})
}

// ChangePrice обрабатывает PATCH /api/v1/properties/{propertyID}/price
func (h *PropertyHandler) ChangePrice(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	propertyID, err := propertyIDFromURL(r)
	if err != nil {
		logger.Warn("Invalid property ID format", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid property ID format")
		return
	}

	var req ChangePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Invalid request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler":     "ChangePrice",
		"property_id": propertyID,
	})

	updated, err := h.changePriceUC.Execute(r.Context(), domain.ChangePriceCommand{
		PropertyID: propertyID,
		NewPrice:   req.Price,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPrice) {
			WriteJSONError(w, http.StatusBadRequest, "Price must be greater than zero")
			return
		}
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to change price")
		return
	}
	if !updated {
		WriteJSONError(w, http.StatusNotFound, "Property not found")
		return
	}

	handlerLogger.Info("Price changed", port.Fields{"new_price": req.Price})
	RespondWithJSON(w, http.StatusOK, UpdatedResponse{Updated: true})
}

// AddImage обрабатывает POST /api/v1/properties/{propertyID}/images
func (h *PropertyHandler) AddImage(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	propertyID, err := propertyIDFromURL(r)
	if err != nil {
		logger.Warn("Invalid property ID format", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid property ID format")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		logger.Warn("Invalid multipart form", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Form file 'file' is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read uploaded file", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}

	// Изображение по умолчанию включено, если явно не выключили.
	enabled := true
	if raw := r.FormValue("enabled"); raw != "" {
		if v, parseErr := strconv.ParseBool(raw); parseErr == nil {
			enabled = v
		}
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler":     "AddImage",
		"property_id": propertyID,
		"file_name":   header.Filename,
		"size_bytes":  len(content),
	})

	image, err := h.addImageUC.Execute(r.Context(), domain.AddPropertyImageCommand{
		PropertyID: propertyID,
		Image: domain.ImageUpload{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Content:     content,
		},
		Enabled: enabled,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPropertyNotFound):
			WriteJSONError(w, http.StatusNotFound, "Property not found")
		case errors.Is(err, domain.ErrUnsupportedImage):
			WriteJSONError(w, http.StatusBadRequest, "Unsupported image type")
		case errors.Is(err, domain.ErrImageTooLarge):
			WriteJSONError(w, http.StatusBadRequest, "Image is too large")
		default:
			handlerLogger.Error("Use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to add image")
		}
		return
	}

	handlerLogger.Info("Image added", port.Fields{"image_id": image.ID})
	RespondWithJSON(w, http.StatusCreated, PropertyImageResponse{
		ID:         image.ID,
		PropertyID: image.PropertyID,
		Enabled:    image.Enabled,
		StoredKey:  image.StoredKey,
	})
}

// GetPropertyDetails обрабатывает GET /api/v1/properties/{propertyID}
func (h *PropertyHandler) GetPropertyDetails(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	propertyID, err := propertyIDFromURL(r)
	if err != nil {
		logger.Warn("Invalid property ID format", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid property ID format")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler":     "GetPropertyDetails",
		"property_id": propertyID,
	})
	handlerLogger.Debug("Processing request to get property details", nil)

	view, err := h.getDetailsUC.Execute(r.Context(), propertyID, requestInfoFrom(r))
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve property")
		return
	}
	if view == nil {
		WriteJSONError(w, http.StatusNotFound, "Property not found")
		return
	}

	RespondWithJSON(w, http.StatusOK, detailsToResponse(view))
}

// ListProperties обрабатывает GET /api/v1/properties
func (h *PropertyHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	pageSize, _ := strconv.Atoi(query.Get("pageSize"))

	filters := domain.PropertyFilters{
		Address: domain.AddressFilters{
			Street:  query.Get("street"),
			City:    query.Get("city"),
			State:   query.Get("state"),
			ZipCode: query.Get("zipCode"),
		},
		MinPrice:        parseFloat(query, "minPrice"),
		MaxPrice:        parseFloat(query, "maxPrice"),
		Year:            parseInt16(query, "year"),
		HasEnabledImage: parseBool(query, "hasEnabledImage"),
		Page:            page,
		PageSize:        pageSize,
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler": "ListProperties",
		"page":    page,
	})
	handlerLogger.Debug("Processing request to list properties", nil)

	result, err := h.listPropertiesUC.Execute(r.Context(), filters)
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve properties")
		return
	}

	response := PaginatedPropertiesResponse{
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
		Data:     make([]PropertySummaryResponse, len(result.Items)),
	}
	for i, item := range result.Items {
		response.Data[i] = PropertySummaryResponse{
			ID:           item.ID,
			Name:         item.Name,
			Address:      addressToDTO(item.Address),
			Price:        item.Price,
			CodeInternal: item.CodeInternal,
			Year:         item.Year,
			OwnerID:      item.OwnerID,
		}
	}

	handlerLogger.Info("Successfully listed properties", port.Fields{
		"total_found":   result.Total,
		"items_on_page": len(result.Items),
	})
	RespondWithJSON(w, http.StatusOK, response)
}
