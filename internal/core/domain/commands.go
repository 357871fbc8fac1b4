package domain

// CreatePropertyCommand - входные данные создания объекта. Структурная
// валидация выполняется на транспортном уровне, бизнес-инварианты
// (существование владельца, положительная цена) перепроверяет ядро.
type CreatePropertyCommand struct {
	Name         string
	Address      *Address
	Price        float64
	CodeInternal string
	Year         *int16
	OwnerID      int64

	CreateInitialTrace bool
	InitialTraceName   string
	InitialTax         float64
}

// UpdatePropertyCommand - полная замена изменяемых полей по ID.
type UpdatePropertyCommand struct {
	PropertyID   int64
	Name         string
	Address      *Address
	Price        float64
	CodeInternal string
	Year         *int16
	OwnerID      int64
}

// ChangePriceCommand меняет только цену.
type ChangePriceCommand struct {
	PropertyID int64
	NewPrice   float64
}

// ImageUpload - сырое содержимое загружаемого изображения.
type ImageUpload struct {
	FileName    string
	ContentType string
	Content     []byte
}

// AddPropertyImageCommand привязывает изображение к объекту.
type AddPropertyImageCommand struct {
	PropertyID int64
	Image      ImageUpload
	Enabled    bool
}
