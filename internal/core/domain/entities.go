package domain

import "time"

// Address - вложенный value object, собственной идентичности не имеет.
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
}

func (a Address) String() string {
	return a.Street + ", " + a.City + ", " + a.State + " " + a.ZipCode
}

// Owner - владелец недвижимости. Существование владельца проверяется
// до того, как Property начнет на него ссылаться.
type Owner struct {
	ID       int64
	Name     string
	Address  *Address
	Photo    *string
	Birthday *time.Time
}

// Property - агрегат объекта недвижимости. ID назначается хранилищем
// при создании и далее не меняется. Price всегда > 0.
type Property struct {
	ID           int64
	Name         string
	Address      *Address
	Price        float64
	CodeInternal string
	Year         *int16
	OwnerID      int64

	Images []PropertyImage
	Traces []PriceTrace
}

// PropertyImage принадлежит ровно одному Property. StoredKey выдает
// blob-хранилище, клиент его никогда не задает.
type PropertyImage struct {
	ID         int64
	PropertyID int64
	StoredKey  string
	Enabled    bool
}

// PriceTrace - неизменяемая историческая запись об изменении цены.
// Только добавляется, никогда не правится и не удаляется.
type PriceTrace struct {
	ID           int64
	PropertyID   int64
	DateOfChange time.Time
	Name         string
	Value        float64
	Tax          float64
}

// PropertyDetails - представление для детального просмотра: агрегат
// вместе с владельцем, изображения по возрастанию ID, трейсы от новых
// к старым.
type PropertyDetails struct {
	Property
	Owner Owner
}

// RequestInfo - схема и хост входящего запроса, передаются в use case
// явно вместо обращения к глобальному HTTP-контексту.
type RequestInfo struct {
	Scheme string
	Host   string
}

// ImageView - изображение с уже разрешенным публичным URL.
type ImageView struct {
	ID        int64
	StoredKey string
	URL       string
	Enabled   bool
}

// PropertyDetailsView - результат Get-Detail: публичные URL изображений
// уже разрешены через ImageURLBuilderPort.
type PropertyDetailsView struct {
	ID           int64
	Name         string
	Address      *Address
	Price        float64
	CodeInternal string
	Year         *int16
	Owner        Owner
	Images       []ImageView
	Traces       []PriceTrace
}
