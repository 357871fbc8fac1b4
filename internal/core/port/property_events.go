package port

import "context"

// PropertyEventsPort публикует доменные события после успешного
// коммита. Публикация best-effort: ошибка логируется и не влияет на
// исход команды.
type PropertyEventsPort interface {
	PropertyCreated(ctx context.Context, propertyID int64, price float64) error
	PriceChanged(ctx context.Context, propertyID int64, newPrice float64) error
}
