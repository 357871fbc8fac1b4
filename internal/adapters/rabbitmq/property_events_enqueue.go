package rabbitmq_adapter

import (
	"context"
	"fmt"
	"time"

	"real-estate-service/internal/core/port"
	"real-estate-service/pkg/rabbitmq"
)

// Routing keys доменных событий.
const (
	RoutingKeyPropertyCreated = "property.created"
	RoutingKeyPriceChanged    = "property.price_changed"
)

type propertyCreatedEvent struct {
	PropertyID int64     `json:"property_id"`
	Price      float64   `json:"price"`
	OccurredAt time.Time `json:"occurred_at"`
}

type priceChangedEvent struct {
	PropertyID int64     `json:"property_id"`
	NewPrice   float64   `json:"new_price"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PropertyEventsAdapter публикует события объектов в обменник.
type PropertyEventsAdapter struct {
	publisher *rabbitmq.Publisher
}

func NewPropertyEventsAdapter(publisher *rabbitmq.Publisher) (*PropertyEventsAdapter, error) {
	if publisher == nil {
		return nil, fmt.Errorf("property events adapter: publisher is required")
	}
	return &PropertyEventsAdapter{publisher: publisher}, nil
}

func (a *PropertyEventsAdapter) PropertyCreated(ctx context.Context, propertyID int64, price float64) error {
	event := propertyCreatedEvent{
		PropertyID: propertyID,
		Price:      price,
		OccurredAt: time.Now().UTC(),
	}
	return a.publisher.PublishJSON(ctx, RoutingKeyPropertyCreated, event)
}

func (a *PropertyEventsAdapter) PriceChanged(ctx context.Context, propertyID int64, newPrice float64) error {
	event := priceChangedEvent{
		PropertyID: propertyID,
		NewPrice:   newPrice,
		OccurredAt: time.Now().UTC(),
	}
	return a.publisher.PublishJSON(ctx, RoutingKeyPriceChanged, event)
}

// NoopPropertyEvents используется, когда RabbitMQ не сконфигурирован.
type NoopPropertyEvents struct{}

func (NoopPropertyEvents) PropertyCreated(ctx context.Context, propertyID int64, price float64) error {
	return nil
}

func (NoopPropertyEvents) PriceChanged(ctx context.Context, propertyID int64, newPrice float64) error {
	return nil
}

var _ port.PropertyEventsPort = (*PropertyEventsAdapter)(nil)
var _ port.PropertyEventsPort = NoopPropertyEvents{}
