package service

import (
	"context"
	"log"

	"github.com/cosmassist/platform/internal/events"
	"github.com/cosmassist/platform/internal/product"
)

// ProductStore is the persistence surface the service needs.
type ProductStore interface {
	List(ctx context.Context, params product.ListParams) ([]product.Product, error)
	GetByID(ctx context.Context, id int) (*product.Product, error)
	GetByName(ctx context.Context, name string) (*product.Product, error)
	Create(ctx context.Context, req product.CreateProductRequest) (*product.Product, error)
	Update(ctx context.Context, id int, req product.UpdateProductRequest) (*product.Product, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

// EventPublisher is the slice of the event bus the service needs.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// ProductService owns catalog reads and writes and announces mutations on the
// product event stream so read-side consumers can invalidate their caches.
type ProductService struct {
	store     ProductStore
	publisher EventPublisher
}

func NewProductService(store ProductStore, publisher EventPublisher) *ProductService {
	return &ProductService{store: store, publisher: publisher}
}

func (s *ProductService) List(ctx context.Context, params product.ListParams) ([]product.Product, error) {
	return s.store.List(ctx, params)
}

func (s *ProductService) Get(ctx context.Context, id int) (*product.Product, error) {
	return s.store.GetByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, req product.CreateProductRequest) (*product.Product, error) {
	p, err := s.store.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.ProductCreated, events.ProductCreatedEvent{
		ProductID: p.ID,
		Name:      p.Name,
		Category:  p.Category,
	})
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id int, req product.UpdateProductRequest) (*product.Product, error) {
	p, err := s.store.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.ProductUpdated, events.ProductUpdatedEvent{ProductID: p.ID})
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.ProductDeleted, events.ProductDeletedEvent{ProductID: id})
	return nil
}

func (s *ProductService) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

func (s *ProductService) publish(ctx context.Context, eventType string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.ProductEventsStream, eventType, data); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
