package store

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/tgienger/crmdash/internal/api"
	"github.com/tgienger/crmdash/internal/models"
)

// ErrMissingID is returned when the service creates a product without an id
var ErrMissingID = errors.New("product service did not assign an id")

// ProductService is the remote catalog
type ProductService interface {
	ListProducts(ctx context.Context) ([]api.Product, error)
	AddProduct(ctx context.Context, p api.Product) (api.Product, error)
	UpdateProduct(ctx context.Context, id string, p api.Product) (api.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// ProductsState is a snapshot of the products container
type ProductsState struct {
	Items   []models.Product
	Loading bool
	Err     string
}

// ProductStore caches the remote catalog. Concurrent calls are not
// serialized; the last call to complete wins for an overlapping entry.
type ProductStore struct {
	mu       sync.RWMutex
	svc      ProductService
	items    []models.Product
	inflight int
	err      string
}

func NewProductStore(svc ProductService) *ProductStore {
	return &ProductStore{svc: svc}
}

// begin marks a call in flight and clears the previous error
func (s *ProductStore) begin() {
	s.mu.Lock()
	s.inflight++
	s.err = ""
	s.mu.Unlock()
}

// finish must be called with the lock held
func (s *ProductStore) finish(op string, err error) {
	s.inflight--
	if err != nil {
		s.err = failureMessage(err, "Failed to "+op)
		log.Printf("products %s failed: %v", op, err)
	}
}

// FetchAll replaces the cache with the service's catalog
func (s *ProductStore) FetchAll(ctx context.Context) error {
	s.begin()
	remote, err := s.svc.ListProducts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.finish("fetch products", err)
	if err != nil {
		return err
	}

	items := make([]models.Product, 0, len(remote))
	for _, p := range remote {
		items = append(items, fromService(p, models.Product{}))
	}
	s.items = items
	return nil
}

// Add creates p remotely and appends the created record
func (s *ProductStore) Add(ctx context.Context, p models.Product) (models.Product, error) {
	s.begin()
	created, err := s.svc.AddProduct(ctx, toService(p))
	if err == nil && created.ID == "" {
		err = ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.finish("add product", err)
	if err != nil {
		return models.Product{}, err
	}

	product := fromService(created, p)
	s.items = append(s.items, product)
	return product, nil
}

// Update replaces the product with id. An id missing from the cache is
// left missing even when the service accepts the update.
func (s *ProductStore) Update(ctx context.Context, id string, p models.Product) (models.Product, error) {
	s.begin()
	updated, err := s.svc.UpdateProduct(ctx, id, toService(p))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.finish("update product", err)
	if err != nil {
		return models.Product{}, err
	}

	p.ID = id
	product := fromService(updated, p)
	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i] = product
			break
		}
	}
	return product, nil
}

// Delete removes the product with id
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	s.begin()
	err := s.svc.DeleteProduct(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.finish("delete product", err)
	if err != nil {
		return err
	}

	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	return nil
}

// State returns a copy of the current state
func (s *ProductStore) State() ProductsState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]models.Product, len(s.items))
	copy(items, s.items)
	return ProductsState{Items: items, Loading: s.inflight > 0, Err: s.err}
}

// toService maps local field names to the service's
func toService(p models.Product) api.Product {
	return api.Product{
		Title:       p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		Thumbnail:   p.Image,
		Status:      string(p.Status),
	}
}

// fromService merges a service record with the locally supplied one.
// Precedence per field: service value, then local value, then zero value.
// Status is never echoed by the service and always comes from local.
func fromService(remote api.Product, local models.Product) models.Product {
	status := local.Status
	if status == "" {
		status = models.ProductActive
	}
	return models.Product{
		ID:          firstNonZero(string(remote.ID), local.ID),
		Name:        firstNonZero(remote.Title, local.Name),
		Description: firstNonZero(remote.Description, local.Description),
		Price:       firstNonZero(remote.Price, local.Price),
		Category:    firstNonZero(remote.Category, local.Category),
		Stock:       firstNonZero(remote.Stock, local.Stock),
		Image:       firstNonZero(remote.Thumbnail, local.Image),
		Status:      status,
	}
}

func firstNonZero[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
