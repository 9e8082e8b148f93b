package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tgienger/crmdash/internal/api"
	"github.com/tgienger/crmdash/internal/models"
)

// fakeCatalog is an in-memory ProductService
type fakeCatalog struct {
	mu       sync.Mutex
	products []api.Product
	created  api.Product
	updated  api.Product
	err      error
	block    chan struct{} // when set, calls wait on it
	calls    int
}

func (f *fakeCatalog) wait() error {
	f.mu.Lock()
	f.calls++
	block, err := f.block, f.err
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return err
}

func (f *fakeCatalog) ListProducts(ctx context.Context) ([]api.Product, error) {
	if err := f.wait(); err != nil {
		return nil, err
	}
	return f.products, nil
}

func (f *fakeCatalog) AddProduct(ctx context.Context, p api.Product) (api.Product, error) {
	if err := f.wait(); err != nil {
		return api.Product{}, err
	}
	return f.created, nil
}

func (f *fakeCatalog) UpdateProduct(ctx context.Context, id string, p api.Product) (api.Product, error) {
	if err := f.wait(); err != nil {
		return api.Product{}, err
	}
	return f.updated, nil
}

func (f *fakeCatalog) DeleteProduct(ctx context.Context, id string) error {
	return f.wait()
}

func seededStore(t *testing.T, svc *fakeCatalog) *ProductStore {
	t.Helper()
	svc.products = []api.Product{
		{ID: "1", Title: "Essence Mascara", Price: 9.99, Category: "beauty", Stock: 5, Thumbnail: "https://cdn/1.png"},
		{ID: "2", Title: "Eyeshadow Palette", Price: 19.99, Category: "beauty", Stock: 44},
		{ID: "3", Title: "Bedside Table", Price: 89.5, Category: "furniture", Stock: 0},
	}
	s := NewProductStore(svc)
	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	return s
}

func TestFetchAllReplacesItems(t *testing.T) {
	svc := &fakeCatalog{}
	s := seededStore(t, svc)

	st := s.State()
	if len(st.Items) != len(svc.products) {
		t.Fatalf("Expected %d items, got %d", len(svc.products), len(st.Items))
	}
	for i, p := range st.Items {
		if p.ID != string(svc.products[i].ID) {
			t.Errorf("Item %d: expected id %s, got %s", i, svc.products[i].ID, p.ID)
		}
		if p.Status != models.ProductActive {
			t.Errorf("Item %d: expected default status active, got %s", i, p.Status)
		}
	}
	if st.Items[0].Name != "Essence Mascara" || st.Items[0].Image != "https://cdn/1.png" {
		t.Errorf("Expected title/thumbnail to map to name/image, got %+v", st.Items[0])
	}
	if st.Loading || st.Err != "" {
		t.Errorf("Expected idle state, got loading=%v err=%q", st.Loading, st.Err)
	}
}

func TestFetchAllFailureKeepsItems(t *testing.T) {
	svc := &fakeCatalog{}
	s := seededStore(t, svc)

	svc.err = &api.HTTPError{StatusCode: 500, Message: "boom"}
	if err := s.FetchAll(context.Background()); err == nil {
		t.Fatal("Expected error")
	}

	st := s.State()
	if len(st.Items) != 3 {
		t.Errorf("Expected cache to be kept, got %d items", len(st.Items))
	}
	if st.Err != "boom" {
		t.Errorf("Expected error message boom, got %q", st.Err)
	}
	if st.Loading {
		t.Error("Expected loading to be cleared after failure")
	}
}

func TestAddAppendsWithServiceID(t *testing.T) {
	svc := &fakeCatalog{created: api.Product{ID: "195", Title: "Standing Desk"}}
	s := seededStore(t, svc)

	product, err := s.Add(context.Background(), models.Product{
		Name:     "Desk",
		Price:    250,
		Category: "furniture",
		Stock:    4,
		Image:    "https://img/desk.png",
		Status:   models.ProductInactive,
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if product.ID != "195" {
		t.Errorf("Expected service id 195, got %s", product.ID)
	}
	if product.Name != "Standing Desk" {
		t.Errorf("Expected service title to win, got %s", product.Name)
	}
	if product.Price != 250 || product.Image != "https://img/desk.png" || product.Stock != 4 {
		t.Errorf("Expected local fallbacks for omitted fields, got %+v", product)
	}
	if product.Status != models.ProductInactive {
		t.Errorf("Expected local status, got %s", product.Status)
	}

	count := 0
	for _, p := range s.State().Items {
		if p.ID == "195" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected new product exactly once, found %d", count)
	}
}

func TestAddWithoutIDFails(t *testing.T) {
	svc := &fakeCatalog{created: api.Product{Title: "No id"}}
	s := seededStore(t, svc)

	_, err := s.Add(context.Background(), models.Product{Name: "No id"})
	if !errors.Is(err, ErrMissingID) {
		t.Fatalf("Expected ErrMissingID, got %v", err)
	}
	if st := s.State(); len(st.Items) != 3 || st.Err == "" {
		t.Errorf("Expected unchanged items and an error, got %d items err=%q", len(st.Items), st.Err)
	}
}

func TestUpdateReplacesMatchingEntry(t *testing.T) {
	svc := &fakeCatalog{updated: api.Product{ID: "2", Title: "Palette v2", Price: 24.5}}
	s := seededStore(t, svc)

	_, err := s.Update(context.Background(), "2", models.Product{
		Name:     "Palette",
		Category: "beauty",
		Stock:    40,
		Status:   models.ProductActive,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	var matches []models.Product
	for _, p := range s.State().Items {
		if p.ID == "2" {
			matches = append(matches, p)
		}
	}
	if len(matches) != 1 {
		t.Fatalf("Expected exactly one entry with id 2, got %d", len(matches))
	}
	got := matches[0]
	if got.Name != "Palette v2" || got.Price != 24.5 || got.Stock != 40 || got.Category != "beauty" {
		t.Errorf("Unexpected merged product %+v", got)
	}
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	svc := &fakeCatalog{updated: api.Product{ID: "999", Title: "Ghost"}}
	s := seededStore(t, svc)
	before := s.State().Items

	if _, err := s.Update(context.Background(), "999", models.Product{Name: "Ghost"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	after := s.State().Items
	if len(after) != len(before) {
		t.Fatalf("Expected %d items, got %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("Item %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestDeleteRemovesEntry(t *testing.T) {
	svc := &fakeCatalog{}
	s := seededStore(t, svc)

	if err := s.Delete(context.Background(), "1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	for _, p := range s.State().Items {
		if p.ID == "1" {
			t.Fatal("Expected product 1 to be removed")
		}
	}
	if n := len(s.State().Items); n != 2 {
		t.Errorf("Expected 2 items, got %d", n)
	}

	// Unknown id: the call succeeds, nothing changes locally
	if err := s.Delete(context.Background(), "nope"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n := len(s.State().Items); n != 2 {
		t.Errorf("Expected 2 items, got %d", n)
	}
}

func TestDeleteFailureKeepsEntry(t *testing.T) {
	svc := &fakeCatalog{}
	s := seededStore(t, svc)

	svc.err = errors.New("connection refused")
	if err := s.Delete(context.Background(), "1"); err == nil {
		t.Fatal("Expected error")
	}
	st := s.State()
	if len(st.Items) != 3 {
		t.Errorf("Expected 3 items, got %d", len(st.Items))
	}
	if st.Err != "connection refused" {
		t.Errorf("Expected error to be recorded, got %q", st.Err)
	}
}

func TestLoadingTracksInflightCalls(t *testing.T) {
	svc := &fakeCatalog{}
	s := seededStore(t, svc)

	svc.mu.Lock()
	svc.block = make(chan struct{})
	svc.mu.Unlock()

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.FetchAll(context.Background())
		}()
	}

	// Wait until both calls reached the service
	for {
		svc.mu.Lock()
		calls := svc.calls
		svc.mu.Unlock()
		if calls == 3 {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if !s.State().Loading {
		t.Error("Expected loading while calls are in flight")
	}

	close(svc.block)
	wg.Wait()
	if s.State().Loading {
		t.Error("Expected loading to be cleared once all calls completed")
	}
}
