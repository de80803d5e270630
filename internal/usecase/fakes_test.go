package usecase

import (
	"context"
	"sync"

	"shopeasy/internal/domain/entity"
	"shopeasy/pkg/errors"
)

// fakeGateway is an in-memory DocumentGateway with the same
// append-without-dedup merge semantics as the real backend.
type fakeGateway struct {
	mu   sync.Mutex
	docs map[string]map[string]interface{}

	// failReplaceIn makes ReplaceArrayField fail for one collection,
	// to exercise partially completed multi-step workflows.
	failReplaceIn string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{docs: make(map[string]map[string]interface{})}
}

func (g *fakeGateway) key(collection, userID string) string {
	return collection + "/" + userID
}

func (g *fakeGateway) ReadDocument(_ context.Context, collection, userID string) (map[string]interface{}, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	doc, ok := g.docs[g.key(collection, userID)]
	if !ok {
		return nil, nil
	}

	out := make(map[string]interface{}, len(doc))
	for field, v := range doc {
		if arr, ok := v.([]interface{}); ok {
			copied := make([]interface{}, len(arr))
			copy(copied, arr)
			out[field] = copied
			continue
		}
		out[field] = v
	}
	return out, nil
}

func (g *fakeGateway) MergeArrayField(_ context.Context, collection, userID, field string, element map[string]interface{}) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := g.key(collection, userID)
	doc, ok := g.docs[key]
	if !ok {
		g.docs[key] = map[string]interface{}{field: []interface{}{element}}
		return nil
	}

	arr, _ := doc[field].([]interface{})
	doc[field] = append(arr, element)
	return nil
}

func (g *fakeGateway) ReplaceArrayField(_ context.Context, collection, userID, field string, elements []map[string]interface{}) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.failReplaceIn == collection {
		return errors.Transient("Backend unavailable", nil)
	}

	arr := make([]interface{}, len(elements))
	for i, el := range elements {
		arr[i] = el
	}

	key := g.key(collection, userID)
	if doc, ok := g.docs[key]; ok {
		doc[field] = arr
		return nil
	}
	g.docs[key] = map[string]interface{}{field: arr}
	return nil
}

// rawField returns the stored array for assertions on the persisted
// representation.
func (g *fakeGateway) rawField(collection, userID, field string) []interface{} {
	g.mu.Lock()
	defer g.mu.Unlock()

	doc, ok := g.docs[g.key(collection, userID)]
	if !ok {
		return nil
	}
	arr, _ := doc[field].([]interface{})
	return arr
}

type mockCatalog struct {
	products map[string]*entity.Product
}

func newMockCatalog(products ...*entity.Product) *mockCatalog {
	m := &mockCatalog{products: make(map[string]*entity.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockCatalog) Create(_ context.Context, product *entity.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *mockCatalog) GetByID(_ context.Context, id string) (*entity.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	return product, nil
}

func (m *mockCatalog) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockCatalog) ListByCategory(_ context.Context, category string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}
