package catalog_test

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// memProductStore almacena productos en memoria. El mutex serializa las
// transacciones del fakeTxRunner igual que el bloqueo de fila serializa las
// compras concurrentes en PostgreSQL.
type memProductStore struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	writes   int // cantidad de Update/Create/Delete aplicados
}

func newMemProductStore() *memProductStore {
	return &memProductStore{products: map[string]*entity.Product{}}
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

// memProductRepo implementa repository.ProductRepository sobre el store.
// locked indica si el caller ya tiene el mutex (dentro de una "transacción").
type memProductRepo struct {
	store  *memProductStore
	locked bool
}

func newMemProductRepo(store *memProductStore) *memProductRepo {
	return &memProductRepo{store: store}
}

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *memProductRepo) Create(p *entity.Product) error {
	defer r.lock()()
	r.store.products[p.ID] = copyProduct(p)
	r.store.writes++
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	defer r.lock()()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) Update(p *entity.Product) error {
	defer r.lock()()
	r.store.products[p.ID] = copyProduct(p)
	r.store.writes++
	return nil
}

func (r *memProductRepo) Delete(id string) error {
	defer r.lock()()
	delete(r.store.products, id)
	r.store.writes++
	return nil
}

func (r *memProductRepo) List(filter repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	defer r.lock()()
	var all []*entity.Product
	for _, p := range r.store.products {
		if matchesFilter(p, filter) {
			all = append(all, copyProduct(p))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *memProductRepo) Count(filter repository.ProductFilter) (int, error) {
	defer r.lock()()
	n := 0
	for _, p := range r.store.products {
		if matchesFilter(p, filter) {
			n++
		}
	}
	return n, nil
}

func matchesFilter(p *entity.Product, f repository.ProductFilter) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

// fakeTxRunner serializa cada transacción con el mutex del store y restaura
// el estado previo si fn falla (rollback).
type fakeTxRunner struct {
	store *memProductStore
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(products repository.ProductRepository) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snapshot := make(map[string]*entity.Product, len(r.store.products))
	for id, p := range r.store.products {
		snapshot[id] = copyProduct(p)
	}
	writesBefore := r.store.writes

	if err := fn(&memProductRepo{store: r.store, locked: true}); err != nil {
		r.store.products = snapshot
		r.store.writes = writesBefore
		return err
	}
	return nil
}
