package http_test

import (
	"context"
	"sync"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// Fakes en memoria para montar la app completa sin PostgreSQL ni SMTP.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func copyUser(u *entity.User) *entity.User {
	c := *u
	if u.VerificationOTP != nil {
		otp := *u.VerificationOTP
		c.VerificationOTP = &otp
	}
	if u.OTPExpires != nil {
		exp := *u.OTPExpires
		c.OTPExpires = &exp
	}
	c.Blacklist = append([]string(nil), u.Blacklist...)
	return &c
}

func (r *memUserRepo) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = copyUser(u)
	return nil
}

func (r *memUserRepo) FindByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

func (r *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = copyUser(u)
	return nil
}

// otpFor devuelve el código vigente persistido para un usuario.
func (r *memUserRepo) otpFor(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok && u.VerificationOTP != nil {
		return *u.VerificationOTP
	}
	return ""
}

type memMailer struct{}

func (memMailer) SendVerificationCode(email, firstName, lastName, otp string) error { return nil }

// memProductRepo implementa el puerto de productos sobre un map; suficiente
// para los flujos HTTP (la compra concurrente se cubre en application/catalog).
type memProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: map[string]*entity.Product{}}
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func (r *memProductRepo) Create(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = copyProduct(p)
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) Update(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = copyProduct(p)
	return nil
}

func (r *memProductRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) List(filter repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.Product
	for _, p := range r.products {
		all = append(all, copyProduct(p))
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *memProductRepo) Count(repository.ProductFilter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.products), nil
}

// memTxRunner pasa el mismo repo al closure; rollback no es necesario en los
// escenarios HTTP porque la compra solo escribe después de validar.
type memTxRunner struct {
	repo *memProductRepo
}

func (r *memTxRunner) Run(ctx context.Context, fn func(products repository.ProductRepository) error) error {
	return fn(r.repo)
}
