package service

import (
	"context"
	"sort"
	"sync"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the ordering and not-found
// behavior of the gorm implementations so services can be exercised
// without a database.

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[uuid.UUID]model.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]model.Customer)}
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *fakeCustomerRepo) List(_ context.Context, status string) ([]model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]model.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		if status == "" || c.Status == status {
			res = append(res, c)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].PurchaseDate.After(res[j].PurchaseDate)
	})
	return res, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.customers[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.customers, id)
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]model.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]model.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *fakeProductRepo) FindBySlug(_ context.Context, slug string) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) List(_ context.Context, filters repository.ProductFilters) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		if filters.Published != nil && p.Published != *filters.Published {
			continue
		}
		if filters.Category != "" && p.Category != filters.Category {
			continue
		}
		if filters.Brand != "" && p.Brand != filters.Brand {
			continue
		}
		if filters.NewArrival && !p.IsNewArrival {
			continue
		}
		if filters.LimitedStock && !p.IsLimitedStock {
			continue
		}
		if filters.Deal && !p.IsDeal {
			continue
		}
		if filters.TopHighlight && !p.IsTopHighlight {
			continue
		}
		if filters.BottomHighlight && !p.IsBottomHighlight {
			continue
		}
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	if filters.Limit > 0 && len(res) > filters.Limit {
		res = res[:filters.Limit]
	}
	return res, nil
}

func (r *fakeProductRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[uuid.UUID]model.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uuid.UUID]model.Review)}
}

func (r *fakeReviewRepo) Create(_ context.Context, rv *model.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rv.ID == uuid.Nil {
		rv.ID = uuid.New()
	}
	r.reviews[rv.ID] = *rv
	return nil
}

func (r *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &rv, nil
}

func (r *fakeReviewRepo) List(_ context.Context, status string) ([]model.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]model.Review, 0, len(r.reviews))
	for _, rv := range r.reviews {
		if status == "" || rv.Status == status {
			res = append(res, rv)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

func (r *fakeReviewRepo) Update(_ context.Context, rv *model.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[rv.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.reviews[rv.ID] = *rv
	return nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reviews, id)
	return nil
}

type fakeSettingsRepo struct {
	mu       sync.Mutex
	settings *model.SiteSettings
	pages    map[string]model.Page
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{pages: make(map[string]model.Page)}
}

func (r *fakeSettingsRepo) Get(_ context.Context) (*model.SiteSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.settings == nil {
		return nil, gorm.ErrRecordNotFound
	}
	s := *r.settings
	return &s, nil
}

func (r *fakeSettingsRepo) Save(_ context.Context, settings *model.SiteSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := *settings
	r.settings = &s
	return nil
}

func (r *fakeSettingsRepo) GetPage(_ context.Context, id string) (*model.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pages[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *fakeSettingsRepo) SavePage(_ context.Context, page *model.Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages[page.ID] = *page
	return nil
}

// fakeTxManager runs the callback on the same context; the fakes have
// no transaction boundary to speak of.
type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// fakeMessenger records every dispatch; failPhones simulates transport
// failures for specific numbers.
type fakeMessenger struct {
	mu         sync.Mutex
	sent       []sentMessage
	failPhones map[string]error
}

type sentMessage struct {
	Phone string
	Body  string
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{failPhones: make(map[string]error)}
}

func (m *fakeMessenger) Send(_ context.Context, phone, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failPhones[phone]; ok {
		return err
	}
	m.sent = append(m.sent, sentMessage{Phone: phone, Body: body})
	return nil
}
