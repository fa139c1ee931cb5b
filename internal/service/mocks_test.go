package service

import (
	"context"
	"errors"

	"github.com/MorseWayne/flour_shop/internal/catalog"
	"github.com/MorseWayne/flour_shop/internal/domain"
)

// Mock ProductRepository for testing
type mockProductRepository struct {
	products map[int64]*domain.Product
	slugMap  map[string]*domain.Product
	nextID   int64
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[int64]*domain.Product),
		slugMap:  make(map[string]*domain.Product),
		nextID:   1,
	}
}

func (m *mockProductRepository) Create(product *domain.Product) error {
	if _, exists := m.slugMap[product.Slug]; exists {
		return errors.New("slug already exists")
	}

	product.ID = m.nextID
	m.nextID++

	m.products[product.ID] = product
	m.slugMap[product.Slug] = product

	return nil
}

func (m *mockProductRepository) GetByID(id int64) (*domain.Product, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, nil
	}
	return product, nil
}

func (m *mockProductRepository) GetBySlug(slug string) (*domain.Product, error) {
	product, exists := m.slugMap[slug]
	if !exists {
		return nil, nil
	}
	return product, nil
}

func (m *mockProductRepository) Update(product *domain.Product) error {
	old, exists := m.products[product.ID]
	if !exists {
		return errors.New("product not found")
	}
	if old.Slug != product.Slug {
		delete(m.slugMap, old.Slug)
	}
	m.products[product.ID] = product
	m.slugMap[product.Slug] = product
	return nil
}

func (m *mockProductRepository) Delete(id int64) error {
	product, exists := m.products[id]
	if !exists {
		return errors.New("product not found")
	}
	delete(m.products, id)
	delete(m.slugMap, product.Slug)
	return nil
}

func (m *mockProductRepository) ListByFilter(ctx context.Context, state catalog.FilterState) ([]*domain.Product, error) {
	items := make([]*domain.Product, 0, len(m.products))
	for id := int64(1); id < m.nextID; id++ {
		if p, ok := m.products[id]; ok {
			items = append(items, p)
		}
	}
	return catalog.NewMemoryStrategy(items).Fetch(ctx, state)
}

func (m *mockProductRepository) Count() (int64, error) {
	return int64(len(m.products)), nil
}

func (m *mockProductRepository) CountFeatured() (int64, error) {
	var n int64
	for _, p := range m.products {
		if p.Featured {
			n++
		}
	}
	return n, nil
}

func (m *mockProductRepository) CountOutOfStock() (int64, error) {
	var n int64
	for _, p := range m.products {
		if p.Stock <= 0 {
			n++
		}
	}
	return n, nil
}

func (m *mockProductRepository) AveragePrice() (float64, error) {
	if len(m.products) == 0 {
		return 0, nil
	}
	var sum float64
	for _, p := range m.products {
		sum += p.Price.Amount
	}
	return sum / float64(len(m.products)), nil
}

// Mock UserRepository for testing
type mockUserRepository struct {
	users       map[int64]*domain.User
	usernameMap map[string]*domain.User
	emailMap    map[string]*domain.User
	nextID      int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:       make(map[int64]*domain.User),
		usernameMap: make(map[string]*domain.User),
		emailMap:    make(map[string]*domain.User),
		nextID:      1,
	}
}

func (m *mockUserRepository) Create(user *domain.User) error {
	if _, exists := m.usernameMap[user.Username]; exists {
		return errors.New("username already exists")
	}
	if _, exists := m.emailMap[user.Email]; exists {
		return errors.New("email already exists")
	}

	user.ID = m.nextID
	m.nextID++

	m.users[user.ID] = user
	m.usernameMap[user.Username] = user
	m.emailMap[user.Email] = user

	return nil
}

func (m *mockUserRepository) GetByID(id int64) (*domain.User, error) {
	user, exists := m.users[id]
	if !exists {
		return nil, nil
	}
	return user, nil
}

func (m *mockUserRepository) GetByUsername(username string) (*domain.User, error) {
	user, exists := m.usernameMap[username]
	if !exists {
		return nil, nil
	}
	return user, nil
}

func (m *mockUserRepository) GetByEmail(email string) (*domain.User, error) {
	user, exists := m.emailMap[email]
	if !exists {
		return nil, nil
	}
	return user, nil
}

func (m *mockUserRepository) Update(user *domain.User) error {
	if _, exists := m.users[user.ID]; !exists {
		return errors.New("user not found")
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) Delete(id int64) error {
	user, exists := m.users[id]
	if !exists {
		return errors.New("user not found")
	}
	user.IsActive = false
	return nil
}

func (m *mockUserRepository) ListUsers(offset, limit int) ([]*domain.User, int64, error) {
	var result []*domain.User
	for id := int64(1); id < m.nextID; id++ {
		if u, ok := m.users[id]; ok {
			result = append(result, u)
		}
	}
	total := int64(len(result))
	if offset > len(result) {
		offset = len(result)
	}
	end := offset + limit
	if limit <= 0 || end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

// Mock InquiryRepository for testing
type mockInquiryRepository struct {
	inquiries map[int64]*domain.Inquiry
	nextID    int64
	createErr error
}

func newMockInquiryRepository() *mockInquiryRepository {
	return &mockInquiryRepository{
		inquiries: make(map[int64]*domain.Inquiry),
		nextID:    1,
	}
}

func (m *mockInquiryRepository) Create(inquiry *domain.Inquiry) error {
	if m.createErr != nil {
		return m.createErr
	}
	inquiry.ID = m.nextID
	m.nextID++
	m.inquiries[inquiry.ID] = inquiry
	return nil
}

func (m *mockInquiryRepository) GetByID(id int64) (*domain.Inquiry, error) {
	inquiry, exists := m.inquiries[id]
	if !exists {
		return nil, nil
	}
	return inquiry, nil
}

func (m *mockInquiryRepository) UpdateStatus(id int64, status domain.InquiryStatus) error {
	inquiry, exists := m.inquiries[id]
	if !exists {
		return errors.New("inquiry not found")
	}
	inquiry.Status = status
	return nil
}

func (m *mockInquiryRepository) Delete(id int64) error {
	if _, exists := m.inquiries[id]; !exists {
		return errors.New("inquiry not found")
	}
	delete(m.inquiries, id)
	return nil
}

func (m *mockInquiryRepository) List(req *domain.InquiryListRequest) ([]*domain.Inquiry, int64, error) {
	var result []*domain.Inquiry
	for id := int64(1); id < m.nextID; id++ {
		inq, ok := m.inquiries[id]
		if !ok {
			continue
		}
		if req.Status != nil && inq.Status != *req.Status {
			continue
		}
		result = append(result, inq)
	}
	return result, int64(len(result)), nil
}

func (m *mockInquiryRepository) MonthlySeries(months int) ([]*domain.InquiryMonthlyCount, error) {
	counts := make(map[string]int64)
	for _, inq := range m.inquiries {
		counts[inq.CreatedAt.Format("2006-01")]++
	}
	var series []*domain.InquiryMonthlyCount
	for month, count := range counts {
		series = append(series, &domain.InquiryMonthlyCount{Month: month, Count: count})
	}
	return series, nil
}

func (m *mockInquiryRepository) Stats() (*domain.InquiryStats, error) {
	stats := &domain.InquiryStats{}
	for _, inq := range m.inquiries {
		stats.Total++
		switch inq.Status {
		case domain.InquiryStatusNew:
			stats.New++
		case domain.InquiryStatusReplied:
			stats.Replied++
		}
	}
	return stats, nil
}

// Mock PostRepository for testing
type mockPostRepository struct {
	posts   map[int64]*domain.BlogPost
	slugMap map[string]*domain.BlogPost
	nextID  int64
}

func newMockPostRepository() *mockPostRepository {
	return &mockPostRepository{
		posts:   make(map[int64]*domain.BlogPost),
		slugMap: make(map[string]*domain.BlogPost),
		nextID:  1,
	}
}

func (m *mockPostRepository) Create(post *domain.BlogPost) error {
	if _, exists := m.slugMap[post.Slug]; exists {
		return errors.New("slug already exists")
	}
	post.ID = m.nextID
	m.nextID++
	m.posts[post.ID] = post
	m.slugMap[post.Slug] = post
	return nil
}

func (m *mockPostRepository) GetByID(id int64) (*domain.BlogPost, error) {
	post, exists := m.posts[id]
	if !exists {
		return nil, nil
	}
	return post, nil
}

func (m *mockPostRepository) GetBySlug(slug string) (*domain.BlogPost, error) {
	post, exists := m.slugMap[slug]
	if !exists {
		return nil, nil
	}
	return post, nil
}

func (m *mockPostRepository) Update(post *domain.BlogPost) error {
	old, exists := m.posts[post.ID]
	if !exists {
		return errors.New("post not found")
	}
	if old.Slug != post.Slug {
		delete(m.slugMap, old.Slug)
	}
	m.posts[post.ID] = post
	m.slugMap[post.Slug] = post
	return nil
}

func (m *mockPostRepository) Delete(id int64) error {
	post, exists := m.posts[id]
	if !exists {
		return errors.New("post not found")
	}
	delete(m.posts, id)
	delete(m.slugMap, post.Slug)
	return nil
}

func (m *mockPostRepository) List(req *domain.PostListRequest) ([]*domain.BlogPost, int64, error) {
	var result []*domain.BlogPost
	for id := int64(1); id < m.nextID; id++ {
		post, ok := m.posts[id]
		if !ok {
			continue
		}
		if req.Status != nil && post.Status != *req.Status {
			continue
		}
		if req.Category != nil && post.Category != *req.Category {
			continue
		}
		result = append(result, post)
	}
	return result, int64(len(result)), nil
}

func (m *mockPostRepository) CountPublished() (int64, error) {
	var n int64
	for _, post := range m.posts {
		if post.Status == domain.PostStatusPublished {
			n++
		}
	}
	return n, nil
}

// Mock CategoryRepository for testing
type mockCategoryRepository struct {
	categories map[string]*domain.Category
	nextID     int64
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{
		categories: make(map[string]*domain.Category),
		nextID:     1,
	}
}

func (m *mockCategoryRepository) Create(category *domain.Category) error {
	if _, exists := m.categories[category.Slug]; exists {
		return errors.New("slug already exists")
	}
	category.ID = m.nextID
	m.nextID++
	m.categories[category.Slug] = category
	return nil
}

func (m *mockCategoryRepository) GetBySlug(slug string) (*domain.Category, error) {
	category, exists := m.categories[slug]
	if !exists {
		return nil, nil
	}
	return category, nil
}

func (m *mockCategoryRepository) List() ([]*domain.Category, error) {
	var result []*domain.Category
	for _, c := range m.categories {
		result = append(result, c)
	}
	return result, nil
}

func (m *mockCategoryRepository) Delete(id int64) error {
	for slug, c := range m.categories {
		if c.ID == id {
			delete(m.categories, slug)
			return nil
		}
	}
	return errors.New("category not found")
}
