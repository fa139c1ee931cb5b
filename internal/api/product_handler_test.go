package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/MorseWayne/flour_shop/internal/catalog"
	"github.com/MorseWayne/flour_shop/internal/domain"
)

// stubProductService captures the filter state the handler passes down.
type stubProductService struct {
	lastState catalog.FilterState
	result    *domain.ProductListResponse
	err       error
}

func (s *stubProductService) CreateProduct(req *domain.CreateProductRequest) (*domain.Product, error) {
	return nil, nil
}

func (s *stubProductService) GetProduct(id int64) (*domain.Product, error) { return nil, nil }

func (s *stubProductService) GetProductBySlug(slug string) (*domain.Product, error) {
	return nil, nil
}

func (s *stubProductService) UpdateProduct(id int64, req *domain.UpdateProductRequest) (*domain.Product, error) {
	return nil, nil
}

func (s *stubProductService) DeleteProduct(id int64) error { return nil }

func (s *stubProductService) ListCatalog(ctx context.Context, state catalog.FilterState, page, pageSize int) (*domain.ProductListResponse, error) {
	s.lastState = state
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return &domain.ProductListResponse{Products: []*domain.Product{}, Page: 1, PageSize: 12}, nil
}

func (s *stubProductService) GetProductStats() (*domain.ProductStats, error) {
	return &domain.ProductStats{}, nil
}

// stubCategoryService serves a fixed slug vocabulary.
type stubCategoryService struct {
	slugs []string
	err   error
}

func (s *stubCategoryService) CreateCategory(req *domain.CreateCategoryRequest) (*domain.Category, error) {
	return nil, nil
}

func (s *stubCategoryService) ListCategories() ([]*domain.Category, error) { return nil, nil }

func (s *stubCategoryService) DeleteCategory(id int64) error { return nil }

func (s *stubCategoryService) CategorySlugs() ([]string, error) {
	return s.slugs, s.err
}

func TestProductHandler_ListProducts_FailSoftDecoding(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  catalog.FilterState
	}{
		{
			name:  "no parameters yields defaults",
			query: "",
			want:  catalog.DefaultFilterState(),
		},
		{
			name:  "valid filters pass through",
			query: "category=whole-wheat&weight=5kg&minPrice=10&maxPrice=60&sort=price-asc",
			want: catalog.FilterState{
				PriceMin:   10,
				PriceMax:   60,
				Categories: []string{"whole-wheat"},
				Weights:    []string{"5kg"},
				Sort:       catalog.SortPriceAsc,
			},
		},
		{
			name:  "malformed price falls back to bounds",
			query: "minPrice=abc&maxPrice=xyz",
			want:  catalog.DefaultFilterState(),
		},
		{
			name:  "unknown category dropped, known kept",
			query: "category=whole-wheat,discontinued",
			want: func() catalog.FilterState {
				s := catalog.DefaultFilterState()
				s.Categories = []string{"whole-wheat"}
				return s
			}(),
		},
		{
			name:  "invalid sort falls back to featured",
			query: "sort=alphabetical",
			want:  catalog.DefaultFilterState(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			productService := &stubProductService{}
			categoryService := &stubCategoryService{slugs: []string{"whole-wheat", "bakery"}}
			handler := NewProductHandler(productService, categoryService, []string{"1kg", "5kg"}, zap.NewNop())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/products?"+tt.query, nil)
			rw := httptest.NewRecorder()
			handler.ListProducts(rw, req)

			if rw.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rw.Code)
			}
			if !productService.lastState.Equal(tt.want) {
				t.Errorf("decoded state = %+v, want %+v", productService.lastState, tt.want)
			}
		})
	}
}

func TestProductHandler_ListProducts_EchoesNormalizedQuery(t *testing.T) {
	productService := &stubProductService{}
	categoryService := &stubCategoryService{slugs: []string{"whole-wheat"}}
	handler := NewProductHandler(productService, categoryService, []string{"1kg", "5kg"}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=whole-wheat,bogus&sort=price-desc", nil)
	rw := httptest.NewRecorder()
	handler.ListProducts(rw, req)

	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rw.Code)
	}

	var body struct {
		Code int `json:"code"`
		Data struct {
			Query   string              `json:"query"`
			Filters catalog.FilterState `json:"filters"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rw.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Data.Query != "category=whole-wheat&sort=price-desc" {
		t.Errorf("normalized query = %q, want %q", body.Data.Query, "category=whole-wheat&sort=price-desc")
	}
}

func TestProductHandler_ListProducts_VocabularyFailure(t *testing.T) {
	productService := &stubProductService{}
	categoryService := &stubCategoryService{err: errTest}
	handler := NewProductHandler(productService, categoryService, nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rw := httptest.NewRecorder()
	handler.ListProducts(rw, req)

	if rw.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rw.Code)
	}
}
