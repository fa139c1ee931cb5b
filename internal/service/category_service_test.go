package service

import (
	"errors"
	"testing"

	"github.com/MorseWayne/flour_shop/internal/domain"
)

func TestCategoryService_CreateCategory(t *testing.T) {
	categoryRepo := newMockCategoryRepository()
	service := NewCategoryService(categoryRepo)

	tests := []struct {
		name     string
		req      *domain.CreateCategoryRequest
		wantSlug string
		wantErr  error
	}{
		{
			name:     "explicit slug",
			req:      &domain.CreateCategoryRequest{Slug: "whole-wheat", Name: "Whole Wheat"},
			wantSlug: "whole-wheat",
		},
		{
			name:     "slug generated from name",
			req:      &domain.CreateCategoryRequest{Name: "All Purpose Flour"},
			wantSlug: "all-purpose-flour",
		},
		{
			name:    "duplicate slug",
			req:     &domain.CreateCategoryRequest{Slug: "whole-wheat", Name: "Wheat Again"},
			wantErr: ErrCategoryExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, err := service.CreateCategory(tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("CreateCategory() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateCategory() error = %v", err)
			}
			if category.Slug != tt.wantSlug {
				t.Errorf("CreateCategory() slug = %v, want %v", category.Slug, tt.wantSlug)
			}
		})
	}
}

func TestCategoryService_CategorySlugs(t *testing.T) {
	categoryRepo := newMockCategoryRepository()
	service := NewCategoryService(categoryRepo)

	for _, name := range []string{"Bakery", "Specialty"} {
		if _, err := service.CreateCategory(&domain.CreateCategoryRequest{Name: name}); err != nil {
			t.Fatalf("CreateCategory(%q) error = %v", name, err)
		}
	}

	slugs, err := service.CategorySlugs()
	if err != nil {
		t.Fatalf("CategorySlugs() error = %v", err)
	}
	if len(slugs) != 2 {
		t.Errorf("CategorySlugs() len = %d, want 2", len(slugs))
	}
	seen := make(map[string]bool, len(slugs))
	for _, s := range slugs {
		seen[s] = true
	}
	if !seen["bakery"] || !seen["specialty"] {
		t.Errorf("CategorySlugs() = %v, want bakery and specialty", slugs)
	}
}
