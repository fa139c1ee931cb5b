package service

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/MorseWayne/flour_shop/internal/domain"
)

func TestPostService_CreatePost(t *testing.T) {
	postRepo := newMockPostRepository()
	service := NewPostService(postRepo, zap.NewNop())

	tests := []struct {
		name       string
		req        *domain.CreatePostRequest
		wantStatus domain.PostStatus
		wantErr    error
	}{
		{
			name: "published post",
			req: &domain.CreatePostRequest{
				Title:  "Benefits of Stone Ground Flour",
				Slug:   "benefits-of-stone-ground-flour",
				Status: "published",
			},
			wantStatus: domain.PostStatusPublished,
		},
		{
			name: "empty status defaults to draft",
			req: &domain.CreatePostRequest{
				Title: "Unwritten Ideas",
			},
			wantStatus: domain.PostStatusDraft,
		},
		{
			name: "duplicate slug",
			req: &domain.CreatePostRequest{
				Title: "Another Take",
				Slug:  "benefits-of-stone-ground-flour",
			},
			wantErr: ErrPostSlugExists,
		},
		{
			name: "invalid status",
			req: &domain.CreatePostRequest{
				Title:  "Bad Status",
				Status: "archived",
			},
			wantErr: ErrInvalidPostStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, err := service.CreatePost(1, tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("CreatePost() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreatePost() error = %v", err)
			}
			if post.Status != tt.wantStatus {
				t.Errorf("CreatePost() status = %v, want %v", post.Status, tt.wantStatus)
			}
			if post.Slug == "" {
				t.Errorf("CreatePost() returned empty slug")
			}
			if post.AuthorID != 1 {
				t.Errorf("CreatePost() author = %d, want 1", post.AuthorID)
			}
		})
	}
}

func TestPostService_GetPublishedBySlug(t *testing.T) {
	postRepo := newMockPostRepository()
	service := NewPostService(postRepo, zap.NewNop())

	if _, err := service.CreatePost(1, &domain.CreatePostRequest{
		Title:  "Published Story",
		Slug:   "published-story",
		Status: "published",
	}); err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	if _, err := service.CreatePost(1, &domain.CreatePostRequest{
		Title: "Draft Story",
		Slug:  "draft-story",
	}); err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	tests := []struct {
		name    string
		slug    string
		wantErr error
	}{
		{name: "published visible", slug: "published-story"},
		{name: "draft hidden", slug: "draft-story", wantErr: ErrPostNotFound},
		{name: "missing slug", slug: "no-such-post", wantErr: ErrPostNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, err := service.GetPublishedBySlug(tt.slug)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GetPublishedBySlug() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetPublishedBySlug() error = %v", err)
			}
			if post.Slug != tt.slug {
				t.Errorf("GetPublishedBySlug() slug = %v, want %v", post.Slug, tt.slug)
			}
		})
	}
}

func TestPostService_UpdatePost(t *testing.T) {
	postRepo := newMockPostRepository()
	service := NewPostService(postRepo, zap.NewNop())

	created, err := service.CreatePost(1, &domain.CreatePostRequest{
		Title: "Original Title",
		Slug:  "original-title",
	})
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	published := "published"
	invalid := "archived"
	newTitle := "Updated Title"

	t.Run("publish a draft", func(t *testing.T) {
		post, err := service.UpdatePost(created.ID, &domain.UpdatePostRequest{
			Title:  &newTitle,
			Status: &published,
		})
		if err != nil {
			t.Fatalf("UpdatePost() error = %v", err)
		}
		if post.Title != newTitle || post.Status != domain.PostStatusPublished {
			t.Errorf("UpdatePost() = title %q status %v", post.Title, post.Status)
		}
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		if _, err := service.UpdatePost(created.ID, &domain.UpdatePostRequest{Status: &invalid}); !errors.Is(err, ErrInvalidPostStatus) {
			t.Errorf("UpdatePost() error = %v, want %v", err, ErrInvalidPostStatus)
		}
	})

	t.Run("missing post", func(t *testing.T) {
		if _, err := service.UpdatePost(9999, &domain.UpdatePostRequest{Title: &newTitle}); !errors.Is(err, ErrPostNotFound) {
			t.Errorf("UpdatePost() error = %v, want %v", err, ErrPostNotFound)
		}
	})
}

func TestPostService_ListPublished(t *testing.T) {
	postRepo := newMockPostRepository()
	service := NewPostService(postRepo, zap.NewNop())

	seed := []struct {
		title    string
		slug     string
		status   string
		category string
	}{
		{"Recipes with Atta", "recipes-with-atta", "published", "recipes"},
		{"Milling Process", "milling-process", "published", "production"},
		{"Draft Notes", "draft-notes", "", "recipes"},
	}
	for _, p := range seed {
		if _, err := service.CreatePost(1, &domain.CreatePostRequest{
			Title:    p.title,
			Slug:     p.slug,
			Status:   p.status,
			Category: p.category,
		}); err != nil {
			t.Fatalf("CreatePost(%q) error = %v", p.slug, err)
		}
	}

	t.Run("only published posts", func(t *testing.T) {
		got, err := service.ListPublished(1, 10, nil)
		if err != nil {
			t.Fatalf("ListPublished() error = %v", err)
		}
		if got.Total != 2 {
			t.Errorf("ListPublished() total = %d, want 2", got.Total)
		}
	})

	t.Run("category filter", func(t *testing.T) {
		category := "recipes"
		got, err := service.ListPublished(1, 10, &category)
		if err != nil {
			t.Fatalf("ListPublished() error = %v", err)
		}
		if got.Total != 1 {
			t.Errorf("ListPublished() total = %d, want 1", got.Total)
		}
	})
}
