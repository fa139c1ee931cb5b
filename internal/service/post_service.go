package service

import (
	"errors"
	"fmt"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/MorseWayne/flour_shop/internal/domain"
	"github.com/MorseWayne/flour_shop/internal/repo"
)

// 文章相关业务错误
var (
	ErrPostNotFound      = errors.New("post not found")
	ErrPostSlugExists    = errors.New("post slug already exists")
	ErrInvalidPostStatus = errors.New("invalid post status")
)

// PostService 定义博客文章业务逻辑接口
type PostService interface {
	CreatePost(authorID int64, req *domain.CreatePostRequest) (*domain.BlogPost, error)
	GetPost(id int64) (*domain.BlogPost, error)
	// GetPublishedBySlug 供前台使用，草稿视为不存在
	GetPublishedBySlug(slug string) (*domain.BlogPost, error)
	UpdatePost(id int64, req *domain.UpdatePostRequest) (*domain.BlogPost, error)
	DeletePost(id int64) error
	// ListPosts 后台列表，支持按状态与栏目过滤
	ListPosts(req *domain.PostListRequest) (*domain.PostListResponse, error)
	// ListPublished 前台列表，只返回已发布文章
	ListPublished(page, pageSize int, category *string) (*domain.PostListResponse, error)
}

// postService 实现PostService接口
type postService struct {
	postRepo repo.PostRepository
	logger   *zap.Logger
}

// NewPostService 创建文章服务实例
func NewPostService(postRepo repo.PostRepository, logger *zap.Logger) PostService {
	return &postService{
		postRepo: postRepo,
		logger:   logger,
	}
}

// parseStatus 校验状态取值，留空默认为草稿
func parseStatus(raw string) (domain.PostStatus, error) {
	switch domain.PostStatus(raw) {
	case domain.PostStatusDraft, domain.PostStatusPublished:
		return domain.PostStatus(raw), nil
	case "":
		return domain.PostStatusDraft, nil
	default:
		return "", ErrInvalidPostStatus
	}
}

// CreatePost 创建文章
func (s *postService) CreatePost(authorID int64, req *domain.CreatePostRequest) (*domain.BlogPost, error) {
	status, err := parseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	postSlug := req.Slug
	if postSlug == "" {
		postSlug = slug.Make(req.Title)
	}

	existing, err := s.postRepo.GetBySlug(postSlug)
	if err != nil {
		return nil, fmt.Errorf("check slug uniqueness: %w", err)
	}
	if existing != nil {
		return nil, ErrPostSlugExists
	}

	post := &domain.BlogPost{
		Title:           req.Title,
		Slug:            postSlug,
		Excerpt:         req.Excerpt,
		Content:         req.Content,
		Category:        req.Category,
		Status:          status,
		Featured:        req.Featured,
		FeaturedImage:   req.FeaturedImage,
		AuthorID:        authorID,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.logger.Info("post created",
		zap.Int64("post_id", post.ID),
		zap.String("slug", post.Slug),
		zap.String("status", string(post.Status)),
	)

	return post, nil
}

// GetPost 获取文章（后台，含草稿）
func (s *postService) GetPost(id int64) (*domain.BlogPost, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	return post, nil
}

// GetPublishedBySlug 获取已发布文章，草稿对前台不可见
func (s *postService) GetPublishedBySlug(postSlug string) (*domain.BlogPost, error) {
	post, err := s.postRepo.GetBySlug(postSlug)
	if err != nil {
		return nil, fmt.Errorf("get post by slug: %w", err)
	}
	if post == nil || !post.IsPublished() {
		return nil, ErrPostNotFound
	}

	return post, nil
}

// UpdatePost 更新文章
func (s *postService) UpdatePost(id int64, req *domain.UpdatePostRequest) (*domain.BlogPost, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Slug != nil && *req.Slug != post.Slug {
		existing, err := s.postRepo.GetBySlug(*req.Slug)
		if err != nil {
			return nil, fmt.Errorf("check slug uniqueness: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, ErrPostSlugExists
		}
		post.Slug = *req.Slug
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Category != nil {
		post.Category = *req.Category
	}
	if req.Status != nil {
		status, err := parseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		post.Status = status
	}
	if req.Featured != nil {
		post.Featured = *req.Featured
	}
	if req.FeaturedImage != nil {
		post.FeaturedImage = *req.FeaturedImage
	}
	if req.MetaTitle != nil {
		post.MetaTitle = *req.MetaTitle
	}
	if req.MetaDescription != nil {
		post.MetaDescription = *req.MetaDescription
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	return post, nil
}

// DeletePost 删除文章
func (s *postService) DeletePost(id int64) error {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("get post: %w", err)
	}
	if post == nil {
		return ErrPostNotFound
	}

	return s.postRepo.Delete(id)
}

// ListPosts 后台文章列表
func (s *postService) ListPosts(req *domain.PostListRequest) (*domain.PostListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 12
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	posts, total, err := s.postRepo.List(req)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if posts == nil {
		posts = []*domain.BlogPost{}
	}

	return &domain.PostListResponse{
		Posts:    posts,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

// ListPublished 前台文章列表
func (s *postService) ListPublished(page, pageSize int, category *string) (*domain.PostListResponse, error) {
	published := domain.PostStatusPublished
	return s.ListPosts(&domain.PostListRequest{
		Page:     page,
		PageSize: pageSize,
		Status:   &published,
		Category: category,
	})
}
