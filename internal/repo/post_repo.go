package repo

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/MorseWayne/flour_shop/internal/database"
	"github.com/MorseWayne/flour_shop/internal/domain"
)

// PostRepository 定义博客文章数据访问接口
type PostRepository interface {
	Create(post *domain.BlogPost) error
	GetByID(id int64) (*domain.BlogPost, error)
	GetBySlug(slug string) (*domain.BlogPost, error)
	Update(post *domain.BlogPost) error
	Delete(id int64) error
	List(req *domain.PostListRequest) ([]*domain.BlogPost, int64, error)
	CountPublished() (int64, error)
}

// postRepo 实现PostRepository接口
type postRepo struct {
	db *database.DB
}

// NewPostRepository 创建文章仓储实例
func NewPostRepository(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

const postColumns = `id, title, slug, excerpt, content, category, status, featured,
	featured_image, author_id, meta_title, meta_description, created_at, updated_at`

// Create 创建文章
func (r *postRepo) Create(post *domain.BlogPost) error {
	query := `
		INSERT INTO blog_posts (title, slug, excerpt, content, category, status, featured,
			featured_image, author_id, meta_title, meta_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		post.Title,
		post.Slug,
		post.Excerpt,
		post.Content,
		post.Category,
		string(post.Status),
		post.Featured,
		post.FeaturedImage,
		post.AuthorID,
		post.MetaTitle,
		post.MetaDescription,
	)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	post.ID = id
	return nil
}

// GetByID 根据ID查询文章
func (r *postRepo) GetByID(id int64) (*domain.BlogPost, error) {
	return r.getOne("id = ?", id)
}

// GetBySlug 根据slug查询文章
func (r *postRepo) GetBySlug(slug string) (*domain.BlogPost, error) {
	return r.getOne("slug = ?", slug)
}

// getOne 查询单篇文章，不存在时返回(nil, nil)
func (r *postRepo) getOne(cond string, arg interface{}) (*domain.BlogPost, error) {
	post := &domain.BlogPost{}
	query := fmt.Sprintf(`SELECT %s FROM blog_posts WHERE %s`, postColumns, cond)

	err := r.db.QueryRow(query, arg).Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.Excerpt,
		&post.Content,
		&post.Category,
		&post.Status,
		&post.Featured,
		&post.FeaturedImage,
		&post.AuthorID,
		&post.MetaTitle,
		&post.MetaDescription,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	return post, nil
}

// Update 更新文章
func (r *postRepo) Update(post *domain.BlogPost) error {
	query := `
		UPDATE blog_posts
		SET title = ?, slug = ?, excerpt = ?, content = ?, category = ?, status = ?,
			featured = ?, featured_image = ?, meta_title = ?, meta_description = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		post.Title,
		post.Slug,
		post.Excerpt,
		post.Content,
		post.Category,
		string(post.Status),
		post.Featured,
		post.FeaturedImage,
		post.MetaTitle,
		post.MetaDescription,
		post.ID,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	return nil
}

// Delete 删除文章
func (r *postRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM blog_posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// List 分页查询文章列表，按创建时间倒序
func (r *postRepo) List(req *domain.PostListRequest) ([]*domain.BlogPost, int64, error) {
	conditions := []string{"1=1"}
	var args []interface{}

	if req.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*req.Status))
	}
	if req.Category != nil {
		conditions = append(conditions, "category = ?")
		args = append(args, *req.Category)
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM blog_posts WHERE %s`, where)
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM blog_posts
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, postColumns, where)

	offset := (req.Page - 1) * req.PageSize
	args = append(args, req.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var posts []*domain.BlogPost
	for rows.Next() {
		post := &domain.BlogPost{}
		err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Slug,
			&post.Excerpt,
			&post.Content,
			&post.Category,
			&post.Status,
			&post.Featured,
			&post.FeaturedImage,
			&post.AuthorID,
			&post.MetaTitle,
			&post.MetaDescription,
			&post.CreatedAt,
			&post.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate posts: %w", err)
	}

	return posts, total, nil
}

// CountPublished 统计已发布文章数量
func (r *postRepo) CountPublished() (int64, error) {
	var count int64
	err := r.db.QueryRow(`SELECT COUNT(*) FROM blog_posts WHERE status = 'published'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count published posts: %w", err)
	}
	return count, nil
}
