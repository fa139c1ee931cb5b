package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 上传相关业务错误
var (
	ErrUnsupportedImageType = errors.New("unsupported image type")
	ErrImageTooLarge        = errors.New("image too large")
)

// MaxImageSize 上传图片大小上限
const MaxImageSize = 5 << 20 // 5MB

// allowedImageExts 允许的图片扩展名
var allowedImageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".gif":  {},
}

// UploadService 定义图片上传接口
type UploadService interface {
	UploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error)
	DeleteImage(ctx context.Context, publicID string) error
}

// uploadService 基于Cloudinary实现图片托管
type uploadService struct {
	cld    *cloudinary.Cloudinary
	folder string
	logger *zap.Logger
}

// NewUploadService 创建上传服务实例
func NewUploadService(cloudName, apiKey, apiSecret, folder string, logger *zap.Logger) (UploadService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &uploadService{cld: cld, folder: folder, logger: logger}, nil
}

// UploadImage 上传单张图片并返回可访问的URL。
// 文件名由uuid生成，避免覆盖同名上传。
func (s *uploadService) UploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(path.Ext(header.Filename))
	if _, ok := allowedImageExts[ext]; !ok {
		return "", ErrUnsupportedImageType
	}
	if header.Size > MaxImageSize {
		return "", ErrImageTooLarge
	}

	overwrite := false
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:     uuid.NewString(),
		Folder:       s.folder,
		ResourceType: "image",
		Overwrite:    &overwrite,
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	if result.SecureURL == "" {
		return "", errors.New("upload succeeded but no url returned")
	}

	s.logger.Info("image uploaded",
		zap.String("public_id", result.PublicID),
		zap.Int64("size", header.Size),
	)

	return result.SecureURL, nil
}

// DeleteImage 根据public ID删除已上传的图片
func (s *uploadService) DeleteImage(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}
