package service

import (
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/tienda-next/internal/config"
	"github.com/tienda-next/internal/constants"
	"github.com/tienda-next/internal/logger"
	"github.com/tienda-next/internal/queue"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

const productImageDir = constants.ProductImageDir

// MediaJanitor 回收不再被商品引用的媒体文件
type MediaJanitor interface {
	Discard(refs ...string)
}

// UploadService 商品图片上传与回收服务
type UploadService struct {
	cfg   config.MediaConfig
	queue *queue.Client
}

// NewUploadService 创建上传服务；queue 为空或未启用时同步删除文件
func NewUploadService(cfg config.MediaConfig, queueClient *queue.Client) *UploadService {
	return &UploadService{cfg: cfg, queue: queueClient}
}

// SaveProductImage 校验并保存商品图片，返回相对媒体目录的引用，例如 productos/<uuid>.png
func (s *UploadService) SaveProductImage(file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", ErrInvalidImage
	}
	if s.cfg.MaxSize > 0 && file.Size > s.cfg.MaxSize {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidImage, s.cfg.MaxSize)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	contentType := http.DetectContentType(buffer[:n])
	if !s.typeAllowed(contentType) {
		return "", fmt.Errorf("%w: content type %s", ErrInvalidImage, contentType)
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if s.cfg.MaxWidth > 0 && cfg.Width > s.cfg.MaxWidth {
		return "", fmt.Errorf("%w: width %d", ErrInvalidImage, cfg.Width)
	}
	if s.cfg.MaxHeight > 0 && cfg.Height > s.cfg.MaxHeight {
		return "", fmt.Errorf("%w: height %d", ErrInvalidImage, cfg.Height)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = extensionForContentType(contentType)
	}
	filename := uuid.NewString() + ext
	savePath := filepath.Join(s.root(), productImageDir, filename)
	if err := os.MkdirAll(filepath.Dir(savePath), 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(savePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return path.Join(productImageDir, filename), nil
}

// Discard 回收媒体文件：仅处理本服务上传到商品目录下的文件，
// 队列可用时异步删除，否则立即删除。
func (s *UploadService) Discard(refs ...string) {
	for _, ref := range refs {
		if _, ok := s.localPath(ref); !ok {
			continue
		}
		if s.queue.Enabled() {
			err := s.queue.EnqueueMediaRemove(queue.MediaRemovePayload{Ref: ref})
			if err == nil {
				continue
			}
			logger.Warnw("media_remove_enqueue_failed", "ref", ref, "error", err)
		}
		if err := s.RemoveProductImage(ref); err != nil {
			logger.Warnw("media_remove_failed", "ref", ref, "error", err)
		}
	}
}

// RemoveProductImage 删除商品目录下的图片文件，文件不存在视为成功
func (s *UploadService) RemoveProductImage(ref string) error {
	target, ok := s.localPath(ref)
	if !ok {
		return nil
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// localPath 将媒体引用解析为商品目录下的本地路径，外部 URL 与越界路径返回 false
func (s *UploadService) localPath(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	lower := strings.ToLower(ref)
	if ref == "" || strings.HasPrefix(ref, "//") || strings.Contains(lower, "://") {
		return "", false
	}
	cleaned := strings.TrimPrefix(path.Clean("/"+ref), "/")
	if prefix := strings.Trim(strings.TrimSpace(s.cfg.URLPrefix), "/"); prefix != "" {
		cleaned = strings.TrimPrefix(cleaned, prefix+"/")
	}
	if !strings.HasPrefix(cleaned, productImageDir+"/") || strings.Count(cleaned, "/") != 1 {
		return "", false
	}
	return filepath.Join(s.root(), filepath.FromSlash(cleaned)), true
}

func (s *UploadService) root() string {
	if root := strings.TrimSpace(s.cfg.Root); root != "" {
		return root
	}
	return "media"
}

func (s *UploadService) typeAllowed(contentType string) bool {
	if len(s.cfg.AllowedTypes) == 0 {
		return strings.HasPrefix(contentType, "image/")
	}
	for _, allowed := range s.cfg.AllowedTypes {
		if strings.EqualFold(strings.TrimSpace(allowed), contentType) {
			return true
		}
	}
	return false
}

func extensionForContentType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
