package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage 将图片写入本地目录，由静态路由对外提供
type LocalStorage struct {
	Dir     string
	URLPath string
}

// NewLocalStorage 构造 LocalStorage
func NewLocalStorage(dir, urlPath string) *LocalStorage {
	return &LocalStorage{Dir: dir, URLPath: urlPath}
}

// Save implements Storage.
func (s *LocalStorage) Save(_ context.Context, name string, img Image) (string, error) {
	clean := filepath.Base(name)
	if clean == "." || clean == string(filepath.Separator) || strings.HasPrefix(clean, ".") {
		return "", fmt.Errorf("invalid object name %q", name)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir, clean), img.Data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return joinURL(s.URLPath, clean), nil
}
