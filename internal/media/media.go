// Package media stores uploaded images either on local disk or in S3.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

// MaxImageBytes 限制单张图片大小
const MaxImageBytes = 8 << 20

// ErrUnsupportedImage 表示上传内容不是可识别的图片
var ErrUnsupportedImage = errors.New("only png, jpeg, gif or webp images are allowed")

// ErrTooLarge 表示图片超过 MaxImageBytes
var ErrTooLarge = errors.New("image is too large")

var extensions = map[string]string{
	"png":  ".png",
	"jpeg": ".jpg",
	"gif":  ".gif",
	"webp": ".webp",
}

var contentTypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// Image 是通过校验的图片
type Image struct {
	Data        []byte
	Format      string
	ContentType string
	Width       int
	Height      int
}

// Ext 返回与格式对应的文件扩展名
func (img Image) Ext() string {
	return extensions[img.Format]
}

// Inspect 解码图片头部，确认格式与尺寸；不信任客户端提供的 Content-Type
func Inspect(data []byte) (Image, error) {
	if len(data) > MaxImageBytes {
		return Image{}, ErrTooLarge
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	contentType, ok := contentTypes[format]
	if !ok {
		return Image{}, ErrUnsupportedImage
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Image{}, ErrUnsupportedImage
	}
	return Image{Data: data, Format: format, ContentType: contentType, Width: cfg.Width, Height: cfg.Height}, nil
}

// Storage 保存图片并返回可公开访问的 URL
type Storage interface {
	Save(ctx context.Context, name string, img Image) (string, error)
}

// ObjectName 生成按日期分组的唯一对象名
func ObjectName(now time.Time, img Image) string {
	return fmt.Sprintf("%s-%s%s", now.Format("20060102"), uuid.NewString(), img.Ext())
}

func joinURL(base, name string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(name, "/")
}
