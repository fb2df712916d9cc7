package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestInspectDetectsFormat(t *testing.T) {
	img, err := Inspect(pngBytes(t))
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if img.Format != "png" || img.ContentType != "image/png" || img.Width != 3 || img.Height != 2 || img.Ext() != ".png" {
		t.Fatalf("unexpected image %#v", img)
	}

	if _, err := Inspect([]byte("<svg onload=alert(1)>")); !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}
	if _, err := Inspect(make([]byte, MaxImageBytes+1)); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestLocalStorageSave(t *testing.T) {
	dir := t.TempDir()
	storage := NewLocalStorage(filepath.Join(dir, "uploads"), "/static/uploads/")

	img, err := Inspect(pngBytes(t))
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	name := ObjectName(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), img)
	if !strings.HasPrefix(name, "20260304-") || !strings.HasSuffix(name, ".png") {
		t.Fatalf("unexpected object name %s", name)
	}

	url, err := storage.Save(context.Background(), name, img)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if url != "/static/uploads/"+name {
		t.Fatalf("unexpected url %s", url)
	}
	written, err := os.ReadFile(filepath.Join(dir, "uploads", name))
	if err != nil || !bytes.Equal(written, img.Data) {
		t.Fatalf("file not written correctly: %v", err)
	}

	if _, err := storage.Save(context.Background(), "../.hidden", img); err == nil {
		t.Fatal("expected dot-file names to be rejected")
	}
}

type fakeS3 struct {
	input *s3.PutObjectInput
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	return &s3.PutObjectOutput{}, nil
}

func TestS3StorageSave(t *testing.T) {
	client := &fakeS3{}
	storage := NewS3StorageWithClient(client, "agency-assets", "https://cdn.example.com/")

	img, err := Inspect(pngBytes(t))
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	url, err := storage.Save(context.Background(), "logo.png", img)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if url != "https://cdn.example.com/uploads/logo.png" {
		t.Fatalf("unexpected url %s", url)
	}
	if aws.ToString(client.input.Bucket) != "agency-assets" || aws.ToString(client.input.Key) != "uploads/logo.png" ||
		aws.ToString(client.input.ContentType) != "image/png" {
		t.Fatalf("unexpected put input %#v", client.input)
	}
}
