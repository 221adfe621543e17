package service

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tienda-next/internal/config"
)

func multipartFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("imagen", filename)
	if err != nil {
		t.Fatalf("create form file failed: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer failed: %v", err)
	}
	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("parse multipart failed: %v", err)
	}
	return req.MultipartForm.File["imagen"][0]
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png failed: %v", err)
	}
	return buf.Bytes()
}

func TestSaveProductImage(t *testing.T) {
	root := t.TempDir()
	svc := NewUploadService(config.MediaConfig{
		Root:         root,
		MaxSize:      1 << 20,
		AllowedTypes: []string{"image/png"},
		MaxWidth:     100,
		MaxHeight:    100,
	}, nil)

	ref, err := svc.SaveProductImage(multipartFile(t, "vestido.PNG", pngBytes(t, 10, 10)))
	if err != nil {
		t.Fatalf("save image failed: %v", err)
	}
	if !strings.HasPrefix(ref, "productos/") || !strings.HasSuffix(ref, ".png") {
		t.Fatalf("unexpected reference: %s", ref)
	}
	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(ref))); err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
}

func TestSaveProductImageRejectsInvalidFiles(t *testing.T) {
	svc := NewUploadService(config.MediaConfig{
		Root:         t.TempDir(),
		MaxSize:      1 << 20,
		AllowedTypes: []string{"image/png"},
		MaxWidth:     20,
		MaxHeight:    20,
	}, nil)

	cases := map[string]*multipart.FileHeader{
		"not an image": multipartFile(t, "nota.txt", []byte("hola mundo")),
		"too wide":     multipartFile(t, "grande.png", pngBytes(t, 40, 10)),
	}
	for name, file := range cases {
		if _, err := svc.SaveProductImage(file); !errors.Is(err, ErrInvalidImage) || !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: expected invalid image error, got %v", name, err)
		}
	}
}

func TestDiscardRemovesOnlyLocalProductImages(t *testing.T) {
	root := t.TempDir()
	svc := NewUploadService(config.MediaConfig{Root: root, URLPrefix: "/media/"}, nil)

	keep := filepath.Join(root, "otros", "logo.png")
	remove := filepath.Join(root, "productos", "a.png")
	removeWithPrefix := filepath.Join(root, "productos", "b.png")
	for _, file := range []string{keep, remove, removeWithPrefix} {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
		if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
			t.Fatalf("write file failed: %v", err)
		}
	}

	svc.Discard(
		"productos/a.png",
		"/media/productos/b.png",
		"otros/logo.png",
		"../otros/logo.png",
		"https://cdn.example.com/productos/a.png",
		"productos/missing.png",
		"",
	)

	if _, err := os.Stat(remove); !os.IsNotExist(err) {
		t.Fatalf("productos/a.png should be removed, err=%v", err)
	}
	if _, err := os.Stat(removeWithPrefix); !os.IsNotExist(err) {
		t.Fatalf("productos/b.png should be removed, err=%v", err)
	}
	if _, err := os.Stat(keep); err != nil {
		t.Fatalf("file outside productos should be kept: %v", err)
	}
}

func TestLocalPath(t *testing.T) {
	svc := NewUploadService(config.MediaConfig{Root: "/srv/media", URLPrefix: "/media/"}, nil)
	cases := []struct {
		ref  string
		want string
		ok   bool
	}{
		{ref: "productos/a.png", want: filepath.Join("/srv/media", "productos", "a.png"), ok: true},
		{ref: "/media/productos/a.png", want: filepath.Join("/srv/media", "productos", "a.png"), ok: true},
		{ref: "productos/sub/a.png"},
		{ref: "productos/"},
		{ref: "//cdn.example.com/productos/a.png"},
		{ref: "HTTP://cdn.example.com/a.png"},
	}
	for _, tc := range cases {
		got, ok := svc.localPath(tc.ref)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("localPath(%q) want (%q,%v) got (%q,%v)", tc.ref, tc.want, tc.ok, got, ok)
		}
	}
}
