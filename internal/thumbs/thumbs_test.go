package thumbs

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/mms8452/baby/internal/catalog"
	"github.com/mms8452/baby/internal/mediatypes"
)

func newTestStore(t *testing.T) *catalog.Store {
	t.Helper()

	store, err := catalog.New(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// writeTestImage writes a decodable PNG of the given size.
func writeTestImage(t *testing.T, dir, name string, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return path
}

// catalogImage registers a record for path so thumbnail generation can
// update it.
func catalogImage(t *testing.T, store *catalog.Store, path string) {
	t.Helper()

	err := store.SaveFile(context.Background(), &catalog.FileRecord{
		Path:       path,
		Name:       filepath.Base(path),
		Kind:       mediatypes.FileTypeImage,
		CreatedAt:  1700000000,
		ModifiedAt: 1700000000,
		AgeLabel:   "not set",
	})
	if err != nil {
		t.Fatalf("failed to catalog test image: %v", err)
	}
}

func TestGenerate(t *testing.T) {
	store := newTestStore(t)
	cacheDir := t.TempDir()
	gen := New(cacheDir, store)
	ctx := context.Background()

	source := writeTestImage(t, t.TempDir(), "photo.png", 800, 600)
	catalogImage(t, store, source)

	thumbPath, err := gen.Generate(ctx, source)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if filepath.Dir(thumbPath) != cacheDir {
		t.Errorf("thumbnail outside cache dir: %s", thumbPath)
	}
	if !strings.HasSuffix(thumbPath, ".jpg") {
		t.Errorf("thumbnail not a .jpg artifact: %s", thumbPath)
	}

	// Artifact must decode as an image fitting within the bounding box.
	f, err := os.Open(thumbPath)
	if err != nil {
		t.Fatalf("failed to open thumbnail: %v", err)
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("failed to decode thumbnail: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("thumbnail format = %s, want jpeg", format)
	}
	if cfg.Width > maxWidth || cfg.Height > maxHeight {
		t.Errorf("thumbnail %dx%d exceeds %dx%d", cfg.Width, cfg.Height, maxWidth, maxHeight)
	}
	// 800x600 fit into 300x300 preserves the 4:3 aspect ratio.
	if cfg.Width != 300 || cfg.Height != 225 {
		t.Errorf("thumbnail %dx%d, want 300x225", cfg.Width, cfg.Height)
	}

	// The catalog record now carries the thumbnail path.
	record, err := store.GetFileByPath(ctx, source)
	if err != nil || record == nil {
		t.Fatalf("GetFileByPath() = %v, %v", record, err)
	}
	if record.ThumbnailPath != thumbPath {
		t.Errorf("record thumbnail path = %q, want %q", record.ThumbnailPath, thumbPath)
	}
}

func TestGenerateCacheHit(t *testing.T) {
	store := newTestStore(t)
	gen := New(t.TempDir(), store)
	ctx := context.Background()

	source := writeTestImage(t, t.TempDir(), "photo.png", 400, 400)
	catalogImage(t, store, source)

	first, err := gen.Generate(ctx, source)
	if err != nil {
		t.Fatalf("Generate() #1 error = %v", err)
	}
	firstInfo, err := os.Stat(first)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}

	second, err := gen.Generate(ctx, source)
	if err != nil {
		t.Fatalf("Generate() #2 error = %v", err)
	}

	if first != second {
		t.Errorf("cache key not stable: %s then %s", first, second)
	}

	// The second call is a pure read; the artifact must not be rewritten.
	secondInfo, err := os.Stat(second)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !secondInfo.ModTime().Equal(firstInfo.ModTime()) {
		t.Error("cache hit rewrote the artifact")
	}
}

func TestGenerateMissingSource(t *testing.T) {
	store := newTestStore(t)
	gen := New(t.TempDir(), store)

	_, err := gen.Generate(context.Background(), filepath.Join(t.TempDir(), "gone.png"))
	if !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("Generate() error = %v, want ErrSourceNotFound", err)
	}
}

func TestGenerateUndecodableSource(t *testing.T) {
	store := newTestStore(t)
	gen := New(t.TempDir(), store)

	dir := t.TempDir()
	source := filepath.Join(dir, "corrupt.png")
	if err := os.WriteFile(source, []byte("this is not an image"), 0o644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	_, err := gen.Generate(context.Background(), source)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("Generate() error = %v, want ErrDecode", err)
	}
}

func TestGenerateUnscannedPath(t *testing.T) {
	store := newTestStore(t)
	gen := New(t.TempDir(), store)

	// Decodable image, but no catalog record for it.
	source := writeTestImage(t, t.TempDir(), "photo.png", 100, 100)

	_, err := gen.Generate(context.Background(), source)
	if !errors.Is(err, catalog.ErrRecordNotFound) {
		t.Errorf("Generate() error = %v, want ErrRecordNotFound", err)
	}
}

func TestCachePathDeterministic(t *testing.T) {
	gen := New(t.TempDir(), nil)

	a := gen.CachePath("/photos/a.jpg")
	b := gen.CachePath("/photos/a.jpg")
	c := gen.CachePath("/photos/b.jpg")

	if a != b {
		t.Errorf("CachePath not deterministic: %s vs %s", a, b)
	}
	if a == c {
		t.Errorf("distinct paths share a cache key: %s", a)
	}
	if !strings.HasSuffix(a, ".jpg") {
		t.Errorf("cache artifact missing .jpg suffix: %s", a)
	}
}

func TestGenerateConcurrentSamePath(t *testing.T) {
	store := newTestStore(t)
	gen := New(t.TempDir(), store)
	ctx := context.Background()

	source := writeTestImage(t, t.TempDir(), "photo.png", 200, 200)
	catalogImage(t, store, source)

	// Concurrent requests for the same path may duplicate work but must
	// all succeed with the same deterministic output path.
	var wg sync.WaitGroup
	paths := make([]string, 8)
	errs := make([]error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			paths[i], errs[i] = gen.Generate(ctx, source)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		if errs[i] != nil {
			t.Fatalf("concurrent Generate() #%d error = %v", i, errs[i])
		}
		if paths[i] != paths[0] {
			t.Errorf("concurrent Generate() diverged: %s vs %s", paths[i], paths[0])
		}
	}
}
