package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func testImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func asJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, testImage(w, h, color.RGBA{255, 0, 0, 255}), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encoding test JPEG: %v", err)
	}
	return buf.Bytes()
}

func asPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(w, h, color.RGBA{0, 0, 255, 255})); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}
	return buf.Bytes()
}

func TestNormalizeJPEGAndPNG(t *testing.T) {
	for name, data := range map[string][]byte{
		"jpeg": asJPEG(t, 100, 100),
		"png":  asPNG(t, 100, 100),
	} {
		photo, err := Normalize(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("Normalize %s: %v", name, err)
		}
		if photo.MIME != "image/jpeg" {
			t.Errorf("%s: MIME = %s, want image/jpeg", name, photo.MIME)
		}
		if len(photo.Data) == 0 {
			t.Errorf("%s: empty output", name)
		}
	}
}

func TestNormalizeDownscales(t *testing.T) {
	photo, err := Normalize(bytes.NewReader(asJPEG(t, 1600, 1200)))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(photo.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		t.Errorf("result %dx%d exceeds max %d", bounds.Dx(), bounds.Dy(), MaxDimension)
	}
	// Aspect ratio 4:3 preserved.
	if bounds.Dx() != MaxDimension || bounds.Dy() != MaxDimension*3/4 {
		t.Errorf("unexpected dimensions %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestNormalizeNeverUpscales(t *testing.T) {
	photo, err := Normalize(bytes.NewReader(asJPEG(t, 40, 60)))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(photo.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 60 {
		t.Errorf("small image resized to %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestNormalizeRejectsOtherFormats(t *testing.T) {
	for name, data := range map[string][]byte{
		"text": []byte("not an image"),
		"gif":  []byte("GIF89a..."),
	} {
		if _, err := Normalize(bytes.NewReader(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestNormalizeRejectsOversizedUpload(t *testing.T) {
	big := bytes.Repeat([]byte{0xff, 0xd8, 0xff, 0x00}, MaxUploadBytes/4+1)
	if _, err := Normalize(bytes.NewReader(big)); err == nil {
		t.Error("expected error for oversized upload")
	}
}
