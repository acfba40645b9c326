package utils

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func TestSha512String(t *testing.T) {
	got := Sha512String("password")
	if len(got) != 128 {
		t.Errorf("hex length = %d, want 128", len(got))
	}
	if got != Sha512String("password") {
		t.Error("hash is not deterministic")
	}
	if got == Sha512String("Password") {
		t.Error("different inputs collide")
	}
}

func TestCreateThumb(t *testing.T) {
	var src bytes.Buffer
	if err := png.Encode(&src, image.NewRGBA(image.Rect(0, 0, 800, 600))); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	var thumb bytes.Buffer
	result, err := CreateThumb(200, &src, &thumb)
	if err != nil {
		t.Fatalf("CreateThumb: %v", err)
	}
	if result.OldX != 800 || result.OldY != 600 {
		t.Errorf("original size = %dx%d, want 800x600", result.OldX, result.OldY)
	}
	if result.NewX > 200 || result.NewY > 200 {
		t.Errorf("thumb size = %dx%d, want bounded to 200", result.NewX, result.NewY)
	}
	if int64(thumb.Len()) != result.ThumbSize || thumb.Len() == 0 {
		t.Errorf("thumb bytes = %d, reported %d", thumb.Len(), result.ThumbSize)
	}
}
