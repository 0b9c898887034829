package ocr

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Language != "eng" {
		t.Errorf("Language = %q, want eng", cfg.Language)
	}
	if cfg.Whitelist != LabelChars {
		t.Errorf("Whitelist = %q, want LabelChars", cfg.Whitelist)
	}
}

func TestNewTesseractRequiresLanguage(t *testing.T) {
	if _, err := NewTesseract(Config{}); err == nil {
		t.Fatal("expected error for empty language")
	}
}
