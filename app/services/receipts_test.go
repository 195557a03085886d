package services_test

import (
	"bytes"
	"testing"
	"time"

	"apex-academy/app/services"
)

func TestFormatReceiptReference(t *testing.T) {
	day := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		seq  int
		want string
	}{
		{1, "RCP-20250310-0001"},
		{42, "RCP-20250310-0042"},
		{9999, "RCP-20250310-9999"},
		{10000, "RCP-20250310-10000"},
	}

	for _, tt := range tests {
		if got := services.FormatReceiptReference(day, tt.seq); got != tt.want {
			t.Errorf("FormatReceiptReference(%d) = %q, want %q", tt.seq, got, tt.want)
		}
	}
}

func TestReceiptQRPayload(t *testing.T) {
	tests := []struct {
		name      string
		baseURL   string
		reference string
		want      string
	}{
		{"with base url", "https://academy.example.com", "RCP-20250310-0001", "https://academy.example.com/receipts/RCP-20250310-0001"},
		{"trailing slash trimmed", "https://academy.example.com/", "RCP-20250310-0001", "https://academy.example.com/receipts/RCP-20250310-0001"},
		{"no base url", "", "RCP-20250310-0001", "RCP-20250310-0001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.ReceiptQRPayload(tt.baseURL, tt.reference); got != tt.want {
				t.Errorf("ReceiptQRPayload() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReceiptQRCode(t *testing.T) {
	png, err := services.ReceiptQRCode("https://academy.example.com", "RCP-20250310-0001")
	if err != nil {
		t.Fatalf("ReceiptQRCode() error = %v", err)
	}
	if len(png) == 0 {
		t.Fatal("ReceiptQRCode() returned empty image")
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("ReceiptQRCode() did not return a PNG image")
	}
}
