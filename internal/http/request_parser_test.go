package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestBodyParser_JSON(t *testing.T) {
	body := `{"name": "  Maria  ", "amount": 1000.555, "church_id": null}`
	req := httptest.NewRequest(http.MethodPost, "/api/members", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	p := NewRequestBodyParser(req)
	fields, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !p.IsJSON() {
		t.Error("IsJSON() should be true")
	}
	if got := fields["name"]; got != "Maria" {
		t.Errorf("name = %q, want %q", got, "Maria")
	}
	if n, ok := fields["amount"].(json.Number); !ok || n.String() != "1000.555" {
		t.Errorf("amount = %#v, want json.Number 1000.555", fields["amount"])
	}
	if v, ok := fields["church_id"]; !ok || v != nil {
		t.Errorf("church_id = %#v, want present nil", v)
	}
}

func TestRequestBodyParser_JSONWithoutContentType(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"kind":"Expense"}`))

	fields, err := NewRequestBodyParser(req).Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if fields["kind"] != "Expense" {
		t.Errorf("kind = %v", fields["kind"])
	}
}

func TestRequestBodyParser_Form(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=Jo%C3%A3o&role=Deacon&notes=a%00b"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	p := NewRequestBodyParser(req)
	fields, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.IsJSON() {
		t.Error("IsJSON() should be false for form data")
	}
	if fields["name"] != "João" || fields["role"] != "Deacon" {
		t.Errorf("fields = %v", fields)
	}
	if fields["notes"] != "ab" {
		t.Errorf("control characters should be dropped, got %q", fields["notes"])
	}
}

func TestRequestBodyParser_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("   "))

	fields, err := NewRequestBodyParser(req).Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(fields) != 0 {
		t.Errorf("expected no fields, got %v", fields)
	}
}

func TestRequestBodyParser_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{"name":`},
		{"array body", `[1,2]`},
		{"scalar JSON", `"hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			p := NewRequestBodyParser(req)
			if _, err := p.Parse(); err == nil {
				t.Fatal("expected an error")
			}
			// A second call returns the cached result.
			if _, err := p.Parse(); err == nil {
				t.Fatal("expected the cached error")
			}
		})
	}
}

func TestRequestBodyParser_TooLarge(t *testing.T) {
	big := `{"notes":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))

	if _, err := NewRequestBodyParser(req).Parse(); err == nil {
		t.Fatal("expected an error for an oversized body")
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := map[string]string{
		"  plain  ":      "plain",
		"tab\tkept":      "tab\tkept",
		"bell\x07gone":   "bellgone",
		"line\nbreak":    "line\nbreak",
		"":               "",
	}
	for in, want := range tests {
		if got := sanitizeInput(in); got != want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", in, got, want)
		}
	}
}
