package llm

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGeminiProvider_MissingKey(t *testing.T) {
	p := NewGeminiProvider(GeminiConfig{})

	_, err := p.GenerateText(context.Background(), "prompt")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("GenerateText() error = %v, want ErrMissingAPIKey", err)
	}
}

func TestGeminiProvider_Defaults(t *testing.T) {
	p := NewGeminiProvider(GeminiConfig{APIKey: "k"})
	if p.Model() != DefaultGeminiModel {
		t.Errorf("Model() = %q, want %q", p.Model(), DefaultGeminiModel)
	}
	if p.Name() != "gemini" {
		t.Errorf("Name() = %q", p.Name())
	}
}

func TestGeminiProvider_GenerateText(t *testing.T) {
	var path, body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Great work today."}]}}]}`)
	}))
	defer srv.Close()

	p := NewGeminiProvider(GeminiConfig{APIKey: "test-key", Grounding: true, BaseURL: srv.URL})
	got, err := p.GenerateText(context.Background(), "Analyze: ME: hi")
	if err != nil {
		t.Fatalf("GenerateText() error = %v", err)
	}

	if got != "Great work today." {
		t.Errorf("GenerateText() = %q", got)
	}
	if !strings.HasSuffix(path, "/models/gemini-2.5-flash:generateContent") {
		t.Errorf("request path = %q", path)
	}
	if !strings.Contains(body, "Analyze: ME: hi") {
		t.Errorf("request body missing prompt: %s", body)
	}
	if !strings.Contains(body, "googleSearch") {
		t.Errorf("request body missing search grounding tool: %s", body)
	}
}

func TestGeminiProvider_NoGrounding(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"ok"}]}}]}`)
	}))
	defer srv.Close()

	p := NewGeminiProvider(GeminiConfig{APIKey: "test-key", BaseURL: srv.URL})
	if _, err := p.GenerateText(context.Background(), "prompt"); err != nil {
		t.Fatalf("GenerateText() error = %v", err)
	}
	if strings.Contains(body, "googleSearch") {
		t.Errorf("grounding disabled but request has search tool: %s", body)
	}
}

func TestGeminiProvider_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`)
	}))
	defer srv.Close()

	p := NewGeminiProvider(GeminiConfig{APIKey: "test-key", BaseURL: srv.URL})
	if _, err := p.GenerateText(context.Background(), "prompt"); err == nil {
		t.Error("GenerateText() should fail on a 400")
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		wantName string
		wantErr  bool
	}{
		{name: "", wantName: "gemini"},
		{name: "gemini", wantName: "gemini"},
		{name: "bedrock", wantName: "bedrock"},
		{name: "openai", wantErr: true},
	}

	for _, tt := range tests {
		p, err := NewProvider(ProviderConfig{Name: tt.name})
		if (err != nil) != tt.wantErr {
			t.Fatalf("NewProvider(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if !tt.wantErr && p.Name() != tt.wantName {
			t.Errorf("NewProvider(%q).Name() = %q, want %q", tt.name, p.Name(), tt.wantName)
		}
	}
}
