package util

import (
	"net/http"
	"testing"
)

func TestNewProxyFunc_Explicit(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.local:8080", "http://secure.local:8443", "internal.example")

	req, _ := http.NewRequest(http.MethodGet, "https://api.example.com/v1", nil)
	u, err := proxy(req)
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if u == nil || u.Host != "secure.local:8443" {
		t.Errorf("expected https proxy secure.local:8443, got %v", u)
	}

	req, _ = http.NewRequest(http.MethodGet, "http://api.example.com/v1", nil)
	u, _ = proxy(req)
	if u == nil || u.Host != "proxy.local:8080" {
		t.Errorf("expected http proxy proxy.local:8080, got %v", u)
	}

	req, _ = http.NewRequest(http.MethodGet, "http://internal.example/v1", nil)
	u, _ = proxy(req)
	if u != nil {
		t.Errorf("expected no proxy for excluded host, got %v", u)
	}
}

func TestNewProxyFunc_HTTPSFallsBackToHTTP(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.local:8080", "", "")

	req, _ := http.NewRequest(http.MethodGet, "https://api.example.com", nil)
	u, err := proxy(req)
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if u == nil || u.Host != "proxy.local:8080" {
		t.Errorf("expected proxy.local:8080, got %v", u)
	}
}
