package fetch

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testClient() *Client {
	return NewClient(ClientConfig{
		Retries:     3,
		RetryDelay:  time.Millisecond,
		MaxFileSize: 1024,
		Timeout:     5 * time.Second,
	})
}

func TestFetchSuccess(t *testing.T) {
	body := []byte("fake image bytes")
	var gotUA, gotReferer string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotReferer = r.Header.Get("Referer")
		w.Write(body)
	}))
	defer server.Close()

	client := testClient()
	got, status, err := client.Fetch(context.Background(), server.URL+"/img/a.png")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("Expected status 200, got %d", status)
	}
	if !bytes.Equal(got, body) {
		t.Errorf("Expected body %q, got %q", body, got)
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("Expected default User-Agent, got %q", gotUA)
	}
	if gotReferer != server.URL+"/" {
		t.Errorf("Expected Referer %q, got %q", server.URL+"/", gotReferer)
	}
}

func TestFetchNotFoundIsFinal(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := testClient()
	_, status, err := client.Fetch(context.Background(), server.URL+"/missing.png")
	if err == nil {
		t.Fatal("Expected error for 404, got nil")
	}
	if status != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", status)
	}
	if n := atomic.LoadInt32(&attempts); n != 1 {
		t.Errorf("Expected 1 attempt for 404, got %d", n)
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer server.Close()

	client := testClient()
	got, status, err := client.Fetch(context.Background(), server.URL+"/flaky.png")
	if err != nil {
		t.Fatalf("Fetch failed after retries: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("Expected status 200, got %d", status)
	}
	if string(got) != "recovered" {
		t.Errorf("Expected body 'recovered', got %q", got)
	}
	if n := atomic.LoadInt32(&attempts); n != 3 {
		t.Errorf("Expected 3 attempts, got %d", n)
	}
}

func TestFetchExhaustsRetries(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := testClient()
	_, status, err := client.Fetch(context.Background(), server.URL+"/broken.png")
	if err == nil {
		t.Fatal("Expected error after exhausted retries, got nil")
	}
	if status != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", status)
	}
	if n := atomic.LoadInt32(&attempts); n != 3 {
		t.Errorf("Expected 3 attempts, got %d", n)
	}
}

func TestFetchFileTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(bytes.Repeat([]byte("x"), 2048))
	}))
	defer server.Close()

	client := testClient() // 1KB cap
	_, _, err := client.Fetch(context.Background(), server.URL+"/huge.png")
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("Expected ErrFileTooLarge, got %v", err)
	}
}

func TestFetchCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := testClient()
	_, _, err := client.Fetch(ctx, server.URL+"/slow.png")
	if err == nil {
		t.Fatal("Expected error for cancelled context, got nil")
	}
}
