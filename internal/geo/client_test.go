package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCoordinatesSuccess(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"latitude": 51.5, "longitude": -0.12, "city": "London"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	pos, err := client.Coordinates(context.Background())
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if pos.Latitude != 51.5 || pos.Longitude != -0.12 {
		t.Fatalf("unexpected position: %+v", pos)
	}
}

func TestCoordinatesNonOKStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	if _, err := client.Coordinates(context.Background()); err == nil {
		t.Fatalf("expected status error")
	}
}

func TestCoordinatesRespectsContextCancellation(t *testing.T) {
	t.Parallel()

	blocked := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-blocked
	}))
	defer server.Close()
	defer close(blocked)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewClient(server.URL, time.Minute)
	if _, err := client.Coordinates(ctx); err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestCoordinatesBadPayload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	if _, err := client.Coordinates(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}
