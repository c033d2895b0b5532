package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"eventapi/services"
)

func fakeUnsplash(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/photos/random" {
			http.NotFound(w, r)
			return
		}
		count, _ := strconv.Atoi(r.URL.Query().Get("count"))
		photos := make([]map[string]any, 0, count)
		for i := 0; i < count; i++ {
			photos = append(photos, map[string]any{
				"urls": map[string]string{"regular": "https://images.example.com/" + strconv.Itoa(i)},
				"user": map[string]string{"name": "Jane Doe", "username": "janedoe"},
			})
		}
		_ = json.NewEncoder(w).Encode(photos)
	}))
}

func TestUnsplash_GetRandomImages(t *testing.T) {
	srv := fakeUnsplash(t)
	defer srv.Close()

	cl := services.NewUnsplashClient(srv.URL, "test-key")
	images, err := cl.GetRandomImages(context.Background(), "conference", 3)
	if err != nil {
		t.Fatalf("GetRandomImages: %v", err)
	}
	if len(images) != 3 {
		t.Fatalf("want 3 images, got %d", len(images))
	}
	for i, im := range images {
		if im.DisplayOrder != i+1 {
			t.Fatalf("image %d has order %d", i, im.DisplayOrder)
		}
		if !strings.Contains(im.ImageURL, "utm_source=event_management") {
			t.Fatalf("missing attribution suffix: %q", im.ImageURL)
		}
	}
}

func TestUnsplash_CountClamped(t *testing.T) {
	srv := fakeUnsplash(t)
	defer srv.Close()

	cl := services.NewUnsplashClient(srv.URL, "test-key")

	images, err := cl.GetRandomImages(context.Background(), "conference", 99)
	if err != nil {
		t.Fatalf("GetRandomImages: %v", err)
	}
	if len(images) != services.MaxImagesPerEvent {
		t.Fatalf("count not clamped down: got %d", len(images))
	}

	images, err = cl.GetRandomImages(context.Background(), "conference", -3)
	if err != nil {
		t.Fatalf("GetRandomImages: %v", err)
	}
	if len(images) != 1 {
		t.Fatalf("count not clamped up: got %d", len(images))
	}
}

func TestUnsplash_Non200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	cl := services.NewUnsplashClient(srv.URL, "test-key")
	if _, err := cl.GetRandomImages(context.Background(), "conference", 2); err == nil {
		t.Fatal("want error on 403 response")
	}
}
