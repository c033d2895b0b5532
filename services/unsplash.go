package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"eventapi/models"
)

const unsplashAttribution = "?utm_source=event_management&utm_medium=referral"

// UnsplashClient fetches random photos for a keyword so events can be
// pre-populated with images.
type UnsplashClient struct {
	baseURL   string
	accessKey string
	http      *http.Client
}

func NewUnsplashClient(baseURL, accessKey string) *UnsplashClient {
	return &UnsplashClient{
		baseURL:   baseURL,
		accessKey: accessKey,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether an access key is configured.
func (u *UnsplashClient) Enabled() bool { return u.accessKey != "" }

type unsplashPhoto struct {
	URLs struct {
		Regular string `json:"regular"`
	} `json:"urls"`
	User struct {
		Name     string `json:"name"`
		Username string `json:"username"`
	} `json:"user"`
}

// GetRandomImages returns up to count (clamped to 1..4) image payloads with
// display orders 1..n and the attribution query string Unsplash requires.
func (u *UnsplashClient) GetRandomImages(ctx context.Context, keyword string, count int) ([]models.ImageCreation, error) {
	if count < 1 {
		count = 1
	}
	if count > MaxImagesPerEvent {
		count = MaxImagesPerEvent
	}

	q := url.Values{}
	q.Set("query", keyword)
	q.Set("count", strconv.Itoa(count))
	q.Set("client_id", u.accessKey)
	q.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		u.baseURL+"/photos/random?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := u.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unsplash request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unsplash responded %d", resp.StatusCode)
	}

	var photos []unsplashPhoto
	if err := json.NewDecoder(resp.Body).Decode(&photos); err != nil {
		return nil, fmt.Errorf("unsplash decode: %w", err)
	}

	images := make([]models.ImageCreation, 0, len(photos))
	for i, p := range photos {
		if p.URLs.Regular == "" {
			continue
		}
		images = append(images, models.ImageCreation{
			ImageURL:     p.URLs.Regular + unsplashAttribution,
			DisplayOrder: i + 1,
		})
	}
	return images, nil
}
