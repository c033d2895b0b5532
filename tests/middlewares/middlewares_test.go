package tests

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"eventapi/middlewares"
	"eventapi/utils"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	t.Cleanup(func() { mr.Close() })
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func get(s *gin.Engine, path string, header map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	s.ServeHTTP(w, req)
	return w
}

/* ---------------- auth ---------------- */

func TestAuthenticate_MissingTokenIs401(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := gin.New()
	s.GET("/secret", middlewares.Authenticate, func(c *gin.Context) { c.Status(http.StatusOK) })

	if w := get(s, "/secret", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthenticate_GarbageTokenIs401(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := gin.New()
	s.GET("/secret", middlewares.Authenticate, func(c *gin.Context) { c.Status(http.StatusOK) })

	w := get(s, "/secret", map[string]string{"Authorization": "Bearer not.a.token"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthenticate_AcceptsBearerAndBareToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	token, err := utils.GenerateToken("ada@example.com", 7)
	if err != nil {
		t.Fatalf("gen token: %v", err)
	}

	var seenID int64
	s := gin.New()
	s.GET("/secret", middlewares.Authenticate, func(c *gin.Context) {
		seenID = c.GetInt64("userId")
		c.Status(http.StatusOK)
	})

	for _, header := range []string{token, "Bearer " + token} {
		seenID = 0
		w := get(s, "/secret", map[string]string{"Authorization": header})
		if w.Code != http.StatusOK {
			t.Fatalf("header %q: expected 200, got %d", header, w.Code)
		}
		if seenID != 7 {
			t.Errorf("header %q: userId = %d, want 7", header, seenID)
		}
	}
}

/* ---------------- request id ---------------- */

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := gin.New()
	s.Use(middlewares.RequestID)
	s.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := get(s, "/", nil)
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected a generated X-Request-ID")
	}
}

func TestRequestID_PassesInboundThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := gin.New()
	s.Use(middlewares.RequestID)
	s.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := get(s, "/", map[string]string{"X-Request-ID": "abc-123"})
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}
}

/* ---------------- rate limiter ---------------- */

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := middlewares.NewRateLimiter(middlewares.LimiterConfig{RPS: 0.01, Burst: 3, IdleTTL: time.Minute})
	s := gin.New()
	s.Use(rl.Middleware(func(c *gin.Context) string { return "ip:" + c.ClientIP() }))
	s.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		if w := get(s, "/", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}
	w := get(s, "/", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("expected a Retry-After header")
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := middlewares.NewRateLimiter(middlewares.LimiterConfig{RPS: 0.01, Burst: 1, IdleTTL: time.Minute})
	s := gin.New()
	s.Use(rl.Middleware(func(c *gin.Context) string { return c.GetHeader("X-Key") }))
	s.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	if w := get(s, "/", map[string]string{"X-Key": "a"}); w.Code != http.StatusOK {
		t.Fatalf("key a: expected 200, got %d", w.Code)
	}
	if w := get(s, "/", map[string]string{"X-Key": "a"}); w.Code != http.StatusTooManyRequests {
		t.Fatalf("key a again: expected 429, got %d", w.Code)
	}
	if w := get(s, "/", map[string]string{"X-Key": "b"}); w.Code != http.StatusOK {
		t.Fatalf("key b: expected its own bucket, got %d", w.Code)
	}
}

/* ---------------- quota ---------------- */

func TestQuota_BlocksOverBudget(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb := newRedis(t)
	s := gin.New()
	s.Use(middlewares.Quota(rdb, middlewares.QuotaRule{
		Limit:  2,
		Window: time.Hour,
		KeyFn:  func(c *gin.Context) string { return "quota:test" },
	}))
	s.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := get(s, "/", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
		want := fmt.Sprintf("%d/2", i+1)
		if got := w.Header().Get("X-Quota-Used"); got != want {
			t.Errorf("X-Quota-Used = %q, want %q", got, want)
		}
	}
	if w := get(s, "/", nil); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 over budget, got %d", w.Code)
	}
}

func TestQuota_EmptyKeySkipsCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb := newRedis(t)
	s := gin.New()
	s.Use(middlewares.Quota(rdb, middlewares.QuotaRule{
		Limit:  1,
		Window: time.Hour,
		KeyFn:  func(c *gin.Context) string { return "" },
	}))
	s.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		if w := get(s, "/", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}
}

/* ---------------- response cache ---------------- */

func TestResponseCache_SecondReadIsAHit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb := newRedis(t)

	handlerCalls := 0
	s := gin.New()
	s.Use(middlewares.ResponseCache(rdb, 30*time.Second))
	s.GET("/api/events", func(c *gin.Context) {
		handlerCalls++
		c.JSON(http.StatusOK, gin.H{"calls": handlerCalls})
	})

	first := get(s, "/api/events", nil)
	if first.Code != http.StatusOK {
		t.Fatalf("first: expected 200, got %d", first.Code)
	}

	second := get(s, "/api/events", nil)
	if second.Code != http.StatusOK {
		t.Fatalf("second: expected 200, got %d", second.Code)
	}
	if second.Header().Get("X-Cache") != "HIT" {
		t.Errorf("second: X-Cache = %q, want HIT", second.Header().Get("X-Cache"))
	}
	if handlerCalls != 1 {
		t.Errorf("handler ran %d times, want 1", handlerCalls)
	}
	if first.Body.String() != second.Body.String() {
		t.Errorf("cached body differs: %q vs %q", first.Body.String(), second.Body.String())
	}
}

func TestResponseCache_IgnoresNonEventRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb := newRedis(t)

	handlerCalls := 0
	s := gin.New()
	s.Use(middlewares.ResponseCache(rdb, 30*time.Second))
	s.GET("/api/users", func(c *gin.Context) {
		handlerCalls++
		c.JSON(http.StatusOK, gin.H{"calls": handlerCalls})
	})

	get(s, "/api/users", nil)
	get(s, "/api/users", nil)
	if handlerCalls != 2 {
		t.Errorf("handler ran %d times, want 2 (no caching)", handlerCalls)
	}
}

func TestResponseCache_ImageRouteNotServedEventBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb := newRedis(t)

	imageCalls := 0
	s := gin.New()
	s.Use(middlewares.ResponseCache(rdb, 30*time.Second))
	s.GET("/api/events/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"kind": "event"})
	})
	s.GET("/api/events/:id/images", func(c *gin.Context) {
		imageCalls++
		c.JSON(http.StatusOK, []string{"image-list"})
	})

	if w := get(s, "/api/events/5", nil); w.Code != http.StatusOK {
		t.Fatalf("prime: expected 200, got %d", w.Code)
	}

	w := get(s, "/api/events/5/images", nil)
	if w.Header().Get("X-Cache") == "HIT" {
		t.Error("image listing must not hit the event's cache entry")
	}
	if imageCalls != 1 {
		t.Errorf("image handler ran %d times, want 1", imageCalls)
	}
	if got := w.Body.String(); got != `["image-list"]` {
		t.Errorf("body = %q, want the image listing", got)
	}
}

func TestResponseCache_ItemKeysScopedToEventID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb := newRedis(t)

	s := gin.New()
	s.Use(middlewares.ResponseCache(rdb, 30*time.Second))
	s.GET("/api/events/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})

	get(s, "/api/events/1", nil)
	w := get(s, "/api/events/2", nil)
	if w.Header().Get("X-Cache") == "HIT" {
		t.Error("different event ids must not share a cache entry")
	}
	if got := w.Body.String(); got != `{"id":"2"}` {
		t.Errorf("body = %q, want event 2's own body", got)
	}
}

func TestResponseCache_CreatorKeysScopedToCreatorID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb := newRedis(t)

	s := gin.New()
	s.Use(middlewares.ResponseCache(rdb, 30*time.Second))
	s.GET("/api/events/creator/:creatorId", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"creator": c.Param("creatorId")})
	})

	get(s, "/api/events/creator/1", nil)
	w := get(s, "/api/events/creator/2", nil)
	if w.Header().Get("X-Cache") == "HIT" {
		t.Error("different creators must not share a cache entry")
	}
}

func TestCacheInvalidator_PurgesListAndItemKeys(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb := newRedis(t)
	inv := utils.NewCacheInvalidator(rdb)
	ctx := context.Background()

	rdb.Set(ctx, "cache:events:list:aaa", "x", 0)
	rdb.Set(ctx, "cache:events:item:bbb", "x", 0)
	rdb.Set(ctx, "cache:other:ccc", "x", 0)

	inv.PurgeEventsList(ctx)
	inv.PurgeEventItem(ctx, 1)

	if n, _ := rdb.Exists(ctx, "cache:events:list:aaa").Result(); n != 0 {
		t.Error("list key should be purged")
	}
	if n, _ := rdb.Exists(ctx, "cache:events:item:bbb").Result(); n != 0 {
		t.Error("item key should be purged")
	}
	if n, _ := rdb.Exists(ctx, "cache:other:ccc").Result(); n != 1 {
		t.Error("unrelated key must survive")
	}
}

func TestResponseCache_InvalidationForcesRefetch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb := newRedis(t)
	inv := utils.NewCacheInvalidator(rdb)

	handlerCalls := 0
	s := gin.New()
	s.Use(middlewares.ResponseCache(rdb, 30*time.Second))
	s.GET("/api/events", func(c *gin.Context) {
		handlerCalls++
		c.JSON(http.StatusOK, gin.H{"calls": handlerCalls})
	})

	get(s, "/api/events", nil)
	get(s, "/api/events", nil) // hit
	inv.PurgeEventsList(context.Background())
	get(s, "/api/events", nil) // refilled

	if handlerCalls != 2 {
		t.Errorf("handler ran %d times, want 2", handlerCalls)
	}
}
