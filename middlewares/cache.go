package middlewares

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/gob"
	"encoding/hex"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type cachedBody struct {
	Status int
	Header map[string][]string
	Body   []byte
}

// sha1Hex keeps Redis keys short regardless of query-string length.
func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// CacheKeyFrom namespaces keys by list vs item so the invalidator can purge
// them separately. Only GET requests on the event routes are cacheable; the
// image routes are not, their listings change on every upload.
func CacheKeyFrom(c *gin.Context) (string, string) {
	if c.Request.Method != "GET" {
		return "", ""
	}
	rawq := c.Request.URL.RawQuery

	switch c.FullPath() {
	case "/api/events/:id":
		return "cache:events:item:" + sha1Hex("GET|/api/events/"+c.Param("id")), "item"
	case "/api/events", "/api/events/upcoming", "/api/events/search":
		return "cache:events:list:" + sha1Hex("GET|"+c.FullPath()+"|"+rawq), "list"
	case "/api/events/creator/:creatorId":
		return "cache:events:list:" + sha1Hex("GET|/api/events/creator/"+c.Param("creatorId")+"|"+rawq), "list"
	default:
		return "", ""
	}
}

// ResponseCache serves cached 2xx GET responses from Redis and marks them
// with an X-Cache header.
func ResponseCache(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, _ := CacheKeyFrom(c)
		if key == "" {
			c.Next()
			return
		}

		if b, err := rdb.Get(context.Background(), key).Bytes(); err == nil && len(b) > 0 {
			var hit cachedBody
			if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&hit); err == nil {
				// Stop the chain before replying, or the real handler
				// appends a second body after ours.
				c.Abort()
				for k, vals := range hit.Header {
					for _, v := range vals {
						c.Writer.Header().Add(k, v)
					}
				}
				c.Writer.Header().Set("X-Cache", "HIT")
				c.Status(hit.Status)
				_, _ = c.Writer.Write(hit.Body)
				return
			}
		}

		// Miss: intercept the response body while the handler runs.
		buf := &bytes.Buffer{}
		bw := &bufferedWriter{ResponseWriter: c.Writer, buf: buf}
		c.Writer = bw
		c.Writer.Header().Set("X-Cache", "MISS")

		c.Next()

		// Only 2xx responses are worth keeping. The request id is the one
		// header that must stay per-request, so it is not replayed.
		if bw.Status() >= 200 && bw.Status() < 300 {
			hdr := make(map[string][]string, len(c.Writer.Header()))
			for k, vals := range c.Writer.Header() {
				if k == "X-Request-Id" || k == "X-Cache" {
					continue
				}
				hdr[k] = vals
			}
			item := cachedBody{
				Status: bw.Status(),
				Header: hdr,
				Body:   buf.Bytes(),
			}
			var o bytes.Buffer
			if err := gob.NewEncoder(&o).Encode(item); err == nil {
				_ = rdb.Set(context.Background(), key, o.Bytes(), ttl).Err()
			}
		}
	}
}

type bufferedWriter struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}
