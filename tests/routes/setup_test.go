package tests

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"eventapi/models"
	"eventapi/routes"
	"eventapi/services"
	"eventapi/tests/mocks"
	"eventapi/utils"
)

/* ---------- shared fixture ---------- */

type serverDeps struct {
	s      *gin.Engine
	users  *mocks.MockUserRepo
	events *mocks.MockEventRepo
	regs   *mocks.MockRegRepo
	images *mocks.MockImageRepo
	mailer *mocks.RecordingMailer
	es     services.EventService
	rs     services.RegistrationService
}

// setupServer builds a full server per test: fresh limiters, fresh
// miniredis, fresh mock repos. Photo search stays disabled.
func setupServer(t *testing.T) serverDeps {
	return setupServerWithPhotos(t, services.NewUnsplashClient("http://127.0.0.1:0", ""))
}

func setupServerWithPhotos(t *testing.T, photos *services.UnsplashClient) serverDeps {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	t.Cleanup(func() { mr.Close() })
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	inv := utils.NewCacheInvalidator(rdb)

	d := serverDeps{
		users:  mocks.NewMockUserRepo(),
		events: mocks.NewMockEventRepo(),
		regs:   mocks.NewMockRegRepo(),
		images: mocks.NewMockImageRepo(),
		mailer: &mocks.RecordingMailer{},
	}
	d.es = services.NewEventService(d.events, d.regs, d.images)
	d.rs = services.NewRegistrationService(d.regs, d.users, d.es, d.mailer)
	is := services.NewImageService(d.images)

	s := gin.New()
	routes.RegisterRoutes(s, d.users, d.es, d.rs, is, photos, rdb, inv)
	d.s = s
	return d
}

func authToken(t *testing.T, uid int64) string {
	t.Helper()
	token, err := utils.GenerateToken("tester@example.com", uid)
	if err != nil {
		t.Fatalf("gen token: %v", err)
	}
	return token
}

func doReq(s *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	s.ServeHTTP(w, req)
	return w
}

func seedUser(d serverDeps, name, email string, admin bool) int64 {
	return d.users.Seed(models.User{Name: name, Email: email, Password: "pw", IsAdmin: admin})
}
