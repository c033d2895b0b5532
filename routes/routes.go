package routes

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"eventapi/middlewares"
	"eventapi/models"
	"eventapi/services"
	"eventapi/utils"
)

// deps is the handler dependency container; main passes in the concrete
// services so routes never touch a specific database.
type deps struct {
	users  models.UserRepository
	events services.EventService
	regs   services.RegistrationService
	images services.ImageService
	photos *services.UnsplashClient
	inv    *utils.CacheInvalidator
}

func RegisterRoutes(
	server *gin.Engine,
	u models.UserRepository,
	es services.EventService,
	rs services.RegistrationService,
	is services.ImageService,
	photos *services.UnsplashClient,
	rdb *redis.Client,
	inv *utils.CacheInvalidator,
) {
	d := &deps{users: u, events: es, regs: rs, images: is, photos: photos, inv: inv}

	server.Use(middlewares.RequestID)

	// Global per-IP limiter (20 rps / 40 burst).
	globalLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     20,
		Burst:   40,
		IdleTTL: 3 * time.Minute,
	})
	server.Use(globalLimiter.Middleware(func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}))

	// Cached event reads sit behind the request id and the IP limiter so a
	// hit is still tagged and still counts against the bucket.
	server.Use(middlewares.ResponseCache(rdb, 30*time.Second))

	// Stricter limiter on the credential endpoints.
	authLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     0.5,
		Burst:   2,
		IdleTTL: 10 * time.Minute,
	})
	server.POST("/api/auth/register",
		authLimiter.Middleware(func(c *gin.Context) string { return "register:" + c.ClientIP() }),
		d.registerUser,
	)
	server.POST("/api/auth/login",
		authLimiter.Middleware(func(c *gin.Context) string { return "login:" + c.ClientIP() }),
		d.login,
	)

	// Public reads.
	server.GET("/api/events", d.getEvents)
	server.GET("/api/events/upcoming", d.getUpcomingEvents)
	server.GET("/api/events/search", d.searchEvents)
	server.GET("/api/events/creator/:creatorId", d.getEventsByCreator)
	server.GET("/api/events/:id", d.getEvent)
	server.GET("/api/events/:id/images", d.getEventImages)
	server.GET("/api/events/:id/images/:imageId", d.getImage)

	// Authenticated group: per-user limiter plus a daily quota on top of the
	// global IP limiter.
	auth := server.Group("/api")
	auth.Use(middlewares.Authenticate)

	userLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     5,
		Burst:   10,
		IdleTTL: 10 * time.Minute,
	})
	auth.Use(userLimiter.Middleware(func(c *gin.Context) string {
		return "u:" + strconv.FormatInt(c.GetInt64("userId"), 10)
	}))

	auth.Use(middlewares.Quota(rdb, middlewares.QuotaRule{
		Limit:  2000,
		Window: 24 * time.Hour,
		KeyFn: func(c *gin.Context) string {
			uid := c.GetInt64("userId")
			if uid == 0 {
				return ""
			}
			return fmt.Sprintf("quota:user:%d:day", uid)
		},
	}))

	auth.GET("/users/me", d.getCurrentUser)
	auth.GET("/users", d.getUsers)
	auth.GET("/users/:id", d.getUser)
	auth.POST("/users", d.createUser)
	auth.PUT("/users/:id", d.updateUser)
	auth.DELETE("/users/:id", d.deleteUser)

	auth.POST("/events", d.createEvent)
	auth.PUT("/events/:id", d.updateEvent)
	auth.DELETE("/events/:id", d.deleteEvent)

	auth.POST("/events/:id/images", d.addImage)
	auth.POST("/events/:id/images/batch", d.addImagesBatch)
	auth.POST("/events/:id/images/keyword", d.addImagesByKeyword)
	auth.PUT("/events/:id/images/:imageId", d.updateImageOrder)
	auth.DELETE("/events/:id/images/all", d.deleteAllImages)
	auth.DELETE("/events/:id/images/:imageId", d.deleteImage)

	auth.POST("/registrations/user/:userId", d.registerForEvent)
	auth.GET("/registrations/:id", d.getRegistration)
	auth.GET("/registrations/user/:userId", d.getRegistrationsByUser)
	auth.GET("/registrations/event/:eventId", d.getRegistrationsByEvent)
	auth.PATCH("/registrations/:id/attendance", d.updateAttendance)
	auth.DELETE("/registrations/:id", d.cancelRegistration)
	auth.DELETE("/registrations/user/:userId/event/:eventId", d.cancelRegistrationByPair)
}

/* ---------------- shared helpers ---------------- */

// pageRequest reads page/size/sortBy/direction with the original API's
// defaults. Direction is normalized so repositories only see asc/desc.
func pageRequest(c *gin.Context, defaultSort, defaultDir string) models.PageRequest {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size <= 0 {
		size = 10
	}
	dir := c.DefaultQuery("direction", defaultDir)
	if dir != "asc" {
		dir = "desc"
	}
	return models.PageRequest{
		Page:      page,
		Size:      size,
		SortBy:    c.DefaultQuery("sortBy", defaultSort),
		Direction: dir,
	}
}

// pathID parses an integer path parameter, answering 400 itself on failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse " + name + "."})
		return 0, false
	}
	return id, true
}
