package routes

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"eventmanager/middlewares"
	"eventmanager/models"
	"eventmanager/utils"
)

// deps is the handler dependency container, filled by main.
type deps struct {
	clients models.ClientRepository
	parts   models.ParticipantRepository
	events  models.EventRepository
	inv     *utils.CacheInvalidator
	policy  *utils.PasswordPolicy
}

func RegisterRoutes(
	server *gin.Engine,
	c models.ClientRepository,
	p models.ParticipantRepository,
	e models.EventRepository,
	rdb *redis.Client,
	inv *utils.CacheInvalidator,
	policy *utils.PasswordPolicy,
) {
	d := &deps{clients: c, parts: p, events: e, inv: inv, policy: policy}

	// ===== global IP rate limit (20 rps / 40 burst) =====
	globalLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     20,
		Burst:   40,
		IdleTTL: 3 * time.Minute,
	})
	server.Use(globalLimiter.Middleware(func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}))

	// ===== tighter limit on /signup and /login (0.5 rps per IP) =====
	authLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     0.5,
		Burst:   2,
		IdleTTL: 10 * time.Minute,
	})
	server.POST("/signup",
		authLimiter.Middleware(func(c *gin.Context) string { return "signup:" + c.ClientIP() }),
		d.signup,
	)
	server.POST("/login",
		authLimiter.Middleware(func(c *gin.Context) string { return "login:" + c.ClientIP() }),
		d.login,
	)

	// ===== protected group: authenticate, then per-user limit + daily quota =====
	auth := server.Group("/")
	auth.Use(middlewares.Authenticate) // puts userId into the context

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

	// public endpoints (global IP limit + response cache only)
	server.GET("/events", d.getEvents)
	server.GET("/events/:id", d.getEvent)

	// authenticated endpoints
	auth.GET("/events/my-events", d.getMyEvents)
	auth.GET("/events/my-created", d.getMyCreatedEvents)
	auth.POST("/events", d.createEvent)
	auth.PUT("/events/:id", d.updateEvent)
	auth.DELETE("/events/:id", d.deleteEvent)
	auth.POST("/events/join", d.joinEvent)
	auth.POST("/events/:id/leave", d.leaveEvent)
}
