package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/psu-oas/alumni-dashboard/apps/api/internal/business/alumni"
	"github.com/psu-oas/alumni-dashboard/apps/api/internal/platform/metrics"
	"go.uber.org/zap"
)

// Router wires HTTP handlers.
type Router struct {
	alumni  *alumni.Service
	logger  *zap.Logger
	origins string
}

func NewRouter(svc *alumni.Service, logger *zap.Logger, allowedOrigins string) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Router{
		alumni:  svc,
		logger:  logger,
		origins: allowedOrigins,
	}

	router := gin.New()
	router.Use(r.requestLogger(), gin.Recovery(), r.corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api/alumni")
	{
		api.GET("/campus-faculty-major", r.orgCounts)
		api.GET("/campus-faculty-major/tree", r.orgTree)
		api.GET("/count-alumni-location", r.locationTree)
	}

	return router
}

func (r *Router) corsMiddleware() gin.HandlerFunc {
	origins := strings.Split(r.origins, ",")
	trimmed := make([]string, 0, len(origins))
	for _, o := range origins {
		if t := strings.TrimSpace(o); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := "*"
		for _, o := range trimmed {
			if o == "*" || o == origin {
				allowed = origin
				break
			}
		}
		c.Header("Access-Control-Allow-Origin", allowed)
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (r *Router) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		r.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("bytes", c.Writer.Size()),
		)
	}
}

// orgCounts proxies the faculty/major counts body unchanged.
func (r *Router) orgCounts(c *gin.Context) {
	body, err := r.alumni.OrgCounts(c.Request.Context())
	if errors.Is(err, alumni.ErrInvalidFormat) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":                "Invalid data format from external API",
			"faculty_major_counts": []any{},
		})
		return
	}
	if err != nil {
		r.logger.Error("fetch org counts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":                "Internal Server Error: " + err.Error(),
			"faculty_major_counts": []any{},
		})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (r *Router) orgTree(c *gin.Context) {
	tree, err := r.alumni.OrgTree(c.Request.Context())
	if err != nil {
		r.logger.Error("build org tree", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "tree": []any{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tree": tree, "total": alumni.OrgTotal(tree)})
}

func (r *Router) locationTree(c *gin.Context) {
	tree, err := r.alumni.LocationTree(c.Request.Context())
	if err != nil {
		r.logger.Error("build location tree", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process location data"})
		return
	}
	c.JSON(http.StatusOK, tree)
}
