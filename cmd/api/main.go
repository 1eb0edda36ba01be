package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"signsheet/internal/config"
	"signsheet/internal/confirm"
	"signsheet/internal/eventcfg"
	"signsheet/internal/handler"
	"signsheet/internal/httpmiddleware"
	"signsheet/internal/queue"
	"signsheet/internal/record"
	"signsheet/internal/store"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	db, err := store.Open(cfg.DBBackend, cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	var redisClient *store.Redis
	var q queue.Queue
	if cfg.QueueBackend == "redis" {
		redisClient = store.NewRedis(cfg.RedisAddr)
		q = queue.NewRedisQueue(redisClient.Client, "signsheet:submissions")
	} else {
		q = queue.NewInMemory(64)
	}

	repo := record.NewRepository(db)
	gate := confirm.New(cfg.ConfirmWindow)
	svc := record.NewService(repo, gate, q)
	events := eventcfg.NewStore(db)
	h := handler.New(svc, events, cfg)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/healthz", "/metrics"},
	}))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           24 * time.Hour,
	}))
	r.Use(securityHeaders())
	r.Use(httpmiddleware.RequestID())
	r.Use(httpmiddleware.NewTokenBucket(cfg.RateLimitPerMin).GinMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/api/healthz", func(c *gin.Context) {
		status := http.StatusOK
		res := gin.H{"status": "ok", "backend": db.Backend}
		if redisClient != nil {
			healthy := redisClient.Healthy(c.Request.Context())
			res["redis"] = healthy
			if !healthy {
				status = http.StatusServiceUnavailable
				res["status"] = "degraded"
			}
		}
		c.JSON(status, res)
	})

	h.Register(r.Group("/api"))

	// The form itself: one page, three views.
	r.StaticFile("/", cfg.WebDir+"/index.html")
	r.Static("/static", cfg.WebDir+"/static")

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s (db=%s queue=%s)", cfg.HTTPPort, db.Backend, cfg.QueueBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}

	log.Println("server exited")
	return nil
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
