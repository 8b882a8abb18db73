package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"intervention-graph/backend/internal/catalog"
	"intervention-graph/backend/internal/intake"
	"intervention-graph/backend/internal/store"
	"intervention-graph/backend/internal/tracker"
	"intervention-graph/backend/pkg/config"
	pkgerrors "intervention-graph/backend/pkg/errors"
	"intervention-graph/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Initialize logger
	if err := logger.Init(cfg.Env); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting intervention graph server...")

	// Initialize storage
	repo := store.NewRepository(cfg.GraphFile)
	db, err := intake.OpenDB(cfg.IntakeDBFile)
	if err != nil {
		log.Fatal("Failed to open intake database", zap.Error(err))
	}
	defer db.Close()

	svc := tracker.NewService(repo, db, cfg)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(requestID())
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())
	router.Use(cors())

	registerRoutes(router, svc, log)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server exited with error", zap.Error(err))
		return
	}
	log.Info("Server exited")
}

func registerRoutes(router *gin.Engine, svc *tracker.Service, log *zap.Logger) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/participants", func(c *gin.Context) {
			roster, err := svc.ListParticipants()
			if err != nil {
				writeError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"participants": roster, "count": len(roster)})
		})

		api.POST("/participants", func(c *gin.Context) {
			var req intake.ParticipantIntake
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			view, err := svc.CreateParticipant(req)
			if err != nil {
				writeError(c, log, err)
				return
			}
			c.JSON(http.StatusCreated, view)
		})

		api.GET("/participants/:id/encounters", func(c *gin.Context) {
			views, err := svc.ParticipantEncounters(c.Param("id"))
			if err != nil {
				writeError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"encounters": views, "count": len(views)})
		})

		api.GET("/participants/:id/progress", func(c *gin.Context) {
			view, err := svc.ParticipantProgress(c.Param("id"))
			if err != nil {
				writeError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, view)
		})

		api.GET("/encounters", func(c *gin.Context) {
			views, err := svc.ListEncounters()
			if err != nil {
				writeError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"encounters": views, "count": len(views)})
		})

		api.POST("/encounters", func(c *gin.Context) {
			var req intake.EncounterIntake
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			view, err := svc.RecordEncounter(req)
			if err != nil {
				writeError(c, log, err)
				return
			}
			c.JSON(http.StatusCreated, view)
		})

		api.POST("/assessments", func(c *gin.Context) {
			var req intake.BarrierIntake
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			view, err := svc.RecordAssessment(req)
			if err != nil {
				writeError(c, log, err)
				return
			}
			c.JSON(http.StatusCreated, view)
		})

		api.GET("/barriers/:id", func(c *gin.Context) {
			records, err := svc.ParticipantBarriers(c.Param("id"), c.Query("domain"), c.Query("timepoint"))
			if err != nil {
				writeError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"barriers": records, "count": len(records)})
		})

		api.GET("/analytics", func(c *gin.Context) {
			result, err := svc.Analytics()
			if err != nil {
				writeError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, result)
		})

		api.GET("/protocols", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"protocols": catalog.Protocols()})
		})

		api.GET("/protocols/:id", func(c *gin.Context) {
			protocol, ok := catalog.ProtocolByID(c.Param("id"))
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "Protocol not found"})
				return
			}
			c.JSON(http.StatusOK, protocol)
		})

		api.GET("/referrals", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"referral_categories": catalog.ReferralCategories()})
		})

		api.POST("/export", func(c *gin.Context) {
			triples, err := svc.ExportGraph(c.Request.Context())
			if err != nil {
				writeError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "exported", "triples": triples})
		})
	}
}

// writeError maps the error taxonomy to HTTP statuses
func writeError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case pkgerrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case pkgerrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Error("Request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// requestID assigns each request an id, honoring one supplied by the
// caller
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// cors allows the intake frontends to call the API from another origin
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// ginLogger is a custom logger middleware for Gin
func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("HTTP Request",
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
}
