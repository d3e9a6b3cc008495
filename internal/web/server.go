// Package web serves the demos to browsers: JSON routes for listings and headless
// traces, and a websocket stream that drives one private controller per
// connection.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/san-kum/motionlab/internal/demos"
	"github.com/san-kum/motionlab/internal/sim"
)

const (
	version         = "1.0.0"
	defaultMaxTicks = 10000
)

// Factory builds a fresh controller for the named demo.
type Factory func(name string) (*sim.Controller, error)

type Server struct {
	reg      *demos.Registry
	build    Factory
	fps      int
	maxTicks int
	started  time.Time
}

func NewServer(reg *demos.Registry, build Factory, fps, maxTicks int) *Server {
	if fps <= 0 {
		fps = 60
	}
	if maxTicks <= 0 {
		maxTicks = defaultMaxTicks
	}
	return &Server{reg: reg, build: build, fps: fps, maxTicks: maxTicks, started: time.Now()}
}

// Router returns the gin engine with every route mounted.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		MaxAge:          12 * time.Hour,
	}))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", s.health)
		v1.GET("/demos", s.listDemos)
		v1.GET("/demos/:name/trace", s.trace)
	}
	router.GET("/ws/:name", s.stream)

	return router
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "motionlab",
		"version": version,
		"uptime":  time.Since(s.started).String(),
	})
}

type demoInfo struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Params      map[string]float64 `json:"params"`
}

func (s *Server) listDemos(c *gin.Context) {
	out := make([]demoInfo, 0, len(s.reg.Names()))
	for _, name := range s.reg.Names() {
		ctrl, err := s.build(name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, demoInfo{
			Name:        name,
			Description: s.reg.Describe(name),
			Params:      ctrl.Model().GetParams(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"demos": out})
}

// trace runs the demo headlessly. Query values override parameters by name;
// max_ticks lowers the server's tick budget for this run.
func (s *Server) trace(c *gin.Context) {
	ctrl, err := s.build(c.Param("name"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	query := c.Request.URL.Query()
	maxTicks := s.maxTicks
	if raw := query.Get("max_ticks"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > s.maxTicks {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("max_ticks: want an integer in [1, %d], got %q", s.maxTicks, raw),
			})
			return
		}
		maxTicks = n
	}

	keys := make([]string, 0, len(query))
	for key := range query {
		if key != "max_ticks" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		v, err := strconv.ParseFloat(query.Get(key), 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s: %v", key, err)})
			return
		}
		if err := ctrl.SetParameter(key, v); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()
	trace, err := sim.Run(ctx, ctrl, maxTicks)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, trace)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, sim.ErrUnknownModel):
		return http.StatusNotFound
	case errors.Is(err, sim.ErrInvalidParameter), errors.Is(err, sim.ErrUnknownParameter):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusBadRequest
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[WEB] listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Printf("[WEB] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
