// Package web отдаёт сессию просмотра по HTTP: команды приходят POST-запросами,
// а последний кадр читается из viewstate.
package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"inspection-viewer/internal/domain/entity"
	"inspection-viewer/internal/infrastructure/viewstate"
)

const shutdownTimeout = 5 * time.Second

// Viewer принимает команды для сессии просмотра.
type Viewer interface {
	Dispatch(ctx context.Context, cmd entity.Command) error
}

// Server отдаёт одну сессию просмотра по HTTP.
type Server struct {
	viewer Viewer
	state  *viewstate.Store
	log    logrus.FieldLogger
	router *gin.Engine
}

func NewServer(viewer Viewer, state *viewstate.Store, log logrus.FieldLogger) *Server {
	s := &Server{viewer: viewer, state: state, log: log}

	router := gin.New()
	router.Use(gin.Recovery(), s.logRequests)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	group := router.Group("/viewer")
	group.GET("/state", s.getState)
	group.GET("/image", s.getImage)
	group.POST("/project/:id", s.postID(func(id int64) entity.Command {
		return entity.SelectProject{ProjectID: id}
	}))
	group.POST("/inspection/:id", s.postID(func(id int64) entity.Command {
		return entity.SelectInspection{InspectionID: id}
	}))
	group.POST("/detect/:id", s.postID(func(id int64) entity.Command {
		return entity.TriggerDetection{InspectionID: id}
	}))
	group.POST("/seek/:index", s.postSeek)
	group.POST("/stop", func(c *gin.Context) {
		s.dispatch(c, entity.Stop{})
	})
	group.POST("/pause", func(c *gin.Context) {
		s.dispatch(c, entity.Pause{})
	})
	group.POST("/resume", func(c *gin.Context) {
		s.dispatch(c, entity.Resume{})
	})

	s.router = router
	return s
}

// Handler возвращает http.Handler с маршрутами просмотра.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run слушает addr до отмены ctx.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.WithError(err).Warn("http shutdown")
		}
	}()

	s.log.WithField("addr", addr).Info("http viewer listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) getState(c *gin.Context) {
	c.JSON(http.StatusOK, s.state.Snapshot())
}

func (s *Server) getImage(c *gin.Context) {
	data := s.state.Image()
	if len(data) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no image on display"})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}

func (s *Server) postID(build func(id int64) entity.Command) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
			return
		}
		s.dispatch(c, build(id))
	}
}

// postSeek проверяет только формат индекса: границы проверяет карусель.
func (s *Server) postSeek(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be a non-negative integer"})
		return
	}

	if total := s.state.Snapshot().Total; index >= total {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": entity.ErrIndexOutOfRange.Error()})
		return
	}
	s.dispatch(c, entity.Seek{Index: index})
}

// dispatch ставит команду в очередь, результат виден в /viewer/state.
func (s *Server) dispatch(c *gin.Context, cmd entity.Command) {
	if err := s.viewer.Dispatch(c.Request.Context(), cmd); err != nil {
		s.log.WithError(err).WithField("command", entity.CommandName(cmd)).Warn("dispatch failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "viewer is not accepting commands"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"command": entity.CommandName(cmd)})
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.log.WithFields(logrus.Fields{
		"method":  c.Request.Method,
		"path":    c.FullPath(),
		"status":  c.Writer.Status(),
		"latency": time.Since(start),
	}).Debug("http request")
}
