package container

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"inspection-viewer/config"
	"inspection-viewer/internal/domain/entity"
	"inspection-viewer/internal/infrastructure/render"
	"inspection-viewer/internal/infrastructure/storage"
	"inspection-viewer/internal/infrastructure/viewstate"
)

func TestNewLogger_Level(t *testing.T) {
	require.Equal(t, logrus.DebugLevel, NewLogger("debug").GetLevel())
	require.Equal(t, logrus.InfoLevel, NewLogger("loud").GetLevel())
}

func TestNewRenderer_FallsBackToCanvas(t *testing.T) {
	r := NewRenderer(config.RendererCanvas, logrus.New())
	require.IsType(t, &render.Canvas{}, r)

	if !render.Available {
		require.IsType(t, &render.Canvas{}, NewRenderer(config.RendererGoCV, logrus.New()))
	}
}

func TestContainer_ViewerAgainstBackend(t *testing.T) {
	gin.SetMode(gin.TestMode)
	backend := gin.New()
	backend.GET("/api/inspection/:id/results", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"records":       []gin.H{{"image_name": "a.jpg", "result_image_name": "result_a.jpg", "defect_type": "crack"}},
				"total_images":  5,
				"defect_images": 1,
				"total_defects": 1,
			},
		})
	})
	backend.POST("/api/start-detection/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "done"})
	})
	backend.GET("/api/image/:name", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	srv := httptest.NewServer(backend)
	defer srv.Close()

	cfg := &config.Config{
		APIBaseURL:       srv.URL,
		HTTPTimeout:      time.Second,
		CarouselInterval: time.Hour,
		Renderer:         config.RendererCanvas,
		Language:         "en",
	}
	c := New(cfg, NewLogger("error"), storage.NewMemoryOperatorRepository())
	view := viewstate.NewStore()
	viewer := c.NewViewer(view, c.Log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = viewer.Run(ctx) }()

	require.NoError(t, viewer.Dispatch(ctx, entity.TriggerDetection{InspectionID: 1}))
	require.Eventually(t, func() bool {
		f := view.Snapshot()
		return f.Total == 1 && f.Placeholder == entity.PlaceholderLoadFailed
	}, 2*time.Second, 10*time.Millisecond)

	f := view.Snapshot()
	require.Equal(t, 5, f.Summary.TotalImages)
	require.Equal(t, []string{"Defect detection completed"}, f.Notices)
	require.True(t, f.Detail.Visible)
}
