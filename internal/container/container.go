package container

import (
	"strings"

	"github.com/sirupsen/logrus"

	"inspection-viewer/config"
	app "inspection-viewer/internal/application"
	"inspection-viewer/internal/domain/port"
	"inspection-viewer/internal/i18n"
	"inspection-viewer/internal/infrastructure/httpapi"
	"inspection-viewer/internal/infrastructure/render"
)

type Container struct {
	Config          *config.Config
	Log             *logrus.Logger
	API             port.InspectionAPI
	Renderer        port.AnnotationRenderer
	Printer         *i18n.Printer
	OperatorService *app.OperatorService
}

func New(cfg *config.Config, log *logrus.Logger, operators port.OperatorRepository) *Container {
	api := httpapi.New(cfg.APIBaseURL, cfg.HTTPTimeout, log.WithField("component", "httpapi"))

	return &Container{
		Config:          cfg,
		Log:             log,
		API:             api,
		Renderer:        NewRenderer(cfg.Renderer, log),
		Printer:         i18n.New(cfg.Language),
		OperatorService: app.NewOperatorService(operators),
	}
}

// NewRenderer выбирает рендерер рамок. Без тега gocv всегда Canvas.
func NewRenderer(name string, log logrus.FieldLogger) port.AnnotationRenderer {
	if name == config.RendererGoCV {
		if render.Available {
			return render.NewGoCV()
		}
		log.Warn("RENDERER=gocv but binary built without gocv tag, using canvas")
	}
	return render.NewCanvas()
}

// NewViewer собирает сессию просмотра для одного представления.
func (c *Container) NewViewer(view port.View, log logrus.FieldLogger) *app.Dispatcher {
	session := app.NewInspectionSession(app.SessionConfig{
		API:      c.API,
		Renderer: c.Renderer,
		View:     view,
		Printer:  c.Printer,
		Interval: c.Config.CarouselInterval,
		Log:      log,
	})
	return app.NewDispatcher(session, log)
}

// NewLogger создаёт logrus-логгер с уровнем из конфигурации.
func NewLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		log.WithError(err).Warn("unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}
