package app

import (
	"context"

	"github.com/sirupsen/logrus"

	"inspection-viewer/internal/domain/entity"
)

const commandBuffer = 16

// Dispatcher владеет сессией и обрабатывает команды и тики таймера в
// одной горутине. Другие горутины общаются с сессией только через Dispatch.
type Dispatcher struct {
	session  *InspectionSession
	commands chan entity.Command
	log      logrus.FieldLogger
}

// NewDispatcher создаёт диспетчер для сессии.
func NewDispatcher(session *InspectionSession, log logrus.FieldLogger) *Dispatcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Dispatcher{
		session:  session,
		commands: make(chan entity.Command, commandBuffer),
		log:      log,
	}
}

// Dispatch ставит команду в очередь.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd entity.Command) error {
	select {
	case d.commands <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run обрабатывает команды до отмены ctx.
func (d *Dispatcher) Run(ctx context.Context) error {
	defer d.session.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case cmd := <-d.commands:
			log := d.log.WithField("command", entity.CommandName(cmd))
			if err := d.session.Handle(ctx, cmd); err != nil {
				log.WithError(err).Warn("command failed")
				continue
			}
			log.Debug("command handled")

		case <-d.session.Ticks():
			d.session.Tick(ctx)
		}
	}
}
