package telegram

import (
	"context"
	"errors"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	app "inspection-viewer/internal/application"
	"inspection-viewer/internal/domain/entity"
	"inspection-viewer/internal/domain/port"
	"inspection-viewer/internal/i18n"
)

const (
	usageProject = "/project [id]"
	usageInspect = "/inspect <id>"
	usageSeek    = "/seek <n>"
)

// Viewer принимает команды сессии просмотра одного чата.
type Viewer interface {
	Dispatch(ctx context.Context, cmd entity.Command) error
	Run(ctx context.Context) error
}

// ViewerFactory собирает сессию просмотра для представления чата.
type ViewerFactory func(view port.View, log logrus.FieldLogger) Viewer

// Bot представляет Telegram-бота
type Bot struct {
	api       *tgbotapi.BotAPI
	out       sender
	operators *app.OperatorService
	newViewer ViewerFactory
	t         *i18n.Printer
	log       logrus.FieldLogger

	mu      sync.Mutex
	viewers map[int64]Viewer
}

// NewBot создаёт нового бота
func NewBot(token string, operators *app.OperatorService, newViewer ViewerFactory, t *i18n.Printer, log logrus.FieldLogger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.WithField("account", api.Self.UserName).Info("authorized")

	b := newBot(api, operators, newViewer, t, log)
	b.api = api
	return b, nil
}

func newBot(out sender, operators *app.OperatorService, newViewer ViewerFactory, t *i18n.Printer, log logrus.FieldLogger) *Bot {
	return &Bot{
		out:       out,
		operators: operators,
		newViewer: newViewer,
		t:         t,
		log:       log,
		viewers:   make(map[int64]Viewer),
	}
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil

		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}

	if !msg.IsCommand() {
		b.sendMessage(msg.Chat.ID, b.t.T(i18n.Help))
		return
	}

	b.handleCommand(ctx, msg)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID
	args := strings.TrimSpace(msg.CommandArguments())
	log := b.log.WithFields(logrus.Fields{"chat_id": chatID, "command": msg.Command()})

	switch msg.Command() {
	case "start", "help":
		if _, err := b.operators.Cancel(ctx, userID, chatID); err != nil {
			log.WithError(err).Error("reset operator failed")
		}
		b.sendMessage(chatID, b.t.T(i18n.Help))

	case "project":
		// Без аргумента открывается заново последний выбранный проект.
		var id int64
		if args != "" {
			parsed, err := parseID(args)
			if err != nil {
				b.sendMessage(chatID, b.t.T(i18n.Usage, usageProject))
				return
			}
			id = parsed
		} else if op, err := b.operators.Get(ctx, userID, chatID); err == nil {
			id = op.ProjectID
		}
		if id == 0 {
			b.sendMessage(chatID, b.t.T(i18n.Usage, usageProject))
			return
		}
		b.selectProject(ctx, userID, chatID, id)

	case "inspect":
		id, err := parseID(args)
		if err != nil {
			b.sendMessage(chatID, b.t.T(i18n.Usage, usageInspect))
			return
		}
		b.selectInspection(ctx, userID, chatID, id)

	case "detect":
		var id int64
		if args != "" {
			parsed, err := parseID(args)
			if err != nil {
				b.sendMessage(chatID, b.t.T(i18n.Usage, "/detect [id]"))
				return
			}
			id = parsed
		} else if op, err := b.operators.Get(ctx, userID, chatID); err == nil {
			id = op.InspectionID
		}
		if id == 0 {
			b.sendMessage(chatID, b.t.T(i18n.NoInspection))
			return
		}
		b.detect(ctx, userID, chatID, id)

	case "seek":
		n, err := parseID(args)
		if err != nil {
			b.sendMessage(chatID, b.t.T(i18n.Usage, usageSeek))
			return
		}
		b.reviewCommand(ctx, userID, chatID, entity.Seek{Index: int(n - 1)})

	case "pause":
		b.reviewCommand(ctx, userID, chatID, entity.Pause{})

	case "resume":
		b.reviewCommand(ctx, userID, chatID, entity.Resume{})

	case "stop":
		if _, err := b.operators.SetState(ctx, userID, chatID, entity.StateProject); err != nil {
			log.WithError(err).Error("update operator failed")
		}
		b.dispatch(ctx, chatID, entity.Stop{})

	default:
		b.sendMessage(chatID, b.t.T(i18n.Unknown))
	}
}

// handleCallback обрабатывает нажатия инлайн-кнопок
func (b *Bot) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	if _, err := b.out.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		b.log.WithError(err).Debug("answer callback failed")
	}
	if q.From == nil || q.Message == nil || q.Message.Chat == nil {
		return
	}

	userID, chatID := q.From.ID, q.Message.Chat.ID
	action, value, err := parseCallback(q.Data)
	if err != nil {
		b.log.WithError(err).Warn("ignore callback")
		return
	}

	switch action {
	case actionInspect:
		b.selectInspection(ctx, userID, chatID, value)
	case actionDetect:
		b.detect(ctx, userID, chatID, value)
	case actionSeek:
		b.reviewCommand(ctx, userID, chatID, entity.Seek{Index: int(value)})
	default:
		b.log.WithField("data", q.Data).Warn("unknown callback action")
	}
}

func (b *Bot) selectProject(ctx context.Context, userID, chatID, id int64) {
	if _, err := b.operators.SelectProject(ctx, userID, chatID, id); err != nil {
		b.log.WithError(err).Error("update operator failed")
	}
	b.dispatch(ctx, chatID, entity.SelectProject{ProjectID: id})
}

func (b *Bot) selectInspection(ctx context.Context, userID, chatID, id int64) {
	if _, err := b.operators.SelectInspection(ctx, userID, chatID, id); err != nil {
		b.log.WithError(err).Error("update operator failed")
	}
	b.dispatch(ctx, chatID, entity.SelectInspection{InspectionID: id})
}

func (b *Bot) detect(ctx context.Context, userID, chatID, id int64) {
	if _, err := b.operators.SelectInspection(ctx, userID, chatID, id); err != nil {
		b.log.WithError(err).Error("update operator failed")
	}
	b.dispatch(ctx, chatID, entity.TriggerDetection{InspectionID: id})
}

// reviewCommand пропускает команды карусели, только пока оператор смотрит обход.
func (b *Bot) reviewCommand(ctx context.Context, userID, chatID int64, cmd entity.Command) {
	op, err := b.operators.Get(ctx, userID, chatID)
	if err != nil {
		b.log.WithError(err).Error("get operator failed")
		return
	}
	if !op.Reviewing() {
		b.sendMessage(chatID, b.t.T(i18n.NoInspection))
		return
	}
	b.dispatch(ctx, chatID, cmd)
}

func (b *Bot) dispatch(ctx context.Context, chatID int64, cmd entity.Command) {
	if err := b.viewer(ctx, chatID).Dispatch(ctx, cmd); err != nil {
		b.log.WithError(err).WithField("chat_id", chatID).Warn("dispatch failed")
	}
}

// viewer возвращает сессию чата, при первом обращении создаёт и запускает её.
func (b *Bot) viewer(ctx context.Context, chatID int64) Viewer {
	b.mu.Lock()
	defer b.mu.Unlock()

	if v, ok := b.viewers[chatID]; ok {
		return v
	}

	log := b.log.WithField("chat_id", chatID)
	v := b.newViewer(NewChatView(b.out, chatID, b.t, b.log), log)
	b.viewers[chatID] = v

	go func() {
		if err := v.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Error("viewer stopped")
		}
	}()

	return v
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.out.Send(msg); err != nil {
		b.log.WithError(err).Error("send message failed")
	}
}
