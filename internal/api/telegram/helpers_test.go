package telegram

import (
	"context"
	"errors"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"inspection-viewer/internal/domain/entity"
)

// fakeSender запоминает всё, что ушло в Telegram.
type fakeSender struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	nextID   int
	failEdit bool
}

func (s *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sent = append(s.sent, c)
	if _, ok := c.(tgbotapi.EditMessageMediaConfig); ok && s.failEdit {
		return tgbotapi.Message{}, errors.New("Bad Request: message to edit not found")
	}
	s.nextID++
	return tgbotapi.Message{MessageID: s.nextID}, nil
}

func (s *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (s *fakeSender) all() []tgbotapi.Chattable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]tgbotapi.Chattable(nil), s.sent...)
}

func (s *fakeSender) texts() []string {
	var out []string
	for _, c := range s.all() {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m.Text)
		}
	}
	return out
}

// fakeViewer вместо диспетчера: только копит команды.
type fakeViewer struct {
	mu       sync.Mutex
	commands []entity.Command
}

func (v *fakeViewer) Dispatch(ctx context.Context, cmd entity.Command) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.commands = append(v.commands, cmd)
	return nil
}

func (v *fakeViewer) Run(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func (v *fakeViewer) got() []entity.Command {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]entity.Command(nil), v.commands...)
}

func silentLogger() logrus.FieldLogger {
	log, _ := test.NewNullLogger()
	return log
}

func command(chatID int64, text string) *tgbotapi.Message {
	name, _, _ := strings.Cut(text, " ")
	return &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: chatID},
		From: &tgbotapi.User{ID: 1},
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: len(name)},
		},
	}
}
