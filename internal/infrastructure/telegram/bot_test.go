package telegram

import (
	"context"
	"errors"
	"testing"
	"time"

	"masonry_tracker/internal/infrastructure/configloader"
	"masonry_tracker/internal/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, m)
	}
	return tgbotapi.Message{}, f.err
}

type fakeHandler struct {
	gotText     string
	hasDeadline bool
}

func (f *fakeHandler) Handle(ctx context.Context, text string) string {
	f.gotText = text
	_, f.hasDeadline = ctx.Deadline()
	return "reply to " + text
}

func commandUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 7,
		Text:      text,
		Chat:      &tgbotapi.Chat{ID: 42},
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
	}}
}

func TestHandleUpdateReplies(t *testing.T) {
	s := &fakeSender{}
	h := &fakeHandler{}
	b := newBot(s, h, logger.NewSlogAdapter(), configloader.TelegramConfig{CommandTimeoutSeconds: 20})

	b.HandleUpdate(context.Background(), commandUpdate("/stats"))

	if h.gotText != "/stats" {
		t.Errorf("handler got %q, want /stats", h.gotText)
	}
	if !h.hasDeadline {
		t.Error("handler context has no deadline")
	}
	if len(s.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(s.sent))
	}
	if m := s.sent[0]; m.ChatID != 42 || m.ReplyToMessageID != 7 || m.Text != "reply to /stats" {
		t.Errorf("sent = %+v", m)
	}
}

func TestHandleUpdateIgnoresNonCommands(t *testing.T) {
	s := &fakeSender{}
	b := newBot(s, &fakeHandler{}, logger.NewSlogAdapter(), configloader.TelegramConfig{})

	b.HandleUpdate(context.Background(), tgbotapi.Update{})
	b.HandleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{Text: "hello", Chat: &tgbotapi.Chat{ID: 1}}})

	if len(s.sent) != 0 {
		t.Errorf("sent %d messages for non-command updates", len(s.sent))
	}
}

func TestHandleUpdateSendError(t *testing.T) {
	s := &fakeSender{err: errors.New("forbidden")}
	b := newBot(s, &fakeHandler{}, logger.NewSlogAdapter(), configloader.TelegramConfig{})

	done := make(chan struct{})
	go func() {
		b.HandleUpdate(context.Background(), commandUpdate("/help"))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("HandleUpdate blocked on send error")
	}
}

func TestNewLibraryLogger(t *testing.T) {
	entry := NewLibraryLogger("warn")
	if got := entry.Logger.GetLevel().String(); got != "warning" {
		t.Errorf("level = %q, want warning", got)
	}
	if entry.Data["component"] != "telegram-bot-api" {
		t.Errorf("component field = %v", entry.Data["component"])
	}
}

func TestNewBotRequiresToken(t *testing.T) {
	if _, err := NewBot(configloader.TelegramConfig{}, &fakeHandler{}, logger.NewSlogAdapter(), nil); err == nil {
		t.Error("expected error for empty token")
	}
}
