package telegram

import (
	"context"
	"fmt"
	"sync"
	"time"

	"masonry_tracker/internal/app/command"
	"masonry_tracker/internal/app/port"
	"masonry_tracker/internal/infrastructure/configloader"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// CommandHandler answers a chat command with reply text.
type CommandHandler interface {
	Handle(ctx context.Context, text string) string
}

// sender is the subset of *tgbotapi.BotAPI used to reply.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot long-polls Telegram and forwards commands to a CommandHandler.
type Bot struct {
	api            *tgbotapi.BotAPI
	sender         sender
	handler        CommandHandler
	logger         port.Logger
	name           string
	pollTimeout    int
	commandTimeout time.Duration
	wg             sync.WaitGroup
}

// NewLibraryLogger returns the logrus entry the Telegram library logs through.
func NewLibraryLogger(level string) *logrus.Entry {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	if lvl, err := logrus.ParseLevel(level); err == nil {
		l.SetLevel(lvl)
	}
	return l.WithField("component", "telegram-bot-api")
}

// NewBot authenticates with the Bot API and registers the command list.
func NewBot(cfg configloader.TelegramConfig, handler CommandHandler, logger port.Logger, libLogger *logrus.Entry) (*Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram token is empty")
	}
	if libLogger != nil {
		if err := tgbotapi.SetLogger(libLogger); err != nil {
			return nil, fmt.Errorf("failed to set telegram library logger: %w", err)
		}
	}

	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize telegram bot: %w", err)
	}
	api.Debug = cfg.Debug

	botCommands := make([]tgbotapi.BotCommand, 0, len(command.Commands))
	for _, c := range command.Commands {
		botCommands = append(botCommands, tgbotapi.BotCommand{Command: c.Name, Description: c.Description})
	}
	if _, err := api.Request(tgbotapi.NewSetMyCommands(botCommands...)); err != nil {
		logger.Warn("Failed to register bot commands", "error", err)
	}

	logger.Info("Telegram bot authorized", "bot_name", cfg.BotName, "username", api.Self.UserName)
	b := newBot(api, handler, logger, cfg)
	b.api = api
	return b, nil
}

func newBot(s sender, handler CommandHandler, logger port.Logger, cfg configloader.TelegramConfig) *Bot {
	return &Bot{
		sender:         s,
		handler:        handler,
		logger:         logger,
		name:           cfg.BotName,
		pollTimeout:    cfg.PollTimeoutSeconds,
		commandTimeout: time.Duration(cfg.CommandTimeoutSeconds) * time.Second,
	}
}

// Run polls for updates until ctx is done, then waits for in-flight replies.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("Starting bot", "bot_name", b.name)
	defer b.wg.Wait()
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("Bot stopped receiving updates", "bot_name", b.name)
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.wg.Add(1)
			go func() {
				defer b.wg.Done()
				b.HandleUpdate(ctx, update)
			}()
		}
	}
}

// HandleUpdate replies to a single command message. Other updates are ignored.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || !msg.IsCommand() {
		return
	}

	cmdCtx := ctx
	if b.commandTimeout > 0 {
		var cancel context.CancelFunc
		cmdCtx, cancel = context.WithTimeout(ctx, b.commandTimeout)
		defer cancel()
	}

	b.logger.Debug("Received command", "command", msg.Command(), "chat_id", msg.Chat.ID)
	reply := tgbotapi.NewMessage(msg.Chat.ID, b.handler.Handle(cmdCtx, msg.Text))
	reply.ReplyToMessageID = msg.MessageID
	if _, err := b.sender.Send(reply); err != nil {
		b.logger.Error("Failed to send reply", "chat_id", msg.Chat.ID, "error", err)
	}
}
