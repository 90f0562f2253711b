package bot

import (
	"context"
	"fmt"

	"github.com/kingko/bd2redeem-bot/internal/common/config"
	"github.com/kingko/bd2redeem-bot/internal/redeem"
	"gopkg.in/telebot.v4"
)

// Bot adapts Telegram to the core command handlers. It owns nothing
// but transport concerns: polling, middleware, sender and mention
// resolution, sending replies.
type Bot struct {
	Telebot *telebot.Bot
	cfg     *config.Bot
	ctx     context.Context

	deps *Dependencies
}

type Dependencies struct {
	dispatcher *redeem.Dispatcher
	service    *redeem.Service
}

func New(ctx context.Context,
	cfg *config.Bot,
	dispatcher *redeem.Dispatcher,
	service *redeem.Service,
) (*Bot, error) {
	b, err := telebot.NewBot(telebot.Settings{
		Token:  cfg.APIKey,
		Poller: &telebot.LongPoller{Timeout: cfg.Timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("telebot.NewBot: %w", err)
	}

	bot := &Bot{
		Telebot: b,
		cfg:     cfg,
		ctx:     ctx,
		deps: &Dependencies{
			dispatcher: dispatcher,
			service:    service,
		},
	}

	bot.setupMiddlewares()
	bot.setupMessageRoutes()

	return bot, nil
}

func (b *Bot) setupMiddlewares() {
	b.Telebot.Use(
		b.recoveryMiddleware,
		b.defaultErrorMiddleware,
	)
}

func (b *Bot) setupMessageRoutes() {
	// One text route: the core dispatcher decides what is a command
	// and what is conversation to ignore.
	b.Telebot.Handle(telebot.OnText, b.textHandler)
}

func (b *Bot) Start() {
	b.Telebot.Start()
}

func (b *Bot) Stop() {
	b.Telebot.Stop()
}
