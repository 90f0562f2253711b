package bot

import (
	"github.com/kingko/bd2redeem-bot/internal/redeem"
	"github.com/kingko/bd2redeem-bot/pkg/log"
	"go.uber.org/zap"
	"gopkg.in/telebot.v4"
)

func (b *Bot) textHandler(c telebot.Context) error {
	cmd, ok := b.deps.dispatcher.Parse(c.Text())
	if !ok {
		// Ordinary conversation, not addressed to the bot.
		return nil
	}

	userID := c.Sender().ID

	switch cmd.Kind {
	case redeem.CmdBind:
		return c.Send(b.deps.service.Bind(b.ctx, userID, cmd.AccountID))

	case redeem.CmdUnbind:
		return c.Send(b.deps.service.Unbind(b.ctx, userID))

	case redeem.CmdListBindings:
		return c.Send(b.deps.service.ListBindings())

	case redeem.CmdQueryBinding:
		return c.Send(b.deps.service.QueryBinding(mentionTarget(c)))

	case redeem.CmdQueryHistory:
		return c.Send(b.deps.service.QueryHistory(userID, mentionTarget(c)))

	case redeem.CmdRedeem:
		b.deps.service.Redeem(userID, cmd.Args, b.replyTo(c))
		return nil
	}

	return nil
}

// replyTo wraps the context into a callback the redeemer can invoke
// from its own goroutine once the remote call resolves. telebot's Send
// is safe to call outside the update goroutine.
func (b *Bot) replyTo(c telebot.Context) func(string) {
	return func(text string) {
		if err := c.Send(text); err != nil {
			log.Error("failed to send reply",
				zap.Int64("chat_id", c.Chat().ID),
				zap.Error(err),
			)
		}
	}
}

// mentionTarget resolves the user a command is aimed at: the replied-to
// message's sender first, then the first text mention carrying a user.
// Plain @username mentions carry no id and cannot be resolved locally.
func mentionTarget(c telebot.Context) *int64 {
	message := c.Message()
	if message == nil {
		return nil
	}

	if message.ReplyTo != nil && message.ReplyTo.Sender != nil {
		return &message.ReplyTo.Sender.ID
	}

	for _, entity := range message.Entities {
		if entity.Type == telebot.EntityTMention && entity.User != nil {
			return &entity.User.ID
		}
	}

	return nil
}
