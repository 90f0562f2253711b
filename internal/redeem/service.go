package redeem

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kingko/bd2redeem-bot/internal/boterrs"
	"github.com/kingko/bd2redeem-bot/pkg/log"
	"go.uber.org/zap"
)

// Service is the command handlers: one method per command, each
// producing the reply text. Stores are passed in explicitly so the
// handlers carry no global state.
type Service struct {
	bindings *Bindings
	history  *History
	redeemer *Redeemer

	usageAlias string
}

func NewService(bindings *Bindings, history *History, redeemer *Redeemer, aliases []string) *Service {
	if len(aliases) == 0 {
		aliases = defaultAliases
	}

	return &Service{
		bindings:   bindings,
		history:    history,
		redeemer:   redeemer,
		usageAlias: aliases[0],
	}
}

func (s *Service) Bind(ctx context.Context, userID int64, accountID string) string {
	err := s.bindings.Bind(ctx, userID, accountID)

	switch {
	case errors.Is(err, boterrs.ErrAlreadyBound):
		existing, _ := s.bindings.Get(userID)
		return fmt.Sprintf(msgAlreadyBound, existing)

	case errors.Is(err, boterrs.ErrInvalidAccountID):
		return msgInvalidAccountID

	case err != nil:
		log.Error("failed to store binding", zap.Int64("user_id", userID), zap.Error(err))
		return msgBindFailed
	}

	return fmt.Sprintf(msgBound, accountID)
}

func (s *Service) Unbind(ctx context.Context, userID int64) string {
	removed, err := s.bindings.Unbind(ctx, userID)
	if err != nil {
		log.Error("failed to remove binding", zap.Int64("user_id", userID), zap.Error(err))
		return msgUnbindFailed
	}

	if !removed {
		return msgNotBound
	}

	return msgUnbound
}

func (s *Service) ListBindings() string {
	bindings := s.bindings.List()
	if len(bindings) == 0 {
		return msgNoBindings
	}

	lines := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		lines = append(lines, fmt.Sprintf("%d -> %s", binding.UserID, binding.AccountID))
	}

	return strings.Join(lines, "\n")
}

// QueryBinding reports another user's binding. A nil target means the
// message carried no user reference.
func (s *Service) QueryBinding(target *int64) string {
	if target == nil {
		return msgQueryBindingNoTarget
	}

	accountID, ok := s.bindings.Get(*target)
	if !ok {
		return msgTargetNotBound
	}

	return fmt.Sprintf(msgTargetBound, accountID)
}

// QueryHistory reports redeemed codes, for the target user if one was
// referenced, otherwise for the sender.
func (s *Service) QueryHistory(userID int64, target *int64) string {
	if target != nil {
		userID = *target
	}

	codes := s.history.RecentFor(userID)
	if len(codes) == 0 {
		return msgNoHistory
	}

	return msgHistoryHeader + "\n" + strings.Join(codes, "\n")
}

// Redeem validates arity and hands off to the redeemer. Replies arrive
// through the callback because the remote call completes off the
// message path.
func (s *Service) Redeem(userID int64, args []string, reply func(string)) {
	switch len(args) {
	case 1:
		s.redeemer.Redeem(userID, "", args[0], reply)
	case 2:
		s.redeemer.Redeem(userID, args[0], args[1], reply)
	default:
		reply(fmt.Sprintf(msgRedeemUsage, s.usageAlias, s.usageAlias))
	}
}
