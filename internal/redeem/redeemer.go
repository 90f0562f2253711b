package redeem

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kingko/bd2redeem-bot/internal/common/domain"
	"github.com/kingko/bd2redeem-bot/pkg/log"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	inflightTTL     = 2 * time.Minute
	inflightCleanup = time.Minute
)

// CouponClient is one remote redemption attempt. Implementations never
// return an error; everything is an outcome variant.
type CouponClient interface {
	Redeem(ctx context.Context, accountID, code string) domain.Outcome
}

// Redeemer runs the redemption workflow: resolve the account id, gate
// on history and in-flight duplicates, call the remote API off the
// message path, record success and deliver the reply through the
// transport-supplied callback. Fire and forget: an attempt in flight
// resolves even if the user is long gone, and a successful one still
// lands in history.
type Redeemer struct {
	bindings *Bindings
	history  *History
	client   CouponClient

	// inflight marks (user, code) pairs with a pending remote call, so
	// a double-submitted command costs one network round trip. Add is
	// atomic; the TTL reaps markers from attempts that never returned.
	inflight *cache.Cache
}

func NewRedeemer(bindings *Bindings, history *History, client CouponClient) *Redeemer {
	return &Redeemer{
		bindings: bindings,
		history:  history,
		client:   client,
		inflight: cache.New(inflightTTL, inflightCleanup),
	}
}

// Redeem resolves and launches one attempt. An explicit account id
// beats the stored binding. The reply callback must be safe to call
// from another goroutine; the bot adapter guarantees that.
func (r *Redeemer) Redeem(userID int64, explicitAccountID, code string, reply func(string)) {
	accountID := explicitAccountID
	if accountID == "" {
		bound, ok := r.bindings.Get(userID)
		if !ok {
			reply(msgRedeemNotBound)
			return
		}

		accountID = bound
	}

	if r.history.HasRedeemed(userID, code) {
		reply(msgAlreadyRedeemed)
		return
	}

	key := inflightKey(userID, code)
	if err := r.inflight.Add(key, struct{}{}, cache.DefaultExpiration); err != nil {
		reply(msgRedeemInFlight)
		return
	}

	attemptID := uuid.NewString()

	log.Info("redeeming code",
		zap.String("attempt_id", attemptID),
		zap.Int64("user_id", userID),
		zap.String("account_id", accountID),
		zap.String("code", code),
	)

	go func() {
		// Deliberately not the message context: an abandoned command
		// must still resolve.
		outcome := r.client.Redeem(context.Background(), accountID, code)

		r.inflight.Delete(key)

		if outcome.OK() {
			if err := r.history.Record(context.Background(), userID, code); err != nil {
				log.Error("failed to record redemption",
					zap.String("attempt_id", attemptID),
					zap.Int64("user_id", userID),
					zap.String("code", code),
					zap.Error(err),
				)
			}
		}

		logOutcome(attemptID, outcome)

		reply(outcomeText(outcome))
	}()
}

func inflightKey(userID int64, code string) string {
	return fmt.Sprintf("%d|%s", userID, code)
}

func logOutcome(attemptID string, outcome domain.Outcome) {
	fields := []zap.Field{
		zap.String("attempt_id", attemptID),
		zap.String("outcome", string(outcome.Kind)),
	}

	if outcome.Message != "" {
		fields = append(fields, zap.String("remote_message", outcome.Message))
	}

	if outcome.Cause != nil {
		fields = append(fields, zap.Error(outcome.Cause))
	}

	switch outcome.Kind {
	case domain.OutcomeTransportFailure, domain.OutcomeParseFailure, domain.OutcomeUnknownRemote:
		log.Error("redemption attempt failed", fields...)
	default:
		log.Info("redemption attempt finished", fields...)
	}
}

// outcomeText picks the fixed sentence for each outcome variant. Every
// variant has its own text on purpose: a generic error reply would hide
// which codes are dead and which accounts are wrong.
func outcomeText(outcome domain.Outcome) string {
	switch outcome.Kind {
	case domain.OutcomeSuccess:
		return msgRedeemSuccess
	case domain.OutcomeInvalidCode:
		return msgRedeemInvalidCode
	case domain.OutcomeAlreadyUsed:
		return msgRedeemAlreadyUsed
	case domain.OutcomeIncorrectUser:
		return msgRedeemIncorrectUser
	case domain.OutcomeExpiredCode:
		return msgRedeemExpiredCode
	case domain.OutcomeUnavailable:
		return msgRedeemUnavailable
	case domain.OutcomeBadRequest:
		return msgRedeemBadRequest
	case domain.OutcomeTransportFailure:
		return fmt.Sprintf(msgRedeemRequestFailed, outcome.Cause)
	case domain.OutcomeParseFailure:
		return fmt.Sprintf(msgRedeemParseFailed, outcome.Cause)
	default:
		return fmt.Sprintf(msgRedeemUnknownError, outcome.Message)
	}
}
