package redeem

import (
	"context"
	"fmt"
	"testing"

	"github.com/kingko/bd2redeem-bot/internal/common/domain"
	"github.com/stretchr/testify/require"
)

func newTestRedeemer(t *testing.T, client CouponClient) (*Redeemer, *Bindings, *History) {
	t.Helper()

	bindings := newTestBindings(t, nil)
	history := NewHistory(&mockRedemptionsRepo{})

	return NewRedeemer(bindings, history, client), bindings, history
}

func TestRedeemerSuccessRecordsHistory(t *testing.T) {
	client := &fakeCouponClient{outcome: domain.Outcome{Kind: domain.OutcomeSuccess}}
	r, bindings, history := newTestRedeemer(t, client)

	require.NoError(t, bindings.Bind(context.Background(), 100, "player42"))

	sink := newReplySink()
	r.Redeem(100, "", "CODE1", sink.reply)

	require.Equal(t, msgRedeemSuccess, sink.wait())
	require.True(t, history.HasRedeemed(100, "CODE1"))
	require.EqualValues(t, 1, client.calls.Load())
}

func TestRedeemerExplicitAccountBeatsBinding(t *testing.T) {
	client := &fakeCouponClient{outcome: domain.Outcome{Kind: domain.OutcomeSuccess}}
	r, bindings, _ := newTestRedeemer(t, client)

	require.NoError(t, bindings.Bind(context.Background(), 100, "bound99"))

	sink := newReplySink()
	r.Redeem(100, "explicit42", "CODE1", sink.reply)

	require.Equal(t, msgRedeemSuccess, sink.wait())
}

func TestRedeemerNotBound(t *testing.T) {
	client := &fakeCouponClient{outcome: domain.Outcome{Kind: domain.OutcomeSuccess}}
	r, _, history := newTestRedeemer(t, client)

	sink := newReplySink()
	r.Redeem(100, "", "CODE1", sink.reply)

	require.Equal(t, msgRedeemNotBound, sink.wait())
	require.False(t, history.HasRedeemed(100, "CODE1"))
	require.EqualValues(t, 0, client.calls.Load())
}

func TestRedeemerShortCircuitsRedeemedCode(t *testing.T) {
	client := &fakeCouponClient{outcome: domain.Outcome{Kind: domain.OutcomeSuccess}}
	r, bindings, history := newTestRedeemer(t, client)

	ctx := context.Background()
	require.NoError(t, bindings.Bind(ctx, 100, "player42"))
	require.NoError(t, history.Record(ctx, 100, "CODE1"))

	sink := newReplySink()
	r.Redeem(100, "", "CODE1", sink.reply)

	// No network call happened: the reply is synchronous and the call
	// counter stays at zero.
	require.Equal(t, msgAlreadyRedeemed, sink.wait())
	require.EqualValues(t, 0, client.calls.Load())
}

func TestRedeemerFailureOutcomesDoNotRecord(t *testing.T) {
	tests := []struct {
		name    string
		outcome domain.Outcome
		reply   string
	}{
		{"invalid code", domain.Outcome{Kind: domain.OutcomeInvalidCode}, msgRedeemInvalidCode},
		{"already used", domain.Outcome{Kind: domain.OutcomeAlreadyUsed}, msgRedeemAlreadyUsed},
		{"incorrect user", domain.Outcome{Kind: domain.OutcomeIncorrectUser}, msgRedeemIncorrectUser},
		{"expired code", domain.Outcome{Kind: domain.OutcomeExpiredCode}, msgRedeemExpiredCode},
		{"unavailable code", domain.Outcome{Kind: domain.OutcomeUnavailable}, msgRedeemUnavailable},
		{"bad request", domain.Outcome{Kind: domain.OutcomeBadRequest}, msgRedeemBadRequest},
		{
			"unknown remote error",
			domain.Outcome{Kind: domain.OutcomeUnknownRemote, Message: "OutOfStock"},
			fmt.Sprintf(msgRedeemUnknownError, "OutOfStock"),
		},
		{
			"transport failure",
			domain.Outcome{Kind: domain.OutcomeTransportFailure, Cause: fmt.Errorf("connection refused")},
			fmt.Sprintf(msgRedeemRequestFailed, fmt.Errorf("connection refused")),
		},
		{
			"parse failure",
			domain.Outcome{Kind: domain.OutcomeParseFailure, Cause: fmt.Errorf("unexpected end of JSON input")},
			fmt.Sprintf(msgRedeemParseFailed, fmt.Errorf("unexpected end of JSON input")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeCouponClient{outcome: tt.outcome}
			r, bindings, history := newTestRedeemer(t, client)

			require.NoError(t, bindings.Bind(context.Background(), 100, "player42"))

			sink := newReplySink()
			r.Redeem(100, "", "CODE1", sink.reply)

			require.Equal(t, tt.reply, sink.wait())
			require.False(t, history.HasRedeemed(100, "CODE1"))
		})
	}
}

func TestRedeemerConcurrentIdenticalAttempts(t *testing.T) {
	client := &fakeCouponClient{
		outcome: domain.Outcome{Kind: domain.OutcomeSuccess},
		gate:    make(chan struct{}),
	}
	r, bindings, history := newTestRedeemer(t, client)

	require.NoError(t, bindings.Bind(context.Background(), 100, "player42"))

	sink := newReplySink()

	// First attempt parks on the gate inside the fake client; the
	// second sees the in-flight marker and resolves synchronously.
	r.Redeem(100, "", "CODE1", sink.reply)
	r.Redeem(100, "", "CODE1", sink.reply)

	require.Equal(t, msgRedeemInFlight, sink.wait())

	close(client.gate)
	require.Equal(t, msgRedeemSuccess, sink.wait())

	require.Equal(t, []string{"CODE1"}, history.RecentFor(100))
	require.EqualValues(t, 1, client.calls.Load())

	// A third attempt after completion hits the local history gate.
	r.Redeem(100, "", "CODE1", sink.reply)
	require.Equal(t, msgAlreadyRedeemed, sink.wait())
	require.EqualValues(t, 1, client.calls.Load())
}

func TestRedeemerDifferentCodesRunIndependently(t *testing.T) {
	client := &fakeCouponClient{outcome: domain.Outcome{Kind: domain.OutcomeSuccess}}
	r, bindings, history := newTestRedeemer(t, client)

	require.NoError(t, bindings.Bind(context.Background(), 100, "player42"))

	sink := newReplySink()
	r.Redeem(100, "", "CODE1", sink.reply)
	r.Redeem(100, "", "CODE2", sink.reply)

	require.Equal(t, msgRedeemSuccess, sink.wait())
	require.Equal(t, msgRedeemSuccess, sink.wait())

	require.ElementsMatch(t, []string{"CODE1", "CODE2"}, history.RecentFor(100))
}
