package redeem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherParse(t *testing.T) {
	d := NewDispatcher(nil)

	tests := []struct {
		name    string
		text    string
		want    Command
		matched bool
	}{
		{
			name:    "bind with account id",
			text:    "/bind player42",
			want:    Command{Kind: CmdBind, AccountID: "player42"},
			matched: true,
		},
		{
			name:    "bind trims surrounding whitespace",
			text:    "  /bind  player42  ",
			want:    Command{Kind: CmdBind, AccountID: "player42"},
			matched: true,
		},
		{
			name:    "bind with empty remainder",
			text:    "/bind  ",
			want:    Command{Kind: CmdBind, AccountID: ""},
			matched: true,
		},
		{
			name:    "bare bind is ignored",
			text:    "/bind",
			matched: false,
		},
		{
			name:    "unbind exact",
			text:    "/unbind",
			want:    Command{Kind: CmdUnbind},
			matched: true,
		},
		{
			name:    "unbind with trailing argument is ignored",
			text:    "/unbind now",
			matched: false,
		},
		{
			name:    "bindings",
			text:    "/bindings",
			want:    Command{Kind: CmdListBindings},
			matched: true,
		},
		{
			name:    "query binding",
			text:    "/query-binding",
			want:    Command{Kind: CmdQueryBinding},
			matched: true,
		},
		{
			name:    "query history",
			text:    "/query-history",
			want:    Command{Kind: CmdQueryHistory},
			matched: true,
		},
		{
			name:    "redeem with code only",
			text:    "/redeem WELCOME2024",
			want:    Command{Kind: CmdRedeem, Args: []string{"WELCOME2024"}},
			matched: true,
		},
		{
			name:    "redeem with account id and code",
			text:    "/redeem player42 WELCOME2024",
			want:    Command{Kind: CmdRedeem, Args: []string{"player42", "WELCOME2024"}},
			matched: true,
		},
		{
			name:    "redeem second alias",
			text:    "/code WELCOME2024",
			want:    Command{Kind: CmdRedeem, Args: []string{"WELCOME2024"}},
			matched: true,
		},
		{
			name:    "redeem without arguments",
			text:    "/redeem",
			want:    Command{Kind: CmdRedeem, Args: []string{}},
			matched: true,
		},
		{
			name:    "ordinary conversation is ignored",
			text:    "good morning everyone",
			matched: false,
		},
		{
			name:    "case sensitive",
			text:    "/BIND player42",
			matched: false,
		},
		{
			name:    "empty text",
			text:    "   ",
			matched: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.Parse(tt.text)
			require.Equal(t, tt.matched, ok)

			if tt.matched {
				assert.Equal(t, tt.want.Kind, got.Kind)
				assert.Equal(t, tt.want.AccountID, got.AccountID)
				assert.ElementsMatch(t, tt.want.Args, got.Args)
			}
		})
	}
}

func TestDispatcherAliasPriority(t *testing.T) {
	d := NewDispatcher([]string{"/redeem", "/redeem-now"})

	// First matching alias wins, so the remainder is parsed against it.
	got, ok := d.Parse("/redeem-now CODE1")
	require.True(t, ok)
	require.Equal(t, CmdRedeem, got.Kind)
	require.Equal(t, []string{"-now", "CODE1"}, got.Args)
}

func TestDispatcherCustomAliases(t *testing.T) {
	d := NewDispatcher([]string{"/exchange"})

	got, ok := d.Parse("/exchange CODE1")
	require.True(t, ok)
	require.Equal(t, CmdRedeem, got.Kind)
	require.Equal(t, []string{"CODE1"}, got.Args)

	_, ok = d.Parse("/redeem CODE1")
	require.False(t, ok)
}
