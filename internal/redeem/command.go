package redeem

import "strings"

type CommandKind string

const (
	CmdBind         CommandKind = "bind"
	CmdUnbind       CommandKind = "unbind"
	CmdListBindings CommandKind = "bindings"
	CmdQueryBinding CommandKind = "query_binding"
	CmdQueryHistory CommandKind = "query_history"
	CmdRedeem       CommandKind = "redeem"
)

// Command is one parsed chat command. AccountID is set for CmdBind,
// Args carries the raw redeem arguments for CmdRedeem.
type Command struct {
	Kind      CommandKind
	AccountID string
	Args      []string
}

var defaultAliases = []string{"/redeem", "/code"}

// Dispatcher classifies raw message text into commands. Matching is
// case-sensitive prefix matching in a fixed priority order; text that
// matches nothing is ordinary conversation and stays unanswered.
type Dispatcher struct {
	aliases []string
}

func NewDispatcher(aliases []string) *Dispatcher {
	if len(aliases) == 0 {
		aliases = defaultAliases
	}

	return &Dispatcher{
		aliases: aliases,
	}
}

func (d *Dispatcher) Parse(text string) (Command, bool) {
	command := strings.TrimSpace(text)

	switch {
	case strings.HasPrefix(command, "/bind "):
		return Command{
			Kind:      CmdBind,
			AccountID: strings.TrimSpace(strings.TrimPrefix(command, "/bind ")),
		}, true

	case command == "/unbind":
		return Command{Kind: CmdUnbind}, true

	case strings.HasPrefix(command, "/bindings"):
		return Command{Kind: CmdListBindings}, true

	case strings.HasPrefix(command, "/query-binding"):
		return Command{Kind: CmdQueryBinding}, true

	case strings.HasPrefix(command, "/query-history"):
		return Command{Kind: CmdQueryHistory}, true
	}

	for _, alias := range d.aliases {
		if !strings.HasPrefix(command, alias) {
			continue
		}

		rest := strings.TrimSpace(strings.TrimPrefix(command, alias))

		return Command{
			Kind: CmdRedeem,
			Args: strings.Fields(rest),
		}, true
	}

	return Command{}, false
}
