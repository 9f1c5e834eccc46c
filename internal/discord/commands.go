package discord

import (
	"context"
	"strings"

	"github.com/osse101/LevelBot_Go/internal/logger"
	"github.com/osse101/LevelBot_Go/internal/metrics"
)

// Invocation is a parsed prefix command
type Invocation struct {
	Name      string
	Args      []string
	ChannelID string
	AuthorID  string

	// Mentions are the user ids mentioned in the message, in order
	Mentions []string
}

// CommandHandler handles a prefix command
type CommandHandler func(ctx context.Context, inv Invocation) error

// Command describes a registered command
type Command struct {
	Name        string
	Aliases     []string
	Description string
}

// CommandRegistry holds the registered commands
type CommandRegistry struct {
	Prefix   string
	Commands map[string]*Command
	Handlers map[string]CommandHandler
}

// NewCommandRegistry creates a new registry for prefix
func NewCommandRegistry(prefix string) *CommandRegistry {
	return &CommandRegistry{
		Prefix:   prefix,
		Commands: make(map[string]*Command),
		Handlers: make(map[string]CommandHandler),
	}
}

// Register adds a command under its name and aliases
func (r *CommandRegistry) Register(cmd *Command, handler CommandHandler) {
	for _, name := range append([]string{cmd.Name}, cmd.Aliases...) {
		r.Commands[name] = cmd
		r.Handlers[name] = handler
	}
}

// Parse splits content into a command name and arguments. The name is
// matched case-insensitively.
func (r *CommandRegistry) Parse(content string) (string, []string, bool) {
	if r.Prefix == "" || !strings.HasPrefix(content, r.Prefix) {
		return "", nil, false
	}
	fields := strings.Fields(strings.TrimPrefix(content, r.Prefix))
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

// Handle runs the command named by inv. It reports whether a command matched.
func (r *CommandRegistry) Handle(ctx context.Context, inv Invocation) bool {
	h, ok := r.Handlers[inv.Name]
	if !ok {
		return false
	}
	cmd := r.Commands[inv.Name]
	RecordCommand()

	result := metrics.ResultSuccess
	if err := h(ctx, inv); err != nil {
		result = metrics.ResultFailure
		logger.FromContext(ctx).Error(LogMsgCommandFailed, "command", cmd.Name, "error", err)
	}
	metrics.Commands.WithLabelValues(cmd.Name, result).Inc()
	return true
}
