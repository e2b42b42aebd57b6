// Package notify renders the transient, toast-style notifications the session
// store emits for login/register/logout outcomes.
package notify

import (
	"github.com/rs/zerolog"

	"github.com/sajilokaam/client-core/internal/core/ports"
)

// LogNotifier routes notifications through the structured logger. With the
// pretty console writer enabled this is what the CLI user sees.
type LogNotifier struct {
	log zerolog.Logger
}

var _ ports.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Success(msg string) {
	n.log.Info().Str("toast", "success").Msg(msg)
}

func (n *LogNotifier) Error(msg string) {
	n.log.Warn().Str("toast", "error").Msg(msg)
}

// Nop discards all notifications. Handy for tests and non-interactive use.
type Nop struct{}

var _ ports.Notifier = Nop{}

func (Nop) Success(string) {}
func (Nop) Error(string)   {}
