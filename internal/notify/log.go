package notify

import (
	"github.com/rs/zerolog/log"
)

// LogNotifier writes toasts to the global logger.
type LogNotifier struct {
	Screen  string
	Session string
}

func (n LogNotifier) ShowSuccess(message string) {
	log.Info().Str("screen", n.Screen).Str("session", n.Session).Str("toast", string(KindSuccess)).Msg(message)
}

func (n LogNotifier) ShowError(message string) {
	log.Warn().Str("screen", n.Screen).Str("session", n.Session).Str("toast", string(KindError)).Msg(message)
}
