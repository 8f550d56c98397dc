package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. Structured JSON in
// production, human-readable console output otherwise. Errors are
// logged without raw payloads or credentials; redaction happens at the
// call sites by logging identifiers, never secrets.
func Init(production bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if !production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	log.Logger = log.With().Caller().Logger()
}
