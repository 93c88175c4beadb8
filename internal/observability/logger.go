package observability

import (
	"io"
	"time"

	"github.com/danmuck/dsproto/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a console logger on out as the global zerolog logger.
func InitLogger(app string, out io.Writer, cfg logging.Config) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    cfg.NoColor,
		TimeFormat: time.RFC3339,
	}
	ctx := zerolog.New(output).Level(cfg.Level).With().Str("app", app)
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	logger := ctx.Logger()
	log.Logger = logger
	return logger
}
