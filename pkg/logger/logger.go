package logger

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var root zerolog.Logger

func init() {
	Init("info")
}

// Init sets the process-wide level and output format. Debug level switches
// to the human-readable console writer; every other level emits one JSON
// line per event.
func Init(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	l := zerolog.New(os.Stdout)
	if lvl == zerolog.DebugLevel {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly})
	}
	root = l.Level(lvl).With().Timestamp().Caller().Logger()
}

// Event constructors for structured call sites.

func Debug() *zerolog.Event { return root.Debug() }
func Info() *zerolog.Event  { return root.Info() }
func Warn() *zerolog.Event  { return root.Warn() }
func Error() *zerolog.Event { return root.Error() }

// Printf-style shorthands.

func Infof(format string, v ...interface{})  { root.Info().Msgf(format, v...) }
func Warnf(format string, v ...interface{})  { root.Warn().Msgf(format, v...) }
func Errorf(format string, v ...interface{}) { root.Error().Msgf(format, v...) }

// Fatalf logs at fatal level and exits the process.
func Fatalf(format string, v ...interface{}) { root.Fatal().Msgf(format, v...) }

// GinLogger emits one access-log line per request, levelled by response
// status: 5xx at error, 4xx at warn, everything else at info.
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		uri := c.Request.URL.RequestURI()

		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			event = root.Error()
		case status >= http.StatusBadRequest:
			event = root.Warn()
		default:
			event = root.Info()
		}

		event.
			Str("method", c.Request.Method).
			Str("uri", uri).
			Int("status", status).
			Str("client", c.ClientIP()).
			Dur("elapsed", time.Since(start)).
			Int("bytes", c.Writer.Size()).
			Msg("http")
	}
}

// GinRecovery turns a handler panic into a logged 500 instead of a dropped
// connection.
func GinRecovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		root.Error().
			Interface("panic", recovered).
			Str("method", c.Request.Method).
			Str("uri", c.Request.URL.Path).
			Str("client", c.ClientIP()).
			Msg("panic recovered")
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}
