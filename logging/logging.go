package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const ginKey = "logger"

var (
	once sync.Once
	base zerolog.Logger
)

// Init configures the global logger once. An empty filePath logs to stdout only.
func Init(component, level, filePath string) *zerolog.Logger {
	once.Do(func() {
		var out io.Writer = os.Stdout
		if filePath != "" {
			_ = os.MkdirAll(filepath.Dir(filePath), 0755)
			rot := &lumberjack.Logger{
				Filename:   filePath,
				MaxSize:    50, // MB
				MaxBackups: 3,
				MaxAge:     7, // days
			}
			out = io.MultiWriter(os.Stdout, rot)
		}

		lvl, err := zerolog.ParseLevel(level)
		if err != nil || level == "" {
			lvl = zerolog.InfoLevel
		}

		zerolog.TimeFieldFormat = time.RFC3339Nano
		base = zerolog.New(out).Level(lvl).With().
			Timestamp().
			Str("component", component).
			Logger()
		zerolog.DefaultContextLogger = &base
	})
	return &base
}

// Base returns the global logger, initializing a stdout logger if Init was never called.
func Base() *zerolog.Logger {
	return Init("app", "info", "")
}

// With stores the request logger in the gin context and in the request context.
func With(c *gin.Context, l zerolog.Logger) {
	c.Set(ginKey, l)
	c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))
}

// From returns the request-scoped logger, or the global one.
func From(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(ginKey); ok {
		if l, ok := v.(zerolog.Logger); ok {
			return &l
		}
	}
	return Base()
}
