package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	log  *zap.Logger
	once sync.Once
)

// Init builds the process-wide logger. APP_ENV=dev switches to the
// human-readable development encoder.
func Init() error {
	var err error
	once.Do(func() {
		if os.Getenv("APP_ENV") == "dev" {
			log, err = zap.NewDevelopment()
		} else {
			log, err = zap.NewProduction()
		}
	})
	return err
}

// L returns the logger set up by Init, or a no-op logger when Init was never called.
func L() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
