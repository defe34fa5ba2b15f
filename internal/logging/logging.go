package logging

import (
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var level atomic.Uint32

func init() {
	level.Store(uint32(logrus.InfoLevel))
}

// SetLevel задает уровень для всех логгеров, созданных после вызова
func SetLevel(name string) error {
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	level.Store(uint32(lvl))
	logrus.SetLevel(lvl)
	return nil
}

// New создает логгер в едином для приложения формате
func New() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.Level(level.Load()))
	return logger
}

// Discard - логгер для тестов
func Discard() *logrus.Logger {
	logger := New()
	logger.SetOutput(io.Discard)
	return logger
}
