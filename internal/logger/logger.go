package logger

import (
	"go.uber.org/zap"
)

// Log is the process-wide logger. It is a no-op logger until New is called.
var Log = zap.NewNop()

// New builds a zap logger for the given gin mode and installs it as Log.
func New(ginMode string) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if ginMode == "release" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}

	Log = l
	return l, nil
}
