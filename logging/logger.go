package logging

import "go.uber.org/zap"

// New creates a new zap logger for command line tools
func New() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewExample()
	}
	return logger.Sugar()
}
