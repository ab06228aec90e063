// Package logging builds the zap loggers used across textgrab.
package logging

import (
	"go.uber.org/zap"
)

// Setup builds a logger at the requested verbosity. Debug mode uses the
// development config (console encoder, debug level); otherwise the production
// config is used. The application identity is attached as initial fields.
func Setup(debug bool, appName, appVersion string) (*zap.Logger, error) {
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop(), err
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}
