package log

import (
	"go.uber.org/zap"
)

// Importing this package for side effects installs the production logger as
// the zap global, so every package logs through zap.L().
func init() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}
