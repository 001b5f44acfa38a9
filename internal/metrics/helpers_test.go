package metrics

import (
	"go.uber.org/zap"

	"sentinel/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(zap.NewNop())
}
