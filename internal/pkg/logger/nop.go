package logger

import "go.uber.org/zap"

// Nop returns a logger that discards everything. Test helper.
func Nop() ILogger {
	return &ZapLogger{logger: zap.NewNop()}
}
