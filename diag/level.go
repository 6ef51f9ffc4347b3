package diag

import "go.uber.org/zap/zapcore"

func zapWarnLevel() zapcore.Level {
	return zapcore.WarnLevel
}
