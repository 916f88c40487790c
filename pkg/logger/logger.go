package logger

import (
	"log"

	"go.uber.org/zap"
)

// Log 全局日志实例
var Log *zap.Logger

// Init 初始化 zap 日志
// mode 为 gin 的运行模式，release 模式下输出 JSON 格式
func Init(mode string) {
	var (
		l   *zap.Logger
		err error
	)

	if mode == "release" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	Log = l
}

// L 返回全局日志实例，未初始化时返回 Nop（便于单元测试）
func L() *zap.Logger {
	if Log == nil {
		return zap.NewNop()
	}
	return Log
}
