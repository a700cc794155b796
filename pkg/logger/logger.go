package logger

import (
	"os"

	"go.uber.org/zap"
)

// Init 初始化全局日志器
// APP_ENV=production 时输出 JSON 日志，否则输出彩色控制台日志方便调试
func Init() *zap.SugaredLogger {
	var (
		l   *zap.Logger
		err error
	)

	if os.Getenv("APP_ENV") == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("日志器初始化失败: " + err.Error())
	}

	zap.ReplaceGlobals(l)
	return l.Sugar()
}
