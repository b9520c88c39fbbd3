// Package logging 构建进程级logrus日志器。
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// New 创建日志器，level取值 debug/info/warn/error
// 日志写入out（为nil时写stderr），不与子命令的stdout混在一起。
func New(level string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = os.Stderr
	}
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: false,
		FullTimestamp:    true,
		TimestampFormat:  "15:04:05.000",
	})
	return l, nil
}

// ParseLevel 解析日志级别，空字符串视为warn
func ParseLevel(level string) (logrus.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return logrus.WarnLevel, nil
	case "debug":
		return logrus.DebugLevel, nil
	case "info":
		return logrus.InfoLevel, nil
	case "warn", "warning":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	default:
		return logrus.WarnLevel, fmt.Errorf("log_level必须是debug/info/warn/error之一: %q", level)
	}
}

// WithRun 为一次调用附加run_id，便于关联同一次执行的日志
func WithRun(l logrus.FieldLogger) logrus.FieldLogger {
	return l.WithField("run_id", uuid.NewString())
}
