// Package notify 进程退出前的失败通知钩子。
package notify

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/LENAX/devrun/pkg/cli/output"
	"github.com/LENAX/devrun/pkg/logging"
)

// Notifier 在整个执行结束后根据最终退出码输出一次警告
type Notifier struct {
	Out    io.Writer
	Logger logrus.FieldLogger

	once sync.Once
}

// New 创建输出到stderr的Notifier
// logger为nil时使用默认级别的stderr日志器，读取配置后可通过Logger字段替换。
func New(logger logrus.FieldLogger) *Notifier {
	if logger == nil {
		l, _ := logging.New("", os.Stderr)
		logger = l
	}
	return &Notifier{Out: os.Stderr, Logger: logger}
}

// Guard 执行fn并在其返回（或panic）后触发一次通知，返回最终退出码
// fn中的panic会被恢复并视为退出码1。
func (n *Notifier) Guard(fn func() int) (code int) {
	defer func() {
		if r := recover(); r != nil {
			if n.Logger != nil {
				n.Logger.WithField("panic", r).Error("执行异常中止")
			}
			code = 1
		}
		n.Notify(code)
	}()
	return fn()
}

// Notify 上报最终退出码；只有第一次调用生效，非零时输出一行警告
func (n *Notifier) Notify(code int) {
	n.once.Do(func() {
		if code == 0 {
			return
		}
		out := n.Out
		if out == nil {
			out = os.Stderr
		}
		(&output.Printer{W: out}).Warning("run failed (exit status %d)", code)
	})
}
