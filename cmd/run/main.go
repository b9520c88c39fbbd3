package main

import (
	"context"
	"os"

	"github.com/LENAX/devrun/pkg/cli/cmd"
	"github.com/LENAX/devrun/pkg/notify"
)

func main() {
	// 失败通知必须在所有任务结束之后、进程真正退出之前触发一次
	notifier := notify.New(nil)
	code := notifier.Guard(func() int {
		return cmd.Execute(context.Background(), os.Args[1:], &cmd.Options{Notifier: notifier})
	})
	os.Exit(code)
}
