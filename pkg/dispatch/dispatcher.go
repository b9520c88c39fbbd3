// Package dispatch 解析命令行中的任务名并执行对应任务。
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/LENAX/devrun/pkg/core/executor"
	"github.com/LENAX/devrun/pkg/core/task"
	"github.com/LENAX/devrun/pkg/help"
	"github.com/LENAX/devrun/pkg/project"
)

const (
	// NoTask 未提供任务名时的哨兵值，注册表中不会存在同名任务
	NoTask = ""
	// ExitUsage 任务名无效时的退出码
	ExitUsage = 1
)

// Dispatcher 任务调度器（对外导出），是注册表的唯一读取方
type Dispatcher struct {
	Registry *task.Registry
	Executor *executor.Executor
	Root     project.RootFinder
	// Usage 帮助列表输出位置（标准输出）
	Usage io.Writer
	// Program 帮助中显示的程序名
	Program string
	Logger  logrus.FieldLogger
	// Chdir 切换工作目录，默认os.Chdir
	Chdir func(dir string) error
}

// Dispatch 根据args中的第一个位置参数执行任务，返回进程退出码
func (d *Dispatcher) Dispatch(ctx context.Context, args []string) int {
	name := NoTask
	if len(args) > 0 {
		name = args[0]
	}
	log := d.logger().WithField("task", name)
	if len(args) > 1 {
		log.WithField("ignored", args[1:]).Debug("忽略多余参数")
	}

	// 所有叶子命令都以项目根目录为相对路径基准，必须先切换目录
	if err := d.enterRoot(log); err != nil {
		// 根目录不可用时，无效任务名仍按用法错误处理
		if _, resolveErr := d.Registry.ResolveDispatchable(name); resolveErr != nil {
			return d.printUsage()
		}
		log.WithError(err).Error("无法进入项目根目录")
		return 1
	}

	t, err := d.Registry.ResolveDispatchable(name)
	if err != nil {
		if errors.Is(err, task.ErrUnknownTask) {
			log.Debug("未知任务，输出帮助")
		}
		return d.printUsage()
	}

	err = d.Executor.Run(ctx, t.Name)
	code := executor.ExitCode(err)
	if err != nil {
		log.WithError(err).WithField("code", code).Debug("任务执行失败")
	}
	return code
}

// enterRoot 定位项目根目录并切换过去，同时设置执行器的工作目录
func (d *Dispatcher) enterRoot(log logrus.FieldLogger) error {
	root, err := d.Root.FindRoot()
	if err != nil {
		return fmt.Errorf("定位项目根目录失败: %w", err)
	}
	if err := d.chdir(root); err != nil {
		return fmt.Errorf("切换到项目根目录失败: %w", err)
	}
	d.Executor.Dir = root
	log.WithField("root", root).Debug("已切换到项目根目录")
	return nil
}

func (d *Dispatcher) printUsage() int {
	help.Render(d.usage(), d.program(), help.Usage(d.Registry))
	return ExitUsage
}

func (d *Dispatcher) chdir(dir string) error {
	if d.Chdir != nil {
		return d.Chdir(dir)
	}
	return os.Chdir(dir)
}

func (d *Dispatcher) usage() io.Writer {
	if d.Usage == nil {
		return os.Stdout
	}
	return d.Usage
}

func (d *Dispatcher) program() string {
	if d.Program == "" {
		return "run"
	}
	return d.Program
}

func (d *Dispatcher) logger() logrus.FieldLogger {
	if d.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return d.Logger
}
