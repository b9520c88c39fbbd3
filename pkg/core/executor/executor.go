// Package executor 按注册表执行任务：叶子任务交给command.Runner，
// 组合任务按声明顺序串行执行子任务，遇到第一个失败立即停止（fail-fast）。
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/LENAX/devrun/pkg/core/command"
	"github.com/LENAX/devrun/pkg/core/task"
)

// Executor 任务执行器（对外导出）
type Executor struct {
	Registry *task.Registry
	Runner   command.Runner
	// Dir 叶子命令的工作目录（项目根目录）
	Dir    string
	Logger logrus.FieldLogger
}

// New 创建执行器
func New(reg *task.Registry, runner command.Runner, logger logrus.FieldLogger) *Executor {
	if logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		logger = l
	}
	return &Executor{Registry: reg, Runner: runner, Logger: logger}
}

// Run 执行指定任务
// 返回nil表示成功；失败时返回第一个失败叶子任务的*TaskError，原样向上传递。
func (e *Executor) Run(ctx context.Context, name string) error {
	t, err := e.Registry.Resolve(name)
	if err != nil {
		return err
	}
	return e.run(ctx, t, 0)
}

func (e *Executor) run(ctx context.Context, t task.Task, depth int) error {
	log := e.Logger.WithFields(logrus.Fields{
		"task":  t.Name,
		"kind":  t.Kind.String(),
		"depth": depth,
	})
	start := time.Now()
	log.Debug("任务开始")

	var err error
	switch t.Kind {
	case task.KindLeaf:
		err = e.runLeaf(ctx, t, log)
	case task.KindComposite:
		err = e.runComposite(ctx, t, depth)
	default:
		err = fmt.Errorf("%w: 任务 %s 类型未知", task.ErrInvalidTask, t.Name)
	}

	log = log.WithField("duration", time.Since(start).Round(time.Millisecond))
	if err != nil {
		log.WithField("code", ExitCode(err)).Info("任务失败")
		return err
	}
	log.Debug("任务完成")
	return nil
}

func (e *Executor) runLeaf(ctx context.Context, t task.Task, log logrus.FieldLogger) error {
	log.WithField("command", t.Command.String()).Debug("执行命令")
	res := e.Runner.Run(ctx, e.Dir, t.Command)
	if res.OK() {
		return nil
	}
	return &TaskError{Task: t.Name, Code: res.Code, Err: res.Err}
}

// runComposite 严格按声明顺序执行，第一个失败即返回，后续子任务不再执行，
// 已完成子任务的副作用保留，不做回滚。
func (e *Executor) runComposite(ctx context.Context, t task.Task, depth int) error {
	for _, step := range t.Steps {
		sub, err := e.Registry.Resolve(step)
		if err != nil {
			return err
		}
		if err := e.run(ctx, sub, depth+1); err != nil {
			return err
		}
	}
	return nil
}
