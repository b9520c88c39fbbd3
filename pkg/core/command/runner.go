package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// ExecRunner 通过子进程执行命令，stdio直通父进程
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Echo 为true时在执行前向Stderr打印 "+ cmd"
	Echo bool
}

// NewExecRunner 创建直通当前进程标准流的ExecRunner
func NewExecRunner(echo bool) *ExecRunner {
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Echo:   echo,
	}
}

// Run 同步执行命令直到子进程退出
// 启动后的命令不会被ctx中断，ctx只在启动前检查一次。
// 找不到程序、无法执行等启动失败与非零退出同等处理，统一返回退出码1。
func (r *ExecRunner) Run(ctx context.Context, dir string, cmd Command) Result {
	if err := ctx.Err(); err != nil {
		return Result{Code: 1, Err: err}
	}
	if cmd.IsZero() {
		return Result{Code: 1, Err: errors.New("命令为空")}
	}
	if r.Echo {
		fmt.Fprintf(r.stderr(), "+ %s\n", cmd.String())
	}

	c := exec.Command(cmd.Program, cmd.Args...)
	c.Dir = dir
	c.Stdin = r.Stdin
	c.Stdout = r.stdout()
	c.Stderr = r.stderr()

	err := c.Run()
	if err == nil {
		return Result{}
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		code := ee.ExitCode()
		if code <= 0 {
			// 被信号终止时ExitCode返回-1
			code = 1
		}
		return Result{Code: code, Err: err}
	}
	return Result{Code: 1, Err: fmt.Errorf("启动命令失败 %q: %w", cmd.Program, err)}
}

func (r *ExecRunner) stdout() io.Writer {
	if r.Stdout == nil {
		return os.Stdout
	}
	return r.Stdout
}

func (r *ExecRunner) stderr() io.Writer {
	if r.Stderr == nil {
		return os.Stderr
	}
	return r.Stderr
}

// DryRunner 只打印命令不执行，总是返回成功
type DryRunner struct {
	Out io.Writer
}

// Run 实现Runner接口
func (r *DryRunner) Run(ctx context.Context, dir string, cmd Command) Result {
	out := r.Out
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintf(out, "+ %s\n", cmd.String())
	return Result{}
}
