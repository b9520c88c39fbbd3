// Package command 封装单条外部命令的执行（叶子任务的最小工作单元）。
package command

import (
	"context"
	"strings"
)

// Command 外部命令：程序名 + 有序参数列表
type Command struct {
	Program string
	Args    []string
}

// New 创建Command
func New(program string, args ...string) Command {
	return Command{Program: program, Args: args}
}

// String 以 "program arg1 arg2" 形式渲染命令
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Program
	}
	return c.Program + " " + strings.Join(c.Args, " ")
}

// IsZero 是否为空命令
func (c Command) IsZero() bool {
	return strings.TrimSpace(c.Program) == ""
}

// Result 命令执行结果，对调用方只暴露退出码
type Result struct {
	Code int
	Err  error
}

// OK 退出码为0
func (r Result) OK() bool {
	return r.Code == 0
}

// Runner 命令执行器接口（对外导出）
// dir 为命令的工作目录，所有叶子命令都以项目根目录为相对路径基准。
type Runner interface {
	Run(ctx context.Context, dir string, cmd Command) Result
}

// RunnerFunc 函数适配器
type RunnerFunc func(ctx context.Context, dir string, cmd Command) Result

// Run 实现Runner接口
func (f RunnerFunc) Run(ctx context.Context, dir string, cmd Command) Result {
	return f(ctx, dir, cmd)
}
