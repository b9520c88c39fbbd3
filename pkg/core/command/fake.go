package command

import (
	"context"
	"sync"
)

// Call 一次被记录的命令调用
type Call struct {
	Dir     string
	Command Command
}

// FakeRunner 记录所有调用并按脚本返回退出码，用于测试
// Codes 以 Command.String() 为key，未命中的命令返回成功。
type FakeRunner struct {
	mu    sync.Mutex
	Codes map[string]int
	calls []Call
}

// NewFakeRunner 创建FakeRunner
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{Codes: make(map[string]int)}
}

// Fail 设置某条命令的退出码
func (f *FakeRunner) Fail(cmd Command, code int) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Codes[cmd.String()] = code
	return f
}

// Run 实现Runner接口
func (f *FakeRunner) Run(ctx context.Context, dir string, cmd Command) Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Dir: dir, Command: cmd})
	if code, ok := f.Codes[cmd.String()]; ok && code != 0 {
		return Result{Code: code}
	}
	return Result{}
}

// Calls 返回调用记录副本
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// Commands 按调用顺序返回命令字符串
func (f *FakeRunner) Commands() []string {
	calls := f.Calls()
	out := make([]string, 0, len(calls))
	for _, c := range calls {
		out = append(out, c.Command.String())
	}
	return out
}
