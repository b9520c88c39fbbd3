package executor

import (
	"errors"
	"fmt"
)

// TaskError 叶子任务执行失败（子进程非零退出或无法启动）
type TaskError struct {
	Task string
	Code int
	Err  error
}

// Error 实现error接口
func (e *TaskError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task %s failed with exit status %d: %v", e.Task, e.Code, e.Err)
	}
	return fmt.Sprintf("task %s failed with exit status %d", e.Task, e.Code)
}

// Unwrap 返回底层错误
func (e *TaskError) Unwrap() error {
	return e.Err
}

// ExitCode 将执行结果映射为进程退出码
// nil -> 0；TaskError -> 子进程退出码（无有效退出码时为1）；其他错误 -> 1
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var te *TaskError
	if errors.As(err, &te) && te.Code > 0 {
		return te.Code
	}
	return 1
}
