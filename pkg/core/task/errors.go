package task

import "errors"

var (
	// ErrUnknownTask 注册表中不存在该任务
	ErrUnknownTask = errors.New("unknown task")
	// ErrDuplicateTask 任务名重复或为空
	ErrDuplicateTask = errors.New("duplicate task")
	// ErrInvalidTask 任务声明不完整
	ErrInvalidTask = errors.New("invalid task")
	// ErrDanglingStep 组合任务引用了未声明的任务
	ErrDanglingStep = errors.New("dangling step")
	// ErrCycle 组合任务之间存在循环引用
	ErrCycle = errors.New("task cycle")
)
