// Package task 定义任务模型与只读任务注册表。
//
// 任务分两类：叶子任务执行一条外部命令；组合任务按声明顺序执行若干子任务。
// 注册表在启动时一次性构建并校验（重名、悬空引用、循环），之后不再修改。
package task

import (
	"github.com/LENAX/devrun/pkg/core/command"
)

// Kind 任务类型
type Kind int

const (
	// KindLeaf 叶子任务：执行单条外部命令
	KindLeaf Kind = iota
	// KindComposite 组合任务：顺序执行子任务
	KindComposite
)

// String 返回任务类型名称
func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Task 任务声明
type Task struct {
	Name        string
	Description string
	Kind        Kind
	// Command 仅叶子任务使用
	Command command.Command
	// Steps 仅组合任务使用，子任务名按执行顺序排列
	Steps []string
	// Dispatchable 是否可以从命令行直接调用（同时决定是否出现在帮助列表中）
	Dispatchable bool
}

// Leaf 声明叶子任务
func Leaf(name, description, program string, args ...string) Task {
	return Task{
		Name:         name,
		Description:  description,
		Kind:         KindLeaf,
		Command:      command.New(program, args...),
		Dispatchable: true,
	}
}

// Composite 声明组合任务
func Composite(name, description string, steps ...string) Task {
	return Task{
		Name:         name,
		Description:  description,
		Kind:         KindComposite,
		Steps:        steps,
		Dispatchable: true,
	}
}

// Internal 标记为仅供组合任务使用的构建块，不可直接调用
func (t Task) Internal() Task {
	t.Dispatchable = false
	return t
}

// IsComposite 是否为组合任务
func (t Task) IsComposite() bool {
	return t.Kind == KindComposite
}
