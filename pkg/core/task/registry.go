package task

import (
	"fmt"
	"strings"
)

// Registry 任务注册表（对外导出）
// 构建后只读，无需加锁。
type Registry struct {
	tasks []Task
	index map[string]int
	graph *stepGraph
}

// NewRegistry 校验任务声明并构建注册表
// 任何非法声明都会让构建失败：空名/重名、叶子缺少命令、组合缺少子任务、
// 引用未声明的任务、循环引用。
func NewRegistry(tasks ...Task) (*Registry, error) {
	r := &Registry{
		tasks: make([]Task, 0, len(tasks)),
		index: make(map[string]int, len(tasks)),
	}

	for i, t := range tasks {
		if strings.TrimSpace(t.Name) == "" {
			return nil, fmt.Errorf("%w: tasks[%d] 名称不能为空", ErrDuplicateTask, i)
		}
		if _, exists := r.index[t.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTask, t.Name)
		}
		switch t.Kind {
		case KindLeaf:
			if t.Command.IsZero() {
				return nil, fmt.Errorf("%w: 叶子任务 %s 缺少命令", ErrInvalidTask, t.Name)
			}
		case KindComposite:
			if len(t.Steps) == 0 {
				return nil, fmt.Errorf("%w: 组合任务 %s 缺少子任务", ErrInvalidTask, t.Name)
			}
		default:
			return nil, fmt.Errorf("%w: 任务 %s 类型未知", ErrInvalidTask, t.Name)
		}

		t.Steps = append([]string(nil), t.Steps...)
		t.Command.Args = append([]string(nil), t.Command.Args...)
		r.index[t.Name] = len(r.tasks)
		r.tasks = append(r.tasks, t)
	}

	for _, t := range r.tasks {
		for _, step := range t.Steps {
			if _, ok := r.index[step]; !ok {
				return nil, fmt.Errorf("%w: %s -> %s", ErrDanglingStep, t.Name, step)
			}
		}
	}

	g, err := buildStepGraph(r.tasks)
	if err != nil {
		return nil, err
	}
	r.graph = g
	return r, nil
}

// MustRegistry 同NewRegistry，失败时panic，用于静态声明
func MustRegistry(tasks ...Task) *Registry {
	r, err := NewRegistry(tasks...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup 精确、大小写敏感地查找任务
func (r *Registry) Lookup(name string) (Task, bool) {
	i, ok := r.index[name]
	if !ok {
		return Task{}, false
	}
	return r.tasks[i], true
}

// Resolve 查找任务，不存在时返回ErrUnknownTask
func (r *Registry) Resolve(name string) (Task, error) {
	t, ok := r.Lookup(name)
	if !ok {
		return Task{}, fmt.Errorf("%w: %q", ErrUnknownTask, name)
	}
	return t, nil
}

// ResolveDispatchable 查找可直接调用的任务，内部构建块视为不存在
func (r *Registry) ResolveDispatchable(name string) (Task, error) {
	t, err := r.Resolve(name)
	if err != nil {
		return Task{}, err
	}
	if !t.Dispatchable {
		return Task{}, fmt.Errorf("%w: %q 不可直接调用", ErrUnknownTask, name)
	}
	return t, nil
}

// Tasks 按声明顺序返回所有任务
func (r *Registry) Tasks() []Task {
	out := make([]Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// Names 按声明顺序返回所有任务名
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t.Name)
	}
	return out
}

// Len 任务数量
func (r *Registry) Len() int {
	return len(r.tasks)
}

// EntryPoints 不被任何组合任务引用的顶层任务，按声明顺序
func (r *Registry) EntryPoints() []string {
	return r.graph.roots()
}

// UsedBy 直接引用name的组合任务，按声明顺序
func (r *Registry) UsedBy(name string) ([]string, error) {
	if _, ok := r.index[name]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTask, name)
	}
	return r.graph.parents(name)
}

// Plan 将任务展开为将要依次执行的叶子任务序列
func (r *Registry) Plan(name string) ([]Task, error) {
	t, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	var plan []Task
	r.flatten(t, &plan)
	return plan, nil
}

// flatten 注册表无环，递归必然终止
func (r *Registry) flatten(t Task, plan *[]Task) {
	if t.Kind == KindLeaf {
		*plan = append(*plan, t)
		return
	}
	for _, step := range t.Steps {
		sub, _ := r.Lookup(step)
		r.flatten(sub, plan)
	}
}
