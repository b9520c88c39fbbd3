// Package help 从任务注册表派生帮助列表，帮助内容与调度表来自同一份声明。
package help

import (
	"fmt"
	"io"

	"github.com/LENAX/devrun/pkg/cli/output"
	"github.com/LENAX/devrun/pkg/core/task"
)

// Entry 帮助条目
type Entry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// EntryPoint 不被任何组合任务包含的顶层任务
	EntryPoint bool `json:"entry_point"`
	// UsedBy 直接包含该任务的组合任务
	UsedBy []string `json:"used_by,omitempty"`
}

// Usage 按声明顺序返回所有可直接调用任务的帮助条目
func Usage(reg *task.Registry) []Entry {
	roots := make(map[string]bool)
	for _, name := range reg.EntryPoints() {
		roots[name] = true
	}

	var entries []Entry
	for _, t := range reg.Tasks() {
		if !t.Dispatchable {
			continue
		}
		e := Entry{Name: t.Name, Description: t.Description, EntryPoint: roots[t.Name]}
		if parents, err := reg.UsedBy(t.Name); err == nil && len(parents) > 0 {
			e.UsedBy = parents
		}
		entries = append(entries, e)
	}
	return entries
}

// Render 渲染文本帮助
func Render(w io.Writer, program string, entries []Entry) {
	fmt.Fprintf(w, "Usage: %s <task>\n\nTasks:\n", program)
	table := output.NewTable([]string{"TASK", "DESCRIPTION"})
	table.NoHeader = true
	table.Indent = "  "
	for _, e := range entries {
		table.AddRow([]string{e.Name, e.Description})
	}
	table.Fprint(w)
}

// RenderJSON 以JSON数组输出帮助条目
func RenderJSON(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	return output.PrintJSON(w, entries)
}
