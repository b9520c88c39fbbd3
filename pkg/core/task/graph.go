package task

import (
	"fmt"
	"sort"
	"strings"

	"github.com/begmaroman/go-dag"
)

// vertex go-dag节点（实现Identifiable接口）
// go-dag默认以JSON编码结果计算节点哈希，字段必须导出，否则所有节点哈希相同。
type vertex struct {
	Name string `json:"name"`
}

// ID 实现Identifiable接口
func (v *vertex) ID() string {
	return v.Name
}

// stepGraph 组合任务 -> 子任务 的有向图
type stepGraph struct {
	d     *dag.DAG[*vertex]
	order map[string]int // 任务名 -> 声明序号，用于稳定输出
}

// buildStepGraph 根据任务声明构建DAG
// 先用邻接表一次性做DFS循环检测，再写入go-dag，避免逐条AddEdge时的递归检查。
func buildStepGraph(tasks []Task) (*stepGraph, error) {
	order := make(map[string]int, len(tasks))
	adj := make(map[string][]string, len(tasks))
	names := make([]string, 0, len(tasks))
	for i, t := range tasks {
		order[t.Name] = i
		names = append(names, t.Name)
		adj[t.Name] = dedupe(t.Steps)
	}

	if cycle := detectCycleDFS(names, adj); cycle != nil {
		return nil, fmt.Errorf("%w: %s", ErrCycle, strings.Join(cycle, " -> "))
	}

	d := dag.NewDAG[*vertex]()
	for _, name := range names {
		if _, err := d.AddVertex(&vertex{Name: name}); err != nil {
			return nil, fmt.Errorf("添加节点失败: task=%s: %w", name, err)
		}
	}
	for _, name := range names {
		for _, step := range adj[name] {
			if err := d.AddEdge(name, step); err != nil {
				return nil, fmt.Errorf("添加边失败: %s -> %s: %w", name, step, err)
			}
		}
	}
	return &stepGraph{d: d, order: order}, nil
}

// detectCycleDFS 三色标记DFS检测循环，返回闭合的循环路径（无环返回nil）
// 按names顺序遍历，保证同一张表总是报告同一条路径。
func detectCycleDFS(names []string, adj map[string][]string) []string {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(names))
	var stack []string
	var cycle []string

	var dfs func(name string) bool
	dfs = func(name string) bool {
		color[name] = gray
		stack = append(stack, name)
		for _, next := range adj[name] {
			switch color[next] {
			case white:
				if dfs(next) {
					return true
				}
			case gray:
				// 后向边：从栈中截出环
				for i := len(stack) - 1; i >= 0; i-- {
					if stack[i] == next {
						cycle = append(append([]string{}, stack[i:]...), next)
						break
					}
				}
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[name] = black
		return false
	}

	for _, name := range names {
		if color[name] == white && dfs(name) {
			return cycle
		}
	}
	return nil
}

// roots 不被任何组合任务引用的任务（入度为0），按声明顺序
func (g *stepGraph) roots() []string {
	return g.sorted(g.d.GetRoots())
}

// parents 直接包含name的组合任务，按声明顺序
func (g *stepGraph) parents(name string) ([]string, error) {
	ps, err := g.d.GetParents(name)
	if err != nil {
		return nil, err
	}
	return g.sorted(ps), nil
}

func (g *stepGraph) sorted(m map[string]dag.VHash) []string {
	out := make([]string, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return g.order[out[i]] < g.order[out[j]] })
	return out
}

func dedupe(steps []string) []string {
	seen := make(map[string]bool, len(steps))
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
