package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Table 简单表格输出
type Table struct {
	headers []string
	rows    [][]string
	widths  []int
	// Indent 每行前缀
	Indent string
	// NoHeader 不打印表头与分隔线
	NoHeader bool
}

// NewTable 创建表格
func NewTable(headers []string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		widths:  widths,
	}
}

// AddRow 添加行
func (t *Table) AddRow(row []string) {
	// 更新列宽
	for i, cell := range row {
		if i < len(t.widths) && len(cell) > t.widths[i] {
			t.widths[i] = len(cell)
		}
	}
	t.rows = append(t.rows, row)
}

// Fprint 渲染表格到w，最后一列不补齐空格
func (t *Table) Fprint(w io.Writer) {
	if !t.NoHeader {
		headerColor := color.New(color.FgCyan, color.Bold)
		cells := make([]string, len(t.headers))
		for i, h := range t.headers {
			cells[i] = headerColor.Sprint(t.pad(i, h))
		}
		fmt.Fprintln(w, t.Indent+strings.TrimRight(strings.Join(cells, "  "), " "))

		seps := make([]string, len(t.headers))
		for i := range t.headers {
			seps[i] = strings.Repeat("-", t.widths[i])
		}
		fmt.Fprintln(w, t.Indent+strings.Join(seps, "  "))
	}

	for _, row := range t.rows {
		cells := make([]string, 0, len(row))
		for i, cell := range row {
			if i < len(t.widths) {
				cells = append(cells, t.pad(i, cell))
			}
		}
		fmt.Fprintln(w, t.Indent+strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

func (t *Table) pad(i int, s string) string {
	if i == len(t.widths)-1 {
		return s
	}
	return fmt.Sprintf("%-*s", t.widths[i], s)
}
