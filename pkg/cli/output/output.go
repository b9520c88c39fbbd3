// Package output 终端输出工具：带颜色的消息、表格与JSON。
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Printer 向指定writer输出带颜色的消息
type Printer struct {
	W io.Writer
}

// Success 输出成功消息
func (p *Printer) Success(format string, args ...interface{}) {
	p.print(color.New(color.FgGreen, color.Bold), "✅ ", format, args...)
}

// Error 输出错误消息
func (p *Printer) Error(format string, args ...interface{}) {
	p.print(color.New(color.FgRed, color.Bold), "❌ ", format, args...)
}

// Info 输出信息
func (p *Printer) Info(format string, args ...interface{}) {
	p.print(color.New(color.FgCyan), "ℹ️  ", format, args...)
}

// Warning 输出警告
func (p *Printer) Warning(format string, args ...interface{}) {
	p.print(color.New(color.FgYellow), "⚠️  ", format, args...)
}

func (p *Printer) print(c *color.Color, icon, format string, args ...interface{}) {
	w := p.W
	if w == nil {
		w = os.Stdout
	}
	c.Fprintf(w, icon+format+"\n", args...)
}

// PrintJSON 输出JSON格式
func PrintJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// SetColorMode 设置颜色模式：auto/always/never
func SetColorMode(mode string) error {
	switch mode {
	case "", "auto":
		// fatih/color 默认根据终端类型与NO_COLOR自动判断
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		return fmt.Errorf("未知的颜色模式: %s", mode)
	}
	return nil
}
