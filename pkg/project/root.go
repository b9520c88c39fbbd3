// Package project 定位项目根目录。
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrRootNotFound 未找到项目根目录
var ErrRootNotFound = errors.New("project root not found")

// RootFinder 项目根目录定位接口
type RootFinder interface {
	FindRoot() (string, error)
}

// Locator 根目录定位器
// Explicit非空时直接使用；否则从Start（为空时取当前目录）向上查找，
// 第一个包含任一Markers文件的目录即为根目录。
type Locator struct {
	Explicit string
	Start    string
	Markers  []string
}

// FindRoot 实现RootFinder接口
func (l *Locator) FindRoot() (string, error) {
	if l.Explicit != "" {
		abs, err := filepath.Abs(l.Explicit)
		if err != nil {
			return "", err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrRootNotFound, err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("%w: %s 不是目录", ErrRootNotFound, abs)
		}
		return abs, nil
	}

	start := l.Start
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		start = wd
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		for _, m := range l.Markers {
			if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: 从 %s 向上未找到 %v", ErrRootNotFound, start, l.Markers)
		}
		dir = parent
	}
}

// Fixed 固定根目录，用于测试
type Fixed string

// FindRoot 实现RootFinder接口
func (f Fixed) FindRoot() (string, error) {
	return string(f), nil
}
