// Package tasks 声明本项目的任务表。
//
// 声明顺序即帮助列表顺序。check-rust-format与format-rust只作为组合任务的
// 构建块存在，不可直接调用。
package tasks

import (
	"github.com/LENAX/devrun/pkg/core/task"
)

// 任务名常量
const (
	Clean       = "clean"
	Validate    = "validate"
	Docs        = "docs"
	Lint        = "lint"
	Test        = "test"
	Build       = "build"
	CheckFormat = "check-format"
	Format      = "format"
	Watch       = "watch"

	LintRust         = "lint-rust"
	BuildRust        = "build-rust"
	TestRust         = "test-rust"
	CheckRustFormat  = "check-rust-format"
	FormatRust       = "format-rust"
	CheckShellFormat = "check-shell-format"
	FormatShell      = "format-shell"
	LintShell        = "lint-shell"
	CheckNixFormat   = "check-nix-format"
	FormatNix        = "format-nix"
	LintNix          = "lint-nix"
	BuildNix         = "build-nix"
	LintDocs         = "lint-docs"
)

// shfmt参数：4空格缩进，case分支缩进
var shfmtFlags = []string{"-i", "4", "-ci"}

// Declarations 返回任务声明（每次调用返回新切片）
func Declarations() []task.Task {
	return []task.Task{
		task.Leaf(Clean, "Remove build artifacts", "cargo", "clean"),
		task.Composite(Validate, "Run every check a change must pass: lint, build, test, check-format",
			Lint, Build, Test, CheckFormat),
		task.Leaf(Docs, "Build the documentation book", "mdbook", "build", "docs"),
		task.Composite(Lint, "Run all linters", LintRust, LintShell, LintDocs, LintNix),
		task.Composite(Test, "Run all tests", TestRust),
		task.Composite(Build, "Build all artifacts", BuildRust, BuildNix),
		task.Composite(CheckFormat, "Check formatting without modifying files",
			CheckShellFormat, CheckRustFormat, CheckNixFormat),
		task.Composite(Format, "Format all sources in place", FormatRust, FormatShell, FormatNix),
		task.Leaf(Watch, "Rebuild and test on every change", "cargo", "watch", "-x", "check", "-x", "test"),

		task.Leaf(LintRust, "Lint Rust sources with clippy",
			"cargo", "clippy", "--all-targets", "--all-features", "--", "-D", "warnings"),
		task.Leaf(BuildRust, "Build the Rust workspace", "cargo", "build", "--all-targets"),
		task.Leaf(TestRust, "Run the Rust test suite", "cargo", "test", "--all-targets"),
		task.Leaf(CheckRustFormat, "Check Rust formatting", "cargo", "fmt", "--all", "--", "--check").Internal(),
		task.Leaf(FormatRust, "Format Rust sources", "cargo", "fmt", "--all").Internal(),
		task.Leaf(CheckShellFormat, "Check shell script formatting",
			"shfmt", append(append([]string{"-d"}, shfmtFlags...), ".")...),
		task.Leaf(FormatShell, "Format shell scripts",
			"shfmt", append(append([]string{"-w"}, shfmtFlags...), ".")...),
		task.Leaf(LintShell, "Lint shell scripts with shellcheck",
			"sh", "-c", `git ls-files -z -- '*.sh' | xargs -0 -r shellcheck`),
		task.Leaf(CheckNixFormat, "Check Nix formatting", "nixpkgs-fmt", "--check", "."),
		task.Leaf(FormatNix, "Format Nix expressions", "nixpkgs-fmt", "."),
		task.Leaf(LintNix, "Lint Nix expressions with statix", "statix", "check", "."),
		task.Leaf(BuildNix, "Build the Nix flake", "nix", "build"),
		task.Leaf(LintDocs, "Lint prose with vale", "vale", "docs"),
	}
}

// NewCatalog 构建并校验本项目的任务注册表
func NewCatalog() (*task.Registry, error) {
	return task.NewRegistry(Declarations()...)
}
