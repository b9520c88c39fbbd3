package cmd

// 版本信息（编译时注入）
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// versionString cobra --version 输出
func versionString() string {
	return Version + " (commit " + GitCommit + ", built " + BuildTime + ")"
}
