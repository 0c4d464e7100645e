package config

// 构建时通过 -ldflags 注入
var (
	Version    = "dev"
	CommitHash = "n/a"
)

// IsDevelopment 判断是否为开发版本
func IsDevelopment() bool {
	return CommitHash == "n/a"
}

// IsProduction 判断是否为生产版本
func IsProduction() bool {
	return !IsDevelopment()
}
