package config

import (
	"fmt"
	"runtime"
)

// 這些變數會在編譯時通過 -ldflags 設置
var (
	AppVersion string
	GitCommit  string
	BuildDate  string
)

// Version 包含應用程序的版本信息
type Version struct {
	Version   string `json:"version"`
	AppName   string `json:"app_name"`
	BuildDate string `json:"build_date"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetVersion 返回當前版本信息，未注入時使用環境變量或預設值
func GetVersion() Version {
	v := Version{
		Version:   AppVersion,
		AppName:   getEnv("APP_NAME", "Placement Dashboard"),
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
	if v.Version == "" {
		v.Version = getEnv("APP_VERSION", "0.1.0")
	}
	if v.GitCommit == "" {
		v.GitCommit = getEnv("GIT_COMMIT", "unknown")
	}
	if v.BuildDate == "" {
		v.BuildDate = getEnv("BUILD_DATE", "unknown")
	}
	return v
}

// ShortVersionString 返回簡短的版本信息字符串
func ShortVersionString() string {
	v := GetVersion()
	return fmt.Sprintf("%s v%s (%s, %s)", v.AppName, v.Version, v.GitCommit, v.Platform)
}
