package main

import (
	"os"

	"github.com/LJTian/eztax/internal/cli"
)

// 一次性抓取并打印 IRS 新闻，适合手动检查页面结构是否变化
func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(cli.ExitError)
	}
}
