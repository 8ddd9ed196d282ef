package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/John-Robertt/javdata/internal/app/run"
	"github.com/John-Robertt/javdata/internal/config"
	"github.com/John-Robertt/javdata/internal/infra/httpx"
	"github.com/John-Robertt/javdata/internal/jdb"
	"github.com/John-Robertt/javdata/internal/output"
)

// 退出码契约：脚本化调用依赖它们区分失败原因。
const (
	exitOK        = 0
	exitFailed    = 1 // 网络/IO 失败
	exitUsage     = 2 // 参数错误 / 空查询 / 配置无效
	exitNoResults = 3 // 搜索零结果
	exitCancelled = 4 // 用户放弃选择
)

func main() {
	os.Exit(realMain(os.Args[1:]))
}

func realMain(args []string) int {
	for _, a := range args {
		if isHelp(a) {
			printUsage()
			return exitOK
		}
	}

	ca, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "参数错误：%v\n\n", err)
		printUsage()
		return exitUsage
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取当前目录失败：%v\n", err)
		return exitFailed
	}

	eff, err := config.LoadEffective(cwd, ca)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitUsage
	}

	pageClient, err := httpx.NewPageClient(eff.ProxyURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化 HTTP client 失败：%v\n", err)
		return exitUsage
	}
	imageClient, err := httpx.NewImageClient(eff.ProxyURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化图片 client 失败：%v\n", err)
		return exitUsage
	}
	enc, err := output.ForFormat(eff.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitUsage
	}

	// 既没有 -q 也没有 -l 时，交互终端下提示输入（原版行为）；
	// 非交互环境直接按空查询终止。
	if eff.Link == "" && eff.Query == "" && isTTY(os.Stdin) {
		fmt.Fprint(os.Stderr, "请输入检索词（例如 SONE-763）：")
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		eff.Query = strings.TrimSpace(line)
	}

	err = run.Execute(context.Background(), run.Options{
		Client:   &jdb.Client{BaseURL: eff.BaseURL, HTTP: pageClient},
		Images:   imageClient,
		Encoder:  enc,
		Selector: newPromptSelector(os.Stdin, os.Stderr),

		Query:    eff.Query,
		Link:     eff.Link,
		Output:   eff.Output,
		Download: eff.Download,

		Stdout:   os.Stdout,
		Progress: os.Stderr,
	})
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, run.ErrEmptyQuery):
		fmt.Fprintln(os.Stderr, "查询词为空。")
		return exitUsage
	case errors.Is(err, run.ErrNoResults):
		fmt.Fprintln(os.Stderr, "没有找到结果。")
		return exitNoResults
	case errors.Is(err, run.ErrCancelled):
		fmt.Fprintln(os.Stderr, "已取消选择。")
		return exitCancelled
	default:
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitFailed
	}
}

func parseArgs(args []string) (config.CLIArgs, error) {
	ca := config.CLIArgs{}

	setOnce := func(dst *string, name, v string) error {
		if *dst != "" {
			return fmt.Errorf("重复的 %s：%q 与 %q", name, *dst, v)
		}
		*dst = v
		return nil
	}

	for i := 0; i < len(args); i++ {
		a := args[i]
		next := func(name string) (string, error) {
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s 需要一个值", name)
			}
			i++
			return args[i], nil
		}

		switch {
		case a == "-q" || a == "--query":
			v, err := next(a)
			if err != nil {
				return config.CLIArgs{}, err
			}
			if err := setOnce(&ca.Query, "--query", v); err != nil {
				return config.CLIArgs{}, err
			}
		case strings.HasPrefix(a, "--query="):
			if err := setOnce(&ca.Query, "--query", strings.TrimPrefix(a, "--query=")); err != nil {
				return config.CLIArgs{}, err
			}
		case a == "-l" || a == "--link":
			v, err := next(a)
			if err != nil {
				return config.CLIArgs{}, err
			}
			if err := setOnce(&ca.Link, "--link", v); err != nil {
				return config.CLIArgs{}, err
			}
		case strings.HasPrefix(a, "--link="):
			if err := setOnce(&ca.Link, "--link", strings.TrimPrefix(a, "--link=")); err != nil {
				return config.CLIArgs{}, err
			}
		case a == "-o" || a == "--output":
			v, err := next(a)
			if err != nil {
				return config.CLIArgs{}, err
			}
			if err := setOnce(&ca.Output, "--output", v); err != nil {
				return config.CLIArgs{}, err
			}
		case strings.HasPrefix(a, "--output="):
			if err := setOnce(&ca.Output, "--output", strings.TrimPrefix(a, "--output=")); err != nil {
				return config.CLIArgs{}, err
			}
		case a == "--format":
			v, err := next(a)
			if err != nil {
				return config.CLIArgs{}, err
			}
			ca.Format = v
			ca.FormatSet = true
		case strings.HasPrefix(a, "--format="):
			ca.Format = strings.TrimPrefix(a, "--format=")
			ca.FormatSet = true
		case a == "-d" || a == "--download":
			ca.Download = true
		default:
			return config.CLIArgs{}, fmt.Errorf("未知参数 %q", a)
		}
	}

	return ca, nil
}

func isHelp(s string) bool {
	return s == "-h" || s == "--help" || s == "help"
}

func printUsage() {
	fmt.Fprint(os.Stdout, `用法：
  javdata [-q 查询词 | -l 详情页链接] [--format json|nfo] [-o 输出文件] [-d]

参数：
  -q, --query    检索词（例如 SONE-763）；与 -l 互斥，-l 优先
  -l, --link     详情页直达链接（跳过搜索与选择）
  -o, --output   把序列化文档写到该路径（stdout 始终会打印一份）
      --format   输出格式：json（默认）或 nfo（媒体库 sidecar）
  -d, --download 下载图集到 <番号>/preview/（nfo 模式下连同海报）
  -h, --help     显示帮助

可选配置文件 <cwd>/javdata.json：base_url / proxy.url / format。
`)
}

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
