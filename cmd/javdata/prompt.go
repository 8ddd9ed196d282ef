package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/John-Robertt/javdata/internal/app/run"
	"github.com/John-Robertt/javdata/internal/domain"
)

var _ run.Selector = (*promptSelector)(nil)

// promptSelector 让用户在终端上从候选中挑一个。
//
// 规则：
// - 单候选自动选中（不打扰用户）
// - 输入 0 放弃；空行重新提示；非法输入提示后重试
// - 输入流关闭（EOF）视为放弃
type promptSelector struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptSelector(in io.Reader, out io.Writer) *promptSelector {
	return &promptSelector{in: bufio.NewReader(in), out: out}
}

func (p *promptSelector) Select(items []domain.SearchResult) (int, error) {
	if len(items) == 1 {
		return 0, nil
	}

	fmt.Fprintf(p.out, "找到 %d 个结果：\n", len(items))
	for i, it := range items {
		code := it.Code
		if code == "" {
			code = "N/A"
		}
		fmt.Fprintf(p.out, "%d) %s — %s\n", i+1, code, shorten(it.Title, 100))
	}

	for {
		fmt.Fprintf(p.out, "输入要选择的编号（1-%d，0 放弃）：", len(items))
		line, err := p.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if err != nil && line == "" {
			return 0, run.ErrCancelled
		}
		if line == "" {
			continue
		}
		if line == "0" {
			return 0, run.ErrCancelled
		}
		if n, aerr := strconv.Atoi(line); aerr == nil && n >= 1 && n <= len(items) {
			return n - 1, nil
		}
		fmt.Fprintln(p.out, "无效输入，请重试。")
	}
}

func shorten(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
