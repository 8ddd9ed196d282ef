package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/John-Robertt/javdata/internal/app/run"
	"github.com/John-Robertt/javdata/internal/domain"
)

func candidates(n int) []domain.SearchResult {
	items := make([]domain.SearchResult, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, domain.SearchResult{Code: "ABC-12" + string(rune('0'+i)), Title: "Title"})
	}
	return items
}

func TestPromptSelector_SingleAutoSelect(t *testing.T) {
	var out bytes.Buffer
	p := newPromptSelector(strings.NewReader(""), &out)

	idx, err := p.Select(candidates(1))
	if err != nil || idx != 0 {
		t.Fatalf("单候选应自动选中：%d %v", idx, err)
	}
	if out.Len() != 0 {
		t.Fatalf("单候选不应有任何提示输出：%q", out.String())
	}
}

func TestPromptSelector_PicksNumber(t *testing.T) {
	var out bytes.Buffer
	p := newPromptSelector(strings.NewReader("2\n"), &out)

	idx, err := p.Select(candidates(3))
	if err != nil {
		t.Fatalf("Select 失败：%v", err)
	}
	if idx != 1 {
		t.Fatalf("编号 2 应映射到下标 1：%d", idx)
	}
}

func TestPromptSelector_RetriesOnInvalidInput(t *testing.T) {
	var out bytes.Buffer
	p := newPromptSelector(strings.NewReader("abc\n9\n\n1\n"), &out)

	idx, err := p.Select(candidates(2))
	if err != nil {
		t.Fatalf("Select 失败：%v", err)
	}
	if idx != 0 {
		t.Fatalf("最终应选中下标 0：%d", idx)
	}
	if !strings.Contains(out.String(), "无效输入") {
		t.Fatalf("非法输入应有提示：%q", out.String())
	}
}

func TestPromptSelector_ZeroCancels(t *testing.T) {
	p := newPromptSelector(strings.NewReader("0\n"), new(bytes.Buffer))
	if _, err := p.Select(candidates(2)); !errors.Is(err, run.ErrCancelled) {
		t.Fatalf("输入 0 应视为放弃：%v", err)
	}
}

func TestPromptSelector_EOFCancels(t *testing.T) {
	p := newPromptSelector(strings.NewReader(""), new(bytes.Buffer))
	if _, err := p.Select(candidates(2)); !errors.Is(err, run.ErrCancelled) {
		t.Fatalf("输入流关闭应视为放弃：%v", err)
	}
}

func TestPromptSelector_ListingShowsPlaceholderCode(t *testing.T) {
	var out bytes.Buffer
	p := newPromptSelector(strings.NewReader("1\n"), &out)

	items := []domain.SearchResult{{Title: "no code"}, {Code: "ABC-123", Title: "x"}}
	if _, err := p.Select(items); err != nil {
		t.Fatalf("Select 失败：%v", err)
	}
	if !strings.Contains(out.String(), "N/A") {
		t.Fatalf("缺番号的候选应显示 N/A：%q", out.String())
	}
}

func TestShorten(t *testing.T) {
	if got := shorten("short", 100); got != "short" {
		t.Fatalf("短标题不应截断：%q", got)
	}
	long := strings.Repeat("标", 150)
	got := shorten(long, 100)
	if len([]rune(got)) != 103 || !strings.HasSuffix(got, "...") {
		t.Fatalf("长标题应截断到 100 并加省略号：%d", len([]rune(got)))
	}
}
