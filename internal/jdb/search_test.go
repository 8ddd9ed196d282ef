package jdb

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseSearch_Fixture(t *testing.T) {
	html, err := os.ReadFile(filepath.Join("testdata", "search.html"))
	if err != nil {
		t.Fatalf("读取 search fixture 失败：%v", err)
	}

	results, err := ParseSearch(html)
	if err != nil {
		t.Fatalf("ParseSearch 失败：%v", err)
	}
	if len(results) != 3 {
		t.Fatalf("期望 3 张卡片（缺子元素的也保留），实际 %d", len(results))
	}

	r0 := results[0]
	if r0.Code != "SONE-763" {
		t.Fatalf("code 不一致：%q", r0.Code)
	}
	if r0.Link != "https://www.javdatabase.com/movies/sone-763/" {
		t.Fatalf("link 不一致：%q", r0.Link)
	}
	if r0.Title != "SONE-763 Best Of Collection" {
		t.Fatalf("title 不一致：%q", r0.Title)
	}
	if r0.Date != "2023-05-01" {
		t.Fatalf("date 不一致：%q", r0.Date)
	}
	if r0.Studio != "S1 NO.1 STYLE" {
		t.Fatalf("studio 不一致：%q", r0.Studio)
	}

	// 第二张卡片用的是备用模板标记；缺 date/studio => 空字段。
	r1 := results[1]
	if r1.Code != "ABC-123" || r1.Title != "Another Title" {
		t.Fatalf("备用模板卡片解析失败：%+v", r1)
	}
	if r1.Date != "" || r1.Studio != "" {
		t.Fatalf("缺失的子元素应产出空字段：%+v", r1)
	}

	// 第三张卡片什么都没有：全部空字段，但卡片保留。
	r2 := results[2]
	if r2.Code != "" || r2.Link != "" || r2.Title != "" || r2.Date != "" || r2.Studio != "" {
		t.Fatalf("空卡片应产出全空字段：%+v", r2)
	}
}

func TestParseSearch_NoCards(t *testing.T) {
	results, err := ParseSearch([]byte(`<html><body><p>no matches</p></body></html>`))
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if results == nil {
		t.Fatalf("零卡片应返回空切片，不是 nil")
	}
	if len(results) != 0 {
		t.Fatalf("期望空结果，实际 %d", len(results))
	}
}

func TestSearchURL(t *testing.T) {
	c := &Client{}
	got := c.SearchURL("SONE 763")
	want := "https://www.javdatabase.com/?post_type=movies%2Cuncensored&s=SONE+763"
	if got != want {
		t.Fatalf("搜索 URL 不一致：\n期望 %s\n实际 %s", want, got)
	}

	c = &Client{BaseURL: "https://mirror.example/"}
	if got := c.SearchURL("x"); got != "https://mirror.example/?post_type=movies%2Cuncensored&s=x" {
		t.Fatalf("镜像域名拼接不一致：%s", got)
	}
}
