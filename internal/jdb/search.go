package jdb

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/John-Robertt/javdata/internal/domain"
	"github.com/John-Robertt/javdata/internal/extract"
)

// 结果卡片有两套等价的结构标记（站点在不同模板下渲染不一致），
// 两套都必须检查；pcard/badge 子元素同理。
const (
	cardSelector   = ".card.borderlesscard, .card.h-100.borderlesscard"
	codeSelector   = "p.pcard a, p.display-6.pcard a"
	studioSelector = "span.btn a, span.btn-primary a"
)

var dateRE = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// ParseSearch 把搜索结果页解析为按文档顺序排列的候选列表。
//
// 约束：
// - 子元素缺失 => 对应字段为空串，卡片保留（不跳过）
// - 零卡片 => 返回空切片（不是 nil error）
func ParseSearch(html []byte) ([]domain.SearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, 16)
	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		var r domain.SearchResult

		codeA := card.Find(codeSelector).First()
		r.Code = strings.TrimSpace(codeA.Text())
		if href, ok := codeA.Attr("href"); ok {
			r.Link = strings.TrimSpace(href)
		}

		desc := card.Find(".mt-auto").First()
		r.Title = strings.TrimSpace(desc.Find("a").First().Text())
		if desc.Length() > 0 {
			r.Date = dateRE.FindString(extract.Flatten(desc, " "))
		}

		r.Studio = strings.TrimSpace(card.Find(studioSelector).First().Text())
		results = append(results, r)
	})
	return results, nil
}
