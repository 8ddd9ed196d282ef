package jdb

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/John-Robertt/javdata/internal/domain"
	"github.com/John-Robertt/javdata/internal/extract"
)

// ParseMeta 把详情页聚合为 MovieMeta（海报与图集由 images.go 单独提取）。
//
// 标题回退链：主标题 h1 → og:title → fallbackTitle（搜索选中时记下的标题）。
// 各标量/列表字段走 extract 的级联策略；聚合后做一次幂等归一
// （仅空白的值折叠为空，列表去重排序）。
func ParseMeta(html []byte, link, fallbackTitle string) (domain.MovieMeta, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return domain.MovieMeta{}, err
	}
	page := extract.NewPage(doc)

	title := strings.TrimSpace(doc.Find("h1.entry-title, h1.post-title, h1").First().Text())
	if title == "" {
		title, _ = doc.Find(`meta[property="og:title"]`).First().Attr("content")
	}
	if strings.TrimSpace(title) == "" {
		title = fallbackTitle
	}

	m := domain.MovieMeta{
		Link:        link,
		Title:       title,
		Series:      page.Value(extract.Series),
		DVDID:       page.Value(extract.DVDID),
		ContentID:   page.Value(extract.ContentID),
		ReleaseDate: page.Value(extract.ReleaseDate),
		Runtime:     page.Value(extract.Runtime),
		Studio:      page.Value(extract.Studio),
		Director:    page.Value(extract.Director),
		Genres:      page.Values(extract.Genres),
		Actresses:   page.Values(extract.Actresses),
	}
	return m.Normalized(), nil
}
