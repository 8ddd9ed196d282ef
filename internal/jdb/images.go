package jdb

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/John-Robertt/javdata/internal/domain"
)

// ParseImages 从详情页提取图集条目。
//
// 图集根：先找 div.row.g-3，再放宽到任意 .row.g-3；都没有时退化为全文扫描
// （带 data-image-src 的锚点就是图集条目）。两个 data 属性都缺的条目
// 由使用方过滤，这里照单保留。
func ParseImages(html []byte) ([]domain.PreviewImage, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, err
	}

	scope := doc.Find("div.row.g-3").First()
	if scope.Length() == 0 {
		scope = doc.Find(".row.g-3").First()
	}
	if scope.Length() == 0 {
		scope = doc.Selection
	}

	images := make([]domain.PreviewImage, 0, 16)
	scope.Find("a[data-image-src]").Each(func(_ int, a *goquery.Selection) {
		var im domain.PreviewImage
		im.Preview, _ = a.Attr("data-image-src")
		im.Full, _ = a.Attr("data-image-href")
		im.ThumbnailSrc, _ = a.Find("img").First().Attr("src")
		images = append(images, im)
	})
	return images, nil
}

// ParsePoster 定位海报地址：优先 poster-container 内的图片，
// 其次放宽到 poster class / alt 后缀兜底。找不到返回空串（不报错）。
func ParsePoster(html []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", err
	}

	if src, ok := doc.Find("#poster-container img").First().Attr("src"); ok {
		if src = strings.TrimSpace(src); src != "" {
			return src, nil
		}
	}
	if src, ok := doc.Find(`img.poster, img[alt$="Poster"], img[alt$="poster"]`).First().Attr("src"); ok {
		return strings.TrimSpace(src), nil
	}
	return "", nil
}
