package domain

import "strings"

// SearchResult 对应搜索结果页上的一张卡片。
//
// 约束：子元素缺失 => 对应字段为空串（不丢弃整张卡片）；
// 顺序 = 文档顺序；站点可能列出重复条目，这里不做去重。
type SearchResult struct {
	Code   string `json:"code"`
	Title  string `json:"title"`
	Link   string `json:"link"`
	Date   string `json:"date"` // YYYY-MM-DD
	Studio string `json:"studio"`
}

// PreviewImage 是图集中的一个条目。Preview/Full 至少一个非空才算可用；
// 两者皆空的条目由使用方过滤。
type PreviewImage struct {
	Preview      string
	Full         string
	ThumbnailSrc string
}

// BestURL 返回可下载的图片地址：优先原图，其次预览图；两者皆空返回空串。
func (p PreviewImage) BestURL() string {
	if s := strings.TrimSpace(p.Full); s != "" {
		return s
	}
	return strings.TrimSpace(p.Preview)
}
