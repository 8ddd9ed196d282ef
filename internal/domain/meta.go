package domain

import (
	"sort"
	"strings"
)

// MovieMeta 是从详情页聚合出的规范化元数据（固定 schema）。
//
// 约束：
// - 字段缺失一律用空串/空列表表示；Normalized 之后不允许出现仅空白的值
// - Genres/Actresses 去重（大小写敏感）并按字典序排列，保证跨运行稳定
// - 聚合完成后不再修改（投影阶段只读）
type MovieMeta struct {
	Link string `json:"link,omitempty"`

	Title       string `json:"title,omitempty"`
	Series      string `json:"jav_series,omitempty"`
	DVDID       string `json:"dvd_id,omitempty"`
	ContentID   string `json:"content_id,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"` // ISO date, e.g. "2023-05-01"
	Runtime     string `json:"runtime,omitempty"`      // 原样文本，如 "120 min"；数值化在 NFO 投影时做
	Studio      string `json:"studio,omitempty"`
	Director    string `json:"director,omitempty"`

	Genres    []string `json:"genres"`
	Actresses []string `json:"actresses"`

	PosterURL     string   `json:"poster_url,omitempty"`
	PreviewImages []string `json:"preview_images"`
}

// Normalized 返回规范化后的副本：标量去空白（仅空白折叠为空），
// 列表去空项、去重、排序。幂等：对结果再调用一次不产生变化。
func (m MovieMeta) Normalized() MovieMeta {
	m.Link = strings.TrimSpace(m.Link)
	m.Title = strings.TrimSpace(m.Title)
	m.Series = strings.TrimSpace(m.Series)
	m.DVDID = strings.TrimSpace(m.DVDID)
	m.ContentID = strings.TrimSpace(m.ContentID)
	m.ReleaseDate = strings.TrimSpace(m.ReleaseDate)
	m.Runtime = strings.TrimSpace(m.Runtime)
	m.Studio = strings.TrimSpace(m.Studio)
	m.Director = strings.TrimSpace(m.Director)
	m.PosterURL = strings.TrimSpace(m.PosterURL)

	m.Genres = normSortedSet(m.Genres)
	m.Actresses = normSortedSet(m.Actresses)
	m.PreviewImages = normSeq(m.PreviewImages)
	return m
}

// normSortedSet 去空白、去空项、去重（大小写敏感），并按字典序排序。
func normSortedSet(in []string) []string {
	set := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		set[s] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// normSeq 去空白、去空项，但保留输入顺序（用于图集 URL，不做去重/排序）。
func normSeq(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
