package output

import (
	"encoding/xml"
	"path"
	"strings"

	"github.com/John-Robertt/javdata/internal/domain"
)

// movie 的字段顺序就是 NFO 的子元素顺序（固定序列，保证确定性输出）。
// 缺失的标量整体省略（稀疏树）；plot/review/biography 刻意保留为空元素，
// 作为下游媒体库工具的占位符。
type movie struct {
	XMLName xml.Name `xml:"movie"`

	Title         string `xml:"title"`
	OriginalTitle string `xml:"originaltitle"`
	SortTitle     string `xml:"sorttitle"`
	LocalTitle    string `xml:"localtitle"`

	Year      string `xml:"year,omitempty"`
	Premiered string `xml:"premiered,omitempty"`
	Runtime   string `xml:"runtime,omitempty"`

	Plot      string `xml:"plot"`
	Review    string `xml:"review"`
	Biography string `xml:"biography"`

	Set      string `xml:"set,omitempty"`
	Studio   string `xml:"studio,omitempty"`
	Director string `xml:"director,omitempty"`

	Genres []string `xml:"genre,omitempty"`
	Actors []actor  `xml:"actor,omitempty"`

	UniqueIDs []uniqueID `xml:"uniqueid,omitempty"`

	Thumb  string  `xml:"thumb,omitempty"`
	Fanart *fanart `xml:"fanart,omitempty"`
}

type actor struct {
	Name string `xml:"name"`
	// Role 始终输出（空元素）：媒体库约定 actor 带 role 占位。
	Role string `xml:"role"`
}

type uniqueID struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type fanart struct {
	Thumbs []string `xml:"thumb"`
}

// NFO 输出媒体库 sidecar（Kodi/Jellyfin/Emby 可读取的 movie XML）。
//
// 规则：
// - title/originaltitle/sorttitle/localtitle 写同一个标题（不做本地化）
// - year 仅当发行日期以 4 位数字开头时取前 4 位
// - runtime 写纯整数串（取原文里第一段数字；没有数字则省略）
// - uniqueid 仅在对应 ID 存在时输出，type 区分 dvdid/contentid
// - thumb/fanart 仅在下载阶段已落盘时输出，路径相对作品目录（preview/<文件名>）
type NFO struct{}

func (NFO) Ext() string { return ".nfo" }

func (NFO) Encode(meta domain.MovieMeta, assets Assets) ([]byte, error) {
	meta = meta.Normalized()

	m := movie{
		Title:         meta.Title,
		OriginalTitle: meta.Title,
		SortTitle:     meta.Title,
		LocalTitle:    meta.Title,

		Year:      yearOf(meta.ReleaseDate),
		Premiered: meta.ReleaseDate,
		Runtime:   firstInt(meta.Runtime),

		Set:      meta.Series,
		Studio:   meta.Studio,
		Director: meta.Director,

		Genres: meta.Genres,
	}

	for _, a := range meta.Actresses {
		m.Actors = append(m.Actors, actor{Name: a})
	}
	if meta.DVDID != "" {
		m.UniqueIDs = append(m.UniqueIDs, uniqueID{Type: "dvdid", Value: meta.DVDID})
	}
	if meta.ContentID != "" {
		m.UniqueIDs = append(m.UniqueIDs, uniqueID{Type: "contentid", Value: meta.ContentID})
	}

	if assets.PosterFile != "" {
		m.Thumb = path.Join("preview", assets.PosterFile)
	}
	if len(assets.PreviewFiles) > 0 {
		f := &fanart{Thumbs: make([]string, 0, len(assets.PreviewFiles))}
		for _, name := range assets.PreviewFiles {
			f.Thumbs = append(f.Thumbs, path.Join("preview", name))
		}
		m.Fanart = f
	}

	b, err := xml.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	const header = `<?xml version="1.0" encoding="UTF-8" standalone="yes" ?>` + "\n"
	out := append([]byte(header), b...)
	return append(out, '\n'), nil
}

// yearOf 仅当 release 以 4 位数字开头时取前 4 位（不做完整日期校验）。
func yearOf(release string) string {
	if len(release) < 4 {
		return ""
	}
	for _, r := range release[:4] {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return release[:4]
}

// firstInt 取字符串里第一段连续数字；没有数字返回空串。
func firstInt(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			break
		}
	}
	return b.String()
}
