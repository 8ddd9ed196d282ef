package extract

// 本文件把“站点如何标注字段”集中成一张配置表：
// 引擎（page.go）只认 Field/ListField，不写死任何站点 markup，
// 换站点或站点改版时只需要改这张表（并用合成 fixture 回归）。

// CodeKind 标记 ID 类字段的全文代码兜底（第三级策略）。
type CodeKind int

const (
	CodeNone CodeKind = iota
	// CodeDVDID 匹配大写字母-数字的番号形态（如 ABC-123）。
	CodeDVDID
	// CodeContentID 匹配小写字母+数字的内容 ID 形态（如 abc00123）。
	CodeContentID
)

// Field 描述一个标量字段的提取配置。
type Field struct {
	// Label 是第一级策略的加粗标签文本（大小写不敏感、包含匹配）。
	Label string
	// Patterns 是第二级策略的正则同义词，按优先级排列。
	Patterns []string
	// Fallback 是第三级策略；仅 DVD ID / Content ID 启用。
	Fallback CodeKind
}

// ListField 在 Field 基础上补充列表类字段的通用兜底：
// 语义类 CSS 选择器（标签/分类链接），或按 href 路径段识别的人物链接。
type ListField struct {
	Field
	Selector  string
	HrefHints []string
}

var (
	Series      = Field{Label: "JAV Series", Patterns: []string{`JAV Series`, `Series`}}
	DVDID       = Field{Label: "DVD ID", Patterns: []string{`DVD ID`, `DVD`, `DVD-ID`}, Fallback: CodeDVDID}
	ContentID   = Field{Label: "Content ID", Patterns: []string{`Content ID`, `Content-ID`, `Content`}, Fallback: CodeContentID}
	ReleaseDate = Field{Label: "Release Date", Patterns: []string{`Release Date`, `Released`, `Date`}}
	Runtime     = Field{Label: "Runtime", Patterns: []string{`Runtime`, `Running Time`, `Length`}}
	Studio      = Field{Label: "Studio", Patterns: []string{`Studio`, `Label`}}
	Director    = Field{Label: "Director", Patterns: []string{`Director`, `Directed by`}}

	Genres = ListField{
		Field:    Field{Label: "Genre(s)", Patterns: []string{`Genre\(s\)`, `Genres`, `Genre`}},
		Selector: `a[rel="tag"], .genres a, .post-categories a, .tags a`,
	}
	Actresses = ListField{
		Field:     Field{Label: "Idol(s)/Actress(es)", Patterns: []string{`Idol\(s\)/Actress\(es\)`, `Actress\(es\)`, `Idol\(s\)`}},
		HrefHints: []string{"/actresses/", "/actors/", "/stars/", "/people/"},
	}
)
