package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Page 把解析后的文档与两份预先扁平化的文本绑定在一起。
//
// 约束：
// - Page 只读：任何提取函数都不得修改底层文档
// - 相同文档 => 相同输出（提取是纯函数，便于用合成 fixture 回归）
type Page struct {
	doc *goquery.Document

	// flat 用 "||" 连接全部文本节点：第二级正则策略的输入。
	flat string
	// plain 用空格连接全部文本节点：第三级代码兜底的输入。
	plain string
}

func NewPage(doc *goquery.Document) *Page {
	return &Page{
		doc:   doc,
		flat:  Flatten(doc.Selection, "||"),
		plain: Flatten(doc.Selection, " "),
	}
}

// Value 按三级策略提取标量字段：标注块 → 扁平文本正则 → 全文代码兜底。
// 前一级拿到非空结果则不再尝试后一级；全部落空返回空串。
func (p *Page) Value(f Field) string {
	if v := p.labeled(f.Label); v != "" {
		return v
	}
	if v := p.pattern(f.Patterns); v != "" {
		return v
	}
	return p.codeFallback(f.Fallback)
}

// Values 提取列表字段：标注块内全部锚点 → 语义选择器 → 正则提取后拆分。
// 输出去空项、去重（大小写敏感）并按字典序排序，保证跨运行稳定。
func (p *Page) Values(f ListField) []string {
	set := map[string]struct{}{}
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			set[s] = struct{}{}
		}
	}

	want := strings.ToLower(f.Label)
	p.doc.Find("p, div, li").Each(func(_ int, s *goquery.Selection) {
		b := s.Find("b, strong").First()
		if b.Length() == 0 || !strings.Contains(strings.ToLower(strings.TrimSpace(b.Text())), want) {
			return
		}
		s.Find("a").Each(func(_ int, a *goquery.Selection) { add(a.Text()) })
	})

	if len(set) == 0 && f.Selector != "" {
		p.doc.Find(f.Selector).Each(func(_ int, a *goquery.Selection) { add(a.Text()) })
	}
	if len(set) == 0 && len(f.HrefHints) > 0 {
		p.doc.Find("a").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			for _, hint := range f.HrefHints {
				if strings.Contains(href, hint) {
					add(a.Text())
					break
				}
			}
		})
	}
	if len(set) == 0 {
		for _, tok := range SplitList(p.pattern(f.Patterns)) {
			add(tok)
		}
	}

	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// labeled 是第一级策略：按文档顺序扫描块级元素，找到加粗标签文本
// 包含 label 的块后，优先取块内第一个非空锚点文本；否则沿标签节点的
// 兄弟节点向后找第一段非空文本（剥掉开头的冒号/空白）。
// 当前块两种取法都落空时继续扫描后续块。
func (p *Page) labeled(label string) string {
	want := strings.ToLower(label)
	out := ""
	p.doc.Find("p, div, li").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		b := s.Find("b, strong").First()
		if b.Length() == 0 || !strings.Contains(strings.ToLower(strings.TrimSpace(b.Text())), want) {
			return true
		}
		if a := s.Find("a").First(); a.Length() > 0 {
			if t := strings.TrimSpace(a.Text()); t != "" {
				out = t
				return false
			}
		}
		out = textAfter(b)
		return out == ""
	})
	return out
}

var spaceRunRE = regexp.MustCompile(`\s{2,}`)

// pattern 是第二级策略：在 "||" 扁平文本上按优先级尝试各同义词正则，
// 第一个命中即返回（即使捕获值为空——与原站行为一致，空值交由上层归一）。
// 正则形态：<label> [:|-|–]? (值) 直到下一个 "||" 或行末；大小写不敏感。
func (p *Page) pattern(patterns []string) string {
	for _, pat := range patterns {
		re := regexp.MustCompile(`(?is)` + pat + `\s*[:\-–]?\s*(.*?)\s*(?:\|\||$)`)
		m := re.FindStringSubmatch(p.flat)
		if m == nil {
			continue
		}
		return spaceRunRE.ReplaceAllString(strings.TrimSpace(m[1]), " ")
	}
	return ""
}

var (
	dvdIDRE     = regexp.MustCompile(`\b([A-Z]{2,}-?[0-9]{2,}-?[0-9]{1,})\b`)
	contentIDRE = regexp.MustCompile(`(?i)\b([a-z]{2,}[0-9]{4,})\b`)
)

// codeFallback 是第三级策略：前两级全部落空时，在空格扁平的全文里
// 按形态匹配番号/内容 ID。仅对 ID 类字段启用。
func (p *Page) codeFallback(kind CodeKind) string {
	switch kind {
	case CodeDVDID:
		if m := dvdIDRE.FindStringSubmatch(p.plain); m != nil {
			return m[1]
		}
	case CodeContentID:
		if m := contentIDRE.FindStringSubmatch(p.plain); m != nil {
			return m[1]
		}
	}
	return ""
}

// Flatten 把选区内全部文本节点去空白后用 sep 连接（跳过 script/style）。
func Flatten(sel *goquery.Selection, sep string) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, root := range sel.Nodes {
		walk(root)
	}
	return strings.Join(parts, sep)
}

var listSepRE = regexp.MustCompile(`[,/|•;]+`)

// SplitList 把聚合串按常见分隔符拆成 token（去空白、丢弃空项）。
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := listSepRE.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// textAfter 沿 label 节点的兄弟节点向后找第一段非空文本。
// 文本节点剥掉开头/结尾的冒号与空白；元素节点取其全部后代文本。
func textAfter(label *goquery.Selection) string {
	if len(label.Nodes) == 0 {
		return ""
	}
	for n := label.Nodes[0].NextSibling; n != nil; n = n.NextSibling {
		switch n.Type {
		case html.TextNode:
			if v := strings.Trim(n.Data, " :\n\t"); v != "" {
				return v
			}
		case html.ElementNode:
			if v := strings.TrimSpace(nodeText(n)); v != "" {
				return v
			}
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
