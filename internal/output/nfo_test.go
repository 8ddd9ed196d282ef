package output

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/John-Robertt/javdata/internal/domain"
)

type movieOut struct {
	Title         string `xml:"title"`
	OriginalTitle string `xml:"originaltitle"`
	SortTitle     string `xml:"sorttitle"`
	LocalTitle    string `xml:"localtitle"`
	Year          string `xml:"year"`
	Premiered     string `xml:"premiered"`
	Runtime       string `xml:"runtime"`
	Studio        string `xml:"studio"`
	Director      string `xml:"director"`
	Genres        []string `xml:"genre"`
	Actors        []struct {
		Name string `xml:"name"`
		Role string `xml:"role"`
	} `xml:"actor"`
	UniqueIDs []struct {
		Type  string `xml:"type,attr"`
		Value string `xml:",chardata"`
	} `xml:"uniqueid"`
	Thumb  string `xml:"thumb"`
	Fanart struct {
		Thumbs []string `xml:"thumb"`
	} `xml:"fanart"`
}

func sampleMeta() domain.MovieMeta {
	return domain.MovieMeta{
		Title:       "Sample Movie",
		DVDID:       "ABC-123",
		ContentID:   "abc00123",
		ReleaseDate: "2023-05-01",
		Runtime:     "120 min",
		Studio:      "S1 Studio",
		Genres:      []string{"Drama"},
		Actresses:   []string{"Jane Doe"},
	}
}

func TestNFOEncode_FullRecord(t *testing.T) {
	b, err := NFO{}.Encode(sampleMeta(), Assets{
		PosterFile:   "poster.jpg",
		PreviewFiles: []string{"a.jpg", "b.jpg"},
	})
	if err != nil {
		t.Fatalf("Encode 失败：%v", err)
	}

	var out movieOut
	if err := xml.Unmarshal(b, &out); err != nil {
		t.Fatalf("xml.Unmarshal 失败：%v\n%s", err, b)
	}

	if out.Title != "Sample Movie" || out.OriginalTitle != "Sample Movie" ||
		out.SortTitle != "Sample Movie" || out.LocalTitle != "Sample Movie" {
		t.Fatalf("四个标题元素应写同一标题：%+v", out)
	}
	if out.Year != "2023" {
		t.Fatalf("year 应取发行日期前 4 位：%q", out.Year)
	}
	if out.Premiered != "2023-05-01" {
		t.Fatalf("premiered 不一致：%q", out.Premiered)
	}
	if out.Runtime != "120" {
		t.Fatalf("runtime 应缩减为纯整数串：%q", out.Runtime)
	}
	if len(out.Genres) != 1 || out.Genres[0] != "Drama" {
		t.Fatalf("genre 不一致：%v", out.Genres)
	}
	if len(out.Actors) != 1 || out.Actors[0].Name != "Jane Doe" || out.Actors[0].Role != "" {
		t.Fatalf("actor 应带空 role 占位：%v", out.Actors)
	}
	if len(out.UniqueIDs) != 2 ||
		out.UniqueIDs[0].Type != "dvdid" || out.UniqueIDs[0].Value != "ABC-123" ||
		out.UniqueIDs[1].Type != "contentid" || out.UniqueIDs[1].Value != "abc00123" {
		t.Fatalf("uniqueid 不一致：%v", out.UniqueIDs)
	}
	if out.Thumb != "preview/poster.jpg" {
		t.Fatalf("thumb 应是相对路径：%q", out.Thumb)
	}
	if len(out.Fanart.Thumbs) != 2 || out.Fanart.Thumbs[0] != "preview/a.jpg" {
		t.Fatalf("fanart 路径不一致：%v", out.Fanart.Thumbs)
	}

	s := string(b)
	if !strings.HasPrefix(s, `<?xml version="1.0" encoding="UTF-8" standalone="yes" ?>`) {
		t.Fatalf("缺少 XML 头：%s", s[:60])
	}
	// 三个占位元素即使为空也必须存在。
	for _, el := range []string{"<plot></plot>", "<review></review>", "<biography></biography>"} {
		if !strings.Contains(s, el) {
			t.Fatalf("缺少占位元素 %s", el)
		}
	}
}

func TestNFOEncode_SparseTreeOmitsEmpty(t *testing.T) {
	b, err := NFO{}.Encode(domain.MovieMeta{Title: "T", Runtime: "unknown"}, Assets{})
	if err != nil {
		t.Fatalf("Encode 失败：%v", err)
	}
	s := string(b)

	// releaseDate 缺失 => year/premiered 整体省略；runtime 无数字 => 省略。
	for _, el := range []string{"<year>", "<premiered>", "<runtime>", "<uniqueid", "<genre>", "<actor>", "<thumb>", "<fanart>", "<studio>", "<director>", "<set>"} {
		if strings.Contains(s, el) {
			t.Fatalf("空值元素应整体省略，但出现了 %s：\n%s", el, s)
		}
	}
}

func TestNFOEncode_Deterministic(t *testing.T) {
	meta := sampleMeta()
	assets := Assets{PreviewFiles: []string{"a.jpg"}}
	b1, err := NFO{}.Encode(meta, assets)
	if err != nil {
		t.Fatalf("Encode 失败：%v", err)
	}
	b2, err := NFO{}.Encode(meta, assets)
	if err != nil {
		t.Fatalf("Encode 失败：%v", err)
	}
	if !bytes.Equal(b1, b2) {
		t.Fatalf("相同输入应产出字节级相同的文档")
	}
}

func TestYearOf(t *testing.T) {
	cases := []struct{ in, want string }{
		{"2023-05-01", "2023"},
		{"2023", "2023"},
		{"", ""},
		{"May 2023", ""},
		{"20x3-01-01", ""},
	}
	for i, c := range cases {
		if got := yearOf(c.in); got != c.want {
			t.Fatalf("case %d：期望 %q，实际 %q", i, c.want, got)
		}
	}
}

func TestFirstInt(t *testing.T) {
	cases := []struct{ in, want string }{
		{"120 min", "120"},
		{"approx. 95min", "95"},
		{"unknown", ""},
		{"", ""},
	}
	for i, c := range cases {
		if got := firstInt(c.in); got != c.want {
			t.Fatalf("case %d：期望 %q，实际 %q", i, c.want, got)
		}
	}
}
