package domain

import (
	"reflect"
	"testing"
)

func TestNormalized_CollapsesWhitespaceOnlyToEmpty(t *testing.T) {
	m := MovieMeta{
		Title:       "  T  ",
		Series:      "   ",
		DVDID:       "\n\t",
		ReleaseDate: " 2023-05-01 ",
	}
	got := m.Normalized()

	if got.Title != "T" {
		t.Fatalf("Title 未去空白：%q", got.Title)
	}
	if got.Series != "" || got.DVDID != "" {
		t.Fatalf("仅空白的字段应折叠为空：series=%q dvd_id=%q", got.Series, got.DVDID)
	}
	if got.ReleaseDate != "2023-05-01" {
		t.Fatalf("ReleaseDate 不一致：%q", got.ReleaseDate)
	}
}

func TestNormalized_ListsSortedDedupedNonNil(t *testing.T) {
	m := MovieMeta{
		Genres:        []string{"z", " a ", "a", "", "  "},
		Actresses:     nil,
		PreviewImages: []string{" https://img/1.jpg ", "", "https://img/2.jpg"},
	}
	got := m.Normalized()

	if want := []string{"a", "z"}; !reflect.DeepEqual(got.Genres, want) {
		t.Fatalf("Genres 应去重排序：%v", got.Genres)
	}
	if got.Actresses == nil || len(got.Actresses) != 0 {
		t.Fatalf("nil 列表应变为空列表（JSON 输出 [] 而不是 null）：%v", got.Actresses)
	}
	if want := []string{"https://img/1.jpg", "https://img/2.jpg"}; !reflect.DeepEqual(got.PreviewImages, want) {
		t.Fatalf("PreviewImages 应保序去空项：%v", got.PreviewImages)
	}
}

func TestNormalized_Idempotent(t *testing.T) {
	m := MovieMeta{
		Title:     " T ",
		Runtime:   "  ",
		Genres:    []string{"b", "a", "a"},
		Actresses: []string{" x "},
	}
	once := m.Normalized()
	twice := once.Normalized()
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("归一化不幂等：\n一次=%+v\n两次=%+v", once, twice)
	}
}

func TestPreviewImage_BestURL(t *testing.T) {
	cases := []struct {
		in   PreviewImage
		want string
	}{
		{PreviewImage{Full: "https://img/full.jpg", Preview: "https://img/p.jpg"}, "https://img/full.jpg"},
		{PreviewImage{Preview: "https://img/p.jpg"}, "https://img/p.jpg"},
		{PreviewImage{ThumbnailSrc: "https://img/t.jpg"}, ""},
		{PreviewImage{Full: "  "}, ""},
	}
	for i, c := range cases {
		if got := c.in.BestURL(); got != c.want {
			t.Fatalf("case %d：期望 %q，实际 %q", i, c.want, got)
		}
	}
}
