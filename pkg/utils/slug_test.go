package utils

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Fender Stratocaster", "fender-stratocaster"},
		{"Gibson Les Paul '59", "gibson-les-paul-59"},
		{"  Ibanez   RG550  ", "ibanez-rg550"},
		{"Señor Martínez Clásica", "senor-martinez-clasica"},
		{"PRS SE Custom 24 (2021)", "prs-se-custom-24-2021"},
		{"!!!", ""},
		{"", ""},
	}

	for _, c := range cases {
		if got := Slugify(c.title); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.title, got, c.want)
		}
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	once := Slugify("Fender Telecaster Deluxe")
	twice := Slugify(once)
	if once != twice {
		t.Errorf("slug 应该幂等: %q -> %q", once, twice)
	}
}

func TestSlugify_Deterministic(t *testing.T) {
	a := Slugify("Gibson SG Standard")
	b := Slugify("Gibson SG Standard")
	if a != b {
		t.Errorf("同一标题应生成同一 slug: %q vs %q", a, b)
	}
}

func TestSlugOrTimestamp(t *testing.T) {
	if got := SlugOrTimestamp("Fender Jazzmaster"); got != "fender-jazzmaster" {
		t.Errorf("SlugOrTimestamp() = %q", got)
	}

	// 标题清洗后为空时退化为时间戳
	got := SlugOrTimestamp("???")
	if !strings.HasPrefix(got, "item-") {
		t.Errorf("空标题应退化为 item-<时间戳>, got %q", got)
	}
}
