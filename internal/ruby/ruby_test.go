package ruby

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "こんにちは", "こんにちは"},
		{"single annotation", "<ruby>日本<rt>にほん</rt></ruby>は", "日本は"},
		{"multiple annotations", "<ruby>東京<rt>とうきょう</rt></ruby>の<ruby>空<rt>そら</rt></ruby>", "東京の空"},
		{"rp fallback parens", "<ruby>漢字<rp>(</rp><rt>かんじ</rt><rp>)</rp></ruby>", "漢字"},
		{"untrusted tag stripped", "<b>bold</b> text", "bold text"},
		{"unterminated tag kept", "a < b", "a < b"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Strip(tt.in))
		})
	}
}

func TestSegments(t *testing.T) {
	segs := Segments("<ruby>日本<rt>にほん</rt></ruby>は")
	if assert.Len(t, segs, 2) {
		assert.Equal(t, Segment{Text: "日本", Reading: "にほん"}, segs[0])
		assert.Equal(t, Segment{Text: "は"}, segs[1])
	}
}

func TestAnnotate(t *testing.T) {
	got := Annotate("<ruby>日本<rt>にほん</rt></ruby>は")
	assert.Equal(t, "日本(にほん)は", got)
}
