// Package ruby handles the inline ruby-annotation markup the backend uses
// for Japanese readings (<ruby>base<rt>reading</rt></ruby>).
package ruby

import "strings"

// Segment is a run of text with an optional attached reading.
type Segment struct {
	Text    string // base text
	Reading string // furigana reading, empty for plain runs
}

// Segments parses a furigana-annotated string into ordered segments.
// Only ruby/rt/rp markup is trusted; any other tag is dropped and its
// text content kept in place.
func Segments(s string) []Segment {
	var (
		segs    []Segment
		plain   strings.Builder
		base    strings.Builder
		reading strings.Builder
	)

	flushPlain := func() {
		if plain.Len() > 0 {
			segs = append(segs, Segment{Text: plain.String()})
			plain.Reset()
		}
	}

	// inRuby: inside <ruby>…</ruby>; inRT: inside <rt>…</rt>; inRP skips
	// fallback parentheses meant for renderers without ruby support.
	var inRuby, inRT, inRP bool

	i := 0
	for i < len(s) {
		if s[i] != '<' {
			r := s[i]
			switch {
			case inRP:
				// discard
			case inRT:
				reading.WriteByte(r)
			case inRuby:
				base.WriteByte(r)
			default:
				plain.WriteByte(r)
			}
			i++
			continue
		}

		end := strings.IndexByte(s[i:], '>')
		if end < 0 {
			// unterminated tag, keep the rest verbatim
			plain.WriteString(s[i:])
			break
		}
		tag := strings.ToLower(strings.TrimSpace(s[i+1 : i+end]))
		i += end + 1

		switch {
		case tag == "ruby":
			flushPlain()
			inRuby = true
		case tag == "/ruby":
			if base.Len() > 0 || reading.Len() > 0 {
				segs = append(segs, Segment{Text: base.String(), Reading: reading.String()})
			}
			base.Reset()
			reading.Reset()
			inRuby, inRT, inRP = false, false, false
		case tag == "rt":
			inRT = true
		case tag == "/rt":
			inRT = false
		case tag == "rp":
			inRP = true
		case tag == "/rp":
			inRP = false
		default:
			// unknown tag: strip it, keep surrounding text
		}
	}

	// unterminated ruby run
	if base.Len() > 0 || reading.Len() > 0 {
		segs = append(segs, Segment{Text: base.String(), Reading: reading.String()})
	}
	flushPlain()

	return segs
}

// Strip removes all markup and returns only the spoken-form base text.
// Readings are dropped so speech synthesis does not read them twice.
func Strip(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	var b strings.Builder
	for _, seg := range Segments(s) {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// Annotate renders segments as "base(reading)" plain text for terminals
// that cannot stack furigana above the base line.
func Annotate(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	var b strings.Builder
	for _, seg := range Segments(s) {
		b.WriteString(seg.Text)
		if seg.Reading != "" {
			b.WriteString("(")
			b.WriteString(seg.Reading)
			b.WriteString(")")
		}
	}
	return b.String()
}
