package crawl

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"

	"sgfview/internal/domain"
)

// Placeholders for title parts the record page does not give away
const (
	UnknownEvent  = "未知赛事"
	UnknownBlack  = "未知黑"
	UnknownWhite  = "未知白"
	UnknownResult = "未知结果"
)

// commentaryTag marks pages with engine commentary; it is not part of the title
const commentaryTag = "绝艺讲解"

// maxFilenameRunes bounds generated file names, extension included
const maxFilenameRunes = 200

var (
	idRE     = regexp.MustCompile(`/qipu/newlist/id/(\d+)\.html`)
	recordRE = regexp.MustCompile(`(?s)\(\s*;.*?\)\s*</div>`)
	divRE    = regexp.MustCompile(`(?s)</?div.*?>`)
	// A执黑中盘胜B, A执白5.5目胜B, A执黑胜B
	titleRE  = regexp.MustCompile(`(.+?)执(黑|白)(中盘|[\d.]+目)?胜(.+)`)
	unsafeRE = regexp.MustCompile(`[<>:"/\\|?*]`)
	spaceRE  = regexp.MustCompile(`\s+`)
)

// ExtractIDs returns the distinct record ids linked from a list page,
// largest first
func ExtractIDs(page string) []string {
	seen := map[string]bool{}
	var ids []string
	for _, m := range idRE.FindAllStringSubmatch(page, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			ids = append(ids, m[1])
		}
	}
	slices.Sort(ids)
	slices.Reverse(ids)
	return ids
}

// ExtractRecord pulls the embedded record out of a record page
func ExtractRecord(page string) (string, bool) {
	m := recordRE.FindString(page)
	if m == "" {
		return "", false
	}
	return strings.TrimSpace(divRE.ReplaceAllString(m, "")), true
}

// heading returns the text of the first <h4>, inner tags dropped and
// entities decoded
func heading(page string) (string, bool) {
	z := html.NewTokenizer(strings.NewReader(page))
	var b strings.Builder
	inside := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String(), inside
		case html.StartTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) == atom.H4 {
				inside = true
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if inside && atom.Lookup(name) == atom.H4 {
				return b.String(), true
			}
		case html.TextToken:
			if inside {
				b.Write(z.Text())
			}
		}
	}
}

// ParseTitle derives the filename parts from a record page heading such
// as "新人王战 柯洁执黑中盘胜申真谞". The date is the first eight digits of id.
func ParseTitle(page, id string) domain.GameTitle {
	t := domain.GameTitle{
		Event:  UnknownEvent,
		Black:  UnknownBlack,
		White:  UnknownWhite,
		Result: UnknownResult,
		Date:   id[:min(8, len(id))],
	}

	text, ok := heading(page)
	if !ok {
		return t
	}
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = strings.ReplaceAll(text, commentaryTag, "")
	text = strings.TrimSpace(spaceRE.ReplaceAllString(text, " "))

	event, rest, found := strings.Cut(text, " ")
	if !found {
		return t
	}
	t.Event = event

	m := titleRE.FindStringSubmatch(strings.TrimSpace(rest))
	if m == nil {
		return t
	}
	playerA, color, win, playerB := strings.TrimSpace(m[1]), m[2], m[3], strings.TrimSpace(m[4])
	if color == "黑" {
		t.Black, t.White = playerA, playerB
	} else {
		t.Black, t.White = playerB, playerA
	}
	switch win {
	case "":
		t.Result = color + "胜"
	case "中盘":
		t.Result = color + "中盘胜"
	default:
		t.Result = color + win + "胜"
	}
	return t
}

// Filename builds the record file name for t
func Filename(t domain.GameTitle, ext string) string {
	stem := strings.Join([]string{t.Event, t.Black, t.White, t.Result, t.Date}, "_")
	stem = SafeName(stem)

	// Keep the extension when cutting long names
	limit := maxFilenameRunes - utf8.RuneCountInString(ext)
	if utf8.RuneCountInString(stem) > limit {
		stem = strings.TrimRight(string([]rune(stem)[:limit]), " _")
	}
	return stem + ext
}

// SafeName replaces characters file systems reject, collapses whitespace
// and normalises to NFC so the same title always maps to the same name
func SafeName(name string) string {
	name = unsafeRE.ReplaceAllString(name, "_")
	name = spaceRE.ReplaceAllString(name, " ")
	name = strings.Trim(name, "_ ")
	return norm.NFC.String(name)
}
