package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	multiHyphen = regexp.MustCompile(`-+`)
)

// GenerateSlug builds a URL slug that keeps Arabic letters.
//
// "مطبخ ألوميتال حديث" → "مطبخ-ألوميتال-حديث"
// "Modern Kitchen 2024!" → "modern-kitchen-2024"
func GenerateSlug(input string) string {
	var b strings.Builder
	b.Grow(len(input))

	for _, r := range StripArabicDiacritics(input) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r) || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}

	slug := multiHyphen.ReplaceAllString(b.String(), "-")
	return strings.Trim(slug, "-")
}

// StripArabicDiacritics removes tashkeel marks and tatweel so
// "مَطْبَخ" and "مطبخ" produce the same slug.
func StripArabicDiacritics(input string) string {
	return strings.Map(func(r rune) rune {
		// U+064B..U+0652 harakat, U+0670 superscript alef, U+0640 tatweel
		if (r >= 0x064B && r <= 0x0652) || r == 0x0670 || r == 0x0640 {
			return -1
		}
		return r
	}, input)
}
