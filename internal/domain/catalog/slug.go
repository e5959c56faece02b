package catalog

import (
	"regexp"
	"strings"
)

var (
	nonSlug   = regexp.MustCompile(`[^\w\s-]`)
	spaces    = regexp.MustCompile(`\s+`)
	multiDash = regexp.MustCompile(`--+`)
)

var cyrillic = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "e", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "shch", 'ы': "y", 'э': "e", 'ю': "yu",
	'я': "ya", 'ь': "", 'ъ': "",
}

// MakeSlug builds a URL-safe identifier from a Russian or English title.
// Example: "Властелин колец" -> "vlastelin-kolets"
func MakeSlug(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(strings.ToLower(name)) {
		if lat, ok := cyrillic[r]; ok {
			b.WriteString(lat)
			continue
		}
		b.WriteRune(r)
	}

	slug := nonSlug.ReplaceAllString(b.String(), "")
	slug = spaces.ReplaceAllString(slug, "-")
	return multiDash.ReplaceAllString(slug, "-")
}
