package content

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	slugPattern      = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	slugStripPattern = regexp.MustCompile(`[^\w\s\p{Z}\v-]`)
	whitespaceRun    = regexp.MustCompile(`[\s\p{Z}\v]+`)
	hyphenRun        = regexp.MustCompile(`-{2,}`)
)

// Slugify turns a title into a candidate slug: lower-case, drop everything but
// word characters, whitespace (including Unicode spaces) and hyphens, then join the words with single
// hyphens. The result may still be empty or contain underscores; callers run
// it through Validate.
//
//	Slugify("Hello, World!  Foo") // "hello-world-foo"
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStripPattern.ReplaceAllString(s, "")
	s = strings.TrimFunc(s, unicode.IsSpace)
	if s == "" {
		return ""
	}
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ValidSlug reports whether slug is usable as a public page path.
func ValidSlug(slug string) bool {
	return slug != "" && slugPattern.MatchString(slug)
}
