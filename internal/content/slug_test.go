package content

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "punctuation and double space", title: "Hello, World!  Foo", want: "hello-world-foo"},
		{name: "surrounding whitespace", title: "  Leading and trailing  ", want: "leading-and-trailing"},
		{name: "spaced hyphen", title: "Before - After", want: "before-after"},
		{name: "digits kept", title: "Top 10 Tips", want: "top-10-tips"},
		{name: "tabs and newlines", title: "Multi\tline\ntitle", want: "multi-line-title"},
		{name: "underscore is a word character", title: "snake_case Title", want: "snake_case-title"},
		{name: "no-break space", title: "Hello\u00a0World", want: "hello-world"},
		{name: "em space", title: "Foo\u2003Bar", want: "foo-bar"},
		{name: "vertical tab", title: "Tab\vSep", want: "tab-sep"},
		{name: "only symbols", title: "!!! ???", want: ""},
		{name: "empty", title: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestSlugifyNeverIntroducesStrayHyphens(t *testing.T) {
	allowed := regexp.MustCompile(`^[a-z0-9_-]*$`)
	titles := []string{
		"AI in Healthcare",
		"  - dashed -  start",
		"What's new in 2024?",
		"Data   &   Analytics",
		"--already--hyphenated--",
		"Ünïcödé Tïtle",
		"\t\n",
	}

	for _, title := range titles {
		got := Slugify(title)
		assert.Regexp(t, allowed, got, "title %q", title)
		assert.False(t, strings.HasPrefix(got, "-"), "leading hyphen for %q: %q", title, got)
		assert.False(t, strings.HasSuffix(got, "-"), "trailing hyphen for %q: %q", title, got)
		assert.NotContains(t, got, "--", "doubled hyphen for %q", title)
	}
}

func TestValidSlug(t *testing.T) {
	assert.True(t, ValidSlug("my-page-1"))
	assert.True(t, ValidSlug("about"))
	assert.False(t, ValidSlug("My Page"))
	assert.False(t, ValidSlug(""))
	assert.False(t, ValidSlug("-about"))
	assert.False(t, ValidSlug("about--us"))
	assert.False(t, ValidSlug("snake_case"))
}
