package content

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const (
	ExcerptLength      = 150
	excerptEllipsis    = "..."
	runesPerMinute     = 1000
	minReadTimeMinutes = 3
	DefaultCategory    = "Business"
)

var textPolicy = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
}()

// CategoryRule assigns Name when any keyword occurs in a lower-cased title.
type CategoryRule struct {
	Name     string
	Keywords []string
}

// DefaultCategoryRules are the keyword families used when none are configured.
var DefaultCategoryRules = []CategoryRule{
	{Name: "AI Strategy", Keywords: []string{"ai", "artificial intelligence"}},
	{Name: "Business", Keywords: []string{"business", "strategy"}},
	{Name: "Healthcare", Keywords: []string{"health", "medical"}},
	{Name: "Data Analytics", Keywords: []string{"data", "analytics"}},
}

// PlainText strips markup from stored HTML and collapses whitespace.
func PlainText(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	stripped := html.UnescapeString(textPolicy.Sanitize(content))
	return strings.Join(strings.Fields(stripped), " ")
}

// Excerpt prefers the meta description and otherwise cuts the plain text of
// content to ExcerptLength runes.
func Excerpt(metaDescription, content string) string {
	if strings.TrimSpace(metaDescription) != "" {
		return metaDescription
	}

	text := PlainText(content)
	if utf8.RuneCountInString(text) <= ExcerptLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:ExcerptLength]) + excerptEllipsis
}

// ReadTimeMinutes estimates reading time from the plain-text length.
func ReadTimeMinutes(content string) int {
	n := utf8.RuneCountInString(PlainText(content))
	minutes := (n + runesPerMinute - 1) / runesPerMinute
	if minutes < minReadTimeMinutes {
		return minReadTimeMinutes
	}
	return minutes
}

// ReadTime formats ReadTimeMinutes for display.
func ReadTime(content string) string {
	return fmt.Sprintf("%d min read", ReadTimeMinutes(content))
}

// InferCategories returns every rule whose keywords occur in title, in rule
// order. Titles matching nothing get DefaultCategory.
func InferCategories(title string, rules []CategoryRule) []string {
	if len(rules) == 0 {
		rules = DefaultCategoryRules
	}

	lower := strings.ToLower(title)
	var categories []string
	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			if keyword != "" && strings.Contains(lower, strings.ToLower(keyword)) {
				categories = append(categories, rule.Name)
				break
			}
		}
	}

	if len(categories) == 0 {
		return []string{DefaultCategory}
	}
	return categories
}

// ImageFor returns the featured image or fallback when none is set.
func ImageFor(featuredImage, fallback string) string {
	if img := strings.TrimSpace(featuredImage); img != "" {
		return img
	}
	return fallback
}
