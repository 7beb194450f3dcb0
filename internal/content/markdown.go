package content

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var markdownImagePattern = regexp.MustCompile(`!\[[^\]]*]\((<[^>]+>|[^)\s]+)([^)]*)\)`)

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
	goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML(), html.WithUnsafe()),
)

// MarkdownToHTML converts an imported markdown document into the HTML the
// editor stores.
func MarkdownToHTML(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert(src, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// MarkdownTitle returns the text of the first level-one heading, if any.
func MarkdownTitle(src []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(src))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}

// MarkdownLeadImage returns the URL of the first image in src, or "".
func MarkdownLeadImage(src []byte) string {
	groups := markdownImagePattern.FindSubmatch(src)
	if len(groups) < 2 {
		return ""
	}
	return strings.TrimSuffix(strings.TrimPrefix(string(groups[1]), "<"), ">")
}
