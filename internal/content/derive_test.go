package content

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfoliocms/internal/db"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "<p>Lorem ipsum</p>", want: "Lorem ipsum"},
		{in: "<h1>Title</h1><p>First &amp; second</p>", want: "Title First & second"},
		{in: "<p>line<br/>break</p>", want: "line break"},
		{in: "plain text", want: "plain text"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PlainText(tt.in), "input %q", tt.in)
	}
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "Lorem ipsum", Excerpt("", "<p>Lorem ipsum</p>"))
	assert.Equal(t, "Custom desc", Excerpt("Custom desc", "<p>Lorem ipsum</p>"))
	assert.Equal(t, "Lorem ipsum", Excerpt("   ", "<p>Lorem ipsum</p>"), "blank meta description is ignored")

	long := "<p>" + strings.Repeat("a", 200) + "</p>"
	got := Excerpt("", long)
	assert.Equal(t, strings.Repeat("a", ExcerptLength)+"...", got)

	exact := "<p>" + strings.Repeat("b", ExcerptLength) + "</p>"
	assert.Equal(t, strings.Repeat("b", ExcerptLength), Excerpt("", exact), "no ellipsis at the limit")
}

func TestReadTime(t *testing.T) {
	assert.Equal(t, "3 min read", ReadTime(""))
	assert.Equal(t, "3 min read", ReadTime("<p>short</p>"))
	assert.Equal(t, 4, ReadTimeMinutes(strings.Repeat("x", 3001)))
	assert.Equal(t, 5, ReadTimeMinutes("<p>"+strings.Repeat("x", 5000)+"</p>"))

	short := ReadTimeMinutes(strings.Repeat("word ", 1000))
	long := ReadTimeMinutes(strings.Repeat("word ", 4000))
	assert.Greater(t, long, short)
}

func TestInferCategories(t *testing.T) {
	tests := []struct {
		title string
		want  []string
	}{
		{title: "AI in Healthcare", want: []string{"AI Strategy", "Healthcare"}},
		{title: "Hello World", want: []string{"Business"}},
		{title: "Data-driven Business Strategy", want: []string{"Business", "Data Analytics"}},
		{title: "Artificial Intelligence for Medical Analytics", want: []string{"AI Strategy", "Healthcare", "Data Analytics"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, InferCategories(tt.title, nil)); diff != "" {
			t.Errorf("InferCategories(%q) mismatch (-want +got):\n%s", tt.title, diff)
		}
	}
}

func TestInferCategoriesCustomRules(t *testing.T) {
	rules := []CategoryRule{{Name: "Cloud", Keywords: []string{"AWS", "cloud"}}}
	assert.Equal(t, []string{"Cloud"}, InferCategories("Moving to aws", rules))
	assert.Equal(t, []string{DefaultCategory}, InferCategories("Leadership notes", rules))
}

func TestImageFor(t *testing.T) {
	assert.Equal(t, "/img/hero.png", ImageFor(" /img/hero.png ", "/default.png"))
	assert.Equal(t, "/default.png", ImageFor("", "/default.png"))
}

func feedPages() []db.Page {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return []db.Page{
		{Slug: "ai-roadmap", Title: "AI Roadmap", Content: "<p>Newest</p>", CreatedAt: base},
		{Slug: "hospital-data", Title: "Hospital Data", Content: "<p>Middle</p>", FeaturedImage: "/uploads/h.png", CreatedAt: base.Add(-24 * time.Hour)},
		{Slug: "team-notes", Title: "Team Notes", MetaDescription: "Notes", CreatedAt: base.Add(-48 * time.Hour)},
	}
}

func TestBuildFeedWithoutFilter(t *testing.T) {
	feed := BuildFeed(feedPages(), FeedOptions{DefaultImage: "/default.png"})

	require.NotNil(t, feed.Featured)
	assert.Equal(t, "ai-roadmap", feed.Featured.Slug)
	assert.True(t, feed.Featured.Featured)
	assert.Equal(t, "March 10, 2025", feed.Featured.Date)
	assert.Equal(t, "/default.png", feed.Featured.Image)

	slugs := make([]string, 0, len(feed.Posts))
	for _, card := range feed.Posts {
		assert.False(t, card.Featured)
		slugs = append(slugs, card.Slug)
	}
	assert.Equal(t, []string{"hospital-data", "team-notes"}, slugs)
	assert.Equal(t, "/uploads/h.png", feed.Posts[0].Image)
	assert.Equal(t, "Notes", feed.Posts[1].Excerpt)
	assert.Len(t, feed.Recent, 3)

	want := []CategoryCount{
		{Name: "AI Strategy", Count: 1},
		{Name: "Business", Count: 1},
		{Name: "Healthcare", Count: 0},
		{Name: "Data Analytics", Count: 1},
	}
	if diff := cmp.Diff(want, feed.Categories); diff != "" {
		t.Errorf("category counts mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildFeedWithCategoryFilter(t *testing.T) {
	feed := BuildFeed(feedPages(), FeedOptions{Category: "AI Strategy"})

	assert.Nil(t, feed.Featured, "hero is hidden while filtering")
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, "ai-roadmap", feed.Posts[0].Slug)
	assert.True(t, feed.Posts[0].Featured, "featured flag survives filtering")
}

func TestBuildFeedEmpty(t *testing.T) {
	feed := BuildFeed(nil, FeedOptions{})
	assert.Nil(t, feed.Featured)
	assert.Empty(t, feed.Posts)
	assert.Empty(t, feed.Recent)
}

func TestMarkdownToHTML(t *testing.T) {
	src := []byte("# Launch Notes\n\nHello **world**")
	out, err := MarkdownToHTML(src)
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Launch Notes</h1>")
	assert.Contains(t, out, "<strong>world</strong>")
	assert.Equal(t, "Launch Notes", MarkdownTitle(src))
	assert.Equal(t, "", MarkdownTitle([]byte("no heading")))
}

func TestMarkdownLeadImage(t *testing.T) {
	src := []byte("# Title\n\nIntro ![cover](https://cdn.example/a.png \"Cover\") and ![b](<https://cdn.example/b c.png>)")
	assert.Equal(t, "https://cdn.example/a.png", MarkdownLeadImage(src))
	assert.Equal(t, "https://cdn.example/x y.png", MarkdownLeadImage([]byte("![x](<https://cdn.example/x y.png>)")))
	assert.Empty(t, MarkdownLeadImage([]byte("no images here")))
}
