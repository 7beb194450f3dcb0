package content

import "strings"

// Validation messages shown next to the offending field.
const (
	MsgTitleRequired = "Title is required"
	MsgSlugRequired  = "Slug is required"
	MsgSlugFormat    = "Slug can only contain lowercase letters, numbers, and hyphens"
	MsgSlugTaken     = "This slug is already in use. Please choose another."
	MsgSlugReserved  = "This slug is reserved by the site. Please choose another."
)

// reservedSlugs are first path segments owned by fixed routes; a page using
// one could never be reached at /<slug>.
var reservedSlugs = map[string]bool{
	"admin":   true,
	"api":     true,
	"blog":    true,
	"healthz": true,
	"ping":    true,
	"static":  true,
}

// PageInput is what the editor form submits.
type PageInput struct {
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	Content         string `json:"content"`
	MetaDescription string `json:"meta_description"`
	FeaturedImage   string `json:"featured_image"`
	Published       *bool  `json:"published"`
}

// PageValues is a PageInput that passed validation.
type PageValues struct {
	Title           string
	Slug            string
	Content         string
	MetaDescription string
	FeaturedImage   string
	Published       bool
}

// Validate checks the editor fields before anything is persisted. It never
// performs I/O; slug uniqueness is checked separately against the store.
func Validate(in PageInput) (PageValues, error) {
	ve := &ValidationError{}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		ve.Add("title", MsgTitleRequired)
	}

	switch {
	case in.Slug == "":
		ve.Add("slug", MsgSlugRequired)
	case !ValidSlug(in.Slug):
		ve.Add("slug", MsgSlugFormat)
	case reservedSlugs[in.Slug]:
		ve.Add("slug", MsgSlugReserved)
	}

	if ve.HasAny() {
		return PageValues{}, ve
	}

	values := PageValues{
		Title:           title,
		Slug:            in.Slug,
		Content:         in.Content,
		MetaDescription: in.MetaDescription,
		FeaturedImage:   strings.TrimSpace(in.FeaturedImage),
	}
	if in.Published != nil {
		values.Published = *in.Published
	}
	return values, nil
}
