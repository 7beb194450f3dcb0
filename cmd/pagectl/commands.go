package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/portfoliocms/internal/content"
	"github.com/portfoliocms/internal/db"
	"github.com/portfoliocms/internal/service"
)

var (
	importTitle string
	importSlug  string
	importOwner string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage editor accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create <email> <password>",
	Short: "Create an editor account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.users.Create(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created editor %s (id %d)\n", user.Email, user.ID)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.md>",
	Short: "Create a draft page from a markdown file",
	Long: `Convert a markdown file to HTML and store it as a draft page.

The title defaults to the first "# " heading and the slug to the slugified
title. The first image in the document becomes the featured image. The page
is owned by the editor given with --owner.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List pages, most recently updated first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		pages, err := a.pages.ListForAdmin(cmd.Context(), "")
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SLUG\tSTATE\tTITLE\tUPDATED")
		for _, page := range pages {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", page.Slug, content.StateOf(page.Published), page.Title, page.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish <slug>",
	Short: "Publish a page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPublished(cmd, args[0], true)
	},
}

var unpublishCmd = &cobra.Command{
	Use:   "unpublish <slug>",
	Short: "Move a page back to drafts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPublished(cmd, args[0], false)
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	importCmd.Flags().StringVar(&importTitle, "title", "", "page title (defaults to the first heading)")
	importCmd.Flags().StringVar(&importSlug, "slug", "", "page slug (defaults to the slugified title)")
	importCmd.Flags().StringVar(&importOwner, "owner", "", "editor email that owns the page (defaults to ADMIN_EMAIL)")
}

func runImport(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	editor, err := lookupEditor(a, importOwner)
	if err != nil {
		return err
	}

	body, err := content.MarkdownToHTML(src)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	title := strings.TrimSpace(importTitle)
	if title == "" {
		title = content.MarkdownTitle(src)
	}
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	}
	slug := importSlug
	if slug == "" {
		slug = content.Slugify(title)
	}

	page, err := a.pages.Create(cmd.Context(), editor, content.PageInput{
		Title:         title,
		Slug:          slug,
		Content:       body,
		FeaturedImage: content.MarkdownLeadImage(src),
	})
	if err != nil {
		var verr *content.ValidationError
		if errors.As(err, &verr) {
			for _, item := range verr.Items {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", item.Field, item.Message)
			}
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported draft %q at /%s (id %s)\n", page.Title, page.Slug, page.ID)
	return nil
}

func lookupEditor(a *app, email string) (service.Editor, error) {
	if strings.TrimSpace(email) == "" {
		email = a.cfg.AdminEmail
	}

	var user db.User
	if err := a.gdb.Where("email = ?", db.NormalizeEmail(email)).First(&user).Error; err != nil {
		return service.Editor{}, fmt.Errorf("no editor with email %q: %w", email, err)
	}
	return service.Editor{ID: user.ID, Email: user.Email}, nil
}

func setPublished(cmd *cobra.Command, slug string, published bool) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	pages, err := a.pages.ListForAdmin(cmd.Context(), slug)
	if err != nil {
		return err
	}

	for _, page := range pages {
		if page.Slug != slug {
			continue
		}
		editor := service.Editor{ID: page.UserID}
		if !editor.Valid() {
			if editor, err = lookupEditor(a, ""); err != nil {
				return err
			}
		}
		updated, err := a.pages.SetPublished(cmd.Context(), editor, page.ID, published)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "/%s is now %s\n", updated.Slug, content.StateOf(updated.Published))
		return nil
	}
	return fmt.Errorf("%w: %s", service.ErrPageNotFound, slug)
}
