// Command pagectl manages pages and editors from the shell.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/portfoliocms/internal/config"
	"github.com/portfoliocms/internal/db"
	"github.com/portfoliocms/internal/logging"
	"github.com/portfoliocms/internal/router"
	"github.com/portfoliocms/internal/service"
)

var databasePath string

var rootCmd = &cobra.Command{
	Use:   "pagectl",
	Short: "Manage portfolio pages and editors",
	Long: `pagectl works directly against the site database.

Available subcommands:
  user create - add an editor account
  import      - create a draft page from a markdown file
  list        - print every page with its state
  publish     - publish a page by slug
  unpublish   - move a page back to drafts`,
	SilenceUsage: true,
}

// app holds what subcommands need once the database is open.
type app struct {
	cfg   config.AppConfig
	gdb   *gorm.DB
	pages *service.PageService
	users *service.UserService
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if databasePath != "" {
		cfg.DatabasePath = databasePath
	}

	gdb, err := db.Open(cfg.DatabasePath, logger.Silent)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	repo, err := router.NewPageRepository(gdb, cfg.PageStore)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg: cfg,
		gdb: gdb,
		pages: service.NewPageService(repo, service.FeedSettings{
			DefaultImage: cfg.DefaultImageURL,
			Rules:        router.CategoryRules(cfg.Categories),
		}),
		users: service.NewUserService(gdb),
	}, nil
}

func (a *app) Close() {
	if sqlDB, err := a.gdb.DB(); err == nil {
		sqlDB.Close()
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databasePath, "db", "", "sqlite database path (defaults to DATABASE_PATH)")
	rootCmd.AddCommand(userCmd, importCmd, listCmd, publishCmd, unpublishCmd)
}

func main() {
	logging.Setup(os.Getenv("LOG_LEVEL"), "console")
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("pagectl failed")
		os.Exit(1)
	}
}
