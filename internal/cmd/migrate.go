package cmd

import (
	"fmt"

	"github.com/hardik88t/puredry/internal/quote"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long: `Apply the SQLite catalog migrations and, when quote.submitter is
postgres, the quote_requests migrations.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openCatalogDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("sqlite migrations applied", "path", cfg.Storage.SQLitePath)

	if cfg.Quote.Submitter != "postgres" {
		return nil
	}
	pg, err := quote.NewPostgresSubmitter(postgresCredentials(cfg))
	if err != nil {
		return err
	}
	defer pg.Close()
	if err := pg.RunMigrations(); err != nil {
		return fmt.Errorf("failed to migrate quote database: %w", err)
	}
	log.Info("postgres migrations applied", "host", cfg.Quote.Postgres.Host, "dbname", cfg.Quote.Postgres.DBName)
	return nil
}
