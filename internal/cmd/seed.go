package cmd

import (
	"fmt"

	"github.com/hardik88t/puredry/internal/catalog"
	"github.com/hardik88t/puredry/internal/repository"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the stored catalog with the built-in product data",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openCatalogDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := catalog.Seed(cmd.Context(), repository.NewProductRepository(db))
	if err != nil {
		return err
	}
	log.Info("catalog seeded", "products", n, "path", cfg.Storage.SQLitePath)
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d products\n", n)
	return nil
}
