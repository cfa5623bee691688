package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/hardik88t/puredry/internal/domain"
	"github.com/hardik88t/puredry/internal/quote"
	"github.com/spf13/cobra"
)

var quotesCmd = &cobra.Command{
	Use:   "quotes",
	Short: "List submitted quote requests",
	Long: `List the quote requests held by the configured submitter, oldest
first. The kafka submitter only publishes and cannot be listed.`,
	RunE: runListQuotes,
}

var quoteStatusCmd = &cobra.Command{
	Use:   "status <quote-id> <status>",
	Short: "Move a quote request to a new status (postgres submitter only)",
	Args:  cobra.ExactArgs(2),
	RunE:  runQuoteStatus,
}

func init() {
	quotesCmd.AddCommand(quoteStatusCmd)
	rootCmd.AddCommand(quotesCmd)
}

func runListQuotes(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	var lister quote.Lister
	closers := []closer{}
	defer func() { closeAll(context.Background(), log, closers...) }()

	switch cfg.Quote.Submitter {
	case "local":
		db, err := openCatalogDB(cfg)
		if err != nil {
			return err
		}
		closers = append(closers, func(context.Context) error { return db.Close() })
		store, closeStore, err := openStorage(ctx, cfg, db)
		if err != nil {
			return err
		}
		closers = append(closers, closeStore)
		lister = quote.NewLocalSubmitter(store, 0, log)
	case "postgres":
		pg, err := quote.NewPostgresSubmitter(postgresCredentials(cfg))
		if err != nil {
			return err
		}
		closers = append(closers, func(context.Context) error { return pg.Close() })
		lister = pg
	default:
		return fmt.Errorf("%s submitter: %w", cfg.Quote.Submitter, quote.ErrListUnsupported)
	}

	quotes, err := lister.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list quotes: %w", err)
	}
	return printQuotes(cmd.OutOrStdout(), quotes)
}

func runQuoteStatus(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Quote.Submitter != "postgres" {
		return errors.New("quote status changes need the postgres submitter")
	}

	pg, err := quote.NewPostgresSubmitter(postgresCredentials(cfg))
	if err != nil {
		return err
	}
	defer pg.Close()

	id, to := args[0], domain.QuoteStatus(args[1])
	if err := pg.UpdateStatus(cmd.Context(), id, to); err != nil {
		return err
	}
	log.Info("quote status updated", "quote_id", id, "status", to)
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", id, to)
	return nil
}

func printQuotes(w io.Writer, quotes []domain.QuoteRequest) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tCUSTOMER\tITEMS\tESTIMATE\tCREATED")
	for _, q := range quotes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.2f %s\t%s\n",
			q.ID,
			q.Status,
			q.CustomerInfo.Email,
			len(q.CartItems),
			q.EstimatedTotal,
			q.Currency,
			q.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}
