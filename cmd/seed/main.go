package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/db"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/seed"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
)

type options struct {
	file    string
	envFile string
	dryRun  bool
}

// openRepo is replaced in tests
var openRepo = func(ctx context.Context, dsn string) (repository.ProductRepository, io.Closer, error) {
	pool, err := db.Open(ctx, db.Options{DSN: dsn})
	if err != nil {
		return nil, nil, err
	}
	return repository.NewPostgresProductRepository(pool), pool, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample products into the products table",
		Long: `Bulk inserts product rows into the products table.

Reads STORE_URL and STORE_SERVICE_KEY from the environment, after loading
the env file if it exists. Rows are inserted on every run; seeding twice
duplicates the catalog.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "CSV file or http(s) URL with products (defaults to the built-in sample set)")
	cmd.Flags().StringVar(&opts.envFile, "env-file", config.DefaultEnvFile, "env file to load before reading configuration")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "validate the products without writing them")

	return cmd
}

// run reports every failure on stderr and returns it so the process exits 1
func run(ctx context.Context, opts *options, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := config.LoadEnvFile(opts.envFile); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return err
	}

	cfg, err := config.LoadSeed()
	if err != nil {
		var cfgErr *config.ConfigurationError
		if errors.As(err, &cfgErr) {
			fmt.Fprintln(stderr, "Error: Missing STORE_URL or STORE_SERVICE_KEY in environment variables.")
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return err
	}

	log := logger.NewWithWriter(stdout, cfg.LogLevel)
	slog.SetDefault(log)

	products, err := loadProducts(ctx, opts.file)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to load products: %v\n", err)
		return err
	}

	if opts.dryRun {
		log.Info("dry run, nothing written", "products", len(products))
		return nil
	}

	dsn, err := cfg.DSN()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return err
	}

	repo, closer, err := openRepo(ctx, dsn)
	if err != nil {
		fmt.Fprintf(stderr, "Seeding failed: %v\n", err)
		return err
	}
	defer closer.Close()

	if _, err := seed.NewSeeder(repo, log).Run(ctx, products); err != nil {
		var schemaErr *seed.SchemaError
		if errors.As(err, &schemaErr) {
			fmt.Fprintln(stderr, `Error: The "products" table does not exist. Create it before seeding.`)
		} else {
			fmt.Fprintf(stderr, "%v\n", err)
		}
		return err
	}

	return nil
}

func loadProducts(ctx context.Context, file string) ([]models.NewProduct, error) {
	if file == "" {
		return seed.SampleProducts(), nil
	}
	return seed.NewSource().Load(ctx, file)
}
