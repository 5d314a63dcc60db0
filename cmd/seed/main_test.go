package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/seed"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func useRepo(t *testing.T, repo repository.ProductRepository) {
	t.Helper()
	original := openRepo
	openRepo = func(ctx context.Context, dsn string) (repository.ProductRepository, io.Closer, error) {
		return repo, nopCloser{}, nil
	}
	t.Cleanup(func() { openRepo = original })
}

func setStoreEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STORE_URL", "postgres://localhost:5432/shop")
	t.Setenv("STORE_SERVICE_KEY", "service-key")
	t.Setenv("LOG_LEVEL", "error")
}

func TestRun_SeedsSampleProducts(t *testing.T) {
	setStoreEnv(t)
	repo := repository.NewInMemoryProductRepository()
	useRepo(t, repo)

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &options{}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Empty(t, stderr.String())

	stored, err := repo.List(context.Background(), repository.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, stored, len(seed.SampleProducts()))
}

func TestRun_NotIdempotent(t *testing.T) {
	setStoreEnv(t)
	repo := repository.NewInMemoryProductRepository()
	useRepo(t, repo)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), &options{}, &stdout, &stderr))
	require.NoError(t, run(context.Background(), &options{}, &stdout, &stderr))

	stored, err := repo.List(context.Background(), repository.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, stored, 2*len(seed.SampleProducts()))
}

func TestRun_MissingConfiguration(t *testing.T) {
	t.Setenv("STORE_URL", "")
	t.Setenv("STORE_SERVICE_KEY", "service-key")
	useRepo(t, repository.NewInMemoryProductRepository())

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &options{}, &stdout, &stderr)

	var cfgErr *config.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, stderr.String(), "Missing STORE_URL or STORE_SERVICE_KEY")
}

func TestRun_MissingTable(t *testing.T) {
	setStoreEnv(t)
	useRepo(t, repository.NewMissingRelationRepository())

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &options{}, &stdout, &stderr)

	var schemaErr *seed.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, stderr.String(), `The "products" table does not exist`)
}

type rejectingRepo struct {
	repository.ProductRepository
}

func (rejectingRepo) Insert(ctx context.Context, products []models.NewProduct) ([]models.Product, error) {
	return nil, &repository.DataAccessError{Op: "insert", Err: errors.New("permission denied")}
}

func TestRun_InsertFailure(t *testing.T) {
	setStoreEnv(t)
	useRepo(t, rejectingRepo{ProductRepository: repository.NewInMemoryProductRepository()})

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &options{}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, stderr.String(), "seeding failed")
	assert.Contains(t, stderr.String(), "permission denied")
}

func TestRun_DryRunFromFile(t *testing.T) {
	setStoreEnv(t)
	repo := repository.NewInMemoryProductRepository()
	useRepo(t, repo)

	path := filepath.Join(t.TempDir(), "products.csv")
	csv := "name,description,price,image_url,category\n" +
		"Desk Lamp,LED lamp,24.50,,home\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &options{file: path, dryRun: true}, &stdout, &stderr)

	require.NoError(t, err)
	stored, err := repo.List(context.Background(), repository.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestRun_EnvFile(t *testing.T) {
	t.Setenv("STORE_URL", "")
	t.Setenv("STORE_SERVICE_KEY", "")
	// godotenv does not override variables that are already set, even if empty
	require.NoError(t, os.Unsetenv("STORE_URL"))
	require.NoError(t, os.Unsetenv("STORE_SERVICE_KEY"))
	t.Setenv("LOG_LEVEL", "error")

	path := filepath.Join(t.TempDir(), ".env.local")
	env := "STORE_URL=postgres://localhost:5432/shop\nSTORE_SERVICE_KEY=from-file\n"
	require.NoError(t, os.WriteFile(path, []byte(env), 0o600))

	repo := repository.NewInMemoryProductRepository()
	useRepo(t, repo)

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &options{envFile: path}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Equal(t, "from-file", os.Getenv("STORE_SERVICE_KEY"))
}

func TestRootCmd_RejectsArguments(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	assert.Error(t, cmd.Execute())
}
