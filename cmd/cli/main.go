package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	postgresRepo "github.com/Sharans23/LenDenClub/internal/adapter/repository/postgres"
	"github.com/Sharans23/LenDenClub/internal/domain"
	"github.com/Sharans23/LenDenClub/internal/infrastructure/config"
	"github.com/Sharans23/LenDenClub/internal/infrastructure/postgres"
	"github.com/Sharans23/LenDenClub/internal/usecase"
)

var (
	baseURL string
	timeout time.Duration
)

// swappable for tests
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "lenden-cli",
		Short: "LenDenClub CLI tool",
		Long:  `A command line interface for operating the LenDenClub money transfer service.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the LenDenClub API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(ledgerCmd())
	rootCmd.AddCommand(hashPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath)
		},
	})

	return cmd
}

// seedAccount is one demo account created by `seed`.
type seedAccount struct {
	Username string
	Password string
	Balance  string
}

func demoAccounts() []seedAccount {
	return []seedAccount{
		{Username: "alice", Password: "alice123", Balance: "5000.00"},
		{Username: "bob", Password: "bob123", Balance: "3000.00"},
		{Username: "charlie", Password: "charlie123", Balance: "2000.00"},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create demo accounts",
		Long:  `Creates the demo accounts (alice, bob, charlie) when they do not already exist.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, 2, 1)
			if err != nil {
				return err
			}
			defer pool.Close()

			accountRepo := postgresRepo.NewAccountRepository(pool)
			return seedAccounts(ctx, accountRepo, demoAccounts())
		},
	}
}

func seedAccounts(ctx context.Context, repo usecase.AccountRepository, seeds []seedAccount) error {
	for _, seed := range seeds {
		existing, err := repo.GetByUsername(ctx, seed.Username)
		if err != nil {
			return fmt.Errorf("lookup %s: %w", seed.Username, err)
		}
		if existing != nil {
			fmt.Printf("%s already exists, skipping\n", seed.Username)
			continue
		}

		hash, err := bcryptGenerate([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", seed.Username, err)
		}

		now := time.Now().UTC()
		account := &domain.Account{
			Username:       seed.Username,
			HashedPassword: string(hash),
			Balance:        decimal.RequireFromString(seed.Balance),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := repo.Create(ctx, account); err != nil {
			return fmt.Errorf("create %s: %w", seed.Username, err)
		}

		fmt.Printf("created %s (id %d, balance %s)\n", account.Username, account.ID, account.Balance)
	}

	return nil
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	})

	return cmd
}

func checkConsistency() {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/ledger/consistency", nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if token := os.Getenv("LENDEN_TOKEN"); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Consistency check PASSED\n")
	printJSON(result)
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to marshal: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
