// Seed registers a demo user and gives them tasks. Run from project root: go run ./scripts/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"taskboard/internal/config"
	"taskboard/internal/models"
	"taskboard/internal/password"
	"taskboard/internal/repository/open"
	"taskboard/internal/service"
	"taskboard/internal/token"
)

var (
	name  string
	email string
	pass  string
	total int
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Register a demo user and create tasks for them",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		cfg := config.Get()
		if cfg == nil {
			return errors.New("config not loaded")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		store, err := open.Store(ctx, cfg)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()

		tokens, err := token.New([]byte(cfg.JWTSecret), cfg.TokenTTL, nil)
		if err != nil {
			return err
		}
		accounts := service.NewAccounts(store, password.NewHasher(cfg.BcryptCost), tokens)
		tasks := service.NewTasks(store, service.TasksOptions{})

		if _, err := accounts.Register(ctx, name, email, pass); err != nil && !errors.Is(err, service.ErrDuplicateEmail) {
			return fmt.Errorf("register: %w", err)
		}
		tok, err := accounts.Login(ctx, email, pass)
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		userID, err := tokens.Verify(tok)
		if err != nil {
			return err
		}

		start := time.Now()
		out := cmd.OutOrStdout()
		for i := 0; i < total; i++ {
			category := models.Categories[i%len(models.Categories)]
			if _, err := tasks.Create(ctx, userID, fmt.Sprintf("Task %d", i+1), category); err != nil {
				return fmt.Errorf("create task %d: %w", i+1, err)
			}
			fmt.Fprintf(out, "\rInserted %d / %d", i+1, total)
		}
		fmt.Fprintf(out, "\nDone: %d tasks for %s in %v\nToken: %s\n", total, email, time.Since(start), tok)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&name, "name", "Demo", "display name")
	rootCmd.Flags().StringVar(&email, "email", "demo@example.com", "login email")
	rootCmd.Flags().StringVar(&pass, "password", "demo", "login password")
	rootCmd.Flags().IntVar(&total, "tasks", 100, "number of tasks to create")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
