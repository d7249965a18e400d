// Command records-admin runs maintenance tasks against the records database.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"employee-records-api/config"
	"employee-records-api/models"
	"employee-records-api/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "records-admin",
		Short:         "Maintenance commands for the employee records API",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(migrateCmd(), createUserCmd(), hashPasswordsCmd(), pendingCmd())
	return root
}

func openDB() (*gorm.DB, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}
	return config.OpenDB(settings.Database, settings.Environment)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			if err := config.Migrate(db); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
			return nil
		},
	}
}

func createUserCmd() *cobra.Command {
	var in services.NewUser
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user account (e.g. the first admin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			user, err := services.NewUserService(db).Create(context.Background(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %d (%s, %s)\n", user.UserID, user.Email, user.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "display name")
	cmd.Flags().StringVar(&in.Email, "email", "", "login email")
	cmd.Flags().StringVar(&in.Password, "password", "", "initial password")
	cmd.Flags().StringVar(&in.Role, "role", models.RoleAdmin, "admin, employee or normalemployee")
	cmd.Flags().StringVar(&in.EmployeeID, "employee-id", "", "employee code the account belongs to")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// hashPasswordsCmd hashes passwords that were imported in clear text.
func hashPasswordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-passwords",
		Short: "Hash any stored clear text passwords with bcrypt",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}

			var users []models.User
			if err := db.Find(&users).Error; err != nil {
				return fmt.Errorf("failed to fetch users: %w", err)
			}

			for _, user := range users {
				// Skip if already hashed (bcrypt hashes start with $2)
				if strings.HasPrefix(user.Password, "$2") {
					continue
				}
				hashed, err := services.HashPassword(user.Password)
				if err != nil {
					log.Printf("Failed to hash password for user %s: %v\n", user.Email, err)
					continue
				}
				if err := db.Model(&user).Update("password", hashed).Error; err != nil {
					log.Printf("Failed to update password for user %s: %v\n", user.Email, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Hashed password for %s\n", user.Email)
			}
			return nil
		},
	}
}

func pendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "Count pending and rejected submissions per record type",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}

			ctx := context.Background()
			w := services.NewWorkflows(db)
			counts := []struct {
				name string
				list func(services.DraftFilter) (int, error)
			}{
				{"employee", countOf(ctx, w.Employee)},
				{"aadhar", countOf(ctx, w.Aadhar)},
				{"pan", countOf(ctx, w.Pan)},
				{"bankdetail", countOf(ctx, w.BankDetail)},
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-12s %8s %8s\n", "TYPE", "PENDING", "REJECTED")
			for _, c := range counts {
				pending, err := c.list(services.DraftFilter{Status: models.StatusPending})
				if err != nil {
					return err
				}
				rejected, err := c.list(services.DraftFilter{Status: models.StatusRejected})
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-12s %8d %8d\n", c.name, pending, rejected)
			}
			return nil
		},
	}
}

func countOf[P models.Payload](ctx context.Context, w *services.Workflow[P]) func(services.DraftFilter) (int, error) {
	return func(f services.DraftFilter) (int, error) {
		drafts, err := w.ListDrafts(ctx, f)
		return len(drafts), err
	}
}
