package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talentsphere/internal/config"
	"github.com/jonathan/talentsphere/internal/db"
	"github.com/jonathan/talentsphere/internal/server"
	"github.com/jonathan/talentsphere/internal/types"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage accounts and scan history",
}

var accountCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register an account",
	RunE:  runAccountCreate,
}

var accountBootstrapCmd = &cobra.Command{
	Use:   "bootstrap-admin",
	Short: "Create the admin recruiter account if it does not exist",
	Long:  "Creates the \"admin\" recruiter account for TechGlobal. The password comes from --password or ADMIN_PASSWORD.",
	RunE:  runAccountBootstrap,
}

var accountScansCmd = &cobra.Command{
	Use:   "scans",
	Short: "List an account's scan history, newest first",
	RunE:  runAccountScans,
}

var (
	accountUsername    string
	accountPassword    string
	accountRole        string
	accountCompany     string
	accountCompanyType string
	accountLimit       int
)

func init() {
	accountCreateCmd.Flags().StringVar(&accountUsername, "username", "", "Username (required)")
	accountCreateCmd.Flags().StringVar(&accountPassword, "password", "", "Password, at least 8 characters (required)")
	accountCreateCmd.Flags().StringVar(&accountRole, "role", types.RoleJobSeeker, "Role: \"Job Seeker\" or Recruiter")
	accountCreateCmd.Flags().StringVar(&accountCompany, "company", "", "Company name (required for recruiters)")
	accountCreateCmd.Flags().StringVar(&accountCompanyType, "company-type", "", "Company type, e.g. MNC or Startup")
	for _, name := range []string{"username", "password"} {
		if err := accountCreateCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	accountBootstrapCmd.Flags().StringVar(&accountPassword, "password", "", "Admin password (defaults to ADMIN_PASSWORD)")

	accountScansCmd.Flags().StringVar(&accountUsername, "username", "", "Username (required)")
	accountScansCmd.Flags().IntVar(&accountLimit, "limit", db.DefaultScanLimit, "Maximum scans to list")
	if err := accountScansCmd.MarkFlagRequired("username"); err != nil {
		panic(fmt.Sprintf("failed to mark username flag as required: %v", err))
	}

	accountCmd.AddCommand(accountCreateCmd, accountBootstrapCmd, accountScansCmd)
	rootCmd.AddCommand(accountCmd)
}

// withUserService opens the configured store and runs fn with a user service over it.
func withUserService(cmd *cobra.Command, fn func(*server.UserService) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg = cfg.MergeWithDefaults(config.Config{})

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return fmt.Errorf("failed to create password config: %w", err)
	}

	store, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(server.NewUserService(store, passwordConfig))
}

func runAccountCreate(cmd *cobra.Command, _ []string) error {
	req := &types.CreateAccountRequest{
		Username:    accountUsername,
		Password:    accountPassword,
		Role:        accountRole,
		CompanyName: accountCompany,
		CompanyType: accountCompanyType,
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid account: %w", err)
	}

	return withUserService(cmd, func(users *server.UserService) error {
		acc, err := users.Register(cmd.Context(), req)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s account %s (%s)\n", acc.Role, acc.Username, acc.CompanyName)
		return nil
	})
}

func runAccountBootstrap(cmd *cobra.Command, _ []string) error {
	password := accountPassword
	if password == "" {
		password = os.Getenv("ADMIN_PASSWORD")
	}
	if len(password) < 8 {
		return fmt.Errorf("admin password must be at least 8 characters (use --password or ADMIN_PASSWORD)")
	}

	return withUserService(cmd, func(users *server.UserService) error {
		created, err := users.EnsureAdmin(cmd.Context(), password)
		if err != nil {
			return err
		}
		if created {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created admin account %q\n", server.AdminUsername)
		} else {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Admin account %q already exists\n", server.AdminUsername)
		}
		return nil
	})
}

func runAccountScans(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg = cfg.MergeWithDefaults(config.Config{})

	store, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	scans, err := store.ListScans(cmd.Context(), accountUsername, accountLimit)
	if err != nil {
		return fmt.Errorf("failed to list scans: %w", err)
	}
	data, err := json.MarshalIndent(scans, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scans: %w", err)
	}
	return writeOutput(cmd, "", append(data, '\n'))
}
