package main

import (
	"fmt"
	"os"

	"spg-go/internal/app"
	"spg-go/internal/config"
	"spg-go/internal/gphotos"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer
// app.Close().
func newApp() (*app.App, error) {
	cfg, err := readConfig()
	if err != nil {
		return nil, err
	}

	a, err := app.NewApp(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

func readConfig() (*config.Config, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

var rootCmd = &cobra.Command{
	Use:   "spg",
	Short: "Back up photo directories into a pool of Google Photos accounts",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		installID := uuid.New().String()
		cfg := config.NewConfig(installID, defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Install ID: %s\n", installID)
		fmt.Println("Add [[accounts]] entries before running spg auth.")
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Install ID: %s\n", cfg.InstallID)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		fmt.Printf("Accounts:   %d\n", len(cfg.Accounts))
		for i, account := range cfg.Accounts {
			fmt.Printf("  [%d] %s (%s)\n", i, account.Name, account.CredentialsFile)
		}
		return nil
	},
}

// auth command
var authCmd = &cobra.Command{
	Use:   "auth [ACCOUNT_NAME]",
	Short: "Run the OAuth flow for every account, or one account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return err
		}

		accounts := cfg.Accounts
		if len(args) > 0 {
			account, err := cfg.FindAccount(args[0])
			if err != nil {
				return err
			}
			accounts = []config.AccountConfig{account}
		}

		for _, account := range accounts {
			err := gphotos.Authenticate(account.Name, account.CredentialsFile, account.ClientSecretFile, os.Stdin, os.Stdout)
			if err != nil {
				return fmt.Errorf("authenticating %q: %w", account.Name, err)
			}
		}
		return nil
	},
}

// backup command
var backupCmd = &cobra.Command{
	Use:   "backup DIFF_FILE",
	Short: "Back up a diff file to the account pool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.Backup(args[0])
		if err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}

		if len(result.NewAlbums) == 0 {
			fmt.Println("No new albums created.")
			return nil
		}
		fmt.Printf("Created %d new album(s):\n", len(result.NewAlbums))
		for _, album := range result.NewAlbums {
			url := ""
			if album.ShareInfo != nil {
				url = album.ShareInfo.ShareableURL
			}
			fmt.Printf("  %s  %s\n", album.Title, url)
		}
		return nil
	},
}

// clean command
var cleanCmd = &cobra.Command{
	Use:   "clean ACCOUNT_NAME",
	Short: "Gather an account's unalbumed media into its trash album",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		count, err := a.Clean(args[0])
		if err != nil {
			return fmt.Errorf("clean failed: %w", err)
		}

		fmt.Printf("Moved %d item(s) to the trash album\n", count)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(cleanCmd)
}
