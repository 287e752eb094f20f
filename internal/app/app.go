// Package app is the wiring layer between the CLI and the core: it builds
// account clients from config and exposes high-level operations.
package app

import (
	"fmt"
	"os"
	"time"

	"spg-go/internal/config"
	"spg-go/internal/fs"
	"spg-go/internal/gphotos"
	"spg-go/internal/spg"
)

// App holds a fully wired set of account clients and the backup service.
// The caller must call Close when done.
type App struct {
	cfg      *config.Config
	accounts []spg.Account
	service  *spg.BackupService
	logger   spg.Logger
	events   spg.Events
	logFile  *os.File
}

// NewApp creates an App from the given config. Every configured account must
// already have saved credentials (see spg auth).
func NewApp(cfg *config.Config) (*App, error) {
	if len(cfg.Accounts) == 0 {
		return nil, fmt.Errorf("no accounts configured")
	}

	runID := time.Now().UTC().Format("20060102T150405Z")
	slogger, logFile, err := newLogger(cfg.LogDir, runID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	policy := retryPolicyFromConfig(cfg.Retry)

	accounts := make([]spg.Account, 0, len(cfg.Accounts))
	for _, accountCfg := range cfg.Accounts {
		httpClient, err := gphotos.NewAuthorizedHTTPClient(accountCfg.CredentialsFile, accountCfg.ClientSecretFile)
		if err != nil {
			logFile.Close()
			return nil, fmt.Errorf("authorizing account %q: %w", accountCfg.Name, err)
		}
		accounts = append(accounts, gphotos.NewClient(accountCfg.Name, httpClient, policy, logger))
	}

	events := &consoleEvents{out: os.Stdout}
	service := spg.NewBackupService(accounts, fs.NewOSFilesystemManager(), logger, events)

	return &App{
		cfg:      cfg,
		accounts: accounts,
		service:  service,
		logger:   logger,
		events:   events,
		logFile:  logFile,
	}, nil
}

// retryPolicyFromConfig overlays any configured retry tuning on the default
// policy.
func retryPolicyFromConfig(cfg config.RetryConfig) gphotos.RetryPolicy {
	policy := gphotos.DefaultRetryPolicy()
	if cfg.MaxAttempts > 0 {
		policy.MaxAttempts = cfg.MaxAttempts
	}
	if cfg.InitialBackoffMs > 0 {
		policy.InitialBackoff = time.Duration(cfg.InitialBackoffMs) * time.Millisecond
	}
	if cfg.MaxBackoffMs > 0 {
		policy.MaxBackoff = time.Duration(cfg.MaxBackoffMs) * time.Millisecond
	}
	return policy
}

// Backup reads a diff file and runs one backup pass over the account pool.
func (a *App) Backup(diffPath string) (*spg.BackupResult, error) {
	diffs, err := ReadDiffFile(diffPath)
	if err != nil {
		return nil, err
	}
	return a.service.Backup(diffs)
}

// Clean gathers one account's unalbumed media items into its trash album.
// Returns the number of items moved.
func (a *App) Clean(accountName string) (int, error) {
	for i, accountCfg := range a.cfg.Accounts {
		if accountCfg.Name == accountName {
			cleaner := spg.NewCleaner(a.accounts[i], a.events, a.logger)
			return cleaner.MarkUnalbumedPhotosForTrash()
		}
	}
	return 0, fmt.Errorf("no account named %q in config", accountName)
}

// Close releases the log file.
func (a *App) Close() error {
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}
