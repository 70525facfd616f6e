package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfig      string
	flagPath        string
	flagBatchSize   int
	flagIncremental int
	flagCatalog     string
	flagVerbose     bool
	flagLimit       int
)

var rootCmd = &cobra.Command{
	Use:           "sql-backup",
	Short:         "Backup and restore MySQL/MariaDB databases",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setVerboseLogging(flagVerbose)
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Dump a database to a SQL file",
	Args:  cobra.NoArgs,
	RunE:  runBackupCmd,
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replay a SQL dump file against a database",
	Args:  cobra.NoArgs,
	RunE:  runRestoreCmd,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded backup runs",
	Args:  cobra.NoArgs,
	RunE:  runHistoryCmd,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(versionString())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	backupCmd.Flags().StringVar(&flagConfig, "config", "", "path to TOML config file")
	backupCmd.Flags().StringVar(&flagPath, "path", "", "path for the output SQL file")
	backupCmd.Flags().IntVar(&flagBatchSize, "batch-size", 0, "rows per INSERT batch (overrides config)")
	backupCmd.Flags().IntVar(&flagIncremental, "incremental", 0, "timestamp the output and keep only N backups (overrides config)")
	backupCmd.Flags().StringVar(&flagCatalog, "catalog", "", "path to the run catalog (overrides config)")
	backupCmd.MarkFlagRequired("config")
	backupCmd.MarkFlagRequired("path")

	restoreCmd.Flags().StringVar(&flagConfig, "config", "", "path to TOML config file")
	restoreCmd.Flags().StringVar(&flagPath, "path", "", "path to the SQL dump file")
	restoreCmd.MarkFlagRequired("config")
	restoreCmd.MarkFlagRequired("path")

	historyCmd.Flags().StringVar(&flagCatalog, "catalog", "backup_history.db", "path to the run catalog")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "maximum runs to list")

	rootCmd.AddCommand(backupCmd, restoreCmd, historyCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runBackupCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return err
	}

	opts := backupOptions{
		OutputPath:  flagPath,
		BatchSize:   cfg.Backup.BatchSize,
		Incremental: cfg.Backup.Incremental,
		CatalogPath: cfg.Backup.Catalog,
	}
	if flagBatchSize > 0 {
		opts.BatchSize = flagBatchSize
	}
	if flagIncremental > 0 {
		opts.Incremental = flagIncremental
	}
	if flagCatalog != "" {
		opts.CatalogPath = flagCatalog
	}

	written, err := runBackup(cmd.Context(), cfg.Endpoint(), opts)
	if err != nil {
		return err
	}
	fmt.Printf("Backup complete: %s\n", written)
	return nil
}

func runRestoreCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return err
	}
	if err := runRestore(cmd.Context(), cfg.Endpoint(), flagPath); err != nil {
		return err
	}
	fmt.Printf("Restore complete: %s\n", flagPath)
	return nil
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	runs, err := listBackupRuns(cmd.Context(), flagCatalog, flagLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no backup runs recorded")
		return nil
	}
	for _, r := range runs {
		fmt.Printf("%s  %-20s %8d rows  %10d bytes  %s\n",
			r.StartedAt.Format("2006-01-02 15:04:05"), r.Database, r.Rows, r.Bytes, r.Path)
	}
	return nil
}
