/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/sarmeta/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default sarmeta configuration",
	Long: `Write a default configuration file and create the archive data directory.

Examples:
	  sarmeta init
	  sarmeta init --config ./sarmeta.yaml --data-dir ./archive`,
	// init must work before any configuration exists
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}
		dataDir, _ := cmd.Flags().GetString("data-dir")
		force, _ := cmd.Flags().GetBool("force")

		return runInit(cmd.OutOrStdout(), configPath, dataDir, force)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("data-dir", "", "Archive data directory (default ./data)")
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration")
}

func runInit(w io.Writer, configPath, dataDir string, force bool) error {
	if config.ConfigExists(configPath) && !force {
		fmt.Fprintf(w, "Configuration already exists at %s. Use --force to overwrite.\n", configPath)
		return nil
	}

	cfg, err := config.BootstrapConfig(configPath, dataDir)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return errors.Wrap(err, "failed to create data directory")
	}

	fmt.Fprintf(w, "Configuration written to %s\n", configPath)
	fmt.Fprintf(w, "Data directory: %s\n", cfg.DataDir)
	fmt.Fprintf(w, "Default byte order: %s\n", cfg.Codec.ByteOrder)
	return nil
}
