/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/sarmeta/pkg/config"
	"github.com/ssargent/sarmeta/pkg/di"
	"github.com/ssargent/sarmeta/pkg/endian"
	"github.com/ssargent/sarmeta/pkg/logger"
)

var container *di.Container

// SetContainer injects the dependency container, mostly for tests
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sarmeta",
	Short: "sarmeta - SAR sensor metadata record codec",
	Long: `sarmeta reads and writes the fixed-layout metadata records found in
satellite leader and header files, and converts them to and from OSSIM
keyword lists.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if container != nil {
			return nil
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		level, err := cfg.LogLevel()
		if err != nil {
			return err
		}

		c, err := di.NewContainer(cfg, logger.NewStdErrLogger(level))
		if err != nil {
			return err
		}
		container = c
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if container == nil || container.Metrics() == nil {
			return nil
		}
		return printMetrics(cmd.ErrOrStderr(), container)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to configuration file (default: "+config.GetDefaultConfigPath()+")")
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("metrics", false, "Print operation counters to stderr on exit")
}

// loadConfig reads the configuration file if there is one and applies the
// global flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	explicit := configPath != ""
	if !explicit {
		configPath = config.GetDefaultConfigPath()
	}

	cfg := config.DefaultConfig()
	if explicit || config.ConfigExists(configPath) {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if enabled, _ := cmd.Flags().GetBool("metrics"); enabled {
		cfg.Metrics.Enabled = true
	}
	return cfg, nil
}

// resolveOrder returns the order named by flag, or the configured default
// when the flag is empty.
func resolveOrder(c *di.Container, flag string) (endian.Order, error) {
	if flag == "" {
		return c.ByteOrder(), nil
	}
	order, err := endian.ParseOrder(flag)
	if err != nil {
		return 0, errors.Wrap(err, "--order")
	}
	return order, nil
}

func printMetrics(w io.Writer, c *di.Container) error {
	snap, err := c.Metrics().Snapshot()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(w, "%s %g\n", k, snap[k])
	}
	return nil
}
