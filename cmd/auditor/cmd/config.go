package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/flightschool/auditor/internal/config"
	"github.com/flightschool/auditor/internal/errors"
	"github.com/flightschool/auditor/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage user configuration",
		Long: `Manage the user configuration file.

Configuration precedence (lowest to highest):
  1. Hardcoded defaults
  2. User config (~/.config/auditor/config.yaml)
  3. --config file, or <dataset>/.auditor.yaml
  4. Environment variables (AUDITOR_*)
  5. Command-line flags`,
		Example: `  # Create user config with defaults
  auditor config init

  # Show effective configuration for a dataset
  auditor config show ./data/2017-01

  # Print user config file path
  auditor config path`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigBackupsCmd())
	cmd.AddCommand(newConfigRestoreCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create user configuration file",
		Long: `Write the default configuration to ~/.config/auditor/config.yaml
(or $XDG_CONFIG_HOME/auditor/config.yaml if XDG_CONFIG_HOME is set).

With --force an existing file is backed up first, then replaced.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var (
		jsonOutput bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "show [dataset]",
		Short: "Show effective configuration",
		Long: `Show the configuration after merging defaults, the user config, the
dataset config (or --config) and environment variables.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			return runConfigShow(cmd, dir, configPath, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&configPath, "config", "", "Config file to use instead of the dataset config")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print user config file path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.GetUserConfigPath())
			return err
		},
	}
}

func newConfigBackupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backups",
		Short: "List user config backups, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := output.New(cmd.OutOrStdout())
			backups, err := config.ListBackups(config.GetUserConfigPath())
			if err != nil {
				return errors.ConfigError("failed to list backups", err)
			}
			if len(backups) == 0 {
				out.Line("No backups found.")
				return nil
			}
			for _, b := range backups {
				out.Line(b)
			}
			return nil
		},
	}
}

func newConfigRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore backup",
		Short: "Restore the user config from a backup",
		Long: `Replace the user config with a backup file. A bare file name is looked
up in the user config directory. The current config is backed up first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup := args[0]
			if filepath.Base(backup) == backup {
				backup = filepath.Join(config.GetUserConfigDir(), backup)
			}
			if err := config.Restore(config.GetUserConfigPath(), backup); err != nil {
				return errors.ConfigError("failed to restore config", err)
			}
			output.New(cmd.OutOrStdout()).Successf("Restored %s", backup)
			return nil
		},
	}
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	out := output.New(cmd.OutOrStdout())
	configPath := config.GetUserConfigPath()

	if config.UserConfigExists() && !force {
		out.Warning("User configuration already exists")
		out.Statusf("📁", "Location: %s", configPath)
		out.Newline()
		out.Status("💡", "Use --force to replace it (a backup is kept)")
		return nil
	}

	backup, err := config.Init(configPath, force)
	if err != nil {
		return errors.ConfigError("failed to write config file", err)
	}

	out.Success("Created user configuration")
	out.Statusf("📁", "Location: %s", configPath)
	if backup != "" {
		out.Statusf("💾", "Backup: %s", backup)
	}
	return nil
}

func runConfigShow(cmd *cobra.Command, dir, configPath string, jsonOutput bool) error {
	cfg, err := config.Load(dir, configPath)
	if err != nil {
		return err
	}

	if jsonOutput {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return errors.InternalError("failed to marshal config", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.InternalError("failed to marshal config", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
	return err
}
