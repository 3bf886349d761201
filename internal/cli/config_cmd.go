package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/ecoplate/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ecoplate configuration",
	}
	cmd.AddCommand(
		newConfigInitCmd(a),
		newConfigGetCmd(a),
		newConfigSetCmd(a),
		newConfigListCmd(a),
		newConfigValidateCmd(a),
	)
	return cmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	var (
		force   bool
		project bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a configuration file with default values.

With --project, creates .ecoplate/config.yaml in the current directory
together with a .gitignore that keeps activity data out of version control.`,
		Example: `  ecoplate config init
  ecoplate config init --project
  ecoplate config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !project {
				return initConfigFile(cmd, a.configPath, force)
			}

			dir := a.projectDir
			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("determining working directory: %w", err)
				}
				dir = filepath.Join(wd, config.ProjectDirName)
			}
			if err := initConfigFile(cmd, filepath.Join(dir, "config.yaml"), force); err != nil {
				return err
			}
			created, err := config.EnsureGitignore(dir)
			if err != nil {
				return fmt.Errorf("failed to create .gitignore: %w", err)
			}
			if created {
				cmd.Printf("Created .gitignore to protect personal data\n")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&project, "project", false, "create a project-local configuration")
	return cmd
}

func initConfigFile(cmd *cobra.Command, path string, force bool) error {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		}
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}
	if err := config.Default().Save(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	cmd.Printf("Configuration initialized at %s\n", path)
	return nil
}

func newConfigGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the effective value of a configuration key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.cfg.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func newConfigSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "set <key> <value>",
		Short:   "Set a key in the global configuration file",
		Example: `  ecoplate config set profile.dietary_preference vegetarian`,
		Args:    cobra.ExactArgs(2), //nolint:mnd // key and value
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if err = cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err = cfg.Save(a.configPath); err != nil {
				return err
			}
			cmd.Printf("%s = %s\n", args[0], args[1])
			return nil
		},
	}
}

func newConfigListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values := make(map[string]string, len(config.Keys()))
			for _, k := range config.Keys() {
				v, _ := a.cfg.Get(k)
				values[k] = v
			}
			if a.format != config.FormatTable {
				return writeJSON(cmd.OutOrStdout(), values)
			}
			for _, k := range config.Keys() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", k, values[k])
			}
			return nil
		},
	}
}

func newConfigValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.Validate(); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			cmd.Printf("Configuration is valid (%s)\n", a.configPath)
			if a.projectDir != "" {
				cmd.Printf("Project overlay: %s\n", filepath.Join(a.projectDir, "config.yaml"))
			}
			return nil
		},
	}
}
