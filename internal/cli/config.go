package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gosmap/internal/configloader"
	"github.com/yaklabco/gosmap/pkg/config"
)

type configFlags struct {
	format string
	env    bool
}

func newConfigCommand() *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: `Print the configuration after merging defaults, config files and GOSMAP_*
environment variables. Use --debug to see which files were loaded.

Examples:
  gosmap config                  Resolved settings as YAML
  gosmap config --format toml    Resolved settings as TOML
  gosmap config --env            Supported environment variables`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or toml")
	cmd.Flags().BoolVar(&flags.env, "env", false, "List supported environment variables")

	return cmd
}

func runConfig(cmd *cobra.Command, flags *configFlags) error {
	out := cmd.OutOrStdout()

	if flags.env {
		_, err := fmt.Fprintln(out, strings.Join(configloader.ListEnvVars(), "\n"))
		return err
	}

	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	var data []byte
	switch config.Format(flags.format) {
	case config.FormatYAML:
		data, err = cfg.ToYAML()
	case config.FormatTOML:
		data, err = cfg.ToTOML()
	default:
		return fmt.Errorf("%w: invalid format %q: must be yaml or toml", ErrInvalidUsage, flags.format)
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	_, err = out.Write(data)
	return err
}
