package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
)

func newInitCmd() *cobra.Command {
	var (
		user  bool
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		Long: `Write the default configuration to .relnotes.yml in the current directory,
or to the user config file with --user. An existing file is kept unless --force is given.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := initConfigPath(user)
			if err != nil {
				return err
			}
			_, err = initializeConfig(cmd.OutOrStdout(), path, force)
			return err
		},
	}
	cmd.Flags().BoolVar(&user, "user", false, "Write the user-level config instead of the project config")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	return cmd
}

func initConfigPath(user bool) (string, error) {
	if !user {
		return config.ProjectConfigCandidates[0], nil
	}
	path, err := config.UserConfigPath()
	if err != nil {
		return "", clierrors.WrapWithMessage(err, clierrors.Configuration, "cannot locate the user config directory")
	}
	return path, nil
}

// initializeConfig writes the default template to path. It reports whether a
// file was written.
func initializeConfig(out io.Writer, path string, force bool) (bool, error) {
	green := color.New(color.FgGreen).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	_, statErr := os.Stat(path)
	exists := statErr == nil
	if exists && !force {
		fmt.Fprintf(out, "%s Config exists at %s (use --force to overwrite)\n", green("✓"), dim(path))
		return false, nil
	}

	if err := writeDefaultConfig(path); err != nil {
		return false, clierrors.WrapWithMessage(err, clierrors.Runtime, "failed to write config")
	}

	verb := "created"
	if exists {
		verb = "overwritten"
	}
	fmt.Fprintf(out, "%s Config %s at %s\n", green("✓"), verb, dim(path))
	return true, nil
}

// writeDefaultConfig writes the default configuration to the given path
func writeDefaultConfig(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	return os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644)
}
