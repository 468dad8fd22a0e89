package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Togather-Foundation/topicdir/internal/auth"
	"github.com/Togather-Foundation/topicdir/internal/secrets"
)

func newAPIKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api-key",
		Short: "Manage the shared API key",
		Long: `Manage the shared API key required by the data endpoints.

Examples:
  # Print a new random key
  server api-key generate

  # Write a new key to the secrets directory read at startup
  server api-key generate --secrets-dir .secrets`,
	}

	var (
		secretsDir string
		force      bool
	)
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random API key",
		Long: `Generate a random 32-byte URL-safe API key.

Without --secrets-dir the key is printed. With it, the key is written to
<dir>/api-key where the server picks it up when API_KEY is unset.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := auth.GenerateKey()
			if err != nil {
				return err
			}
			if secretsDir == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), key)
				return err
			}
			path, err := writeSecret(secretsDir, secrets.APIKey, key, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "API key written to %s\n", path)
			return nil
		},
	}
	generate.Flags().StringVar(&secretsDir, "secrets-dir", "", "write the key to this secrets directory instead of printing it")
	generate.Flags().BoolVar(&force, "force", false, "overwrite an existing key file")

	cmd.AddCommand(generate)
	return cmd
}

// writeSecret stores value as dir/name with owner-only permissions.
func writeSecret(dir, name, value string, force bool) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create secrets directory: %w", err)
	}

	path := filepath.Join(dir, name)
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o600)
	if errors.Is(err, os.ErrExist) {
		return "", fmt.Errorf("%s already exists (use --force to replace it)", path)
	}
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := fmt.Fprintln(f, value); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, f.Close()
}
