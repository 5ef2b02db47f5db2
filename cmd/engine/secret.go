package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"leadscout-engine/internal/secrets"
)

func newSecretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage the inference API token in the OS keychain",
	}

	set := &cobra.Command{
		Use:   "set <account> <token>",
		Short: "Store the inference API token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := secrets.SetInferenceToken(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("stored token for %s (set inference.keyring_account: %q in config.yml)\n", args[0], args[0])
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm <account>",
		Short: "Delete the stored inference API token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return secrets.DeleteInferenceToken(args[0])
		},
	}

	cmd.AddCommand(set, rm)
	return cmd
}
