package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Hemanth040/farm-management-system/internal/credential"
)

func init() {
	credentialsCmd.AddCommand(credentialsSetCmd, credentialsDeleteCmd)
	rootCmd.AddCommand(credentialsCmd)
}

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Manage delivery-channel secrets in the system keyring",
	Long: "Manage delivery-channel secrets in the system keyring.\n\n" +
		"Valid keys: " + strings.Join(credential.ValidKeys(), ", "),
}

var credentialsSetCmd = &cobra.Command{
	Use:   "set <key>",
	Short: "Store a secret (read from stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if err := validCredentialKey(key); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Value for %s: ", key)
		reader := bufio.NewReader(os.Stdin)
		value, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading value: %w", err)
		}
		value = strings.TrimRight(value, "\r\n")
		if value == "" {
			return fmt.Errorf("empty value")
		}

		if err := credential.Set(key, value); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %s.\n", key)
		return nil
	},
}

var credentialsDeleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Remove a secret",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if err := validCredentialKey(key); err != nil {
			return err
		}
		if err := credential.Delete(key); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", key)
		return nil
	},
}

func validCredentialKey(key string) error {
	for _, k := range credential.ValidKeys() {
		if k == key {
			return nil
		}
	}
	return fmt.Errorf("unknown key %q (valid: %s)", key, strings.Join(credential.ValidKeys(), ", "))
}
