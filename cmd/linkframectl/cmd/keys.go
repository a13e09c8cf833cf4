package cmd

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/barnettlynn/linkguard/internal/keystore/sqlstore"
)

var errKeyIDRequired = errors.New("key id argument is required")

func keysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage linkframe key material in the SQLite keystore",
	}

	cmd.AddCommand(keysGenerateCmd())
	cmd.AddCommand(keysRotateCmd())

	return cmd
}

// --- keys generate ---

func keysGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate <key-id>",
		Short: "Generate a new random 32-byte key under the given id",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			keyID, err := parseKeyID(args[0])
			if err != nil {
				return err
			}

			key := make([]byte, 32)
			if _, err := rand.Read(key); err != nil {
				return fmt.Errorf("generate key material: %w", err)
			}

			store, err := sqlstore.Open(keystorePath)
			if err != nil {
				return fmt.Errorf("open keystore: %w", err)
			}
			defer store.Close()

			if err := store.Put(keyID, key); err != nil {
				return fmt.Errorf("store key: %w", err)
			}

			slog.Info("generated key", "key_id", keyID, "keystore", keystorePath)
			fmt.Printf("key_id=%d generated in %s\n", keyID, keystorePath)
			return nil
		},
	}
}

// --- keys rotate ---

func keysRotateCmd() *cobra.Command {
	var newKeyID int64

	cmd := &cobra.Command{
		Use:   "rotate <old-key-id>",
		Short: "Replace a key with fresh random material under a new id",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			oldKeyID, err := parseKeyID(args[0])
			if err != nil {
				return err
			}
			if newKeyID < 0 {
				return fmt.Errorf("--new-id must be a non-negative key id")
			}

			key := make([]byte, 32)
			if _, err := rand.Read(key); err != nil {
				return fmt.Errorf("generate key material: %w", err)
			}

			store, err := sqlstore.Open(keystorePath)
			if err != nil {
				return fmt.Errorf("open keystore: %w", err)
			}
			defer store.Close()

			if err := store.Put(uint32(newKeyID), key); err != nil {
				return fmt.Errorf("store new key: %w", err)
			}
			if err := store.Delete(oldKeyID); err != nil {
				return fmt.Errorf("delete old key: %w", err)
			}

			slog.Info("rotated key", "old_key_id", oldKeyID, "new_key_id", newKeyID)
			fmt.Printf("rotated key_id=%d -> key_id=%d in %s\n", oldKeyID, newKeyID, keystorePath)
			return nil
		},
	}

	cmd.Flags().Int64Var(&newKeyID, "new-id", -1, "key id to assign the rotated key material (required)")
	_ = cmd.MarkFlagRequired("new-id")

	return cmd
}

func parseKeyID(arg string) (uint32, error) {
	if arg == "" {
		return 0, errKeyIDRequired
	}
	v, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid key id %q: %w", arg, err)
	}
	return uint32(v), nil
}
