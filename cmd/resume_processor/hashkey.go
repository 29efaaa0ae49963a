package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-processor/internal/config"
)

var hashKeyCmd = &cobra.Command{
	Use:   "hash-key <key>",
	Short: "Hash an admin key for ADMIN_KEY_HASH",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		hash, err := config.HashKey(args[0])
		if err != nil {
			return err
		}
		fmt.Println(hash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashKeyCmd)
}
