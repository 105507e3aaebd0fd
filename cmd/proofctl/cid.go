package main

import (
	"fmt"

	"github.com/eueno-io/proofs-contract/internal/reporthash"
	"github.com/spf13/cobra"
)

var cidCmd = &cobra.Command{
	Use:   "cid <file>",
	Short: "Print report hash (IPFS CID) of the file",
	Long: `Print report hash (IPFS CID) of the file. It matches the CID printed by
'ipfs add --cid-version=1 --raw-leaves' for files up to 256 KiB, larger files
are rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := reporthash.FromFile(args[0])
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
		return err
	},
}
