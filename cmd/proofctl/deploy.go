package main

import (
	"context"
	"fmt"

	"github.com/eueno-io/proofs-contract/contracts"
	"github.com/eueno-io/proofs-contract/deploy"
	"github.com/eueno-io/proofs-contract/internal/config"
	"github.com/eueno-io/proofs-contract/internal/msg"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/spf13/cobra"
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy or update the proofs contract",
	Long: `Deploy the proofs contract compiled into the contract directory, or update
the already deployed one if it differs. The signing account becomes the owner
of a newly deployed contract. Pass the address of the deployed contract via
--contract (or configuration) to update it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
			cfg.ContractDir = dir
		}
		if cmd.Flags().Changed("base-ipfs") {
			cfg.BaseIPFS, _ = cmd.Flags().GetString("base-ipfs")
		}

		c, err := contracts.ReadDir(cfg.ContractDir)
		if err != nil {
			return err
		}

		known, err := deployedContract(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		b, err := dialBlockchain(ctx, cfg, true)
		if err != nil {
			return err
		}
		defer b.close()

		var inst msg.InstantiateMsg
		if cfg.BaseIPFS != "" {
			inst.BaseIPFS = &cfg.BaseIPFS
		}

		addr, err := deploy.Deploy(ctx, deploy.Prm{
			Logger:       log,
			Blockchain:   b.rpc,
			LocalAccount: b.account,
			Address:      known,
			Contract:     c,
			Instantiate:  inst,
		})
		if err != nil {
			return fmt.Errorf("deploy: %w", err)
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", address.Uint160ToString(addr), addr.StringLE())
		return err
	},
}

// deployedContract returns configured contract address, zero if the contract
// is yet to be deployed.
func deployedContract(c *config.Config) (util.Uint160, error) {
	if c.Contract == "" {
		return util.Uint160{}, nil
	}
	return parseContract(c.Contract)
}

func init() {
	deployCmd.Flags().String("dir", "", "directory with contract.nef and manifest.json (default from config)")
	deployCmd.Flags().String("base-ipfs", "", "initial base IPFS link (contract default if not set)")
}
