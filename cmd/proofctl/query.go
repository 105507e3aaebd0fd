package main

import (
	"github.com/eueno-io/proofs-contract/internal/msg"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show registry configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, msg.ConfigQuery{})
	},
}

var proofCmd = &cobra.Command{
	Use:   "proof <report-hash>",
	Short: "Show proof of the report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, msg.ProofQuery{ReportHash: args[0]})
	},
}

var queryCmd = &cobra.Command{
	Use:   "query <json>",
	Short: "Send raw query message",
	Long: `Send raw query message, e.g.:

  proofctl query '{"config":{}}'
  proofctl query '{"proof":{"report_hash":"Qm..."}}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := msg.UnmarshalQuery([]byte(args[0]))
		if err != nil {
			return err
		}
		return runQuery(cmd, m)
	},
}

func runQuery(cmd *cobra.Command, m msg.QueryMsg) error {
	b, err := dialBlockchain(cmd.Context(), cfg, false)
	if err != nil {
		return err
	}
	defer b.close()

	r, err := b.registry(cfg, log)
	if err != nil {
		return err
	}

	res, err := r.Query(m)
	if err != nil {
		return err
	}

	return printResult(cmd.OutOrStdout(), res)
}
