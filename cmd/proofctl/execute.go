package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/eueno-io/proofs-contract/internal/msg"
	"github.com/eueno-io/proofs-contract/internal/reporthash"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var updateConfigCmd = &cobra.Command{
	Use:   "update-config",
	Short: "Transfer registry ownership and/or change base IPFS link",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, _ := cmd.Flags().GetString("owner")
		if owner == "" {
			return errors.New("missing --owner")
		}

		m := msg.UpdateConfig{Owner: owner}
		if cmd.Flags().Changed("base-ipfs") {
			base, _ := cmd.Flags().GetString("base-ipfs")
			m.BaseIPFS = &base
		}

		return runExecute(cmd, m)
	},
}

var updateProofCmd = &cobra.Command{
	Use:   "update-proof [report-hash]",
	Short: "Register proof of the AI report",
	Long: `Register proof of the AI report. Report hash is either passed as an
argument or derived from the report file given with --file. Files are hashed
like 'ipfs add --cid-version=1 --raw-leaves' and must not exceed 256 KiB.
Stored proof is printed after the registration.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, _ := cmd.Flags().GetString("provider")
		file, _ := cmd.Flags().GetString("file")

		hash, err := reportHashFromArgs(args, file)
		if err != nil {
			return err
		}

		if err := reporthash.Check(hash); err != nil {
			log.Warn("report hash is not an IPFS CID, report link won't resolve",
				zap.String("hash", hash), zap.Error(err))
		}

		return runExecute(cmd, msg.UpdateProof{ReportHash: hash, AIProvider: provider})
	},
}

var executeCmd = &cobra.Command{
	Use:   "execute <json>",
	Short: "Send raw execute message",
	Long: `Send raw execute message, e.g.:

  proofctl execute '{"update_proof":{"report_hash":"Qm...","ai_provider":"Oraichain"}}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := msg.UnmarshalExecute([]byte(args[0]))
		if err != nil {
			return err
		}
		return runExecute(cmd, m)
	},
}

func init() {
	updateConfigCmd.Flags().String("owner", "", "new owner address")
	updateConfigCmd.Flags().String("base-ipfs", "", "new base IPFS link (kept if not set)")

	updateProofCmd.Flags().String("provider", "Oraichain", "AI provider name")
	updateProofCmd.Flags().String("file", "", "report file to derive the hash from")
}

func reportHashFromArgs(args []string, file string) (string, error) {
	switch {
	case len(args) == 1 && file != "":
		return "", errors.New("report hash and --file are mutually exclusive")
	case len(args) == 1:
		return args[0], nil
	case file != "":
		return reporthash.FromFile(file)
	default:
		return "", errors.New("missing report hash or --file")
	}
}

func runExecute(cmd *cobra.Command, m msg.ExecuteMsg) error {
	b, err := dialBlockchain(cmd.Context(), cfg, true)
	if err != nil {
		return err
	}
	defer b.close()

	r, err := b.registry(cfg, log)
	if err != nil {
		return err
	}

	return executeAndReport(cmd.OutOrStdout(), r, m)
}

type executor interface {
	Execute(msg.ExecuteMsg) (msg.Response, error)
	Proof(reportHash string) (msg.ProofResponse, error)
}

// proofReport is an acknowledgment of the registered proof with the stored
// record.
type proofReport struct {
	msg.Response
	Proof msg.ProofResponse `json:"proof"`
}

// executeAndReport executes m and prints the result. Registered proofs are
// read back from the contract and printed too.
func executeAndReport(w io.Writer, r executor, m msg.ExecuteMsg) error {
	res, err := r.Execute(m)
	if err != nil {
		return err
	}

	up, ok := m.(msg.UpdateProof)
	if !ok {
		return printResult(w, res)
	}

	p, err := r.Proof(up.ReportHash)
	if err != nil {
		return fmt.Errorf("read registered proof (tx %s): %w", res.TxHash, err)
	}

	if jsonOutput {
		return printJSON(w, proofReport{Response: res, Proof: p})
	}

	if err := printResult(w, res); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return printResult(w, p)
}
