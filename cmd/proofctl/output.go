package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/eueno-io/proofs-contract/internal/msg"
)

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printResult writes query or execution result in the selected format.
func printResult(w io.Writer, v any) error {
	if jsonOutput {
		return printJSON(w, v)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	switch r := v.(type) {
	case msg.ConfigResponse:
		fmt.Fprintf(tw, "Owner:\t%s\n", r.Owner)
		fmt.Fprintf(tw, "Base IPFS:\t%s\n", r.BaseIPFS)
	case msg.ProofResponse:
		created := time.Unix(int64(r.CreatedTime), 0).UTC()
		fmt.Fprintf(tw, "Created:\t%s (%d)\n", created.Format(time.RFC3339), r.CreatedTime)
		fmt.Fprintf(tw, "AI provider:\t%s\n", r.AIProvider)
		fmt.Fprintf(tw, "Report link:\t%s\n", r.ReportLink)
	case msg.Response:
		fmt.Fprintf(tw, "Transaction:\t%s\n", r.TxHash)
		for _, a := range r.Attributes {
			fmt.Fprintf(tw, "%s:\t%s\n", strings.ToUpper(a.Key[:1])+a.Key[1:], a.Value)
		}
	default:
		fmt.Fprintf(tw, "%v\n", v)
	}

	return tw.Flush()
}
