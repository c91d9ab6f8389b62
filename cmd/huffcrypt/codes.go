package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/provide-io/huffcrypt/pkg/huffman"
)

func (a *app) newCodesCmd() *cobra.Command {
	var in inputFlags

	cmd := &cobra.Command{
		Use:   "codes",
		Short: "Print the Huffman code table for text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := in.readText(cmd)
			if err != nil {
				return err
			}

			freqs := huffman.CountFrequencies(text)
			table := huffman.GenerateCodes(huffman.BuildTree(freqs))
			payload, err := huffman.Pack(text, table)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-10s %8s  %s\n", "SYMBOL", "FREQ", "CODE")
			for _, e := range table.Entries() {
				fmt.Fprintf(out, "%-10s %8d  %s\n", strconv.QuoteRune(e.Symbol), freqs[e.Symbol], e.Code)
			}
			_, err = fmt.Fprintf(out, "\n%d symbols, %d bits, %d bytes, padding %d\n",
				len(table), payload.Bits(), len(payload.Bytes), payload.Padding)
			return err
		},
	}

	in.register(cmd, "File to analyze (default stdin)")

	return cmd
}
