package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/provide-io/huffcrypt/pkg/envelope"
	"github.com/provide-io/huffcrypt/pkg/operations"
)

func (a *app) newSealCmd() *cobra.Command {
	var (
		in          inputFlags
		key         string
		transport   string
		compression string
		output      string
		mode        string
	)

	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Encode text into an envelope file",
		Long: `Seal encodes text and writes the ciphertext, code table and padding into a
compressed envelope file. The key is not stored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := in.readText(cmd)
			if err != nil {
				return err
			}
			codec, err := a.codec(transport)
			if err != nil {
				return err
			}

			comp := a.cfg.Compression
			if compression != "" {
				comp = compression
			}
			compID, err := operations.ParseOperation(comp)
			if err != nil {
				return err
			}

			res, err := codec.Encode(text, []byte(key))
			if err != nil {
				return err
			}
			data, err := envelope.Seal(res, compID)
			if err != nil {
				return err
			}

			a.logger.Info("🔒 Sealed envelope",
				"chain", operations.OperationsToString(res.Operations),
				"compression", operations.GetName(compID),
				"bytes", len(data),
			)
			return a.writeOutput(cmd, output, mode, data)
		},
	}

	in.register(cmd, "File to seal (default stdin)")
	cmd.Flags().StringVarP(&key, "key", "k", "", "XOR key (required)")
	cmd.Flags().StringVar(&transport, "transport", "", "Transport encoding (default from config)")
	cmd.Flags().StringVarP(&compression, "compression", "c", "", "Envelope compression (none, gzip, bzip2, zstd, lz4)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Envelope file (required)")
	cmd.Flags().StringVar(&mode, "mode", "", "Envelope file mode (default from config)")
	for _, name := range []string{"key", "output"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}

	return cmd
}

func (a *app) newOpenCmd() *cobra.Command {
	var (
		input string
		key   string
	)

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Decode an envelope file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, input)
			if err != nil {
				return err
			}
			env, err := envelope.Parse(data)
			if err != nil {
				return err
			}
			codec, err := a.codec("")
			if err != nil {
				return err
			}
			text, err := env.Open(codec, []byte(key))
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Envelope file (default stdin)")
	cmd.Flags().StringVarP(&key, "key", "k", "", "XOR key (required)")
	if err := cmd.MarkFlagRequired("key"); err != nil {
		panic(err)
	}

	return cmd
}

func (a *app) newVerifyCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check an envelope's framing, compression, body and digest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, input)
			if err != nil {
				return err
			}
			if err := envelope.Verify(data, a.logger); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "✓ envelope OK")
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Envelope file (default stdin)")

	return cmd
}

func (a *app) newInspectCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print an envelope summary and its body in CBOR diagnostic notation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, input)
			if err != nil {
				return err
			}
			diag, err := envelope.Diagnose(data)
			if err != nil {
				return err
			}
			env, err := envelope.Parse(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version:     %d\n", env.Version)
			fmt.Fprintf(out, "compression: %s\n", operations.GetName(env.Compression))
			fmt.Fprintf(out, "chain:       %s\n", operations.OperationsToString(env.Operations))
			fmt.Fprintf(out, "symbols:     %d\n", len(env.CodeTable))
			fmt.Fprintf(out, "padding:     %d\n", env.Padding)
			fmt.Fprintf(out, "ciphertext:  %d chars\n", len(env.Ciphertext))
			fmt.Fprintf(out, "digest:      %x\n", env.Digest)
			_, err = fmt.Fprintln(out, diag)
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Envelope file (default stdin)")

	return cmd
}
