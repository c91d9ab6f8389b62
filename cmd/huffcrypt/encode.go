package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/provide-io/huffcrypt/pkg/operations"
	"github.com/provide-io/huffcrypt/pkg/pipeline"
)

// codec builds a pipeline codec for the named transport, falling back to
// the configured one.
func (a *app) codec(transport string) (*pipeline.Codec, error) {
	if transport == "" {
		transport = a.cfg.Transport
	}
	id, err := operations.ParseOperation(transport)
	if err != nil {
		return nil, err
	}
	return pipeline.New(pipeline.WithTransport(id), pipeline.WithLogger(a.logger))
}

func (a *app) newEncodeCmd() *cobra.Command {
	var (
		in        inputFlags
		key       string
		transport string
		output    string
		mode      string
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode text and print the result as JSON",
		Long: `Encode text and print {"encoded_data","key","huffman_codes","padding"}.
The output contains the key; files are written with the configured mode.`,
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
			res, err := codec.HandleEncode(&pipeline.EncodeRequest{Text: text, Key: key})
			if err != nil {
				return err
			}
			return a.writeJSON(cmd, output, mode, res)
		},
	}

	in.register(cmd, "File to encode (default stdin)")
	cmd.Flags().StringVarP(&key, "key", "k", "", "XOR key (required)")
	cmd.Flags().StringVar(&transport, "transport", "", "Transport encoding (base64, base64-url, base32, hex)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&mode, "mode", "", "Output file mode (default from config)")
	if err := cmd.MarkFlagRequired("key"); err != nil {
		panic(err)
	}

	return cmd
}

func (a *app) newDecodeCmd() *cobra.Command {
	var (
		input    string
		key      string
		jsonFlag bool
	)

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode the JSON produced by encode",
		Long: `Decode reads {"encoded_data","key","huffman_codes","padding"} and prints the
text. --key overrides the key stored in the input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, input)
			if err != nil {
				return err
			}
			var req pipeline.Result
			if err := json.Unmarshal(data, &req); err != nil {
				return fmt.Errorf("parsing encode result: %w", err)
			}

			codec, err := a.codec("")
			if err != nil {
				return err
			}
			resp, err := codec.HandleDecode(&req, []byte(key))
			if err != nil {
				return err
			}

			if jsonFlag {
				return a.writeJSON(cmd, "", "", resp)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), resp.DecodedText)
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Encode result JSON (default stdin)")
	cmd.Flags().StringVarP(&key, "key", "k", "", "XOR key (default: key in input)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, `Print {"decoded_text": ...}`)

	return cmd
}
