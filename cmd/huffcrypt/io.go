package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/provide-io/huffcrypt/pkg/utils/permissions"
)

// inputFlags selects where plaintext comes from.
type inputFlags struct {
	text  string
	input string
}

func (f *inputFlags) register(cmd *cobra.Command, inputHelp string) {
	cmd.Flags().StringVarP(&f.text, "text", "t", "", "Text to process")
	cmd.Flags().StringVarP(&f.input, "input", "i", "", inputHelp)
}

// readText returns --text if set, otherwise the contents of --input.
func (f *inputFlags) readText(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("text") {
		return f.text, nil
	}
	data, err := readInput(cmd, f.input)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// readInput reads path, or stdin when path is empty or "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// writeOutput writes data to path with the configured file mode, or to
// stdout when path is empty or "-".
func (a *app) writeOutput(cmd *cobra.Command, path, modeFlag string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	modeStr := a.cfg.FileMode
	if modeFlag != "" {
		modeStr = modeFlag
	}
	mode, err := permissions.FileMode(modeStr)
	if err != nil {
		return err
	}
	if permissions.IsGroupOrWorldReadable(uint16(mode.Perm())) {
		a.logger.Warn("⚠️ Output is readable by other users", "path", path, "mode", permissions.FormatOctal(uint16(mode.Perm())))
	}

	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	a.logger.Debug("💾 Wrote output", "path", path, "bytes", len(data), "mode", permissions.FormatOctal(uint16(mode.Perm())))
	return nil
}

func (a *app) writeJSON(cmd *cobra.Command, path, modeFlag string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return a.writeOutput(cmd, path, modeFlag, append(data, '\n'))
}
