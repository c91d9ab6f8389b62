package main

import (
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/provide-io/huffcrypt/internal/config"
	"github.com/provide-io/huffcrypt/pkg/logging"
	_ "github.com/provide-io/huffcrypt/pkg/operations/compress"
	_ "github.com/provide-io/huffcrypt/pkg/operations/encoding"
)

// app carries state shared by all subcommands of one invocation.
type app struct {
	configPath  string
	logLevel    string
	versionFlag bool

	cfg    *config.Config
	logger hclog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "huffcrypt",
		Short: "Huffman-compress, XOR and transport-encode text",
		Long: `huffcrypt compresses text with a Huffman code built from the text itself,
XORs the packed bits with a repeating key and renders the result as text.
The code table and padding travel with the ciphertext.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.versionFlag {
				printVersion(cmd.OutOrStdout())
				return nil
			}
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file (YAML or JSONC)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolVarP(&a.versionFlag, "version", "V", false, "Show version information")

	rootCmd.AddCommand(
		a.newEncodeCmd(),
		a.newDecodeCmd(),
		a.newSealCmd(),
		a.newOpenCmd(),
		a.newVerifyCmd(),
		a.newInspectCmd(),
		a.newCodesCmd(),
	)

	return rootCmd
}

// setup loads config and builds the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg
	a.logger = logging.NewLogger("huffcrypt", cfg.LogLevel, cfg.JSONLog, cmd.ErrOrStderr())

	if cfg.Source != "" {
		a.logger.Debug("⚙️ Loaded config", "path", cfg.Source)
	}
	return nil
}
