package envelope

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/hashicorp/go-hclog"

	hxerr "github.com/provide-io/huffcrypt/pkg/errors"
	"github.com/provide-io/huffcrypt/pkg/huffman"
	"github.com/provide-io/huffcrypt/pkg/operations"
)

// Verify checks every stage of a sealed file without the key and logs
// each result. It returns all failures joined together.
func Verify(data []byte, logger hclog.Logger) error {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	logger.Info("Verifying envelope integrity", "bytes", len(data))

	body, compression, err := readBody(data)
	if err != nil {
		logger.Error("✗ Header or body invalid", "error", err)
		return err
	}
	logger.Info("✓ Header valid", "compression", operations.GetName(compression))

	var env Envelope
	if err := decMode.Unmarshal(body, &env); err != nil {
		logger.Error("✗ CBOR body invalid", "error", err)
		return fmt.Errorf("decoding envelope: %w", err)
	}
	logger.Info("✓ CBOR body decoded", "version", env.Version)

	var errs []error
	check := func(stage string, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", stage, err))
			logger.Error("✗ "+stage+" failed", "error", err)
			return
		}
		logger.Info("✓ " + stage + " valid")
	}

	if env.Version != CurrentVersion {
		check("Version", fmt.Errorf("%w: %d", hxerr.ErrUnsupportedVersion, env.Version))
	} else {
		check("Version", nil)
	}
	check("Digest", env.verifyDigest())
	check("Code table", env.CodeTable.Validate())
	if int(env.Padding) > huffman.MaxPadding {
		check("Padding", fmt.Errorf("%w: %d", hxerr.ErrInvalidPadding, env.Padding))
	} else {
		check("Padding", nil)
	}
	check("Operation chain", verifyChain(env.Operations))

	if len(errs) == 0 {
		logger.Info("✓ Envelope verification passed",
			"chain", operations.OperationsToString(env.Operations),
			"symbols", len(env.CodeTable),
		)
		return nil
	}

	logger.Error("✗ Envelope verification failed", "error_count", len(errs))
	return errors.Join(errs...)
}

func verifyChain(packed uint64) error {
	chain := operations.UnpackOperations(packed)
	if len(chain) != 2 || chain[0] != operations.OP_XOR || !operations.IsTransportOp(chain[1]) {
		return fmt.Errorf("unsupported operation chain %q", operations.OperationsToString(packed))
	}
	if _, err := operations.Get(chain[1]); err != nil {
		return err
	}
	return nil
}

// Diagnose renders the decompressed body in CBOR diagnostic notation.
func Diagnose(data []byte) (string, error) {
	body, _, err := readBody(data)
	if err != nil {
		return "", err
	}
	return cbor.Diagnose(body)
}
