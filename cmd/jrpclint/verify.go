package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mnehpets/jrpc/codec"
	"github.com/mnehpets/jrpc/lint"
	"github.com/mnehpets/jrpc/schema"
	"github.com/spf13/cobra"
)

type verifyOptions struct {
	kind       string
	cbor       bool
	schemasDir string
	output     string
}

func newVerifyCmd() *cobra.Command {
	var opts verifyOptions
	cmd := &cobra.Command{
		Use:   "verify FILE",
		Short: "Check one packet read from FILE (\"-\" for stdin)",
		Long: `Check one packet read from FILE ("-" for stdin) and print a report.

The packet is decoded as JSON unless --cbor is given or FILE ends in .cbor.
The exit status is 1 when the packet has problems.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd.InOrStdin(), cmd.OutOrStdout(), args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.kind, "kind", "k", lint.KindAuto, "packet kind: request, notification, response or auto")
	cmd.Flags().BoolVar(&opts.cbor, "cbor", false, "decode FILE as CBOR")
	cmd.Flags().StringVarP(&opts.schemasDir, "schemas", "s", "", "directory of <method>.json params schemas")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "json", "report format: json or yaml")
	return cmd
}

func runVerify(stdin io.Reader, out io.Writer, file string, opts verifyOptions) error {
	var (
		b   []byte
		err error
	)
	if file == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(file)
	}
	if err != nil {
		return err
	}

	mediaType := codec.MediaTypeJSON
	if opts.cbor || strings.EqualFold(filepath.Ext(file), ".cbor") {
		mediaType = codec.MediaTypeCBOR
	}
	packet, err := codec.Decode(mediaType, b)
	if err != nil {
		return err
	}

	var schemas *schema.Registry
	if opts.schemasDir != "" {
		if schemas, err = schema.LoadDir(opts.schemasDir); err != nil {
			return err
		}
	}

	report, err := lint.Check(packet, opts.kind, schemas)
	if err != nil {
		return err
	}
	if err := writeValue(out, opts.output, report); err != nil {
		return err
	}
	if !report.Valid {
		return fmt.Errorf("%w: %d problem(s)", errInvalid, len(report.Problems))
	}
	return nil
}
