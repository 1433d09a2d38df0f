package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/mnehpets/jrpc/codec"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// errInvalid is returned by verify for a packet with problems. The report
// has already been printed, so main only sets the exit status.
var errInvalid = errors.New("packet is invalid")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "jrpclint",
		Short:         "JSON-RPC 2.0 packet linter",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newServeCmd(),
		newVerifyCmd(),
		newErrorCmd(),
		newCodesCmd(),
	)
	return root
}

// writeValue prints v in the requested format followed by a newline.
func writeValue(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		b, err := codec.Encode(codec.MediaTypeJSON, v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (must be 'json' or 'yaml')", format)
	}
}
