package main

import (
	"strconv"

	"github.com/mnehpets/jrpc/jsonrpc"
	"github.com/spf13/cobra"
)

func newErrorCmd() *cobra.Command {
	var (
		id     int64
		output string
	)
	cmd := &cobra.Command{
		Use:   "error KEY",
		Short: "Print the error packet for a standard code or message",
		Long: `Print the error packet for a standard code or its exact message.

Negative codes must follow "--" so they are not read as flags.`,
		Example: `  jrpclint error -- -32601
  jrpclint error "Invalid params" --id 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key any = args[0]
			if code, err := strconv.Atoi(args[0]); err == nil {
				key = code
			}
			packet, err := jsonrpc.GenerateErrorPacket(key)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("id") {
				if packet, err = jsonrpc.WithID(packet, id); err != nil {
					return err
				}
			}
			return writeValue(cmd.OutOrStdout(), output, packet)
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "bind the packet to this request id")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "packet format: json or yaml")
	return cmd
}
