package main

import (
	"io"
	"strconv"

	"github.com/mnehpets/jrpc/jsonrpc"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newCodesCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "codes",
		Short: "List the standard error codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "table" {
				return writeCodesTable(cmd.OutOrStdout())
			}
			return writeValue(cmd.OutOrStdout(), output, jsonrpc.StandardCodes())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "format: table, json or yaml")
	return cmd
}

func writeCodesTable(w io.Writer) error {
	var rows [][]string
	for _, ec := range jsonrpc.StandardCodes() {
		rows = append(rows, []string{strconv.Itoa(ec.Code), ec.Message})
	}
	table := tablewriter.NewTable(w)
	table.Header("Code", "Message")
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
