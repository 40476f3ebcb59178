package cmd

import (
	"sort"

	"github.com/spf13/cobra"
	"github.com/yiplee/structs"
)

// printFields print struct fields by their json names, one per line
func printFields(cmd *cobra.Command, v interface{}) {
	fields := structs.Map(v)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		cmd.Printf("%s: %v\n", k, fields[k])
	}
}
