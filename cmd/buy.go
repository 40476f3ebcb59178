package cmd

import (
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

var buyCmd = &cobra.Command{
	Use:   "buy <ledger address>",
	Short: "buy a signed product, with native --value or an approved --asset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !common.IsHexAddress(args[0]) {
			return fmt.Errorf("invalid ledger %q", args[0])
		}

		path := fmt.Sprintf("/api/ledgers/%s/buy", common.HexToAddress(args[0]).Hex())
		return callAPI(cmd, http.MethodPost, path, nil, stringFlags(cmd, "product", "signature", "value", "asset"))
	},
}

func init() {
	rootCmd.AddCommand(buyCmd)
	apiFlags(buyCmd)

	flags := buyCmd.Flags()
	flags.String("product", "", "product binary in hex, from quote sign or quote fetch")
	flags.String("signature", "", "quote signature in hex")
	flags.String("value", "", "native value attached in base units")
	flags.String("asset", "", "registered asset paying for the product")
}
