package cmd

import (
	"net/http"

	"github.com/spf13/cobra"
)

var bankCmd = &cobra.Command{
	Use:   "bank <command>",
	Short: "asset balances and allowances",
}

var bankBalanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "show the balance of owner, and the allowance of --spender",
	RunE: func(cmd *cobra.Command, args []string) error {
		return callAPI(cmd, http.MethodGet, "/api/bank/balance", stringFlags(cmd, "asset", "owner", "spender"), nil)
	},
}

var bankApproveCmd = &cobra.Command{
	Use:   "approve",
	Short: "allow spender to pull amount of asset from the signer",
	RunE: func(cmd *cobra.Command, args []string) error {
		return callAPI(cmd, http.MethodPost, "/api/bank/approve", nil, stringFlags(cmd, "asset", "spender", "amount"))
	},
}

var bankDepositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "credit owner with funds received outside the node, multisig owners only",
	RunE: func(cmd *cobra.Command, args []string) error {
		return callAPI(cmd, http.MethodPost, "/api/bank/deposit", nil, stringFlags(cmd, "asset", "owner", "amount"))
	},
}

// stringFlags non empty string flags by name
func stringFlags(cmd *cobra.Command, names ...string) map[string]string {
	values := map[string]string{}
	for _, name := range names {
		if v, _ := cmd.Flags().GetString(name); v != "" {
			values[name] = v
		}
	}

	return values
}

func init() {
	rootCmd.AddCommand(bankCmd)
	bankCmd.AddCommand(bankBalanceCmd, bankApproveCmd, bankDepositCmd)
	apiFlags(bankBalanceCmd, bankApproveCmd, bankDepositCmd)

	bankBalanceCmd.Flags().String("asset", "", "asset address")
	bankBalanceCmd.Flags().String("owner", "", "owner address")
	bankBalanceCmd.Flags().String("spender", "", "spender address")

	bankApproveCmd.Flags().String("asset", "", "asset address")
	bankApproveCmd.Flags().String("spender", "", "spender address, usually a ledger")
	bankApproveCmd.Flags().String("amount", "", "allowance in base units")

	bankDepositCmd.Flags().String("asset", "", "asset address")
	bankDepositCmd.Flags().String("owner", "", "credited address")
	bankDepositCmd.Flags().String("amount", "", "amount in base units")
}
