package cmd

import (
	"encoding"
	"fmt"
	"net/http"

	"polka/core"
	"polka/core/proposal"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var multisigCmd = &cobra.Command{
	Use:     "multisig <command>",
	Aliases: []string{"ms"},
	Short:   "multisig transaction tooling",
}

var multisigEncodeCmd = &cobra.Command{
	Use:   "encode <action>",
	Short: "encode the payload of a call queued through the multisig",
	Long: `actions->
	addCurrency: --asset [--pool]
	removeCurrency: --asset
	addWhiteList: --consumer
	removeWhiteList: --consumer
	buyProductByNative: --product --signature
	buyProductByToken: --product --asset --payer --signature`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		action := core.ParseActionType(args[0])

		address := func(name string) (common.Address, error) {
			v, _ := cmd.Flags().GetString(name)
			if !common.IsHexAddress(v) {
				return common.Address{}, fmt.Errorf("invalid %s %q", name, v)
			}
			return common.HexToAddress(v), nil
		}

		bytes := func(name string) ([]byte, error) {
			v, _ := cmd.Flags().GetString(name)
			data, err := hexutil.Decode(v)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %w", name, err)
			}
			return data, nil
		}

		var (
			req encoding.BinaryMarshaler
			err error
		)

		switch action {
		case core.ActionTypeAddCurrency:
			r := proposal.AddCurrencyReq{}
			if r.Asset, err = address("asset"); err != nil {
				return err
			}
			if pool, _ := cmd.Flags().GetString("pool"); pool != "" {
				if r.Pool, err = address("pool"); err != nil {
					return err
				}
			}
			req = r
		case core.ActionTypeRemoveCurrency:
			r := proposal.RemoveCurrencyReq{}
			if r.Asset, err = address("asset"); err != nil {
				return err
			}
			req = r
		case core.ActionTypeAddWhiteList, core.ActionTypeRemoveWhiteList:
			r := proposal.WhiteListReq{}
			if r.Consumer, err = address("consumer"); err != nil {
				return err
			}
			req = r
		case core.ActionTypeBuyByNative:
			r := proposal.BuyByNativeReq{}
			if r.Product, err = bytes("product"); err != nil {
				return err
			}
			if r.Signature, err = bytes("signature"); err != nil {
				return err
			}
			req = r
		case core.ActionTypeBuyByToken:
			r := proposal.BuyByTokenReq{}
			if r.Product, err = bytes("product"); err != nil {
				return err
			}
			if r.Asset, err = address("asset"); err != nil {
				return err
			}
			if r.Payer, err = address("payer"); err != nil {
				return err
			}
			if r.Signature, err = bytes("signature"); err != nil {
				return err
			}
			req = r
		default:
			return fmt.Errorf("unknown action %q", args[0])
		}

		payload, err := proposal.EncodeCall(action, req)
		if err != nil {
			return err
		}

		cmd.Println(hexutil.Encode(payload))
		return nil
	},
}

var multisigSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "submit a call to the multisig as an owner",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, _ := cmd.Flags().GetString("target")
		if !common.IsHexAddress(target) {
			return fmt.Errorf("invalid target %q", target)
		}

		value, _ := cmd.Flags().GetString("value")
		payload, _ := cmd.Flags().GetString("payload")

		return callAPI(cmd, http.MethodPost, "/api/multisig/transactions", nil, map[string]string{
			"target":  target,
			"value":   value,
			"payload": payload,
		})
	},
}

var multisigConfirmCmd = &cobra.Command{
	Use:   "confirm <id>",
	Short: "confirm a multisig transaction, executing it once quorum is reached",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := cast.ToInt64E(args[0])
		if err != nil {
			return fmt.Errorf("invalid id: %w", err)
		}

		revokeOthers, _ := cmd.Flags().GetBool("revoke-others")
		path := fmt.Sprintf("/api/multisig/transactions/%d/confirm", id)
		return callAPI(cmd, http.MethodPost, path, nil, map[string]bool{"revoke_others": revokeOthers})
	},
}

// transactionActionCmd commands acting on a transaction by id only
func transactionActionCmd(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cast.ToInt64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid id: %w", err)
			}

			path := fmt.Sprintf("/api/multisig/transactions/%d/%s", id, action)
			return callAPI(cmd, http.MethodPost, path, nil, nil)
		},
	}
}

func init() {
	rootCmd.AddCommand(multisigCmd)

	revokeCmd := transactionActionCmd("revoke", "withdraw the confirmation of a pending transaction")
	executeCmd := transactionActionCmd("execute", "retry a quorum reached transaction whose call failed")
	multisigCmd.AddCommand(multisigSubmitCmd, multisigConfirmCmd, revokeCmd, executeCmd)
	apiFlags(multisigSubmitCmd, multisigConfirmCmd, revokeCmd, executeCmd)

	multisigSubmitCmd.Flags().String("target", "", "target address")
	multisigSubmitCmd.Flags().String("value", "", "native value forwarded to the target")
	multisigSubmitCmd.Flags().String("payload", "", "payload from multisig encode")
	multisigConfirmCmd.Flags().Bool("revoke-others", false, "withdraw the confirmations on other pending transactions")

	multisigCmd.AddCommand(multisigEncodeCmd)
	flags := multisigEncodeCmd.Flags()
	flags.String("asset", "", "asset address")
	flags.String("pool", "", "pinned pool address")
	flags.String("consumer", "", "oracle consumer address")
	flags.String("payer", "", "token payer address")
	flags.String("product", "", "product binary in hex")
	flags.String("signature", "", "quote signature in hex")
}
