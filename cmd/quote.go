package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"polka/core"
	"polka/core/product"
	"polka/pkg/quote"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type signedProduct struct {
	Kind      string `json:"kind"`
	Digest    string `json:"digest"`
	Product   string `json:"product"`
	Signature string `json:"signature"`
	Signer    string `json:"signer,omitempty"`
}

var quoteCmd = &cobra.Command{
	Use:   "quote <command>",
	Short: "sign and fetch product quotes",
}

var quoteSignCmd = &cobra.Command{
	Use:   "sign <product json>",
	Short: "sign a product quote with the quote signer key",
	Long: `product json by kind->
	mso: {"name", "price_usd", "period", "concierge_price"}
	p4l: {"device", "brand", "value", "purch_month", "dur_plan"}
	cover: {"contract_address", "cover_asset", "sum_assured", "cover_period",
		"cover_type", "price", "price_in_nxm", "expires_at", "generated_at"}`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")
		p, err := product.New(core.ProductKind(kind))
		if err != nil {
			return err
		}

		if err := json.Unmarshal([]byte(args[0]), p); err != nil {
			return fmt.Errorf("decode product: %w", err)
		}

		keyHex, _ := cmd.Flags().GetString("key")
		key, err := crypto.HexToECDSA(trimHex(keyHex))
		if err != nil {
			return fmt.Errorf("invalid key: %w", err)
		}

		sig, err := quote.Sign(p.Digest(), key)
		if err != nil {
			return err
		}

		data, err := p.MarshalBinary()
		if err != nil {
			return err
		}

		printFields(cmd, signedProduct{
			Kind:      kind,
			Digest:    p.Digest().Hex(),
			Product:   hexutil.Encode(data),
			Signature: hexutil.Encode(sig),
			Signer:    crypto.PubkeyToAddress(key.PublicKey).Hex(),
		})
		return nil
	},
}

var quoteFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "fetch a signed cover quote from the cover quote service",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		amount, _ := cmd.Flags().GetString("amount")
		coverAmount, err := decimal.NewFromString(amount)
		if err != nil || !coverAmount.IsPositive() {
			return errors.New("amount must be a positive number")
		}

		currency, _ := cmd.Flags().GetString("currency")
		period, _ := cmd.Flags().GetInt64("period")
		contract, _ := cmd.Flags().GetString("contract")
		if !common.IsHexAddress(contract) {
			return fmt.Errorf("invalid contract %q", contract)
		}

		asset, _ := cmd.Flags().GetString("asset")
		if !common.IsHexAddress(asset) {
			return fmt.Errorf("invalid cover asset %q", asset)
		}

		coverType, _ := cmd.Flags().GetUint8("type")

		q, err := provideQuoteService().FetchCoverQuote(ctx, core.CoverQuoteRequest{
			CoverAmount:     coverAmount,
			Currency:        currency,
			Period:          period,
			ContractAddress: contract,
		})
		if err != nil {
			return err
		}

		sumAssured, ok := new(big.Int).SetString(q.Amount, 10)
		if !ok {
			sumAssured = coverAmount.Truncate(0).BigInt()
		}

		cover, sig, err := product.CoverFromQuote(q, common.HexToAddress(asset), sumAssured, coverType)
		if err != nil {
			return err
		}

		data, err := cover.MarshalBinary()
		if err != nil {
			return err
		}

		printFields(cmd, signedProduct{
			Kind:      core.ProductKindCover.String(),
			Digest:    cover.Digest().Hex(),
			Product:   hexutil.Encode(data),
			Signature: hexutil.Encode(sig),
		})
		return nil
	},
}

func trimHex(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}

	return s
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.AddCommand(quoteSignCmd)
	quoteSignCmd.Flags().String("kind", core.ProductKindMSO.String(), "product kind, mso, p4l or cover")
	quoteSignCmd.Flags().String("key", "", "quote signer private key in hex")
	_ = quoteSignCmd.MarkFlagRequired("key")

	quoteCmd.AddCommand(quoteFetchCmd)
	quoteFetchCmd.Flags().String("amount", "", "cover amount")
	quoteFetchCmd.Flags().String("currency", "ETH", "cover currency")
	quoteFetchCmd.Flags().Int64("period", 365, "cover period in days")
	quoteFetchCmd.Flags().String("contract", "", "covered contract address")
	quoteFetchCmd.Flags().String("asset", "", "cover asset address")
	quoteFetchCmd.Flags().Uint8("type", 0, "cover type")
}
