package cmd

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

// maintain command
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "generate a secp256k1 key pair for owners or quote signers",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := crypto.GenerateKey()
		if err != nil {
			return err
		}

		cmd.Println("private key:", hexutil.Encode(crypto.FromECDSA(key)))
		cmd.Println("public key:", hexutil.Encode(crypto.FromECDSAPub(&key.PublicKey)))
		cmd.Println("address:", crypto.PubkeyToAddress(key.PublicKey).Hex())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}
