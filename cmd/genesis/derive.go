package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"ledger-core/chaincfg"
	"ledger-core/config"
	"ledger-core/crypto"
)

func newDeriveCmd(cfg *config.Config) *cobra.Command {
	var (
		mnemonic string
		count    int
	)

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derives funding key hashes from a BIP39 mnemonic",
		Long: "Derives funding keys along m/44'/coin'/account'/0/i.  Without\n" +
			"--mnemonic a new 24-word mnemonic is generated and printed first.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := chaincfg.ParamsForNetwork(cfg.Network)
			if err != nil {
				return err
			}

			coinType, err := crypto.HardenedIndex(cfg.CoinType)
			if err != nil {
				return fmt.Errorf("coin type: %w", err)
			}
			account, err := crypto.HardenedIndex(cfg.Account)
			if err != nil {
				return fmt.Errorf("account: %w", err)
			}

			w := cmd.OutOrStdout()
			if mnemonic == "" {
				if mnemonic, err = crypto.GenerateMnemonic(); err != nil {
					return err
				}
				fmt.Fprintf(w, "mnemonic: %s\n", mnemonic)
			}

			keys, err := crypto.DeriveFundingKeys(mnemonic, coinType, account, count)
			if err != nil {
				return err
			}

			for _, key := range keys {
				addr, err := key.PubKeyHash.Address(params.Bech32HRP)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s  %s  %s  %s\n", key.Path, hex.EncodeToString(key.PubKey), key.PubKeyHash, addr)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&mnemonic, "mnemonic", "m", "", "BIP39 mnemonic")
	cmd.Flags().IntVarP(&count, "count", "c", 1, "Number of keys to derive")
	cmd.Flags().IntVar(&cfg.CoinType, "coin-type", cfg.CoinType, "BIP44 coin type")
	cmd.Flags().IntVar(&cfg.Account, "account", cfg.Account, "BIP44 account")
	return cmd
}
