package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dinox/internal/config"
	"github.com/vovakirdan/dinox/internal/economy"
	"github.com/vovakirdan/dinox/internal/storage"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Inspect and use the shop",
	Long: `Spend coins without starting a run.

Examples:
  dinox shop list
  dinox shop buy-skin lava
  dinox shop buy-perk shield
  dinox shop use-skin classic
  dinox shop list --save second-slot`,
}

var shopListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the catalog, prices and what you own",
	Args:  cobra.NoArgs,
	Run: withEconomy(func(econ *economy.Store, _ []string) error {
		printShop(econ)
		return nil
	}),
}

var shopBuySkinCmd = &cobra.Command{
	Use:   "buy-skin <id>",
	Short: "Buy a skin, or wear it if already owned",
	Args:  cobra.ExactArgs(1),
	Run: withEconomy(func(econ *economy.Store, args []string) error {
		st, err := econ.PurchaseSkin(economy.SkinID(args[0]))
		if err != nil {
			return err
		}
		fmt.Printf("Wearing %s. Coins left: %d\n", args[0], st.Coins)
		return nil
	}),
}

var shopBuyPerkCmd = &cobra.Command{
	Use:   "buy-perk <id>",
	Short: "Buy a perk",
	Args:  cobra.ExactArgs(1),
	Run: withEconomy(func(econ *economy.Store, args []string) error {
		st, err := econ.PurchasePerk(economy.PerkID(args[0]))
		if err != nil {
			return err
		}
		fmt.Printf("%s unlocked. Coins left: %d\n", args[0], st.Coins)
		return nil
	}),
}

var shopUseSkinCmd = &cobra.Command{
	Use:   "use-skin <id>",
	Short: "Wear an owned skin",
	Args:  cobra.ExactArgs(1),
	Run: withEconomy(func(econ *economy.Store, args []string) error {
		if err := econ.SetActiveSkin(economy.SkinID(args[0])); err != nil {
			return err
		}
		fmt.Printf("Wearing %s\n", args[0])
		return nil
	}),
}

func init() {
	shopCmd.PersistentFlags().StringVar(&flagSaveKey, "save", economy.DefaultSaveKey, "Save slot for coins, skins and perks")
	shopCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")

	shopCmd.AddCommand(shopListCmd)
	shopCmd.AddCommand(shopBuySkinCmd)
	shopCmd.AddCommand(shopBuyPerkCmd)
	shopCmd.AddCommand(shopUseSkinCmd)
}

// withEconomy opens the save slot, runs fn and exits non-zero on failure.
func withEconomy(fn func(econ *economy.Store, args []string) error) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, args []string) {
		runnerCfg, err := config.Load(flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
			os.Exit(1)
		}

		logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "dinox"})
		econ := economy.NewStore(economy.Options{
			Key:       flagSaveKey,
			Persister: store,
			Catalog:   economy.NewCatalog(runnerCfg.Economy),
			Logger:    logger,
		})

		err = fn(econ, args)
		store.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", describeShopError(err))
			os.Exit(1)
		}
	}
}

// describeShopError turns economy errors into user-facing text.
func describeShopError(err error) string {
	switch {
	case errors.Is(err, economy.ErrInsufficientFunds):
		return "not enough coins"
	case errors.Is(err, economy.ErrUnknownSkin), errors.Is(err, economy.ErrUnknownOrUnownedSkin):
		return "no such skin (or you don't own it yet); see 'dinox shop list'"
	case errors.Is(err, economy.ErrUnknownPerk):
		return "no such perk; see 'dinox shop list'"
	}
	return err.Error()
}

// printShop writes the wallet and catalog.
func printShop(econ *economy.Store) {
	writeShop(os.Stdout, econ)
}

func writeShop(w io.Writer, econ *economy.Store) {
	st := econ.State()
	catalog := econ.Catalog()
	prices := econ.Prices()

	fmt.Fprintf(w, "Coins: %d   Best score: %d\n\n", st.Coins, st.BestScore)

	fmt.Fprintln(w, "Skins:")
	fmt.Fprintf(w, "  %-12s  %-16s  %-6s  %s\n", "ID", "Name", "Price", "Status")
	fmt.Fprintf(w, "  %-12s  %-16s  %-6s  %s\n", "--", "----", "-----", "------")
	for _, s := range catalog.Skins() {
		status := ""
		switch {
		case st.ActiveSkin == s.ID:
			status = "wearing"
		case st.Owns(s.ID):
			status = "owned"
		}
		fmt.Fprintf(w, "  %-12s  %-16s  %-6d  %s\n", s.ID, s.Name, prices.Skin, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Perks:")
	fmt.Fprintf(w, "  %-12s  %-6s  %-6s  %s\n", "ID", "Price", "Status", "Effect")
	fmt.Fprintf(w, "  %-12s  %-6s  %-6s  %s\n", "--", "-----", "------", "------")
	for _, p := range catalog.Perks() {
		status := ""
		if st.OwnedPerks.Has(p.ID) {
			status = "owned"
		}
		fmt.Fprintf(w, "  %-12s  %-6d  %-6s  %s\n", p.ID, p.Price, status, p.Description)
	}
}
