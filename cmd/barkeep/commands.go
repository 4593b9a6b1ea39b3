package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"barkeep/internal/inventory"
	"barkeep/internal/store"
)

var (
	addKind  string
	addRank  float64
	addQty   float64
	addUnit  string
	addNotes string
)

var addCmd = &cobra.Command{
	Use:   "add [label]",
	Short: "Add or update an inventory item",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.New(cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		label := strings.Join(args, " ")
		it := store.Item{
			Kind:     addKind,
			Label:    label,
			Quantity: addQty,
			Unit:     addUnit,
			Notes:    addNotes,
		}
		if cmd.Flags().Changed("rank") {
			it.Rank = inventory.RankOf(addRank)
		}

		// Same label within a kind updates in place.
		if existing, err := st.GetByLabel(addKind, label); err == nil {
			it.ID = existing.ID
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if it.ID == "" {
			it.ID = uuid.NewString()
		}

		if err := st.Save(it); err != nil {
			return err
		}
		logger.Info("item saved",
			zap.String("id", it.ID),
			zap.String("kind", it.Kind),
			zap.String("label", it.Label))
		fmt.Printf("%s %s (%s)\n", it.Kind, it.Label, it.ID)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list [kind]",
	Short: "List inventory items",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.New(cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		kinds := store.Kinds
		if len(args) == 1 {
			if !store.ValidKind(args[0]) {
				return fmt.Errorf("unknown kind %q (want one of %s)", args[0], strings.Join(store.Kinds, ", "))
			}
			kinds = []string{args[0]}
		}

		for _, kind := range kinds {
			items, err := st.List(kind)
			if err != nil {
				return err
			}
			// Same order the TUI shows: the canonical ranking policy.
			var coll inventory.Collection
			records := make([]inventory.Record, 0, len(items))
			for _, it := range items {
				records = append(records, it.Record())
			}
			coll.ReplaceAll(records)

			fmt.Printf("%s:\n", kind)
			for _, rec := range coll.All() {
				it := rec.Payload.(store.Item)
				rank := "-"
				if it.Rank != nil {
					rank = fmt.Sprintf("%g", *it.Rank)
				}
				fmt.Printf("  %-36s  %-24s  rank=%-4s", it.ID, it.Label, rank)
				if it.Kind == store.KindCounter {
					fmt.Printf("  %g %s", it.Quantity, it.Unit)
				}
				fmt.Println()
			}
		}
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Remove an inventory item by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.New(cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		if _, err := st.Get(args[0]); errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "no item with id %s\n", args[0])
			return nil
		} else if err != nil {
			return err
		}
		if err := st.Delete(args[0]); err != nil {
			return err
		}
		logger.Info("item removed", zap.String("id", args[0]))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Import a CSV file, or every CSV in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.New(cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}
		var n int
		if info.IsDir() {
			n, err = store.ImportDir(st, args[0])
		} else {
			n, err = store.ImportCSV(st, args[0])
		}
		if err != nil {
			return err
		}
		logger.Info("import complete", zap.String("path", args[0]), zap.Int("rows", n))
		fmt.Printf("imported %d rows\n", n)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addKind, "kind", store.KindCounter, "item kind: area, location or counter")
	addCmd.Flags().Float64Var(&addRank, "rank", 0, "explicit sort rank (unranked items sort last)")
	addCmd.Flags().Float64Var(&addQty, "qty", 0, "quantity on hand")
	addCmd.Flags().StringVar(&addUnit, "unit", "", "unit of measure")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "markdown notes")
}
