package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCartCmd(a *app) *cobra.Command {
	cartCmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and modify the session cart",
	}

	var quantity int
	addCmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := a.catalog.Product(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to look up product: %w", err)
			}

			a.manager.Add(product, quantity)
			fmt.Printf("Added %s x%d (%d items in cart, subtotal %s)\n",
				product.Name, a.manager.Quantity(product.ID),
				a.manager.ItemCount(), a.manager.Subtotal())
			return nil
		},
	}
	addCmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "quantity to add")

	rmCmd := &cobra.Command{
		Use:   "rm <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.manager.Remove(args[0])
			fmt.Printf("Removed %s (%d items in cart)\n", args[0], a.manager.ItemCount())
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set the quantity of a cart entry (0 removes it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var q int
			if _, err := fmt.Sscanf(args[1], "%d", &q); err != nil {
				return fmt.Errorf("quantity must be an integer: %w", err)
			}

			a.manager.SetQuantity(args[0], q)
			fmt.Printf("%d items in cart, subtotal %s\n", a.manager.ItemCount(), a.manager.Subtotal())
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.manager.Clear()
			fmt.Println("Cart cleared")
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the cart contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot := a.manager.Snapshot()
			if len(snapshot.Entries) == 0 {
				fmt.Println("Cart is empty")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PRODUCT\tNAME\tQTY\tUNIT\tTOTAL")
			for _, e := range snapshot.Entries {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
					e.Product.ID, e.Product.Name, e.Quantity, e.Product.Price, e.LineTotal())
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Printf("\n%d items, subtotal %s\n", snapshot.ItemCount(), snapshot.Subtotal())
			return nil
		},
	}

	cartCmd.AddCommand(addCmd, rmCmd, setCmd, clearCmd, showCmd)
	return cartCmd
}
