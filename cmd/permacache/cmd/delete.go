package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/permacache/permacache/pkg/store"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete the record stored under a key",
	Long: `Delete the record stored under a key. Deleting an absent key is
reported as such, not as a failure.

Example:
  permacache delete mykey`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, ok := appFromContext(cmd)
		if !ok {
			fmt.Println("Error: store not found in context")
			return
		}

		err := a.items.Delete([]byte(args[0]))
		switch {
		case err == nil:
			fmt.Printf("Deleted %s\n", args[0])
		case errors.Is(err, store.ErrNotFound):
			fmt.Printf("Key %s not found\n", args[0])
		default:
			fmt.Printf("Error deleting key: %v\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
