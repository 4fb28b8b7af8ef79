package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get the value stored under a key",
	Long: `Get the value stored under a key.

Example:
  permacache get mykey`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, ok := appFromContext(cmd)
		if !ok {
			fmt.Println("Error: store not found in context")
			return
		}

		it, err := a.items.Get([]byte(args[0]))
		if err != nil {
			fmt.Printf("Error getting value: %v\n", err)
			return
		}
		defer a.items.Allocator().Free(it)

		flags, _ := it.Flags()
		fmt.Printf("%s\n", it.Value())
		fmt.Printf("(flags: %d)\n", flags)
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
