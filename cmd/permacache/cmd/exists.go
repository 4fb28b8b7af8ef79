package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// existsCmd represents the exists command
var existsCmd = &cobra.Command{
	Use:   "exists <key>",
	Short: "Check whether a key is stored",
	Long: `Check whether a key is stored, without transferring the value.

Example:
  permacache exists mykey`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, ok := appFromContext(cmd)
		if !ok {
			fmt.Println("Error: store not found in context")
			return
		}

		exists, err := a.items.Exists([]byte(args[0]))
		if err != nil {
			fmt.Printf("Error checking key: %v\n", err)
			return
		}
		if exists {
			fmt.Printf("%s exists\n", args[0])
		} else {
			fmt.Printf("%s not found\n", args[0])
		}
	},
}

func init() {
	rootCmd.AddCommand(existsCmd)
}
