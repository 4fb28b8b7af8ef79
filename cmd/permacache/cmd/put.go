package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put <key> <value>",
	Short: "Store a value under a key",
	Long: `Store a value under a key.

Example:
  permacache put mykey myvalue
  permacache put --flags 42 mykey myvalue`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		a, ok := appFromContext(cmd)
		if !ok {
			fmt.Println("Error: store not found in context")
			return
		}

		key := []byte(args[0])
		value := []byte(args[1])
		flags, _ := cmd.Flags().GetUint32("flags")

		alloc := a.items.Allocator()
		it, err := alloc.Allocate(key, flags, len(value)+2)
		if err != nil {
			fmt.Printf("Error building record: %v\n", err)
			return
		}
		defer alloc.Free(it)

		payload := it.Payload()
		copy(payload, value)
		payload[len(payload)-2] = '\r'
		payload[len(payload)-1] = '\n'

		if err := a.items.Put(key, it); err != nil {
			fmt.Printf("Error storing value: %v\n", err)
			return
		}
		fmt.Printf("Stored %s (%d bytes)\n", args[0], it.Size())
	},
}

func init() {
	rootCmd.AddCommand(putCmd)
	putCmd.Flags().Uint32("flags", 0, "Opaque client flags stored with the record")
}
