package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bplusdb/bplustree"
	"bplusdb/linearstore"
)

var benchCmd = &cobra.Command{
	Use:   "bench <n>",
	Short: "Insert and search n keys in bplustree and linearstore and report the hit counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var n int
		if _, err := fmt.Sscanf(args[0], "%d", &n); err != nil || n <= 0 {
			return fmt.Errorf("n must be a positive integer")
		}

		tr := bplustree.New[int, int](32)
		for i := 0; i < n; i++ {
			tr.Insert(i, i)
		}
		found := 0
		for i := 0; i < n; i++ {
			if _, ok := tr.Search(i); ok {
				found++
			}
		}
		fmt.Printf("bplustree: inserted %d, found %d on search\n", n, found)

		st := linearstore.New[int, int]()
		for i := 0; i < n; i++ {
			st.Insert(i, i)
		}
		found = 0
		for i := 0; i < n; i++ {
			if _, ok := st.Search(i); ok {
				found++
			}
		}
		fmt.Printf("linearstore: inserted %d, found %d on search\n", n, found)
		fmt.Println("for timing comparisons run: go test -bench . ./bench")
		return nil
	},
}

func init() { rootCmd.AddCommand(benchCmd) }
