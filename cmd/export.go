package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump tasks, habits, sessions and presets as JSON or YAML",
	Long: `Examples:
	prodhub export > backup.json
	prodhub export -f yaml -o backup.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := cur.renderer()
		if err != nil {
			return err
		}
		out, err := r.RenderExport(cur.state.Data())
		if err != nil {
			return err
		}
		if exportOut == "" {
			fmt.Print(out)
			return nil
		}
		if err := os.WriteFile(exportOut, []byte(out), 0o600); err != nil {
			return fmt.Errorf("write %s: %w", exportOut, err)
		}
		fmt.Printf("Exported to %s\n", exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Write to a file instead of stdout")
}
