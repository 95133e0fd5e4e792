package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"archiwum/cmd/archiwum/ui"
	"archiwum/internal/form"
	"archiwum/internal/logging"
	"archiwum/internal/value"
)

var listJSON bool

// listCmd prints every stored contract
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored repair contracts",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print contracts as a JSON array")
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	entries, err := db.List(cmd.Context())
	if err != nil {
		return err
	}
	logging.Get(logging.CategoryCLI).Info("list", zap.Int("entries", len(entries)))

	out := cmd.OutOrStdout()
	if listJSON {
		records := make([]value.Value, 0, len(entries))
		for _, e := range entries {
			v, err := form.ToValue(e.Contract)
			if err != nil {
				return fmt.Errorf("converting %s: %w", e.Name(), err)
			}
			records = append(records, v)
		}
		data, err := value.Array(records...).MarshalJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintf(out, "No contracts in %s\n", db.BaseDir())
		return nil
	}
	table := ui.NewSimpleTable(fmt.Sprintf("%d contracts in %s", len(entries), db.BaseDir()),
		[]string{"File", "Customer", "Phone", "Prognosis", "Description"})
	table.MaxCellWidth = 40
	for _, e := range entries {
		c := e.Contract
		table.AddRow(e.Name(), c.Info.Customer.Name, c.Info.Customer.Phone,
			c.Info.PrognosisPrice.StringFixed(2), strings.Join(c.Info.Description, "; "))
	}
	fmt.Fprint(out, table.View(ui.NewStyles(ui.ThemeFor(cfg.UI.Theme))))
	return nil
}
