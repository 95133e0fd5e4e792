package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"archiwum/cmd/archiwum/app"
	"archiwum/cmd/archiwum/ui"
	"archiwum/internal/form"
	"archiwum/internal/store"
)

var showJSON bool

// showCmd prints one contract field by field
var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Show one stored contract",
	Long: `Prints every field of a contract with its path, e.g. $.info.customer.name.
The file is looked up in the archive directory unless it exists as given.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the contract as JSON")
}

func runShow(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !filepath.IsAbs(path) {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		path = filepath.Join(db.BaseDir(), path)
	}

	entry, err := store.ReadEntry(path)
	if err != nil {
		return err
	}
	v, err := form.ToValue(entry.Contract)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if showJSON {
		data, err := v.MarshalJSON()
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return err
		}
		fmt.Fprintln(out, buf.String())
		return nil
	}

	table := ui.NewSimpleTable(entry.Name(), []string{"Field", "Value"})
	for _, f := range app.Fields(v) {
		table.AddRow(f.Path, f.Text)
	}
	fmt.Fprint(out, table.View(ui.NewStyles(ui.ThemeFor(cfg.UI.Theme))))
	if c := entry.Contract; c.FinalProtocol != nil {
		fmt.Fprintf(out, "Total of repairs and parts: %s\n", c.FinalProtocol.Total().StringFixed(2))
	}
	return nil
}
