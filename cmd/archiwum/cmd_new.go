package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"archiwum/internal/contract"
	"archiwum/internal/logging"
)

type newFlags struct {
	name        string
	taxNumber   string
	phone       string
	date        string
	price       string
	days        int64
	notes       string
	description []string
	damages     []string
}

var newOpts newFlags

// newCmd stores a contract built from flags
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a repair contract from flags",
	Long: `Creates a repair contract without the interactive form.

Example:
  archiwum new --name "Jan Kowalski" --phone 600100200 \
    --description "cracked screen" --price 250 --days 3`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

func init() {
	f := newCmd.Flags()
	f.StringVar(&newOpts.name, "name", "", "Customer name")
	f.StringVar(&newOpts.taxNumber, "tax-number", "", "Customer tax number (makes the customer a company)")
	f.StringVar(&newOpts.phone, "phone", "", "Customer phone")
	f.StringVar(&newOpts.date, "date", "", "Contract date as YYYY-MM-DDThh:mm:ss (default: now)")
	f.StringVar(&newOpts.price, "price", "0", "Prognosis price")
	f.Int64Var(&newOpts.days, "days", 0, "Expected repair time in work days")
	f.StringVar(&newOpts.notes, "notes", "", "Notes")
	f.StringArrayVar(&newOpts.description, "description", nil, "Description line (repeatable)")
	f.StringArrayVar(&newOpts.damages, "damage", nil, "Visible damage (repeatable)")
	_ = newCmd.MarkFlagRequired("name")
}

// buildContract turns the flags into a contract.
func buildContract(opts newFlags) (contract.RepairContract, error) {
	c := contract.New()
	if opts.date != "" {
		date, err := contract.ParseTime(opts.date)
		if err != nil {
			return c, err
		}
		c.Date = date
	}
	price, err := decimal.NewFromString(strings.TrimSpace(opts.price))
	if err != nil {
		return c, fmt.Errorf("invalid price %q: %w", opts.price, err)
	}
	if opts.days < 0 {
		return c, fmt.Errorf("days must not be negative, got %d", opts.days)
	}

	c.Info.Customer = contract.Customer{Name: opts.name, TaxNumber: opts.taxNumber, Phone: opts.phone}
	c.Info.PrognosisPrice = price
	c.Info.ExpectedRepairTimeWorkDays = opts.days
	c.Info.Notes = opts.notes
	c.Info.Description = append(c.Info.Description, opts.description...)
	c.Info.VisibleDamages = append(c.Info.VisibleDamages, opts.damages...)
	return c, nil
}

func runNew(cmd *cobra.Command, args []string) error {
	c, err := buildContract(newOpts)
	if err != nil {
		return err
	}
	db, err := openDatabase()
	if err != nil {
		return err
	}
	entry, err := db.Create(cmd.Context(), c)
	if err != nil {
		return err
	}
	logging.Get(logging.CategoryCLI).Info("created contract", zap.String("path", entry.Path))
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", entry.Path)
	return nil
}
