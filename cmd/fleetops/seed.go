package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"fleetops.com/fleetops/core/models"
	"fleetops.com/fleetops/utils"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed <drivers.csv>",
	Short: "Load drivers from a csv with full_name[,phone,license_number] columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		drivers, err := parseDriversCSV(data)
		if err != nil {
			return err
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		var created int
		err = a.dm.Transaction(cmd.Context(), func(tx *gorm.DB) error {
			var txErr error
			created, txErr = seedDrivers(tx, drivers)
			return txErr
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d driver(s) created, %d already present\n", created, len(drivers)-created)
		return nil
	},
}

func parseDriversCSV(data []byte) ([]models.Driver, error) {
	rows, err := utils.ParseCSV(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("driver file is empty")
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	nameCol, ok := cols["full_name"]
	if !ok {
		return nil, fmt.Errorf("driver file has no full_name column")
	}
	optional := func(row []string, name string) *string {
		i, ok := cols[name]
		if !ok || i >= len(row) || strings.TrimSpace(row[i]) == "" {
			return nil
		}
		return utils.Ptr(strings.TrimSpace(row[i]))
	}

	var drivers []models.Driver
	for _, row := range rows[1:] {
		if nameCol >= len(row) || strings.TrimSpace(row[nameCol]) == "" {
			continue
		}
		drivers = append(drivers, models.Driver{
			FullName:      strings.TrimSpace(row[nameCol]),
			Phone:         optional(row, "phone"),
			LicenseNumber: optional(row, "license_number"),
		})
	}
	return drivers, nil
}

// seedDrivers inserts drivers whose full name is not already on the roster.
// Callers run it inside a transaction.
func seedDrivers(tx *gorm.DB, drivers []models.Driver) (int, error) {
	existing, err := models.ListDrivers(tx, false)
	if err != nil {
		return 0, err
	}
	known := map[string]bool{}
	for _, d := range existing {
		known[utils.NormalizeName(d.FullName)] = true
	}

	created := 0
	for i := range drivers {
		key := utils.NormalizeName(drivers[i].FullName)
		if known[key] {
			continue
		}
		if err := tx.Create(&drivers[i]).Error; err != nil {
			return created, fmt.Errorf("create driver %s: %w", drivers[i].FullName, err)
		}
		known[key] = true
		created++
	}
	return created, nil
}
