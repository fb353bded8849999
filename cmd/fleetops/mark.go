package main

import (
	"fmt"

	attendance "fleetops.com/fleetops/attendance/core"
	"fleetops.com/fleetops/attendance/model"
	"fleetops.com/fleetops/utils"
	"fleetops.com/fleetops/web/common"
	"github.com/spf13/cobra"
)

var (
	markDate  string
	markNotes string
)

var markCmd = &cobra.Command{
	Use:   "mark <driver-id> <present|absent>",
	Short: "Mark one driver for one day",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, ok := model.ParseStatus(args[1])
		if !ok {
			return fmt.Errorf("%w: %s", attendance.ErrInvalidStatus, args[1])
		}
		date, err := common.ParseDateOnly(markDate)
		if err != nil {
			return fmt.Errorf("%w: %s", attendance.ErrInvalidDate, markDate)
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		req := attendance.MarkRequest{DriverID: args[0], Date: date.Time, Status: status}
		if markNotes != "" {
			req.Notes = utils.Ptr(markNotes)
		}
		record, err := a.reconciler.Mark(cmd.Context(), nil, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", record.DriverID, utils.FormatDate(record.Date), record.Status)
		return nil
	},
}

func init() {
	markCmd.Flags().StringVar(&markDate, "date", "", "day to mark, YYYY-MM-DD")
	markCmd.Flags().StringVar(&markNotes, "notes", "", "optional notes")
	_ = markCmd.MarkFlagRequired("date")
}
