package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	blockedDatesService "github.com/m04kA/PGC-SchedulingService/internal/service/blocked_dates"
	"github.com/m04kA/PGC-SchedulingService/internal/service/blocked_dates/models"
)

func newBlockedDatesCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocked-dates",
		Short: "Manage store closures (holidays, inventory days)",
	}
	cmd.AddCommand(newBlockedDatesAddCmd(configPath))
	cmd.AddCommand(newBlockedDatesRemoveCmd(configPath))
	cmd.AddCommand(newBlockedDatesListCmd(configPath))
	return cmd
}

func newBlockedDatesAddCmd(configPath *string) *cobra.Command {
	var reason string

	c := &cobra.Command{
		Use:   "add YYYY-MM-DD",
		Short: "Block a date for new reservations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath, false)
			if err != nil {
				return err
			}
			defer a.Close()

			svc := blockedDatesService.NewService(a.blockedDates, a.appointments, a.txManager, a.calendar, a.log)
			resp, err := svc.Add(cmd.Context(), &models.AddBlockedDateRequest{Date: args[0], Reason: reason})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "blocked %s (%s)\n", resp.Date, resp.Reason)
			if len(resp.AffectedAppointments) > 0 {
				fmt.Fprintf(out, "active appointments on this date: %s\n", strings.Join(resp.AffectedAppointments, ", "))
			}
			return nil
		},
	}
	c.Flags().StringVar(&reason, "reason", "", "reason shown to customers")
	return c
}

func newBlockedDatesRemoveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remove YYYY-MM-DD",
		Short: "Reopen a blocked date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath, false)
			if err != nil {
				return err
			}
			defer a.Close()

			svc := blockedDatesService.NewService(a.blockedDates, a.appointments, a.txManager, a.calendar, a.log)
			if err := svc.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "unblocked %s\n", args[0])
			return nil
		},
	}
}

func newBlockedDatesListCmd(configPath *string) *cobra.Command {
	var from, to string

	c := &cobra.Command{
		Use:   "list",
		Short: "List blocked dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath, false)
			if err != nil {
				return err
			}
			defer a.Close()

			req := &models.ListBlockedDatesRequest{}
			if from != "" {
				req.StartDate = &from
			}
			if to != "" {
				req.EndDate = &to
			}

			svc := blockedDatesService.NewService(a.blockedDates, a.appointments, a.txManager, a.calendar, a.log)
			resp, err := svc.List(cmd.Context(), req)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tREASON")
			for _, b := range resp.BlockedDates {
				fmt.Fprintf(w, "%s\t%s\n", b.Date, b.Reason)
			}
			return w.Flush()
		},
	}
	c.Flags().StringVar(&from, "from", "", "first date, inclusive (YYYY-MM-DD)")
	c.Flags().StringVar(&to, "to", "", "last date, inclusive (YYYY-MM-DD)")
	return c
}
