package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/PGC-SchedulingService/internal/integrations/notifier"
	"github.com/m04kA/PGC-SchedulingService/internal/worker/reminders"
)

func newRemindersCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Day-before appointment reminders",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Send reminders for tomorrow's appointments once and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath, false)
			if err != nil {
				return err
			}
			defer a.Close()

			if !a.cfg.Notifier.Enabled {
				return fmt.Errorf("notifier is disabled in %s", *configPath)
			}

			timeout := time.Duration(a.cfg.Notifier.Timeout) * time.Second
			dispatcher := notifier.NewDispatcher(notifier.NewClient(a.cfg.Notifier.URL, timeout), timeout, nil, a.log)

			job := reminders.NewJob(a.appointments, dispatcher, a.calendar.Location, a.log)
			sent, err := job.Run(cmd.Context())
			if err != nil {
				return err
			}

			waitCtx, cancel := context.WithTimeout(cmd.Context(), 2*timeout)
			defer cancel()
			if err := dispatcher.Wait(waitCtx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "dispatched %d reminder(s)\n", sent)
			return nil
		},
	})
	return cmd
}
