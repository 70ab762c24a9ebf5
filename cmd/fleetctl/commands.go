package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ukydev/fleet-maintenance/internal/app"
	"github.com/ukydev/fleet-maintenance/internal/csvio"
	"github.com/ukydev/fleet-maintenance/internal/reminder"
	"github.com/ukydev/fleet-maintenance/internal/store"
)

type opener func(ctx context.Context) (*app.App, error)

func newRootCmd(open opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "fleetctl",
		Short:         "Manage the fleet maintenance store",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		newTemplateCmd(),
		newExportCmd(open),
		newImportCmd(open),
		newRemindersCmd(open),
		newDashboardCmd(open),
		newClearCmd(open),
	)
	return root
}

// withApp opens the store for the duration of fn.
func withApp(cmd *cobra.Command, open opener, fn func(a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(ctx); err != nil {
			log.WithError(err).Warn("Failed to close fleet store")
		}
	}()
	return fn(a)
}

func newTemplateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Print the empty CSV import template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(csvio.ProduceTemplate())
			return err
		},
	}
}

func newExportCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export the fleet as CSV to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(a *app.App) error {
				data, err := csvio.Serialize(a.Store.Fleet())
				if err != nil {
					return err
				}
				if len(args) == 0 {
					_, err = cmd.OutOrStdout().Write(data)
					return err
				}
				if err := os.WriteFile(args[0], data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", args[0], err)
				}
				log.WithField("file", args[0]).Info("Fleet exported")
				return nil
			})
		},
	}
}

func newImportCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import fleet items from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			res := csvio.ParseDetailed(data)
			if len(res.Items) == 0 {
				return csvio.ErrNoRows
			}
			return withApp(cmd, open, func(a *app.App) error {
				n, err := a.Store.ImportFleet(cmd.Context(), res.Items)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d items (%d rows skipped)\n",
					n, len(res.Items), res.Skipped)
				return nil
			})
		},
	}
}

func newRemindersCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "reminders",
		Short: "List service reminders, most urgent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(a *app.App) error {
				snap := a.Store.Snapshot()
				list := reminder.New(nil).Reminders(snap.Fleet, snap.Records)

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "STATUS\tITEM\tPLATE/SERIAL\tMETER\tDUE\tLAST SERVICE")
				for _, r := range list {
					last := "-"
					if r.LastService != nil {
						last = r.LastService.String()
					}
					fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\t%s\t%s\n",
						r.Status, r.Item.Make, r.Item.Model, r.Item.PlateOrSerial,
						reminder.MeterText(r.Item.CurrentMeter, r.Item.Type), r.Due, last)
				}
				return tw.Flush()
			})
		},
	}
}

func newDashboardCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard counters and recent maintenance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(a *app.App) error {
				snap := a.Store.Snapshot()
				c := reminder.New(nil).Dashboard(snap.Fleet, snap.Records)

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Vehicles:     %d\n", c.Vehicles)
				fmt.Fprintf(out, "Equipment:    %d\n", c.Equipment)
				fmt.Fprintf(out, "In workshop:  %d\n", c.InWorkshop)
				fmt.Fprintf(out, "Due soon:     %d\n", c.DueSoon)
				if len(c.Recent) == 0 {
					return nil
				}
				fmt.Fprintln(out, "\nRecent maintenance:")
				for _, r := range c.Recent {
					fmt.Fprintf(out, "  %s  %-10s %s (%s)\n",
						r.Date, r.Type, r.Description, humanize.CommafWithDigits(r.TotalCost, 2))
				}
				return nil
			})
		},
	}
}

// promptConfirmer asks on out and reads a y/N answer from in.
func promptConfirmer(in io.Reader, out io.Writer) store.Confirmer {
	return store.ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N]: ", prompt)
		line, _ := bufio.NewReader(in).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	})
}

func newClearCmd(open opener) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every fleet item and maintenance record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := promptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
			if yes {
				c = store.Confirmed
			}
			return withApp(cmd, open, func(a *app.App) error {
				cleared, err := a.Store.ClearFleet(cmd.Context(), c)
				if err != nil {
					return err
				}
				if cleared {
					fmt.Fprintln(cmd.OutOrStdout(), "All data cleared.")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing changed.")
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
