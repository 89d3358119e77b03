package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/internal/bookingflow"
)

func newAppointmentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "appointments",
		Aliases: []string{"appts"},
		Short:   "View and manage appointments",
	}

	var doctorID int64
	var date string
	list := &cobra.Command{
		Use:   "list",
		Short: "List appointments, optionally scoped to a doctor and date",
		RunE: func(cmd *cobra.Command, args []string) error {
			var appts []api.Appointment
			var err error
			switch {
			case doctorID > 0 && date != "":
				appts, err = a.client.Appointments.ListByDoctorAndDate(cmd.Context(), doctorID, date)
			case doctorID > 0:
				appts, err = a.client.Appointments.ListByDoctor(cmd.Context(), doctorID)
			default:
				if err := a.requireAnyRole(RoleAdmin, RoleReceptionist); err != nil {
					return err
				}
				appts, err = a.client.Appointments.List(cmd.Context())
			}
			if err != nil {
				return err
			}
			printAppointments(cmd, appts)
			return nil
		},
	}
	list.Flags().Int64Var(&doctorID, "doctor", 0, "filter by doctor id")
	list.Flags().StringVar(&date, "date", "", "filter by date (YYYY-MM-DD), requires --doctor")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid appointment id %q", args[0])
			}
			appt, err := a.client.Appointments.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, appt)
		},
	}

	cancel := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid appointment id %q", args[0])
			}
			appt, err := a.client.Appointments.UpdateStatus(cmd.Context(), id, api.StatusCancelled)
			if err != nil {
				return err
			}
			return printJSON(cmd, appt)
		},
	}

	var status string
	setStatus := &cobra.Command{
		Use:   "status <id>",
		Short: "Set an appointment status (back office)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAnyRole(RoleAdmin, RoleReceptionist, RoleDoctor); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid appointment id %q", args[0])
			}
			appt, err := a.client.Appointments.UpdateStatus(cmd.Context(), id, status)
			if err != nil {
				return err
			}
			return printJSON(cmd, appt)
		},
	}
	setStatus.Flags().StringVar(&status, "to", "", "new status (CONFIRMED, COMPLETED, NO_SHOW, ...)")
	_ = setStatus.MarkFlagRequired("to")

	cmd.AddCommand(list, get, cancel, setStatus)
	return cmd
}

func newSlotsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Browse and manage bookable slots",
	}

	var doctorID int64
	var date string
	var smart bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List available slots for a doctor on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if smart {
				slots, err := a.client.Appointments.SmartAvailableSlots(cmd.Context(), doctorID, date)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "#\tSTART\tTIME")
				for i, s := range slots {
					fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, s.StartTime.Format(time.RFC3339), bookingflow.FormatSlotTime(s.StartTime))
				}
				return w.Flush()
			}
			appts, err := a.client.Appointments.AvailableSlots(cmd.Context(), doctorID, date)
			if err != nil {
				return err
			}
			printAppointments(cmd, appts)
			return nil
		},
	}
	list.Flags().Int64Var(&doctorID, "doctor", 0, "doctor id")
	list.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD)")
	list.Flags().BoolVar(&smart, "smart", false, "use backend-generated slots from working hours")
	_ = list.MarkFlagRequired("doctor")
	_ = list.MarkFlagRequired("date")

	var createReq api.CreateSlotsRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Create AVAILABLE slots for a doctor over a date range (back office)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAnyRole(RoleAdmin, RoleReceptionist, RoleDoctor); err != nil {
				return err
			}
			created, err := a.client.Appointments.CreateSlots(cmd.Context(), createReq)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d slots\n", len(created))
			return nil
		},
	}
	create.Flags().Int64Var(&createReq.DoctorID, "doctor", 0, "doctor id")
	create.Flags().StringVar(&createReq.StartDate, "from", "", "start date (YYYY-MM-DD)")
	create.Flags().StringVar(&createReq.EndDate, "to", "", "end date (YYYY-MM-DD)")
	_ = create.MarkFlagRequired("doctor")
	_ = create.MarkFlagRequired("from")

	var delDoctorID int64
	del := &cobra.Command{
		Use:   "delete <slot-id>",
		Short: "Delete an unbooked slot (back office)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAnyRole(RoleAdmin, RoleReceptionist, RoleDoctor); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid slot id %q", args[0])
			}
			if err := a.client.Appointments.DeleteSlot(cmd.Context(), id, delDoctorID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}
	del.Flags().Int64Var(&delDoctorID, "doctor", 0, "doctor id")
	_ = del.MarkFlagRequired("doctor")

	cmd.AddCommand(list, create, del)
	return cmd
}

func printAppointments(cmd *cobra.Command, appts []api.Appointment) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDOCTOR\tPATIENT\tTIME\tSTATUS\tREASON")
	for _, appt := range appts {
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\t%s\n",
			appt.ID, appt.DoctorID, appt.PatientID,
			appt.AppointmentTime.Format(time.RFC3339), appt.Status, appt.Reason)
	}
	_ = w.Flush()
}
