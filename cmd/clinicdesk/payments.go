package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/clinicdesk/clinicdesk/internal/api"
)

func newPaymentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "View and manage payments",
	}

	var patientID, doctorID int64
	list := &cobra.Command{
		Use:   "list",
		Short: "List payments for a patient or doctor",
		RunE: func(cmd *cobra.Command, args []string) error {
			var payments []api.Payment
			var err error
			switch {
			case patientID > 0:
				payments, err = a.client.Payments.ListByPatient(cmd.Context(), patientID)
			case doctorID > 0:
				payments, err = a.client.Payments.ListByDoctor(cmd.Context(), doctorID)
			default:
				return fmt.Errorf("pass --patient or --doctor")
			}
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tAPPOINTMENT\tMETHOD\tAMOUNT\tSTATUS")
			for _, p := range payments {
				fmt.Fprintf(w, "%d\t%d\t%s\t%.2f\t%s\n", p.ID, p.AppointmentID, p.PaymentMethod, p.Amount, p.Status)
			}
			return w.Flush()
		},
	}
	list.Flags().Int64Var(&patientID, "patient", 0, "patient id")
	list.Flags().Int64Var(&doctorID, "doctor", 0, "doctor id")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid payment id %q", args[0])
			}
			payment, err := a.client.Payments.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, payment)
		},
	}

	byAppt := &cobra.Command{
		Use:   "for-appointment <appointment-id>",
		Short: "Show the payment for an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid appointment id %q", args[0])
			}
			payment, err := a.client.Payments.GetByAppointment(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, payment)
		},
	}

	cancel := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a payment (back office)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAnyRole(RoleAdmin, RoleReceptionist); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid payment id %q", args[0])
			}
			payment, err := a.client.Payments.Cancel(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, payment)
		},
	}

	cmd.AddCommand(list, get, byAppt, cancel)
	return cmd
}
