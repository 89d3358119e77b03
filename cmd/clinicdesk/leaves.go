package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/clinicdesk/clinicdesk/internal/api"
)

func newLeavesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaves",
		Short: "Doctor leave requests and approvals",
	}

	var leave api.DoctorLeave
	request := &cobra.Command{
		Use:   "request",
		Short: "Request a leave (doctor)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAnyRole(RoleDoctor, RoleAdmin); err != nil {
				return err
			}
			created, err := a.client.Leaves.Request(cmd.Context(), leave)
			if err != nil {
				return err
			}
			return printJSON(cmd, created)
		},
	}
	request.Flags().Int64Var(&leave.DoctorID, "doctor", 0, "doctor id")
	request.Flags().StringVar(&leave.LeaveType, "type", "VACATION", "leave type")
	request.Flags().StringVar(&leave.StartDate, "from", "", "start date (YYYY-MM-DD)")
	request.Flags().StringVar(&leave.EndDate, "to", "", "end date (YYYY-MM-DD)")
	_ = request.MarkFlagRequired("doctor")
	_ = request.MarkFlagRequired("from")
	_ = request.MarkFlagRequired("to")

	var doctorID int64
	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List leaves by doctor or by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			var leaves []api.DoctorLeave
			var err error
			switch {
			case doctorID > 0:
				leaves, err = a.client.Leaves.ListByDoctor(cmd.Context(), doctorID)
			case status != "":
				if err := a.requireAnyRole(RoleAdmin, RoleReceptionist); err != nil {
					return err
				}
				leaves, err = a.client.Leaves.ListByStatus(cmd.Context(), status)
			default:
				return fmt.Errorf("pass --doctor or --status")
			}
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDOCTOR\tTYPE\tFROM\tTO\tSTATUS")
			for _, l := range leaves {
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\n", l.ID, l.DoctorID, l.LeaveType, l.StartDate, l.EndDate, l.Status)
			}
			return w.Flush()
		},
	}
	list.Flags().Int64Var(&doctorID, "doctor", 0, "filter by doctor id")
	list.Flags().StringVar(&status, "status", "", "filter by status (PENDING, APPROVED, REJECTED, CANCELLED)")

	var notes string
	approve := &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a leave request (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAnyRole(RoleAdmin); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid leave id %q", args[0])
			}
			approved, err := a.client.Leaves.Approve(cmd.Context(), id, notes)
			if err != nil {
				return err
			}
			return printJSON(cmd, approved)
		},
	}
	approve.Flags().StringVar(&notes, "notes", "", "admin notes")

	cancel := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a leave request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid leave id %q", args[0])
			}
			cancelled, err := a.client.Leaves.Cancel(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, cancelled)
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a leave request (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAnyRole(RoleAdmin); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid leave id %q", args[0])
			}
			if err := a.client.Leaves.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}

	cmd.AddCommand(request, list, approve, cancel, del)
	return cmd
}
