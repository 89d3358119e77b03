package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/clinicdesk/clinicdesk/internal/api"
)

func newSpecializationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "specializations",
		Aliases: []string{"specs"},
		Short:   "Browse and manage specializations",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List specializations",
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, err := a.client.Specializations.List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
			for _, s := range specs {
				fmt.Fprintf(w, "%d\t%s\t%s\n", s.ID, s.Name, s.Description)
			}
			return w.Flush()
		},
	}

	var name, description string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a specialization (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAnyRole(RoleAdmin); err != nil {
				return err
			}
			created, err := a.client.Specializations.Create(cmd.Context(), api.Specialization{
				Name: name, Description: description,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, created)
		},
	}
	create.Flags().StringVar(&name, "name", "", "specialization name")
	create.Flags().StringVar(&description, "description", "", "description")
	_ = create.MarkFlagRequired("name")

	var updName, updDescription string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a specialization (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAnyRole(RoleAdmin); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid specialization id %q", args[0])
			}
			updated, err := a.client.Specializations.Update(cmd.Context(), id, api.Specialization{
				Name: updName, Description: updDescription,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, updated)
		},
	}
	update.Flags().StringVar(&updName, "name", "", "specialization name")
	update.Flags().StringVar(&updDescription, "description", "", "description")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a specialization (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAnyRole(RoleAdmin); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid specialization id %q", args[0])
			}
			if err := a.client.Specializations.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}

	cmd.AddCommand(list, create, update, del)
	return cmd
}

func newWorkingHoursCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "working-hours",
		Short: "View or replace a doctor's weekly schedule",
	}

	list := &cobra.Command{
		Use:   "list <doctor-id>",
		Short: "List a doctor's working hours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doctorID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid doctor id %q", args[0])
			}
			hours, err := a.client.Doctors.WorkingHours(cmd.Context(), doctorID)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DAY\tSTART\tEND")
			for _, h := range hours {
				fmt.Fprintf(w, "%s\t%s\t%s\n", h.DayOfWeek, h.StartTime, h.EndTime)
			}
			return w.Flush()
		},
	}

	var hoursJSON string
	set := &cobra.Command{
		Use:   "set <doctor-id>",
		Short: "Replace a doctor's working hours (admin or the doctor)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAnyRole(RoleAdmin, RoleDoctor); err != nil {
				return err
			}
			doctorID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid doctor id %q", args[0])
			}
			var hours []api.WorkingHour
			if err := unmarshalFlag(hoursJSON, &hours); err != nil {
				return fmt.Errorf("invalid --hours JSON: %w", err)
			}
			updated, err := a.client.Doctors.ReplaceWorkingHours(cmd.Context(), doctorID, hours)
			if err != nil {
				return err
			}
			return printJSON(cmd, updated)
		},
	}
	set.Flags().StringVar(&hoursJSON, "hours", "", "working hours as a JSON array")
	_ = set.MarkFlagRequired("hours")

	cmd.AddCommand(list, set)
	return cmd
}
