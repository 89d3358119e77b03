package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/clinicdesk/clinicdesk/internal/api"
)

func newPatientsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "Browse and manage patients (back office)",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAnyRole(RoleAdmin, RoleReceptionist); err != nil {
				return err
			}
			patients, err := a.client.Patients.List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE")
			for _, p := range patients {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Email, p.Phone)
			}
			return w.Flush()
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid patient id %q", args[0])
			}
			patient, err := a.client.Patients.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, patient)
		},
	}

	me := &cobra.Command{
		Use:   "me",
		Short: "Show the patient record linked to the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAnyRole(RolePatient); err != nil {
				return err
			}
			patient, err := a.client.Patients.GetByUser(cmd.Context(), a.sess.UserID())
			if err != nil {
				return err
			}
			return printJSON(cmd, patient)
		},
	}

	var patientJSON string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a patient record",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAnyRole(RoleAdmin, RoleReceptionist); err != nil {
				return err
			}
			var patient api.Patient
			if err := json.Unmarshal([]byte(patientJSON), &patient); err != nil {
				return fmt.Errorf("invalid --patient JSON: %w", err)
			}
			created, err := a.client.Patients.Create(cmd.Context(), patient)
			if err != nil {
				return err
			}
			return printJSON(cmd, created)
		},
	}
	create.Flags().StringVar(&patientJSON, "patient", "", "patient record as JSON")
	_ = create.MarkFlagRequired("patient")

	var updateJSON string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a patient record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAnyRole(RoleAdmin, RoleReceptionist); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid patient id %q", args[0])
			}
			var patient api.Patient
			if err := json.Unmarshal([]byte(updateJSON), &patient); err != nil {
				return fmt.Errorf("invalid --patient JSON: %w", err)
			}
			updated, err := a.client.Patients.Update(cmd.Context(), id, patient)
			if err != nil {
				return err
			}
			return printJSON(cmd, updated)
		},
	}
	update.Flags().StringVar(&updateJSON, "patient", "", "patient record as JSON")
	_ = update.MarkFlagRequired("patient")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a patient record (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAnyRole(RoleAdmin); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid patient id %q", args[0])
			}
			if err := a.client.Patients.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}

	cmd.AddCommand(list, get, me, create, update, del)
	return cmd
}
