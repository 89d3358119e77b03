package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/internal/bookingflow"
)

func newDoctorsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctors",
		Short: "Browse and manage doctors",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List doctors",
		RunE: func(cmd *cobra.Command, args []string) error {
			doctors, err := a.client.Doctors.List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSPECIALIZATIONS\tFEE\tSLOT MIN")
			for _, d := range doctors {
				fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%d\n",
					d.ID, bookingflow.DoctorDisplayName(d),
					strings.Join(d.Specializations, ", "), d.Fee, d.AppointmentDurationMinutes)
			}
			return w.Flush()
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one doctor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid doctor id %q", args[0])
			}
			doctor, err := a.client.Doctors.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, doctor)
		},
	}

	var doctorJSON, photoPath string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a doctor (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAnyRole(RoleAdmin); err != nil {
				return err
			}
			var doctor api.Doctor
			if err := json.Unmarshal([]byte(doctorJSON), &doctor); err != nil {
				return fmt.Errorf("invalid --doctor JSON: %w", err)
			}
			photo, name, cleanup, err := openPhoto(photoPath)
			if err != nil {
				return err
			}
			defer cleanup()
			created, err := a.client.Doctors.Create(cmd.Context(), doctor, photo, name)
			if err != nil {
				return err
			}
			return printJSON(cmd, created)
		},
	}
	create.Flags().StringVar(&doctorJSON, "doctor", "", "doctor record as JSON")
	create.Flags().StringVar(&photoPath, "photo", "", "optional profile picture file")
	_ = create.MarkFlagRequired("doctor")

	var updateJSON, updatePhoto string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a doctor (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAnyRole(RoleAdmin); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid doctor id %q", args[0])
			}
			var doctor api.Doctor
			if err := json.Unmarshal([]byte(updateJSON), &doctor); err != nil {
				return fmt.Errorf("invalid --doctor JSON: %w", err)
			}
			photo, name, cleanup, err := openPhoto(updatePhoto)
			if err != nil {
				return err
			}
			defer cleanup()
			updated, err := a.client.Doctors.Update(cmd.Context(), id, doctor, photo, name)
			if err != nil {
				return err
			}
			return printJSON(cmd, updated)
		},
	}
	update.Flags().StringVar(&updateJSON, "doctor", "", "doctor record as JSON")
	update.Flags().StringVar(&updatePhoto, "photo", "", "optional profile picture file")
	_ = update.MarkFlagRequired("doctor")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a doctor (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAnyRole(RoleAdmin); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid doctor id %q", args[0])
			}
			if err := a.client.Doctors.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}

	cmd.AddCommand(list, get, create, update, del)
	return cmd
}

// openPhoto returns a typed-nil-free reader: a plain nil interface when no
// photo was requested, so the multipart builder skips the file part.
func openPhoto(path string) (io.Reader, string, func(), error) {
	if path == "" {
		return nil, "", func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", nil, fmt.Errorf("open photo: %w", err)
	}
	return f, filepath.Base(f.Name()), func() { f.Close() }, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func unmarshalFlag(raw string, v any) error {
	return json.Unmarshal([]byte(raw), v)
}
