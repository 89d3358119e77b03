// clinicdesk is a terminal front-office client for the clinic backend:
// patient booking, doctor scheduling, and admin/receptionist management over
// the clinic REST API.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/internal/config"
	"github.com/clinicdesk/clinicdesk/internal/observability/metrics"
	"github.com/clinicdesk/clinicdesk/internal/session"
	"github.com/clinicdesk/clinicdesk/pkg/logging"
)

// Backend roles. Commands gate on these the same way the backend does.
const (
	RoleAdmin        = "ADMIN"
	RoleDoctor       = "DOCTOR"
	RolePatient      = "PATIENT"
	RoleReceptionist = "RECEPTIONIST"
)

type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	sess    *session.Session
	client  *api.Client
	metrics *metrics.BookingMetrics
}

func newApp() (*app, error) {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	sess, err := session.Open(cfg.SessionFile, logger)
	if err != nil {
		return nil, err
	}
	reg := prometheus.NewRegistry()
	m := metrics.NewBookingMetrics(reg)
	if cfg.MetricsAddr != "" {
		// Scrapable during long-running commands such as `book`.
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, metrics.Handler(reg)); err != nil {
				logger.Warn("metrics listener stopped", "addr", cfg.MetricsAddr, "error", err)
			}
		}()
	}
	client := api.New(api.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.HTTPTimeout,
		Tokens:  sess,
		Logger:  logger,
		Metrics: m,
	})
	return &app{cfg: cfg, logger: logger, sess: sess, client: client, metrics: m}, nil
}

// requireAnyRole refuses the command unless the stored role matches one of
// the allowed roles.
func (a *app) requireAnyRole(roles ...string) error {
	if !a.sess.IsLoggedIn() {
		return fmt.Errorf("not logged in; run `clinicdesk login` first")
	}
	if a.sess.IsTokenExpired() {
		return fmt.Errorf("session expired; run `clinicdesk login` again")
	}
	for _, role := range roles {
		if a.sess.Role() == role {
			return nil
		}
	}
	return fmt.Errorf("permission denied: requires one of %v, you are %s", roles, a.sess.Role())
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "clinicdesk",
		Short:         "Front-office client for the clinic backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newRegisterCmd(a),
		newDoctorsCmd(a),
		newPatientsCmd(a),
		newSpecializationsCmd(a),
		newWorkingHoursCmd(a),
		newLeavesCmd(a),
		newSlotsCmd(a),
		newAppointmentsCmd(a),
		newBookCmd(a),
		newPaymentsCmd(a),
	)
	return root
}

func main() {
	a, err := newApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	// Ctrl-C cancels the command context; in-flight booking flows release
	// their hold on the way out.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", describeError(err))
		os.Exit(1)
	}
}

// describeError maps backend failures to user-facing banner text.
func describeError(err error) string {
	switch {
	case api.IsUnauthorized(err):
		return "you do not have permission for this action (" + err.Error() + ")"
	case api.IsNotFound(err):
		return "not found (" + err.Error() + ")"
	case api.IsConflict(err):
		return "conflict: the resource changed under you (" + err.Error() + ")"
	case api.IsServer(err):
		return "the server had a problem, try again later (" + err.Error() + ")"
	default:
		return err.Error()
	}
}
