package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/internal/bookingflow"
)

func newBookCmd(a *app) *cobra.Command {
	var (
		smart     bool
		doctorID  int64
		date      string
		slotIndex int
		method    string
		amount    float64
		note      string
		cardNum   string
		cardName  string
		cardExp   string
		cardCVV   string
	)

	cmd := &cobra.Command{
		Use:   "book [appointment-id]",
		Short: "Reserve a slot and pay for it before the hold expires",
		Long: `Reserve a slot, hold it for the payment window (5 minutes by default),
and complete the booking with a CARD or CASH payment. If the hold expires or
the command is interrupted, the reservation is released.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAnyRole(RolePatient, RoleReceptionist); err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			mode := bookingflow.ModeBookWithPayment
			if smart {
				mode = bookingflow.ModeConfirmThenPay
			}
			flow := bookingflow.New(bookingflow.Config{
				Client:  a.client,
				Logger:  a.logger,
				Metrics: a.metrics,
				HoldTTL: a.cfg.HoldTTL,
				Mode:    mode,
			})

			var slotStart time.Time
			if smart {
				if doctorID <= 0 || date == "" {
					return fmt.Errorf("--doctor and --date are required with --smart")
				}
				slots, err := a.client.Appointments.SmartAvailableSlots(ctx, doctorID, date)
				if err != nil {
					return err
				}
				if len(slots) == 0 {
					return fmt.Errorf("no available slots for doctor %d on %s", doctorID, date)
				}
				if slotIndex < 1 || slotIndex > len(slots) {
					return fmt.Errorf("--slot must be between 1 and %d", len(slots))
				}
				slot := slots[slotIndex-1]
				slotStart = slot.StartTime
				if err := flow.StartSmart(ctx, slot, a.sess.UserID()); err != nil {
					return bookingError(a, ctx, cmd, err, doctorID, date)
				}
			} else {
				if len(args) != 1 {
					return fmt.Errorf("pass the appointment id to book, or use --smart")
				}
				appointmentID, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid appointment id %q", args[0])
				}
				appt, err := a.client.Appointments.Get(ctx, appointmentID)
				if err != nil {
					return err
				}
				slotStart = appt.AppointmentTime
				if doctorID == 0 {
					doctorID = appt.DoctorID
				}
				if err := flow.Start(ctx, appointmentID, a.sess.UserID()); err != nil {
					return bookingError(a, ctx, cmd, err, doctorID, date)
				}
			}

			// The hold is advisory; the server enforces the real expiry. The
			// watcher auto-releases if this command outlives the window, and
			// an interrupt releases via the deferred Close.
			watchCtx, stopWatch := context.WithCancel(context.Background())
			defer stopWatch()
			go flow.Watch(watchCtx)
			defer flow.Close(context.WithoutCancel(ctx))

			fmt.Fprintf(out, "Slot reserved until %s (%s remaining)\n",
				flow.Deadline().Format("15:04:05"), flow.Remaining().Round(time.Second))

			if amount <= 0 {
				doctor, err := a.client.Doctors.Get(ctx, doctorID)
				if err != nil {
					return err
				}
				amount = doctor.Fee
			}

			if method == "" {
				m, err := promptMethod(cmd)
				if err != nil {
					return err
				}
				method = m
			}
			method = strings.ToUpper(method)

			var payment *api.Payment
			var err error
			switch method {
			case api.PaymentCard:
				payment, err = flow.CompleteCard(ctx, amount, bookingflow.CardInput{
					Number:     cardNum,
					HolderName: cardName,
					Expiry:     cardExp,
					CVV:        cardCVV,
				})
			case api.PaymentCash:
				payment, err = flow.CompleteCash(ctx, amount, note)
			default:
				return fmt.Errorf("--method must be CARD or CASH")
			}
			if err != nil {
				return bookingError(a, ctx, cmd, err, doctorID, date)
			}

			fmt.Fprintf(out, "Booked! Your appointment at %s on %s is confirmed (payment #%d, %s %.2f)\n",
				bookingflow.FormatSlotTime(slotStart), slotStart.Format("2006-01-02"),
				payment.ID, method, amount)
			return nil
		},
	}

	cmd.Flags().BoolVar(&smart, "smart", false, "book from backend-generated slots")
	cmd.Flags().Int64Var(&doctorID, "doctor", 0, "doctor id (required with --smart)")
	cmd.Flags().StringVar(&date, "date", "", "date YYYY-MM-DD (required with --smart)")
	cmd.Flags().IntVar(&slotIndex, "slot", 1, "slot number from `slots list --smart`")
	cmd.Flags().StringVar(&method, "method", "", "payment method: CARD or CASH (prompted if omitted)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "payment amount (defaults to the doctor's fee)")
	cmd.Flags().StringVar(&note, "note", "", "payment note (CASH)")
	cmd.Flags().StringVar(&cardNum, "card-number", "", "card number (CARD)")
	cmd.Flags().StringVar(&cardName, "card-name", "", "cardholder name (CARD)")
	cmd.Flags().StringVar(&cardExp, "card-expiry", "", "card expiry MM/YY (CARD)")
	cmd.Flags().StringVar(&cardCVV, "card-cvv", "", "card CVV (CARD)")
	return cmd
}

func promptMethod(cmd *cobra.Command) (string, error) {
	reader := bufio.NewReader(cmd.InOrStdin())
	for {
		fmt.Fprint(cmd.OutOrStdout(), "Pay by CARD or CASH? ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", err
		}
		switch strings.ToUpper(strings.TrimSpace(line)) {
		case api.PaymentCard:
			return api.PaymentCard, nil
		case api.PaymentCash:
			return api.PaymentCash, nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Please answer CARD or CASH.")
	}
}

// bookingError turns flow failures into user-facing messages, refreshing the
// slot list on contention so the user sees current availability.
func bookingError(a *app, ctx context.Context, cmd *cobra.Command, err error, doctorID int64, date string) error {
	switch {
	case errors.Is(err, bookingflow.ErrSlotTaken):
		fmt.Fprintln(cmd.OutOrStdout(), "That slot is being booked by someone else. Current availability:")
		refreshSlots(a, ctx, cmd, doctorID, date)
		return err
	case errors.Is(err, bookingflow.ErrHoldExpired):
		fmt.Fprintln(cmd.OutOrStdout(), "Your reservation expired before payment completed. Please pick a slot again.")
		return err
	default:
		return err
	}
}

func refreshSlots(a *app, ctx context.Context, cmd *cobra.Command, doctorID int64, date string) {
	if doctorID <= 0 || date == "" {
		return
	}
	slots, err := a.client.Appointments.SmartAvailableSlots(ctx, doctorID, date)
	if err != nil {
		a.logger.Warn("slot refresh failed", "doctor_id", doctorID, "error", err)
		return
	}
	for i, s := range slots {
		fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s\n", i+1, bookingflow.FormatSlotTime(s.StartTime))
	}
}
