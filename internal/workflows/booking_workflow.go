package workflows

import (
	"time"

	"github.com/elson2121/Airline-Management-System/internal/activities"
	"github.com/elson2121/Airline-Management-System/shared/models"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	// SeatHoldDuration is how long a seat waits for the pay-on-confirm answer
	SeatHoldDuration = 15 * time.Minute

	FailureHoldExpired = "hold_expired"
	FailureCancelled   = "cancelled"

	releaseSettleFailed = "settle_failed"
)

// BookingWorkflowResult is the result of the booking workflow
type BookingWorkflowResult struct {
	Success       bool   `json:"success"`
	BookingID     string `json:"bookingId,omitempty"`
	Seat          string `json:"seat,omitempty"`
	FailureReason string `json:"failureReason,omitempty"`
}

// BookingWorkflow holds a seat, waits for the passenger to confirm payment
// when they have no prepaid account, and settles the hold. Account holders
// are debited straight away. Business failures end the workflow with
// Success=false; only infrastructure failures are returned as errors.
func BookingWorkflow(ctx workflow.Context, input models.BookingWorkflowInput) (*BookingWorkflowResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Booking workflow started", "flightNo", input.FlightNo)

	state := models.BookingWorkflowState{
		Status:      models.HoldStatusPending,
		FlightNo:    input.FlightNo,
		LastUpdated: workflow.Now(ctx),
	}
	if err := workflow.SetQueryHandler(ctx, models.QueryGetState, func() (models.BookingWorkflowState, error) {
		return state, nil
	}); err != nil {
		return nil, err
	}
	setStatus := func(status models.HoldStatus) {
		state.Status = status
		state.LastUpdated = workflow.Now(ctx)
	}
	fail := func(status models.HoldStatus, reason string) *BookingWorkflowResult {
		state.FailureReason = reason
		setStatus(status)
		logger.Info("Booking workflow failed", "reason", reason)
		return &BookingWorkflowResult{Success: false, Seat: state.Seat, FailureReason: reason}
	}

	// Activity options
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	})

	// release gives the held seat back. It runs on a disconnected context so
	// it also completes after the workflow was cancelled.
	release := func(reason string) {
		releaseCtx, _ := workflow.NewDisconnectedContext(ctx)
		if err := workflow.ExecuteActivity(releaseCtx, activities.ReleaseHoldActivity, activities.ReleaseHoldInput{
			HoldID: state.HoldID,
			Reason: reason,
		}).Get(releaseCtx, nil); err != nil {
			logger.Error("Failed to release hold", "holdId", state.HoldID, "reason", reason, "error", err)
		}
	}

	var held activities.HoldSeatOutput
	err := workflow.ExecuteActivity(ctx, activities.HoldSeatActivity, activities.HoldSeatInput{
		FlightNo:  input.FlightNo,
		Passenger: input.Passenger,
		Seats:     input.Seats,
	}).Get(ctx, &held)
	if err != nil {
		return nil, err
	}
	if !held.Success {
		return fail(models.HoldStatusFailed, held.Error), nil
	}

	state.HoldID = held.Hold.ID
	state.Seat = held.Hold.Seat
	state.Amount = held.Hold.Amount
	state.HoldExpiry = workflow.Now(ctx).Add(SeatHoldDuration)

	confirmed := true
	if held.Hold.RequiresConfirmation {
		expired := false
		setStatus(models.HoldStatusAwaitingConfirmation)

		timerCtx, cancelTimer := workflow.WithCancel(ctx)
		selector := workflow.NewSelector(ctx)
		selector.AddReceive(workflow.GetSignalChannel(ctx, models.SignalConfirmPayment), func(c workflow.ReceiveChannel, more bool) {
			var signal models.ConfirmPaymentSignal
			c.Receive(ctx, &signal)
			logger.Info("Payment confirmation received", "confirmed", signal.Confirmed)
			confirmed = signal.Confirmed
			cancelTimer()
		})
		selector.AddFuture(workflow.NewTimer(timerCtx, SeatHoldDuration), func(f workflow.Future) {
			if err := f.Get(timerCtx, nil); err != nil {
				return
			}
			logger.Info("Seat hold expired", "holdId", state.HoldID)
			expired = true
		})
		selector.Select(ctx)

		switch {
		case ctx.Err() != nil:
			release(FailureCancelled)
			return fail(models.HoldStatusFailed, FailureCancelled), nil
		case expired:
			release(FailureHoldExpired)
			return fail(models.HoldStatusExpired, FailureHoldExpired), nil
		}
	}

	var settled activities.SettleHoldOutput
	err = workflow.ExecuteActivity(ctx, activities.SettleHoldActivity, activities.SettleHoldInput{
		HoldID:    state.HoldID,
		Confirmed: confirmed,
	}).Get(ctx, &settled)
	if err != nil {
		// A hold that was settled before the failure is already gone and the
		// release is a no-op.
		release(releaseSettleFailed)
		return nil, err
	}
	if !settled.Success {
		return fail(models.HoldStatusFailed, settled.Error), nil
	}

	state.BookingID = settled.Result.BookingID
	setStatus(models.HoldStatusConfirmed)
	logger.Info("Booking confirmed", "bookingId", state.BookingID, "seat", state.Seat)

	return &BookingWorkflowResult{
		Success:   true,
		BookingID: state.BookingID,
		Seat:      state.Seat,
	}, nil
}
