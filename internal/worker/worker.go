// Package worker wires the booking workflow and its activities onto a
// Temporal task queue.
package worker

import (
	"github.com/elson2121/Airline-Management-System/internal/activities"
	"github.com/elson2121/Airline-Management-System/internal/workflows"
	"github.com/elson2121/Airline-Management-System/shared/models"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	sdkworker "go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
)

// Registrar is satisfied by a Temporal worker and by the test workflow
// environment.
type Registrar interface {
	RegisterWorkflowWithOptions(w interface{}, options workflow.RegisterOptions)
	RegisterActivityWithOptions(a interface{}, options activity.RegisterOptions)
}

// Register adds the booking workflow and activities to w.
func Register(w Registrar, acts *activities.Activities) {
	w.RegisterWorkflowWithOptions(workflows.BookingWorkflow, workflow.RegisterOptions{Name: models.BookingWorkflowName})

	w.RegisterActivityWithOptions(acts.HoldSeat, activity.RegisterOptions{Name: activities.HoldSeatActivity})
	w.RegisterActivityWithOptions(acts.SettleHold, activity.RegisterOptions{Name: activities.SettleHoldActivity})
	w.RegisterActivityWithOptions(acts.ReleaseHold, activity.RegisterOptions{Name: activities.ReleaseHoldActivity})
}

// New creates a worker on taskQueue with everything registered. The caller
// starts and stops it.
func New(c client.Client, taskQueue string, acts *activities.Activities) sdkworker.Worker {
	w := sdkworker.New(c, taskQueue, sdkworker.Options{})
	Register(w, acts)
	return w
}
