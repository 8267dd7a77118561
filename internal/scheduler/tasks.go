// Package scheduler enqueues and runs delayed lead work on asynq.
package scheduler

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
)

// TaskVisitReminder fires the day before a requested property visit.
const TaskVisitReminder = "leads.visit_reminder"

// VisitReminderPayload only carries the lead id; the worker re-reads the
// lead so edits made after scheduling are honoured.
type VisitReminderPayload struct {
	LeadID string `json:"leadId"`
}

func NewVisitReminderTask(payload VisitReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode visit reminder: %w", err)
	}
	return asynq.NewTask(TaskVisitReminder, data), nil
}

func ParseVisitReminderPayload(task *asynq.Task) (VisitReminderPayload, error) {
	var payload VisitReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return VisitReminderPayload{}, fmt.Errorf("decode visit reminder: %w", err)
	}
	if payload.LeadID == "" {
		return VisitReminderPayload{}, errors.New("visit reminder without lead id")
	}
	return payload, nil
}
