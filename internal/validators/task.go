// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-task-desk/models"
)

// Field name constants restrict validation to a subset of fields.
const (
	FieldID       = "id"
	FieldTitle    = "title"
	FieldStatus   = "status"
	FieldPriority = "priority"
	FieldProgress = "progress"
)

// TaskValidator implements [Validator] for models.Task, models.TaskDraft and
// models.TaskPatch, by value or by pointer.
//
// A draft may leave status and priority empty; the defaults are applied
// later. A patch is only checked for the fields it sets.
type TaskValidator struct {
}

func NewTaskValidator() Validator {
	return &TaskValidator{}
}

func (v *TaskValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Task:
		return v.validateTask(ctx, value, fields...)
	case *models.Task:
		return v.validateTask(ctx, *value, fields...)

	case models.TaskDraft:
		return v.validateDraft(ctx, value, fields...)
	case *models.TaskDraft:
		return v.validateDraft(ctx, *value, fields...)

	case models.TaskPatch:
		return v.validatePatch(ctx, value, fields...)
	case *models.TaskPatch:
		return v.validatePatch(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *TaskValidator) validateTask(_ context.Context, task models.Task, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldTitle, FieldStatus, FieldPriority, FieldProgress}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldID:
			if task.ID == "" {
				err = ErrEmptyID
			}
		case FieldTitle:
			err = checkTitle(task.Title)
		case FieldStatus:
			err = checkStatus(task.Status)
		case FieldPriority:
			err = checkPriority(task.Priority)
		case FieldProgress:
			err = checkProgress(task.Progress)
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *TaskValidator) validateDraft(_ context.Context, draft models.TaskDraft, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldStatus, FieldPriority, FieldProgress}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldTitle:
			err = checkTitle(draft.Title)
		case FieldStatus:
			if draft.Status != "" {
				err = checkStatus(draft.Status)
			}
		case FieldPriority:
			if draft.Priority != "" {
				err = checkPriority(draft.Priority)
			}
		case FieldProgress:
			err = checkProgress(draft.Progress)
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *TaskValidator) validatePatch(_ context.Context, patch models.TaskPatch, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldStatus, FieldPriority, FieldProgress}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldTitle:
			if patch.Title != nil {
				err = checkTitle(*patch.Title)
			}
		case FieldStatus:
			if patch.Status != nil {
				err = checkStatus(*patch.Status)
			}
		case FieldPriority:
			if patch.Priority != nil {
				err = checkPriority(*patch.Priority)
			}
		case FieldProgress:
			if patch.Progress != nil {
				err = checkProgress(*patch.Progress)
			}
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func checkTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

func checkStatus(status models.TaskStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return nil
}

func checkPriority(priority models.Priority) error {
	if priority.Rank() > models.PriorityLow.Rank() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	}
	return nil
}

func checkProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return ErrProgressOutOfRange
	}
	return nil
}
