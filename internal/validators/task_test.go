// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-task-desk/models"
)

func ptr[T any](v T) *T { return &v }

func validTask() models.Task {
	return models.Task{
		ID:       "t1",
		Title:    "VAT return",
		Status:   models.StatusPending,
		Priority: models.PriorityHigh,
		Progress: 10,
	}
}

func TestTaskValidator_Task(t *testing.T) {
	v := NewTaskValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*models.Task)
		fields  []string
		wantErr error
	}{
		{name: "valid", mutate: func(*models.Task) {}},
		{name: "missing id", mutate: func(t *models.Task) { t.ID = "" }, wantErr: ErrEmptyID},
		{name: "blank title", mutate: func(t *models.Task) { t.Title = "  " }, wantErr: ErrEmptyTitle},
		{name: "unknown status", mutate: func(t *models.Task) { t.Status = "done" }, wantErr: ErrInvalidStatus},
		{name: "empty priority", mutate: func(t *models.Task) { t.Priority = "" }, wantErr: ErrInvalidPriority},
		{name: "progress above 100", mutate: func(t *models.Task) { t.Progress = 101 }, wantErr: ErrProgressOutOfRange},
		{name: "negative progress", mutate: func(t *models.Task) { t.Progress = -1 }, wantErr: ErrProgressOutOfRange},
		{
			name:   "scoped to title ignores id",
			mutate: func(t *models.Task) { t.ID = "" },
			fields: []string{FieldTitle},
		},
		{name: "unknown field", mutate: func(*models.Task) {}, fields: []string{"hash"}, wantErr: ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := validTask()
			tt.mutate(&task)

			err := v.Validate(ctx, task, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)

			// указатель проверяется так же
			assert.ErrorIs(t, v.Validate(ctx, &task, tt.fields...), tt.wantErr)
		})
	}
}

func TestTaskValidator_Draft(t *testing.T) {
	v := NewTaskValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.TaskDraft{Title: "Payroll"}))
	assert.ErrorIs(t, v.Validate(ctx, models.TaskDraft{}), ErrEmptyTitle)
	assert.ErrorIs(t, v.Validate(ctx, &models.TaskDraft{Title: "x", Status: "later"}), ErrInvalidStatus)
	assert.ErrorIs(t, v.Validate(ctx, models.TaskDraft{Title: "x", Priority: "urgent"}), ErrInvalidPriority)
	assert.ErrorIs(t, v.Validate(ctx, models.TaskDraft{Title: "x", Progress: 200}), ErrProgressOutOfRange)
}

func TestTaskValidator_Patch(t *testing.T) {
	v := NewTaskValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.TaskPatch{}))
	assert.NoError(t, v.Validate(ctx, models.TaskPatch{Status: ptr(models.StatusReview), Progress: ptr(50)}))
	assert.ErrorIs(t, v.Validate(ctx, models.TaskPatch{Title: ptr(" ")}), ErrEmptyTitle)
	assert.ErrorIs(t, v.Validate(ctx, &models.TaskPatch{Status: ptr(models.TaskStatus("x"))}), ErrInvalidStatus)
	assert.ErrorIs(t, v.Validate(ctx, models.TaskPatch{Priority: ptr(models.Priority("x"))}), ErrInvalidPriority)
	assert.ErrorIs(t, v.Validate(ctx, models.TaskPatch{Progress: ptr(-5)}), ErrProgressOutOfRange)
}

func TestTaskValidator_UnsupportedType(t *testing.T) {
	v := NewTaskValidator()
	assert.ErrorIs(t, v.Validate(context.Background(), "task"), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(context.Background(), models.Profile{}), ErrUnsupportedType)
}
