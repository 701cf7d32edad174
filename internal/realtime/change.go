// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"encoding/json"
	"fmt"
	"time"
)

// Change is one row change delivered on a Channel.
//
// Record is the after-image (INSERT, UPDATE). OldRecord is the before-image;
// for DELETE it carries at least the primary key.
type Change struct {
	Type            ChangeType
	Schema          string
	Table           string
	Record          json.RawMessage
	OldRecord       json.RawMessage
	CommitTimestamp time.Time

	// ReceivedAt is stamped by the client when the frame was read.
	ReceivedAt time.Time
}

// RecordID returns the "id" column of the after-image, falling back to the
// before-image.
func (c Change) RecordID() (string, error) {
	for _, raw := range []json.RawMessage{c.Record, c.OldRecord} {
		if len(raw) == 0 || string(raw) == "null" {
			continue
		}
		var row struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(raw, &row); err != nil {
			return "", fmt.Errorf("%w: row image: %v", ErrMalformedMessage, err)
		}
		if row.ID != "" {
			return row.ID, nil
		}
	}
	return "", fmt.Errorf("%w: row image has no id", ErrMalformedMessage)
}

// DecodeRecord unmarshals the after-image into dst.
func (c Change) DecodeRecord(dst any) error {
	if len(c.Record) == 0 {
		return fmt.Errorf("%w: %s change without record", ErrMalformedMessage, c.Type)
	}
	if err := json.Unmarshal(c.Record, dst); err != nil {
		return fmt.Errorf("%w: record: %v", ErrMalformedMessage, err)
	}
	return nil
}

// DecodeOldRecord unmarshals the before-image into dst. It reports false when
// the change carries none.
func (c Change) DecodeOldRecord(dst any) (bool, error) {
	if len(c.OldRecord) == 0 || string(c.OldRecord) == "null" || string(c.OldRecord) == "{}" {
		return false, nil
	}
	if err := json.Unmarshal(c.OldRecord, dst); err != nil {
		return false, fmt.Errorf("%w: old record: %v", ErrMalformedMessage, err)
	}
	return true, nil
}

func changeFromData(d ChangeData, receivedAt time.Time) (Change, error) {
	if !d.Type.Valid() {
		return Change{}, fmt.Errorf("%w: %q", ErrUnknownChangeType, d.Type)
	}
	return Change{
		Type:            d.Type,
		Schema:          d.Schema,
		Table:           d.Table,
		Record:          d.Record,
		OldRecord:       d.OldRecord,
		CommitTimestamp: d.CommitTimestamp,
		ReceivedAt:      receivedAt,
	}, nil
}
