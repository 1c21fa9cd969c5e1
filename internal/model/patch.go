package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// NullableTime is the tri-state due date of a task patch. A field of this
// type distinguishes three JSON inputs:
//
//	key absent        -> Set=false            (leave stored value unchanged)
//	"dueDate": null   -> Set=true, Valid=false (clear the stored value)
//	"dueDate": "..."  -> Set=true, Valid=true  (replace the stored value)
//
// encoding/json calls UnmarshalJSON for explicit nulls, so an untouched
// zero value can only mean the key was absent.
type NullableTime struct {
	Set   bool
	Valid bool
	Time  time.Time
}

func (n *NullableTime) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(b, []byte("null")) {
		n.Valid = false
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	n.Valid = true
	n.Time = t
	return nil
}

func (n NullableTime) MarshalJSON() ([]byte, error) {
	if !n.Set || !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Time)
}

// Pointer returns the value as *time.Time (nil when absent or null).
func (n NullableTime) Pointer() *time.Time {
	if !n.Set || !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}

// ParseDate accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// TaskPatch carries the fields of a partial task update. Pointer fields
// follow the original API's rule that both an absent key and an explicit
// null leave the stored value unchanged; only the due date supports
// explicit clearing.
type TaskPatch struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Status      *string      `json:"status"`
	DueDate     NullableTime `json:"dueDate"`
}
