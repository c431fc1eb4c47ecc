package watcher

import (
	"time"
)

// parseTimestamp reads the server's ISO 8601 timestamps.
func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// WatchStatus is the server reported state of a watch.
type WatchStatus struct {
	Version          *int                    `json:"version,omitempty"`
	State            *ActivationState        `json:"state,omitempty"`
	LastChecked      string                  `json:"last_checked,omitempty"`
	LastMetCondition string                  `json:"last_met_condition,omitempty"`
	Actions          map[string]ActionStatus `json:"actions,omitempty"`
}

// Action returns the status of the named action.
func (s WatchStatus) Action(name string) (ActionStatus, bool) {
	a, ok := s.Actions[name]
	return a, ok
}

// ActivationState tells whether a watch is active and since when.
type ActivationState struct {
	Active    bool   `json:"active"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Time parses Timestamp.
func (s ActivationState) Time() (time.Time, error) { return parseTimestamp(s.Timestamp) }

// ActionStatus is the server reported state of a single action.
type ActionStatus struct {
	Ack           AcknowledgeState `json:"ack"`
	LastExecution *ExecutionState  `json:"last_execution,omitempty"`
	LastThrottle  *ThrottleState   `json:"last_throttle,omitempty"`
}

// AcknowledgeState is the acknowledgement state of an action.
type AcknowledgeState struct {
	State     AckState `json:"state"`
	Timestamp string   `json:"timestamp,omitempty"`
}

// Time parses Timestamp.
func (s AcknowledgeState) Time() (time.Time, error) { return parseTimestamp(s.Timestamp) }

// ExecutionState describes the last run of an action.
type ExecutionState struct {
	Timestamp  string `json:"timestamp,omitempty"`
	Successful bool   `json:"successful"`
	Reason     string `json:"reason,omitempty"`
}

// ThrottleState describes the last time an action was throttled.
type ThrottleState struct {
	Timestamp string `json:"timestamp,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// AcknowledgeWatchResponse is returned by the ack endpoint.
type AcknowledgeWatchResponse struct {
	Status WatchStatus `json:"_status"`
}

// ActivateWatchResponse is returned by the activate endpoint.
type ActivateWatchResponse struct {
	Status WatchStatus `json:"_status"`
}

// DeactivateWatchResponse is returned by the deactivate endpoint.
type DeactivateWatchResponse struct {
	Status WatchStatus `json:"_status"`
}

// PutWatchResponse is returned when a watch is stored.
type PutWatchResponse struct {
	ID      string `json:"_id"`
	Version int    `json:"_version"`
	Created bool   `json:"created"`
}

// GetWatchResponse holds a stored watch and its status.
type GetWatchResponse struct {
	Found   bool             `json:"found"`
	ID      string           `json:"_id"`
	Version int              `json:"_version,omitempty"`
	Status  *WatchStatus     `json:"status,omitempty"`
	Watch   *WatchDefinition `json:"watch,omitempty"`
}

// DeleteWatchResponse is returned when a watch is removed.
type DeleteWatchResponse struct {
	Found   bool   `json:"found"`
	ID      string `json:"_id"`
	Version int    `json:"_version"`
}

// ExecuteWatchResponse holds the record of a single watch execution.
// The record is left as decoded JSON.
type ExecuteWatchResponse struct {
	ID          string         `json:"_id"`
	WatchRecord map[string]any `json:"watch_record"`
}

// RecordState returns watch_record.state, e.g. "executed" or "execution_not_needed".
func (r ExecuteWatchResponse) RecordState() string {
	s, _ := r.WatchRecord["state"].(string)
	return s
}
