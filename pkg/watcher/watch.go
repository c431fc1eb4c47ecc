package watcher

import (
	"github.com/martinferreira/elasticsearch-net/internal/utils"
)

// WatchDefinition is the body of a watch: when it runs, what it loads,
// whether it fires and what it does.
type WatchDefinition struct {
	Metadata       map[string]any      `json:"metadata,omitempty"`
	Trigger        *TriggerContainer   `json:"trigger,omitempty"`
	Input          *InputContainer     `json:"input,omitempty"`
	ThrottlePeriod Time                `json:"throttle_period,omitempty"`
	Condition      *ConditionContainer `json:"condition,omitempty"`
	Transform      *TransformContainer `json:"transform,omitempty"`
	Actions        Actions             `json:"actions,omitempty"`
}

func (w WatchDefinition) clone() WatchDefinition {
	w.Metadata = utils.CloneAnyMap(w.Metadata)
	if w.Trigger != nil {
		t := w.Trigger.clone()
		w.Trigger = &t
	}
	if w.Input != nil {
		in := w.Input.clone()
		w.Input = &in
	}
	if w.Condition != nil {
		c := w.Condition.clone()
		w.Condition = &c
	}
	if w.Transform != nil {
		t := w.Transform.clone()
		w.Transform = &t
	}
	w.Actions = w.Actions.clone()
	return w
}

// PutWatchRequest registers or replaces the watch with the given id.
type PutWatchRequest struct {
	ID string `json:"-"`
	// Active sets the initial state; nil leaves the server default.
	Active *bool `json:"-"`
	WatchDefinition
}

// Body returns the serialized request body.
func (r PutWatchRequest) Body() ([]byte, error) {
	return utils.Marshal(r.WatchDefinition)
}

// PutWatchBuilder builds a PutWatchRequest.
type PutWatchBuilder struct {
	req PutWatchRequest
}

// NewPutWatchBuilder returns a builder for the watch with the given id.
func NewPutWatchBuilder(id string) *PutWatchBuilder {
	return &PutWatchBuilder{req: PutWatchRequest{ID: id}}
}

// Active sets whether the watch is active once stored.
func (b *PutWatchBuilder) Active(active bool) *PutWatchBuilder {
	b.req.Active = &active
	return b
}

// Metadata sets one metadata entry.
func (b *PutWatchBuilder) Metadata(key string, value any) *PutWatchBuilder {
	if b.req.Metadata == nil {
		b.req.Metadata = make(map[string]any)
	}
	b.req.Metadata[key] = value
	return b
}

// Trigger sets the trigger.
func (b *PutWatchBuilder) Trigger(t TriggerContainer) *PutWatchBuilder {
	t = t.clone()
	b.req.Trigger = &t
	return b
}

// Schedule sets a schedule trigger through a builder.
func (b *PutWatchBuilder) Schedule(fn func(*ScheduleBuilder)) *PutWatchBuilder {
	sb := NewScheduleBuilder()
	fn(sb)
	s := sb.Build()
	b.req.Trigger = &TriggerContainer{Schedule: &s}
	return b
}

// Input sets the input. A nil input clears it.
func (b *PutWatchBuilder) Input(in Input) *PutWatchBuilder {
	if in == nil {
		b.req.Input = nil
		return b
	}
	c := in.IntoContainer()
	b.req.Input = &c
	return b
}

// InputWith sets the input through a builder.
func (b *PutWatchBuilder) InputWith(fn func(*InputBuilder)) *PutWatchBuilder {
	ib := NewInputBuilder()
	fn(ib)
	c := ib.Build()
	b.req.Input = &c
	return b
}

// ThrottlePeriod sets the minimum time between action runs.
func (b *PutWatchBuilder) ThrottlePeriod(t Time) *PutWatchBuilder {
	b.req.ThrottlePeriod = t
	return b
}

// Condition sets the watch condition. A nil condition clears it.
func (b *PutWatchBuilder) Condition(c Condition) *PutWatchBuilder {
	if c == nil {
		b.req.Condition = nil
		return b
	}
	cc := c.IntoContainer()
	b.req.Condition = &cc
	return b
}

// ConditionWith sets the condition through a builder.
func (b *PutWatchBuilder) ConditionWith(fn func(*ConditionBuilder)) *PutWatchBuilder {
	cb := NewConditionBuilder()
	fn(cb)
	c := cb.Build()
	b.req.Condition = &c
	return b
}

// Transform sets the watch level transform. A nil transform clears it.
func (b *PutWatchBuilder) Transform(t Transform) *PutWatchBuilder {
	if t == nil {
		b.req.Transform = nil
		return b
	}
	c := t.IntoContainer()
	b.req.Transform = &c
	return b
}

// TransformWith sets the watch level transform through a builder.
func (b *PutWatchBuilder) TransformWith(fn func(*TransformBuilder)) *PutWatchBuilder {
	tb := NewTransformBuilder()
	fn(tb)
	c := tb.Build()
	b.req.Transform = &c
	return b
}

// Action adds or replaces the action called name.
func (b *PutWatchBuilder) Action(name string, fn func(*ActionBuilder)) *PutWatchBuilder {
	ab := NewActionBuilder()
	fn(ab)
	b.req.Actions.Add(name, ab.Build())
	return b
}

// Build returns a copy of the built PutWatchRequest; later calls do not affect it.
func (b *PutWatchBuilder) Build() PutWatchRequest {
	out := b.req
	out.WatchDefinition = b.req.WatchDefinition.clone()
	if b.req.Active != nil {
		active := *b.req.Active
		out.Active = &active
	}
	return out
}

// ActionExecutionMode controls how an action runs during an execute call.
type ActionExecutionMode string

const (
	ModeSimulate      ActionExecutionMode = "simulate"
	ModeForceSimulate ActionExecutionMode = "force_simulate"
	ModeExecute       ActionExecutionMode = "execute"
	ModeForceExecute  ActionExecutionMode = "force_execute"
	ModeSkip          ActionExecutionMode = "skip"
)

// ExecuteWatchRequest runs a stored watch, or the inline Watch when ID is empty.
type ExecuteWatchRequest struct {
	ID    string `json:"-"`
	Debug bool   `json:"-"`

	TriggerData      map[string]any                 `json:"trigger_data,omitempty"`
	IgnoreCondition  bool                           `json:"ignore_condition,omitempty"`
	AlternativeInput map[string]any                 `json:"alternative_input,omitempty"`
	ActionModes      map[string]ActionExecutionMode `json:"action_modes,omitempty"`
	RecordExecution  bool                           `json:"record_execution,omitempty"`
	Watch            *WatchDefinition               `json:"watch,omitempty"`
}

// Body returns the serialized request body.
func (r ExecuteWatchRequest) Body() ([]byte, error) {
	return utils.Marshal(r)
}
