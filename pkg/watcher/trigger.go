package watcher

import (
	"github.com/martinferreira/elasticsearch-net/internal/utils"
)

// TriggerContainer decides when a watch runs. Schedule is the only trigger
// the server knows.
type TriggerContainer struct {
	Schedule *ScheduleContainer `json:"schedule,omitempty"`
}

func (t TriggerContainer) clone() TriggerContainer {
	if t.Schedule != nil {
		s := t.Schedule.clone()
		t.Schedule = &s
	}
	return t
}

// ScheduleKind is the wire key of a schedule variant.
type ScheduleKind string

const (
	ScheduleKindInterval ScheduleKind = "interval"
	ScheduleKindCron     ScheduleKind = "cron"
	ScheduleKindHourly   ScheduleKind = "hourly"
	ScheduleKindDaily    ScheduleKind = "daily"
)

var scheduleKeys = []string{
	string(ScheduleKindInterval),
	string(ScheduleKindCron),
	string(ScheduleKindHourly),
	string(ScheduleKindDaily),
}

// Schedule is a time based trigger.
type Schedule interface {
	ScheduleKind() ScheduleKind
	IntoContainer() ScheduleContainer
}

// ScheduleContainer holds at most one schedule.
type ScheduleContainer struct {
	schedule Schedule
}

// Kind returns the populated slot, or "" when empty.
func (c ScheduleContainer) Kind() ScheduleKind {
	if c.schedule == nil {
		return ""
	}
	return c.schedule.ScheduleKind()
}

// IsEmpty reports whether no slot is populated.
func (c ScheduleContainer) IsEmpty() bool { return c.schedule == nil }

// Schedule returns the held schedule, or nil.
func (c ScheduleContainer) Schedule() Schedule {
	if c.schedule == nil {
		return nil
	}
	return c.clone().schedule
}

// MarshalJSON implements json.Marshaler.
func (c ScheduleContainer) MarshalJSON() ([]byte, error) {
	return encodeVariant(string(c.Kind()), c.schedule)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *ScheduleContainer) UnmarshalJSON(data []byte) error {
	key, raw, err := decodeVariant("schedule", data, scheduleKeys)
	if err != nil {
		return err
	}
	var s Schedule
	switch ScheduleKind(key) {
	case ScheduleKindInterval:
		var v IntervalSchedule
		err = decodePayload("schedule", key, raw, &v)
		s = v
	case ScheduleKindCron:
		var v CronSchedule
		err = decodePayload("schedule", key, raw, &v)
		s = v
	case ScheduleKindHourly:
		var v HourlySchedule
		err = decodePayload("schedule", key, raw, &v)
		s = v
	case ScheduleKindDaily:
		var v DailySchedule
		err = decodePayload("schedule", key, raw, &v)
		s = v
	}
	if err != nil {
		return err
	}
	c.schedule = s
	return nil
}

func (c ScheduleContainer) clone() ScheduleContainer {
	if c.schedule == nil {
		return c
	}
	return c.schedule.IntoContainer()
}

// IntervalSchedule runs the watch at a fixed interval. It serializes as the
// bare interval literal.
type IntervalSchedule struct {
	Interval Time
}

// ScheduleKind implements Schedule.
func (IntervalSchedule) ScheduleKind() ScheduleKind { return ScheduleKindInterval }
// IntoContainer wraps a copy of the interval schedule in a ScheduleContainer.
func (s IntervalSchedule) IntoContainer() ScheduleContainer {
	return ScheduleContainer{schedule: s}
}

// MarshalJSON implements json.Marshaler.
func (s IntervalSchedule) MarshalJSON() ([]byte, error) {
	return utils.Marshal(string(s.Interval))
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *IntervalSchedule) UnmarshalJSON(data []byte) error {
	return s.Interval.UnmarshalJSON(data)
}

// CronSchedule runs the watch on one or more cron expressions. A single
// expression serializes as a string, several as an array.
type CronSchedule struct {
	Expressions []string
}

// ScheduleKind implements Schedule.
func (CronSchedule) ScheduleKind() ScheduleKind { return ScheduleKindCron }
// IntoContainer wraps a copy of the cron schedule in a ScheduleContainer.
func (s CronSchedule) IntoContainer() ScheduleContainer {
	return ScheduleContainer{schedule: CronSchedule{Expressions: utils.CloneStrings(s.Expressions)}}
}

// MarshalJSON implements json.Marshaler.
func (s CronSchedule) MarshalJSON() ([]byte, error) {
	switch len(s.Expressions) {
	case 0:
		return nil, NewInvalidJSONError("cron_schedule", "at least one expression is required", nil)
	case 1:
		return utils.Marshal(s.Expressions[0])
	}
	return utils.Marshal(s.Expressions)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *CronSchedule) UnmarshalJSON(data []byte) error {
	var one string
	if err := utils.Unmarshal(data, &one); err == nil {
		s.Expressions = []string{one}
		return nil
	}
	var many []string
	if err := utils.Unmarshal(data, &many); err != nil {
		return NewInvalidJSONError("cron_schedule", "expected a string or an array of strings", err)
	}
	s.Expressions = many
	return nil
}

// HourlySchedule runs the watch every hour at the given minutes.
type HourlySchedule struct {
	Minute []int `json:"minute,omitempty"`
}

// ScheduleKind implements Schedule.
func (HourlySchedule) ScheduleKind() ScheduleKind { return ScheduleKindHourly }
// IntoContainer wraps a copy of the hourly schedule in a ScheduleContainer.
func (s HourlySchedule) IntoContainer() ScheduleContainer {
	if s.Minute != nil {
		s.Minute = append([]int(nil), s.Minute...)
	}
	return ScheduleContainer{schedule: s}
}

// DailySchedule runs the watch every day at the given times, e.g. "17:00".
type DailySchedule struct {
	At []string `json:"at,omitempty"`
}

// ScheduleKind implements Schedule.
func (DailySchedule) ScheduleKind() ScheduleKind { return ScheduleKindDaily }
// IntoContainer wraps a copy of the daily schedule in a ScheduleContainer.
func (s DailySchedule) IntoContainer() ScheduleContainer {
	return ScheduleContainer{schedule: DailySchedule{At: utils.CloneStrings(s.At)}}
}

// ScheduleBuilder selects one schedule kind. Each selector replaces the previous one.
type ScheduleBuilder struct {
	c ScheduleContainer
}

// NewScheduleBuilder returns an empty builder.
func NewScheduleBuilder() *ScheduleBuilder {
	return &ScheduleBuilder{}
}

// Interval runs the watch every t.
func (b *ScheduleBuilder) Interval(t Time) *ScheduleBuilder {
	b.c = IntervalSchedule{Interval: t}.IntoContainer()
	return b
}

// Cron runs the watch on the given cron expressions.
func (b *ScheduleBuilder) Cron(expressions ...string) *ScheduleBuilder {
	b.c = CronSchedule{Expressions: expressions}.IntoContainer()
	return b
}

// Hourly runs the watch every hour at the given minutes.
func (b *ScheduleBuilder) Hourly(minutes ...int) *ScheduleBuilder {
	b.c = HourlySchedule{Minute: minutes}.IntoContainer()
	return b
}

// Daily runs the watch every day at the given times.
func (b *ScheduleBuilder) Daily(at ...string) *ScheduleBuilder {
	b.c = DailySchedule{At: at}.IntoContainer()
	return b
}

// Build returns the built ScheduleContainer.
func (b *ScheduleBuilder) Build() ScheduleContainer {
	return b.c
}

// ScheduleTrigger is shorthand for a trigger holding a single schedule.
func ScheduleTrigger(s Schedule) TriggerContainer {
	if s == nil {
		return TriggerContainer{}
	}
	c := s.IntoContainer()
	return TriggerContainer{Schedule: &c}
}
