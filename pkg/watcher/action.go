package watcher

import (
	"github.com/duke-git/lancet/v2/slice"

	"github.com/martinferreira/elasticsearch-net/internal/utils"
)

// ActionKind is the wire key of an action variant.
type ActionKind string

const (
	ActionKindLogging ActionKind = "logging"
	ActionKindIndex   ActionKind = "index"
	ActionKindWebhook ActionKind = "webhook"
	ActionKindEmail   ActionKind = "email"
)

var actionKeys = []string{
	string(ActionKindLogging),
	string(ActionKindIndex),
	string(ActionKindWebhook),
	string(ActionKindEmail),
}

// ActionSpec is the kind specific part of an action.
type ActionSpec interface {
	ActionKind() ActionKind
	// IntoAction wraps the spec in an action with no common fields set.
	IntoAction() Action
}

// Action is a single named entry of a watch's actions. The common fields
// sit next to the one kind key in the same object.
type Action struct {
	ThrottlePeriod Time
	Transform      *TransformContainer
	Condition      *ConditionContainer
	spec           ActionSpec
}

// Kind returns the populated slot, or "" when empty.
func (a Action) Kind() ActionKind {
	if a.spec == nil {
		return ""
	}
	return a.spec.ActionKind()
}

// Spec returns the kind specific part, or nil.
func (a Action) Spec() ActionSpec { return a.spec }

// Logging returns the logging slot.
func (a Action) Logging() (LoggingAction, bool) {
	v, ok := a.spec.(LoggingAction)
	return v, ok
}

// Index returns the index slot.
func (a Action) Index() (IndexAction, bool) {
	v, ok := a.spec.(IndexAction)
	return v, ok
}

// Webhook returns the webhook slot.
func (a Action) Webhook() (WebhookAction, bool) {
	v, ok := a.spec.(WebhookAction)
	if ok {
		v = v.clone()
	}
	return v, ok
}

// Email returns the email slot.
func (a Action) Email() (EmailAction, bool) {
	v, ok := a.spec.(EmailAction)
	if ok {
		v = v.clone()
	}
	return v, ok
}

func (a Action) clone() Action {
	out := Action{ThrottlePeriod: a.ThrottlePeriod}
	if a.Transform != nil {
		t := a.Transform.clone()
		out.Transform = &t
	}
	if a.Condition != nil {
		c := a.Condition.clone()
		out.Condition = &c
	}
	if a.spec != nil {
		out.spec = a.spec.IntoAction().spec
	}
	return out
}

type actionCommon struct {
	ThrottlePeriod Time                `json:"throttle_period,omitempty"`
	Transform      *TransformContainer `json:"transform,omitempty"`
	Condition      *ConditionContainer `json:"condition,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (a Action) MarshalJSON() ([]byte, error) {
	var members []utils.Member
	if !a.ThrottlePeriod.IsZero() {
		raw, err := utils.Marshal(string(a.ThrottlePeriod))
		if err != nil {
			return nil, err
		}
		members = append(members, utils.Member{Key: "throttle_period", Raw: raw})
	}
	if a.Condition != nil {
		raw, err := a.Condition.MarshalJSON()
		if err != nil {
			return nil, err
		}
		members = append(members, utils.Member{Key: "condition", Raw: raw})
	}
	if a.Transform != nil {
		raw, err := a.Transform.MarshalJSON()
		if err != nil {
			return nil, err
		}
		members = append(members, utils.Member{Key: "transform", Raw: raw})
	}
	if a.spec != nil {
		raw, err := utils.Marshal(a.spec)
		if err != nil {
			return nil, err
		}
		members = append(members, utils.Member{Key: string(a.Kind()), Raw: raw})
	}
	return utils.WriteObject(members)
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Action) UnmarshalJSON(data []byte) error {
	key, raw, err := decodeVariant("action", data, actionKeys)
	if err != nil {
		return err
	}
	var common actionCommon
	if !utils.IsNull(data) {
		if err := utils.Unmarshal(data, &common); err != nil {
			if _, ok := err.(*Error); ok {
				return err
			}
			return NewInvalidJSONError("action", "invalid common fields", err)
		}
	}
	var spec ActionSpec
	switch ActionKind(key) {
	case ActionKindLogging:
		var v LoggingAction
		err = decodePayload("action", key, raw, &v)
		spec = v
	case ActionKindIndex:
		var v IndexAction
		err = decodePayload("action", key, raw, &v)
		spec = v
	case ActionKindWebhook:
		var v WebhookAction
		err = decodePayload("action", key, raw, &v)
		spec = v
	case ActionKindEmail:
		var v EmailAction
		err = decodePayload("action", key, raw, &v)
		spec = v
	}
	if err != nil {
		return err
	}
	*a = Action{
		ThrottlePeriod: common.ThrottlePeriod,
		Transform:      common.Transform,
		Condition:      common.Condition,
		spec:           spec,
	}
	return nil
}

// LoggingAction writes a line to the server log.
type LoggingAction struct {
	Text     string       `json:"text"`
	Level    LoggingLevel `json:"level,omitempty"`
	Category string       `json:"category,omitempty"`
}

// ActionKind implements ActionSpec.
func (LoggingAction) ActionKind() ActionKind { return ActionKindLogging }
// IntoAction wraps a copy of the logging action in an Action.
func (l LoggingAction) IntoAction() Action { return Action{spec: l} }

// IndexAction indexes the payload as a document.
type IndexAction struct {
	Index              string `json:"index,omitempty"`
	DocID              string `json:"doc_id,omitempty"`
	ExecutionTimeField string `json:"execution_time_field,omitempty"`
	Timeout            Time   `json:"timeout,omitempty"`
}

// ActionKind implements ActionSpec.
func (IndexAction) ActionKind() ActionKind { return ActionKindIndex }
// IntoAction wraps a copy of the index action in an Action.
func (i IndexAction) IntoAction() Action { return Action{spec: i} }

// WebhookAction calls an HTTP endpoint. It has the same shape as an input request.
type WebhookAction struct {
	WatcherHTTPRequest
}

// ActionKind implements ActionSpec.
func (WebhookAction) ActionKind() ActionKind { return ActionKindWebhook }
// IntoAction wraps a copy of the webhook action in an Action.
func (w WebhookAction) IntoAction() Action { return Action{spec: w.clone()} }

func (w WebhookAction) clone() WebhookAction {
	return WebhookAction{WatcherHTTPRequest: w.WatcherHTTPRequest.clone()}
}

// EmailBody is the plain text and html body of an email.
type EmailBody struct {
	Text string `json:"text,omitempty"`
	HTML string `json:"html,omitempty"`
}

// EmailAction sends an email through a configured account.
type EmailAction struct {
	Account  string        `json:"account,omitempty"`
	From     string        `json:"from,omitempty"`
	To       []string      `json:"to,omitempty"`
	Cc       []string      `json:"cc,omitempty"`
	Bcc      []string      `json:"bcc,omitempty"`
	ReplyTo  []string      `json:"reply_to,omitempty"`
	Subject  string        `json:"subject,omitempty"`
	Body     *EmailBody    `json:"body,omitempty"`
	Priority EmailPriority `json:"priority,omitempty"`
}

// ActionKind implements ActionSpec.
func (EmailAction) ActionKind() ActionKind { return ActionKindEmail }
// IntoAction wraps a copy of the email action in an Action.
func (e EmailAction) IntoAction() Action { return Action{spec: e.clone()} }

func (e EmailAction) clone() EmailAction {
	e.To = utils.CloneStrings(e.To)
	e.Cc = utils.CloneStrings(e.Cc)
	e.Bcc = utils.CloneStrings(e.Bcc)
	e.ReplyTo = utils.CloneStrings(e.ReplyTo)
	if e.Body != nil {
		body := *e.Body
		e.Body = &body
	}
	return e
}

// NamedAction pairs an action with its caller-chosen name.
type NamedAction struct {
	Name   string
	Action Action
}

// Actions is the ordered set of a watch's actions. It serializes as a JSON
// object whose keys keep insertion order and casing.
type Actions []NamedAction

// Add appends an action, or replaces the action of the same name in place.
func (as *Actions) Add(name string, action Action) {
	action = action.clone()
	for i := range *as {
		if (*as)[i].Name == name {
			(*as)[i].Action = action
			return
		}
	}
	*as = append(*as, NamedAction{Name: name, Action: action})
}

// Get returns the action with the given name.
func (as Actions) Get(name string) (Action, bool) {
	for _, na := range as {
		if na.Name == name {
			return na.Action.clone(), true
		}
	}
	return Action{}, false
}

// Names returns the action names in order.
func (as Actions) Names() []string {
	return slice.Map(as, func(_ int, na NamedAction) string { return na.Name })
}

func (as Actions) clone() Actions {
	if as == nil {
		return nil
	}
	out := make(Actions, len(as))
	for i, na := range as {
		out[i] = NamedAction{Name: na.Name, Action: na.Action.clone()}
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (as Actions) MarshalJSON() ([]byte, error) {
	members := make([]utils.Member, 0, len(as))
	for _, na := range as {
		raw, err := na.Action.MarshalJSON()
		if err != nil {
			return nil, err
		}
		members = append(members, utils.Member{Key: na.Name, Raw: raw})
	}
	return utils.WriteObject(members)
}

// UnmarshalJSON implements json.Unmarshaler. Entries keep document order.
func (as *Actions) UnmarshalJSON(data []byte) error {
	if utils.IsNull(data) {
		*as = nil
		return nil
	}
	members, err := utils.ObjectMembers(data)
	if err != nil {
		return NewInvalidJSONError("actions", "expected a json object", err)
	}
	var out Actions
	for _, m := range members {
		var a Action
		if err := a.UnmarshalJSON(m.Raw); err != nil {
			return err
		}
		out.Add(m.Key, a)
	}
	*as = out
	return nil
}

// ActionBuilder builds an Action.
type ActionBuilder struct {
	a Action
}

// NewActionBuilder returns an empty builder.
func NewActionBuilder() *ActionBuilder {
	return &ActionBuilder{}
}

// ThrottlePeriod sets the minimum time between runs of this action.
func (b *ActionBuilder) ThrottlePeriod(t Time) *ActionBuilder {
	b.a.ThrottlePeriod = t
	return b
}

// Transform sets the action transform. A nil transform clears it.
func (b *ActionBuilder) Transform(t Transform) *ActionBuilder {
	if t == nil {
		b.a.Transform = nil
		return b
	}
	c := t.IntoContainer()
	b.a.Transform = &c
	return b
}

// TransformWith configures the action transform through a builder.
func (b *ActionBuilder) TransformWith(fn func(*TransformBuilder)) *ActionBuilder {
	tb := NewTransformBuilder()
	fn(tb)
	c := tb.Build()
	b.a.Transform = &c
	return b
}

// Condition sets the action condition. A nil condition clears it.
func (b *ActionBuilder) Condition(c Condition) *ActionBuilder {
	if c == nil {
		b.a.Condition = nil
		return b
	}
	cc := c.IntoContainer()
	b.a.Condition = &cc
	return b
}

// ConditionWith configures the action condition through a builder.
func (b *ActionBuilder) ConditionWith(fn func(*ConditionBuilder)) *ActionBuilder {
	cb := NewConditionBuilder()
	fn(cb)
	c := cb.Build()
	b.a.Condition = &c
	return b
}

// Spec sets the kind specific part, replacing any previous one.
func (b *ActionBuilder) Spec(spec ActionSpec) *ActionBuilder {
	if spec == nil {
		b.a.spec = nil
		return b
	}
	b.a.spec = spec.IntoAction().spec
	return b
}

// Logging makes this a logging action.
func (b *ActionBuilder) Logging(text string, level LoggingLevel) *ActionBuilder {
	return b.Spec(LoggingAction{Text: text, Level: level})
}

// Index makes this an index action writing to index.
func (b *ActionBuilder) Index(index string) *ActionBuilder {
	return b.Spec(IndexAction{Index: index})
}

// Webhook makes this a webhook action.
func (b *ActionBuilder) Webhook(fn func(*WatcherHTTPRequestBuilder)) *ActionBuilder {
	rb := NewWatcherHTTPRequestBuilder()
	fn(rb)
	return b.Spec(WebhookAction{WatcherHTTPRequest: rb.Build()})
}

// Email makes this an email action.
func (b *ActionBuilder) Email(fn func(*EmailActionBuilder)) *ActionBuilder {
	eb := NewEmailActionBuilder()
	fn(eb)
	return b.Spec(eb.Build())
}

// Build returns a copy of the built Action; later calls do not affect it.
func (b *ActionBuilder) Build() Action {
	return b.a.clone()
}

// EmailActionBuilder builds an EmailAction.
type EmailActionBuilder struct {
	e EmailAction
}

// NewEmailActionBuilder returns an empty builder.
func NewEmailActionBuilder() *EmailActionBuilder {
	return &EmailActionBuilder{}
}

// Account selects the configured email account.
func (b *EmailActionBuilder) Account(account string) *EmailActionBuilder {
	b.e.Account = account
	return b
}

// From sets the from.
func (b *EmailActionBuilder) From(from string) *EmailActionBuilder {
	b.e.From = from
	return b
}

// To adds recipients, skipping ones already present.
func (b *EmailActionBuilder) To(to ...string) *EmailActionBuilder {
	b.e.To = slice.Union(b.e.To, to)
	return b
}

// Cc adds cc recipients, skipping ones already present.
func (b *EmailActionBuilder) Cc(cc ...string) *EmailActionBuilder {
	b.e.Cc = slice.Union(b.e.Cc, cc)
	return b
}

// Bcc adds bcc recipients, skipping ones already present.
func (b *EmailActionBuilder) Bcc(bcc ...string) *EmailActionBuilder {
	b.e.Bcc = slice.Union(b.e.Bcc, bcc)
	return b
}

// ReplyTo adds reply-to addresses, skipping ones already present.
func (b *EmailActionBuilder) ReplyTo(replyTo ...string) *EmailActionBuilder {
	b.e.ReplyTo = slice.Union(b.e.ReplyTo, replyTo)
	return b
}

// Subject sets the subject.
func (b *EmailActionBuilder) Subject(subject string) *EmailActionBuilder {
	b.e.Subject = subject
	return b
}

// TextBody sets the plain text body.
func (b *EmailActionBuilder) TextBody(text string) *EmailActionBuilder {
	if b.e.Body == nil {
		b.e.Body = &EmailBody{}
	}
	b.e.Body.Text = text
	return b
}

// HTMLBody sets the html body.
func (b *EmailActionBuilder) HTMLBody(html string) *EmailActionBuilder {
	if b.e.Body == nil {
		b.e.Body = &EmailBody{}
	}
	b.e.Body.HTML = html
	return b
}

// Priority sets the priority.
func (b *EmailActionBuilder) Priority(p EmailPriority) *EmailActionBuilder {
	b.e.Priority = p
	return b
}

// Build returns the built EmailAction.
func (b *EmailActionBuilder) Build() EmailAction {
	return b.e.clone()
}

// ActionsBuilder collects named actions in insertion order.
type ActionsBuilder struct {
	actions Actions
}

// NewActionsBuilder returns an empty builder.
func NewActionsBuilder() *ActionsBuilder {
	return &ActionsBuilder{}
}

// Add configures the action called name. Adding a name twice replaces the
// first action but keeps its position.
func (b *ActionsBuilder) Add(name string, fn func(*ActionBuilder)) *ActionsBuilder {
	ab := NewActionBuilder()
	fn(ab)
	b.actions.Add(name, ab.Build())
	return b
}

// Build returns the built Actions.
func (b *ActionsBuilder) Build() Actions {
	return b.actions.clone()
}
