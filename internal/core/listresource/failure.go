package listresource

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"adminconsole/internal/domain/audit"
)

// GenericFailureMessage is shown when a failure carries nothing usable.
const GenericFailureMessage = "Operation failed. Please try again."

// Failure is the classified outcome of a failed mutation. It is one of
// FieldErrors, GeneralMessage or UnknownFailure.
type Failure interface {
	Kind() audit.FailureKind
	isFailure()
}

// FieldErrors maps a form field to its messages. The first message is shown inline.
type FieldErrors map[string][]string

func (FieldErrors) Kind() audit.FailureKind { return audit.FailureFields }
func (FieldErrors) isFailure()              {}

// First returns the inline message for field.
func (fe FieldErrors) First(field string) string {
	if msgs := fe[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (fe FieldErrors) clone() FieldErrors {
	out := make(FieldErrors, len(fe))
	for k, v := range fe {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// GeneralMessage is a failure with messages that belong to no field.
type GeneralMessage struct {
	Messages []string
}

func (GeneralMessage) Kind() audit.FailureKind { return audit.FailureMessage }
func (GeneralMessage) isFailure()              {}

// Text joins the messages for a single notification.
func (g GeneralMessage) Text() string {
	return strings.Join(g.Messages, "; ")
}

// UnknownFailure covers transport errors and unparseable bodies.
type UnknownFailure struct {
	StatusCode int
	Cause      error
}

func (UnknownFailure) Kind() audit.FailureKind { return audit.FailureUnknown }
func (UnknownFailure) isFailure()              {}

func (u UnknownFailure) Error() string {
	if u.Cause != nil {
		return u.Cause.Error()
	}
	return fmt.Sprintf("unrecognized failure (status %d)", u.StatusCode)
}

var (
	fieldNameKeys = []string{"field", "path", "param", "property"}
	messageKeys   = []string{"message", "msg", "reason", "error"}
)

// ClassifyFailure returns nil when the call succeeded, otherwise the failure
// shape found in the reply body.
func ClassifyFailure(reply *Reply, err error) Failure {
	if err != nil {
		return UnknownFailure{Cause: err}
	}
	if reply == nil {
		return UnknownFailure{}
	}

	var root gjson.Result
	if gjson.ValidBytes(reply.Body) {
		root = gjson.ParseBytes(reply.Body)
	}
	flaggedFailure := root.Get("success").Exists() && root.Get("success").Type == gjson.False
	if reply.OK() && !flaggedFailure {
		return nil
	}
	if !root.IsObject() {
		return UnknownFailure{StatusCode: reply.StatusCode}
	}

	for _, obj := range []gjson.Result{root, root.Get("data")} {
		if !obj.IsObject() {
			continue
		}
		if f := classifyObject(obj); f != nil {
			return f
		}
	}
	return UnknownFailure{StatusCode: reply.StatusCode}
}

// classifyObject applies the rules in order: per-field errors win over any
// accompanying summary message.
func classifyObject(obj gjson.Result) Failure {
	fields := FieldErrors{}
	var general []string

	errs := obj.Get("errors")
	switch {
	case errs.IsObject():
		errs.ForEach(func(key, value gjson.Result) bool {
			if msgs := messagesOf(value); len(msgs) > 0 {
				fields[key.String()] = msgs
			}
			return true
		})
	case errs.IsArray():
		for _, e := range errs.Array() {
			if e.Type == gjson.String {
				if strings.TrimSpace(e.Str) != "" {
					general = append(general, e.Str)
				}
				continue
			}
			if !e.IsObject() {
				continue
			}
			msg := firstString(e, messageKeys)
			if msg == "" {
				continue
			}
			if name := firstString(e, fieldNameKeys); name != "" {
				fields[name] = append(fields[name], msg)
			} else {
				general = append(general, msg)
			}
		}
	}
	if len(fields) > 0 {
		return fields
	}

	if len(general) == 0 {
		general = messagesOf(obj.Get("message"))
	}
	if len(general) == 0 {
		general = messagesOf(obj.Get("error"))
	}
	if len(general) > 0 {
		return GeneralMessage{Messages: general}
	}
	return nil
}

// messagesOf accepts a string, a list of strings, or an object with a message.
func messagesOf(v gjson.Result) []string {
	switch {
	case v.Type == gjson.String:
		if strings.TrimSpace(v.Str) != "" {
			return []string{v.Str}
		}
	case v.IsArray():
		var out []string
		for _, e := range v.Array() {
			out = append(out, messagesOf(e)...)
		}
		return out
	case v.IsObject():
		if s := firstString(v, messageKeys); s != "" {
			return []string{s}
		}
	}
	return nil
}

func firstString(obj gjson.Result, keys []string) string {
	for _, k := range keys {
		if v := obj.Get(k); v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
			return v.Str
		}
	}
	return ""
}
