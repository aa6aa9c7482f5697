package template

import (
	"strconv"
	"time"
)

// ValueType indicates the kind of a runtime [Value].
//
// The resolver computes the static value type of every bound node, so a
// method lookup against the wrong receiver kind fails at bind time rather
// than during evaluation.
type ValueType int

const (
	// ValueBoolean is true or false.
	ValueBoolean ValueType = iota

	// ValueInteger is a 64-bit signed integer.
	ValueInteger

	// ValueString is plain text.
	ValueString

	// ValueTimestamp is a point in time.
	ValueTimestamp

	// ValueTimeRange is a start/end pair of timestamps.
	ValueTimeRange

	// ValueSignature is a name/email/timestamp triple identifying an
	// author or committer.
	ValueSignature

	// ValueId is an opaque commit, change, or operation identifier.
	ValueId

	// ValueList is an ordered sequence of values. Each element renders
	// independently; elements are joined by a single space.
	ValueList

	// ValueTemplate is a deferred fragment producer, returned by built-ins
	// such as label and concat.
	ValueTemplate
)

// String returns a string representation of the value type.
func (t ValueType) String() string {
	switch t {
	case ValueBoolean:
		return "Boolean"
	case ValueInteger:
		return "Integer"
	case ValueString:
		return "String"
	case ValueTimestamp:
		return "Timestamp"
	case ValueTimeRange:
		return "TimestampRange"
	case ValueSignature:
		return "Signature"
	case ValueId:
		return "Id"
	case ValueList:
		return "List"
	case ValueTemplate:
		return "Template"
	default:
		return "Unknown"
	}
}

// Signature identifies the author or committer of a commit.
type Signature struct {
	Name      string
	Email     string
	Timestamp time.Time
}

// Username returns the local part of the email address, or the full email
// if it contains no '@'.
func (s Signature) Username() string {
	for i := 0; i < len(s.Email); i++ {
		if s.Email[i] == '@' {
			return s.Email[:i]
		}
	}

	return s.Email
}

// TimeRange is the start and end of an operation.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Value is a tagged variant over the kinds flowing through evaluation.
// Exactly the fields relevant to Type are set.
type Value struct {
	Type  ValueType
	Bool  bool
	Int   int64
	Str   string // ValueString text, or the full hex string of a ValueId
	Time  time.Time
	Range TimeRange
	Sig   Signature
	List  []Value

	// Frags produces the deferred output of a ValueTemplate.
	Frags func() ([]Fragment, error)
}

// Convenience constructors, one per kind.

func BoolValue(b bool) Value      { return Value{Type: ValueBoolean, Bool: b} }
func IntValue(n int64) Value      { return Value{Type: ValueInteger, Int: n} }
func StringValue(s string) Value  { return Value{Type: ValueString, Str: s} }
func IdValue(hex string) Value    { return Value{Type: ValueId, Str: hex} }
func TimeValue(t time.Time) Value { return Value{Type: ValueTimestamp, Time: t} }

func RangeValue(r TimeRange) Value  { return Value{Type: ValueTimeRange, Range: r} }
func SigValue(s Signature) Value    { return Value{Type: ValueSignature, Sig: s} }
func ListValue(vs []Value) Value    { return Value{Type: ValueList, List: vs} }
func StringListValue(ss []string) Value {
	vs := make([]Value, len(ss))

	for i, s := range ss {
		vs[i] = StringValue(s)
	}

	return ListValue(vs)
}

// TemplateValue wraps a deferred fragment producer.
func TemplateValue(frags func() ([]Fragment, error)) Value {
	return Value{Type: ValueTemplate, Frags: frags}
}

// render flattens a value into its fragment sequence.
//
// Every kind has a default textual rendering so any expression can appear
// in output position. Lists render each element independently, joined by a
// single space.
func (v Value) render() ([]Fragment, error) {
	switch v.Type {
	case ValueBoolean:
		return []Fragment{{Text: strconv.FormatBool(v.Bool)}}, nil

	case ValueInteger:
		return []Fragment{{Text: strconv.FormatInt(v.Int, 10)}}, nil

	case ValueString, ValueId:
		return []Fragment{{Text: v.Str}}, nil

	case ValueTimestamp:
		return []Fragment{{Text: v.Time.Format(time.RFC3339)}}, nil

	case ValueTimeRange:
		text := v.Range.Start.Format(time.RFC3339) +
			" - " + v.Range.End.Format(time.RFC3339)

		return []Fragment{{Text: text}}, nil

	case ValueSignature:
		return []Fragment{{Text: v.Sig.Name + " <" + v.Sig.Email + ">"}}, nil

	case ValueList:
		frags := make([]Fragment, 0, 2*len(v.List))

		for i, elem := range v.List {
			part, err := elem.render()
			if err != nil {
				return nil, err
			}

			if i > 0 && !isEmpty(part) && !isEmpty(frags) {
				frags = append(frags, Fragment{Text: " "})
			}

			frags = append(frags, part...)
		}

		return frags, nil

	case ValueTemplate:
		if v.Frags == nil {
			return nil, nil
		}

		return v.Frags()

	default:
		return nil, nil
	}
}
