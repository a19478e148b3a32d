// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package datatype

import (
	"fmt"
	"strings"
	"time"
)

// XSDate, XSTime and XSDateTime carry an explicit "has timezone" flag
// because XACML's date/time comparison semantics treat a lexical form
// without a timezone offset as distinct from one that is UTC ("Z").
type XSDateTime struct {
	Time     time.Time
	HasZone  bool
}

type XSDate struct {
	Year, Month, Day int
	HasZone          bool
	ZoneOffset       int // seconds east of UTC, valid when HasZone
}

type XSTime struct {
	Hour, Min, Sec, Nanosec int
	HasZone                 bool
	ZoneOffset              int
}

type dateTimeType struct{}

func (dateTimeType) ID() ID { return DateTime }

func (dateTimeType) Parse(lexical string) (any, error) {
	l := strings.TrimSpace(lexical)
	hasZone := strings.HasSuffix(l, "Z") || hasExplicitOffset(l)
	layouts := []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, l); err == nil {
			if !hasZone {
				t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
			}
			return XSDateTime{Time: t, HasZone: hasZone}, nil
		}
	}
	return nil, &SyntaxError{Datatype: DateTime, Lexical: lexical, Reason: "not a valid xs:dateTime"}
}

func hasExplicitOffset(l string) bool {
	idx := strings.IndexAny(l, "T")
	if idx < 0 {
		return false
	}
	rest := l[idx+1:]
	return strings.ContainsAny(rest, "+") || strings.Count(rest, "-") > 0
}

func (dateTimeType) Serialize(value any) (string, error) {
	dt, ok := value.(XSDateTime)
	if !ok {
		return "", &SyntaxError{Datatype: DateTime, Reason: "value is not XSDateTime"}
	}
	if dt.HasZone {
		return dt.Time.Format(time.RFC3339Nano), nil
	}
	return dt.Time.Format("2006-01-02T15:04:05.999999999"), nil
}

func (dateTimeType) Equal(a, b any) bool {
	x, y := a.(XSDateTime), b.(XSDateTime)
	return x.HasZone == y.HasZone && x.Time.Equal(y.Time)
}

func (dateTimeType) Orderable() bool { return true }

func (dateTimeType) Compare(a, b any) (int, error) {
	x, y := a.(XSDateTime), b.(XSDateTime)
	switch {
	case x.Time.Before(y.Time):
		return -1, nil
	case x.Time.After(y.Time):
		return 1, nil
	default:
		return 0, nil
	}
}

type dateType struct{}

func (dateType) ID() ID { return Date }

func (dateType) Parse(lexical string) (any, error) {
	l := strings.TrimSpace(lexical)
	hasZone := strings.HasSuffix(l, "Z") || hasDateOffset(l)
	base := l
	offset := 0
	if idx := strings.IndexAny(l, "Z+"); idx > 0 {
		base = l[:idx]
	} else if idx := strings.LastIndex(l, "-"); idx > 10 {
		base = l[:idx]
	}
	t, err := time.Parse("2006-01-02", base)
	if err != nil {
		return nil, &SyntaxError{Datatype: Date, Lexical: lexical, Reason: "not a valid xs:date"}
	}
	return XSDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day(), HasZone: hasZone, ZoneOffset: offset}, nil
}

func hasDateOffset(l string) bool {
	if len(l) < 11 {
		return false
	}
	rest := l[10:]
	return rest != "" && (rest[0] == 'Z' || rest[0] == '+' || rest[0] == '-')
}

func (dateType) Serialize(value any) (string, error) {
	d, ok := value.(XSDate)
	if !ok {
		return "", &SyntaxError{Datatype: Date, Reason: "value is not XSDate"}
	}
	s := fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	if d.HasZone {
		s += "Z"
	}
	return s, nil
}

func (dateType) Equal(a, b any) bool {
	x, y := a.(XSDate), b.(XSDate)
	return x.Year == y.Year && x.Month == y.Month && x.Day == y.Day && x.HasZone == y.HasZone
}

func (dateType) Orderable() bool { return true }

func (dateType) Compare(a, b any) (int, error) {
	x, y := a.(XSDate), b.(XSDate)
	xt := time.Date(x.Year, time.Month(x.Month), x.Day, 0, 0, 0, 0, time.UTC)
	yt := time.Date(y.Year, time.Month(y.Month), y.Day, 0, 0, 0, 0, time.UTC)
	switch {
	case xt.Before(yt):
		return -1, nil
	case xt.After(yt):
		return 1, nil
	default:
		return 0, nil
	}
}

type timeType struct{}

func (timeType) ID() ID { return Time }

func (timeType) Parse(lexical string) (any, error) {
	l := strings.TrimSpace(lexical)
	hasZone := strings.HasSuffix(l, "Z") || strings.ContainsAny(l, "+")
	layouts := []string{"15:04:05.999999999Z07:00", "15:04:05Z07:00", "15:04:05.999999999", "15:04:05"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, l); err == nil {
			return XSTime{Hour: t.Hour(), Min: t.Minute(), Sec: t.Second(), Nanosec: t.Nanosecond(), HasZone: hasZone}, nil
		}
	}
	return nil, &SyntaxError{Datatype: Time, Lexical: lexical, Reason: "not a valid xs:time"}
}

func (timeType) Serialize(value any) (string, error) {
	t, ok := value.(XSTime)
	if !ok {
		return "", &SyntaxError{Datatype: Time, Reason: "value is not XSTime"}
	}
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Min, t.Sec)
	if t.Nanosec > 0 {
		s += fmt.Sprintf(".%09d", t.Nanosec)
	}
	if t.HasZone {
		s += "Z"
	}
	return s, nil
}

func (timeType) Equal(a, b any) bool {
	x, y := a.(XSTime), b.(XSTime)
	return x.Hour == y.Hour && x.Min == y.Min && x.Sec == y.Sec && x.Nanosec == y.Nanosec && x.HasZone == y.HasZone
}

func (timeType) Orderable() bool { return true }

func (timeType) Compare(a, b any) (int, error) {
	x, y := a.(XSTime), b.(XSTime)
	xs := x.Hour*3600 + x.Min*60 + x.Sec
	ys := y.Hour*3600 + y.Min*60 + y.Sec
	switch {
	case xs < ys, xs == ys && x.Nanosec < y.Nanosec:
		return -1, nil
	case xs > ys, xs == ys && x.Nanosec > y.Nanosec:
		return 1, nil
	default:
		return 0, nil
	}
}

func init() {
	register(dateTimeType{})
	register(dateType{})
	register(timeType{})
}
