package tidy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lestrrat-go/tidy/node"
)

type Severity int

const (
	SeverityInfo Severity = iota + 1
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "Info"
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	}
	return "Unknown"
}

func (s Severity) level() slog.Level {
	switch s {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityError:
		return slog.LevelError
	}
	return slog.LevelWarn
}

// Code identifies the kind of a Diagnostic.
type Code int

const (
	MissingValue Code = iota + 1
	BadValue
	UnknownAttribute
	RepeatedAttribute
	ProprietaryValue
	XMLVersionMismatch
	ProprietaryAttribute
	BackslashInURI
	FixedBackslash
	UnknownElement
	ObsoleteElement
	MissingEndTag
	DiscardingUnexpected
	InsertingTag
	InvalidUTF8
	MalformedComment
	MissingTitleElement
	InconsistentVersion
)

func (c Code) String() string {
	switch c {
	case MissingValue:
		return "MissingValue"
	case BadValue:
		return "BadValue"
	case UnknownAttribute:
		return "UnknownAttribute"
	case RepeatedAttribute:
		return "RepeatedAttribute"
	case ProprietaryValue:
		return "ProprietaryValue"
	case XMLVersionMismatch:
		return "XMLVersionMismatch"
	case ProprietaryAttribute:
		return "ProprietaryAttribute"
	case BackslashInURI:
		return "BackslashInURI"
	case FixedBackslash:
		return "FixedBackslash"
	case UnknownElement:
		return "UnknownElement"
	case ObsoleteElement:
		return "ObsoleteElement"
	case MissingEndTag:
		return "MissingEndTag"
	case DiscardingUnexpected:
		return "DiscardingUnexpected"
	case InsertingTag:
		return "InsertingTag"
	case InvalidUTF8:
		return "InvalidUTF8"
	case MalformedComment:
		return "MalformedComment"
	case MissingTitleElement:
		return "MissingTitleElement"
	case InconsistentVersion:
		return "InconsistentVersion"
	}
	return "Unknown"
}

// Severity is the severity a diagnostic with this code is reported at.
func (c Code) Severity() Severity {
	switch c {
	case FixedBackslash:
		return SeverityInfo
	case UnknownElement:
		return SeverityError
	}
	return SeverityWarning
}

// Diagnostic describes one problem found in the input. Content problems
// never stop a parse; they are only reported.
type Diagnostic struct {
	Severity  Severity
	Code      Code
	Node      node.ID
	Element   string
	Attribute string
	Value     string
	Line      int
	Column    int
}

func (d Diagnostic) Message() string {
	switch d.Code {
	case MissingValue:
		return fmt.Sprintf("<%s> attribute %q lacks value", d.Element, d.Attribute)
	case BadValue:
		return fmt.Sprintf("<%s> attribute %q has invalid value %q", d.Element, d.Attribute, d.Value)
	case UnknownAttribute:
		return fmt.Sprintf("<%s> unknown attribute %q", d.Element, d.Attribute)
	case RepeatedAttribute:
		return fmt.Sprintf("<%s> repeated attribute %q", d.Element, d.Attribute)
	case ProprietaryValue:
		return fmt.Sprintf("<%s> proprietary attribute value %q", d.Element, d.Value)
	case XMLVersionMismatch:
		return fmt.Sprintf("<%s> has XML attribute %q", d.Element, d.Attribute)
	case ProprietaryAttribute:
		return fmt.Sprintf("<%s> proprietary attribute %q", d.Element, d.Attribute)
	case BackslashInURI:
		return fmt.Sprintf("<%s> escaping malformed URI reference %q", d.Element, d.Value)
	case FixedBackslash:
		return fmt.Sprintf("<%s> converting backslash in URI to slash", d.Element)
	case UnknownElement:
		return fmt.Sprintf("<%s> is not recognized", d.Element)
	case ObsoleteElement:
		return fmt.Sprintf("<%s> is obsolete", d.Element)
	case MissingEndTag:
		return fmt.Sprintf("missing </%s>", d.Element)
	case DiscardingUnexpected:
		return fmt.Sprintf("discarding unexpected %s", d.Element)
	case InsertingTag:
		return fmt.Sprintf("inserting implicit <%s>", d.Element)
	case InvalidUTF8:
		return fmt.Sprintf("replacing invalid character at byte %s", d.Value)
	case MalformedComment:
		return "malformed comment"
	case MissingTitleElement:
		return "inserting missing 'title' element"
	case InconsistentVersion:
		return fmt.Sprintf("DOCTYPE does not match content, which looks like %s", d.Value)
	}
	return d.Code.String()
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d column %d - %s: %s", d.Line, d.Column, d.Severity, d.Message())
}

// DiagnosticSink receives diagnostics in the order they are found.
type DiagnosticSink interface {
	Report(Diagnostic)
}

type DiagnosticSinkFunc func(Diagnostic)

func (f DiagnosticSinkFunc) Report(d Diagnostic) {
	f(d)
}

// DiagnosticList collects everything reported to it.
type DiagnosticList []Diagnostic

func (l *DiagnosticList) Report(d Diagnostic) {
	*l = append(*l, d)
}

// Count returns the number of diagnostics with the given code.
func (l DiagnosticList) Count(c Code) int {
	var n int
	for _, d := range l {
		if d.Code == c {
			n++
		}
	}
	return n
}

func (l DiagnosticList) Filter(c Code) DiagnosticList {
	var out DiagnosticList
	for _, d := range l {
		if d.Code == c {
			out = append(out, d)
		}
	}
	return out
}

// MaxSeverity returns the most severe level in the list, or 0.
func (l DiagnosticList) MaxSeverity() Severity {
	var s Severity
	for _, d := range l {
		s = max(s, d.Severity)
	}
	return s
}

type nullSink struct{}

func (nullSink) Report(Diagnostic) {}

type logSink struct {
	logger *slog.Logger
}

// NewLogSink writes every diagnostic to logger.
func NewLogSink(logger *slog.Logger) DiagnosticSink {
	return &logSink{logger: logger}
}

func (s *logSink) Report(d Diagnostic) {
	attrs := []slog.Attr{
		slog.String("code", d.Code.String()),
		slog.Int("line", d.Line),
		slog.Int("column", d.Column),
	}
	if d.Element != "" {
		attrs = append(attrs, slog.String("element", d.Element))
	}
	if d.Attribute != "" {
		attrs = append(attrs, slog.String("attribute", d.Attribute))
	}
	s.logger.LogAttrs(context.Background(), d.Severity.level(), d.Message(), attrs...)
}
