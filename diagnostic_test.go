package tidy

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeSeverity(t *testing.T) {
	require.Equal(t, SeverityInfo, FixedBackslash.Severity())
	require.Equal(t, SeverityError, UnknownElement.Severity())
	for _, c := range []Code{MissingValue, BadValue, RepeatedAttribute, MissingEndTag, InvalidUTF8, MissingTitleElement} {
		require.Equal(t, SeverityWarning, c.Severity(), "%s", c)
	}
	require.Equal(t, "Unknown", Code(0).String())
	require.Equal(t, "Unknown", Severity(0).String())
}

func TestDiagnosticMessage(t *testing.T) {
	testcases := []struct {
		diag   Diagnostic
		expect string
	}{
		{Diagnostic{Code: MissingValue, Element: "a", Attribute: "href"}, `<a> attribute "href" lacks value`},
		{Diagnostic{Code: BadValue, Element: "p", Attribute: "align", Value: "up"}, `<p> attribute "align" has invalid value "up"`},
		{Diagnostic{Code: ProprietaryValue, Element: "img", Value: "texttop"}, `<img> proprietary attribute value "texttop"`},
		{Diagnostic{Code: UnknownElement, Element: "foo"}, `<foo> is not recognized`},
		{Diagnostic{Code: MissingEndTag, Element: "b"}, `missing </b>`},
		{Diagnostic{Code: InsertingTag, Element: "ul"}, `inserting implicit <ul>`},
		{Diagnostic{Code: InvalidUTF8, Value: "12"}, `replacing invalid character at byte 12`},
		{Diagnostic{Code: MissingTitleElement}, `inserting missing 'title' element`},
		{Diagnostic{Code: InconsistentVersion, Value: "HTML 3.2"}, `DOCTYPE does not match content, which looks like HTML 3.2`},
	}
	for _, tc := range testcases {
		t.Run(tc.diag.Code.String(), func(t *testing.T) {
			require.Equal(t, tc.expect, tc.diag.Message())
		})
	}

	d := Diagnostic{Severity: SeverityWarning, Code: MissingEndTag, Element: "b", Line: 3, Column: 7}
	require.Equal(t, "line 3 column 7 - Warning: missing </b>", d.String())
}

func TestDiagnosticList(t *testing.T) {
	var l DiagnosticList
	require.Equal(t, Severity(0), l.MaxSeverity())

	l.Report(Diagnostic{Code: MissingEndTag, Severity: SeverityWarning})
	l.Report(Diagnostic{Code: FixedBackslash, Severity: SeverityInfo})
	l.Report(Diagnostic{Code: MissingEndTag, Severity: SeverityWarning})

	require.Len(t, l, 3)
	require.Equal(t, 2, l.Count(MissingEndTag))
	require.Zero(t, l.Count(UnknownElement))
	require.Len(t, l.Filter(FixedBackslash), 1)
	require.Equal(t, SeverityWarning, l.MaxSeverity())
}

func TestDiagnosticOrder(t *testing.T) {
	var codes []Code
	sink := DiagnosticSinkFunc(func(d Diagnostic) {
		codes = append(codes, d.Code)
	})
	_, err := NewParser(WithDiagnosticSink(sink)).Parse(t.Context(), []byte(`<foo>x</foo><p align="up">`))
	require.NoError(t, err)
	require.Equal(t, []Code{UnknownElement, BadValue, MissingTitleElement}, codes)
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	sink := NewLogSink(logger)
	sink.Report(Diagnostic{
		Severity:  SeverityWarning,
		Code:      BadValue,
		Element:   "p",
		Attribute: "align",
		Value:     "up",
		Line:      2,
		Column:    5,
	})

	out := buf.String()
	require.Contains(t, out, "level=WARN")
	require.Contains(t, out, "code=BadValue")
	require.Contains(t, out, "line=2")
	require.Contains(t, out, "column=5")
	require.Contains(t, out, "element=p")
	require.Contains(t, out, "attribute=align")
}
