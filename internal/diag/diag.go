// Package diag collects line-tagged diagnostics produced while assembling a
// single source file.
package diag

import (
	"fmt"
	"strings"
)

// Severity is the tag printed at the front of every diagnostic line.
type Severity int

const (
	Warning Severity = iota
	Error
	Critical
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "WARNING"
	case Critical:
		return "CRITICAL"
	default:
		return "ERROR"
	}
}

// Kind categorizes a diagnostic for callers that want to branch on it.
type Kind int

const (
	KindOverlongLine Kind = iota
	KindBadMacroName
	KindBadSymbolName
	KindOverlongSymbol
	KindUnterminatedString
	KindMalformedMatrix
	KindMalformedNumber
	KindBadRegister
	KindUnknownDirective
	KindUnknownOpcode
	KindDuplicateSymbol
	KindDuplicateEntry
	KindNameCollision
	KindOperandCount
	KindOperandType
	KindNumberRange
	KindTrailingGarbage
	KindUnresolvedReference
	KindEntryTargetsExternal
	KindFileIO
	KindOutOfMemory
)

// Diagnostic is one reported condition, optionally tied to a source line.
type Diagnostic struct {
	Sev  Severity
	Kind Kind
	Line int // 0 means "no line context"
	Msg  string
}

func (d *Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s (Line %d): %s", d.Sev, d.Line, d.Msg)
	}
	return fmt.Sprintf("%s: %s", d.Sev, d.Msg)
}

// List accumulates diagnostics for one file-processing run. It is the sink
// the preprocessor, pass one and pass two append to.
type List struct {
	items []*Diagnostic
}

func (l *List) Add(sev Severity, kind Kind, line int, format string, args ...any) {
	l.items = append(l.items, &Diagnostic{
		Sev:  sev,
		Kind: kind,
		Line: line,
		Msg:  fmt.Sprintf(format, args...),
	})
}

func (l *List) Errorf(kind Kind, line int, format string, args ...any) {
	l.Add(Error, kind, line, format, args...)
}

func (l *List) Warnf(kind Kind, line int, format string, args ...any) {
	l.Add(Warning, kind, line, format, args...)
}

func (l *List) Criticalf(kind Kind, line int, format string, args ...any) {
	l.Add(Critical, kind, line, format, args...)
}

// HasErrors reports whether any Error or Critical diagnostic was recorded.
func (l *List) HasErrors() bool {
	for _, d := range l.items {
		if d.Sev != Warning {
			return true
		}
	}
	return false
}

// HasCritical reports whether a fatal diagnostic was recorded.
func (l *List) HasCritical() bool {
	for _, d := range l.items {
		if d.Sev == Critical {
			return true
		}
	}
	return false
}

func (l *List) Items() []*Diagnostic {
	return l.items
}

// String renders every diagnostic, one per line, in recorded order.
func (l *List) String() string {
	var sb strings.Builder
	for _, d := range l.items {
		sb.WriteString(d.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
