package gddiag

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// argCountKey and friends are the catalog keys registered below; each
// backs one of the message helpers validators call when building a
// Diagnostic's Message field, so "1 argument" vs "2 arguments" (spec
// §4.7's WrongArgumentCount, GD7020's call-site consensus wording) reads
// grammatically instead of "1 arguments".
const (
	argCountKey     = "expected %d argument(s)"
	gotArgCountKey  = "got %d argument(s)"
	callerCountKey  = "%d caller(s)"
	diagnosticCount = "%d diagnostic(s)"
)

func init() {
	message.Set(language.English, argCountKey, plural.Selectf(1, "%d",
		plural.One, "expected %[1]d argument",
		plural.Other, "expected %[1]d arguments"))
	message.Set(language.English, gotArgCountKey, plural.Selectf(1, "%d",
		plural.One, "got %[1]d argument",
		plural.Other, "got %[1]d arguments"))
	message.Set(language.English, callerCountKey, plural.Selectf(1, "%d",
		plural.One, "%[1]d caller",
		plural.Other, "%[1]d callers"))
	message.Set(language.English, diagnosticCount, plural.Selectf(1, "%d",
		plural.One, "%[1]d diagnostic",
		plural.Other, "%[1]d diagnostics"))
}

var printer = message.NewPrinter(language.English)

// ArgumentCountPhrase renders "expected 1 argument" / "expected 2
// arguments" for the given count.
func ArgumentCountPhrase(n int) string {
	return printer.Sprintf(argCountKey, n)
}

// GotArgumentCountPhrase renders "got 1 argument" / "got 2 arguments".
func GotArgumentCountPhrase(n int) string {
	return printer.Sprintf(gotArgCountKey, n)
}

// CallerCountPhrase renders "1 caller" / "2 callers", used by the
// nullable access validator's cross-method safety message (spec §4.6).
func CallerCountPhrase(n int) string {
	return printer.Sprintf(callerCountKey, n)
}

// DiagnosticCountPhrase renders "1 diagnostic" / "2 diagnostics", used
// by internal/render's run-summary output.
func DiagnosticCountPhrase(n int) string {
	return printer.Sprintf(diagnosticCount, n)
}

// WrongArgumentCountMessage builds the GD4005 message text: "expected 1
// argument, got 2".
func WrongArgumentCountMessage(expected, got int) string {
	return ArgumentCountPhrase(expected) + ", " + GotArgumentCountPhrase(got)
}
