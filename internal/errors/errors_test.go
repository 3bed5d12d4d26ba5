package errors

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"config read", CodeConfigRead, "Cannot read config file", CategoryConfig},
		{"protocol", CodeProtocol, "Cannot decode client message", CategoryProtocol},
		{"scenario step", CodeScenarioStep, "Scenario step failed", CategoryScenario},
		{"unknown code", "E999", "Unknown error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{New(CodeConfigParse), "E101: Invalid config file"},
		{New(CodeConfigRead).Wrap(fs.ErrPermission), "E100: Cannot read config file: permission denied"},
		{&Error{Message: "plain"}, "plain"},
		{Newf(CategoryCLI, "unknown flag %q", "--x"), `unknown flag "--x"`},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestErrorsIsAndUnwrap(t *testing.T) {
	err := New(CodeScenarioRead).Wrap(fs.ErrNotExist)

	if !stderrors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is should see the wrapped error")
	}
	if !stderrors.Is(err, New(CodeScenarioRead)) {
		t.Error("errors.Is should match errors with the same code")
	}
	if stderrors.Is(err, New(CodeScenarioParse)) {
		t.Error("errors.Is should not match a different code")
	}
	if stderrors.Is(&Error{Message: "a"}, &Error{Message: "a"}) {
		t.Error("errors without code only match themselves")
	}

	var target *Error
	if !stderrors.As(err, &target) || target.Code != CodeScenarioRead {
		t.Error("errors.As should find the *Error")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, CodeProtocol) != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New(CodeConfigInvalid)
	if FromError(orig, CodeProtocol) != orig {
		t.Error("FromError should return an *Error unchanged")
	}

	plain := stderrors.New("short buffer")
	got := FromError(plain, CodeProtocol)
	if got.Code != CodeProtocol || got.Unwrap() != plain {
		t.Errorf("FromError() = %+v", got)
	}
}

func TestWithLocationReadsContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	content := "a: 1\nb: 2\nc: 3\nd: 4\ne: 5\nf: 6\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	err := New(CodeScenarioStep).WithLocation(path, 3, 4)

	if err.Location.String() != path+":3:4" {
		t.Errorf("Location = %q", err.Location.String())
	}
	want := []string{"a: 1", "b: 2", "c: 3", "d: 4", "e: 5"}
	if strings.Join(err.Context, "|") != strings.Join(want, "|") {
		t.Errorf("Context = %q, want %q", err.Context, want)
	}

	missing := New(CodeScenarioStep).WithLocation(filepath.Join(t.TempDir(), "nope.yaml"), 1, 0)
	if missing.Context != nil {
		t.Error("missing files yield no context")
	}
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		loc  *Location
		want string
	}{
		{nil, ""},
		{&Location{File: "a.yaml", Line: 3}, "a.yaml:3"},
		{&Location{File: "a.yaml", Line: 3, Column: 7}, "a.yaml:3:7"},
	}
	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New(CodeScenarioStep).
		WithDetail(`no element matches "#c9"`).
		WithSuggestion("check the element ids in the document section")
	err.Location = &Location{File: "board.yaml", Line: 2}
	err.Context = []string{"steps:", "  - dragstart: '#c9'", "  - dragend: '#c9'"}

	out := err.Format()
	for _, want := range []string{
		"ERROR E302: Scenario step failed",
		"board.yaml:2",
		"→    2 │   - dragstart: '#c9'",
		`no element matches "#c9"`,
		"Hint: check the element ids",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("Format() should not contain ANSI codes when colors are disabled")
	}
}

func TestFormatCompact(t *testing.T) {
	err := New(CodeConfigParse)
	err.Location = &Location{File: "dragkit.json", Line: 4}
	if got, want := err.FormatCompact(), "dragkit.json:4: E101: Invalid config file"; got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New(CodeProtocol).Wrap(stderrors.New("unexpected EOF"))
	got := err.FormatJSON()
	for _, want := range []string{`"code":"E200"`, `"category":"protocol"`, `"cause":"unexpected EOF"`} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatJSON() = %s, missing %s", got, want)
		}
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("Fprint(plain) = %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, New(CodeConfigRead))
	if !strings.Contains(buf.String(), "ERROR E100") {
		t.Errorf("Fprint(*Error) = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	if wrapText("", 10) != nil {
		t.Error("empty text should wrap to nil")
	}
	lines := wrapText("the quick brown fox jumps over the lazy dog", 15)
	for _, l := range lines {
		if len(l) > 15 {
			t.Errorf("line %q longer than 15", l)
		}
	}
	if strings.Join(lines, " ") != "the quick brown fox jumps over the lazy dog" {
		t.Errorf("wrapText lost words: %q", lines)
	}
}
