package rename_test

import (
	"errors"
	"slices"
	"testing"

	"photorename/internal/rename"
)

func TestValidateDateFormat(t *testing.T) {
	t.Run("accepts the default format", func(t *testing.T) {
		t.Parallel()
		if err := rename.ValidateDateFormat(rename.DefaultDateFormat); err != nil {
			t.Errorf("ValidateDateFormat(%q) error = %v, want nil", rename.DefaultDateFormat, err)
		}
	})

	t.Run("accepts literal text around verbs", func(t *testing.T) {
		t.Parallel()
		if err := rename.ValidateDateFormat("img %Y%m%d at %H.%M"); err != nil {
			t.Errorf("ValidateDateFormat() error = %v, want nil", err)
		}
	})

	t.Run("accepts an escaped percent", func(t *testing.T) {
		t.Parallel()
		if err := rename.ValidateDateFormat("%Y %%"); err != nil {
			t.Errorf("ValidateDateFormat() error = %v, want nil", err)
		}
	})

	t.Run("rejects an empty format", func(t *testing.T) {
		t.Parallel()
		if err := rename.ValidateDateFormat(""); err == nil {
			t.Error("ValidateDateFormat(\"\") expected error, got nil")
		}
	})

	t.Run("rejects a whitespace-only format", func(t *testing.T) {
		t.Parallel()
		if err := rename.ValidateDateFormat("   "); err == nil {
			t.Error("ValidateDateFormat() expected error for whitespace format, got nil")
		}
	})

	t.Run("rejects locale-dependent verbs", func(t *testing.T) {
		t.Parallel()
		err := rename.ValidateDateFormat("%Y-%b-%d")
		assertTemplateTokens(t, err, []string{"%b"})
	})

	t.Run("rejects filename-illegal characters", func(t *testing.T) {
		t.Parallel()
		err := rename.ValidateDateFormat("%Y/%m/%d")
		assertTemplateTokens(t, err, []string{"/"})
	})

	t.Run("rejects a trailing percent", func(t *testing.T) {
		t.Parallel()
		err := rename.ValidateDateFormat("%Y%")
		assertTemplateTokens(t, err, []string{"%"})
	})

	t.Run("reports each token once in order of first appearance", func(t *testing.T) {
		t.Parallel()
		err := rename.ValidateDateFormat("%p<%p>")
		assertTemplateTokens(t, err, []string{"%p", "<", ">"})
	})
}

// assertTemplateTokens checks that err is a *TemplateError carrying exactly
// the given tokens.
func assertTemplateTokens(t *testing.T, err error, want []string) {
	t.Helper()

	if err == nil {
		t.Fatal("ValidateDateFormat() expected error, got nil")
	}
	var tplErr *rename.TemplateError
	if !errors.As(err, &tplErr) {
		t.Fatalf("ValidateDateFormat() error = %v, want *TemplateError", err)
	}
	if !slices.Equal(tplErr.Tokens, want) {
		t.Errorf("TemplateError.Tokens = %v, want %v", tplErr.Tokens, want)
	}
}

func TestParseNamingMethod(t *testing.T) {
	tests := []struct {
		value   int
		want    rename.NamingMethod
		wantErr bool
	}{
		{0, rename.DateOnly, false},
		{1, rename.DateBeforeOriginal, false},
		{2, rename.DateAfterOriginal, false},
		{3, rename.DateOnly, true},
		{-1, rename.DateOnly, true},
	}

	for _, tt := range tests {
		got, err := rename.ParseNamingMethod(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseNamingMethod(%d) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseNamingMethod(%d) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestNamingMethod_String(t *testing.T) {
	tests := []struct {
		method rename.NamingMethod
		want   string
	}{
		{rename.DateOnly, "date-only"},
		{rename.DateBeforeOriginal, "date-before-name"},
		{rename.DateAfterOriginal, "date-after-name"},
		{rename.NamingMethod(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.method.String(); got != tt.want {
			t.Errorf("NamingMethod(%d).String() = %q, want %q", int(tt.method), got, tt.want)
		}
	}
}

func TestNamingTemplate_Validate(t *testing.T) {
	t.Run("accepts the default template", func(t *testing.T) {
		t.Parallel()
		if err := rename.DefaultTemplate().Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})

	t.Run("rejects an unknown method", func(t *testing.T) {
		t.Parallel()
		tpl := rename.NamingTemplate{DateFormat: rename.DefaultDateFormat, Method: rename.NamingMethod(7)}
		if err := tpl.Validate(); err == nil {
			t.Error("Validate() expected error for unknown method, got nil")
		}
	})

	t.Run("rejects a bad date format", func(t *testing.T) {
		t.Parallel()
		tpl := rename.NamingTemplate{DateFormat: "%Q", Method: rename.DateOnly}
		if err := tpl.Validate(); err == nil {
			t.Error("Validate() expected error for bad format, got nil")
		}
	})
}
