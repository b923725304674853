package config

import (
	"strings"
	"testing"
)

func TestValidatePoolWorkers(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		wantErr bool
	}{
		{"one worker", 1, false},
		{"many workers", 64, false},
		{"zero workers", 0, true},
		{"negative workers", -4, true},
		{"absurd workers", 100_000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Pool.Workers = tt.workers

			errs := cfg.Validate()
			if tt.wantErr && len(errs) == 0 {
				t.Errorf("expected validation error for workers=%d", tt.workers)
			}
			if !tt.wantErr && len(errs) != 0 {
				t.Errorf("unexpected validation errors: %v", ValidationErrors(errs))
			}
		})
	}
}

func TestValidateRunShell(t *testing.T) {
	cfg := Default()
	cfg.Run.Shell = ""

	errs := cfg.Validate()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), ValidationErrors(errs))
	}
	if errs[0].Field != "run.shell" {
		t.Errorf("Field = %q, want %q", errs[0].Field, "run.shell")
	}
}

func TestValidateWatchDebounce(t *testing.T) {
	cfg := Default()
	cfg.Run.WatchDebounceMs = -1
	if errs := cfg.Validate(); len(errs) == 0 {
		t.Error("expected error for negative debounce")
	}

	cfg = Default()
	cfg.Run.WatchDebounceMs = 120_000
	if errs := cfg.Validate(); len(errs) == 0 {
		t.Error("expected error for debounce above maximum")
	}
}

func TestValidateLogging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "verbose"
	errs := cfg.Validate()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), ValidationErrors(errs))
	}
	if !strings.Contains(errs[0].Error(), "logging.level") {
		t.Errorf("unexpected error: %v", errs[0])
	}

	cfg = Default()
	cfg.Logging.MaxSizeMB = 0
	if errs := cfg.Validate(); len(errs) == 0 {
		t.Error("expected error for zero max_size_mb")
	}

	cfg = Default()
	cfg.Logging.MaxBackups = -1
	if errs := cfg.Validate(); len(errs) == 0 {
		t.Error("expected error for negative max_backups")
	}
}

func TestValidationErrorsFormatting(t *testing.T) {
	errs := ValidationErrors{
		{Field: "pool.workers", Value: 0, Message: "must be at least 1"},
		{Field: "run.shell", Value: "", Message: "cannot be empty"},
	}

	msg := errs.Error()
	if !strings.Contains(msg, "2 validation errors") {
		t.Errorf("expected count header, got: %q", msg)
	}
	if !strings.Contains(msg, "pool.workers") || !strings.Contains(msg, "run.shell") {
		t.Errorf("expected both fields in message, got: %q", msg)
	}

	single := ValidationErrors{errs[0]}
	if single.Error() != errs[0].Error() {
		t.Errorf("single error should format without header, got: %q", single.Error())
	}

	if (ValidationErrors{}).Error() != "" {
		t.Error("empty ValidationErrors should format as empty string")
	}
}
