package execution

import (
	"errors"
	"strings"
	"testing"
)

func TestConfig_ValidateRequired_Engine(t *testing.T) {
	cfg := Config{Logger: &recordingLogger{}}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for nil Engine")
	}
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
	if !strings.Contains(err.Error(), "Engine") {
		t.Errorf("expected error to mention Engine, got %q", err.Error())
	}
}

func TestConfig_ValidateOK(t *testing.T) {
	cfg := Config{Engine: &mockEngine{}}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLogger_Interface(t *testing.T) {
	t.Helper()
	var _ Logger = (*recordingLogger)(nil)
}
