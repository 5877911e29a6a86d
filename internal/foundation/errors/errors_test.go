package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "staticbuild.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != "staticbuild.yaml" {
			t.Errorf("expected context file=staticbuild.yaml, got %v", file)
		}
	})

	t.Run("Error detection", func(t *testing.T) {
		err := ConfigError("test error").Build()

		if !IsClassified(err) {
			t.Error("expected error to be classified")
		}
		if !HasCategory(err, CategoryConfig) {
			t.Error("expected error to have config category")
		}
		if err.CanRetry() {
			t.Error("expected config error to not be retryable")
		}
		if !err.IsFatal() {
			t.Error("expected config error to be fatal")
		}
	})

	t.Run("Detection through fmt wrapping", func(t *testing.T) {
		inner := FileSystemError("copy failed").WithContext("path", "/tmp/x").Build()
		wrapped := fmt.Errorf("copy stage: %w", inner)

		if !HasCategory(wrapped, CategoryFileSystem) {
			t.Error("expected wrapped error to keep filesystem category")
		}
		if GetSeverity(wrapped) != SeverityFatal {
			t.Errorf("expected fatal severity, got %s", GetSeverity(wrapped))
		}
	})

	t.Run("Unclassified defaults", func(t *testing.T) {
		plain := errors.New("plain")
		if GetCategory(plain) != CategoryInternal {
			t.Errorf("expected internal category, got %s", GetCategory(plain))
		}
		if GetSeverity(plain) != SeverityError {
			t.Errorf("expected error severity, got %s", GetSeverity(plain))
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Wrapping keeps the cause", func(t *testing.T) {
		originalErr := errors.New("permission denied")
		err := WrapError(originalErr, CategoryFileSystem, "remove output directory").
			Warning().
			WithContext("path", "dist").
			Build()

		if !errors.Is(err, originalErr) {
			t.Error("expected errors.Is to find the cause")
		}
		if err.Cause() != originalErr {
			t.Error("expected Cause to return the original error")
		}
		if err.Severity() != SeverityWarning {
			t.Errorf("expected warning severity, got %s", err.Severity())
		}
		want := "[filesystem:warning] remove output directory: permission denied"
		if err.Error() != want {
			t.Errorf("expected %q, got %q", want, err.Error())
		}
	})

	t.Run("WithContext returns a copy", func(t *testing.T) {
		base := BuildError("stage failed").Build()
		derived := base.WithContext("stage", "copy")

		if _, ok := base.Context().Get("stage"); ok {
			t.Error("expected base context to stay untouched")
		}
		if v, _ := derived.Context().GetString("stage"); v != "copy" {
			t.Errorf("expected stage=copy, got %q", v)
		}
	})

	t.Run("Is compares category and message", func(t *testing.T) {
		a := RenderError("template failed").Build()
		b := RenderError("template failed").WithContext("page", "index.html").Build()
		c := BuildError("template failed").Build()

		if !errors.Is(a, b) {
			t.Error("expected same category+message to match")
		}
		if errors.Is(a, c) {
			t.Error("expected different categories not to match")
		}
	})

	t.Run("ContextString is sorted", func(t *testing.T) {
		err := NewError(CategoryBuild, "x").
			WithContext("stage", "write").
			WithContext("path", "dist/index.html").
			Build()
		if got := err.ContextString(); got != "path=dist/index.html stage=write" {
			t.Errorf("unexpected context string %q", got)
		}
	})
}
