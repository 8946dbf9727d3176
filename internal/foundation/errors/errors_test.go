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
			WithContext("file", "newsbuild.yaml").
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
		if !exists || file != "newsbuild.yaml" {
			t.Errorf("expected context file=newsbuild.yaml, got %v", file)
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
		if !HasSeverity(err, SeverityFatal) {
			t.Error("expected error to have fatal severity")
		}
		if err.CanRetry() {
			t.Error("expected config error to not be retryable")
		}
		if !err.IsFatal() {
			t.Error("expected config error to be fatal")
		}
	})

	t.Run("Detection through fmt wrapping", func(t *testing.T) {
		inner := AuthError("token rejected").Build()
		wrapped := fmt.Errorf("fetch: %w", inner)

		if !HasCategory(wrapped, CategoryAuth) {
			t.Error("expected wrapped error to keep auth category")
		}
		if GetCategory(wrapped) != CategoryAuth {
			t.Errorf("expected auth, got %s", GetCategory(wrapped))
		}
		if GetCategory(errors.New("plain")) != CategoryInternal {
			t.Error("expected unclassified errors to map to internal")
		}
	})

	t.Run("WithContext does not mutate the original", func(t *testing.T) {
		base := NotFoundError("no environment answered").Build()
		derived := base.WithContext("environments", "master,main")

		if _, ok := base.Context().Get("environments"); ok {
			t.Error("expected original context to be unchanged")
		}
		if v, _ := derived.Context().GetString("environments"); v != "master,main" {
			t.Errorf("expected derived context, got %q", v)
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Fluent API", func(t *testing.T) {
		originalErr := errors.New("connection reset")
		err := WrapError(originalErr, CategoryNetwork, "request failed").
			Warning().
			NextCandidate().
			WithContext("environment", "staging").
			WithContext("status", 503).
			Build()

		if err.Category() != CategoryNetwork {
			t.Errorf("expected category %s, got %s", CategoryNetwork, err.Category())
		}
		if err.Severity() != SeverityWarning {
			t.Errorf("expected severity %s, got %s", SeverityWarning, err.Severity())
		}
		if err.RetryStrategy() != RetryNext {
			t.Errorf("expected retry strategy %s, got %s", RetryNext, err.RetryStrategy())
		}
		if !errors.Is(err, originalErr) {
			t.Error("expected error to wrap original error")
		}

		env, _ := err.Context().GetString("environment")
		if env != "staging" {
			t.Errorf("expected environment context 'staging', got %s", env)
		}
	})

	t.Run("Convenience constructors", func(t *testing.T) {
		tests := []struct {
			name     string
			builder  *ErrorBuilder
			category ErrorCategory
			severity ErrorSeverity
			retry    RetryStrategy
		}{
			{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal, RetryUserAction},
			{"ValidationError", ValidationError("test"), CategoryValidation, SeverityFatal, RetryNever},
			{"AuthError", AuthError("test"), CategoryAuth, SeverityFatal, RetryUserAction},
			{"NetworkError", NetworkError("test"), CategoryNetwork, SeverityError, RetryNext},
			{"NotFoundError", NotFoundError("test"), CategoryNotFound, SeverityFatal, RetryNever},
			{"TemplateError", TemplateError("test"), CategoryTemplate, SeverityFatal, RetryUserAction},
			{"RenderError", RenderError("test"), CategoryRender, SeverityFatal, RetryNever},
			{"FileSystemError", FileSystemError("test"), CategoryFileSystem, SeverityFatal, RetryNever},
			{"EventStoreError", EventStoreError("test"), CategoryEventStore, SeverityError, RetryNever},
			{"InternalError", InternalError("test"), CategoryInternal, SeverityFatal, RetryNever},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.builder.Build()
				if err.Category() != tt.category {
					t.Errorf("expected category %s, got %s", tt.category, err.Category())
				}
				if err.Severity() != tt.severity {
					t.Errorf("expected severity %s, got %s", tt.severity, err.Severity())
				}
				if err.RetryStrategy() != tt.retry {
					t.Errorf("expected retry strategy %s, got %s", tt.retry, err.RetryStrategy())
				}
			})
		}
	})
}

func TestErrorContext(t *testing.T) {
	t.Run("Context operations", func(t *testing.T) {
		ctx := make(ErrorContext)
		ctx = ctx.Set("key1", "value1")
		ctx = ctx.Set("key2", 42)

		value1, exists1 := ctx.GetString("key1")
		if !exists1 || value1 != "value1" {
			t.Errorf("expected key1=value1, got %v", value1)
		}

		value2, exists2 := ctx.Get("key2")
		if !exists2 || value2 != 42 {
			t.Errorf("expected key2=42, got %v", value2)
		}

		if _, exists3 := ctx.Get("nonexistent"); exists3 {
			t.Error("expected nonexistent key to not exist")
		}
	})

	t.Run("Context merge", func(t *testing.T) {
		ctx1 := ErrorContext{"key1": "value1", "shared": "original"}
		ctx2 := ErrorContext{"key2": "value2", "shared": "overridden"}

		merged := ctx1.Merge(ctx2)

		if v, _ := merged.GetString("key1"); v != "value1" {
			t.Errorf("expected key1=value1, got %s", v)
		}
		if v, _ := merged.GetString("key2"); v != "value2" {
			t.Errorf("expected key2=value2, got %s", v)
		}
		if v, _ := merged.GetString("shared"); v != "overridden" {
			t.Errorf("expected shared=overridden, got %s", v)
		}
	})
}
