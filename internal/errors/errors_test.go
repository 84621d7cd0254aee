package errors

import (
	"fmt"
	"testing"
	"time"
)

type categoryCarrier struct {
	msg string
}

func (c *categoryCarrier) Error() string                { return c.msg }
func (c *categoryCarrier) ErrorCategory() ErrorCategory { return CategoryNotFound }

func TestBuildDefaults(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("something went sideways")
	ee := New(err).Build()

	if ee.Err.Error() != "something went sideways" {
		t.Errorf("Expected original message, got '%s'", ee.Err.Error())
	}

	if ee.Category != CategoryGeneric {
		t.Errorf("Expected category 'generic' for an unclassifiable error, got '%s'", ee.Category)
	}

	if ee.GetTimestamp().IsZero() {
		t.Error("Expected Build to stamp the error with a timestamp")
	}
}

func TestBuildExplicitComponentAndCategory(t *testing.T) {
	t.Parallel()

	ee := Newf("route file %s truncated", "F2023.csv").
		Component("ingest").
		Category(CategoryFileIO).
		Context("file", "F2023.csv").
		Build()

	if ee.GetComponent() != "ingest" {
		t.Errorf("Expected component 'ingest', got '%s'", ee.GetComponent())
	}
	if ee.Category != CategoryFileIO {
		t.Errorf("Expected category 'file-io', got '%s'", ee.Category)
	}

	ctx := ee.GetContext()
	if ctx["file"] != "F2023.csv" {
		t.Errorf("Expected context to carry the file name, got %v", ctx)
	}

	// Mutating the returned copy must not touch the error's own context
	ctx["file"] = "other.csv"
	if ee.GetContext()["file"] != "F2023.csv" {
		t.Error("GetContext must return a copy, not the live map")
	}
}

func TestCategoryDetectionHeuristics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"missing column", fmt.Errorf("required column AOU not declared"), CategoryValidation},
		{"schema", fmt.Errorf("schema check failed"), CategoryValidation},
		{"parse", fmt.Errorf("unable to parse abundance cell"), CategoryFileParsing},
		{"file open", fmt.Errorf("open routes dir: permission denied"), CategoryFileIO},
		{"config", fmt.Errorf("config threshold out of range"), CategoryConfiguration},
		{"opaque", fmt.Errorf("boom"), CategoryGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ee := New(tt.err).Build()
			if ee.Category != tt.want {
				t.Errorf("detectCategory(%q) = %s, want %s", tt.err, ee.Category, tt.want)
			}
		})
	}
}

func TestCategorizedErrorWins(t *testing.T) {
	t.Parallel()

	// An error that names its own category overrides the heuristics
	ee := New(&categoryCarrier{msg: "file with column data"}).Build()
	if ee.Category != CategoryNotFound {
		t.Errorf("Expected CategorizedError interface to take precedence, got '%s'", ee.Category)
	}
}

func TestIsCategoryThroughWrap(t *testing.T) {
	t.Parallel()

	inner := ValidationError("threshold must be in [0,1]")
	wrapped := fmt.Errorf("loading settings: %w", inner)

	if !IsCategory(wrapped, CategoryValidation) {
		t.Error("IsCategory should see through fmt.Errorf wrapping")
	}
	if IsCategory(wrapped, CategoryFileIO) {
		t.Error("IsCategory matched the wrong category")
	}
	if IsNotFound(wrapped) {
		t.Error("IsNotFound should be false for a validation error")
	}
}

func TestTimingContext(t *testing.T) {
	t.Parallel()

	ee := Newf("stage overran").
		Timing("quality-filter", 1500*time.Millisecond).
		Build()

	ctx := ee.GetContext()
	if ctx["operation"] != "quality-filter" {
		t.Errorf("Expected operation in context, got %v", ctx)
	}
	if ctx["duration_ms"] != int64(1500) {
		t.Errorf("Expected duration_ms 1500, got %v", ctx["duration_ms"])
	}
}
