// Package errors provides the typed error values used across the pipeline.
// All constructors attach a stack trace via cockroachdb/errors so that
// failures surfacing at the experiment driver keep their origin.
package errors

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// FitError indicates that a base adapter could not fit on the supplied
// training data (empty table, missing target column, degenerate input).
type FitError struct {
	Adapter string
	Reason  string
}

func (e *FitError) Error() string {
	return fmt.Sprintf("soyield: %s: cannot fit: %s", e.Adapter, e.Reason)
}

// MarshalZerologObject adds the structured fields to a zerolog event.
func (e *FitError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("adapter", e.Adapter).
		Str("reason", e.Reason).
		Str("type", "FitError")
}

// NewFitError creates a FitError with a stack trace attached.
func NewFitError(adapter, reason string) error {
	return errors.WithStack(&FitError{Adapter: adapter, Reason: reason})
}

// SchemaMismatchError indicates that test data was offered to a fitted
// model whose training schema names different feature columns.
type SchemaMismatchError struct {
	Adapter  string
	Expected []string
	Got      []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("soyield: %s: schema mismatch: fitted on [%s], got [%s]",
		e.Adapter, strings.Join(e.Expected, " "), strings.Join(e.Got, " "))
}

// MarshalZerologObject adds the structured fields to a zerolog event.
func (e *SchemaMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("adapter", e.Adapter).
		Strs("expected", e.Expected).
		Strs("got", e.Got).
		Str("type", "SchemaMismatchError")
}

// NewSchemaMismatchError creates a SchemaMismatchError with a stack trace.
func NewSchemaMismatchError(adapter string, expected, got []string) error {
	return errors.WithStack(&SchemaMismatchError{Adapter: adapter, Expected: expected, Got: got})
}

// EnsembleBuildError indicates that a member fit or predict failed while
// building a bagging ensemble. The build is all-or-nothing: a partial
// ensemble is never returned.
type EnsembleBuildError struct {
	Resample int
	Err      error
}

func (e *EnsembleBuildError) Error() string {
	return fmt.Sprintf("soyield: bagging: resample %d failed: %v", e.Resample, e.Err)
}

func (e *EnsembleBuildError) Unwrap() error { return e.Err }

// MarshalZerologObject adds the structured fields to a zerolog event.
func (e *EnsembleBuildError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("resample", e.Resample).
		AnErr("cause", e.Err).
		Str("type", "EnsembleBuildError")
}

// NewEnsembleBuildError creates an EnsembleBuildError with a stack trace.
func NewEnsembleBuildError(resample int, err error) error {
	return errors.WithStack(&EnsembleBuildError{Resample: resample, Err: err})
}

// AlignmentError indicates that the inputs to a heterogeneous ensemble do
// not describe the same rows: either the row counts differ, or the row
// identifiers carried by the views disagree at some position.
type AlignmentError struct {
	Op      string
	Lengths []int
	Row     int // first misaligned row when lengths agree, -1 otherwise
}

func (e *AlignmentError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("soyield: %s: row identifiers diverge at row %d", e.Op, e.Row)
	}
	return fmt.Sprintf("soyield: %s: row counts differ: %v", e.Op, e.Lengths)
}

// MarshalZerologObject adds the structured fields to a zerolog event.
func (e *AlignmentError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Ints("lengths", e.Lengths).
		Int("row", e.Row).
		Str("type", "AlignmentError")
}

// NewAlignmentError creates an AlignmentError for a row-count mismatch.
func NewAlignmentError(op string, lengths []int) error {
	return errors.WithStack(&AlignmentError{Op: op, Lengths: lengths, Row: -1})
}

// NewRowAlignmentError creates an AlignmentError for diverging row IDs.
func NewRowAlignmentError(op string, row int) error {
	return errors.WithStack(&AlignmentError{Op: op, Row: row})
}

// InputSizeError indicates that two vectors expected to be positionally
// aligned have different lengths (e.g. actual vs predicted in RMSE).
type InputSizeError struct {
	Op       string
	Expected int
	Got      int
}

func (e *InputSizeError) Error() string {
	return fmt.Sprintf("soyield: %s: length mismatch: expected %d, got %d", e.Op, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured fields to a zerolog event.
func (e *InputSizeError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Str("type", "InputSizeError")
}

// NewInputSizeError creates an InputSizeError with a stack trace.
func NewInputSizeError(op string, expected, got int) error {
	return errors.WithStack(&InputSizeError{Op: op, Expected: expected, Got: got})
}

// NotFittedError indicates that Predict or Transform was called on an
// estimator before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("soyield: %s: not fitted yet. Call Fit() before %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the structured fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

// DimensionError indicates that an input matrix has the wrong number of
// rows (axis 0) or columns (axis 1) for an operation.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("soyield: %s: dimension mismatch on axis %d (%s): expected %d, got %d",
		e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

// ValueError indicates an argument whose value is out of range or
// otherwise unusable for the operation.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("soyield: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace.
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain matching target's type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap annotates err with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

var (
	// ErrEmptyData is returned when an operation receives no rows.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix is returned when a linear solve encounters a
	// singular or near-singular system.
	ErrSingularMatrix = New("singular matrix")

	// ErrAllMissing is returned when every compared pair in a metric is
	// undefined, so the metric itself is undefined.
	ErrAllMissing = New("all compared pairs are missing")
)
