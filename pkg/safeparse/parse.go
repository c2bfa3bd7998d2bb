package safeparse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/incomeclarity/clientstate/pkg/logger"
	"github.com/incomeclarity/clientstate/pkg/sanitizer"
	"github.com/incomeclarity/clientstate/pkg/validator"
)

// Stage names the pipeline step that produced a Result.
type Stage string

const (
	StageSize     Stage = "size"
	StageSanitize Stage = "sanitize"
	StageDecode   Stage = "decode"
	StageDepth    Stage = "depth"
	StageValidate Stage = "validate"
	StageDone     Stage = "done"
)

// Result is the outcome of Parse. Exactly one of Data (on success) or
// Error/Err (on failure) is meaningful.
type Result struct {
	Success bool
	Data    any

	// Error is a diagnostic message. It never includes the raw input.
	Error string

	// Err wraps ErrSizeLimit, ErrSanitization, ErrParse or ErrValidation.
	Err error

	// Stage is the last stage reached.
	Stage Stage
}

// TypedResult is the outcome of ParseInto.
type TypedResult[T any] struct {
	Success bool
	Data    T
	Error   string
	Err     error
	Stage   Stage
}

// Parse runs raw through the size, sanitize, decode, depth and validate
// stages. It never panics.
func Parse(raw string, opts Options) (res Result) {
	opts = opts.withDefaults()

	defer func() {
		if r := recover(); r != nil {
			res = fail(opts, len(raw), StageValidate, ErrValidation, fmt.Errorf("recovered panic: %v", r))
		}
	}()

	payload, failed, ok := prepare(raw, opts)
	if !ok {
		return failed
	}

	value, err := decode(payload)
	if err != nil {
		return fail(opts, len(raw), StageDecode, ErrParse, err)
	}

	if depth := validator.Depth(value); depth > opts.MaxDepth {
		return fail(opts, len(raw), StageDepth, ErrParse,
			fmt.Errorf("nesting depth %d exceeds %d", depth, opts.MaxDepth))
	}

	if opts.Validator == nil {
		return fail(opts, len(raw), StageValidate, ErrValidation, errors.New("no validator supplied"))
	}
	if !validator.Safe(opts.Validator)(value) {
		return fail(opts, len(raw), StageValidate, ErrValidation, errors.New("value rejected by validator"))
	}

	return Result{Success: true, Data: value, Stage: StageDone}
}

// ParseInto runs Parse and, on success, decodes the sanitized payload into T.
// A payload that does not fit T is reported as ErrParse.
//
// T is filled by encoding/json, which matches object keys case-insensitively.
// When the validator inspects exact keys, build the typed value from
// Result.Data instead.
func ParseInto[T any](raw string, opts Options) (res TypedResult[T]) {
	opts = opts.withDefaults()

	defer func() {
		if r := recover(); r != nil {
			failed := fail(opts, len(raw), StageValidate, ErrValidation, fmt.Errorf("recovered panic: %v", r))
			res = TypedResult[T]{Error: failed.Error, Err: failed.Err, Stage: failed.Stage}
		}
	}()

	generic := Parse(raw, opts)
	if !generic.Success {
		return TypedResult[T]{Error: generic.Error, Err: generic.Err, Stage: generic.Stage}
	}

	// Sanitization is deterministic and already succeeded once.
	payload, _ := sanitizer.CleanStoredText(raw)

	var out T
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		failed := fail(opts, len(raw), StageDecode, ErrParse, describe(err))
		return TypedResult[T]{Error: failed.Error, Err: failed.Err, Stage: failed.Stage}
	}

	return TypedResult[T]{Success: true, Data: out, Stage: StageDone}
}

// prepare applies the size gate and sanitization.
func prepare(raw string, opts Options) (string, Result, bool) {
	if len(raw) > opts.MaxSize {
		return "", fail(opts, len(raw), StageSize, ErrSizeLimit,
			fmt.Errorf("input of %d bytes exceeds %d", len(raw), opts.MaxSize)), false
	}

	payload, err := sanitizer.CleanStoredText(raw)
	if err != nil {
		return "", fail(opts, len(raw), StageSanitize, ErrSanitization, err), false
	}

	if strings.TrimSpace(payload) == "" {
		return "", fail(opts, len(raw), StageDecode, ErrParse, errors.New("empty input")), false
	}

	return payload, Result{}, true
}

// decode reads exactly one JSON value from payload.
func decode(payload string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, describe(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after offset %d", dec.InputOffset())
	}
	return value, nil
}

// describe turns a decoder error into a message free of input content.
func describe(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return errors.New("empty input")
	case errors.Is(err, io.ErrUnexpectedEOF):
		return errors.New("unexpected end of input")
	case errors.As(err, &syntaxErr):
		return fmt.Errorf("syntax error at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		return fmt.Errorf("cannot decode value into %s at %q", typeErr.Type, typeErr.Field)
	}
	return errors.New("malformed JSON")
}

func fail(opts Options, size int, stage Stage, kind, detail error) Result {
	msg := kind.Error()
	if detail != nil {
		msg += ": " + detail.Error()
	}

	opts.Logger.LogAttrs(context.Background(), slog.LevelDebug, "stored value rejected",
		logger.Label(opts.Context),
		logger.Stage(string(stage)),
		logger.Size(size),
		logger.Error(detail),
	)

	return Result{
		Error: msg,
		Err:   errors.Join(kind, detail),
		Stage: stage,
	}
}
