package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"ArticleGate/internal/domain"
	"ArticleGate/internal/usecase"

	"github.com/google/uuid"
)

var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

// Operations accepted in invoke mode.
const (
	OperationOutline = "outline"
	OperationArticle = "article"
)

// Invocation is the single request read in invoke mode.
type Invocation struct {
	Operation string          `json:"operation"`
	RequestID string          `json:"requestId,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

type invocationError struct {
	Error string `json:"error"`
}

// Invoke reads one Invocation from r and writes the JSON result to w. Gate verdicts,
// blocked or not, are successful results; failures are written as {"error": ...} and returned.
func (a *Application) Invoke(ctx context.Context, r io.Reader, w io.Writer) error {
	var inv Invocation
	if err := json.NewDecoder(r).Decode(&inv); err != nil {
		return a.writeFailure(w, fmt.Errorf("decode invocation: %w", err))
	}

	requestID := inv.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx = usecase.WithRequestID(ctx, requestID)

	var (
		result any
		err    error
	)
	switch inv.Operation {
	case OperationOutline:
		var req domain.OutlineRequest
		if err = decodePayload(inv.Payload, &req); err == nil {
			result, err = a.outliner.Outline(ctx, req)
		}
	case OperationArticle:
		var req domain.ArticleRequest
		if err = decodePayload(inv.Payload, &req); err == nil {
			result, err = a.gate.Process(ctx, req)
		}
	default:
		err = fmt.Errorf("unknown operation %q", inv.Operation)
	}
	if err != nil {
		return a.writeFailure(w, err)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

func decodePayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return errors.New("payload is required")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

func (a *Application) writeFailure(w io.Writer, err error) error {
	a.logger.Warn("invocation failed", "error", err)
	if encErr := json.NewEncoder(w).Encode(invocationError{Error: err.Error()}); encErr != nil {
		return errors.Join(err, encErr)
	}
	return err
}
