package forge

import (
	stderrors "errors"

	errors "github.com/goliatone/go-errors"
)

const (
	ErrCodeUnknownComponent   = "FORGE_UNKNOWN_COMPONENT"
	ErrCodeDanglingReference  = "FORGE_DANGLING_REFERENCE"
	ErrCodeDuplicateConnect   = "FORGE_DUPLICATE_CONNECTION"
	ErrCodeDuplicateNode      = "FORGE_DUPLICATE_NODE"
	ErrCodeNodeNotFound       = "FORGE_NODE_NOT_FOUND"
	ErrCodeMissingAgentNode   = "FORGE_MISSING_AGENT_NODE"
	ErrCodeMultipleAgentNodes = "FORGE_MULTIPLE_AGENT_NODES"
	ErrCodeInvalidPayload     = "FORGE_INVALID_PAYLOAD"
)

var (
	ErrUnknownComponent = errors.New("unknown component type", errors.CategoryBadInput).
				WithTextCode(ErrCodeUnknownComponent)
	ErrDanglingReference = errors.New("connection references unknown node", errors.CategoryBadInput).
				WithTextCode(ErrCodeDanglingReference)
	ErrDuplicateConnection = errors.New("duplicate connection", errors.CategoryConflict).
				WithTextCode(ErrCodeDuplicateConnect)
	ErrDuplicateNode = errors.New("duplicate node id", errors.CategoryConflict).
				WithTextCode(ErrCodeDuplicateNode)
	ErrNodeNotFound = errors.New("node not found", errors.CategoryBadInput).
			WithTextCode(ErrCodeNodeNotFound)
	ErrMissingAgentNode = errors.New("no agent node in graph", errors.CategoryValidation).
				WithTextCode(ErrCodeMissingAgentNode)
	ErrMultipleAgentNodes = errors.New("multiple agent nodes in graph", errors.CategoryValidation).
				WithTextCode(ErrCodeMultipleAgentNodes)
	ErrInvalidPayload = errors.New("invalid graph payload", errors.CategoryBadInput).
				WithTextCode(ErrCodeInvalidPayload)
)

func cloneModelError(base *errors.Error, message string, metadata map[string]any) *errors.Error {
	err := base.Clone()
	if message != "" {
		err.Message = message
	}
	if len(metadata) > 0 {
		err = err.WithMetadata(metadata)
	}
	return err
}

// ErrorCode extracts the canonical text code from model errors.
func ErrorCode(err error) string {
	var ge *errors.Error
	if stderrors.As(err, &ge) {
		return ge.TextCode
	}
	return ""
}

// IsCode reports whether err carries the given model error code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}
