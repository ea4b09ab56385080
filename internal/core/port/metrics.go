package port

import "context"

// OperationRecorder counts successful domain operations, e.g. ("todo", "create").
type OperationRecorder interface {
	RecordOperation(ctx context.Context, entity string, operation string)
}
