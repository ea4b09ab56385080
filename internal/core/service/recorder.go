package service

import "context"

type NoopRecorder struct{}

func (NoopRecorder) RecordOperation(ctx context.Context, entity string, operation string) {}
