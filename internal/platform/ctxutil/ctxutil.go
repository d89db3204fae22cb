package ctxutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/veldtlabs/agencydesk-backend/internal/domain"
)

type requestDataKey struct{}

// RequestData is the authenticated identity attached to every request.
// AgencyID is nil only for super_admin callers, who must name a target
// agency explicitly on tenant-scoped operations.
type RequestData struct {
	UserID   uuid.UUID
	Role     domain.Role
	AgencyID *uuid.UUID
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	rd, ok := ctx.Value(requestDataKey{}).(*RequestData)
	if !ok {
		return nil
	}
	return rd
}

type traceDataKey struct{}

type TraceData struct {
	TraceID   string
	RequestID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	td, ok := ctx.Value(traceDataKey{}).(*TraceData)
	if !ok {
		return nil
	}
	return td
}

// Default returns context.Background() when ctx is nil.
func Default(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
