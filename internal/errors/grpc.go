package errors

import (
	"encoding/json"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Keys of the structpb detail attached to every status we produce
const (
	detailCode = "code"
	detailMeta = "meta"
)

var toGRPC = map[Code]codes.Code{
	CodeOK:                   codes.OK,
	CodeCanceled:             codes.Canceled,
	CodeDeadlineExceeded:     codes.DeadlineExceeded,
	CodeInvalidArgument:      codes.InvalidArgument,
	CodeNotFound:             codes.NotFound,
	CodeAlreadyExists:        codes.AlreadyExists,
	CodeFailedPrecondition:   codes.FailedPrecondition,
	CodeInternal:             codes.Internal,
	CodeUnavailable:          codes.Unavailable,
	CodeInvalidAction:        codes.FailedPrecondition,
	CodeInvalidConfiguration: codes.Internal,
	CodeInvariantViolation:   codes.Internal,
}

// fromGRPC is used when a status carries no code detail. Domain codes only
// travel in the detail.
var fromGRPC = map[codes.Code]Code{
	codes.OK:                 CodeOK,
	codes.Canceled:           CodeCanceled,
	codes.DeadlineExceeded:   CodeDeadlineExceeded,
	codes.InvalidArgument:    CodeInvalidArgument,
	codes.NotFound:           CodeNotFound,
	codes.AlreadyExists:      CodeAlreadyExists,
	codes.FailedPrecondition: CodeFailedPrecondition,
	codes.Unavailable:        CodeUnavailable,
}

// GRPCCode returns the status code a handler reports for c
func (c Code) GRPCCode() codes.Code {
	if gc, ok := toGRPC[c]; ok {
		return gc
	}
	return codes.Unknown
}

// ToGRPCError converts err to a status error. The domain code and metadata
// ride along as a structpb.Struct detail. Status errors pass through.
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var e *Error
	if !As(err, &e) {
		return status.Error(codes.Internal, err.Error())
	}

	st := status.New(e.Code.GRPCCode(), e.Message)
	if detail := encodeDetails(e); detail != nil {
		if withDetail, derr := st.WithDetails(detail); derr == nil {
			st = withDetail
		}
	}
	return st.Err()
}

// FromGRPCError recovers an *Error from a status error produced by
// ToGRPCError. Errors that are not statuses are returned unchanged.
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	code, ok := fromGRPC[st.Code()]
	if !ok {
		code = CodeInternal
	}
	out := New(code, st.Message())

	for _, d := range st.Details() {
		detail, ok := d.(*structpb.Struct)
		if !ok {
			continue
		}
		fields := detail.AsMap()
		if c, _ := fields[detailCode].(string); c != "" {
			out.Code = Code(c)
		}
		if meta, _ := fields[detailMeta].(map[string]interface{}); meta != nil {
			out.Meta = meta
		}
		break
	}
	return out
}

// encodeDetails normalizes metadata through JSON so structpb accepts it. It
// returns nil when that is not possible.
func encodeDetails(e *Error) *structpb.Struct {
	fields := map[string]interface{}{detailCode: string(e.Code)}

	if len(e.Meta) > 0 {
		raw, err := json.Marshal(e.Meta)
		if err != nil {
			return nil
		}
		var meta map[string]interface{}
		if err := json.Unmarshal(raw, &meta); err != nil {
			return nil
		}
		fields[detailMeta] = meta
	}

	detail, err := structpb.NewStruct(fields)
	if err != nil {
		return nil
	}
	return detail
}
