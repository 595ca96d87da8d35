package rpc

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// UnknownGroupError reports that the caller has no group with the given
// number. The number travels as a status detail so the client can refetch
// that one group.
func UnknownGroupError(number int64) error {
	st := status.New(codes.NotFound, fmt.Sprintf("unknown group number %d", number))
	if withDetail, err := st.WithDetails(wrapperspb.Int64(number)); err == nil {
		st = withDetail
	}
	return st.Err()
}

// UnknownGroupNumber extracts the group number from an UnknownGroupError.
func UnknownGroupNumber(err error) (int64, bool) {
	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.NotFound {
		return 0, false
	}
	for _, d := range st.Details() {
		if v, ok := d.(*wrapperspb.Int64Value); ok {
			return v.GetValue(), true
		}
	}
	return 0, false
}
