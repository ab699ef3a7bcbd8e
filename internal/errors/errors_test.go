package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestErrorString() {
	err := errors.InvalidActionf("move %s has no PP left", "EMBER")
	s.Equal("INVALID_ACTION: move EMBER has no PP left", err.Error())

	wrapped := errors.Wrap(fmt.Errorf("connection refused"), "failed to load creature")
	s.Equal("INTERNAL: failed to load creature: connection refused", wrapped.Error())
}

func (s *ErrorsTestSuite) TestWrapKeepsCodeAndCopiesMeta() {
	inner := errors.InvalidAction("creature has fainted").WithCreature("c-2")
	wrapped := errors.Wrap(inner, "shift rejected").WithBattle("b-1")

	s.True(errors.IsInvalidAction(wrapped))
	s.Equal("shift rejected", wrapped.Message)
	s.Equal("c-2", errors.MetaString(wrapped, errors.MetaCreatureID))
	s.Equal("b-1", errors.MetaString(wrapped, errors.MetaBattleID))
	s.Empty(errors.MetaString(inner, errors.MetaBattleID))
	s.Equal(inner, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	inner := errors.NotFound("move not found").WithMove("EMBER")
	wrapped := errors.WrapWithCode(inner, errors.CodeInvalidConfiguration, "species learnset is broken")

	s.True(errors.IsInvalidConfiguration(wrapped))
	s.Equal("EMBER", errors.MetaString(wrapped, errors.MetaMoveID))
	s.True(errors.IsNotFound(inner))
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "nothing"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "nothing"))
}

func (s *ErrorsTestSuite) TestPredicates() {
	testCases := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"not found", errors.NotFoundf("battle %s", "b-1"), errors.IsNotFound},
		{"invalid argument", errors.InvalidArgumentf("level %d", 0), errors.IsInvalidArgument},
		{"already exists", errors.AlreadyExists("creature c-1"), errors.IsAlreadyExists},
		{"failed precondition", errors.FailedPreconditionf("battle %s is over", "b-1"), errors.IsFailedPrecondition},
		{"invalid action", errors.InvalidAction("no PP"), errors.IsInvalidAction},
		{"invalid configuration", errors.InvalidConfigurationf("zone %s", "ROUTE_1"), errors.IsInvalidConfiguration},
		{"invariant violation", errors.InvariantViolationf("hp %d", -1), errors.IsInvariantViolation},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.True(tc.check(tc.err))
			s.True(tc.check(errors.Wrap(tc.err, "wrapped")))
			s.False(tc.check(fmt.Errorf("plain")))
			s.False(tc.check(nil))
		})
	}
}

func (s *ErrorsTestSuite) TestIsMatchesCode() {
	a := errors.InvalidAction("a")

	s.True(a.Is(errors.InvalidAction("b")))
	s.False(a.Is(errors.InvalidArgument("a")))
	s.True(errors.Is(errors.Wrap(a, "wrapped"), errors.InvalidAction("c")))
}

func (s *ErrorsTestSuite) TestAccessors() {
	wrapped := errors.Wrap(errors.NotFound("battle not found").WithBattle("b-1"), "wrapped message")

	s.Equal(errors.CodeNotFound, errors.CodeOf(wrapped))
	s.Equal(errors.CodeInternal, errors.CodeOf(fmt.Errorf("standard error")))
	s.Equal(errors.CodeOK, errors.CodeOf(nil))

	s.Equal("wrapped message", errors.MessageOf(wrapped))
	s.Equal("standard error", errors.MessageOf(fmt.Errorf("standard error")))
	s.Empty(errors.MessageOf(nil))
	s.Empty(errors.MetaString(fmt.Errorf("standard error"), errors.MetaBattleID))
}

func (s *ErrorsTestSuite) TestRetryable() {
	s.True(errors.CodeUnavailable.Retryable())
	s.True(errors.CodeDeadlineExceeded.Retryable())
	s.False(errors.CodeInvalidAction.Retryable())
}

func (s *ErrorsTestSuite) TestGRPCCodeMapping() {
	testCases := []struct {
		code     errors.Code
		expected codes.Code
	}{
		{errors.CodeNotFound, codes.NotFound},
		{errors.CodeInvalidArgument, codes.InvalidArgument},
		{errors.CodeAlreadyExists, codes.AlreadyExists},
		{errors.CodeInternal, codes.Internal},
		{errors.CodeUnavailable, codes.Unavailable},
		{errors.CodeDeadlineExceeded, codes.DeadlineExceeded},
		{errors.CodeInvalidAction, codes.FailedPrecondition},
		{errors.CodeInvalidConfiguration, codes.Internal},
		{errors.CodeInvariantViolation, codes.Internal},
		{errors.Code("SOMETHING_ELSE"), codes.Unknown},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Equal(tc.expected, tc.code.GRPCCode())
		})
	}
}

func (s *ErrorsTestSuite) TestGRPCRoundTripKeepsDomainCode() {
	err := errors.InvalidAction("move has no PP left").WithMove("EMBER").WithSide("PLAYER")

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Equal(codes.FailedPrecondition, st.Code())
	s.Equal("move has no PP left", st.Message())

	back := errors.FromGRPCError(grpcErr)
	s.True(errors.IsInvalidAction(back))
	s.Equal("EMBER", errors.MetaString(back, errors.MetaMoveID))
	s.Equal("PLAYER", errors.MetaString(back, errors.MetaSide))
}

func (s *ErrorsTestSuite) TestFromPlainGRPCError() {
	err := errors.FromGRPCError(status.Error(codes.Unavailable, "connection refused"))
	s.Equal(errors.CodeUnavailable, errors.CodeOf(err))
	s.Equal("connection refused", errors.MessageOf(err))

	err = errors.FromGRPCError(status.Error(codes.Unimplemented, "no such method"))
	s.Equal(errors.CodeInternal, errors.CodeOf(err))

	plain := fmt.Errorf("not a status")
	s.Equal(plain, errors.FromGRPCError(plain))
	s.Nil(errors.FromGRPCError(nil))
}

func (s *ErrorsTestSuite) TestToGRPCError() {
	st, ok := status.FromError(errors.ToGRPCError(fmt.Errorf("boom")))
	s.Require().True(ok)
	s.Equal(codes.Internal, st.Code())

	existing := status.Error(codes.NotFound, "gone")
	s.Equal(existing, errors.ToGRPCError(existing))
	s.Nil(errors.ToGRPCError(nil))
}
