package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestBuildCollectsEveryField() {
	vb := errors.NewValidationBuilder()
	vb.Field("nickname", "is too long").
		Fieldf("level", "must be between %d and %d", 1, 100).
		RequiredField("species_id").
		InvalidField("move_slot", "out of range")
	s.True(vb.HasErrors())

	err := vb.Build()
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Equal(
		"validation failed: level: must be between 1 and 100; move_slot: is invalid: out of range; "+
			"nickname: is too long; species_id: is required",
		errors.MessageOf(err),
	)

	fields := errors.FieldErrors(err)
	s.Len(fields, 4)
	s.Equal([]string{"is required"}, fields["species_id"])
}

func (s *ValidationTestSuite) TestBuildWithoutErrors() {
	vb := errors.NewValidationBuilder()
	s.False(vb.HasErrors())
	s.NoError(vb.Build())
	s.Nil(errors.FieldErrors(nil))
}

func (s *ValidationTestSuite) TestBuildWithCode() {
	vb := errors.NewValidationBuilder()
	vb.InvalidField("moves.EMBER.accuracy", "must be between 0 and 100")

	err := vb.BuildWithCode(errors.CodeInvalidConfiguration)
	s.Require().Error(err)
	s.True(errors.IsInvalidConfiguration(err))
}

func (s *ValidationTestSuite) TestBuiltErrorIsDetached() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("owner_id")
	err := vb.Build()

	vb.RequiredField("species_id")
	s.Len(errors.FieldErrors(err), 1)
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "PIKACHU", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("species_id", tc.value, vb)
			s.Equal(tc.shouldErr, vb.HasErrors())
		})
	}
}

func (s *ValidationTestSuite) TestValidateRange() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("level", 101, 1, 100, vb)
	errors.ValidateRange("iv", 31, 0, 31, vb)
	errors.ValidateRange("ev", -1, 0, 252, vb)

	fields := errors.FieldErrors(vb.Build())
	s.Equal([]string{"must be between 1 and 100"}, fields["level"])
	s.Equal([]string{"must be between 0 and 252"}, fields["ev"])
	s.NotContains(fields, "iv")
}
