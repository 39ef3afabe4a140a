package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestStruct struct {
	UserID     string `validate:"required,custom_id"`
	Problem    string `validate:"required"`
	Difficulty string `validate:"required,difficulty"`
	Rating     int    `validate:"omitempty,min=1,max=5"`
}

func TestValidateStruct(t *testing.T) {
	testCases := []struct {
		name             string
		input            TestStruct
		expectError      bool
		expectedErrorMsg string
	}{
		{
			name: "Success: All fields are valid",
			input: TestStruct{
				UserID:     "user-id_123-",
				Problem:    "Two Sum",
				Difficulty: "MEDIUM",
				Rating:     3,
			},
			expectError: false,
		},
		{
			name: "Failure: Invalid custom_id with spaces",
			input: TestStruct{
				UserID:     "invalid id",
				Problem:    "Two Sum",
				Difficulty: "EASY",
			},
			expectError:      true,
			expectedErrorMsg: "field 'UserID' must contain only letters, numbers, hyphens, and underscores",
		},
		{
			name: "Failure: Invalid custom_id with special characters",
			input: TestStruct{
				UserID:     "invalid-id-!",
				Problem:    "Two Sum",
				Difficulty: "EASY",
			},
			expectError:      true,
			expectedErrorMsg: "field 'UserID' must contain only letters, numbers, hyphens, and underscores",
		},
		{
			name: "Failure: Unknown difficulty tier",
			input: TestStruct{
				UserID:     "user-1",
				Problem:    "Two Sum",
				Difficulty: "TRIVIAL",
			},
			expectError:      true,
			expectedErrorMsg: "field 'Difficulty' must be one of EASY, MEDIUM, HARD",
		},
		{
			name: "Failure: Missing required field (Problem)",
			input: TestStruct{
				UserID:     "user-1",
				Problem:    "",
				Difficulty: "HARD",
			},
			expectError:      true,
			expectedErrorMsg: "field 'Problem' failed on the 'required' tag",
		},
		{
			name: "Failure: Rating above range",
			input: TestStruct{
				UserID:     "user-1",
				Problem:    "Two Sum",
				Difficulty: "HARD",
				Rating:     6,
			},
			expectError:      true,
			expectedErrorMsg: "field 'Rating' failed on the 'max' tag",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStruct(tc.input)

			if tc.expectError {
				assert.Error(t, err)
				require.IsType(t, &ValidationError{}, err, "error should be of type ValidationError")
				verr := err.(*ValidationError)
				assert.Contains(t, verr.Error(), tc.expectedErrorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []string{"error 1", "error 2"},
	}
	assert.Equal(t, "error 1, error 2", err.Error())
}
