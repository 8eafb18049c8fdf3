package phone_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeonhwa/bloomdesk/internal/phone"
)

func TestNormalize(t *testing.T) {
	type testCase struct {
		name string
		raw  string
		want string
	}

	tests := []testCase{
		{name: "KoreanMobileWithHyphens", raw: "010-1234-5678", want: "+821012345678"},
		{name: "KoreanMobileWithSpaces", raw: "010 1234 5678", want: "+821012345678"},
		{name: "AlreadyE164", raw: "+821012345678", want: "+821012345678"},
		{name: "SameNumberDifferentFormatting", raw: "(010) 1234-5678", want: "+821012345678"},
		{name: "Empty", raw: "", want: ""},
		{name: "WhitespaceOnly", raw: "   ", want: ""},
		{name: "UnparseableFallsBackToDigits", raw: "ext. 42-17", want: "4217"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, phone.Normalize(tt.raw))
		})
	}
}

func TestNormalize_SameKeyForEquivalentInputs(t *testing.T) {
	a := phone.Normalize("010-1234-5678")
	b := phone.Normalize("+82 10 1234 5678")

	assert.Equal(t, a, b)
}
