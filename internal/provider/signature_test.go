package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignature(t *testing.T) {
	assert.Equal(t, "11450549085DC1824F1D027C1ABAEB8F", Signature("500.000000", "42", "secret2"))
	assert.Equal(t, "DCBBBFB464AF77D0CB9CFD5324B02BEA", Signature("shop", "500.00", "42", "secret1"))
}

func TestSignatureMatches(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		got      string
		match    bool
	}{
		{"Exact", "11450549085DC1824F1D027C1ABAEB8F", "11450549085DC1824F1D027C1ABAEB8F", true},
		{"Lower case", "11450549085DC1824F1D027C1ABAEB8F", "11450549085dc1824f1d027c1abaeb8f", true},
		{"Tampered", "11450549085DC1824F1D027C1ABAEB8F", "11450549085DC1824F1D027C1ABAEB80", false},
		{"Truncated", "11450549085DC1824F1D027C1ABAEB8F", "11450549085DC1824F1D027C1ABAEB8", false},
		{"Empty", "11450549085DC1824F1D027C1ABAEB8F", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.match, SignatureMatches(tt.expected, tt.got))
		})
	}
}
