// Copyright (c) 2026 Clipstream. All rights reserved.

package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clipstream/api/pkg/normalize"
)

/*
TestUsername covers trimming, case folding, and Unicode compatibility forms.
*/
func TestUsername(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already_canonical", "ada", "ada"},
		{"uppercase_folded", "AB", "ab"},
		{"surrounding_whitespace", "  ada_99  ", "ada_99"},
		{"fullwidth_compat", "ａｄａ", "ada"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalize.Username(tt.input))
		})
	}
}

/*
TestEmail verifies the whole address is lowercased and trimmed.
*/
func TestEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", normalize.Email(" A@X.COM "))
	assert.Equal(t, "ada@clipstream.app", normalize.Email("Ada@Clipstream.App"))
}

/*
TestFullName verifies display names keep their casing.
*/
func TestFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", normalize.FullName("  Ada Lovelace  "))
}
