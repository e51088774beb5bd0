// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package namekey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/anicat/pkg/namekey"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims", "  Action  ", "Action"},
		{"collapses_inner_space", "Slice   of\tLife", "Slice of Life"},
		{"keeps_case", "SciFi", "SciFi"},
		{"composes_accents", "Cafe\u0301", "Caf\u00e9"},
		{"blank", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, namekey.Normalize(tt.input))
		})
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, namekey.Key("Action"), namekey.Key("action"))
	assert.Equal(t, namekey.Key("Slice of Life"), namekey.Key(" slice  OF life "))
	assert.Equal(t, namekey.Key("Café"), namekey.Key("CAFÉ"))
	assert.NotEqual(t, namekey.Key("Action"), namekey.Key("Adventure"))
}

func TestDedupe(t *testing.T) {
	got := namekey.Dedupe([]string{"Action", " action ", "Drama", "", "DRAMA", "Comedy"})
	assert.Equal(t, []string{"Action", "Drama", "Comedy"}, got)

	assert.Empty(t, namekey.Dedupe(nil))
}
