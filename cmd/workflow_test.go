package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptStringUsesDefaultOnEmptyInput(t *testing.T) {
	var out bytes.Buffer
	in := bufio.NewReader(strings.NewReader("\n"))

	got := promptString(in, &out, "Target location", "colorado")
	assert.Equal(t, "colorado", got)
	assert.Contains(t, out.String(), "[colorado]")
}

func TestPromptStringTrimsInput(t *testing.T) {
	var out bytes.Buffer
	in := bufio.NewReader(strings.NewReader("  austin  \n"))

	got := promptString(in, &out, "Target location", "")
	assert.Equal(t, "austin", got)
}

func TestPromptStringDefaultOnEOF(t *testing.T) {
	var out bytes.Buffer
	in := bufio.NewReader(strings.NewReader(""))

	got := promptString(in, &out, "Target industry", "bakery")
	assert.Equal(t, "bakery", got)
}

func TestPromptInt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   int
		want  int
	}{
		{"valid number", "25\n", 10, 25},
		{"empty keeps default", "\n", 10, 10},
		{"garbage keeps default", "lots\n", 10, 10},
		{"zero keeps default", "0\n", 10, 10},
		{"negative keeps default", "-3\n", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			in := bufio.NewReader(strings.NewReader(tt.input))
			assert.Equal(t, tt.want, promptInt(in, &out, "How many", tt.def))
		})
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"maybe\n", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		in := bufio.NewReader(strings.NewReader(tt.input))
		assert.Equal(t, tt.want, confirm(in, &out, "Proceed?"), "input %q", tt.input)
	}
}
