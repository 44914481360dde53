package domain

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZero(t *testing.T) {
	tests := []struct {
		name string
		bufs [][]byte
	}{
		{name: "single key", bufs: [][]byte{bytes.Repeat([]byte{0xAB}, KeySize)}},
		{name: "dek and its hex form", bufs: [][]byte{
			bytes.Repeat([]byte{0x01}, KeySize),
			bytes.Repeat([]byte("f"), 2*KeySize),
		}},
		{name: "empty buffer", bufs: [][]byte{{}}},
		{name: "nil buffer mixed in", bufs: [][]byte{nil, []byte("payload")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Zero(tt.bufs...)
			for _, b := range tt.bufs {
				assert.Equal(t, make([]byte, len(b)), []byte(b))
			}
		})
	}

	t.Run("no arguments", func(t *testing.T) {
		assert.NotPanics(t, func() { Zero() })
	})

	t.Run("sub-slice leaves the rest intact", func(t *testing.T) {
		b := []byte{1, 2, 3, 4}
		Zero(b[:2])
		assert.Equal(t, []byte{0, 0, 3, 4}, b)
	})
}
