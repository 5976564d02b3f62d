package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"   ", ""},
		{"abc", ""},
		{"-5", ""},
		{"0", "0 Byte"},
		{"1", "1 Bytes"},
		{"1023", "1023 Bytes"},
		{"1024", "1 KB"},
		{"1536", "2 KB"},
		{"1048576", "1 MB"},
		{"1073741824", "1 GB"},
		{"1099511627776", "1 TB"},
		{"1125899906842624", "1024 TB"},
		{" 2048 ", "2 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatSize(tt.input))
		})
	}
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0 Byte", FormatBytes(0))
	assert.Equal(t, "", FormatBytes(-1))
	assert.Equal(t, "500 Bytes", FormatBytes(500))
	assert.Equal(t, "10 MB", FormatBytes(10*1024*1024))
	// 2^63-1 still lands on the last unit
	assert.Equal(t, "8388608 TB", FormatBytes(1<<63-1))
}
