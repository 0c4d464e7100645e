package validator

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSniffImage(t *testing.T) {
	cases := []struct {
		name     string
		content  []byte
		allowed  bool
		mimeType string
	}{
		{"PNG", []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0, 0}, true, "image/png"},
		{"JPEG", []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 0x4a, 0x46, 0x49, 0x46}, true, "image/jpeg"},
		{"GIF", []byte("GIF89a\x01\x00\x01\x00"), true, "image/gif"},
		{"纯文本", []byte("hello, world"), false, "text/plain; charset=utf-8"},
		{"脚本内容", []byte("<script>alert(1)</script>"), false, "text/html; charset=utf-8"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reader := bytes.NewReader(tc.content)
			ok, mimeType, err := SniffImage(reader)
			require.NoError(t, err)
			assert.Equal(t, tc.allowed, ok)
			assert.Equal(t, tc.mimeType, mimeType)

			// 嗅探后读取位置应回到开头
			pos, err := reader.Seek(0, 1)
			require.NoError(t, err)
			assert.Zero(t, pos)
		})
	}
}

func TestExtensionForMime(t *testing.T) {
	assert.Equal(t, "jpg", ExtensionForMime("image/jpeg"))
	assert.Equal(t, "png", ExtensionForMime("image/png"))
	assert.Equal(t, "gif", ExtensionForMime("image/gif"))
	assert.Equal(t, "bin", ExtensionForMime("application/pdf"))
}
