package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// RandomToken 生成 n 字节熵的随机令牌，URL 安全编码
func RandomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random source: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
