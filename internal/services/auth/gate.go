package auth

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gdshowcase/gd-showcase/config"
	"github.com/gdshowcase/gd-showcase/utils/crypto"
	"github.com/golang-jwt/jwt/v5"
)

// AccessMethodButton 审核入口的访问方式标记
const AccessMethodButton = "button"

// GateService 审核后台的准入服务
// 口令换取签名令牌，令牌写入 cookie 后由中间件校验
type GateService struct {
	moderatorSecret string
	tokenSecret     []byte
	tokenTTL        time.Duration
}

// NewGateService 创建准入服务
// 未配置令牌密钥时生成随机密钥，重启后所有已发令牌失效
func NewGateService(cfg *config.Config) (*GateService, error) {
	secret := cfg.GateTokenSecret
	if secret == "" {
		random, err := crypto.RandomToken(32)
		if err != nil {
			return nil, fmt.Errorf("failed to generate token secret: %w", err)
		}
		secret = random
		log.Println("Warning: gate_token_secret not set, generated an ephemeral one; tokens will not survive restarts")
	}

	ttl := cfg.GateTokenTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &GateService{
		moderatorSecret: cfg.ModeratorSecret,
		tokenSecret:     []byte(secret),
		tokenTTL:        ttl,
	}, nil
}

// VerifySecret 校验提交的审核口令
// 配置值为 argon2id 编码哈希时按哈希校验，否则常数时间比较明文
func (s *GateService) VerifySecret(secret string) bool {
	if s.moderatorSecret == "" {
		return false
	}

	if strings.HasPrefix(s.moderatorSecret, "$argon2id$") {
		ok, err := crypto.VerifySecret(secret, s.moderatorSecret)
		if err != nil {
			log.Printf("Warning: failed to verify moderator secret hash: %v", err)
			return false
		}
		return ok
	}
	return crypto.ConstantTimeEquals(secret, s.moderatorSecret)
}

// IssueToken 签发审核访问令牌
func (s *GateService) IssueToken() (string, time.Duration, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "moderator",
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.tokenSecret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, s.tokenTTL, nil
}

// ValidateToken 校验审核访问令牌
func (s *GateService) ValidateToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.tokenSecret, nil
	})
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("invalid token")
	}
	return nil
}

// TokenTTL 返回令牌有效期
func (s *GateService) TokenTTL() time.Duration {
	return s.tokenTTL
}
