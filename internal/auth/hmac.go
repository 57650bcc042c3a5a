package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mautops/remotework-gin/internal/model"
	"github.com/mautops/remotework-gin/internal/workflow"
)

// Claims HS256 token 声明
type Claims struct {
	PreferredUsername string `json:"preferred_username"`
	Name              string `json:"name,omitempty"`
	Role              string `json:"role"`
	DepartmentID      string `json:"department_id,omitempty"`
	DepartmentName    string `json:"department_name,omitempty"`
	jwt.RegisteredClaims
}

// HMACTokenValidator 使用共享密钥验证 HS256 token
type HMACTokenValidator struct {
	secret []byte
}

// NewHMACTokenValidator 创建 HS256 token 验证器
func NewHMACTokenValidator(secret string) *HMACTokenValidator {
	return &HMACTokenValidator{secret: []byte(secret)}
}

// Validate 验证 token
func (v *HMACTokenValidator) Validate(tokenString string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	role := claims.Role
	if role == "" {
		role = model.RoleEmployee
	}
	if !model.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, role)
	}

	return &Identity{
		ActingUser: workflow.ActingUser{
			ID:           claims.Subject,
			Username:     claims.PreferredUsername,
			DisplayName:  claims.Name,
			Role:         role,
			DepartmentID: claims.DepartmentID,
		},
		DepartmentName: claims.DepartmentName,
	}, nil
}

// IssueToken 签发 HS256 token,用于开发和测试环境
func IssueToken(secret string, id Identity, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	now := time.Now()
	claims := Claims{
		PreferredUsername: id.Username,
		Name:              id.DisplayName,
		Role:              id.Role,
		DepartmentID:      id.DepartmentID,
		DepartmentName:    id.DepartmentName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
