package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/mautops/remotework-gin/internal/auth"
	"github.com/mautops/remotework-gin/internal/model"
	"github.com/mautops/remotework-gin/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testIdentity(role string) auth.Identity {
	return auth.Identity{
		ActingUser: workflow.ActingUser{
			ID:           "u-1",
			Username:     "emma",
			DisplayName:  "Emma",
			Role:         role,
			DepartmentID: "d-1",
		},
		DepartmentName: "Engineering",
	}
}

// TestHMACTokenValidator_Validate 测试 HS256 token 验证
func TestHMACTokenValidator_Validate(t *testing.T) {
	token, err := auth.IssueToken(testSecret, testIdentity(model.RoleApprover), time.Hour)
	require.NoError(t, err)

	id, err := auth.NewHMACTokenValidator(testSecret).Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", id.ID)
	assert.Equal(t, "emma", id.Username)
	assert.Equal(t, model.RoleApprover, id.Role)
	assert.Equal(t, "d-1", id.DepartmentID)
	assert.Equal(t, "Engineering", id.DepartmentName)
}

// TestHMACTokenValidator_Rejects 测试无效 token
func TestHMACTokenValidator_Rejects(t *testing.T) {
	v := auth.NewHMACTokenValidator(testSecret)

	wrongSecret, err := auth.IssueToken("other-secret", testIdentity(model.RoleEmployee), time.Hour)
	require.NoError(t, err)
	_, err = v.Validate(wrongSecret)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	expired, err := auth.IssueToken(testSecret, testIdentity(model.RoleEmployee), -time.Minute)
	require.NoError(t, err)
	_, err = v.Validate(expired)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	badRole, err := auth.IssueToken(testSecret, testIdentity("superuser"), time.Hour)
	require.NoError(t, err)
	_, err = v.Validate(badRole)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = v.Validate("not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = auth.IssueToken("", testIdentity(model.RoleEmployee), time.Hour)
	assert.Error(t, err)
}

// TestKeycloakTokenValidator_Validate 测试 Keycloak JWKS 验证与角色映射
func TestKeycloakTokenValidator_Validate(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	jwks := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"keys": []map[string]string{{
				"kid": "k1",
				"kty": "RSA",
				"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
			}},
		})
	}))
	defer jwks.Close()

	issuer := jwks.URL
	sign := func(iss string, roles []string) string {
		claims := jwt.MapClaims{
			"sub":                "kc-1",
			"preferred_username": "kate",
			"iss":                iss,
			"exp":                time.Now().Add(time.Hour).Unix(),
			"realm_access":       map[string]interface{}{"roles": roles},
		}
		token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
		token.Header["kid"] = "k1"
		s, err := token.SignedString(key)
		require.NoError(t, err)
		return s
	}

	v := auth.NewKeycloakTokenValidator(issuer)

	id, err := v.Validate(sign(issuer, []string{"offline_access", "approver"}))
	require.NoError(t, err)
	assert.Equal(t, "kc-1", id.ID)
	assert.Equal(t, model.RoleApprover, id.Role)

	id, err = v.Validate(sign(issuer, []string{"approver", "admin"}))
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, id.Role)

	id, err = v.Validate(sign(issuer, nil))
	require.NoError(t, err)
	assert.Equal(t, model.RoleEmployee, id.Role)

	_, err = v.Validate(sign("https://evil.example.com", nil))
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

type recordingSyncer struct {
	synced []*auth.Identity
}

func (s *recordingSyncer) SyncIdentity(ctx context.Context, id *auth.Identity) error {
	s.synced = append(s.synced, id)
	return nil
}

func setupRouter(syncer auth.UserSyncer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/", auth.Middleware(auth.NewHMACTokenValidator(testSecret), syncer, nil))
	group.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": auth.ActingUser(c).ID})
	})
	group.GET("/approvals", auth.RequireRole(model.RoleApprover, model.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

// TestMiddleware 测试认证中间件
func TestMiddleware(t *testing.T) {
	syncer := &recordingSyncer{}
	router := setupRouter(syncer)

	employeeToken, err := auth.IssueToken(testSecret, testIdentity(model.RoleEmployee), time.Hour)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+employeeToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"u-1"}`, rec.Body.String())
	require.Len(t, syncer.synced, 1)

	// WebSocket 握手使用查询参数
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me?token="+employeeToken, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestRequireRole 测试角色校验
func TestRequireRole(t *testing.T) {
	router := setupRouter(nil)

	employeeToken, err := auth.IssueToken(testSecret, testIdentity(model.RoleEmployee), time.Hour)
	require.NoError(t, err)
	approverToken, err := auth.IssueToken(testSecret, testIdentity(model.RoleApprover), time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/approvals", nil)
	req.Header.Set("Authorization", "Bearer "+employeeToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/approvals", nil)
	req.Header.Set("Authorization", "Bearer "+approverToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
