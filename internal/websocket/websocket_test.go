package websocket_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gorillaWS "github.com/gorilla/websocket"
	"github.com/mautops/remotework-gin/internal/auth"
	"github.com/mautops/remotework-gin/internal/model"
	"github.com/mautops/remotework-gin/internal/websocket"
	"github.com/mautops/remotework-gin/internal/workflow"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "ws-secret"

func setupServer(t *testing.T) (*websocket.Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := websocket.NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	logger := logrus.New()
	router := gin.New()
	router.GET("/ws",
		auth.Middleware(auth.NewHMACTokenValidator(secret), nil, logger),
		websocket.Handler(hub, websocket.NewUpgrader([]string{"*"}), logger),
	)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return hub, server
}

func dial(t *testing.T, server *httptest.Server, userID string) *gorillaWS.Conn {
	t.Helper()
	token, err := auth.IssueToken(secret, auth.Identity{
		ActingUser: workflow.ActingUser{ID: userID, Username: userID, Role: model.RoleEmployee},
	}, time.Hour)
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?token=" + token
	conn, _, err := gorillaWS.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// TestHub_SendToUser 测试只向目标用户推送
func TestHub_SendToUser(t *testing.T) {
	hub, server := setupServer(t)

	emma := dial(t, server, "emma")
	oscar := dial(t, server, "oscar")

	require.Eventually(t, func() bool { return hub.GetClientCount() == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.True(t, hub.IsOnline("emma"))

	delivered, err := hub.SendToUser("emma", websocket.Message{Type: "notification", Data: map[string]string{"kind": "approval"}})
	require.NoError(t, err)
	assert.Equal(t, 1, delivered)

	_ = emma.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := emma.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type string            `json:"type"`
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(payload, &msg))
	assert.Equal(t, "notification", msg.Type)
	assert.Equal(t, "approval", msg.Data["kind"])

	_ = oscar.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err = oscar.ReadMessage()
	assert.Error(t, err)
}

// TestHub_Unregister 测试断开后连接被移除
func TestHub_Unregister(t *testing.T) {
	hub, server := setupServer(t)

	conn := dial(t, server, "emma")
	require.Eventually(t, func() bool { return hub.IsOnline("emma") }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return !hub.IsOnline("emma") }, 2*time.Second, 10*time.Millisecond)

	delivered, err := hub.SendToUser("emma", websocket.Message{Type: "notification"})
	require.NoError(t, err)
	assert.Equal(t, 0, delivered)
}

// TestHandler_RequiresToken 测试缺少 token 时拒绝握手
func TestHandler_RequiresToken(t *testing.T) {
	_, server := setupServer(t)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	_, resp, err := gorillaWS.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)
}
