package api

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// I18nManager 国际化管理器
type I18nManager struct {
	messages map[string]map[string]string // lang -> key -> message
}

var defaultI18nManager *I18nManager

func init() {
	defaultI18nManager = NewI18nManager()
	defaultI18nManager.LoadMessages("en", map[string]string{
		"error.not_found":                 "Resource not found",
		"error.unauthorized":              "Unauthorized",
		"error.forbidden":                 "Forbidden",
		"error.bad_request":               "Bad request",
		"error.internal_error":            "Internal server error",
		"error.too_many_requests":         "Too many requests",
		"error.text_too_long":             "Text exceeds the maximum length",
		"error.reason_required":           "A reason is required",
		"error.requested_date_required":   "A requested date is required",
		"error.invalid_date":              "The requested date must be in YYYY-MM-DD format",
		"error.special_approval_required": "Same-day or past requests require special approval",
		"error.time_range_incomplete":     "Start time and end time must be given together",
		"error.invalid_time":              "Times must be in HH:MM format",
		"error.time_range_invalid":        "End time must be after start time",
		"error.overtime_not_acknowledged": "The requested hours exceed the daily limit; please acknowledge overtime",
		"error.invalid_decision":          "Decision must be approved or denied",
		"error.denial_reason_required":    "A denial reason is required",
		"error.invalid_status_filter":     "Status filter must be pending or processed",
		"error.invalid_month":             "Month must be in YYYY-MM format",
		"error.unauthenticated":           "Please sign in",
		"error.approver_role_required":    "Only approvers can process applications",
		"error.admin_role_required":       "Only admins can read the audit trail",
		"error.self_approval":             "You cannot process your own application",
		"error.already_processed":         "This application has already been processed",
		"error.application_not_found":     "Application not found",
		"error.notification_not_found":    "Notification not found",
		"success.created":                 "Created successfully",
		"success.updated":                 "Updated successfully",
	})
	defaultI18nManager.LoadMessages("ja", map[string]string{
		"error.not_found":                 "リソースが見つかりません",
		"error.unauthorized":              "認証されていません",
		"error.forbidden":                 "アクセスが拒否されました",
		"error.bad_request":               "不正なリクエストです",
		"error.internal_error":            "サーバー内部エラーが発生しました",
		"error.too_many_requests":         "リクエストが多すぎます",
		"error.text_too_long":             "入力が長すぎます",
		"error.reason_required":           "理由を入力してください",
		"error.requested_date_required":   "希望日を入力してください",
		"error.invalid_date":              "希望日は YYYY-MM-DD 形式で入力してください",
		"error.special_approval_required": "当日または過去日の申請には特別承認が必要です",
		"error.time_range_incomplete":     "開始時刻と終了時刻は両方入力してください",
		"error.invalid_time":              "時刻は HH:MM 形式で入力してください",
		"error.time_range_invalid":        "終了時刻は開始時刻より後にしてください",
		"error.overtime_not_acknowledged": "申請時間が1日の上限を超えています。時間外勤務を確認してください",
		"error.invalid_decision":          "承認または却下を選択してください",
		"error.denial_reason_required":    "却下理由を入力してください",
		"error.invalid_status_filter":     "ステータスは pending または processed を指定してください",
		"error.invalid_month":             "月は YYYY-MM 形式で指定してください",
		"error.unauthenticated":           "ログインしてください",
		"error.approver_role_required":    "承認者のみが申請を処理できます",
		"error.admin_role_required":       "監査ログは管理者のみ閲覧できます",
		"error.self_approval":             "自分の申請は処理できません",
		"error.already_processed":         "この申請はすでに処理されています",
		"error.application_not_found":     "申請が見つかりません",
		"error.notification_not_found":    "通知が見つかりません",
		"success.created":                 "作成しました",
		"success.updated":                 "更新しました",
	})
}

// NewI18nManager 创建国际化管理器
func NewI18nManager() *I18nManager {
	return &I18nManager{
		messages: make(map[string]map[string]string),
	}
}

// LoadMessages 加载语言消息
func (m *I18nManager) LoadMessages(lang string, messages map[string]string) {
	m.messages[lang] = messages
}

// Lookup 查找翻译,找不到时回退到英文
func (m *I18nManager) Lookup(lang, key string) (string, bool) {
	if messages, ok := m.messages[lang]; ok {
		if message, ok := messages[key]; ok {
			return message, true
		}
	}
	if lang != "en" {
		if message, ok := m.messages["en"][key]; ok {
			return message, true
		}
	}
	return "", false
}

// Translate 翻译消息,找不到时返回 key
func (m *I18nManager) Translate(lang, key string) string {
	if message, ok := m.Lookup(lang, key); ok {
		return message
	}
	return key
}

// I18nMiddleware 国际化中间件,lang 查询参数优先于 Accept-Language 头
func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := "en"

		if queryLang := c.Query("lang"); queryLang != "" {
			lang = normalizeLanguage(queryLang)
		} else if headerLang := c.GetHeader("Accept-Language"); headerLang != "" {
			lang = parseAcceptLanguage(headerLang)
		}

		c.Set("language", lang)
		c.Next()
	}
}

// GetLanguage 从上下文获取语言
func GetLanguage(c *gin.Context) string {
	if lang, exists := c.Get("language"); exists {
		if l, ok := lang.(string); ok {
			return l
		}
	}
	return "en"
}

// T 翻译消息
func T(c *gin.Context, key string) string {
	return defaultI18nManager.Translate(GetLanguage(c), key)
}

// translateOr 翻译消息,找不到时使用 fallback
func translateOr(c *gin.Context, key, fallback string) string {
	if message, ok := defaultI18nManager.Lookup(GetLanguage(c), key); ok {
		return message
	}
	return fallback
}

// normalizeLanguage 规范化语言代码
func normalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	switch {
	case strings.HasPrefix(lang, "ja"):
		return "ja"
	case strings.HasPrefix(lang, "en"):
		return "en"
	}
	return lang
}

// parseAcceptLanguage 解析 Accept-Language 头,取第一个语言
// 例如 ja-JP,ja;q=0.9,en;q=0.8
func parseAcceptLanguage(header string) string {
	lang := strings.Split(header, ",")[0]
	if idx := strings.Index(lang, ";"); idx != -1 {
		lang = lang[:idx]
	}
	if strings.TrimSpace(lang) == "" {
		return "en"
	}
	return normalizeLanguage(lang)
}
