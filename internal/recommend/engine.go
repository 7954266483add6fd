// Package recommend implements the rule-based follow-up question engine
// shown beneath assistant answers ("阿福猜您也想知道").
package recommend

import "strings"

// MaxSuggestions caps how many follow-up questions a single answer shows.
const MaxSuggestions = 3

// alwaysExcluded questions never surface as suggestions; the certificate
// replacement edge case has no self-service answer.
var alwaysExcluded = map[string]bool{
	"已將憑證成功啟用，但客戶端電腦毀損或欲在其他電腦上進行簽章，該如何處理？": true,
}

// passwordResetTerms trigger the login-bucket de-duplication rule: a reset
// query already covers password change, so the change-password suggestion
// is redundant.
var passwordResetTerms = []string{"重設", "重置", "忘記", "遺忘", "鎖住", "變更"}

// changePasswordQuestion is the suggestion dropped by the reset rule.
const changePasswordQuestion = "如何變更企業網路銀行登入密碼？"

// bucket pairs a keyword predicate with its suggestion list. Buckets are
// evaluated in declaration order; the first keyword hit wins.
type bucket struct {
	name        string
	keywords    []string
	suggestions []string
}

var buckets = []bucket{
	{
		name:     "login",
		keywords: []string{"登入", "密碼", "帳號"},
		suggestions: []string{
			"遺忘網路銀行密碼或被鎖住時，該如何重置？",
			"如何變更企業網路銀行登入密碼？",
			"使用者登入企業網路銀行時，為何會出現「交易逾時，請稍候再試」訊息？",
			"第一次登入企業網路銀行時，需要注意什麼？",
		},
	},
	{
		name:     "transfer",
		keywords: []string{"轉帳", "匯款", "付款", "限額"},
		suggestions: []string{
			"SSL轉帳的限額是多少？",
			"如何新增約定轉入帳號？",
			"非約定轉帳的限額為何？（FXML機制）",
			"轉帳交易失敗時該如何處理？",
			"如何查詢轉帳交易記錄？",
		},
	},
	{
		name:     "account",
		keywords: []string{"申請", "開戶", "註銷", "企業網銀"},
		suggestions: []string{
			"我的公司想申請企業網路銀行，請問該如何辦理？",
			"請問哪些公司或團體可以申請企業網路銀行？",
			"不再使用企業網路銀行時，該如何註銷服務？",
			"企業網路銀行的申請條件有哪些？",
		},
	},
	{
		name:     "certificate",
		keywords: []string{"憑證", "讀卡機", "pin", "fxml"},
		suggestions: []string{
			"何謂金融XML憑證(FXML憑證)？我是否需要申請？",
			"憑證過期未申請展期，欲繼續使用憑證時應如何辦理？",
			"已將憑證成功啟用，但客戶端電腦毀損或欲在其他電腦上進行簽章，該如何處理？",
			"憑證安裝失敗時該如何處理？",
			"如何備份和還原憑證？",
		},
	},
	{
		name:     "system",
		keywords: []string{"系統", "維護", "瀏覽器", "安裝", "軟體"},
		suggestions: []string{
			"第一次使用企業網路銀行，需要安裝什麼軟體嗎？",
			"登入企業網路銀行後，畫面呈現空白，或是出現「6350錯誤-您已有使用其他帳號登入企業網路銀行,請將已登入視窗關閉後再行登入」？",
			"啟用FXML憑證時，對作業系統及瀏覽器版本有何要求？",
			"系統維護時間是什麼時候？",
			"支援哪些瀏覽器版本？",
		},
	},
	{
		name:     "service",
		keywords: []string{"服務", "功能", "通知"},
		suggestions: []string{
			"何謂電子郵件通知服務？",
			"何謂SSL轉帳服務？",
			"網路轉帳是否安全？",
			"企業網路銀行提供哪些服務？",
			"如何設定交易通知？",
		},
	},
	{
		name:     "security",
		keywords: []string{"安全", "風險", "保護"},
		suggestions: []string{
			"存戶應如何加強網路交易安全？",
			"網路上的交易資料，會不會被盜取或是被纂改？",
			"如果申請多家銀行的憑證並放在電腦內，會不會造成交易錯亂的困擾，或是產生其他後遺症？",
			"如何防範網路釣魚攻擊？",
			"密碼設定有什麼安全建議？",
		},
	},
}

// Engine classifies a query into one of the fixed keyword buckets and
// suggests follow-up questions from it. Pure; safe for concurrent use.
type Engine struct{}

// NewEngine creates a recommendation engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Recommend returns up to MaxSuggestions follow-up question texts for the
// query, skipping any text in excluded and the fixed exclusion list.
func (e *Engine) Recommend(query string, excluded map[string]bool) []string {
	q := strings.ToLower(query)

	suggestions := defaultSuggestions()
	for _, b := range buckets {
		if !matchesAny(q, b.keywords) {
			continue
		}
		suggestions = b.suggestions
		if b.name == "login" && matchesAny(q, passwordResetTerms) {
			suggestions = without(suggestions, changePasswordQuestion)
		}
		break
	}

	result := make([]string, 0, MaxSuggestions)
	for _, text := range suggestions {
		if alwaysExcluded[text] || excluded[text] {
			continue
		}
		result = append(result, text)
		if len(result) == MaxSuggestions {
			break
		}
	}
	return result
}

// Classify returns the bucket name the query falls into, or "default".
func (e *Engine) Classify(query string) string {
	q := strings.ToLower(query)
	for _, b := range buckets {
		if matchesAny(q, b.keywords) {
			return b.name
		}
	}
	return "default"
}

// defaultSuggestions is the blended list used when no bucket matches:
// two account, two login and one transfer entry.
func defaultSuggestions() []string {
	var s []string
	s = append(s, bucketByName("account").suggestions[:2]...)
	s = append(s, bucketByName("login").suggestions[:2]...)
	s = append(s, bucketByName("transfer").suggestions[:1]...)
	return s
}

func bucketByName(name string) *bucket {
	for i := range buckets {
		if buckets[i].name == name {
			return &buckets[i]
		}
	}
	return nil
}

func matchesAny(q string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(q, term) {
			return true
		}
	}
	return false
}

func without(texts []string, drop string) []string {
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		if t != drop {
			out = append(out, t)
		}
	}
	return out
}
