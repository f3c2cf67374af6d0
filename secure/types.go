package secure

// MethodNotificationStatus 告知网关 method 通知是否到达的三态信号
type MethodNotificationStatus string

const (
	// MethodReceived 已发送 MethodNotificationUrl 且在 10 秒窗口内
	// 收到了 ACS 的通知
	MethodReceived MethodNotificationStatus = "RECEIVED"

	// MethodExpectedButNotReceived 已发送 MethodNotificationUrl
	// 但窗口内未收到 ACS 通知，网关可据此在无浏览器信号的情况下继续
	MethodExpectedButNotReceived MethodNotificationStatus = "EXPECTED_BUT_NOT_RECEIVED"

	// MethodNotExpected 初始交易未发送 MethodNotificationUrl
	MethodNotExpected MethodNotificationStatus = "NOT_EXPECTED"
)

// ChallengeIndicator 商户对是否执行质询的偏好
type ChallengeIndicator string

const (
	// ChallengeNoPreference 无偏好（默认值）
	ChallengeNoPreference ChallengeIndicator = "01"
	// ChallengeNone 商户偏好不执行质询
	ChallengeNone ChallengeIndicator = "02"
	// ChallengePreferred 商户偏好执行质询（高风险或大额交易）
	ChallengePreferred ChallengeIndicator = "03"
	// ChallengeMandatory 区域性强制质询
	ChallengeMandatory ChallengeIndicator = "04"
)

// Status 3DS 会话的对外状态
//
// 状态机：
//
//	INITIATED → {APPROVED | METHOD_PENDING | CHALLENGE_PENDING | REJECTED}
//	METHOD_PENDING → {CHALLENGE_PENDING | APPROVED | REJECTED}
//	CHALLENGE_PENDING → {APPROVED | REJECTED}
//
// APPROVED 与 REJECTED 为终态，到达终态后会话即被删除。
type Status string

const (
	// StatusApproved 交易核准（终态）
	StatusApproved Status = "approved"
	// StatusRejected 交易被拒绝或出错（终态）
	StatusRejected Status = "rejected"
	// StatusMethodPending 等待浏览器完成 method 步骤
	StatusMethodPending Status = "method_pending"
	// StatusChallengePending 等待持卡人完成质询
	StatusChallengePending Status = "challenge_pending"
)
