package dto

import "time"

type ActionRequest struct {
	TargetID int64  `json:"target_id"`
	Action   string `json:"action"`
}

type ActionResponse struct {
	OK         bool         `json:"ok"`
	Match      MatchPayload `json:"match"`
	Matched    bool         `json:"matched"`
	SuperLikes QuotaPayload `json:"super_likes"`
}

type QuotaPayload struct {
	Used      int       `json:"used"`
	Limit     int       `json:"limit"`
	Unlimited bool      `json:"unlimited"`
	ResetAt   time.Time `json:"reset_at"`
}

type RewindResponse struct {
	OK             bool   `json:"ok"`
	UndoneAction   string `json:"undone_action"`
	UndoneTargetID int64  `json:"undone_target_id"`
}

type BlockRequest struct {
	TargetID int64  `json:"target_id"`
	Reason   string `json:"reason,omitempty"`
}

type UnmatchRequest struct {
	TargetID int64 `json:"target_id"`
}

type ReportRequest struct {
	TargetID int64  `json:"target_id"`
	Reason   string `json:"reason"`
	Details  string `json:"details,omitempty"`
}

type ReportResponse struct {
	OK        bool   `json:"ok"`
	ReportID  int64  `json:"report_id"`
	Reference string `json:"reference"`
}
