package enums

import (
	"fmt"
	"strings"
)

type ReportReason string

const (
	ReportReasonSpam          ReportReason = "spam"
	ReportReasonFake          ReportReason = "fake"
	ReportReasonHarassment    ReportReason = "harassment"
	ReportReasonInappropriate ReportReason = "inappropriate"
	ReportReasonOther         ReportReason = "other"
)

func ParseReportReason(input string) (ReportReason, error) {
	value := strings.ToLower(strings.TrimSpace(input))
	switch ReportReason(value) {
	case ReportReasonSpam, ReportReasonFake, ReportReasonHarassment, ReportReasonInappropriate, ReportReasonOther:
		return ReportReason(value), nil
	default:
		return "", fmt.Errorf("unknown report reason %q", input)
	}
}
