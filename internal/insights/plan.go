package insights

import (
	"github.com/hykwon-dot/lira-intel/internal/types"
)

// buildActionPlan turns the detected signals and overall risk into an ordered
// plan. High severity signals become high priority items; the plan always
// carries at least a baseline intake step so the response is never empty.
func buildActionPlan(signals []types.Signal, overall types.RiskLevel, summary *types.CaseSummary) types.ActionPlan {
	plan := types.ActionPlan{
		Focus:           planFocus(overall, summary),
		SuccessCriteria: planSuccessCriteria(overall),
	}

	for _, sig := range signals {
		item := types.ActionItem{
			Title:    sig.Title + " 대응",
			Detail:   sig.Guidance,
			Priority: sig.Severity,
		}
		plan.Items = append(plan.Items, item)
	}

	if len(plan.Items) == 0 {
		plan.Items = append(plan.Items, types.ActionItem{
			Title:    "기초 사실관계 정리",
			Detail:   "사건 경위, 관련 인물, 보유 자료를 시간 순으로 정리합니다.",
			Priority: types.SeverityLow,
		})
	}

	if overall == types.RiskHigh {
		plan.Notes = "고위험 사안입니다. 전문가 상담 전에 안전 확보를 우선하세요."
	}
	return plan
}

func planFocus(overall types.RiskLevel, summary *types.CaseSummary) string {
	if summary != nil && summary.Objective != "" {
		return summary.Objective
	}
	switch overall {
	case types.RiskHigh:
		return "긴급 위험 요소 해소와 안전 확보"
	case types.RiskMedium:
		return "핵심 쟁점 확인과 증거 확보"
	default:
		return "사건 정보 보완과 의뢰 범위 구체화"
	}
}

func planSuccessCriteria(overall types.RiskLevel) []string {
	criteria := []string{
		"사건 경위와 핵심 사실이 문서로 정리됨",
		"필요한 증거 목록이 확정됨",
	}
	if overall != types.RiskLow {
		criteria = append(criteria, "위험 요소별 대응 방안이 마련됨")
	}
	return criteria
}
