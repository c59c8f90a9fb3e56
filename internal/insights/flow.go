package insights

import "github.com/hykwon-dot/lira-intel/internal/types"

// flowTemplate is the baseline phase plan for one case type
type flowTemplate struct {
	phases        []types.FlowPhase
	resourceNotes []string
	checkpoints   []string
}

var flowTemplates = map[string]flowTemplate{
	"tail": {
		phases: []types.FlowPhase{
			{Name: "사전 답사", DurationDays: 1, Description: "대상 동선과 주요 지점을 확인합니다."},
			{Name: "현장 조사", DurationDays: 5, Description: "교대 인력으로 대상 이동을 기록합니다."},
			{Name: "보고서 작성", DurationDays: 1, Description: "시간대별 기록과 사진을 정리합니다."},
		},
		resourceNotes: []string{"2인 1조 권장", "차량 1대 이상"},
		checkpoints:   []string{"2일차 중간 보고", "종료 시 전체 기록 검수"},
	},
	"background": {
		phases: []types.FlowPhase{
			{Name: "공개 정보 조회", DurationDays: 2, Description: "공부상 기록과 공개 자료를 수집합니다."},
			{Name: "현장 확인", DurationDays: 3, Description: "거주지와 근무지를 현장에서 확인합니다."},
			{Name: "검증 및 보고", DurationDays: 2, Description: "수집 정보를 교차 검증합니다."},
		},
		resourceNotes: []string{"지역별 협력 조사원 필요 여부 확인"},
		checkpoints:   []string{"공개 정보 조회 완료 시 범위 재협의"},
	},
	"corporate": {
		phases: []types.FlowPhase{
			{Name: "자료 분석", DurationDays: 3, Description: "내부 자료와 거래 기록을 분석합니다."},
			{Name: "관계자 조사", DurationDays: 5, Description: "관련 인물 동향과 접촉 관계를 조사합니다."},
			{Name: "종합 보고", DurationDays: 2, Description: "법적 대응 가능한 형태로 결과를 정리합니다."},
		},
		resourceNotes: []string{"문서 접근 권한 범위 사전 확정", "법률 자문 연계 검토"},
		checkpoints:   []string{"주 단위 진행 보고"},
	},
	"missing-person": {
		phases: []types.FlowPhase{
			{Name: "초동 확인", DurationDays: 1, Description: "최종 목격 지점과 연락 기록을 확인합니다."},
			{Name: "탐문 수색", DurationDays: 4, Description: "주변 탐문과 이동 경로 추적을 진행합니다."},
			{Name: "결과 정리", DurationDays: 1, Description: "확인된 소재 정보를 정리해 전달합니다."},
		},
		resourceNotes: []string{"경찰 실종 신고 병행 필수"},
		checkpoints:   []string{"매일 진행 상황 공유"},
	},
}

var defaultFlow = flowTemplate{
	phases: []types.FlowPhase{
		{Name: "사건 검토", DurationDays: 2, Description: "의뢰 내용과 자료를 검토하고 조사 계획을 세웁니다."},
		{Name: "조사 수행", DurationDays: 5, Description: "계획에 따라 현장 및 자료 조사를 진행합니다."},
		{Name: "결과 보고", DurationDays: 1, Description: "조사 결과를 보고서로 정리합니다."},
	},
	checkpoints: []string{"조사 착수 전 범위 확정"},
}

// simulateFlow projects the case schedule from its type, urgency, and risk.
// Urgent cases compress the longest phase by one day; high risk appends a
// dedicated risk note rather than changing the schedule.
func simulateFlow(caseType, urgency string, overall types.RiskLevel) types.FlowSimulation {
	tmpl, ok := flowTemplates[caseType]
	if !ok {
		tmpl = defaultFlow
	}

	phases := make([]types.FlowPhase, len(tmpl.phases))
	copy(phases, tmpl.phases)

	if urgency == "high" || urgency == "urgent" {
		longest := 0
		for i, p := range phases {
			if p.DurationDays > phases[longest].DurationDays {
				longest = i
			}
		}
		if phases[longest].DurationDays > 1 {
			phases[longest].DurationDays--
		}
	}

	total := 0
	for _, p := range phases {
		total += p.DurationDays
	}

	sim := types.FlowSimulation{
		TotalDurationDays: total,
		Phases:            phases,
		ResourceNotes:     append([]string(nil), tmpl.resourceNotes...),
		Checkpoints:       append([]string(nil), tmpl.checkpoints...),
	}
	if overall == types.RiskHigh {
		sim.RiskNotes = append(sim.RiskNotes, "고위험 신호가 감지되어 단계별 안전 점검이 필요합니다.")
	}
	return sim
}
