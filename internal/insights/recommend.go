package insights

import (
	"sort"
	"strings"
	"unicode"

	"github.com/hykwon-dot/lira-intel/internal/types"
)

// corpusEntry is one knowledge base article the engine can recommend. Tags
// extend the matchable vocabulary beyond the title and summary text.
type corpusEntry struct {
	ID      string
	Title   string
	Summary string
	Tags    []string
}

// knowledgeCorpus is the built-in guidance library. Ranking is lexical token
// overlap, so each entry carries both Korean and English tags for the terms
// clients actually type.
var knowledgeCorpus = []corpusEntry{
	{
		ID:      "guide-evidence-handling",
		Title:   "증거 수집과 보전 원칙",
		Summary: "합법적 증거 수집 범위와 원본 보전, 타임스탬프 기록 방법을 안내합니다.",
		Tags:    []string{"증거", "수집", "보전", "사진", "녹취", "evidence", "legal-deadline", "evidence-tampering"},
	},
	{
		ID:      "guide-safety-first",
		Title:   "위협 상황 안전 확보 절차",
		Summary: "협박이나 위협이 있을 때 신변 보호와 경찰 신고를 우선하는 대응 절차입니다.",
		Tags:    []string{"협박", "위협", "폭력", "안전", "신고", "경찰", "violence-threat", "safety"},
	},
	{
		ID:      "guide-stalking-response",
		Title:   "스토킹 및 미행 대응 가이드",
		Summary: "미행이나 감시가 의심될 때 이동 경로 기록과 스토킹처벌법상 조치를 정리했습니다.",
		Tags:    []string{"스토킹", "미행", "감시", "추적", "stalking-surveillance"},
	},
	{
		ID:      "guide-legal-deadlines",
		Title:   "법적 기한과 소멸시효 점검",
		Summary: "고소 기간, 소멸시효, 재판 기일 등 놓치면 안 되는 기한을 확인하는 체크리스트입니다.",
		Tags:    []string{"기한", "시효", "고소", "소송", "재판", "legal-deadline", "legal"},
	},
	{
		ID:      "guide-missing-person",
		Title:   "실종자 초동 대응 절차",
		Summary: "실종 신고, 최종 목격 지점 확인, 수색 범위 설정 등 첫 72시간 대응을 다룹니다.",
		Tags:    []string{"실종", "가출", "연락두절", "수색", "missing-person"},
	},
	{
		ID:      "guide-fraud-documentation",
		Title:   "금전 피해 기록 정리법",
		Summary: "사기나 횡령 피해에서 이체 내역, 계약서, 대화 기록을 증거로 정리하는 방법입니다.",
		Tags:    []string{"사기", "횡령", "이체", "계좌", "금전", "투자", "financial-fraud"},
	},
	{
		ID:      "guide-infidelity-process",
		Title:   "외도 조사 진행 안내",
		Summary: "배우자 외도 의심 시 합법적 조사 범위와 이혼 소송 대비 자료 준비를 설명합니다.",
		Tags:    []string{"외도", "불륜", "배우자", "이혼", "상간", "infidelity-dispute"},
	},
	{
		ID:      "guide-workplace-harassment",
		Title:   "직장 내 괴롭힘 대응",
		Summary: "직장 내 괴롭힘과 갑질 사안에서 기록 확보와 신고 절차를 안내합니다.",
		Tags:    []string{"직장", "괴롭힘", "갑질", "상사", "해고", "workplace-harassment"},
	},
	{
		ID:      "guide-privacy-boundaries",
		Title:   "개인정보 취급 주의사항",
		Summary: "의뢰 과정에서 주민등록번호 등 민감정보를 다룰 때의 법적 한계를 정리했습니다.",
		Tags:    []string{"개인정보", "주민등록번호", "위치", "privacy", "personal-data-exposure"},
	},
}

// Recommend ranks the knowledge corpus against the case context by token
// overlap and returns the top n entries with nonzero similarity.
func Recommend(caseCtx types.CaseContext, n int) []types.Recommendation {
	queryTokens := contextTokens(caseCtx)
	if len(queryTokens) == 0 {
		return nil
	}

	recs := make([]types.Recommendation, 0, len(knowledgeCorpus))
	for _, entry := range knowledgeCorpus {
		sim := overlapSimilarity(queryTokens, entryTokens(entry))
		if sim <= 0 {
			continue
		}
		recs = append(recs, types.Recommendation{
			ID:         entry.ID,
			Title:      entry.Title,
			Summary:    entry.Summary,
			Similarity: sim,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Similarity > recs[j].Similarity
	})
	if len(recs) > n {
		recs = recs[:n]
	}
	return recs
}

// contextTokens builds the query vocabulary from signals, keywords, and the
// structured summary
func contextTokens(caseCtx types.CaseContext) map[string]bool {
	tokens := make(map[string]bool)
	for _, sig := range caseCtx.Signals {
		tokens[strings.ToLower(sig.ID)] = true
		addTokens(tokens, sig.Title)
		addTokens(tokens, sig.Evidence)
	}
	for _, kw := range caseCtx.Keywords {
		addTokens(tokens, kw)
	}
	if s := caseCtx.Summary; s != nil {
		addTokens(tokens, s.Title)
		addTokens(tokens, s.CaseType)
		addTokens(tokens, s.PrimaryIntent)
		addTokens(tokens, s.Objective)
		for _, fact := range s.KeyFacts {
			addTokens(tokens, fact)
		}
	}
	return tokens
}

func entryTokens(entry corpusEntry) map[string]bool {
	tokens := make(map[string]bool)
	addTokens(tokens, entry.Title)
	addTokens(tokens, entry.Summary)
	for _, tag := range entry.Tags {
		tokens[strings.ToLower(tag)] = true
		addTokens(tokens, tag)
	}
	return tokens
}

func addTokens(tokens map[string]bool, text string) {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '-'
	})
	for _, f := range fields {
		if len([]rune(f)) < 2 {
			continue
		}
		tokens[f] = true
	}
}

// overlapSimilarity is the fraction of query tokens present in the entry,
// counting Korean substring hits so particles do not defeat exact matching.
func overlapSimilarity(query, entry map[string]bool) float64 {
	if len(query) == 0 {
		return 0
	}
	hits := 0
	for q := range query {
		if entry[q] {
			hits++
			continue
		}
		for e := range entry {
			if len(q) >= 6 && strings.Contains(q, e) && len(e) >= 6 {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(len(query))
}
