package scoring

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/hykwon-dot/lira-intel/internal/types"
)

// Weights and bounds for candidate matching. Fixed constants: the observable
// contract is reproducing these exact values.
const (
	keywordPointsPerMatch = 8.0
	keywordScoreCap       = 60.0
	ratingMultiplier      = 8.0
	successMultiplier     = 0.45
	experienceYearsCap    = 30.0
	experienceMultiplier  = 2.2

	rawScoreMin   = 20.0
	rawScoreMax   = 100.0
	finalScoreMin = 25.0
	finalScoreMax = 100.0

	probabilityRatingWeight     = 0.32
	probabilitySuccessWeight    = 0.28
	probabilityExperienceWeight = 0.22
	probabilityKeywordWeight    = 0.18
	probabilityMin              = 0.35
	probabilityMax              = 0.96

	confidenceBase     = 0.45
	confidenceSpan     = 0.45
	confidenceMin      = 0.55
	confidenceMax      = 0.95
	maxMatchResults    = 5
	maxKeywordsInNotes = 3
)

// signalSynonyms adds matching tokens per detected signal id, so a detected
// risk widens the keyword net toward the specialties that address it.
var signalSynonyms = map[string][]string{
	"violence-threat":        {"신변보호", "protection", "escort"},
	"legal-deadline":         {"소송", "법률", "litigation"},
	"stalking-surveillance":  {"스토킹", "counter-surveillance", "보안"},
	"personal-data-exposure": {"개인정보", "privacy", "유출"},
	"financial-fraud":        {"사기", "fraud", "자산추적"},
	"missing-person":         {"실종", "missing", "소재파악"},
	"infidelity-dispute":     {"외도", "불륜", "가사"},
	"workplace-harassment":   {"직장", "노무", "harassment"},
	"evidence-tampering":     {"증거", "forensics", "포렌식"},
}

// riskWeight scales scores by the overall case risk level
func riskWeight(level types.RiskLevel) float64 {
	switch level {
	case types.RiskHigh:
		return 1.15
	case types.RiskMedium:
		return 1.05
	default:
		return 0.95
	}
}

// MatchCandidates scores every candidate against the case context, keeps the
// top five by raw score, and applies the rank bonus (+6, +4, +2, then +0)
// which rewards the head of the list without reordering it.
func MatchCandidates(candidates []types.CandidateProfile, caseCtx types.CaseContext) []types.MatchResult {
	tokens := caseTokens(caseCtx)
	weight := riskWeight(caseCtx.OverallRisk)

	results := make([]types.MatchResult, 0, len(candidates))
	for _, candidate := range candidates {
		results = append(results, scoreCandidate(candidate, tokens, weight))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	if len(results) > maxMatchResults {
		results = results[:maxMatchResults]
	}

	for rank := range results {
		bonus := 6.0 - 2.0*float64(rank)
		if bonus < 0 {
			bonus = 0
		}
		results[rank].RankBonus = bonus
		results[rank].MatchScore = clampFloat(results[rank].MatchScore+bonus, finalScoreMin, finalScoreMax)
	}
	return results
}

// scoreCandidate computes one candidate's raw score, success probability,
// confidence, and alignment factors
func scoreCandidate(candidate types.CandidateProfile, tokens []string, weight float64) types.MatchResult {
	corpus := candidateCorpus(candidate)
	matched := matchedTokens(corpus, tokens)

	keywordScore := clampFloat(float64(len(matched))*keywordPointsPerMatch, 0, keywordScoreCap)
	ratingScore := candidate.RatingAverage * ratingMultiplier
	successScore := candidate.SuccessRate * successMultiplier
	experienceScore := clampFloat(candidate.ExperienceYears, 0, experienceYearsCap) * experienceMultiplier

	raw := (keywordScore + ratingScore + successScore + experienceScore) * weight
	raw = clampFloat(raw, rawScoreMin, rawScoreMax)

	probability := probabilityRatingWeight*(candidate.RatingAverage/5.0) +
		probabilitySuccessWeight*(candidate.SuccessRate/100.0) +
		probabilityExperienceWeight*(clampFloat(candidate.ExperienceYears, 0, experienceYearsCap)/experienceYearsCap) +
		probabilityKeywordWeight*(keywordScore/keywordScoreCap)
	probability = clampFloat(probability*weight, probabilityMin, probabilityMax)

	present := 0
	if candidate.RatingAverage > 0 {
		present++
	}
	if candidate.SuccessRate > 0 {
		present++
	}
	if len(candidate.Specialties) > 0 {
		present++
	}
	if candidate.ExperienceYears > 0 {
		present++
	}
	confidence := clampFloat(confidenceBase+confidenceSpan*(float64(present)/4.0), confidenceMin, confidenceMax)

	return types.MatchResult{
		CandidateID:        candidate.ID,
		MatchScore:         raw,
		SuccessProbability: probability,
		Confidence:         confidence,
		AlignmentFactors:   alignmentFactors(candidate, matched),
	}
}

// caseTokens builds the normalized, de-duplicated token set describing the
// case: summary fields, caller keywords, and detected signal titles plus
// their synonym expansions.
func caseTokens(caseCtx types.CaseContext) []string {
	var parts []string
	if s := caseCtx.Summary; s != nil {
		parts = append(parts, s.Title, s.CaseType, s.PrimaryIntent, s.Objective, s.Urgency)
		parts = append(parts, s.KeyFacts...)
		parts = append(parts, s.RecommendedDocuments...)
	}
	parts = append(parts, caseCtx.Keywords...)
	for _, sig := range caseCtx.Signals {
		parts = append(parts, sig.Title)
		parts = append(parts, signalSynonyms[sig.ID]...)
	}

	seen := make(map[string]bool)
	var tokens []string
	for _, part := range parts {
		for _, token := range tokenize(part) {
			if !seen[token] {
				seen[token] = true
				tokens = append(tokens, token)
			}
		}
	}
	return tokens
}

// tokenize lowercases and splits on anything that is not a letter or digit,
// dropping single-rune fragments
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func candidateCorpus(candidate types.CandidateProfile) string {
	parts := append([]string{candidate.ServiceArea, candidate.Name}, candidate.Specialties...)
	return strings.ToLower(strings.Join(parts, " "))
}

func matchedTokens(corpus string, tokens []string) []string {
	var matched []string
	for _, token := range tokens {
		if strings.Contains(corpus, token) {
			matched = append(matched, token)
		}
	}
	return matched
}

// alignmentFactors names the evidence behind a score. At least one factor is
// produced whenever any numeric signal is present.
func alignmentFactors(candidate types.CandidateProfile, matched []string) []string {
	var factors []string

	if len(matched) > 0 {
		shown := matched
		if len(shown) > maxKeywordsInNotes {
			shown = shown[:maxKeywordsInNotes]
		}
		factors = append(factors, fmt.Sprintf("Matches case keywords: %s", strings.Join(shown, ", ")))
	}
	if candidate.RatingAverage > 0 {
		factors = append(factors, fmt.Sprintf("Client rating %.1f/5", candidate.RatingAverage))
	}
	if candidate.SuccessRate > 0 {
		factors = append(factors, fmt.Sprintf("Success rate %.0f%%", candidate.SuccessRate))
	}
	if candidate.ExperienceYears > 0 {
		factors = append(factors, fmt.Sprintf("%.0f years of field experience", candidate.ExperienceYears))
	}
	if candidate.ServiceArea != "" {
		factors = append(factors, fmt.Sprintf("Serves the %s area", candidate.ServiceArea))
	}
	return factors
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
