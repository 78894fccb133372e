package domain

// Stage names the point at which a verdict became terminal.
type Stage string

const (
	StagePreValidation  Stage = "pre_validation"
	StagePostValidation Stage = "post_validation"
)

// Findings is what a single checker contributes to a verdict.
type Findings struct {
	Reasons                []string
	ClaimsNeedingCitations []string
}

// Empty reports whether the checker found nothing.
func (f Findings) Empty() bool {
	return len(f.Reasons) == 0 && len(f.ClaimsNeedingCitations) == 0
}

// GateVerdict accumulates findings from the generation backend and the local checkers.
//
// Merge rule: findings are only ever appended, in detection order, and Finalize
// OR-reduces Blocked with the presence of any reason or claim.
type GateVerdict struct {
	Blocked                bool     `json:"blocked"`
	Reasons                []string `json:"reasons"`
	ClaimsNeedingCitations []string `json:"claimsNeedingCitations"`
}

// NewVerdict starts an empty, unblocked verdict.
func NewVerdict() GateVerdict {
	return GateVerdict{Reasons: []string{}, ClaimsNeedingCitations: []string{}}
}

// Merge appends findings without touching entries already present.
func (v *GateVerdict) Merge(f Findings) {
	v.Reasons = append(v.Reasons, f.Reasons...)
	v.ClaimsNeedingCitations = append(v.ClaimsNeedingCitations, f.ClaimsNeedingCitations...)
}

// Finalize forces Blocked when anything was recorded and returns the final value.
func (v *GateVerdict) Finalize() bool {
	if v.Reasons == nil {
		v.Reasons = []string{}
	}
	if v.ClaimsNeedingCitations == nil {
		v.ClaimsNeedingCitations = []string{}
	}
	v.Blocked = v.Blocked || len(v.Reasons) > 0 || len(v.ClaimsNeedingCitations) > 0
	return v.Blocked
}

// VerdictRecord is the audit snapshot of one terminal verdict.
type VerdictRecord struct {
	ID             string
	RequestID      string
	Topic          string
	PrimaryKeyword string
	Language       string
	Stage          Stage
	Verdict        GateVerdict
}
