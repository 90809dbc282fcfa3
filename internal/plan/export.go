package plan

import (
	"gopkg.in/yaml.v3"

	"signature-resolver/internal/typemodel"
)

// Call resolution statuses used in exports.
const (
	StatusResolved   = "resolved"
	StatusAmbiguous  = "ambiguous"
	StatusUnresolved = "unresolved"
)

// PlanDoc is the YAML form of a ResolvedPlan.
type PlanDoc struct {
	Version     string          `yaml:"version"`
	Declaration string          `yaml:"declaration"`
	BuildOrder  []string        `yaml:"build_order,omitempty"`
	Implement   []string        `yaml:"implement,omitempty"`
	Pool        []CandidateDoc  `yaml:"pool"`
	Calls       []CallDoc       `yaml:"calls,omitempty"`
	Diagnostics []DiagnosticDoc `yaml:"diagnostics,omitempty"`
}

// CandidateDoc describes one pool entry.
type CandidateDoc struct {
	ID      string   `yaml:"id"`
	Role    string   `yaml:"role"`
	Origin  string   `yaml:"origin,omitempty"`
	Params  []string `yaml:"params,flow"`
	Returns string   `yaml:"returns"`
	Throws  []string `yaml:"throws,omitempty,flow"`
}

// CallDoc describes the resolution of one call.
type CallDoc struct {
	Name    string     `yaml:"name"`
	Sources []string   `yaml:"sources,flow"`
	Target  string     `yaml:"target"`
	Status  string     `yaml:"status"`
	Matches []MatchDoc `yaml:"matches,omitempty"`
}

// MatchDoc describes one accepted candidate.
type MatchDoc struct {
	Candidate string `yaml:"candidate"`
	Bindings  string `yaml:"bindings,omitempty"`
	Distance  *int   `yaml:"distance,omitempty"`
	Selected  bool   `yaml:"selected"`
}

// DiagnosticDoc is a flattened diagnostic.
type DiagnosticDoc struct {
	Severity string `yaml:"severity"`
	Code     string `yaml:"code"`
	Location string `yaml:"location,omitempty"`
	Message  string `yaml:"message"`
}

// ExportPlan converts a resolved plan into its document form.
func ExportPlan(a *typemodel.Arena, p *ResolvedPlan) *PlanDoc {
	doc := &PlanDoc{Version: "1", Pool: []CandidateDoc{}}

	ret := p.Retrieval
	if ret == nil {
		return doc
	}

	doc.Declaration = ret.Top.QualifiedName()

	for _, d := range ret.BuildOrder {
		doc.BuildOrder = append(doc.BuildOrder, d.QualifiedName())
	}

	for _, m := range ret.ToImplement {
		doc.Implement = append(doc.Implement, m.Signature(a))
	}

	for _, c := range ret.Pool.Candidates() {
		doc.Pool = append(doc.Pool, exportCandidate(a, c))
	}

	for i := range p.Resolutions {
		doc.Calls = append(doc.Calls, exportResolution(a, &p.Resolutions[i]))
	}

	for _, d := range ret.Diagnostics.All() {
		doc.Diagnostics = append(doc.Diagnostics, DiagnosticDoc{
			Severity: d.Severity.String(),
			Code:     d.Code,
			Location: d.Location.String(),
			Message:  d.Message,
		})
	}

	return doc
}

// ExportPlanYAML renders a resolved plan as YAML.
func ExportPlanYAML(a *typemodel.Arena, p *ResolvedPlan) ([]byte, error) {
	return yaml.Marshal(ExportPlan(a, p))
}

func exportCandidate(a *typemodel.Arena, c *Candidate) CandidateDoc {
	doc := CandidateDoc{
		ID:      c.Key(),
		Role:    c.Role.String(),
		Params:  typeStrings(a, c.Signature.Params),
		Returns: a.String(c.Signature.Return),
		Throws:  typeStrings(a, c.Method.Throws),
	}

	if c.Origin != nil {
		doc.Origin = c.Origin.QualifiedName()
	}

	return doc
}

func exportResolution(a *typemodel.Arena, r *Resolution) CallDoc {
	doc := CallDoc{
		Name:    r.Call.Name,
		Sources: typeStrings(a, r.Call.Shape.Sources),
		Target:  a.String(r.Call.Shape.Target),
		Status:  resolutionStatus(r),
	}

	selected := make(map[*Candidate]bool, len(r.Selected))
	for _, m := range r.Selected {
		selected[m.Candidate] = true
	}

	// distances are only known on the selector's copies
	distances := make(map[*Candidate]int, len(r.Selected))
	for _, m := range r.Selected {
		distances[m.Candidate] = m.Distance
	}

	for _, m := range r.Matches {
		md := MatchDoc{
			Candidate: m.Candidate.Key(),
			Bindings:  m.Bindings.String(a),
			Selected:  selected[m.Candidate],
		}

		if d, ok := distances[m.Candidate]; ok && d >= 0 {
			md.Distance = &d
		}

		doc.Matches = append(doc.Matches, md)
	}

	return doc
}

func resolutionStatus(r *Resolution) string {
	switch {
	case r.Resolved():
		return StatusResolved
	case r.Ambiguous():
		return StatusAmbiguous
	default:
		return StatusUnresolved
	}
}

func typeStrings(a *typemodel.Arena, ids []typemodel.TypeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = a.String(id)
	}

	return out
}
