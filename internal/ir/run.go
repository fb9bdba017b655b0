package ir

// RunOptions records how a decomposition was configured.
type RunOptions struct {
	Simplify      string `json:"simplify" yaml:"simplify"`
	RandomT       bool   `json:"random_t" yaml:"random_t"`
	Seed          int64  `json:"seed" yaml:"seed"`
	ParallelDepth int    `json:"parallel_depth" yaml:"parallel_depth"`
	Workers       int    `json:"workers" yaml:"workers"`
	Save          bool   `json:"save" yaml:"save"`
	MaxComponent  int    `json:"max_component" yaml:"max_component"`
	MaxSteps      int    `json:"max_steps" yaml:"max_steps"`
}

// IRValue converts the options to canonical form.
func (o RunOptions) IRValue() IRObject {
	return IRObject{
		"simplify":       IRString(o.Simplify),
		"random_t":       IRBool(o.RandomT),
		"seed":           IRInt(o.Seed),
		"parallel_depth": IRInt(o.ParallelDepth),
		"workers":        IRInt(o.Workers),
		"save":           IRBool(o.Save),
		"max_component":  IRInt(o.MaxComponent),
		"max_steps":      IRInt(o.MaxSteps),
	}
}

// RunRecord is one archived decomposition.
//
// MaxTerms is a decimal string: the bound grows as 7^(t/6) and overflows
// int64 for large T-counts.
type RunRecord struct {
	ID          string     `json:"id"`
	Seq         int64      `json:"seq"`
	Label       string     `json:"label,omitempty"`
	DiagramHash string     `json:"diagram_hash"`
	Input       DiagramDoc `json:"input"`
	TCount      int        `json:"t_count"`
	MaxTerms    string     `json:"max_terms"`
	Terms       int        `json:"terms"`
	Incomplete  int        `json:"incomplete"`
	Scalar      ScalarDoc  `json:"scalar"`
	Options     RunOptions `json:"options"`
}

// TermRecord is one saved terminal diagram of a run.
type TermRecord struct {
	RunID       string     `json:"run_id"`
	Seq         int64      `json:"seq"`
	DiagramHash string     `json:"diagram_hash"`
	Diagram     DiagramDoc `json:"diagram"`
}

// Summary is the deterministic part of a run: everything except the
// generated id, sequence, label and the input document, which DiagramHash
// already identifies. Golden snapshots and result hashes use it.
func (r RunRecord) Summary() IRObject {
	return IRObject{
		"diagram_hash": IRString(r.DiagramHash),
		"t_count":      IRInt(r.TCount),
		"max_terms":    IRString(r.MaxTerms),
		"terms":        IRInt(r.Terms),
		"incomplete":   IRInt(r.Incomplete),
		"scalar":       r.Scalar.IRValue(),
		"options":      r.Options.IRValue(),
	}
}
