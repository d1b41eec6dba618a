package pipeline

// ProgressFunc is an optional synchronous callback invoked at phase
// boundaries with a human-readable phase name and detail string.
// Invocations are serialized even while documents parse concurrently, so
// the callback does not need its own locking. A nil callback changes
// nothing about behavior or timing.
type ProgressFunc func(phase, detail string)

// Phase names reported through ProgressFunc.
const (
	PhaseExtraction     = "extraction"
	PhaseClassification = "classification"
	PhaseSchema         = "schema-detection"
	PhaseSegmentation   = "segmentation"
	PhaseParsing        = "parsing"
	PhaseMerging        = "merging"
	PhaseValidation     = "validation"
)

func (p *Processor) report(phase, detail string) {
	if p.Progress == nil {
		return
	}
	p.progressMu.Lock()
	defer p.progressMu.Unlock()
	p.Progress(phase, detail)
}
