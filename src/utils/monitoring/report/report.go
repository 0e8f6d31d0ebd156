package report

type Report struct {
	Run      *RunReport      `json:"run,omitempty"`
	Analyzer *AnalyzerReport `json:"analyzer,omitempty"`
}
