package types

// Backend identifies the markup conversion backend for a chapter file.
type Backend string

const (
	// BackendAuto selects a backend from the file extension.
	BackendAuto Backend = "auto"
	// BackendPod renders Pod chapters through an external Pod renderer.
	BackendPod Backend = "pod"
	// BackendMarkdown renders Markdown chapters natively.
	BackendMarkdown Backend = "markdown"
)

// ConvertConfig holds the fixed options passed to every conversion backend.
type ConvertConfig struct {
	// Backend selects the conversion backend: auto, pod, or markdown.
	Backend Backend `json:"backend" yaml:"backend"`

	// AcceptTargets lists alternate-output target names (e.g. "latex")
	// whose content is rendered as plain text instead of being suppressed.
	AcceptTargets []string `json:"accept_targets" yaml:"accept_targets"`

	// VerbatimLiteral keeps code and verbatim regions literal instead of
	// re-parsing them for nested markup.
	VerbatimLiteral bool `json:"verbatim_literal" yaml:"verbatim_literal"`
}

// DefaultConvertConfig returns the options the book build has always used:
// latex target blocks pass through, verbatim content stays literal.
func DefaultConvertConfig() ConvertConfig {
	return ConvertConfig{
		Backend:         BackendAuto,
		AcceptTargets:   []string{"latex"},
		VerbatimLiteral: true,
	}
}

// BuildConfig holds settings for manifest-driven book builds.
type BuildConfig struct {
	// BookDir is the manuscript root containing book.yaml and chapter files.
	BookDir string `json:"book_dir" yaml:"book_dir"`

	// OutputPath is the destination for the assembled LaTeX document.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// TrackerDir is the directory holding the build-state index database.
	TrackerDir string `json:"tracker_dir" yaml:"tracker_dir"`
}
