package domain

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatDOT  OutputFormat = "dot"
)

// BoolPtr returns a pointer to the given bool value
func BoolPtr(b bool) *bool {
	return &b
}

// SourceLocation identifies a position in a source file
type SourceLocation struct {
	// FilePath is the file containing the location
	FilePath string `json:"file_path,omitempty"`

	// Line is the 1-based line number
	Line int `json:"line,omitempty"`
}
