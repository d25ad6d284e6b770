package types

// Default archive locations used when neither a flag, an environment
// variable nor a config file overrides them.
const (
	DefaultDatabasePath = "/Applications/Fine Cooking Archive/Data-FC/DB/FC.db"
	DefaultIssuesDir    = "/Applications/Fine Cooking Archive/Data-FC/Issues/"
)

// OutputFormat selects how query results are written.
type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
)

// ArchiveConfig holds the resolved settings for one invocation.
type ArchiveConfig struct {
	// DatabasePath is the SQLite file holding pages, issues and articles.
	DatabasePath string `json:"database_path" yaml:"database_path"`

	// IssuesDir is the directory holding the issue PDFs. It is recorded
	// but never read.
	IssuesDir string `json:"issues_dir" yaml:"issues_dir"`

	// Format selects table, json or yaml output (default table).
	Format OutputFormat `json:"format" yaml:"format"`

	// StrictExit makes a recovered query failure exit non-zero.
	StrictExit bool `json:"strict_exit" yaml:"strict_exit"`

	// Verbose enables debug logging.
	Verbose bool `json:"verbose" yaml:"verbose"`
}
