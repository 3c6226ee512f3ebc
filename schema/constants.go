package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// AnalysisSlug identifies one of the supported analyses.
	AnalysisSlug string

	// StoreBackend represents the database backend for report export.
	StoreBackend string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All analyses supported.
const (
	LineBlameAnalysis AnalysisSlug = "line_blame"
	BreakdownAnalysis AnalysisSlug = "breakdown"
)

// All store backends supported.
const (
	SQLiteBackend     StoreBackend = "sqlite" // default
	MySQLBackend      StoreBackend = "mysql"
	PostgreSQLBackend StoreBackend = "postgresql"
	NoneBackend       StoreBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid store backends.
var ValidStoreBackends = map[StoreBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// Canonical attribute names for blame records.
const (
	AttrFileName    = "file_name"
	AttrFileType    = "file_type"
	AttrFilePath    = "file_path"
	AttrCommit      = "commit"
	AttrContributor = "contributor"
	AttrLineNo      = "line_no"
	AttrDateTime    = "datetime"
	AttrDate        = "date"
	AttrCode        = "code"
)

// AllAttributeNames lists every attribute resolvable on a blame record, in
// canonical declaration order.
var AllAttributeNames = []string{
	AttrFileName,
	AttrFileType,
	AttrFilePath,
	AttrCommit,
	AttrContributor,
	AttrLineNo,
	AttrDateTime,
	AttrDate,
	AttrCode,
}

// DefaultLineColumns is the default column subset for the line_blame analysis.
var DefaultLineColumns = []string{
	AttrCommit,
	AttrContributor,
	AttrLineNo,
	AttrDateTime,
	AttrCode,
}

// Time representations used across output and parsing.
const (
	DateTimeFormat = "2006-01-02 15:04:05"
	DateFormat     = "2006-01-02"
)

// Built-in exclusion defaults, merged once with user overrides when the
// configuration is processed.
var (
	DefaultIgnoreDirectories = []string{".git"}
	DefaultIgnoreFileTypes   = []string{".png", ".jpeg", ".jpg", ".gif", ".svg"}
)
