package config

const (
	// DefaultConfigFile is read from the working directory when present
	DefaultConfigFile = "batchtest.yaml"
	// DefaultEnvFile is loaded into the environment when present
	DefaultEnvFile = ".env"
	// DefaultResultsFile is the default results file name
	DefaultResultsFile = "test-results.json"
	// DefaultResultsDir is the default results directory
	DefaultResultsDir = "storage"
	// DefaultLogFormat is the default log output format
	DefaultLogFormat = LogFormatText
	// DefaultCollectGarbage forces a collection before every test body
	DefaultCollectGarbage = true
)

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

const (
	EnvIgnoredPrefixes = "BATCHTEST_IGNORED_PREFIXES"
	EnvResultsDir      = "BATCHTEST_RESULTS_DIR"
	EnvLogFormat       = "BATCHTEST_LOG_FORMAT"
)

// DefaultIgnoredModulePrefixes are module name prefixes never scanned for tests:
// the Go runtime and well-known framework modules, and the harness itself.
var DefaultIgnoredModulePrefixes = []string{
	"runtime",
	"internal/",
	"golang.org/x/",
	"google.golang.org/",
	"github.com/stretchr/testify",
	"github.com/google/go-cmp",
	"batchtest/pkg/",
}
