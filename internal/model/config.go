package model

import "time"

// Config is the full runtime configuration, assembled from defaults, the
// optional config file, environment variables (including .env) and flags.
type Config struct {
	Search  SearchConfig  `yaml:"search" json:"search"`
	Locator LocatorConfig `yaml:"locator" json:"locator"`
	Filter  FilterConfig  `yaml:"filter" json:"filter"`
	Cache   CacheConfig   `yaml:"cache" json:"cache"`
	Carrier CarrierConfig `yaml:"carrier" json:"carrier"`
	Output  OutputConfig  `yaml:"output" json:"output"`

	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
}

// SearchConfig describes what to look for and how the bill is laid out.
type SearchConfig struct {
	Number            string `yaml:"number" json:"number"`                           // Target subscriber number, normalized digit form
	Key               string `yaml:"key" json:"key"`                                 // Section key token demarcating a record block, e.g. "Date Time Number"
	MaxPages          int    `yaml:"max_pages" json:"max_pages"`                     // Upper bound on pages to extract and scan
	SectionHeaderRows int    `yaml:"section_header_rows" json:"section_header_rows"` // Lines of header preceding the key token in each section
}

// LocatorConfig bounds the boundary refinement loop.
type LocatorConfig struct {
	MaxIterations int `yaml:"max_iterations" json:"max_iterations"` // Hard ceiling before localization fails loudly
}

// FilterConfig controls which extracted records survive to the CSV.
type FilterConfig struct {
	MaxMinutes int      `yaml:"max_minutes" json:"max_minutes"` // Keep calls of at most this many minutes (spam signature)
	Whitelist  []string `yaml:"whitelist" json:"whitelist"`     // Numbers never reported as spam
}

// CacheConfig controls page text and key index caching.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"` // Disk layer location for extracted page text
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// CarrierConfig configures the optional carrier lookup integration.
type CarrierConfig struct {
	Enabled           bool          `yaml:"enabled" json:"enabled"`
	BaseURL           string        `yaml:"base_url" json:"base_url"`
	APIKey            string        `yaml:"-" json:"-"` // From NUMVERIFY_API_KEY, never persisted
	Timeout           time.Duration `yaml:"timeout" json:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int           `yaml:"burst" json:"burst"`
	MaxRetries        int           `yaml:"max_retries" json:"max_retries"`
	BackoffBase       time.Duration `yaml:"backoff_base" json:"backoff_base"`
	BackoffFactor     int           `yaml:"backoff_factor" json:"backoff_factor"`
	MaxFailedNumbers  int           `yaml:"max_failed_numbers" json:"max_failed_numbers"`
	HTTPProxy         string        `yaml:"http_proxy,omitempty" json:"http_proxy,omitempty"`
	HTTPSProxy        string        `yaml:"https_proxy,omitempty" json:"https_proxy,omitempty"`
	NoProxy           string        `yaml:"no_proxy,omitempty" json:"no_proxy,omitempty"`
}

// OutputConfig controls where results land.
type OutputConfig struct {
	Dir        string `yaml:"dir" json:"dir"`                 // Directory for CSV files
	ReportJSON string `yaml:"report_json" json:"report_json"` // Optional diagnostics report path
	ReportYAML string `yaml:"report_yaml" json:"report_yaml"`
	Verbose    bool   `yaml:"verbose" json:"verbose"`
}

// ConcurrencyConfig controls batch processing.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" json:"workers"`
}

// DefaultConfig returns the built-in defaults. Values mirror the bill
// layouts the tool was written against: one-minute calls are the spam
// signature, sections carry a five line header, and a statement never
// runs past 100 pages.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Key:               "Date Time Number",
			MaxPages:          100,
			SectionHeaderRows: 5,
		},
		Locator: LocatorConfig{
			MaxIterations: 500,
		},
		Filter: FilterConfig{
			MaxMinutes: 1,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".billsift-cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Carrier: CarrierConfig{
			BaseURL:           "http://apilayer.net/api/validate",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 1,
			Burst:             1,
			MaxRetries:        5,
			BackoffBase:       time.Second,
			BackoffFactor:     2,
			MaxFailedNumbers:  3,
		},
		Output: OutputConfig{
			Dir: "output",
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
	}
}
