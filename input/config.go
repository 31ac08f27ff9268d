package input

import (
	"encoding/json"
	"fmt"
	"os"

	impl "github.com/SchnorcherSepp/fileinput/defaultimpl"
)

// Backend types
const (
	BackendOS     = "os"     // native file system (default)
	BackendRAM    = "ram"    // in-memory file system with the demo files
	BackendGDrive = "gdrive" // Google Drive
)

// Config is the configuration of one transaction.
// It is loaded once and passed to every component. Use Defaults() as base.
type Config struct {
	// Path is the glob of the target files or directories (required).
	Path string `json:"path"`

	// Partition enables the splitting of files into several tasks.
	Partition bool `json:"partition"`

	// NumPartitions is the approximate number of tasks. -1 means the number of logical CPUs.
	NumPartitions int `json:"num_partitions"`

	// NonSplittable lists additional file extensions that are always read as a whole.
	// .gz, .bz2 and .lzo are never split.
	NonSplittable []string `json:"non_splittable"`

	// DebugLvl (@see impl.DebugOff, impl.DebugLow and impl.DebugHigh)
	DebugLvl uint8 `json:"debug_lvl"`

	// TaskFile stores the plan of a transaction (optional).
	TaskFile string `json:"task_file"`

	Backend Backend `json:"backend"`
	Queue   Queue   `json:"queue"`

	// CacheSizeMB is the size of the sector cache for random read access (see impl.NewCache).
	CacheSizeMB int `json:"cache_size_mb"`
}

// Backend selects the file system.
type Backend struct {
	Type string `json:"type"` // os, ram or gdrive

	// Root is the Google Drive folder id of the path '/'. Empty means the drive root.
	Root string `json:"root"`

	// ClientCredFile and TokenFile are the OAuth files of Google Drive.
	// A ServiceAccountFile is used instead if set.
	ClientCredFile     string `json:"client_cred_file"`
	TokenFile          string `json:"token_file"`
	ServiceAccountFile string `json:"service_account_file"`
}

// Queue is the AMQP work queue for the tasks (optional).
type Queue struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Defaults returns the default configuration without a path.
func Defaults() Config {
	return Config{
		Partition:     true,
		NumPartitions: -1,
		DebugLvl:      impl.DebugOff,
		Backend: Backend{
			Type:           BackendOS,
			ClientCredFile: "client_secret.json",
			TokenFile:      "token.json",
		},
		Queue: Queue{
			Name: "fileinput.tasks",
		},
		CacheSizeMB: 50,
	}
}

// LoadConfig reads a JSON config file over Defaults(). Unknown fields are an error.
func LoadConfig(file string) (Config, error) {
	cfg := Defaults()

	fh, err := os.Open(file)
	if err != nil {
		return cfg, fmt.Errorf("input/LoadConfig: %v", err)
	}
	defer fh.Close()

	dec := json.NewDecoder(fh)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("input/LoadConfig: %s: %v", file, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the required values.
func (c Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("input: missing path")
	}
	switch c.Backend.Type {
	case BackendOS, BackendRAM, BackendGDrive:
	default:
		return fmt.Errorf("input: unknown backend type '%s'", c.Backend.Type)
	}
	return nil
}

// planOptions converts the config for impl.Plan().
func (c Config) planOptions() impl.PlanOptions {
	return impl.PlanOptions{
		NumPartitions: c.NumPartitions,
		Split:         c.Partition,
		NonSplittable: c.NonSplittable,
		DebugLvl:      c.DebugLvl,
	}
}
