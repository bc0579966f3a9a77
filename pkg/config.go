package lfpid

type Configuration struct {
	Verbosity        int               `json:"verbosity"`
	FileIn           string            `json:"file_in"`
	FileOut          string            `json:"file_out"`
	MaxTracks        int               `json:"max_tracks"`
	Skip             int               `json:"skip"`
	BatchSize        int               `json:"batch_size"`
	NumWorkers       int               `json:"num_workers"`
	CompressionLevel int               `json:"compression_level"`
	NoDB             bool              `json:"no_db"`
	Host             string            `json:"host"`
	User             string            `json:"user"`
	Passwd           string            `json:"pass"`
	DBName           string            `json:"dbname"`
	CcdbTimestamp    int64             `json:"ccdb_timestamp"`
	BBParameters     *LabeledArray     `json:"bb_parameters"`
	FileParamBB      map[string]string `json:"file_param_bb"`
	Process          map[string]bool   `json:"process"`
	ProcessFull      map[string]bool   `json:"process_full"`
	RequestedTables  []string          `json:"requested_tables"`
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}

// TinyEnabled reports whether the compact table of s is produced.
func (c Configuration) TinyEnabled(s Species) bool {
	return c.Process[s.ShortName()]
}

// FullEnabled reports whether the full table of s is produced.
func (c Configuration) FullEnabled(s Species) bool {
	return c.ProcessFull[s.ShortName()]
}

// Locator returns the external parameter source configured for s.
func (c Configuration) Locator(s Species) string {
	return c.FileParamBB[s.ShortName()]
}
