package model

// FileRecord is one processed (or failed) input file in the run catalog.
type FileRecord struct {
	RunID       int64  `json:"run_id"`
	Name        string `json:"name"`
	Output      string `json:"output,omitempty"`
	Rows        int    `json:"rows"`
	Pincodes    int    `json:"pincodes"`
	Cities      int    `json:"cities"`
	States      int    `json:"states"`
	Coordinates int    `json:"coordinates"`
	Emails      int    `json:"emails"`
	PlusCodes   int    `json:"plus_codes"`
	Error       string `json:"error,omitempty"`
	ProcessedAt string `json:"processed_at"`
}

// Run is one invocation of the process command.
type Run struct {
	ID          int64  `json:"id"`
	StartedAt   string `json:"started_at"`
	FinishedAt  string `json:"finished_at,omitempty"`
	InputDir    string `json:"input_dir"`
	FilesOK     int    `json:"files_ok"`
	FilesFailed int    `json:"files_failed"`
}

// Summary is the catalog's top-level totals.
type Summary struct {
	Runs     int `json:"runs"`
	Files    int `json:"files"`
	Rows     int `json:"rows"`
	Failures int `json:"failures"`
}
