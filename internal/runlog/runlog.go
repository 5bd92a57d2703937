package runlog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

type Entry struct {
	StartedAt     time.Time `json:"started_at"`
	Files         int       `json:"files"`
	Commit        string    `json:"commit,omitempty"`
	Branch        string    `json:"branch"`
	NoOp          bool      `json:"no_op"`
	ScrapeSeconds float64   `json:"scrape_seconds,omitempty"`
}

type Log struct {
	Runs []Entry `json:"runs"`
}

func LogPath(stateDir string) string {
	return filepath.Join(stateDir, "runs.json")
}

func Load(stateDir string) (*Log, error) {
	data, err := os.ReadFile(LogPath(stateDir))
	if err != nil {
		if os.IsNotExist(err) {
			return &Log{Runs: []Entry{}}, nil
		}
		return nil, err
	}

	var l Log
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, err
	}

	return &l, nil
}

func (l *Log) Save(stateDir string) error {
	path := LogPath(stateDir)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func (l *Log) Add(entry Entry) {
	l.Runs = append(l.Runs, entry)
}

func (l *Log) Latest() *Entry {
	if len(l.Runs) == 0 {
		return nil
	}
	return &l.Runs[len(l.Runs)-1]
}

// Prune drops runs exceeding the keepLast limit, oldest first.
func (l *Log) Prune(keepLast int) {
	if keepLast <= 0 || len(l.Runs) <= keepLast {
		return
	}
	l.Runs = l.Runs[len(l.Runs)-keepLast:]
}
