package ops

import (
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Result statuses for one unit of work.
const (
	StatusOK      = "ok"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// ItemResult is the outcome for one wallet.
type ItemResult struct {
	Position  int    `yaml:"position"`
	Wallet    string `yaml:"wallet"`
	Address   string `yaml:"address,omitempty"`
	Status    string `yaml:"status"`
	Amount    string `yaml:"amount,omitempty"`
	Signature string `yaml:"signature,omitempty"`
	Detail    string `yaml:"detail,omitempty"`
	Transient bool   `yaml:"transient,omitempty"`
}

// BatchResult is the outcome for one multi-instruction transaction.
type BatchResult struct {
	Index     int      `yaml:"index"`
	Wallets   []string `yaml:"wallets"`
	Status    string   `yaml:"status"`
	Signature string   `yaml:"signature,omitempty"`
	Detail    string   `yaml:"detail,omitempty"`
	Transient bool     `yaml:"transient,omitempty"`
}

// Summary tallies a run's units of work.
type Summary struct {
	Processed uint64 `yaml:"processed"`
	Succeeded uint64 `yaml:"succeeded"`
	Skipped   uint64 `yaml:"skipped"`
	Failed    uint64 `yaml:"failed"`
}

// Report is the machine-readable record of one run, written as YAML when the
// user asks for it.
type Report struct {
	RunID      string        `yaml:"run_id"`
	Command    string        `yaml:"command"`
	StartedAt  time.Time     `yaml:"started_at"`
	FinishedAt time.Time     `yaml:"finished_at"`
	Items      []ItemResult  `yaml:"items,omitempty"`
	Batches    []BatchResult `yaml:"batches,omitempty"`
	Summary    Summary       `yaml:"summary"`
}

func newReport(command string) *Report {
	return &Report{
		RunID:     uuid.New().String(),
		Command:   command,
		StartedAt: time.Now().UTC(),
	}
}

func (rep *Report) addItem(item ItemResult) {
	rep.Items = append(rep.Items, item)
	rep.Summary.Processed++
	switch item.Status {
	case StatusOK:
		rep.Summary.Succeeded++
	case StatusSkipped:
		rep.Summary.Skipped++
	case StatusFailed:
		rep.Summary.Failed++
	}
}

func (rep *Report) addBatch(batch BatchResult) {
	rep.Batches = append(rep.Batches, batch)
	rep.Summary.Processed++
	if batch.Status == StatusOK {
		rep.Summary.Succeeded++
	} else {
		rep.Summary.Failed++
	}
}

func (rep *Report) finish() {
	rep.FinishedAt = time.Now().UTC()
}

// WriteYAML writes the report to path.
func (rep *Report) WriteYAML(path string) error {
	data, err := yaml.Marshal(rep)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
