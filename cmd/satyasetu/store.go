// cmd/satyasetu/store.go
package main

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// AnalysisRecord is a stored analysis with its identifying metadata
type AnalysisRecord struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	URL       string          `json:"url,omitempty"`
	Source    string          `json:"source,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Result    *AnalysisResult `json:"result"`
}

// Alert is raised for high and critical risk analyses
type Alert struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	RiskLevel  string    `json:"risk_level"`
	Likelihood float64   `json:"likelihood"`
	CreatedAt  time.Time `json:"created_at"`
}

type storeState struct {
	Analyses []AnalysisRecord `json:"analyses"`
	Alerts   []Alert          `json:"alerts"`
}

// Store persists analyses and alerts to a JSON file under the data
// directory. Writes go through a temp file then rename.
type Store struct {
	mu    sync.RWMutex
	path  string
	max   int
	state storeState
}

func NewStore(dataDir string, maxAnalyses int) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, NewStoreError(ErrStoreLoad, "creating data directory", err)
	}
	s := &Store{
		path: filepath.Join(dataDir, "analyses.json"),
		max:  maxAnalyses,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return NewStoreError(ErrStoreLoad, "reading store file", err)
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		return NewStoreError(ErrStoreLoad, "parsing store file", err)
	}
	return nil
}

func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return NewStoreError(ErrStoreSave, "encoding store", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return NewStoreError(ErrStoreSave, "writing store file", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return NewStoreError(ErrStoreSave, "replacing store file", err)
	}
	return nil
}

// SaveAnalysis records a fresh result, raising an alert when the risk level
// warrants one. Newest records come first and the list stays bounded.
func (s *Store) SaveAnalysis(title, url, source string, result *AnalysisResult) (*AnalysisRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := AnalysisRecord{
		ID:        generateRecordID(title, url),
		Title:     title,
		URL:       url,
		Source:    source,
		CreatedAt: time.Now().UTC(),
		Result:    result,
	}

	s.state.Analyses = append([]AnalysisRecord{record}, s.state.Analyses...)
	if len(s.state.Analyses) > s.max {
		s.state.Analyses = s.state.Analyses[:s.max]
	}

	if result.RiskLevel == RiskLevelHigh || result.RiskLevel == RiskLevelCritical {
		s.state.Alerts = append([]Alert{{
			ID:         record.ID,
			Title:      title,
			RiskLevel:  result.RiskLevel,
			Likelihood: result.MisinformationLikelihood,
			CreatedAt:  record.CreatedAt,
		}}, s.state.Alerts...)
		if len(s.state.Alerts) > s.max {
			s.state.Alerts = s.state.Alerts[:s.max]
		}
		IncrementCounter(CounterAlerts)
	}

	if err := s.persist(); err != nil {
		return nil, err
	}
	return &record, nil
}

// RecentAnalyses returns up to limit newest records
func (s *Store) RecentAnalyses(limit int) []AnalysisRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.state.Analyses) {
		limit = len(s.state.Analyses)
	}
	out := make([]AnalysisRecord, limit)
	copy(out, s.state.Analyses[:limit])
	return out
}

// GetAnalysis looks a record up by ID
func (s *Store) GetAnalysis(id string) (*AnalysisRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.state.Analyses {
		if s.state.Analyses[i].ID == id {
			record := s.state.Analyses[i]
			return &record, true
		}
	}
	return nil, false
}

// HasSeen reports whether a record with the given title was already stored.
// Used by the feed monitor to skip headlines it already analyzed.
func (s *Store) HasSeen(title string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.state.Analyses {
		if s.state.Analyses[i].Title == title {
			return true
		}
	}
	return false
}

// RecentAlerts returns up to limit newest alerts
func (s *Store) RecentAlerts(limit int) []Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.state.Alerts) {
		limit = len(s.state.Alerts)
	}
	out := make([]Alert, limit)
	copy(out, s.state.Alerts[:limit])
	return out
}

// Counts returns stored analysis and alert totals
func (s *Store) Counts() (analyses, alerts int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.Analyses), len(s.state.Alerts)
}

func generateRecordID(title, url string) string {
	data := fmt.Sprintf("%s:%s:%d", title, url, time.Now().UnixNano())
	return fmt.Sprintf("%x", md5.Sum([]byte(data)))[:16]
}
