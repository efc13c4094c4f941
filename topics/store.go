package topics

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"fact-shorts-pipeline/types"
)

// Store persists topic records as a flat JSON array. A missing or corrupt
// file degrades to an empty collection rather than failing.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a Store backed by the given file.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads all topic records. It never fails: an unreadable or unparsable
// file yields an empty slice.
func (s *Store) Load() []types.TopicRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[topics] Warning: could not read %s: %v", s.path, err)
		}
		return nil
	}
	var records []types.TopicRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("[topics] Warning: corrupt topic store %s: %v — treating as empty", s.path, err)
		return nil
	}
	return records
}

// RecordGeneration marks a successful generation of topic: its score grows by
// increment and its accumulated views reset to zero, so the topic has to earn
// fresh exposure before it is considered ready again. An unseen topic is
// inserted with score = increment and zero views. Writes are serialized on
// the Store, so concurrent successful runs cannot lose updates.
func (s *Store) RecordGeneration(topic string, increment int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.Load()
	found := false
	for i := range records {
		if records[i].Topic == topic {
			records[i].Score += increment
			records[i].Views = 0
			found = true
			break
		}
	}
	if !found {
		records = append(records, types.TopicRecord{Topic: topic, Score: increment, Views: 0})
	}
	return s.save(records)
}

func (s *Store) save(records []types.TopicRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal topic store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write topic store: %w", err)
	}
	return nil
}
