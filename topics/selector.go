package topics

import (
	"errors"
	"math/rand"
	"time"

	"fact-shorts-pipeline/types"
)

// ErrNoTopics is returned when the topic store is empty.
var ErrNoTopics = errors.New("no topics available")

// A topic needs this many accumulated views before it is considered ready
// for re-selection.
const readyViews = 10

// Selector draws the next topic by weighted random sampling over the store.
type Selector struct {
	store *Store
	rng   *rand.Rand
}

// NewSelector creates a Selector. Pass a seeded rng for reproducible draws;
// nil uses a time-seeded source.
func NewSelector(store *Store, rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{store: store, rng: rng}
}

// Select reads all records, filters to those with enough accumulated views,
// and draws one by weight. When no record is ready yet the whole store is
// the candidate set, so small or all-new stores still terminate. Read-only.
func (s *Selector) Select() (string, error) {
	records := s.store.Load()
	if len(records) == 0 {
		return "", ErrNoTopics
	}

	var candidates []types.TopicRecord
	for _, r := range records {
		if r.Views >= readyViews {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		candidates = records
	}

	total := 0
	for _, c := range candidates {
		total += weight(c.Score)
	}

	draw := s.rng.Intn(total)
	for _, c := range candidates {
		draw -= weight(c.Score)
		if draw < 0 {
			return c.Topic, nil
		}
	}
	// Unreachable: the cumulative walk always lands inside the total.
	return candidates[len(candidates)-1].Topic, nil
}

// weight favors topics that have been generated rarely but never fully
// excludes one: a score of 10 or more still keeps weight 1.
func weight(score int) int {
	w := readyViews - score
	if w < 1 {
		return 1
	}
	return w
}
