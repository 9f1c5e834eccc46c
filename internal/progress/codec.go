package progress

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/osse101/LevelBot_Go/internal/domain"
)

// Snapshot is the full persisted state: user id to record
type Snapshot map[string]*domain.ProgressRecord

// Encode serializes a snapshot as the flat JSON object used by userdata.json
func Encode(s Snapshot) ([]byte, error) {
	if s == nil {
		s = Snapshot{}
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot. Empty input yields an empty snapshot.
// Null entries are dropped.
func Decode(data []byte) (Snapshot, error) {
	s := Snapshot{}
	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSnapshotCorrupt, err)
	}
	for id, rec := range s {
		if rec == nil {
			delete(s, id)
		}
	}
	return s, nil
}
