package session

import (
	"encoding/gob"
	"os"
)

// Checkpoint holds enough of a REPL's history to resume it: the
// evaluation ledger and the egest budget in effect when it was saved.
type Checkpoint struct {
	Entries []Entry
	Egests  uint32
}

// SaveCheckpoint writes a REPL session's history to path.
func SaveCheckpoint(path string, ckpt *Checkpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(ckpt)
}

// LoadCheckpoint reads a previously saved REPL session history from path.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var ckpt Checkpoint
	if err := gob.NewDecoder(f).Decode(&ckpt); err != nil {
		return nil, err
	}
	return &ckpt, nil
}
