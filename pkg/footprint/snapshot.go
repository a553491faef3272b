package footprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Snapshot is an opaque, already-serialized capture of a value observed
// during execution. The execution engine produces snapshots; this package
// only stores and forwards them, it never inspects the payload. Equality
// between snapshots is defined by the digest, which is fixed at capture
// time over the type name and payload bytes.
type Snapshot struct {
	// Type is the dynamic type name reported by the engine.
	Type string
	// Data is the engine-encoded payload. Treated as opaque bytes.
	Data []byte
	// Digest is the sha256 hex digest over Type and Data.
	Digest string
}

// NewSnapshot builds a snapshot from an engine-encoded payload and computes
// its digest.
func NewSnapshot(typeName string, data []byte) Snapshot {
	return Snapshot{
		Type:   typeName,
		Data:   data,
		Digest: snapshotDigest(typeName, data),
	}
}

// SnapshotOf captures an in-process value by JSON-encoding it. Useful for
// tests and for replaying traces whose payloads are JSON already.
func SnapshotOf(v interface{}) (Snapshot, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encoding snapshot payload: %w", err)
	}
	return NewSnapshot(fmt.Sprintf("%T", v), data), nil
}

// Equal reports whether two snapshots captured the same value.
func (s Snapshot) Equal(other Snapshot) bool {
	return s.Digest == other.Digest
}

// IsZero returns true if the snapshot is the zero value.
func (s Snapshot) IsZero() bool {
	return s.Type == "" && len(s.Data) == 0 && s.Digest == ""
}

func snapshotDigest(typeName string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(typeName))
	h.Write([]byte{0})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
