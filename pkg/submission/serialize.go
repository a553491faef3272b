package submission

import (
	"bytes"
	"encoding/base64"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/ZabehCruz/pybryt/pkg/domain/types"
	"github.com/ZabehCruz/pybryt/pkg/footprint"
	"github.com/ZabehCruz/pybryt/pkg/notebook"
)

// DefaultArtifactFile is the conventional file name for a persisted
// submission artifact.
const DefaultArtifactFile = "student.pkl"

const envelopeVersion = 1

// envelope is the persisted form of a submission artifact. Restoring it
// never re-runs the original submission: the footprint travels verbatim.
type envelope struct {
	Version      int
	ID           types.ArtifactID
	NBPath       string
	Notebook     []byte // raw notebook JSON, nil when absent
	Observations []footprint.Observation
	Calls        []footprint.Call
	Imports      []string
	Steps        int
}

// DumpBytes serializes the artifact to its binary envelope.
func (s *Submission) DumpBytes() ([]byte, error) {
	env := envelope{
		Version:      envelopeVersion,
		ID:           s.id,
		NBPath:       s.nbPath,
		Observations: s.fp.Observations(),
		Calls:        s.fp.Calls(),
		Imports:      s.fp.Imports(),
		Steps:        s.steps,
	}
	if s.nb != nil {
		env.Notebook = s.nb.Bytes()
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(env); err != nil {
		return nil, fmt.Errorf("encoding submission envelope: %w", err)
	}
	return buf.Bytes(), nil
}

// Dump persists the artifact to a file. An empty dest uses
// DefaultArtifactFile.
func (s *Submission) Dump(dest string) error {
	if dest == "" {
		dest = DefaultArtifactFile
	}
	data, err := s.DumpBytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return fmt.Errorf("writing submission envelope %s: %w", dest, err)
	}
	return nil
}

// DumpString serializes the artifact to a base64 string, for transport
// where binary is inconvenient.
func (s *Submission) DumpString() (string, error) {
	data, err := s.DumpBytes()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// LoadBytes restores an artifact from its binary envelope. Deserialization
// is all-or-nothing: a malformed envelope fails without partial state.
func LoadBytes(data []byte) (*Submission, error) {
	var env envelope
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding submission envelope: %w", err)
	}
	if env.Version != envelopeVersion {
		return nil, fmt.Errorf("unsupported submission envelope version %d", env.Version)
	}

	fp := footprint.FromValues(env.Observations...)
	for _, call := range env.Calls {
		fp.AddCall(call.File, call.Function)
	}
	fp.AddImports(env.Imports...)

	sub := &Submission{
		id:     env.ID,
		nbPath: env.NBPath,
		fp:     fp,
		steps:  env.Steps,
	}
	if len(env.Notebook) > 0 {
		nb, err := notebook.Parse(env.Notebook)
		if err != nil {
			return nil, fmt.Errorf("restoring notebook from envelope: %w", err)
		}
		sub.nb = nb
	}
	return sub, nil
}

// Load restores an artifact from a file written by Dump.
func Load(path string) (*Submission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading submission envelope %s: %w", path, err)
	}
	return LoadBytes(data)
}

// LoadString restores an artifact from its base64 string form.
func LoadString(encoded string) (*Submission, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding submission envelope: %w", err)
	}
	return LoadBytes(data)
}
