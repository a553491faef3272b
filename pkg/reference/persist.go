package reference

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
)

func init() {
	// Concrete matcher types crossing the gob boundary.
	gob.Register(&ValueMatcher{})
}

// Loader resolves a reference identifier to a loaded reference
// implementation. Identifiers are opaque to callers: a loader may treat
// them as file paths, stored names, or anything else.
type Loader interface {
	Load(identifier string) (*Reference, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(identifier string) (*Reference, error)

// Load calls the underlying function.
func (f LoaderFunc) Load(identifier string) (*Reference, error) {
	return f(identifier)
}

// FileLoader is the default Loader: identifiers are file paths to persisted
// references.
var FileLoader Loader = LoaderFunc(Load)

// Dump persists the reference to a file. Matchers must be gob-encodable;
// the built-in matchers are.
func (r *Reference) Dump(path string) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(r); err != nil {
		return fmt.Errorf("encoding reference %q: %w", r.Name, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing reference %q: %w", r.Name, err)
	}
	return nil
}

// Load restores a reference persisted with Dump.
func Load(path string) (*Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading reference %s: %w", path, err)
	}

	var ref Reference
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&ref); err != nil {
		return nil, fmt.Errorf("decoding reference %s: %w", path, err)
	}
	return &ref, nil
}
