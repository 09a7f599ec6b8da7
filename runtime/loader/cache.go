package loader

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/weftlang/weft/core/registry"
	"github.com/weftlang/weft/core/types"
)

// cacheFileName is the compiled-snapshot cache written next to the
// definition files. The cache skips parsing and schema validation on
// reload when no source file changed.
const cacheFileName = ".registry.cache"

// cacheEnvelope is the CBOR-encoded cache payload: the content hash of the
// source files it was built from, plus the decoded definitions.
type cacheEnvelope struct {
	Hash        []byte             `cbor:"1,keyasint"`
	Definitions []types.Definition `cbor:"2,keyasint"`
}

// sourceHash computes a BLAKE2b-256 hash over the sorted definition file
// paths and contents. Any rename, edit, addition or removal changes it.
func sourceHash(dir string) ([]byte, error) {
	paths, err := definitionFiles(dir)
	if err != nil {
		return nil, err
	}

	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		h.Write([]byte(path))
		h.Write([]byte{0})
		h.Write(data)
		h.Write([]byte{0})
	}
	return h.Sum(nil), nil
}

// loadCached returns a snapshot from the cache file when the source hash
// still matches, or (nil, nil, nil) on any miss. Cache problems are never
// fatal; the caller falls back to a full load.
func loadCached(dir string) (*registry.Snapshot, []types.Diagnostic, error) {
	data, err := os.ReadFile(filepath.Join(dir, cacheFileName))
	if err != nil {
		return nil, nil, nil // no cache
	}

	var envelope cacheEnvelope
	if err := cbor.Unmarshal(data, &envelope); err != nil {
		return nil, nil, nil // stale or corrupt cache, ignore
	}

	hash, err := sourceHash(dir)
	if err != nil || !bytes.Equal(hash, envelope.Hash) {
		return nil, nil, nil
	}

	snap, err := registry.Build(envelope.Definitions)
	if err != nil {
		return nil, nil, nil // cached definitions no longer valid
	}
	return snap, nil, nil
}

// writeCache persists the decoded definitions keyed by the current source
// hash. Written atomically via rename so a concurrent Load never reads a
// torn file.
func writeCache(dir string, defs []types.Definition) error {
	hash, err := sourceHash(dir)
	if err != nil {
		return err
	}

	data, err := cbor.Marshal(cacheEnvelope{Hash: hash, Definitions: defs})
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, cacheFileName+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(dir, cacheFileName))
}
