package store

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/reviewlens/reviewlens/internal/port"
)

// bytesPerFloat is the on-disk size of one vector component (little-endian
// IEEE 754 single precision).
const bytesPerFloat = 4

// Compile-time interface check.
var _ port.VectorIndex = (*VectorFile)(nil)

// VectorFile is an append-only log of fixed-width vector records. Record i
// occupies bytes [i*dim*4, (i+1)*dim*4); there is no header, checksum, or
// embedded id. Ordinal position is the only identity.
//
// Every append runs under one mutex spanning the whole operation, which is
// what guarantees the id <-> byte-offset correspondence. After each write the
// file length is re-checked; on a mismatch the store marks itself poisoned
// and refuses further appends, because the vector and metadata id spaces may
// have diverged and no silent repair exists.
type VectorFile struct {
	dim        int
	path       string
	recordSize int64

	mu       sync.Mutex
	file     *os.File
	poisoned bool
}

// OpenVectorFile opens (or creates) the vector log at dir/reviews.index.
func OpenVectorFile(dir string, dim int) (*VectorFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(dir, "reviews.index")

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open vector file: %w", err)
	}

	recordSize := int64(dim) * bytesPerFloat

	// A trailing partial record means a previous append died mid-write.
	// Refuse to open rather than guess at the id mapping.
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat vector file: %w", err)
	}
	if info.Size()%recordSize != 0 {
		_ = f.Close()
		return nil, fmt.Errorf("vector file %s has partial record (%d bytes, record size %d): %w",
			path, info.Size(), recordSize, port.ErrStorePoisoned)
	}

	return &VectorFile{
		dim:        dim,
		path:       path,
		recordSize: recordSize,
		file:       f,
	}, nil
}

// Dim returns the fixed vector dimension.
func (v *VectorFile) Dim() int {
	return v.dim
}

// Path returns the backing file path.
func (v *VectorFile) Path() string {
	return v.path
}

// Append stores vec and returns its ordinal id.
func (v *VectorFile) Append(vec []float32) (int, error) {
	if len(vec) != v.dim {
		return 0, fmt.Errorf("got %d dims, store has %d: %w", len(vec), v.dim, port.ErrDimensionMismatch)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.poisoned {
		return 0, fmt.Errorf("append refused: %w", port.ErrStorePoisoned)
	}

	before, err := v.file.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("seek vector file: %w", err)
	}
	id := int(before / v.recordSize)

	buf := make([]byte, v.recordSize)
	for i, x := range vec {
		binary.LittleEndian.PutUint32(buf[i*bytesPerFloat:], math.Float32bits(x))
	}
	if _, err := v.file.Write(buf); err != nil {
		v.poisoned = true
		return 0, fmt.Errorf("write vector record: %w", err)
	}
	if err := v.file.Sync(); err != nil {
		v.poisoned = true
		return 0, fmt.Errorf("sync vector file: %w", err)
	}

	info, err := os.Stat(v.path)
	if err != nil {
		v.poisoned = true
		return 0, fmt.Errorf("stat after append: %w", err)
	}
	if info.Size() != before+v.recordSize {
		v.poisoned = true
		return 0, fmt.Errorf("vector file grew %d -> %d, expected +%d: %w",
			before, info.Size(), v.recordSize, port.ErrStorePoisoned)
	}

	return id, nil
}

// Get returns the vector stored under id.
func (v *VectorFile) Get(id int) ([]float32, error) {
	if id < 0 {
		return nil, fmt.Errorf("vector id %d: %w", id, port.ErrNotFound)
	}

	buf := make([]byte, v.recordSize)
	n, err := v.file.ReadAt(buf, int64(id)*v.recordSize)
	if err != nil || int64(n) != v.recordSize {
		return nil, fmt.Errorf("vector id %d: %w", id, port.ErrNotFound)
	}
	return decodeRecord(buf, v.dim), nil
}

// Count returns the number of complete records on disk.
func (v *VectorFile) Count() (int, error) {
	info, err := os.Stat(v.path)
	if err != nil {
		return 0, fmt.Errorf("stat vector file: %w", err)
	}
	return int(info.Size() / v.recordSize), nil
}

// ScanAll reads every complete record in id order. The whole file is read in
// one pass, matching how search scores the corpus.
func (v *VectorFile) ScanAll() ([][]float32, error) {
	raw, err := os.ReadFile(v.path)
	if err != nil {
		return nil, fmt.Errorf("read vector file: %w", err)
	}

	n := int64(len(raw)) / v.recordSize
	out := make([][]float32, 0, n)
	for i := int64(0); i < n; i++ {
		out = append(out, decodeRecord(raw[i*v.recordSize:(i+1)*v.recordSize], v.dim))
	}
	return out, nil
}

// Close closes the backing file.
func (v *VectorFile) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.file.Close()
}

// decodeRecord decodes one little-endian float32 record. Explicit per-element
// decoding; the byte layout is part of the on-disk contract, not a memory
// aliasing trick.
func decodeRecord(buf []byte, dim int) []float32 {
	vec := make([]float32, dim)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*bytesPerFloat:]))
	}
	return vec
}
