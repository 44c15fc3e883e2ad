package unwrap

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
)

// SeamDataVersion is the version tag written at the start of seam data.
const SeamDataVersion = 0x100

// SaveSeamData writes a seam edge id list: the version tag, the id count and
// the ids, all as little-endian 32-bit integers.
func SaveSeamData(w io.Writer, ids []int) error {
	buf := make([]int32, 0, len(ids)+2)
	buf = append(buf, SeamDataVersion, 0)
	for _, id := range ids {
		if id < math.MinInt32 || id > math.MaxInt32 {
			return fmt.Errorf("unwrap: seam edge %d: %w", id, ErrSeamData)
		}
		buf = append(buf, int32(id))
	}
	buf[1] = int32(len(ids))
	if err := binary.Write(w, binary.LittleEndian, buf); err != nil {
		return fmt.Errorf("unwrap: write seam data: %w", err)
	}
	return nil
}

// LoadSeamData reads a list written by SaveSeamData. The ids come back in the
// order they were saved.
func LoadSeamData(r io.Reader) ([]int, error) {
	var header [2]int32
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, seamReadError(err)
	}
	if header[0] != SeamDataVersion {
		return nil, fmt.Errorf("unwrap: seam data version %#x: %w", header[0], ErrSeamVersion)
	}
	count := int(header[1])
	if count < 0 {
		return nil, fmt.Errorf("unwrap: seam count %d: %w", count, ErrSeamData)
	}

	ids := make([]int, 0, min(count, 1<<16))
	var v int32
	for len(ids) < count {
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return nil, seamReadError(err)
		}
		ids = append(ids, int(v))
	}
	return ids, nil
}

func seamReadError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("unwrap: truncated seam data: %w", ErrSeamData)
	}
	return fmt.Errorf("unwrap: read seam data: %w", err)
}

// MarshalSeams returns the seam data of ids as a byte slice.
func MarshalSeams(ids []int) ([]byte, error) {
	var buf bytes.Buffer
	if err := SaveSeamData(&buf, ids); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalSeams parses seam data produced by MarshalSeams. Trailing bytes are
// an error.
func UnmarshalSeams(data []byte) ([]int, error) {
	r := bytes.NewReader(data)
	ids, err := LoadSeamData(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("unwrap: %d trailing bytes: %w", r.Len(), ErrSeamData)
	}
	return ids, nil
}

// AddSeamEdges returns the union of current and selected as a sorted list
// without duplicates. Ids outside [0, edgeCount) are dropped.
func AddSeamEdges(current, selected []int, edgeCount int) []int {
	t := seamTree(current, edgeCount)
	for _, id := range selected {
		if id >= 0 && id < edgeCount {
			t.Put(id, nil)
		}
	}
	return seamIDs(t)
}

// RemoveSeamEdges returns current without the ids in selected, sorted and
// without duplicates. Ids outside [0, edgeCount) are dropped.
func RemoveSeamEdges(current, selected []int, edgeCount int) []int {
	t := seamTree(current, edgeCount)
	for _, id := range selected {
		t.Remove(id)
	}
	return seamIDs(t)
}

func seamTree(ids []int, edgeCount int) *redblacktree.Tree {
	t := &redblacktree.Tree{Comparator: utils.IntComparator}
	for _, id := range ids {
		if id >= 0 && id < edgeCount {
			t.Put(id, nil)
		}
	}
	return t
}

func seamIDs(t *redblacktree.Tree) []int {
	ids := make([]int, 0, t.Size())
	it := t.Iterator()
	for it.Next() {
		ids = append(ids, it.Key().(int))
	}
	return ids
}
