package seamstore

import (
	"errors"
	"slices"
	"testing"
)

func openMem(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoad(t *testing.T) {
	s := openMem(t)
	if _, err := s.Load("cube"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load before Save: err = %v, want ErrNotFound", err)
	}
	want := []int{3, 1, 7}
	if err := s.Save("cube", want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load("cube")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !slices.Equal(got, want) {
		t.Errorf("Load = %v, want %v", got, want)
	}
}

func TestAddRemove(t *testing.T) {
	tests := []struct {
		name   string
		add    []int
		remove []int
		want   []int
	}{
		{"add only", []int{5, 2, 5, 9}, nil, []int{2, 5, 9}},
		{"out of range dropped", []int{-1, 4, 12}, nil, []int{4}},
		{"remove", []int{1, 2, 3}, []int{2, 8}, []int{1, 3}},
		{"remove all", []int{1}, []int{1}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openMem(t)
			const edges = 12
			got, err := s.Add("shape", tt.add, edges)
			if err != nil {
				t.Fatalf("Add: %v", err)
			}
			if tt.remove != nil {
				if got, err = s.Remove("shape", tt.remove, edges); err != nil {
					t.Fatalf("Remove: %v", err)
				}
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("result = %v, want %v", got, tt.want)
			}
			stored, err := s.Load("shape")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(stored) != len(tt.want) || (len(stored) > 0 && !slices.Equal(stored, tt.want)) {
				t.Errorf("stored = %v, want %v", stored, tt.want)
			}
		})
	}
}

func TestAddMerges(t *testing.T) {
	s := openMem(t)
	if err := s.Save("shape", []int{6, 0}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Add("shape", []int{3}, 10)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if want := []int{0, 3, 6}; !slices.Equal(got, want) {
		t.Errorf("Add = %v, want %v", got, want)
	}
}

func TestClearDeleteKeys(t *testing.T) {
	s := openMem(t)
	for _, k := range []string{"b", "a", "c"} {
		if err := s.Save(k, []int{1}); err != nil {
			t.Fatalf("Save(%s): %v", k, err)
		}
	}
	if err := s.Clear("a"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	ids, err := s.Load("a")
	if err != nil || len(ids) != 0 {
		t.Errorf("Load after Clear = %v, %v; want empty list", ids, err)
	}
	if err := s.Delete("b"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load("b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after Delete: err = %v, want ErrNotFound", err)
	}
	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if want := []string{"a", "c"}; !slices.Equal(keys, want) {
		t.Errorf("Keys = %v, want %v", keys, want)
	}
}

func TestPersistence(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Save("mesh", []int{4, 8}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.Load("mesh")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := []int{4, 8}; !slices.Equal(got, want) {
		t.Errorf("Load = %v, want %v", got, want)
	}
}
