// Package pkg provides tests for game entries and image splitting
package pkg

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hansbonini/ulmake/pkg/common"
	"github.com/hansbonini/ulmake/pkg/ps2/ps2test"
)

const testFragmentSize = 16384

func fragmentFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}
	var names []string
	for _, entry := range entries {
		if len(entry.Name()) > 3 && entry.Name()[:3] == "ul." && entry.Name() != CatalogFileName {
			names = append(names, entry.Name())
		}
	}
	return names
}

func TestGame_Split(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	image := ps2test.WriteImage(t, src, "foo.iso", "SLUS_200.62", ps2test.Options{})

	game := NewGameFromImage(image, "Foo")
	if err := game.Split(dst, testFragmentSize); err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	wantSizes := []uint64{16384, 16384, 8192}
	if game.NumChunks() != len(wantSizes) {
		t.Fatalf("NumChunks() = %d, want %d", game.NumChunks(), len(wantSizes))
	}

	original, err := os.ReadFile(image)
	if err != nil {
		t.Fatalf("Failed to read image: %v", err)
	}

	var joined []byte
	for i, chunk := range game.Chunks() {
		wantName := FragmentName("8B6E0146", "SLUS_200.62", i)
		if filepath.Base(chunk.Path()) != wantName {
			t.Errorf("chunk %d = %s, want %s", i, filepath.Base(chunk.Path()), wantName)
		}
		size, err := chunk.Size()
		if err != nil {
			t.Fatalf("Size() error = %v", err)
		}
		if size != wantSizes[i] {
			t.Errorf("chunk %d size = %d, want %d", i, size, wantSizes[i])
		}
		data, err := os.ReadFile(chunk.Path())
		if err != nil {
			t.Fatalf("Failed to read fragment: %v", err)
		}
		joined = append(joined, data...)
	}

	if !bytes.Equal(joined, original) {
		t.Error("fragments do not reassemble the original image")
	}
	if game.Size() != uint64(len(original)) {
		t.Errorf("Size() = %d, want %d", game.Size(), len(original))
	}

	serial, err := game.Serial()
	if err != nil || serial != "SLUS_200.62" {
		t.Errorf("Serial() = %q, %v, want SLUS_200.62", serial, err)
	}
}

func TestGame_Split_ExactMultiple(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	image := ps2test.WriteImage(t, src, "foo.iso", "SLUS_200.62", ps2test.Options{})

	game := NewGameFromImage(image, "Foo")
	if err := game.Split(dst, 20480); err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if game.NumChunks() != 2 {
		t.Errorf("NumChunks() = %d, want 2", game.NumChunks())
	}
}

func TestGame_Split_TooManyFragments(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	image := ps2test.WriteImage(t, src, "foo.iso", "SLUS_200.62", ps2test.Options{})

	game := NewGameFromImage(image, "Foo")
	err := game.Split(dst, 2048)
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Fatalf("Split() error = %v, want invalid input", err)
	}
	if files := fragmentFiles(t, dst); len(files) != 0 {
		t.Errorf("Split() left %d files behind", len(files))
	}
	if game.NumChunks() != 1 {
		t.Errorf("NumChunks() = %d, want the image chunk", game.NumChunks())
	}
}

func TestGame_Split_TenFragments(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	image := ps2test.WriteImage(t, src, "foo.iso", "SLUS_200.62", ps2test.Options{})

	game := NewGameFromImage(image, "Foo")
	if err := game.Split(dst, 4096); err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if game.NumChunks() != MaxFragments {
		t.Errorf("NumChunks() = %d, want %d", game.NumChunks(), MaxFragments)
	}
}

func TestGame_Split_Twice(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	image := ps2test.WriteImage(t, src, "foo.iso", "SLUS_200.62", ps2test.Options{})

	game := NewGameFromImage(image, "Foo")
	if err := game.Split(dst, testFragmentSize); err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if err := game.Split(dst, testFragmentSize); !errors.Is(err, common.ErrInvalidInput) {
		t.Errorf("second Split() error = %v, want invalid input", err)
	}
}

func TestGame_Split_MissingDestination(t *testing.T) {
	src := t.TempDir()
	image := ps2test.WriteImage(t, src, "foo.iso", "SLUS_200.62", ps2test.Options{})

	game := NewGameFromImage(image, "Foo")
	err := game.Split(filepath.Join(src, "missing"), testFragmentSize)
	if err == nil {
		t.Fatal("Split() expected error, got nil")
	}
	if kind := common.KindOf(err); kind != common.KindIO {
		t.Errorf("KindOf() = %v, want %v", kind, common.KindIO)
	}
	if _, ok := game.Chunks()[0].(*ImageChunk); !ok {
		t.Error("failed Split() replaced the image chunk")
	}
}

func TestGame_Split_NoSerial(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	image := ps2test.WriteFiles(t, src, "foo.iso", []ps2test.File{{Name: "README.TXT;1", Content: []byte("hi")}}, ps2test.Options{})

	game := NewGameFromImage(image, "Foo")
	if err := game.Split(dst, testFragmentSize); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Split() error = %v, want not found", err)
	}
	if files := fragmentFiles(t, dst); len(files) != 0 {
		t.Errorf("Split() left %d files behind", len(files))
	}
}

func TestNewGameFromRecord_Status(t *testing.T) {
	hash := NameHash("Foo")
	tests := []struct {
		name      string
		fragments int
		recorded  uint8
		want      GameStatus
	}{
		{"all fragments present", 3, 3, StatusOK},
		{"no fragments", 0, 3, StatusNoData},
		{"missing fragment", 2, 3, StatusLostData},
		{"extra fragment", 4, 3, StatusLostData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for i := 0; i < tt.fragments; i++ {
				touch(t, filepath.Join(dir, FragmentName(hash, "SLUS_200.62", i)), 16)
			}

			game, err := NewGameFromRecord(dir, &CatalogRecord{Name: "Foo", Serial: "SLUS_200.62", Chunks: tt.recorded})
			if err != nil {
				t.Fatalf("NewGameFromRecord() error = %v", err)
			}
			if game.Status != tt.want {
				t.Errorf("Status = %s, want %s", game.Status, tt.want)
			}
			if game.NumChunks() != tt.fragments {
				t.Errorf("NumChunks() = %d, want %d", game.NumChunks(), tt.fragments)
			}
		})
	}
}

func TestGame_Record_Degraded(t *testing.T) {
	dir := t.TempDir()
	record := &CatalogRecord{Name: "Foo", Serial: "SLUS_200.62", Chunks: 3}

	game, err := NewGameFromRecord(dir, record)
	if err != nil {
		t.Fatalf("NewGameFromRecord() error = %v", err)
	}
	if game.Status != StatusNoData {
		t.Fatalf("Status = %s, want %s", game.Status, StatusNoData)
	}

	serial, err := game.Serial()
	if err != nil || serial != "SLUS_200.62" {
		t.Errorf("Serial() = %q, %v, want recorded serial", serial, err)
	}

	got, err := game.Record()
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if *got != *record {
		t.Errorf("Record() = %+v, want %+v", *got, *record)
	}
}

func TestGame_Serial_Unknown(t *testing.T) {
	game := &Game{Name: "Foo", Status: StatusNoData, hash: NameHash("Foo")}
	if _, err := game.Serial(); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Serial() error = %v, want not found", err)
	}
}

func TestGame_FormattedSize(t *testing.T) {
	dir := t.TempDir()
	hash := NameHash("Big")
	for i, size := range []int64{1_500_000_000, 1_000_000_000} {
		path := filepath.Join(dir, FragmentName(hash, "SLUS_200.62", i))
		file, err := os.Create(path)
		if err != nil {
			t.Fatalf("Failed to create fragment: %v", err)
		}
		if err := file.Truncate(size); err != nil {
			t.Fatalf("Failed to size fragment: %v", err)
		}
		file.Close()
	}

	game, err := NewGameFromRecord(dir, &CatalogRecord{Name: "Big", Serial: "SLUS_200.62", Chunks: 2})
	if err != nil {
		t.Fatalf("NewGameFromRecord() error = %v", err)
	}
	if got := game.FormattedSize(); got != "2.50GB" {
		t.Errorf("FormattedSize() = %q, want %q", got, "2.50GB")
	}
}

func TestGame_DeleteChunks(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	image := ps2test.WriteImage(t, src, "foo.iso", "SLUS_200.62", ps2test.Options{})

	game := NewGameFromImage(image, "Foo")
	if err := game.Split(dst, testFragmentSize); err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if err := game.DeleteChunks(); err != nil {
		t.Fatalf("DeleteChunks() error = %v", err)
	}
	if files := fragmentFiles(t, dst); len(files) != 0 {
		t.Errorf("DeleteChunks() left %v", files)
	}
	if _, err := os.Stat(image); err != nil {
		t.Errorf("DeleteChunks() touched the source image: %v", err)
	}
}

func TestGame_DeleteChunks_StopsAtFailure(t *testing.T) {
	dir := t.TempDir()
	hash := NameHash("Foo")
	for i := 0; i < 3; i++ {
		touch(t, filepath.Join(dir, FragmentName(hash, "SLUS_200.62", i)), 16)
	}

	game, err := NewGameFromRecord(dir, &CatalogRecord{Name: "Foo", Serial: "SLUS_200.62", Chunks: 3})
	if err != nil {
		t.Fatalf("NewGameFromRecord() error = %v", err)
	}
	if err := os.Remove(game.Chunks()[1].Path()); err != nil {
		t.Fatalf("Failed to remove fragment: %v", err)
	}

	if err := game.DeleteChunks(); err == nil {
		t.Fatal("DeleteChunks() expected error, got nil")
	}
	if _, err := os.Stat(filepath.Join(dir, FragmentName(hash, "SLUS_200.62", 2))); err != nil {
		t.Errorf("fragment after the failure was removed: %v", err)
	}
	if game.NumChunks() != 2 {
		t.Errorf("NumChunks() = %d, want 2", game.NumChunks())
	}
}

func TestFragmentCount(t *testing.T) {
	tests := []struct {
		size uint64
		want uint64
	}{
		{0, 0},
		{1, 1},
		{DefaultFragmentSize, 1},
		{DefaultFragmentSize + 1, 2},
		{5 * DefaultFragmentSize / 2, 3},
	}
	for _, tt := range tests {
		if got := FragmentCount(tt.size, DefaultFragmentSize); got != tt.want {
			t.Errorf("FragmentCount(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}
