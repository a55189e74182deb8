// Package pkg implements the USBExtreme game catalog: the ul.cfg record codec,
// game entries and the splitting of disc images into loader fragments.
package pkg

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hansbonini/ulmake/pkg/common"
	"go.uber.org/zap"
)

// Game is one catalog entry together with the files holding its data
type Game struct {
	Name   string
	Status GameStatus

	hash   string
	chunks []Chunk

	// Values read from ul.cfg, kept so degraded entries survive a save
	recordSerial string
	recordChunks uint8
}

// NewGameFromImage creates an entry backed by a single unsplit image
func NewGameFromImage(imagePath, name string) *Game {
	return newGameFromChunk(NewImageChunk(imagePath), name)
}

func newGameFromChunk(image *ImageChunk, name string) *Game {
	return &Game{
		Name:   name,
		Status: StatusOK,
		hash:   NameHash(name),
		chunks: []Chunk{image},
	}
}

// NewGameFromRecord creates an entry from a ul.cfg record, locating its fragments in dir.
// Missing or miscounted fragments degrade the entry's status instead of failing.
func NewGameFromRecord(dir string, record *CatalogRecord) (*Game, error) {
	game := &Game{
		Name:         record.Name,
		Status:       StatusOK,
		hash:         NameHash(record.Name),
		recordSerial: record.Serial,
		recordChunks: record.Chunks,
	}

	names, err := ListFragments(dir, game.hash)
	if err != nil && common.KindOf(err) != common.KindNotFound {
		return nil, err
	}
	for _, name := range names {
		game.chunks = append(game.chunks, NewFragmentChunk(filepath.Join(dir, name)))
	}

	switch {
	case len(game.chunks) == 0:
		game.Status = StatusNoData
		common.LogWarn(common.WarnGameNoData, game.Name)
	case len(game.chunks) != int(record.Chunks):
		game.Status = StatusLostData
		common.LogWarn(common.WarnGameLostData, game.Name, record.Chunks, len(game.chunks))
	}

	return game, nil
}

// NameHash returns the tag used in the entry's fragment names
func (g *Game) NameHash() string {
	return g.hash
}

// Chunks returns the entry's files in index order
func (g *Game) Chunks() []Chunk {
	return g.chunks
}

// NumChunks returns how many files hold the entry's data
func (g *Game) NumChunks() int {
	return len(g.chunks)
}

// Serial returns the first chunk's serial, or the recorded one when no chunk can provide it
func (g *Game) Serial() (string, error) {
	var chunkErr error
	if len(g.chunks) > 0 {
		serial, err := g.chunks[0].Serial()
		if err == nil {
			return serial, nil
		}
		chunkErr = err
	}
	if g.recordSerial != "" {
		return g.recordSerial, nil
	}
	if chunkErr != nil {
		return "", chunkErr
	}
	return "", common.Errorf(common.KindNotFound, "serial", "game %q has no data", g.Name)
}

// Size returns the total size of all chunks; unreadable chunks count as zero
func (g *Game) Size() uint64 {
	var total uint64
	for _, chunk := range g.chunks {
		size, err := chunk.Size()
		if err != nil {
			continue
		}
		total += size
	}
	return total
}

// FormattedSize renders Size in decimal gigabytes
func (g *Game) FormattedSize() string {
	return fmt.Sprintf("%.2fGB", float64(g.Size())/1_000_000_000.0)
}

// Record builds the ul.cfg record for the entry
func (g *Game) Record() (*CatalogRecord, error) {
	serial, err := g.Serial()
	if err != nil {
		return nil, err
	}

	count := len(g.chunks)
	if g.Status.IsDegraded() {
		count = int(g.recordChunks)
	}
	chunks, err := common.SafeIntToUint8(count)
	if err != nil {
		return nil, common.NewError(common.KindInvalidData, "record", "", err)
	}

	return &CatalogRecord{Name: g.Name, Serial: serial, Chunks: chunks}, nil
}

// FragmentCount returns how many fragments of fragmentSize bytes hold size bytes
func FragmentCount(size uint64, fragmentSize int64) uint64 {
	fs := uint64(fragmentSize)
	return (size + fs - 1) / fs
}

// Split copies the entry's image into consecutive fragments in dstDir and
// replaces the image chunk with them. A failed split removes the fragments it
// created and leaves the entry unchanged.
func (g *Game) Split(dstDir string, fragmentSize int64) error {
	if fragmentSize <= 0 {
		return common.Errorf(common.KindInvalidInput, "split", "fragment size %d must be positive", fragmentSize)
	}

	image, ok := g.singleImage()
	if !ok {
		return common.Errorf(common.KindInvalidInput, "split", common.ErrAlreadySplit, g.Name)
	}

	size, err := image.Size()
	if err != nil {
		return common.NewError(common.KindIO, "split", image.Path(), err)
	}

	count := FragmentCount(size, fragmentSize)
	if count > MaxFragments {
		return common.Errorf(common.KindInvalidInput, "split", common.ErrTooManyFragments, count, MaxFragments)
	}

	serial, err := image.Serial()
	if err != nil {
		return err
	}

	src, err := os.Open(image.Path())
	if err != nil {
		return common.NewError(common.KindIO, "split", image.Path(), err)
	}
	defer src.Close()

	fragments := make([]Chunk, 0, count)
	for k := 0; k < int(count); k++ {
		common.LogInfo(common.InfoCreatingFragment, k+1, count)

		path := filepath.Join(dstDir, FragmentName(g.hash, serial, k))
		if err := copyFragment(src, path, int64(k)*fragmentSize, fragmentSize); err != nil {
			removeFragments(append(fragments, NewFragmentChunk(path)))
			return err
		}
		fragments = append(fragments, NewFragmentChunk(path))
	}

	g.chunks = fragments
	g.Status = StatusOK
	common.Logger().Debug("game split",
		zap.String("name", g.Name),
		zap.String("serial", serial),
		zap.Int("fragments", len(fragments)))
	return nil
}

// DeleteChunks removes the entry's files in index order and stops at the first failure.
// Files removed before the failure are gone; the entry keeps the rest.
func (g *Game) DeleteChunks() error {
	common.LogInfo(common.InfoDeletingGame, g.Name)

	total := len(g.chunks)
	for i, chunk := range g.chunks {
		common.LogInfo(common.InfoDeletingFragment, i+1, total)
		if err := os.Remove(chunk.Path()); err != nil {
			g.chunks = g.chunks[i:]
			return common.NewError(common.KindIO, "delete", chunk.Path(),
				common.FormatError(common.ErrFailedToDeleteFragment, err))
		}
	}

	g.chunks = nil
	return nil
}

func (g *Game) singleImage() (*ImageChunk, bool) {
	if len(g.chunks) != 1 {
		return nil, false
	}
	image, ok := g.chunks[0].(*ImageChunk)
	return image, ok
}

func copyFragment(src io.ReadSeeker, path string, offset, size int64) error {
	if _, err := src.Seek(offset, io.SeekStart); err != nil {
		return common.NewError(common.KindIO, "split", path, common.FormatError(common.ErrFailedToCopyFragment, err))
	}

	dst, err := os.Create(path)
	if err != nil {
		return common.NewError(common.KindIO, "split", path, common.FormatError(common.ErrFailedToCreateFragment, err))
	}

	written, err := io.Copy(dst, io.LimitReader(src, size))
	if err != nil {
		dst.Close()
		return common.NewError(common.KindIO, "split", path, common.FormatError(common.ErrFailedToCopyFragment, err))
	}
	if err := dst.Close(); err != nil {
		return common.NewError(common.KindIO, "split", path, common.FormatError(common.ErrFailedToCopyFragment, err))
	}

	common.LogDebug(common.DebugFragmentCopied, written, path)
	return nil
}

func removeFragments(fragments []Chunk) {
	for _, fragment := range fragments {
		if err := os.Remove(fragment.Path()); err != nil && !os.IsNotExist(err) {
			common.LogWarn(common.WarnCleanupFragment, fragment.Path(), err)
		}
	}
}
