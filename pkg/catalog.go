package pkg

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hansbonini/ulmake/pkg/common"
	"go.uber.org/zap"
)

// SpaceFunc reports the free bytes available at a directory
type SpaceFunc func(dir string) (uint64, error)

type catalogOptions struct {
	fragmentSize int64
	strict       bool
	space        SpaceFunc
}

// Option configures a Catalog
type Option func(*catalogOptions)

// WithFragmentSize sets the size of the fragments new games are split into
func WithFragmentSize(size int64) Option {
	return func(o *catalogOptions) {
		o.fragmentSize = size
	}
}

// WithStrict makes LoadCatalog reject a trailing partial record
func WithStrict(strict bool) Option {
	return func(o *catalogOptions) {
		o.strict = strict
	}
}

// WithSpaceFunc replaces the free space query used by AddGame
func WithSpaceFunc(fn SpaceFunc) Option {
	return func(o *catalogOptions) {
		o.space = fn
	}
}

func newCatalogOptions(opts []Option) catalogOptions {
	o := catalogOptions{
		fragmentSize: DefaultFragmentSize,
		space:        common.AvailableSpace,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Catalog is the ordered list of games described by a ul.cfg file.
// The position of a game is its record index in the file.
type Catalog struct {
	games   []*Game
	options catalogOptions
}

// NewCatalog returns an empty catalog
func NewCatalog(opts ...Option) *Catalog {
	return &Catalog{options: newCatalogOptions(opts)}
}

// LoadCatalog reads the ul.cfg at path and locates each game's fragments next to it
func LoadCatalog(path string, opts ...Option) (*Catalog, error) {
	catalog := NewCatalog(opts...)

	data, err := os.ReadFile(path)
	if err != nil {
		kind := common.KindIO
		if errors.Is(err, fs.ErrNotExist) {
			kind = common.KindNotFound
		}
		return nil, common.NewError(kind, "load", path, common.FormatError(common.ErrFailedToLoadCatalog, err))
	}

	records, err := NewRecordDecoder(catalog.options.strict).Decode(bytes.NewReader(data))
	if err != nil {
		return nil, common.NewError(common.KindOf(err), "load", path, err)
	}

	dir := filepath.Dir(path)
	for i := range records {
		game, err := NewGameFromRecord(dir, &records[i])
		if err != nil {
			return nil, common.NewError(common.KindOf(err), "load", path, err)
		}
		catalog.games = append(catalog.games, game)
	}

	common.LogDebug(common.InfoCatalogLoaded, len(catalog.games), path)
	return catalog, nil
}

// OpenCatalog loads the ul.cfg at path, or returns an empty catalog when it does not exist
func OpenCatalog(path string, opts ...Option) (*Catalog, error) {
	catalog, err := LoadCatalog(path, opts...)
	if err != nil {
		if common.KindOf(err) == common.KindNotFound && errors.Is(err, fs.ErrNotExist) {
			return NewCatalog(opts...), nil
		}
		return nil, err
	}
	return catalog, nil
}

// Save overwrites path with one record per game
func (c *Catalog) Save(path string) error {
	records := make([]CatalogRecord, 0, len(c.games))
	for _, game := range c.games {
		record, err := game.Record()
		if err != nil {
			return common.NewError(common.KindOf(err), "save", path, err)
		}
		records = append(records, *record)
	}

	var buffer bytes.Buffer
	if err := NewRecordEncoder().Encode(&buffer, records); err != nil {
		return common.NewError(common.KindOf(err), "save", path, err)
	}

	if err := os.WriteFile(path, buffer.Bytes(), 0o644); err != nil {
		return common.NewError(common.KindIO, "save", path, common.FormatError(common.ErrFailedToSaveCatalog, err))
	}

	common.LogDebug(common.InfoCatalogSaved, len(records), path)
	return nil
}

// Games returns the catalog entries in record order
func (c *Catalog) Games() []*Game {
	return c.games
}

// Len returns the number of entries
func (c *Catalog) Len() int {
	return len(c.games)
}

// FindGame returns the index of the first game called name
func (c *Catalog) FindGame(name string) (int, bool) {
	for i, game := range c.games {
		if game.Name == name {
			return i, true
		}
	}
	return -1, false
}

// findHash returns the name of the game whose fragments are tagged with hash
func (c *Catalog) findHash(hash string) (string, bool) {
	for _, game := range c.games {
		if game.NameHash() == hash {
			return game.Name, true
		}
	}
	return "", false
}

// AddGame splits the image into fragments in dstDir and appends the new entry.
// Nothing is written when the name, size or serial is rejected. A name whose
// hash is already in use is rejected since both games would share fragment files.
func (c *Catalog) AddGame(imagePath, dstDir, name string) (*Game, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if existing, ok := c.findHash(NameHash(name)); ok {
		return nil, common.Errorf(common.KindInvalidInput, "add", common.ErrDuplicateGame, name, existing)
	}
	if c.options.fragmentSize <= 0 {
		return nil, common.Errorf(common.KindInvalidInput, "add", "fragment size %d must be positive", c.options.fragmentSize)
	}

	image := NewImageChunk(imagePath)
	size, err := image.Size()
	if err != nil {
		return nil, common.NewError(common.KindIO, "add", imagePath, common.FormatError(common.ErrFailedToOpenImage, err))
	}

	free, err := c.options.space(dstDir)
	if err != nil {
		return nil, common.NewError(common.KindIO, "add", dstDir, common.FormatError(common.ErrFailedToQueryFreeSpace, err))
	}
	if size >= free {
		return nil, common.Errorf(common.KindOutOfSpace, "add", common.ErrNotEnoughSpace, size, free)
	}

	if count := FragmentCount(size, c.options.fragmentSize); count > MaxFragments {
		return nil, common.Errorf(common.KindInvalidInput, "add", common.ErrTooManyFragments, count, MaxFragments)
	}

	serial, err := image.Serial()
	if err != nil {
		return nil, err
	}
	if len(serial) > MaxSerialSize {
		return nil, common.Errorf(common.KindInvalidData, "add", common.ErrSerialTooLong, serial, MaxSerialSize)
	}

	common.LogInfo(common.InfoCreatingGame, name, imagePath)
	game := newGameFromChunk(image, name)
	if err := game.Split(dstDir, c.options.fragmentSize); err != nil {
		return nil, err
	}

	c.games = append(c.games, game)
	common.Logger().Info("game added",
		zap.String("name", name),
		zap.String("serial", serial),
		zap.String("hash", game.NameHash()),
		zap.Int("chunks", game.NumChunks()))
	return game, nil
}

// DeleteGameByName removes the fragments and the entry of the first game called name
func (c *Catalog) DeleteGameByName(name string) error {
	index, ok := c.FindGame(name)
	if !ok {
		return common.Errorf(common.KindNotFound, "delete", common.ErrGameNotFound, name)
	}
	return c.deleteAt(index)
}

// DeleteGameByIndex removes the fragments and the entry at index
func (c *Catalog) DeleteGameByIndex(index int) error {
	if index < 0 || index >= len(c.games) {
		return common.Errorf(common.KindNotFound, "delete", common.ErrIndexOutOfRange, index, len(c.games))
	}
	return c.deleteAt(index)
}

func (c *Catalog) deleteAt(index int) error {
	game := c.games[index]
	if err := game.DeleteChunks(); err != nil {
		return err
	}

	c.games = append(c.games[:index], c.games[index+1:]...)
	common.Logger().Info("game deleted", zap.String("name", game.Name), zap.Int("index", index))
	return nil
}

// ValidateName checks that name fits the record's name field
func ValidateName(name string) error {
	if name == "" {
		return common.Errorf(common.KindInvalidInput, "validate name", common.ErrNameEmpty)
	}
	if len(name) > MaxNameSize {
		return common.Errorf(common.KindInvalidInput, "validate name", common.ErrNameTooLong, MaxNameSize)
	}
	return nil
}
