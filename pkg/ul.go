// This file contains the processor behind the add, delete and list commands.
package pkg

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hansbonini/ulmake/pkg/common"
)

// ULProcessor runs catalog operations against the ul.cfg of a directory
type ULProcessor struct {
	*ULCatalogExporter
	options []Option
}

// NewULProcessor creates a processor whose catalogs use opts
func NewULProcessor(opts ...Option) *ULProcessor {
	return &ULProcessor{
		ULCatalogExporter: NewCatalogExporter(),
		options:           opts,
	}
}

// CatalogPath returns the ul.cfg path inside ulDir
func CatalogPath(ulDir string) string {
	return filepath.Join(ulDir, CatalogFileName)
}

// DefaultGameName derives a display name from the image file name
func DefaultGameName(imagePath string) string {
	base := filepath.Base(imagePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// AddGame registers the image under name in ulDir's catalog, creating ul.cfg when missing.
// An empty name falls back to the image file name.
func (p *ULProcessor) AddGame(imagePath, ulDir, name string) (*Game, error) {
	if name == "" {
		name = DefaultGameName(imagePath)
	}

	path := CatalogPath(ulDir)
	catalog, err := OpenCatalog(path, p.options...)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	game, err := catalog.AddGame(imagePath, ulDir, name)
	if err != nil {
		return nil, fmt.Errorf("failed to add %s: %w", imagePath, err)
	}

	if err := catalog.Save(path); err != nil {
		return nil, fmt.Errorf("failed to save catalog: %w", err)
	}

	common.LogInfo(common.InfoCatalogSaved, catalog.Len(), path)
	return game, nil
}

// DeleteGameByName removes the game called name from ulDir's catalog
func (p *ULProcessor) DeleteGameByName(ulDir, name string) error {
	return p.deleteGame(ulDir, func(c *Catalog) error {
		return c.DeleteGameByName(name)
	})
}

// DeleteGameByIndex removes the game at index from ulDir's catalog
func (p *ULProcessor) DeleteGameByIndex(ulDir string, index int) error {
	return p.deleteGame(ulDir, func(c *Catalog) error {
		return c.DeleteGameByIndex(index)
	})
}

func (p *ULProcessor) deleteGame(ulDir string, remove func(*Catalog) error) error {
	path := CatalogPath(ulDir)
	catalog, err := LoadCatalog(path, p.options...)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	if err := remove(catalog); err != nil {
		return err
	}

	if err := catalog.Save(path); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}

	common.LogInfo(common.InfoCatalogSaved, catalog.Len(), path)
	return nil
}

// ListGames loads ulDir's catalog and renders it to writer in format
func (p *ULProcessor) ListGames(writer io.Writer, ulDir, format string) (*Catalog, error) {
	path := CatalogPath(ulDir)
	catalog, err := LoadCatalog(path, p.options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	switch format {
	case common.ListFormatYAML:
		err = p.ExportYAML(writer, catalog.Games())
	case common.ListFormatTable, "":
		err = p.ExportTable(writer, catalog.Games())
	default:
		err = common.Errorf(common.KindInvalidInput, "list", common.ErrUnsupportedListingFormat, format)
	}
	if err != nil {
		return nil, err
	}

	return catalog, nil
}
