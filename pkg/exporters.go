// This file contains exporters rendering catalog listings as text tables and YAML.
package pkg

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hansbonini/ulmake/pkg/common"
	"gopkg.in/yaml.v3"
)

// SerialNotFound is shown for entries whose serial cannot be determined
const SerialNotFound = "NOT FOUND"

var listingHeaders = []string{"Index", "Name", "Serial", "Chunks", "Size", "Status"}

// GameListing is one listed catalog entry
type GameListing struct {
	Index  int    `yaml:"index"`
	Name   string `yaml:"name"`
	Hash   string `yaml:"hash"`
	Serial string `yaml:"serial"`
	Chunks int    `yaml:"chunks"`
	Size   string `yaml:"size"`
	Status string `yaml:"status"`
}

// CatalogListing is the YAML document written by ExportYAML
type CatalogListing struct {
	TotalGames int           `yaml:"total_games"`
	Games      []GameListing `yaml:"games"`
}

// ULCatalogExporter implements the CatalogExporter interface
type ULCatalogExporter struct{}

var _ CatalogExporter = (*ULCatalogExporter)(nil)

// NewCatalogExporter creates a new catalog exporter instance
func NewCatalogExporter() *ULCatalogExporter {
	return &ULCatalogExporter{}
}

// Listings converts games into their listed form, indexed by catalog position
func (e *ULCatalogExporter) Listings(games []*Game) []GameListing {
	listings := make([]GameListing, 0, len(games))
	for i, game := range games {
		serial, err := game.Serial()
		if err != nil {
			serial = SerialNotFound
		}
		listings = append(listings, GameListing{
			Index:  i,
			Name:   game.Name,
			Hash:   game.NameHash(),
			Serial: serial,
			Chunks: game.NumChunks(),
			Size:   game.FormattedSize(),
			Status: game.Status.String(),
		})
	}
	return listings
}

// ExportTable writes a bordered table with one row per game
func (e *ULCatalogExporter) ExportTable(writer io.Writer, games []*Game) error {
	rows := make([][]string, 0, len(games))
	for _, listing := range e.Listings(games) {
		rows = append(rows, []string{
			strconv.Itoa(listing.Index),
			listing.Name,
			listing.Serial,
			strconv.Itoa(listing.Chunks),
			listing.Size,
			listing.Status,
		})
	}

	widths := columnWidths(listingHeaders, rows)
	var sb strings.Builder
	sb.WriteString(horizontalLine(widths))
	sb.WriteString(tableRow(listingHeaders, widths))
	sb.WriteString(horizontalLine(widths))
	for _, row := range rows {
		sb.WriteString(tableRow(row, widths))
	}
	sb.WriteString(horizontalLine(widths))

	if _, err := io.WriteString(writer, sb.String()); err != nil {
		return common.FormatError(common.ErrFailedToExportCatalog, err)
	}
	return nil
}

// ExportYAML writes the listing as a YAML document
func (e *ULCatalogExporter) ExportYAML(writer io.Writer, games []*Game) error {
	listing := CatalogListing{
		TotalGames: len(games),
		Games:      e.Listings(games),
	}

	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)

	if err := encoder.Encode(listing); err != nil {
		return common.FormatError(common.ErrFailedToExportCatalog, err)
	}
	if err := encoder.Close(); err != nil {
		return common.FormatError(common.ErrFailedToExportCatalog, err)
	}
	return nil
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = utf8.RuneCountInString(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

func horizontalLine(widths []int) string {
	var sb strings.Builder
	sb.WriteString("+")
	for _, width := range widths {
		sb.WriteString(strings.Repeat("-", width+2))
		sb.WriteString("+")
	}
	sb.WriteString("\n")
	return sb.String()
}

func tableRow(cells []string, widths []int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for i, cell := range cells {
		pad := widths[i] - utf8.RuneCountInString(cell)
		fmt.Fprintf(&sb, " %s%s |", cell, strings.Repeat(" ", pad))
	}
	sb.WriteString("\n")
	return sb.String()
}
