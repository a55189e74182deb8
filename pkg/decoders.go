package pkg

import (
	"errors"
	"fmt"
	"io"

	"github.com/hansbonini/ulmake/pkg/common"
)

// ULRecordDecoder implements the RecordDecoder interface
type ULRecordDecoder struct {
	// Strict rejects input whose length is not a multiple of RecordSize.
	// Otherwise the trailing partial record is dropped with a warning.
	Strict bool
}

var _ RecordDecoder = (*ULRecordDecoder)(nil)

// NewRecordDecoder creates a new ul.cfg decoder instance
func NewRecordDecoder(strict bool) *ULRecordDecoder {
	return &ULRecordDecoder{Strict: strict}
}

// Decode reads consecutive records until fewer than RecordSize bytes remain
func (d *ULRecordDecoder) Decode(reader io.Reader) ([]CatalogRecord, error) {
	var records []CatalogRecord
	buffer := make([]byte, RecordSize)

	for {
		n, err := io.ReadFull(reader, buffer)
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			if d.Strict {
				return nil, common.Errorf(common.KindInvalidData, "decode", common.ErrTrailingCatalogBytes, n)
			}
			common.LogWarn(common.WarnTrailingBytes, n, CatalogFileName)
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record %d: %w", len(records), err)
		}

		record, err := d.DecodeRecord(buffer)
		if err != nil {
			return nil, fmt.Errorf("%s %d: %w", common.ErrFailedToDecodeRecord, len(records), err)
		}
		common.LogDebug(common.DebugRecordDecoded, len(records), record.Name, record.Serial, record.Chunks)
		records = append(records, *record)
	}

	return records, nil
}

// DecodeRecord parses a single 64-byte record
func (d *ULRecordDecoder) DecodeRecord(buffer []byte) (*CatalogRecord, error) {
	if len(buffer) < RecordSize {
		return nil, common.Errorf(common.KindInvalidData, "decode",
			"record is %d bytes, want %d", len(buffer), RecordSize)
	}

	return &CatalogRecord{
		Name:   common.ParseString(buffer, RecordNameStart, RecordNameEnd),
		Serial: common.ParseString(buffer, RecordSerialStart, RecordSerialEnd),
		Chunks: buffer[RecordChunksAt],
	}, nil
}
