package pkg

import (
	"fmt"
	"io"

	"github.com/hansbonini/ulmake/pkg/common"
)

// ULRecordEncoder implements the RecordEncoder interface
type ULRecordEncoder struct{}

var _ RecordEncoder = (*ULRecordEncoder)(nil)

// NewRecordEncoder creates a new ul.cfg encoder instance
func NewRecordEncoder() *ULRecordEncoder {
	return &ULRecordEncoder{}
}

// Encode writes all records in order with a single write
func (e *ULRecordEncoder) Encode(writer io.Writer, records []CatalogRecord) error {
	buffer := make([]byte, 0, len(records)*RecordSize)

	for i := range records {
		data, err := e.EncodeRecord(&records[i])
		if err != nil {
			return fmt.Errorf("%s %d: %w", common.ErrFailedToEncodeRecord, i, err)
		}
		buffer = append(buffer, data...)
	}

	if _, err := writer.Write(buffer); err != nil {
		return common.FormatError(common.ErrFailedToSaveCatalog, err)
	}
	return nil
}

// EncodeRecord builds the 64-byte representation of a record
func (e *ULRecordEncoder) EncodeRecord(record *CatalogRecord) ([]byte, error) {
	name, err := common.ComposeString(record.Name, MaxNameSize)
	if err != nil {
		return nil, common.Errorf(common.KindInvalidInput, "encode", common.ErrNameTooLong, MaxNameSize)
	}

	serial, err := common.ComposeString(record.Serial, MaxSerialSize)
	if err != nil {
		return nil, common.Errorf(common.KindInvalidData, "encode", common.ErrSerialTooLong, record.Serial, MaxSerialSize)
	}

	buffer := make([]byte, RecordSize)
	copy(buffer[RecordNameStart:RecordNameEnd], name)
	copy(buffer[RecordPrefixStart:RecordPrefixEnd], RecordPrefix)
	copy(buffer[RecordSerialStart:RecordSerialEnd], serial)
	buffer[RecordChunksAt] = record.Chunks
	buffer[RecordMediaAt] = MediaDVD
	buffer[RecordMagicAt] = RecordMagic
	// Bytes 49-52 and 54-63 stay zero

	return buffer, nil
}
