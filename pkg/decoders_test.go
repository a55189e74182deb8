// Package pkg provides tests for ul.cfg record decoders
package pkg

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hansbonini/ulmake/pkg/common"
)

func rawRecord(name, serial string, chunks byte) []byte {
	buffer := make([]byte, RecordSize)
	copy(buffer[0:32], name)
	copy(buffer[32:35], "ul.")
	copy(buffer[35:47], serial)
	buffer[47] = chunks
	buffer[48] = 0x14
	buffer[53] = 0x08
	return buffer
}

func TestNewRecordDecoder(t *testing.T) {
	decoder := NewRecordDecoder(true)
	if decoder == nil {
		t.Fatal("NewRecordDecoder() returned nil")
	}
	if !decoder.Strict {
		t.Error("NewRecordDecoder(true).Strict = false, want true")
	}
}

func TestULRecordDecoder_DecodeRecord(t *testing.T) {
	decoder := NewRecordDecoder(false)

	record, err := decoder.DecodeRecord(rawRecord("Foo", "SLUS_200.62", 3))
	if err != nil {
		t.Fatalf("DecodeRecord() error = %v", err)
	}
	if record.Name != "Foo" {
		t.Errorf("Name = %q, want %q", record.Name, "Foo")
	}
	if record.Serial != "SLUS_200.62" {
		t.Errorf("Serial = %q, want %q", record.Serial, "SLUS_200.62")
	}
	if record.Chunks != 3 {
		t.Errorf("Chunks = %d, want 3", record.Chunks)
	}
}

func TestULRecordDecoder_DecodeRecord_FullWidthFields(t *testing.T) {
	decoder := NewRecordDecoder(false)
	name := "ABCDEFGHIJKLMNOPQRSTUVWXYZ012345"
	serial := "SCES_123.456"

	record, err := decoder.DecodeRecord(rawRecord(name, serial, 1))
	if err != nil {
		t.Fatalf("DecodeRecord() error = %v", err)
	}
	if record.Name != name {
		t.Errorf("Name = %q, want %q", record.Name, name)
	}
	if record.Serial != serial {
		t.Errorf("Serial = %q, want %q", record.Serial, serial)
	}
}

func TestULRecordDecoder_DecodeRecord_Short(t *testing.T) {
	decoder := NewRecordDecoder(false)

	_, err := decoder.DecodeRecord(make([]byte, RecordSize-1))
	if !errors.Is(err, common.ErrInvalidData) {
		t.Errorf("DecodeRecord() error = %v, want invalid data", err)
	}
}

func TestULRecordDecoder_Decode(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		strict   bool
		want     []string
		wantKind common.ErrorKind
		wantErr  bool
	}{
		{
			name: "empty",
			data: nil,
			want: nil,
		},
		{
			name: "two records",
			data: append(rawRecord("One", "SLUS_000.01", 1), rawRecord("Two", "SLUS_000.02", 2)...),
			want: []string{"One", "Two"},
		},
		{
			name: "trailing bytes dropped",
			data: append(rawRecord("One", "SLUS_000.01", 1), make([]byte, 10)...),
			want: []string{"One"},
		},
		{
			name:     "trailing bytes rejected in strict mode",
			data:     append(rawRecord("One", "SLUS_000.01", 1), make([]byte, 10)...),
			strict:   true,
			wantErr:  true,
			wantKind: common.KindInvalidData,
		},
		{
			name:   "exact multiple accepted in strict mode",
			data:   rawRecord("One", "SLUS_000.01", 1),
			strict: true,
			want:   []string{"One"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			common.SetLogOutput(&logs)
			defer common.SetLogOutput(&bytes.Buffer{})

			records, err := NewRecordDecoder(tt.strict).Decode(bytes.NewReader(tt.data))
			if tt.wantErr {
				if err == nil {
					t.Fatal("Decode() expected error, got nil")
				}
				if kind := common.KindOf(err); kind != tt.wantKind {
					t.Errorf("KindOf() = %v, want %v", kind, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			if len(records) != len(tt.want) {
				t.Fatalf("Decode() returned %d records, want %d", len(records), len(tt.want))
			}
			for i, name := range tt.want {
				if records[i].Name != name {
					t.Errorf("records[%d].Name = %q, want %q", i, records[i].Name, name)
				}
			}
		})
	}
}
