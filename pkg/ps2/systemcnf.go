package ps2

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	"github.com/hansbonini/ulmake/pkg/common"
)

// SystemCNFPath is the boot descriptor every PlayStation disc carries at its root
const SystemCNFPath = "/SYSTEM.CNF"

// maxSystemCNFSize bounds the descriptor read; real files are a few dozen bytes
const maxSystemCNFSize = 64 * 1024

// bootLinePattern matches "BOOT2 = cdrom0:\SLUS_200.62;1" and its variants:
// the device may be followed by backslash separated directories or by the name
// directly, and the ";N" revision is optional.
var bootLinePattern = regexp.MustCompile(`^[^=]+=\s*[^:\\]+:\\*(?:[^\\;]*\\)*([^:\\;\s]+)(?:;\d+)?\s*$`)

// SerialFromImage opens a disc image and returns the serial named by its SYSTEM.CNF.
func SerialFromImage(path string) (string, error) {
	content, err := ReadSystemCNF(path)
	if err != nil {
		return "", err
	}

	serial, err := ParseBootLine(firstLine(content))
	if err != nil {
		return "", common.NewError(common.KindNotFound, "read serial", path, err)
	}
	return serial, nil
}

// ReadSystemCNF returns the raw content of the image's boot descriptor.
func ReadSystemCNF(path string) ([]byte, error) {
	reader, err := NewCDReader(path)
	if err != nil {
		return nil, common.NewError(common.KindIO, "open image", path, err)
	}
	defer reader.Close()

	entry, found, err := reader.FindFile(SystemCNFPath)
	if err != nil {
		return nil, common.NewError(common.KindInvalidData, "read image", path,
			common.FormatError(common.ErrFailedToReadDescriptor, err))
	}
	if !found {
		return nil, common.NewError(common.KindNotFound, "read image", path,
			common.FormatError(common.ErrFailedToReadSystemCNF, common.ErrNotFound))
	}

	content, err := reader.ReadFile(entry, maxSystemCNFSize)
	if err != nil {
		return nil, common.NewError(common.KindInvalidData, "read image", path,
			common.FormatError(common.ErrFailedToReadSystemCNF, err))
	}
	return content, nil
}

// ParseBootLine extracts the executable name, which is the disc serial, from a boot line.
func ParseBootLine(line string) (string, error) {
	common.LogDebug(common.DebugBootLine, line)

	match := bootLinePattern.FindStringSubmatch(strings.TrimSpace(line))
	if match == nil {
		return "", common.Errorf(common.KindNotFound, "parse boot line", common.ErrNoBootLine, line)
	}
	return match[1], nil
}

func firstLine(content []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	if scanner.Scan() {
		return strings.TrimRight(scanner.Text(), "\r\x00")
	}
	return ""
}
