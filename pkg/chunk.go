package pkg

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hansbonini/ulmake/pkg/common"
	"github.com/hansbonini/ulmake/pkg/ps2"
)

// ImageChunk is a whole, unsplit disc image
type ImageChunk struct {
	path   string
	serial string
}

// NewImageChunk creates a chunk for the image at path
func NewImageChunk(path string) *ImageChunk {
	return &ImageChunk{path: path}
}

// Serial reads the serial from the image's SYSTEM.CNF. The image is parsed once.
func (c *ImageChunk) Serial() (string, error) {
	if c.serial != "" {
		return c.serial, nil
	}
	serial, err := ps2.SerialFromImage(c.path)
	if err != nil {
		return "", err
	}
	c.serial = serial
	return serial, nil
}

func (c *ImageChunk) Size() (uint64, error) {
	return fileSize(c.path)
}

func (c *ImageChunk) Path() string {
	return c.path
}

// FragmentChunk is one ul.<hash>.<serial>.0<k> file
type FragmentChunk struct {
	path string
}

// NewFragmentChunk creates a chunk for the fragment at path
func NewFragmentChunk(path string) *FragmentChunk {
	return &FragmentChunk{path: path}
}

// Serial is taken from the fragment name, the image is never opened
func (c *FragmentChunk) Serial() (string, error) {
	name := filepath.Base(c.path)
	segments := strings.Split(name, ".")
	if len(segments) != FragmentSegments {
		return "", common.NewError(common.KindInvalidData, "fragment serial", c.path,
			fmt.Errorf(common.ErrMalformedFragmentName, name, len(segments), FragmentSegments))
	}
	return segments[2] + "." + segments[3], nil
}

func (c *FragmentChunk) Size() (uint64, error) {
	return fileSize(c.path)
}

func (c *FragmentChunk) Path() string {
	return c.path
}

// FragmentName returns the file name of fragment index for a game
func FragmentName(hash, serial string, index int) string {
	return fmt.Sprintf("%s.%s.%s.%02d", FragmentPrefix, hash, serial, index)
}

// ListFragments returns the names of files in dir that belong to hash, sorted by name
// and therefore by fragment index.
func ListFragments(dir, hash string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, common.NewError(common.KindIO, "list fragments", dir,
			common.FormatError(common.ErrFailedToListFragments, err))
	}

	var fragments []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.Contains(entry.Name(), hash) {
			continue
		}
		common.LogDebug(common.DebugFragmentFound, entry.Name(), hash)
		fragments = append(fragments, entry.Name())
	}

	if len(fragments) == 0 {
		return nil, common.Errorf(common.KindNotFound, "list fragments", common.ErrNoFragmentsFound, hash)
	}

	sort.Strings(fragments)
	return fragments, nil
}

func fileSize(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return common.SafeInt64ToUint64(info.Size())
}
