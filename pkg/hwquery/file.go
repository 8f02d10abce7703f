package hwquery

import (
	"context"
	"fmt"
	"os"

	"github.com/metalkit/netrecon/pkg/nicview"
)

// FileSource reads a saved inventory dump from disk, for fixtures and
// air-gapped runs.
type FileSource struct {
	Path string
}

func (f *FileSource) load() (*dump, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot read inventory dump %s: %w", f.Path, err)
	}
	d, err := parseDump(data)
	if err != nil {
		return nil, fmt.Errorf("cannot decode inventory dump %s: %w", f.Path, err)
	}
	return d, nil
}

// NicView returns the raw port records of the dump.
func (f *FileSource) NicView(_ context.Context) ([]nicview.PortRecord, error) {
	d, err := f.load()
	if err != nil {
		return nil, err
	}
	return d.NicView, nil
}

// BIOSEnumeration returns the BIOS enumeration records of the dump, possibly
// empty.
func (f *FileSource) BIOSEnumeration(_ context.Context) (nicview.BIOSInfo, error) {
	d, err := f.load()
	if err != nil {
		return nil, err
	}
	if d.BIOSEnumeration == nil {
		return nicview.BIOSInfo{}, nil
	}
	return d.BIOSEnumeration, nil
}
