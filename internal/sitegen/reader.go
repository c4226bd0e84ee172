package sitegen

import (
	"fmt"
	"io"
	"io/fs"
)

// ReadSource returns the full contents of name. The length is measured by
// seeking to the end and back when the file supports it, and taken from Stat
// otherwise; exactly that many bytes are read.
func ReadSource(fsys fs.FS, name string) ([]byte, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	size, err := measure(f)
	if err != nil {
		return nil, fmt.Errorf("measure %s: %w", name, err)
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func measure(f fs.File) (int64, error) {
	if seeker, ok := f.(io.Seeker); ok {
		end, err := seeker.Seek(0, io.SeekEnd)
		if err != nil {
			return 0, err
		}
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return 0, err
		}
		return end, nil
	}
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
