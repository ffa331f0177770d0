package storage

import (
	"net/http"
	"os"

	"github.com/spf13/afero"
)

// NewMediaFileSystem exposes fs for static serving. Directories are reported
// as missing so the media tree cannot be listed.
func NewMediaFileSystem(fs afero.Fs) http.FileSystem {
	return filesOnly{afero.NewHttpFs(fs).Dir("")}
}

type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, os.ErrNotExist
	}

	return file, nil
}
