package event

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

type blobUploader interface {
	UploadEventsFile(ctx context.Context, name string, contents []byte) error
}

// ProcessFile validates an events JSON file and uploads it to the events
// container under its base name.
func ProcessFile(ctx context.Context, fs afero.Fs, path string, uploader blobUploader) error {
	contents, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := ValidateJSON(contents); err != nil {
		return err
	}
	if err := uploader.UploadEventsFile(ctx, filepath.Base(path), contents); err != nil {
		return fmt.Errorf("uploading %s: %w", path, err)
	}
	return nil
}
