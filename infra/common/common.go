package common

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// GenerateHash digests every regular file under path into a single hex
// string, used to tag container images so a rebuild only happens when
// the source tree actually changed.
func GenerateHash(path string) (string, error) {
	h := sha256.New()

	err := filepath.Walk(path,
		func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() || info.Mode()&os.ModeSymlink == os.ModeSymlink {
				return nil
			}

			f, err := os.Open(p)
			if err != nil {
				return err
			}
			defer f.Close()

			io.WriteString(h, p)
			_, err = io.Copy(h, f)
			return err
		})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
