package render

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
)

// Digest returns the hex sha256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// WriteFile writes data to path atomically (temp file + rename in the same
// directory). With skipUnchanged, an existing file holding identical bytes is
// left alone and changed is false.
func WriteFile(path string, data []byte, skipUnchanged bool) (changed bool, err error) {
	if skipUnchanged {
		if existing, rerr := os.ReadFile(path); rerr == nil && bytes.Equal(existing, data) {
			return false, nil
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fsError(err, "create output directory", dir)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return false, fsError(err, "create temp file", dir)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return false, fsError(err, "write temp file", tmpName)
	}
	if err = tmp.Close(); err != nil {
		return false, fsError(err, "close temp file", tmpName)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return false, fsError(err, "chmod temp file", tmpName)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return false, fsError(err, "rename into place", path)
	}
	return true, nil
}

func fsError(err error, msg, path string) error {
	return ferrors.WrapError(err, ferrors.CategoryFileSystem, msg).WithContext("path", path).Build()
}
