package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/dmorgan81/rcgraphics/internal/log"
	"github.com/samber/do"
)

type UploadParams struct {
	Name        string
	Data        []byte
	ContentType string
	Metadata    map[string]string
}

type Uploader interface {
	Upload(context.Context, UploadParams) error
}

// Saved describes a file written by FileUploader.Save.
type Saved struct {
	Path string `json:"path" yaml:"path"`
	Size int64  `json:"size" yaml:"size"`
}

// Filename returns prefix-<unix millis>-<8 hex digits>.png.
func Filename(prefix string) string {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return fmt.Sprintf("%s-%d-%s.png", prefix, time.Now().UnixMilli(), hex.EncodeToString(b[:]))
}

var filenameRE = regexp.MustCompile(`^(.+)-(\d+)-([0-9a-f]{8})\.png$`)

// ParseFilename splits a name produced by Filename.
func ParseFilename(name string) (prefix string, created time.Time, ok bool) {
	m := filenameRE.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return "", time.Time{}, false
	}
	ms, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return "", time.Time{}, false
	}
	return m[1], time.UnixMilli(ms).UTC(), true
}

type FileUploader struct {
	// Mirror, when set, receives a copy of every saved file.
	Mirror *Mirror
}

func NewFileUploader(i *do.Injector) (*FileUploader, error) {
	mirror, err := do.Invoke[*Mirror](i)
	if err != nil {
		return &FileUploader{}, nil
	}
	return &FileUploader{Mirror: mirror}, nil
}

func (*FileUploader) Upload(ctx context.Context, params UploadParams) error {
	log := log.FromContextOrDiscard(ctx).WithGroup("file")
	log.Info("writing", "file", params.Name, "bytes", len(params.Data))
	return os.WriteFile(params.Name, params.Data, 0o644)
}

// Save writes data to a new uniquely named file in dir. The reported size is
// read back from the filesystem.
func (u *FileUploader) Save(ctx context.Context, dir, prefix string, data []byte) (Saved, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Saved{}, err
	}
	path, err := filepath.Abs(filepath.Join(dir, Filename(prefix)))
	if err != nil {
		return Saved{}, err
	}

	params := UploadParams{
		Name:        path,
		Data:        data,
		ContentType: "image/png",
		Metadata:    map[string]string{"prefix": prefix},
	}
	if err := u.Upload(ctx, params); err != nil {
		return Saved{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return Saved{}, err
	}

	if u.Mirror != nil {
		params.Name = filepath.Base(path)
		if err := u.Mirror.Publish(ctx, params); err != nil {
			log.FromContextOrDiscard(ctx).WithGroup("file").Warn("mirror failed", "file", path, "error", err)
		}
	}
	return Saved{Path: path, Size: info.Size()}, nil
}
