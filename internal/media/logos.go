package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/angelmondragon/coilbill-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/coilbill-backend/pkg/errors"
	"github.com/angelmondragon/coilbill-backend/pkg/logger"
	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	// PublicPrefix is the URL path the upload directory is served under.
	PublicPrefix = "/uploads"
	logosDir     = "logos"
)

// LogoStore writes brand logos to local disk. Writes are synchronous; a failed
// brand save removes its logo on a best-effort basis only.
type LogoStore struct {
	root     string
	maxBytes int64
	maxWidth int
	logg     *logger.Logger
	now      func() time.Time
}

// NewLogoStore prepares <UploadDir>/logos.
func NewLogoStore(cfg config.MediaConfig, logg *logger.Logger) (*LogoStore, error) {
	root := strings.TrimSpace(cfg.UploadDir)
	if root == "" {
		return nil, fmt.Errorf("upload dir required")
	}
	if err := os.MkdirAll(filepath.Join(root, logosDir), 0o755); err != nil {
		return nil, fmt.Errorf("create logo dir: %w", err)
	}
	return &LogoStore{
		root:     root,
		maxBytes: cfg.MaxUploadBytes(),
		maxWidth: cfg.LogoMaxWidth,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// Root is the directory served at PublicPrefix.
func (s *LogoStore) Root() string {
	return s.root
}

// Save stores an image and returns its public path, e.g. /uploads/logos/1718000000000-1a2b3c4d.png.
// The extension always comes from the sniffed content, never from filename.
func (s *LogoStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "could not read logo upload")
	}
	if int64(len(data)) > s.maxBytes {
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("logo exceeds %d bytes", s.maxBytes))
	}
	if len(data) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "logo file is empty")
	}

	detected := mimetype.Detect(data)
	ext := detected.Extension()
	if !isImage(detected) || detected.Is("image/svg+xml") || ext == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "Only image files are allowed!").
			WithDetails(map[string]any{"mimeType": detected.String(), "filename": filepath.Base(filename)})
	}

	data = s.downscale(ctx, data, ext)

	name := fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), uuid.NewString()[:8], ext)
	full := filepath.Join(s.root, logosDir, name)
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write logo")
	}
	return path.Join(PublicPrefix, logosDir, name), nil
}

// Remove deletes a previously saved logo. Paths outside the logo dir are ignored.
func (s *LogoStore) Remove(publicPath string) {
	prefix := path.Join(PublicPrefix, logosDir) + "/"
	if !strings.HasPrefix(publicPath, prefix) {
		return
	}
	name := path.Base(publicPath)
	if name == "." || name == "/" || strings.Contains(name, "..") {
		return
	}
	_ = os.Remove(filepath.Join(s.root, logosDir, name))
}

// downscale shrinks raster logos wider than maxWidth. Formats imaging cannot
// decode (svg, webp) are stored untouched.
func (s *LogoStore) downscale(ctx context.Context, data []byte, ext string) []byte {
	if s.maxWidth <= 0 {
		return data
	}
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return data
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return data
	}
	if img.Bounds().Dx() <= s.maxWidth {
		return data
	}

	resized := imaging.Resize(img, s.maxWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "logo downscale failed, keeping original")
		}
		return data
	}
	return buf.Bytes()
}

func isImage(m *mimetype.MIME) bool {
	for cur := m; cur != nil; cur = cur.Parent() {
		if strings.HasPrefix(cur.String(), "image/") {
			return true
		}
	}
	return false
}
