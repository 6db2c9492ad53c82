// Package export opens WhatsApp chat exports. An export can arrive as a .zip
// archive, an already-extracted directory, or a bare chat .txt; all three end
// up as an Archive with a chat file and an attachment lookup over the files
// next to it.
package export

import (
	"archive/zip"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxEntrySize caps a single extracted zip entry. Chat exports are small;
// anything past this is a bomb.
const maxEntrySize = 1 << 30

type Archive struct {
	// SourcePath is what the user pointed at: zip, directory, or txt.
	SourcePath string
	// Root is the directory the attachments live in.
	Root string

	chatFile    string
	md5sum      string
	entryCount  int
	ownsRoot    bool
	keepExtract bool
	normalized  map[string]string
	log         *zap.Logger
}

type OpenOption func(*Archive)

func WithLogger(log *zap.Logger) OpenOption {
	return func(a *Archive) { a.log = log }
}

// KeepExtracted leaves the temporary extraction directory in place on Close.
func KeepExtracted() OpenOption {
	return func(a *Archive) { a.keepExtract = true }
}

// Open inspects path and prepares the export for parsing. Zip archives are
// extracted to a temporary directory that Close removes again.
func Open(path string, opts ...OpenOption) (*Archive, error) {
	a := &Archive{SourcePath: path, log: zap.NewNop()}
	for _, o := range opts {
		o(a)
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat export: %w", err)
	}
	switch {
	case fi.IsDir():
		a.Root = path
	case strings.EqualFold(filepath.Ext(path), ".zip"):
		if err := a.extract(path); err != nil {
			a.Close()
			return nil, err
		}
	case strings.EqualFold(filepath.Ext(path), ".txt"):
		a.Root = filepath.Dir(path)
		a.chatFile = path
	default:
		return nil, fmt.Errorf("unsupported export %q: want zip, directory, or txt", path)
	}

	if a.chatFile == "" {
		chat, err := findChatFile(a.Root)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.chatFile = chat
	}
	if a.md5sum == "" {
		sum, err := fileMD5(a.chatFile)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.md5sum = sum
	}
	if err := a.buildIndex(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *Archive) extract(zipPath string) error {
	sum, err := fileMD5(zipPath)
	if err != nil {
		return err
	}
	a.md5sum = sum

	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("open zip: %w", err)
	}
	defer zr.Close()

	dest, err := os.MkdirTemp("", "waex-*")
	if err != nil {
		return fmt.Errorf("extract dir: %w", err)
	}
	a.Root = dest
	a.ownsRoot = true
	a.entryCount = len(zr.File)

	for _, f := range zr.File {
		if err := extractEntry(dest, f, maxEntrySize); err != nil {
			return fmt.Errorf("extract %s: %w", f.Name, err)
		}
	}
	a.log.Debug("extracted export",
		zap.String("zip", zipPath), zap.String("dest", dest), zap.Int("entries", len(zr.File)))
	return nil
}

func extractEntry(dest string, f *zip.File, limit int64) error {
	// reject entries that would escape the destination
	target := filepath.Join(dest, f.Name)
	if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
		return fmt.Errorf("illegal path %q", f.Name)
	}
	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer dst.Close()

	n, err := io.Copy(dst, io.LimitReader(src, limit+1))
	if err != nil {
		return err
	}
	if n > limit {
		return fmt.Errorf("entry %q exceeds %d bytes", f.Name, limit)
	}
	return nil
}

// findChatFile picks the chat transcript inside the export: "_chat.txt"
// first, then "<dirname>.txt", then the first .txt that is not an AppleDouble
// leftover.
func findChatFile(root string) (string, error) {
	if p := filepath.Join(root, "_chat.txt"); fileExists(p) {
		return p, nil
	}
	if p := filepath.Join(root, filepath.Base(root)+".txt"); fileExists(p) {
		return p, nil
	}
	var txts []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if !d.IsDir() && strings.EqualFold(filepath.Ext(name), ".txt") && !strings.HasPrefix(name, "._") {
			txts = append(txts, path)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("scan export: %w", err)
	}
	if len(txts) == 0 {
		return "", fmt.Errorf("no chat file under %s", root)
	}
	sort.Strings(txts)
	return txts[0], nil
}

// buildIndex maps normalized filenames to paths so names mangled by the
// export (spaces, case, unicode punctuation) still resolve.
func (a *Archive) buildIndex() error {
	a.normalized = make(map[string]string)
	return filepath.WalkDir(a.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		key := normalizeName(d.Name())
		if _, dup := a.normalized[key]; !dup {
			a.normalized[key] = path
		}
		return nil
	})
}

// FindAttachment resolves a filename from a chat line to a file in the
// export. Exact basename match is tried before the normalized form.
func (a *Archive) FindAttachment(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if p := filepath.Join(a.Root, name); fileExists(p) {
		return p, true
	}
	if p, ok := a.normalized[normalizeName(name)]; ok {
		return p, true
	}
	return "", false
}

// normalizeName lowercases and strips everything but ASCII letters, digits,
// dot, dash, and underscore.
func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ChatFile returns the transcript path inside the export.
func (a *Archive) ChatFile() string { return a.chatFile }

// MD5 is the checksum identifying this export: of the zip when the export
// came as one, otherwise of the chat file.
func (a *Archive) MD5() string { return a.md5sum }

// Info describes the export for display.
type Info struct {
	Name      string
	SizeBytes int64
	ModTime   time.Time
	MD5       string
	Files     int
}

func (a *Archive) Info() (Info, error) {
	fi, err := os.Stat(a.SourcePath)
	if err != nil {
		return Info{}, fmt.Errorf("stat export: %w", err)
	}
	files := a.entryCount
	if files == 0 {
		files = len(a.normalized)
	}
	return Info{
		Name:      filepath.Base(a.SourcePath),
		SizeBytes: fi.Size(),
		ModTime:   fi.ModTime(),
		MD5:       a.md5sum,
		Files:     files,
	}, nil
}

// Close removes the temporary extraction directory unless the archive was
// opened with KeepExtracted or never owned one.
func (a *Archive) Close() error {
	if !a.ownsRoot || a.keepExtract || a.Root == "" {
		return nil
	}
	return os.RemoveAll(a.Root)
}

func fileMD5(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("checksum %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("checksum %s: %w", filepath.Base(path), err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
