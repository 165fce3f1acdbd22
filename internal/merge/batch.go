package merge

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"time"
)

// Batch collects merged letters into one zip archive. A single counter,
// starting at the given number, numbers the entries in the order they are
// added across every hospital of the run.
type Batch struct {
	buf   bytes.Buffer
	zw    *zip.Writer
	next  int
	count int
	now   func() time.Time
}

// NewBatch starts an empty archive whose first entry is numbered start.
func NewBatch(start int) *Batch {
	b := &Batch{next: start, now: time.Now}
	b.zw = zip.NewWriter(&b.buf)
	return b
}

// Next is the number the next added entry receives. It is what a letter
// should print as its sequence number before being added.
func (b *Batch) Next() int { return b.next }

// Add stores doc as "{n} {specialty} {fullName}.docx", advances the counter
// and returns the entry name.
func (b *Batch) Add(specialty, fullName string, doc []byte) (string, error) {
	name := EntryName(b.next, specialty, fullName)
	w, err := b.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: b.now(),
	})
	if err != nil {
		return "", fmt.Errorf("create entry %q: %w", name, err)
	}
	if _, err := w.Write(doc); err != nil {
		return "", fmt.Errorf("write entry %q: %w", name, err)
	}
	b.next++
	b.count++
	return name, nil
}

// Count is the number of entries added so far.
func (b *Batch) Count() int { return b.count }

// Close finishes the archive and returns its bytes.
func (b *Batch) Close() ([]byte, error) {
	if err := b.zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return b.buf.Bytes(), nil
}

// EntryName sanitizes path separators out of the display parts.
func EntryName(n int, specialty, fullName string) string {
	clean := strings.NewReplacer("/", "-", `\`, "-")
	return fmt.Sprintf("%d %s %s.docx", n, clean.Replace(specialty), clean.Replace(fullName))
}
