// Package merge fills DOCX letter templates and packages merged letters into
// numbered zip archives.
package merge

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
)

// ErrInvalidTemplate is returned for bytes that are not a DOCX document.
var ErrInvalidTemplate = errors.New("invalid template document")

var (
	mergedPart = regexp.MustCompile(`^word/(document|header[0-9]*|footer[0-9]*)\.xml$`)
	placeRe    = regexp.MustCompile(`\{([^{}]+)\}`)
)

// Merge replaces every {dot.path} placeholder of the template with its value
// in fields and returns the new document. Placeholders may span several runs
// of a paragraph; the value lands in the run where the placeholder starts.
// Keys absent from fields render as empty text.
func Merge(template []byte, fields map[string]string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(template), int64(len(template)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	found := false
	for _, f := range zr.File {
		if !mergedPart.MatchString(f.Name) {
			if err := zw.Copy(f); err != nil {
				return nil, fmt.Errorf("copy %s: %w", f.Name, err)
			}
			continue
		}
		if f.Name == "word/document.xml" {
			found = true
		}
		part, err := readPart(f)
		if err != nil {
			return nil, err
		}
		merged, err := mergePart(part, fields)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTemplate, f.Name, err)
		}
		hdr := f.FileHeader
		hdr.Method = zip.Deflate
		w, err := zw.CreateHeader(&hdr)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", f.Name, err)
		}
		if _, err := w.Write(merged); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.Name, err)
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: word/document.xml missing", ErrInvalidTemplate)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close document: %w", err)
	}
	return out.Bytes(), nil
}

func readPart(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	return b, nil
}

// textNode is one w:t element of a part, located by byte offsets.
// [tagStart, tagEnd) is the start tag and [tagEnd, end) the raw content.
type textNode struct {
	tagStart, tagEnd, end int
	selfClosing           bool
	text                  string
}

type edit struct {
	start, end int
	text       string
}

func isW(n xml.Name, local string) bool {
	return n.Space == "w" && n.Local == local
}

// mergePart walks the tokens of an XML part and rewrites only the content of
// the w:t elements whose text changes. Everything else is copied byte for
// byte, so namespaces and markup the decoder would normalize stay intact.
func mergePart(part []byte, fields map[string]string) ([]byte, error) {
	d := xml.NewDecoder(bytes.NewReader(part))
	var (
		edits      []edit
		paragraphs [][]*textNode
		cur        *textNode
	)
	for {
		pos := int(d.InputOffset())
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		end := int(d.InputOffset())

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case isW(t.Name, "p"):
				paragraphs = append(paragraphs, nil)
			case isW(t.Name, "t") && len(paragraphs) > 0:
				cur = &textNode{tagStart: pos, tagEnd: end, end: end, selfClosing: bytes.HasSuffix(part[pos:end], []byte("/>"))}
				last := len(paragraphs) - 1
				paragraphs[last] = append(paragraphs[last], cur)
			}
		case xml.CharData:
			if cur != nil {
				cur.text += string(t)
			}
		case xml.EndElement:
			switch {
			case isW(t.Name, "t"):
				if cur != nil && !cur.selfClosing {
					cur.end = pos
				}
				cur = nil
			case isW(t.Name, "p") && len(paragraphs) > 0:
				last := len(paragraphs) - 1
				edits = append(edits, mergeParagraph(part, paragraphs[last], fields)...)
				paragraphs = paragraphs[:last]
			}
		}
	}
	if len(edits) == 0 {
		return part, nil
	}

	sort.Slice(edits, func(i, j int) bool { return edits[i].start < edits[j].start })
	var out bytes.Buffer
	out.Grow(len(part))
	last := 0
	for _, e := range edits {
		out.Write(part[last:e.start])
		out.WriteString(e.text)
		last = e.end
	}
	out.Write(part[last:])
	return out.Bytes(), nil
}

// mergeParagraph replaces the placeholders found in the joined text of a
// paragraph. A value lands in the node where its placeholder starts; the
// remaining placeholder characters are removed from the following nodes.
func mergeParagraph(part []byte, nodes []*textNode, fields map[string]string) []edit {
	if len(nodes) == 0 {
		return nil
	}
	var joined strings.Builder
	owner := make([]int, 0, 64)
	for i, n := range nodes {
		joined.WriteString(n.text)
		for range len(n.text) {
			owner = append(owner, i)
		}
	}
	full := joined.String()
	matches := placeRe.FindAllStringSubmatchIndex(full, -1)
	if len(matches) == 0 {
		return nil
	}

	texts := make([]strings.Builder, len(nodes))
	m := 0
	for b := 0; b < len(full); b++ {
		if m < len(matches) && b == matches[m][0] {
			key := strings.TrimSpace(full[matches[m][2]:matches[m][3]])
			texts[owner[b]].WriteString(fields[key])
			b = matches[m][1] - 1
			m++
			continue
		}
		texts[owner[b]].WriteByte(full[b])
	}

	var edits []edit
	for i, n := range nodes {
		text := texts[i].String()
		if n.selfClosing || text == n.text {
			continue
		}
		tag := string(part[n.tagStart:n.tagEnd])
		if p := preserveSpace(tag); p != tag {
			edits = append(edits, edit{start: n.tagStart, end: n.tagEnd, text: p})
		}
		edits = append(edits, edit{start: n.tagEnd, end: n.end, text: escape(text)})
	}
	return edits
}

func preserveSpace(open string) string {
	if strings.Contains(open, "xml:space") {
		return open
	}
	return strings.TrimSuffix(open, ">") + ` xml:space="preserve">`
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(s string) string { return escaper.Replace(s) }
