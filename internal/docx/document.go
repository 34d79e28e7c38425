// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx reads, edits and writes WordprocessingML (.docx) packages.
//
// A Document keeps every package part in memory. Only the body of the main
// document part is edited: its top-level children are held as an ordered
// list of raw XML fragments that can be removed or appended to. All other
// parts (styles, numbering, headers, media) are written back byte-for-byte.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"
)

const (
	relsPart           = "_rels/.rels"
	defaultDocument    = "word/document.xml"
	officeDocumentType = "/officeDocument"
)

var (
	// ErrNoDocument is returned when a package has no main document part.
	ErrNoDocument = errors.New("package has no main document part")
	// ErrNoBody is returned when the main document part has no w:body element.
	ErrNoBody = errors.New("document has no body")
)

// part is one file of the package.
type part struct {
	name     string
	method   uint16
	modified time.Time
	data     []byte
}

// Document is an in-memory .docx package.
type Document struct {
	parts   []*part
	docPart *part

	// prefix holds document.xml up to and including the w:body start tag,
	// suffix the w:body end tag and everything after it.
	prefix, suffix []byte
	body           []*Element
}

// Open reads the .docx package at path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return doc, nil
}

// Read reads a .docx package from r.
func Read(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("reading zip: %w", err)
	}

	doc := &Document{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening part %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading part %s: %w", f.Name, err)
		}
		doc.parts = append(doc.parts, &part{
			name:     f.Name,
			method:   f.Method,
			modified: f.Modified,
			data:     data,
		})
	}

	name := doc.mainDocumentName()
	for _, p := range doc.parts {
		if p.name == name {
			doc.docPart = p
			break
		}
	}
	if doc.docPart == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrNoDocument)
	}

	doc.prefix, doc.body, doc.suffix, err = splitBody(doc.docPart.data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return doc, nil
}

// mainDocumentName resolves the officeDocument relationship of the package,
// falling back to word/document.xml.
func (d *Document) mainDocumentName() string {
	var rels struct {
		Relationships []struct {
			Type   string `xml:"Type,attr"`
			Target string `xml:"Target,attr"`
		} `xml:"Relationship"`
	}
	for _, p := range d.parts {
		if p.name != relsPart {
			continue
		}
		if err := xml.Unmarshal(p.data, &rels); err != nil {
			return defaultDocument
		}
		for _, rel := range rels.Relationships {
			if strings.HasSuffix(rel.Type, officeDocumentType) {
				return strings.TrimPrefix(path.Clean("/"+rel.Target), "/")
			}
		}
	}
	return defaultDocument
}

// Save writes the package to path, replacing any existing file.
func (d *Document) Save(path string) error {
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Write encodes the package to w.
func (d *Document) Write(w io.Writer) error {
	d.docPart.data = d.documentXML()

	zw := zip.NewWriter(w)
	for _, p := range d.parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   p.method,
			Modified: p.modified,
		})
		if err != nil {
			return fmt.Errorf("creating part %s: %w", p.name, err)
		}
		if _, err := fw.Write(p.data); err != nil {
			return fmt.Errorf("writing part %s: %w", p.name, err)
		}
	}
	return zw.Close()
}

func (d *Document) documentXML() []byte {
	var buf bytes.Buffer
	buf.Write(d.prefix)
	for _, el := range d.body {
		buf.Write(el.raw)
	}
	buf.Write(d.suffix)
	return buf.Bytes()
}
