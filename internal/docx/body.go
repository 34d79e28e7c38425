// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"slices"
)

// ElementKind classifies a top-level body child.
type ElementKind int

const (
	KindOther ElementKind = iota
	KindParagraph
	KindTable
	KindSectionProperties
)

func (k ElementKind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindTable:
		return "table"
	case KindSectionProperties:
		return "sectPr"
	default:
		return "other"
	}
}

func kindOf(local string) ElementKind {
	switch local {
	case "p":
		return KindParagraph
	case "tbl":
		return KindTable
	case "sectPr":
		return KindSectionProperties
	default:
		return KindOther
	}
}

// Element is one top-level child of the document body, kept as its
// original XML fragment.
type Element struct {
	Kind ElementKind
	raw  []byte
}

// splitBody cuts document.xml into the bytes before the body content, the
// body's top-level children and the bytes after them. Whitespace between
// children is dropped.
func splitBody(data []byte) (prefix []byte, body []*Element, suffix []byte, err error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		depth       int
		inBody      bool
		found       bool
		selfClosing bool
		bodyName    xml.Name
		openEnd     int64
		closeStart  int64
		start       int64
		kind        ElementKind
	)

	for {
		off := dec.InputOffset()
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, nil, fmt.Errorf("parsing document: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case depth == 2 && t.Name.Local == "body" && !found:
				inBody, found = true, true
				bodyName = t.Name
				openEnd = dec.InputOffset()
				selfClosing = bytes.HasSuffix(data[off:openEnd], []byte("/>"))
			case inBody && depth == 3:
				start, kind = off, kindOf(t.Name.Local)
			}
		case xml.EndElement:
			switch {
			case inBody && depth == 3:
				body = append(body, &Element{Kind: kind, raw: bytes.Clone(data[start:dec.InputOffset()])})
			case inBody && depth == 2:
				inBody = false
				closeStart = off
			}
			depth--
		}
	}
	if !found {
		return nil, nil, nil, ErrNoBody
	}

	if selfClosing {
		// <w:body/> is reopened so that appended children have a parent.
		name := bodyName.Local
		if bodyName.Space != "" {
			name = bodyName.Space + ":" + name
		}
		prefix = append(bytes.Clone(data[:openEnd-2]), '>')
		suffix = append([]byte("</"+name+">"), data[openEnd:]...)
		return prefix, body, suffix, nil
	}
	return bytes.Clone(data[:openEnd]), body, bytes.Clone(data[closeStart:]), nil
}

// Body returns the top-level body children in document order. The
// returned elements are the document's own; pass them to Remove to delete.
func (d *Document) Body() []*Element {
	return slices.Clone(d.body)
}

// Remove deletes el from the body. It reports whether el was present.
func (d *Document) Remove(el *Element) bool {
	i := slices.Index(d.body, el)
	if i < 0 {
		return false
	}
	d.body = slices.Delete(d.body, i, i+1)
	return true
}

// TrimResult reports what TrimAfterParagraph removed.
type TrimResult struct {
	// Paragraphs is the number of body paragraphs counted, capped at the
	// requested count.
	Paragraphs int
	// Removed is the number of paragraphs and tables deleted.
	Removed int
	// Short is set when the body has fewer paragraphs than requested; in
	// that case nothing is removed.
	Short bool
}

// TrimAfterParagraph keeps the body up to and including its n-th paragraph
// and deletes every paragraph and table after it, last first. Tables do
// not count toward n. Section properties and other children are never
// removed. Trimming an already trimmed body removes nothing.
func (d *Document) TrimAfterParagraph(n int) TrimResult {
	var inventory []*Element
	for _, el := range d.body {
		if el.Kind == KindParagraph || el.Kind == KindTable {
			inventory = append(inventory, el)
		}
	}

	last, count := -1, 0
	for i, el := range inventory {
		if el.Kind != KindParagraph {
			continue
		}
		count++
		if count == n {
			last = i
			break
		}
	}
	if last < 0 {
		return TrimResult{Paragraphs: count, Short: true}
	}

	res := TrimResult{Paragraphs: count}
	for i := len(inventory) - 1; i > last; i-- {
		if d.Remove(inventory[i]) {
			res.Removed++
		}
	}
	return res
}

// appendElement adds el as the last body child, ahead of a trailing
// section properties element.
func (d *Document) appendElement(el *Element) {
	n := len(d.body)
	if n > 0 && d.body[n-1].Kind == KindSectionProperties {
		d.body = slices.Insert(d.body, n-1, el)
		return
	}
	d.body = append(d.body, el)
}

// AppendParagraph adds p at the end of the body.
func (d *Document) AppendParagraph(p Paragraph) error {
	raw, err := xml.Marshal(p.xml())
	if err != nil {
		return fmt.Errorf("encoding paragraph: %w", err)
	}
	d.appendElement(&Element{Kind: KindParagraph, raw: raw})
	return nil
}

// AppendTable adds t at the end of the body. The table is encoded at this
// point; later edits to t do not reach the document.
func (d *Document) AppendTable(t *Table) error {
	raw, err := xml.Marshal(t.xml())
	if err != nil {
		return fmt.Errorf("encoding table: %w", err)
	}
	d.appendElement(&Element{Kind: KindTable, raw: raw})
	return nil
}
