package scene

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

const xlinkNamespace = "http://www.w3.org/1999/xlink"

// Marshal writes root and its descendants as SVG text.
func Marshal(w io.Writer, root *Element) error {
	if root == nil {
		return errors.New("scene: nil root")
	}
	enc := xml.NewEncoder(w)
	if err := encodeElement(enc, root); err != nil {
		return err
	}
	return enc.Flush()
}

// MarshalString is Marshal into a string.
func MarshalString(root *Element) (string, error) {
	var buf bytes.Buffer
	if err := Marshal(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func encodeElement(enc *xml.Encoder, e *Element) error {
	start := xml.StartElement{Name: xml.Name{Local: e.Name}}
	for _, a := range e.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if e.Style.Len() > 0 {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "style"}, Value: e.Style.String()})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if e.Text != "" {
		if err := enc.EncodeToken(xml.CharData(e.Text)); err != nil {
			return err
		}
	}
	for _, child := range e.Children {
		if err := encodeElement(enc, child); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// Parse reads an SVG document into an element tree. Non-UTF-8 documents
// are transcoded according to their XML declaration.
func Parse(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var (
		root  *Element
		stack []*Element
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("scene: parse: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := New(t.Name.Local)
			for _, a := range t.Attr {
				el.SetAttr(attrName(a.Name), a.Value)
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("scene: parse: multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			el := stack[len(stack)-1]
			if len(el.Children) > 0 && strings.TrimSpace(el.Text) == "" {
				el.Text = ""
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, errors.New("scene: parse: no root element")
	}
	return root, nil
}

func attrName(n xml.Name) string {
	switch n.Space {
	case "":
		return n.Local
	case "xmlns":
		return "xmlns:" + n.Local
	case xlinkNamespace:
		return "xlink:" + n.Local
	default:
		return n.Local
	}
}
