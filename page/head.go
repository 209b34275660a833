// Package page keeps scoped style nodes in the head of an XHTML host page.
package page

import (
	"errors"
	"fmt"
	"io"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

const xhtmlNS = "http://www.w3.org/1999/xhtml"

// StyleNode is a <style> element found in document head.
type StyleNode struct {
	ID   string
	Text string
}

// Document is a host page whose head serves as style registry.
// NOTE: not to be used concurrently.
type Document struct {
	doc  *etree.Document
	head *etree.Element
	log  *zap.Logger
}

// New creates empty XHTML page.
func New(log *zap.Logger) *Document {
	doc := newDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	html := doc.CreateElement("html")
	html.CreateAttr("xmlns", xhtmlNS)
	head := html.CreateElement("head")
	html.CreateElement("body")
	return wrap(doc, head, log)
}

// Load reads host page from r. Missing head element is created.
func Load(r io.Reader, log *zap.Logger) (*Document, error) {
	doc := newDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read page: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, errors.New("page has no root element")
	}
	if root.Tag != "html" {
		return nil, fmt.Errorf("unexpected page root element <%s>", root.FullTag())
	}

	head := root.SelectElement("head")
	if head == nil {
		head = etree.NewElement("head")
		root.InsertChildAt(0, head)
	}
	return wrap(doc, head, log), nil
}

func newDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.WriteSettings = etree.WriteSettings{
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		ValidateInput: false,
		Permissive:    true,
	}
	return doc
}

func wrap(doc *etree.Document, head *etree.Element, log *zap.Logger) *Document {
	if log == nil {
		log = zap.NewNop()
	}
	return &Document{doc: doc, head: head, log: log.Named("page")}
}

// find returns style element with id directly under head.
func (d *Document) find(id string) *etree.Element {
	for _, el := range d.head.SelectElements("style") {
		if el.SelectAttrValue("id", "") == id {
			return el
		}
	}
	return nil
}

// Has reports whether head contains style node with id.
func (d *Document) Has(id string) bool {
	return d.find(id) != nil
}

// Upsert appends style node to head or replaces text of existing one.
func (d *Document) Upsert(id, text string) {
	el := d.find(id)
	if el == nil {
		el = d.head.CreateElement("style")
		el.CreateAttr("id", id)
		d.log.Debug("Style node created", zap.String("id", id))
	}
	el.SetText(text)
}

// Remove detaches style node with id from head.
func (d *Document) Remove(id string) {
	if el := d.find(id); el != nil {
		d.head.RemoveChild(el)
		d.log.Debug("Style node removed", zap.String("id", id))
	}
}

// Styles returns style nodes of head in document order. Nodes without id
// are reported with empty ID.
func (d *Document) Styles() []StyleNode {
	var nodes []StyleNode
	for _, el := range d.head.SelectElements("style") {
		nodes = append(nodes, StyleNode{ID: el.SelectAttrValue("id", ""), Text: el.Text()})
	}
	return nodes
}

// WriteTo serializes page, implementing io.WriterTo.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.doc.WriteTo(w)
}
