// Package tree reads a YAML description of a mail and builds the message.Mail
// it describes. It is the input format of the mailenc command:
//
//	header:
//	  - name: From
//	    value: Jürgen <juergen@example.com>
//	  - name: Subject
//	    value: Photos
//	multipart: mixed
//	parts:
//	  - text: Here they are.
//	  - file: beach.jpg
//	    encoding: base64
package tree

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zostay/go-mailenc/message"
	"github.com/zostay/go-mailenc/message/file"
	"github.com/zostay/go-mailenc/message/header"
	"github.com/zostay/go-mailenc/message/header/param"
	"github.com/zostay/go-mailenc/message/transfer"
)

var (
	// ErrNoContent is returned for a node with neither parts nor a body.
	ErrNoContent = errors.New("node has no parts and no body")

	// ErrAmbiguous is returned for a node with more than one kind of content.
	ErrAmbiguous = errors.New("node must have exactly one of parts, text, data or file")
)

// Field is one header field.
type Field struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Node describes a mail or a MIME part. A node is multipart when it has
// parts; otherwise exactly one of Text, Data or File gives the body.
type Node struct {
	Header []Field `yaml:"header"`

	// Multipart is the multipart subtype, "mixed" when empty.
	Multipart  string `yaml:"multipart"`
	Boundary   string `yaml:"boundary"`
	HiddenText string `yaml:"hidden_text"`
	Parts      []Node `yaml:"parts"`

	Text *string `yaml:"text"`

	// Data is the body as base64.
	Data string `yaml:"data"`

	// File is a path, relative to the tree file.
	File string `yaml:"file"`

	MediaType string `yaml:"media_type"`
	Encoding  string `yaml:"encoding"`
	FileName  string `yaml:"file_name"`
}

// Load reads a tree from r. Relative file paths are taken from dir.
func Load(r io.Reader, dir string) (*message.Mail, error) {
	var n Node
	if err := yaml.NewDecoder(r).Decode(&n); err != nil {
		return nil, fmt.Errorf("failed to parse mail tree: %w", err)
	}
	return n.Build(dir)
}

// LoadFile reads a tree from the file at path.
func LoadFile(path string) (*message.Mail, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return Load(f, filepath.Dir(path))
}

// Build turns the node into a Mail.
func (n *Node) Build(dir string) (*message.Mail, error) {
	m, err := n.body(dir)
	if err != nil {
		return nil, err
	}

	for _, f := range n.Header {
		c, err := ParseField(f.Name, f.Value)
		if err != nil {
			return nil, &header.FieldError{Name: f.Name, Err: err}
		}
		if strings.EqualFold(f.Name, header.ContentType) && m.IsMultipart() {
			m.Header.Set(header.ContentType, c)
			continue
		}
		m.Header.Add(f.Name, c)
	}
	return m, nil
}

func (n *Node) contentKinds() int {
	k := 0
	if len(n.Parts) > 0 {
		k++
	}
	if n.Text != nil {
		k++
	}
	if n.Data != "" {
		k++
	}
	if n.File != "" {
		k++
	}
	return k
}

func (n *Node) mediaType() (*param.Value, error) {
	if n.MediaType == "" {
		return nil, nil
	}
	return param.Parse(n.MediaType)
}

func (n *Node) body(dir string) (*message.Mail, error) {
	switch n.contentKinds() {
	case 0:
		return nil, ErrNoContent
	case 1:
	default:
		return nil, ErrAmbiguous
	}

	if len(n.Parts) > 0 {
		return n.multipart(dir)
	}

	mt, err := n.mediaType()
	if err != nil {
		return nil, err
	}

	var m *message.Mail
	switch {
	case n.File != "":
		path := n.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		m = message.AttachmentFile(path, mt, transfer.None)

	case n.Text != nil && mt == nil:
		m = message.NewText(*n.Text)

	case n.Text != nil:
		m = message.NewSingle(message.NewBody(file.New(mt, []byte(*n.Text))))

	default:
		data, err := base64.StdEncoding.DecodeString(n.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode data: %w", err)
		}
		m = message.NewSingle(message.NewBody(file.New(mt, data)))
	}

	b := m.Body.(*message.SingleBody).Body
	b.Preferred = transfer.ParseEncoding(n.Encoding)
	if buf := b.Buffer(); buf != nil && n.FileName != "" {
		buf.Meta.FileName = n.FileName
	}
	return m, nil
}

func (n *Node) multipart(dir string) (*message.Mail, error) {
	parts := make([]*message.Mail, len(n.Parts))
	for i := range n.Parts {
		p, err := n.Parts[i].Build(dir)
		if err != nil {
			return nil, fmt.Errorf("part %d: %w", i, err)
		}
		parts[i] = p
	}

	subtype := n.Multipart
	if subtype == "" {
		subtype = "mixed"
	}

	m := message.NewMultipart(subtype, parts...)
	if n.Boundary != "" {
		ct, _ := m.Header.GetContentType()
		m.Header.SetContentType(param.Modify(ct, param.Set(param.Boundary, n.Boundary)))
	}
	m.Body.(*message.MultipleBodies).HiddenText = n.HiddenText
	return m, nil
}
