package scene

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	errorsmod "cosmossdk.io/errors"
	"gopkg.in/yaml.v3"
)

// Export formats
const (
	FormatYAML  = "yaml"
	FormatJSONL = "jsonl"
)

// Sink receives a scene graph node by node.
type Sink interface {
	OnStart(root *Node) error
	OnNode(n *Node) error
	OnEnd() error
	Close() error
}

// Export walks root and feeds every node to sink.
func Export(root *Node, sink Sink) error {
	if err := sink.OnStart(root); err != nil {
		return err
	}
	if err := Walk(root, sink.OnNode); err != nil {
		return err
	}
	return sink.OnEnd()
}

// NewSink returns a sink for the given format writing to w.
func NewSink(format string, w io.Writer) (Sink, error) {
	switch format {
	case FormatYAML, "yml", "":
		return NewYAMLSink(w), nil
	case FormatJSONL:
		return NewJSONLSink(w), nil
	default:
		return nil, errorsmod.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

// CreateFileSink creates path and returns a sink writing to it. Closing the
// sink closes the file.
func CreateFileSink(format, path string) (Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	s, err := NewSink(format, f)
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}
	switch s := s.(type) {
	case *YAMLSink:
		s.closer = f
	case *JSONLSink:
		s.closer = f
	}
	return s, nil
}

type objectRecord struct {
	Type   string `json:"type" yaml:"type"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Params Params `json:"params,omitempty" yaml:"params,omitempty"`
}

type nodeRecord struct {
	Path     string         `json:"path" yaml:"-"`
	Name     string         `json:"name" yaml:"name"`
	Data     Params         `json:"data,omitempty" yaml:"data,omitempty"`
	Objects  []objectRecord `json:"objects,omitempty" yaml:"objects,omitempty"`
	Children []nodeRecord   `json:"-" yaml:"children,omitempty"`
}

func record(n *Node, deep bool) nodeRecord {
	name := n.Name
	if n.parent == nil {
		name = "root"
	}
	rec := nodeRecord{Path: n.Path(), Name: name}
	if len(n.Data) > 0 {
		rec.Data = n.Data
	}
	for _, o := range n.Objects {
		or := objectRecord{Type: o.Type, Name: o.Name}
		if len(o.Params) > 0 {
			or.Params = o.Params
		}
		rec.Objects = append(rec.Objects, or)
	}
	if deep {
		for _, c := range n.Children {
			rec.Children = append(rec.Children, record(c, true))
		}
	}
	return rec
}

// YAMLSink writes the whole graph as one nested YAML document.
type YAMLSink struct {
	w      io.Writer
	closer io.Closer
	root   *Node
}

// NewYAMLSink writes to w
func NewYAMLSink(w io.Writer) *YAMLSink {
	return &YAMLSink{w: w}
}

func (s *YAMLSink) OnStart(root *Node) error {
	s.root = root
	return nil
}

func (s *YAMLSink) OnNode(n *Node) error { return nil }

func (s *YAMLSink) OnEnd() error {
	if s.root == nil {
		return nil
	}
	enc := yaml.NewEncoder(s.w)
	enc.SetIndent(2)
	if err := enc.Encode(record(s.root, true)); err != nil {
		return err
	}
	return enc.Close()
}

func (s *YAMLSink) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// JSONLSink writes one JSON object per node.
type JSONLSink struct {
	bw     *bufio.Writer
	closer io.Closer
}

// NewJSONLSink writes to w
func NewJSONLSink(w io.Writer) *JSONLSink {
	return &JSONLSink{bw: bufio.NewWriter(w)}
}

func (s *JSONLSink) OnStart(root *Node) error { return nil }

func (s *JSONLSink) OnNode(n *Node) error {
	b, err := json.Marshal(record(n, false))
	if err != nil {
		return err
	}
	if _, err := s.bw.Write(b); err != nil {
		return err
	}
	return s.bw.WriteByte('\n')
}

func (s *JSONLSink) OnEnd() error { return s.bw.Flush() }

func (s *JSONLSink) Close() error {
	if s.bw != nil {
		_ = s.bw.Flush()
	}
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
