package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// CompressedExt marks export files holding a compressed block.
const CompressedExt = ".sz"

// Marshal encodes v as JSON, indented when pretty, compressed when asked.
func Marshal(v any, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if opts.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	if opts.Compress {
		return Compress(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

// Write encodes doc to w.
func Write(w io.Writer, doc Document, opts Options) error {
	data, err := Marshal(doc, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Read decodes a document written by Write, compressed or not.
func Read(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read export: %w", err)
	}
	if IsCompressed(data) {
		if data, err = Decompress(data); err != nil {
			return Document{}, err
		}
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode export: %w", err)
	}
	return doc, nil
}

// SaveFile writes doc to path. A path ending in CompressedExt is always
// compressed.
func SaveFile(path string, doc Document, opts Options) error {
	if strings.HasSuffix(path, CompressedExt) {
		opts.Compress = true
	}
	data, err := Marshal(doc, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save export: %w", err)
	}
	return nil
}

// LoadFile reads a document saved by SaveFile.
func LoadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("load export: %w", err)
	}
	defer f.Close()
	return Read(f)
}
