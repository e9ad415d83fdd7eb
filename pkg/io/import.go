package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/figmajson/pkg/errors"
	"github.com/matzehuels/figmajson/pkg/host/memhost"
	"github.com/matzehuels/figmajson/pkg/scene"
)

// ReadDocument decodes a document from r.
//
// ReadDocument returns an INVALID_FORMAT error if the JSON is malformed, or
// a node at any depth is null or has no type. Nodes of unknown types are
// kept for insert to skip. Missing side tables are replaced by empty maps.
// ReadDocument does not close r.
func ReadDocument(r io.Reader) (*scene.Document, error) {
	doc := scene.NewDocument()
	if err := json.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode document")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	doc.Normalize()
	return doc, nil
}

// DecodeDocument is [ReadDocument] for an in-memory payload.
func DecodeDocument(data []byte) (*scene.Document, error) {
	doc := scene.NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode document")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	doc.Normalize()
	return doc, nil
}

// ImportDocument reads a document file at path. A missing file is a
// FILE_NOT_FOUND error.
func ImportDocument(path string) (*scene.Document, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f)
}

// ReadScene decodes a scene from r into a headless document.
func ReadScene(r io.Reader) (*memhost.Document, error) {
	var s memhost.Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode scene")
	}
	return memhost.FromSnapshot(&s)
}

// LoadScene reads a scene file at path. A missing file yields an empty
// document with [memhost.DefaultFonts].
func LoadScene(path string) (*memhost.Document, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return memhost.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadScene(f)
}
