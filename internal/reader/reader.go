package reader

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/the127/osmhistory/internal/entities"
	"github.com/the127/osmhistory/internal/logging"
)

// Handler receives the decoded versions in file order.
type Handler interface {
	HandleNode(ctx context.Context, node *entities.Node) error
	HandleWay(ctx context.Context, way *entities.Way) error
	HandleRelation(ctx context.Context, relation *entities.Relation) error
}

type scanner interface {
	Scan() bool
	Object() osm.Object
	Err() error
	Close() error
}

type Reader struct {
	scanner scanner
	file    io.Closer

	// assumeVisible is set for xml extracts without visible attributes, whose objects all exist.
	assumeVisible bool
}

const xmlPeekSize = 64 * 1024

// Open opens a history file. FormatAuto picks the format from the file name.
func Open(ctx context.Context, path string, format Format, workers int) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}

	if format == FormatAuto {
		format = DetectFormat(path)
	}

	var input io.Reader = file
	if isBzip2(path) {
		input = bzip2.NewReader(file)
	}

	logging.Logger.Infof("Reading %s as %s", path, format)

	reader, err := New(ctx, input, format, workers)
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	reader.file = file
	return reader, nil
}

func New(ctx context.Context, r io.Reader, format Format, workers int) (*Reader, error) {
	var s scanner
	assumeVisible := false

	switch format {
	case FormatXml:
		buffered := bufio.NewReaderSize(r, xmlPeekSize)
		head, _ := buffered.Peek(xmlPeekSize)
		assumeVisible = lacksVisibleAttribute(head)
		if assumeVisible {
			logging.Logger.Warnf("input has no visible attributes, reading it as a snapshot where every object exists")
		}

		s = osmxml.New(ctx, buffered)

	case FormatPbf:
		if workers < 1 {
			workers = 1
		}
		s = osmpbf.New(ctx, r, workers)

	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}

	return &Reader{
		scanner:       s,
		assumeVisible: assumeVisible,
	}, nil
}

// Run decodes every object and hands nodes, ways and relations to the handler.
// Changesets are skipped. The first handler error stops the scan.
func (r *Reader) Run(ctx context.Context, handler Handler) error {
	for r.scanner.Scan() {
		var err error

		switch o := r.scanner.Object().(type) {
		case *osm.Node:
			o.Visible = o.Visible || r.assumeVisible
			err = handler.HandleNode(ctx, convertNode(o))

		case *osm.Way:
			o.Visible = o.Visible || r.assumeVisible
			err = handler.HandleWay(ctx, convertWay(o))

		case *osm.Relation:
			o.Visible = o.Visible || r.assumeVisible
			err = handler.HandleRelation(ctx, convertRelation(o))

		default:
			continue
		}

		if err != nil {
			return err
		}
	}

	err := r.scanner.Err()
	if err != nil {
		return fmt.Errorf("decoding input: %w", err)
	}

	return nil
}

func (r *Reader) Close() error {
	err := r.scanner.Close()
	if r.file != nil {
		fileErr := r.file.Close()
		if err == nil {
			err = fileErr
		}
	}

	return err
}

// lacksVisibleAttribute reports whether the first node, way or relation element in head has no
// visible attribute. History files always carry it, plain extracts leave it out.
func lacksVisibleAttribute(head []byte) bool {
	start := -1
	for _, element := range [][]byte{[]byte("<node"), []byte("<way"), []byte("<relation")} {
		index := bytes.Index(head, element)
		if index >= 0 && (start < 0 || index < start) {
			start = index
		}
	}
	if start < 0 {
		return false
	}

	end := bytes.IndexByte(head[start:], '>')
	if end < 0 {
		return false
	}

	return !bytes.Contains(head[start:start+end], []byte("visible="))
}
