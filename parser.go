package jxtmpl

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/lestrrat-go/jxtmpl/encoding"
	"github.com/lestrrat-go/jxtmpl/node"
	"github.com/lestrrat-go/jxtmpl/sink"
	"github.com/pkg/errors"
)

const Version = "v0.1.0"

// Parser turns template sources into events. A Parser only holds
// configuration and may be reused for any number of sequential parses.
// It must not be used from several goroutines at once when a handler
// was configured, since the handler is shared.
type Parser struct {
	handler       sink.Handler
	encoding      string
	htmlEntities  bool
	strictNesting bool
	resolver      Resolver
	publicID      string
	systemID      string
}

// Parse parses b and returns the resulting document tree.
func Parse(ctx context.Context, b []byte, options ...ParseOption) (*node.Document, error) {
	return NewParser(options...).Parse(ctx, b)
}

func NewParser(options ...ParseOption) *Parser {
	p := &Parser{
		resolver: FileResolver{},
	}
	for _, option := range options {
		switch option.Ident() {
		case identHandler{}:
			p.handler = option.Value().(sink.Handler)
		case identEncoding{}:
			p.encoding = option.Value().(string)
		case identHTMLEntities{}:
			p.htmlEntities = option.Value().(bool)
		case identStrictNesting{}:
			p.strictNesting = option.Value().(bool)
		case identResolver{}:
			p.resolver = option.Value().(Resolver)
		case identPublicID{}:
			p.publicID = option.Value().(string)
		case identSystemID{}:
			p.systemID = option.Value().(string)
		}
	}
	return p
}

// SetHandler replaces the handler events are sent to. A nil handler
// restores the default tree builder.
func (p *Parser) SetHandler(h sink.Handler) {
	p.handler = h
}

// Parse parses b. When no handler is configured the document built from
// the events is returned; otherwise the events go to the handler and
// the returned document is nil.
func (p *Parser) Parse(ctx context.Context, b []byte) (*node.Document, error) {
	return p.parse(ctx, p.publicID, p.systemID, b)
}

func (p *Parser) ParseReader(ctx context.Context, r io.Reader) (*node.Document, error) {
	return p.ParseSource(ctx, Source{Reader: r})
}

// ParseSource parses src. Identifiers missing from src default to the
// ones given with WithPublicID and WithSystemID.
func (p *Parser) ParseSource(ctx context.Context, src Source) (*node.Document, error) {
	if src.PublicID == "" {
		src.PublicID = p.publicID
	}
	if src.SystemID == "" {
		src.SystemID = p.systemID
	}

	r := src.Reader
	if r == nil {
		if src.SystemID == "" {
			return nil, ErrNoSource
		}
		rc, err := p.resolver.Resolve(ctx, src.PublicID, src.SystemID)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve %q", src.SystemID)
		}
		defer func() { _ = rc.Close() }()
		r = rc
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, "failed to read source")
	}
	return p.parse(ctx, src.PublicID, src.SystemID, buf.Bytes())
}

func (p *Parser) parse(ctx context.Context, publicID, systemID string, b []byte) (*node.Document, error) {
	ctx, span := StartSpan(ctx, "jxtmpl.Parse")
	defer span.End()

	src, err := encoding.Decode(p.encoding, b)
	if err != nil {
		TraceError(ctx, err, "failed to decode source", slog.String("encoding", p.encoding))
		return nil, err
	}

	handler := p.handler
	var builder *TreeBuilder
	if handler == nil {
		builder = NewTreeBuilder()
		handler = builder
	}

	pctx := getParserCtx()
	defer releaseParserCtx(pctx)

	if err := pctx.init(ctx, p, handler, publicID, systemID, src); err != nil {
		TraceError(ctx, err, "failed to initialize parser")
		return nil, err
	}
	if err := pctx.parseDocument(); err != nil {
		TraceError(ctx, err, "parse failed", slog.String("system_id", systemID))
		return nil, err
	}
	TraceEvent(ctx, "parse complete", slog.String("system_id", systemID), slog.Int("bytes", len(b)))

	if builder != nil {
		return builder.Document(), nil
	}
	return nil, nil
}
