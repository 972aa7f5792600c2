package n2t

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/net/html"

	"github.com/alnah/go-n2t/internal/assets"
	"github.com/alnah/go-n2t/internal/fileutil"
	"github.com/alnah/go-n2t/internal/logging"
	"github.com/alnah/go-n2t/internal/pipeline"
)

// outputPerm is the mode of persisted output files.
const outputPerm = 0o644

// Compile-time interface implementation checks.
var (
	_ pipeline.HeadInjector     = (*pipeline.FragmentInjection)(nil)
	_ pipeline.FooterInjector   = (*pipeline.FragmentInjection)(nil)
	_ pipeline.NoteRenderer     = (*pipeline.GoldmarkNoteRenderer)(nil)
	_ pipeline.LanguageDetector = (*pipeline.ChromaDetector)(nil)
)

// Transformer turns Notion page exports into blog post HTML.
// It holds only read-only state once built and is safe for concurrent use
// on distinct documents.
type Transformer struct {
	cfg               transformerConfig
	logger            *slog.Logger
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	headInjector      pipeline.HeadInjector
	footerInjector    pipeline.FooterInjector
	notes             pipeline.NoteRenderer
	detector          pipeline.LanguageDetector
}

// NewTransformer creates a Transformer with the built-in fragments.
// Use options to customize it (e.g., WithLogger, WithAssetPath).
// Returns error if asset loading or template parsing fails.
func NewTransformer(opts ...Option) (*Transformer, error) {
	t := &Transformer{
		logger:      logging.Discard(),
		assetLoader: assets.NewEmbeddedLoader(),
		notes:       pipeline.NewGoldmarkNoteRenderer(),
		detector:    pipeline.NewChromaDetector(),
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(t.cfg.assetPath)
		if err != nil {
			return nil, convertError(err)
		}
		t.assetLoader = resolver
	}
	if t.publicAssetLoader != nil {
		t.assetLoader = t.publicAssetLoader
	}

	set, err := assets.LoadFragmentSet(t.assetLoader)
	if err != nil {
		return nil, convertError(fmt.Errorf("loading fragments: %w", err))
	}

	injection, err := pipeline.NewFragmentInjection(set)
	if err != nil {
		return nil, wrapError(ErrFragmentRender, err)
	}
	t.headInjector = injection
	t.footerInjector = injection

	return t, nil
}

// Transform rewrites the page in src into a blog post:
//
//  1. strip the first meta, title and style
//  2. tag each <pre> with its language
//  3. replace the article with its page-body element
//  4. demote h1-h3 by one level
//  5. close every <details>
//  6. inline images as data URIs (file sources only)
//  7. insert MathJax, highlight.js and the stylesheet at the top of <body>
//  8. append the watermark, publish label and footer note
//  9. persist to <path-without-ext>_output.html when requested
//  10. unwrap the page-body element
//
// The document is modified in place and returned in Result.Document.
// Context cancellation is checked between stages. No output file is
// written unless every stage before persistence succeeds.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (t *Transformer) Transform(ctx context.Context, src Source, opts Options) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	start := time.Now()

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	doc, err := t.load(src, opts)
	if err != nil {
		return nil, err
	}
	log := t.logger.With(logging.Path(src.Path))
	res := &Result{Document: doc}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	removed, err := pipeline.StripMetadata(doc, opts.Tolerant)
	if err != nil {
		return nil, convertError(err)
	}
	log.Debug("metadata stripped", logging.Stage("strip"), logging.Count(len(removed)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var detector pipeline.LanguageDetector
	if opts.DetectLanguages {
		detector = t.detector
	}
	res.CodeBlocks, err = pipeline.TagCodeBlocks(doc, opts.CodeLanguages, detector)
	if err != nil {
		return nil, convertError(err)
	}
	log.Debug("code blocks tagged", logging.Stage("code"), logging.Count(res.CodeBlocks))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	region, err := pipeline.SubstituteContent(doc)
	if err != nil {
		return nil, convertError(err)
	}
	pipeline.DemoteHeadings(region)
	pipeline.CloseDetails(region)

	if !opts.FromArchive {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res.ImagesInlined, err = pipeline.InlineImages(region, fileutil.SiblingDir(src.Path), nil)
		if err != nil {
			return nil, convertError(err)
		}
		log.Debug("images inlined", logging.Stage("images"), logging.Count(res.ImagesInlined))
	}

	head := &pipeline.HeadData{StylesheetURL: t.cfg.stylesheetURL, CodeTheme: opts.CodeTheme}
	if err := t.headInjector.InjectHead(ctx, doc, head); err != nil {
		return nil, convertError(err)
	}

	note, err := t.notes.RenderNote(ctx, opts.FooterNote)
	if err != nil {
		return nil, fmt.Errorf("rendering footer note: %w", err)
	}
	footer := &pipeline.FooterData{Label: opts.PublishedAt, NoteHTML: note}
	if err := t.footerInjector.AppendFooter(ctx, region, footer); err != nil {
		return nil, convertError(err)
	}

	if opts.PersistOutput {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res.OutputPath, err = t.persist(doc, src.Path)
		if err != nil {
			return nil, err
		}
		log.Info("output saved", logging.Output(res.OutputPath))
	}

	pipeline.ReplaceWithChildren(region)

	log.Debug("transform complete", logging.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return res, nil
}

// load returns the tree to transform, parsing src.Path when needed.
func (t *Transformer) load(src Source, opts Options) (*html.Node, error) {
	if opts.FromArchive {
		if src.Document == nil {
			return nil, ErrNoDocument
		}
		return src.Document, nil
	}

	if src.Path == "" {
		return nil, ErrNoSource
	}
	if src.Document != nil {
		return src.Document, nil
	}

	doc, err := pipeline.ParseFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceRead, src.Path, err)
	}
	return doc, nil
}

// persist renders doc to the output path derived from path.
func (t *Transformer) persist(doc *html.Node, path string) (string, error) {
	if path == "" {
		return "", ErrNoOutputPath
	}

	var buf bytes.Buffer
	if err := pipeline.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("rendering output: %w", err)
	}

	out := fileutil.OutputPath(path)
	if err := fileutil.WriteFileAtomic(out, buf.Bytes(), outputPerm); err != nil {
		return "", fmt.Errorf("writing %s: %w", out, err)
	}
	return out, nil
}
