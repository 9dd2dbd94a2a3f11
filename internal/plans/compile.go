package plans

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/evanrichards/line-fixer-ts/internal/fileutil"
	"github.com/evanrichards/line-fixer-ts/internal/parser"
	"github.com/evanrichards/line-fixer-ts/internal/segment"
)

// Marker kinds understood by plan files
const (
	KindEquals           = "equals"
	KindExact            = "exact"
	KindContains         = "contains"
	KindPrefix           = "prefix"
	KindRegexp           = "regexp"
	KindBlank            = "blank"
	KindComment          = "comment"
	KindClassOpen        = "class-open"
	KindClassClose       = "class-close"
	KindExportAssignment = "export-assignment"
	KindDefaultExport    = "default-export"
	KindMethodStart      = "method-start"
	KindTSClassOpen      = "ts-class-open"
	KindTSClassClose     = "ts-class-close"
	KindTSMethod         = "ts-method"
)

// Document is the file a plan is compiled against. Syntax-tree marker kinds
// are resolved from its content.
type Document struct {
	Path  string
	Lines []string
}

// Compile builds an executable plan from def. The document is parsed only
// when a ts-* marker kind is used.
func Compile(ctx context.Context, def Definition, doc Document) (segment.Plan, error) {
	c := &compiler{ctx: ctx, doc: doc}

	plan := segment.Plan{
		Name:        def.Name,
		Description: def.Description,
		IndentUnit:  def.Indent,
	}

	for _, rd := range def.Replacements {
		plan.Replacements = append(plan.Replacements, segment.Replacement{
			Name: rd.Name,
			Old:  splitBlock(rd.Old),
			New:  splitBlock(rd.New),
		})
	}

	c.replacements = plan.Replacements

	for _, md := range def.Markers {
		m, err := c.marker(md)
		if err != nil {
			return segment.Plan{}, &segment.ConfigurationError{Plan: def.Name, Item: "marker " + md.Name, Err: err}
		}
		plan.Markers = append(plan.Markers, segment.MarkerRef{
			Name:   md.Name,
			Marker: m,
			From:   md.From,
			After:  md.After,
		})
	}

	declared := make(map[string]bool, len(def.Markers))
	for _, md := range def.Markers {
		declared[md.Name] = true
	}

	for _, sd := range def.Segments {
		spec, err := compileSegment(sd, declared)
		if err != nil {
			return segment.Plan{}, &segment.ConfigurationError{Plan: def.Name, Item: "segment " + sd.Name, Err: err}
		}
		plan.Segments = append(plan.Segments, spec)
	}

	if def.TrailingNoise != nil {
		noise, err := c.noise(*def.TrailingNoise)
		if err != nil {
			return segment.Plan{}, &segment.ConfigurationError{Plan: def.Name, Item: "trailing_noise", Err: err}
		}
		plan.Noise = noise
	}

	if err := plan.Validate(); err != nil {
		return segment.Plan{}, err
	}
	return plan, nil
}

func compileSegment(sd SegmentDef, declared map[string]bool) (segment.SegmentSpec, error) {
	spec := segment.SegmentSpec{Name: sd.Name, Indent: sd.Indent}

	if sd.Literal != nil {
		if sd.From != "" || sd.To != "" {
			return spec, errors.New("literal segments take no bounds")
		}
		spec.Literal = sd.Literal
		return spec, nil
	}

	from, err := ParseBound(sd.From, declared)
	if err != nil {
		return spec, fmt.Errorf("from: %w", err)
	}
	to, err := ParseBound(sd.To, declared)
	if err != nil {
		return spec, fmt.Errorf("to: %w", err)
	}
	spec.From, spec.To = from, to
	return spec, nil
}

type compiler struct {
	ctx          context.Context
	doc          Document
	replacements []segment.Replacement
	tree         *parser.Tree
}

func (c *compiler) noise(nd NoiseDef) (*segment.NoiseFilter, error) {
	// The filter runs on the assembled output, where syntax-tree rows are meaningless
	if strings.HasPrefix(nd.Tail.Kind, "ts-") || (nd.Stray != nil && strings.HasPrefix(nd.Stray.Kind, "ts-")) {
		return nil, errors.New("syntax-tree kinds cannot be used in trailing_noise")
	}

	tail, err := c.marker(nd.Tail)
	if err != nil {
		return nil, fmt.Errorf("tail: %w", err)
	}

	strayDef := MarkerDef{Name: "stray", Kind: KindComment}
	if nd.Stray != nil {
		strayDef = *nd.Stray
	}
	stray, err := c.marker(strayDef)
	if err != nil {
		return nil, fmt.Errorf("stray: %w", err)
	}

	return &segment.NoiseFilter{Tail: tail, Stray: stray}, nil
}

func (c *compiler) marker(md MarkerDef) (segment.Marker, error) {
	name := md.Name
	if name == "" {
		name = md.Kind
	}

	needsValue := func() error {
		if md.Value == "" {
			return fmt.Errorf("kind %q requires a value", md.Kind)
		}
		return nil
	}

	switch md.Kind {
	case KindEquals:
		return segment.Equals(name, md.Value), needsValue()
	case KindExact:
		return segment.Exact(name, md.Value), nil
	case KindContains:
		return segment.Contains(name, md.Value), needsValue()
	case KindPrefix:
		return segment.HasPrefix(name, md.Value), needsValue()
	case KindRegexp:
		if err := needsValue(); err != nil {
			return segment.Marker{}, err
		}
		re, err := regexp.Compile(md.Value)
		if err != nil {
			return segment.Marker{}, fmt.Errorf("invalid regexp: %w", err)
		}
		return segment.Regexp(name, re), nil
	case KindBlank:
		return segment.Blank(name), nil
	case KindComment:
		return segment.Comment(name), nil
	case KindClassOpen:
		return segment.ClassOpen(name, md.Value), needsValue()
	case KindClassClose:
		return segment.ClassClose(name), nil
	case KindExportAssignment:
		return segment.ExportAssignment(name, md.Value), needsValue()
	case KindDefaultExport:
		return segment.DefaultExport(name), nil
	case KindMethodStart:
		return segment.MethodStart(name, md.Value), needsValue()
	case KindTSClassOpen, KindTSClassClose, KindTSMethod:
		if err := needsValue(); err != nil {
			return segment.Marker{}, err
		}
		tree, err := c.parse()
		if err != nil {
			return segment.Marker{}, err
		}
		var rows []int
		switch md.Kind {
		case KindTSClassOpen:
			rows = tree.ClassOpenRows(md.Value)
		case KindTSClassClose:
			rows = tree.ClassCloseRows(md.Value)
		default:
			rows = tree.MethodRows(md.Value)
		}
		return segment.Rows(name, rows...), nil
	case "":
		return segment.Marker{}, errors.New("missing kind")
	default:
		return segment.Marker{}, fmt.Errorf("unknown kind %q", md.Kind)
	}
}

func (c *compiler) parse() (*parser.Tree, error) {
	if c.tree != nil {
		return c.tree, nil
	}
	// Rows must line up with the lines markers are resolved against, which
	// is the document after replacements.
	lines := c.doc.Lines
	for _, r := range c.replacements {
		if next, _, err := segment.ReplaceBlock(lines, r); err == nil {
			lines = next
		}
	}

	tsx := fileutil.HasValidExtension(c.doc.Path, []string{".tsx"})
	tree, err := parser.Parse(c.ctx, fileutil.JoinLines(lines), tsx)
	if err != nil {
		return nil, err
	}
	if tree.HasErrors() {
		log.FromContext(c.ctx).Debug("target has syntax errors, syntax-tree markers only see the parts that parsed", "path", c.doc.Path)
	}
	c.tree = tree
	return tree, nil
}
