// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// scope is the document and location a schema value is rendered from.
type scope struct {
	doc  string
	root Value
	path Pointer
}

// at returns scope for another location in the same document.
func (sc scope) at(path Pointer) scope {
	return scope{doc: sc.doc, root: sc.root, path: path}
}

// location returns tracker key of scope.
func (sc scope) location() Location {
	return NewLocation(sc.doc, sc.path)
}

// renderer holds the state of one render call. It is never shared.
type renderer struct {
	opt     Options
	tf      transforms
	tracker *Tracker
	log     Logger

	primary     string
	primaryRoot Value
	start       Pointer

	// active maps locations on the current expansion chain to their containers.
	active map[Location]*Node
	// rendered maps untracked locations expanded at their natural position to their containers.
	rendered map[Location]*Node
	// appendix collects lifted definition sections in post-order.
	appendix []*Node
	docs     map[string]Value
	depth    int
}

// newRenderer prepares state for rendering document at start pointer.
func newRenderer(document Value, start Pointer, opt Options) *renderer {
	opt = opt.normalized()
	r := &renderer{
		opt:         opt,
		tf:          newTransforms(opt),
		log:         opt.Logger,
		primary:     opt.Document,
		primaryRoot: document,
		start:       start,
		active:      make(map[Location]*Node),
		rendered:    make(map[Location]*Node),
		docs:        make(map[string]Value),
	}

	if opt.tracking() {
		r.tracker = NewTracker(opt.TargetPrefix)
	}

	return r
}

// run renders value found at start pointer as the root section.
func (r *renderer) run(value Value) (*Node, error) {
	sc := scope{doc: r.primary, root: r.primaryRoot, path: r.start}
	root := &Node{Kind: KindSection}

	for _, problem := range r.tf.problems {
		r.log.Warn("ignoring malformed option", "error", problem)
		root.Append(newWarning(problem))
	}

	if r.tracker != nil && r.opt.AutoTarget {
		r.declareDefinitions(sc, value)
	}

	loc := sc.location()
	r.active[loc] = root
	err := r.fillSection(sc, value, root)
	delete(r.active, loc)
	if err != nil {
		return nil, err
	}

	r.finish(loc)
	root.Append(r.appendix...)

	if r.tracker != nil {
		r.log.Debug("render finished", "targets", len(r.tracker.Entries()))
	}

	return root, nil
}

// viewPath returns location relative to rendered root; ok is false outside the primary view.
func (r *renderer) viewPath(sc scope, path Pointer) (Pointer, bool) {
	if sc.doc != r.primary || !path.HasPrefix(r.start) {
		return nil, false
	}

	return path[len(r.start):], true
}

// hiddenAt reports whether hide options excise value at path.
func (r *renderer) hiddenAt(sc scope, path Pointer, value Value) bool {
	view, ok := r.viewPath(sc, path)
	return ok && r.tf.hidden(view, value)
}

// excisedAt reports whether path or one of its ancestors inside the view is hidden.
func (r *renderer) excisedAt(sc scope, path Pointer) bool {
	if _, ok := r.viewPath(sc, path); !ok {
		return false
	}

	for n := len(path); n > len(r.start); n-- {
		value, err := Resolve(sc.root, path[:n])
		if err != nil {
			continue
		}

		if r.tf.hidden(path[len(r.start):n], value) {
			return true
		}
	}

	return false
}

// verbatimAt reports whether text at path bypasses interpretation.
func (r *renderer) verbatimAt(sc scope, path Pointer) bool {
	if r.tf.passAll {
		return true
	}

	view, ok := r.viewPath(sc, path)
	return ok && r.tf.verbatim(view)
}

// warn logs localized rendering problem.
func (r *renderer) warn(path Pointer, err error) {
	r.log.Warn("rendering problem", "path", path.String(), "error", err)
}

// finish marks tracked location rendered.
func (r *renderer) finish(loc Location) {
	if r.tracker == nil {
		return
	}

	if _, ok := r.tracker.Lookup(loc); ok {
		r.tracker.MarkRendered(loc)
	}
}

// declareDefinitions registers every visible definition below value as a target, in document order.
func (r *renderer) declareDefinitions(sc scope, value Value) {
	switch value.Kind() {
	case KindObject:
		for _, m := range value.Members() {
			path := sc.path.Append(m.Key)
			if _, data := nonSchemaKeywords[m.Key]; data || r.hiddenAt(sc, path, m.Value) {
				continue
			}

			if m.Key == "definitions" && m.Value.IsObject() {
				for _, def := range m.Value.Members() {
					defPath := path.Append(def.Key)
					if !r.hiddenAt(sc, defPath, def.Value) {
						r.tracker.Declare(NewLocation(sc.doc, defPath))
					}
				}
			}

			r.declareDefinitions(sc.at(path), m.Value)
		}
	case KindArray:
		for i, item := range value.Items() {
			path := sc.path.AppendIndex(i)
			if !r.hiddenAt(sc, path, item) {
				r.declareDefinitions(sc.at(path), item)
			}
		}
	}
}

// fillSection renders schema into section: lifted title as heading, lifted
// description as paragraphs, then keyword table.
func (r *renderer) fillSection(sc scope, value Value, section *Node) error {
	if !value.IsObject() {
		section.Append(r.nonObject(sc, value))
		return nil
	}

	table := &Node{Kind: KindTable}
	lifted, err := r.schemaTable(sc, value, table)
	if err != nil {
		return err
	}

	if lifted.title != "" {
		section.Title = lifted.title
	}

	for _, text := range lifted.description {
		section.Append(newParagraph(text))
	}

	section.Append(table)
	return nil
}

// fillInline renders schema into nested table container; lifted parts become caption and Text.
func (r *renderer) fillInline(sc scope, value Value, container *Node) error {
	if !value.IsObject() {
		node := r.nonObject(sc, value)
		node.Target = container.Target
		*container = *node
		return nil
	}

	lifted, err := r.schemaTable(sc, value, container)
	if err != nil {
		return err
	}

	container.Title = lifted.title
	container.Text = strings.Join(lifted.description, "\n\n")
	return nil
}

// nonObject renders boolean schemas and reports other shapes.
func (r *renderer) nonObject(sc scope, value Value) *Node {
	if accept, ok := value.BoolValue(); ok {
		text := "no value is valid"
		if accept {
			text = "any value is valid"
		}

		return newParagraph(text)
	}

	err := &UnsupportedValueError{
		Keyword: sc.path.Last(),
		Path:    sc.path.String(),
		Got:     value.Kind(),
		Want:    "object or boolean schema",
	}
	r.warn(sc.path, err)
	return newWarning(err)
}

// schemaTable appends keyword rows of schema into table and returns lifted parts.
func (r *renderer) schemaTable(sc scope, schema Value, table *Node) (liftedParts, error) {
	r.depth++
	defer func() { r.depth-- }()

	if r.depth > r.opt.MaxDepth {
		return liftedParts{}, &DepthExceededError{Path: sc.location().String(), Limit: r.opt.MaxDepth}
	}

	visible := func(key string, value Value) bool {
		return !r.hiddenAt(sc, sc.path.Append(key), value)
	}

	lifted := r.tf.lift(schema, visible)
	for _, m := range schema.Members() {
		if !visible(m.Key, m.Value) {
			continue
		}

		if lifted.skip(m.Key) {
			if m.Key == "definitions" {
				if err := r.liftDefinitions(sc.at(sc.path.Append(m.Key)), m.Value); err != nil {
					return lifted, err
				}
			}

			continue
		}

		rows, err := r.keyword(sc, schema, m)
		if err != nil {
			return lifted, err
		}

		table.Append(rows...)
	}

	return lifted, nil
}

// keyword renders one member of schema; localized problems become warning rows.
func (r *renderer) keyword(sc scope, schema Value, m Member) ([]*Node, error) {
	path := sc.path.Append(m.Key)
	if node := r.verbatimText(sc, path, m.Value); node != nil {
		return []*Node{newRow(m.Key, node)}, nil
	}

	rows, err := formatterFor(m.Key)(r, sc, m.Key, m.Value, schema)
	if err != nil {
		if errors.Is(err, ErrDepthExceeded) {
			return nil, err
		}

		r.warn(path, err)
		return []*Node{newRow(m.Key, newWarning(err))}, nil
	}

	return rows, nil
}

// verbatimText returns unmodified rendering of text values selected by pass_unmodified.
func (r *renderer) verbatimText(sc scope, path Pointer, value Value) *Node {
	if !r.verbatimAt(sc, path) {
		return nil
	}

	if text, ok := value.Str(); ok {
		return newLiteral(text)
	}

	if value.IsArray() {
		if lines, ok := value.StringList(); ok {
			return &Node{Kind: KindLiteralBlock, Text: strings.Join(lines, "\n")}
		}
	}

	return nil
}

// child renders subschema found at its natural position.
func (r *renderer) child(sc scope, path Pointer, value Value) (*Node, error) {
	at := sc.at(path)
	loc := at.location()

	if node, ok := r.active[loc]; ok {
		return r.cycleLink(loc, path.Fragment(), node), nil
	}

	target := ""
	if r.tracker != nil {
		if entry, ok := r.tracker.Lookup(loc); ok {
			if entry.State != TargetDeclared {
				return &Node{Kind: KindReference, Text: path.Fragment(), Target: entry.ID}, nil
			}

			target = r.tracker.Begin(loc)
		}
	}

	container, err := r.expand(at, value, target)
	if err != nil {
		return nil, err
	}

	if r.tracker != nil && target == "" {
		r.rendered[loc] = container
	}

	return container, nil
}

// expand renders schema inline as nested table tagged with target.
func (r *renderer) expand(sc scope, value Value, target string) (*Node, error) {
	loc := sc.location()
	container := &Node{Kind: KindTable, Target: target}

	r.active[loc] = container
	err := r.fillInline(sc, value, container)
	delete(r.active, loc)
	if err != nil {
		return nil, err
	}

	r.finish(loc)
	return container, nil
}

// cycleLink returns link to container still being expanded, assigning it a target when tracking.
func (r *renderer) cycleLink(loc Location, text string, container *Node) *Node {
	link := &Node{Kind: KindReference, Text: text}
	if r.tracker == nil {
		return link
	}

	if container.Target == "" {
		container.Target = r.tracker.Begin(loc)
	}

	link.Target = container.Target
	return link
}

// renderedLink returns link to container already rendered at its natural position,
// assigning it a target on first use.
func (r *renderer) renderedLink(loc Location, text string, container *Node) *Node {
	if container.Target == "" {
		container.Target, _ = r.tracker.Target(loc)
		r.tracker.MarkRendered(loc)
	}

	return &Node{Kind: KindReference, Text: text, Target: container.Target}
}

// liftDefinitions renders each visible definition as a titled appendix section.
func (r *renderer) liftDefinitions(sc scope, definitions Value) error {
	for _, m := range definitions.Members() {
		path := sc.path.Append(m.Key)
		if r.hiddenAt(sc, path, m.Value) {
			continue
		}

		section, err := r.definitionSection(sc.at(path), m.Key, m.Value)
		if err != nil {
			return err
		}

		r.appendix = append(r.appendix, section)
	}

	return nil
}

// definitionSection renders one lifted definition.
func (r *renderer) definitionSection(sc scope, name string, value Value) (*Node, error) {
	loc := sc.location()
	section := &Node{Kind: KindSection, Title: name}

	if node, ok := r.active[loc]; ok {
		return section.Append(r.cycleLink(loc, sc.path.Fragment(), node)), nil
	}

	if r.tracker != nil {
		if entry, ok := r.tracker.Lookup(loc); ok {
			if entry.State != TargetDeclared {
				return section.Append(&Node{Kind: KindReference, Text: sc.path.Fragment(), Target: entry.ID}), nil
			}

			section.Target = r.tracker.Begin(loc)
		}
	}

	r.active[loc] = section
	err := r.fillSection(sc, value, section)
	delete(r.active, loc)
	if err != nil {
		return nil, err
	}

	if r.tracker != nil && section.Target == "" {
		r.rendered[loc] = section
	}

	r.finish(loc)
	return section, nil
}

// resolvedRef is the target of one $ref.
type resolvedRef struct {
	scope scope
	value Value
}

// reference renders $ref as link or in-place expansion.
func (r *renderer) reference(sc scope, ref string) ([]*Node, error) {
	if r.verbatimAt(sc, sc.path.Append("$ref")) {
		return []*Node{newLiteral(ref)}, nil
	}

	target, err := r.resolveRef(sc, ref)
	if err == nil && r.excisedAt(target.scope, target.scope.path) {
		err = &ReferenceError{
			Ref:   ref,
			Cause: fmt.Errorf("location %q is hidden", target.scope.path.String()),
		}
	}

	if err != nil {
		r.warn(sc.path.Append("$ref"), err)
		return []*Node{newLiteral(ref), newWarning(err)}, nil
	}

	loc := target.scope.location()
	if node, ok := r.active[loc]; ok {
		return []*Node{r.cycleLink(loc, ref, node)}, nil
	}

	id := ""
	if r.tracker != nil {
		if node, ok := r.rendered[loc]; ok {
			return []*Node{r.renderedLink(loc, ref, node)}, nil
		}

		var known bool
		if id, known = r.tracker.Target(loc); known {
			return []*Node{{Kind: KindReference, Text: ref, Target: id}}, nil
		}
	}

	r.log.Debug("expanding reference", "ref", ref, "target", loc.String())
	node, err := r.expand(target.scope, target.value, id)
	if err != nil {
		return nil, err
	}

	return []*Node{newLiteral(ref), node}, nil
}

// resolveRef finds document and value addressed by ref relative to sc.
func (r *renderer) resolveRef(sc scope, ref string) (resolvedRef, error) {
	uri, fragment, _ := strings.Cut(ref, "#")

	doc, root := sc.doc, sc.root
	if uri != "" {
		doc = joinDocument(sc.doc, uri)
		switch {
		case doc == r.primary:
			root = r.primaryRoot
		case doc != sc.doc:
			loaded, err := r.document(doc)
			if err != nil {
				return resolvedRef{}, &ReferenceError{Ref: ref, External: true, Cause: err}
			}

			root = loaded
		}
	}

	p, err := ParseFragment(fragment)
	if err != nil {
		return resolvedRef{}, &ReferenceError{Ref: ref, External: uri != "", Cause: err}
	}

	value, err := Resolve(root, p)
	if err != nil {
		return resolvedRef{}, &ReferenceError{Ref: ref, External: uri != "", Cause: err}
	}

	return resolvedRef{scope: scope{doc: doc, root: root, path: p}, value: value}, nil
}

// document loads external document once per render call.
func (r *renderer) document(uri string) (Value, error) {
	if doc, ok := r.docs[uri]; ok {
		return doc, nil
	}

	if r.opt.Resolver == nil {
		return Value{}, fmt.Errorf("no resolver for external document %q", uri)
	}

	doc, err := r.opt.Resolver.Document(uri)
	if err != nil {
		return Value{}, err
	}

	r.docs[uri] = doc
	return doc, nil
}

// joinDocument resolves ref URI against identity of the referring document.
func joinDocument(base, ref string) string {
	if u, err := url.Parse(ref); err == nil && u.IsAbs() {
		return ref
	}

	if b, err := url.Parse(base); err == nil && b.IsAbs() && len(b.Scheme) > 1 {
		if u, err := url.Parse(ref); err == nil {
			return b.ResolveReference(u).String()
		}
	}

	if base == "" || filepath.IsAbs(ref) {
		return filepath.Clean(ref)
	}

	return filepath.Join(filepath.Dir(base), ref)
}

// literalBlock renders data value in the selected notation.
func literalBlock(value Value, format LiteralFormat) *Node {
	if format == LiteralYAML {
		if text, err := value.YAML(); err == nil {
			return &Node{Kind: KindLiteralBlock, Title: string(LiteralYAML), Text: text}
		}
	}

	return &Node{Kind: KindLiteralBlock, Title: string(LiteralJSON), Text: value.JSON("  ")}
}
