package query

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"docmapper/internal/convert"
	"docmapper/internal/diagnostic"
	"docmapper/internal/entity"
	"docmapper/internal/idcodec"
	"docmapper/internal/match"
)

// Diagnostic codes reported by MapDocumentWithDiagnostics.
const (
	CodeUnresolvedPath = "unresolved_path"
	CodeUnmappedValue  = "unmapped_value"
)

const maxSuggestions = 3

// DocumentSource produces a criteria document, e.g. *criteria.Query.
type DocumentSource interface {
	Document() (bson.D, error)
}

// Mapper maps criteria documents against entity metadata. It holds no state
// besides its registry and is safe for concurrent use.
type Mapper struct {
	registry  *entity.Registry
	converter *convert.Converter
	logger    *slog.Logger
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithLogger sets the logger used for debug output about unresolved keys.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mapper) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMapper creates a Mapper resolving entities through registry. A nil
// registry is replaced by an empty one.
func NewMapper(registry *entity.Registry, opts ...Option) *Mapper {
	if registry == nil {
		registry = entity.NewRegistry()
	}

	m := &Mapper{
		registry:  registry,
		converter: convert.New(registry),
		logger:    slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// MapDocument maps source, a bson.D, bson.M, map[string]any or bson.Raw,
// against e. A nil entity maps without metadata. Unsupported sources yield
// nil.
func (m *Mapper) MapDocument(source any, e *entity.PersistentEntity) bson.D {
	return m.newRun(nil).document(source, e)
}

// MapDocumentWithDiagnostics is MapDocument that also reports every key whose
// property path could not be resolved against its entity.
func (m *Mapper) MapDocumentWithDiagnostics(source any, e *entity.PersistentEntity) (bson.D, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}

	return m.newRun(diags).document(source, e), diags
}

// MapFor maps source against the entity of the Go value sample, e.g.
// MapFor(filter, Sample{}). Unknown types map without metadata.
func (m *Mapper) MapFor(source any, sample any) bson.D {
	e, _ := m.registry.Entity(reflect.TypeOf(sample))

	return m.MapDocument(source, e)
}

// MapQuery renders q and maps the result against e.
func (m *Mapper) MapQuery(q DocumentSource, e *entity.PersistentEntity) (bson.D, error) {
	doc, err := q.Document()
	if err != nil {
		return nil, fmt.Errorf("render query: %w", err)
	}

	return m.MapDocument(doc, e), nil
}

// run carries per-call state through the recursion.
type run struct {
	*Mapper
	diags *diagnostic.Diagnostics
}

func (m *Mapper) newRun(diags *diagnostic.Diagnostics) *run {
	return &run{Mapper: m, diags: diags}
}

func (r *run) document(source any, e *entity.PersistentEntity) bson.D {
	if raw, ok := source.(bson.Raw); ok {
		var doc bson.D
		if err := bson.Unmarshal(raw, &doc); err != nil {
			r.logger.Debug("cannot decode raw criteria document", "error", err)
			return nil
		}

		source = doc
	}

	doc, ok := asDocument(source)
	if !ok {
		r.logger.Debug("criteria source is not a document", "type", fmt.Sprintf("%T", source))
		return nil
	}

	result := make(bson.D, 0, len(doc))

	for _, elem := range doc {
		switch {
		case isLogical(elem.Key):
			result = put(result, elem.Key, r.logical(elem.Value, e))
		case isOperator(elem.Key):
			result = put(result, elem.Key, r.simpleOrDocument(elem.Value, e))
		default:
			f := r.field(elem.Key, e)
			result = put(result, f.mappedKey(), r.value(f, elem.Value))
		}
	}

	return result
}

func (r *run) field(key string, e *entity.PersistentEntity) field {
	f := newField(key, e)
	if e == nil || f.resolved || f.isID() {
		return f
	}

	idx, on, _ := e.FirstUnresolved(key)
	r.logger.Debug("criteria key does not resolve to a property, keeping it as is",
		"entity", e.Name, "key", key)

	if r.diags == nil {
		return f
	}

	parts, err := entity.SplitPath(key)
	if err != nil || on == nil || idx >= len(parts) {
		r.diags.Add(diagnostic.Warnf(CodeUnresolvedPath, "key does not resolve to a property path").
			On(e.Name, "").ForKey(key))

		return f
	}

	r.diags.Add(diagnostic.Warnf(CodeUnresolvedPath, "%s has no property %q", on.Name, parts[idx]).
		On(e.Name, strings.Join(parts[:idx], ".")).
		ForKey(key).
		Suggest(match.Suggest(parts[idx], on.PropertyNames(), maxSuggestions)...))

	return f
}

// logical maps every criteria document of a $or, $and or $nor list.
func (r *run) logical(v any, e *entity.PersistentEntity) any {
	list, ok := asList(v)
	if !ok {
		r.note("logical operator value is not a list", v, e)
		return v
	}

	out := make(bson.A, len(list))
	for i, item := range list {
		if _, isDoc := asDocument(item); isDoc {
			out[i] = r.document(item, e)
			continue
		}

		out[i] = r.simpleOrDocument(item, e)
	}

	return out
}

func (r *run) value(f field, v any) any {
	if ops, ok := asOperatorDocument(v); ok {
		return r.operators(f, ops)
	}

	if f.isID() {
		return r.ids(v)
	}

	if f.isAssociation() {
		return r.association(v, f.property, f.keyed())
	}

	return r.simpleOrDocument(v, f.propertyEntity())
}

// operators maps an operator document such as {$in: [...], $ne: x} applied
// to f. Operands of identifier keys are converted as identifiers.
func (r *run) operators(f field, ops bson.D) bson.D {
	out := make(bson.D, 0, len(ops))

	for _, op := range ops {
		var mapped any

		switch {
		case op.Key == "$exists" || op.Key == "$type" || op.Key == "$size":
			mapped = op.Value
		case op.Key == "$not":
			mapped = r.value(f, op.Value)
		case op.Key == "$elemMatch":
			mapped = r.simpleOrDocument(op.Value, f.propertyEntity())
		case f.isID():
			mapped = r.ids(op.Value)
		case f.isAssociation():
			mapped = r.association(op.Value, f.property, f.keyed())
		default:
			mapped = r.simpleOrDocument(op.Value, f.propertyEntity())
		}

		out = append(out, bson.E{Key: op.Key, Value: mapped})
	}

	return out
}

// ids converts identifier values, element-wise for lists.
func (r *run) ids(v any) any {
	switch list := v.(type) {
	case bson.A:
		return r.idList(list)
	case []any:
		return r.idList(list)
	case []string:
		out := make(bson.A, len(list))
		for i, s := range list {
			out[i] = idcodec.Convert(s)
		}

		return out
	}

	return idcodec.Convert(v)
}

func (r *run) idList(list []any) bson.A {
	out := make(bson.A, len(list))
	for i, item := range list {
		out[i] = idcodec.Convert(item)
	}

	return out
}

// association converts the value of a reference property into DBRefs. keyed
// values are maps of references and are converted entry by entry, whatever
// their keys.
func (r *run) association(v any, prop *entity.PersistentProperty, keyed bool) any {
	if v == nil || isNative(v) {
		return v
	}

	if list, ok := asList(v); ok {
		out := make(bson.A, len(list))
		for i, item := range list {
			out[i] = r.association(item, prop, keyed)
		}

		return out
	}

	if doc, ok := asDocument(v); ok {
		if !keyed {
			if target, found := prop.Entity(); found {
				if _, hasID := target.IDValue(doc); hasID {
					return r.converter.ToDBRef(doc, prop)
				}
			}
		}

		out := make(bson.D, 0, len(doc))
		for _, elem := range doc {
			out = append(out, bson.E{Key: elem.Key, Value: r.association(elem.Value, prop, false)})
		}

		return out
	}

	if list, ok := typedList(v); ok {
		return r.association(bson.A(list), prop, keyed)
	}

	if doc, ok := stringKeyedMap(v); ok {
		return r.association(doc, prop, keyed)
	}

	return r.converter.ToDBRef(v, prop)
}

// simpleOrDocument maps nested documents against e and converts everything
// else as a simple value.
func (r *run) simpleOrDocument(v any, e *entity.PersistentEntity) any {
	if v == nil || isNative(v) {
		return v
	}

	if _, ok := asDocument(v); ok {
		return r.document(v, e)
	}

	switch list := v.(type) {
	case bson.A:
		return r.list(list, e)
	case []any:
		return []any(r.list(list, e))
	}

	if list, ok := typedList(v); ok && len(list) > 0 && convert.IsEnum(list[0]) {
		return r.list(list, e)
	}

	return r.converter.ToMongoType(v)
}

func (r *run) list(list []any, e *entity.PersistentEntity) bson.A {
	out := make(bson.A, len(list))
	for i, item := range list {
		out[i] = r.simpleOrDocument(item, e)
	}

	return out
}

func (r *run) note(msg string, v any, e *entity.PersistentEntity) {
	name := ""
	if e != nil {
		name = e.Name
	}

	r.logger.Debug(msg, "entity", name, "type", fmt.Sprintf("%T", v))

	if r.diags != nil {
		r.diags.Add(diagnostic.Infof(CodeUnmappedValue, "%s", msg).On(name, ""))
	}
}

// stringKeyedMap returns typed maps with string keys, e.g.
// map[string]*Reference, as a document ordered by key.
func stringKeyedMap(v any) (bson.D, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}

	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}

	slices.Sort(keys)

	doc := make(bson.D, 0, len(keys))
	for _, k := range keys {
		doc = append(doc, bson.E{Key: k, Value: rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface()})
	}

	return doc, true
}
