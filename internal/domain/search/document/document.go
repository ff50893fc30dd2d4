// Package document defines the retrieved-document value object shared
// by the lexical and vector search backends.
package document

// Document is a single backend hit, identified by its catalog part
// number. Score is backend-local and not comparable across backends
// without fusion.
type Document struct {
	partNumber string
	score      float64
	fields     map[string]string
	highlights map[string]string
}

// New creates a retrieved document.
func New(partNumber string, score float64, fields, highlights map[string]string) Document {
	return Document{
		partNumber: partNumber,
		score:      score,
		fields:     fields,
		highlights: highlights,
	}
}

// PartNumber returns the stable catalog identifier.
func (d *Document) PartNumber() string { return d.partNumber }

// Score returns the backend-local relevance score.
func (d *Document) Score() float64 { return d.score }

// Fields returns the document field values (name, description, category, ...).
func (d *Document) Fields() map[string]string { return d.fields }

// Field returns a single field value, or "" when absent.
func (d *Document) Field(name string) string { return d.fields[name] }

// Highlights returns per-field highlighted excerpts, if the backend
// produced any.
func (d *Document) Highlights() map[string]string { return d.highlights }

// Well-known document field names as stored in the index.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldPhasedOut   = "phased_out"
	FieldImageURL    = "image_url"
)
