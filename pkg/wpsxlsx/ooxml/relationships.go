package ooxml

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

const (
	schemaRoot     = "http://schemas.openxmlformats.org"
	documentSchema = schemaRoot + "/officeDocument/2006/relationships"
)

// xlsxRelationships is the root element of a .rels part.
type xlsxRelationships struct {
	XMLName       xml.Name           `xml:"http://schemas.openxmlformats.org/package/2006/relationships Relationships"`
	Relationships []xlsxRelationship `xml:"Relationship"`
}

// xlsxRelationship is one entry in a .rels part.
type xlsxRelationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// Relationships is an editable .rels part. New entries take the next free rId.
type Relationships struct {
	rels   xlsxRelationships
	lastID int
}

// NewRelationships returns an empty part whose first entry will be rId1.
func NewRelationships() *Relationships {
	return &Relationships{}
}

// ParseRelationships parses an existing .rels part.
func ParseRelationships(data []byte) (*Relationships, error) {
	var r Relationships
	if err := xml.Unmarshal(data, &r.rels); err != nil {
		return nil, fmt.Errorf("parse relationships: %w", err)
	}
	for _, rel := range r.rels.Relationships {
		if n, err := strconv.Atoi(strings.TrimPrefix(rel.ID, "rId")); err == nil && n > r.lastID {
			r.lastID = n
		}
	}
	return &r, nil
}

// AddDocumentRelationship appends a relationship of an officeDocument type such
// as "/image" or "/worksheet".
func (r *Relationships) AddDocumentRelationship(relType, target string) string {
	return r.add(documentSchema+relType, target)
}

// AddCellImagesRelationship appends a relationship in the WPS schema.
// It is not idempotent.
func (r *Relationships) AddCellImagesRelationship(relType, target string) string {
	return r.add(WPSDocumentSchema+relType, target)
}

func (r *Relationships) add(relType, target string) string {
	r.lastID++
	id := "rId" + strconv.Itoa(r.lastID)
	r.rels.Relationships = append(r.rels.Relationships, xlsxRelationship{
		ID:     id,
		Type:   relType,
		Target: target,
	})
	return id
}

// Len returns the number of relationships.
func (r *Relationships) Len() int {
	return len(r.rels.Relationships)
}

// Find returns the id and target of the first relationship with the given type.
func (r *Relationships) Find(relType string) (id, target string, ok bool) {
	for _, rel := range r.rels.Relationships {
		if rel.Type == relType {
			return rel.ID, rel.Target, true
		}
	}
	return "", "", false
}

// Targets maps relationship id to target.
func (r *Relationships) Targets() map[string]string {
	m := make(map[string]string, len(r.rels.Relationships))
	for _, rel := range r.rels.Relationships {
		m[rel.ID] = rel.Target
	}
	return m
}

// Marshal renders the part with an XML header.
func (r *Relationships) Marshal() ([]byte, error) {
	out, err := xml.Marshal(r.rels)
	if err != nil {
		return nil, fmt.Errorf("marshal relationships: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
