// Package catalog builds table descriptors from schema snapshots.
//
// A descriptor combines the introspected shape of a table (columns, foreign
// keys) with curated business context so that retrieval strategies can score
// tables against natural-language queries. Descriptors are immutable after
// construction; a snapshot's descriptor set is identified by a fingerprint
// and rebuilt only on an explicit schema refresh.
package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/leapstack-labs/schemascope/internal/adapter"
)

// ColumnInfo describes one column of a described table.
type ColumnInfo struct {
	Name       string
	Type       string
	PrimaryKey bool
}

// ForeignKeyInfo describes one foreign-key edge of a described table.
type ForeignKeyInfo struct {
	Column           string
	ReferencesTable  string
	ReferencesColumn string
}

// TableDescriptor is the retrieval-facing description of one table.
type TableDescriptor struct {
	Name            string
	Columns         []ColumnInfo
	ForeignKeys     []ForeignKeyInfo
	BusinessContext string
	UseCases        string
}

// ColumnNames returns the column names in declaration order.
func (d *TableDescriptor) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// Description synthesizes the free-text description used for embedding.
func (d *TableDescriptor) Description() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Table: %s\n", d.Name)
	fmt.Fprintf(&b, "Purpose: %s\n", d.BusinessContext)
	fmt.Fprintf(&b, "Columns: %s\n", strings.Join(d.ColumnNames(), ", "))

	if len(d.ForeignKeys) > 0 {
		rels := make([]string, len(d.ForeignKeys))
		for i, fk := range d.ForeignKeys {
			rels[i] = fmt.Sprintf("links to %s via %s", fk.ReferencesTable, fk.Column)
		}
		fmt.Fprintf(&b, "Relationships: %s\n", strings.Join(rels, "; "))
	}

	fmt.Fprintf(&b, "Common queries: %s", d.UseCases)
	return b.String()
}

// DescriptorSet is an immutable set of table descriptors built from one
// schema snapshot. Iteration order is the snapshot's table order.
type DescriptorSet struct {
	names       []string
	byName      map[string]*TableDescriptor
	fingerprint string
}

// Build constructs descriptors for every table in the snapshot.
// Columns and foreign keys come verbatim from introspection; business
// context and use cases come from the static catalog with a generic
// fallback, so every table is describable even for unseen schemas.
func Build(snap *adapter.Snapshot) *DescriptorSet {
	set := &DescriptorSet{
		names:  make([]string, 0, len(snap.Tables)),
		byName: make(map[string]*TableDescriptor, len(snap.Tables)),
	}

	for _, t := range snap.Tables {
		d := &TableDescriptor{
			Name:            t.Name,
			BusinessContext: BusinessContext(t.Name),
			UseCases:        UseCases(t.Name),
		}
		for _, c := range t.Columns {
			d.Columns = append(d.Columns, ColumnInfo{Name: c.Name, Type: c.Type, PrimaryKey: c.PrimaryKey})
		}
		for _, fk := range t.ForeignKeys {
			d.ForeignKeys = append(d.ForeignKeys, ForeignKeyInfo{
				Column:           fk.Column,
				ReferencesTable:  fk.ReferencesTable,
				ReferencesColumn: fk.ReferencesColumn,
			})
		}
		set.names = append(set.names, t.Name)
		set.byName[t.Name] = d
	}

	set.fingerprint = fingerprint(snap)
	return set
}

// Names returns all table names in descriptor order.
func (s *DescriptorSet) Names() []string {
	return s.names
}

// Get returns the descriptor for a table, if present.
func (s *DescriptorSet) Get(name string) (*TableDescriptor, bool) {
	d, ok := s.byName[name]
	return d, ok
}

// Len returns the number of descriptors in the set.
func (s *DescriptorSet) Len() int {
	return len(s.names)
}

// Fingerprint is a stable identifier for the schema snapshot this set was
// built from. Caches and vector indices are keyed by it; a fingerprint
// mismatch means the index is stale and must be rebuilt.
func (s *DescriptorSet) Fingerprint() string {
	return s.fingerprint
}

func fingerprint(snap *adapter.Snapshot) string {
	h := sha256.New()
	for _, t := range snap.Tables {
		fmt.Fprintf(h, "%s(", t.Name)
		for _, c := range t.Columns {
			fmt.Fprintf(h, "%s:%s,", c.Name, c.Type)
		}
		fmt.Fprint(h, ")\n")
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
