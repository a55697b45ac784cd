package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vennlane/graphrepo/pkg/schema"
)

func sampleSchema() *schema.Schema {
	return schema.New(map[string]map[string]schema.Relation{
		"user":     {"authors": {To: "author"}},
		"author":   {"users": {From: "user"}, "documents": {To: "document"}},
		"document": {"authors": {From: "author"}, "content": {To: "content"}},
	})
}

func TestRelationDirection(t *testing.T) {
	s := sampleSchema()

	r, ok := s.Relation("user", "authors")
	require.True(t, ok)
	require.Equal(t, schema.DirectionTo, r.Direction())
	require.Equal(t, "author", r.RelatedKind())

	r, ok = s.Relation("author", "users")
	require.True(t, ok)
	require.Equal(t, schema.DirectionFrom, r.Direction())
	require.Equal(t, "user", r.RelatedKind())
}

func TestRelationsForUnknownKindIsEmpty(t *testing.T) {
	s := sampleSchema()
	require.Empty(t, s.RelationsFor("nonexistent"))
}

func TestHasRelation(t *testing.T) {
	s := sampleSchema()
	require.True(t, s.HasRelation("author", "documents"))
	require.False(t, s.HasRelation("author", "bogus"))
}
