package storage_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vennlane/graphrepo/pkg/storage"
)

func TestStoreNodeCRUD(t *testing.T) {
	s := storage.NewStore()
	n := &storage.Node{ID: "1", Kind: "user", Properties: map[string]any{"name": "Steve"}}
	s.PutNode(n)

	got, err := s.GetNode("1")
	require.NoError(t, err)
	require.Equal(t, "Steve", got.Properties["name"])

	_, err = s.GetNode("missing")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStoreEdgeRequiresExistingEndpoints(t *testing.T) {
	s := storage.NewStore()
	s.PutNode(&storage.Node{ID: "1", Kind: "user"})

	err := s.PutEdge(&storage.Edge{From: "1", To: "2", Kind: "is"})
	require.ErrorIs(t, err, storage.ErrInvalidEdge)
}

func TestStoreEdgeInsertIsIdempotent(t *testing.T) {
	s := storage.NewStore()
	s.PutNode(&storage.Node{ID: "1", Kind: "user"})
	s.PutNode(&storage.Node{ID: "2", Kind: "author"})

	require.NoError(t, s.PutEdge(&storage.Edge{From: "1", To: "2", Kind: "is"}))
	require.NoError(t, s.PutEdge(&storage.Edge{From: "1", To: "2", Kind: "is"}))

	require.Len(t, s.Edges(), 1)
}

func TestDeleteNodeRemovesIncidentEdges(t *testing.T) {
	s := storage.NewStore()
	s.PutNode(&storage.Node{ID: "1", Kind: "user"})
	s.PutNode(&storage.Node{ID: "2", Kind: "author"})
	require.NoError(t, s.PutEdge(&storage.Edge{From: "1", To: "2", Kind: "is"}))

	_, err := s.DeleteNode("1")
	require.NoError(t, err)
	require.Empty(t, s.Edges())

	_, err = s.DeleteNode("1")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestNextIDIsMonotoneAndStartsAtOne(t *testing.T) {
	s := storage.NewStore()
	require.Equal(t, storage.ID("1"), s.NextID())
	require.Equal(t, storage.ID("2"), s.NextID())
}

func TestNodesByKindPreservesInsertionOrder(t *testing.T) {
	s := storage.NewStore()
	s.PutNode(&storage.Node{ID: "2", Kind: "user"})
	s.PutNode(&storage.Node{ID: "1", Kind: "user"})
	s.PutNode(&storage.Node{ID: "3", Kind: "author"})

	got := s.NodesByKind("user")
	require.Len(t, got, 2)
	require.Equal(t, storage.ID("2"), got[0].ID)
	require.Equal(t, storage.ID("1"), got[1].ID)
}
