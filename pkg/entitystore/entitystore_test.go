package entitystore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vennlane/graphrepo/pkg/entitystore"
)

func TestCreateGeneratesMonotoneID(t *testing.T) {
	r := entitystore.New()
	id1, err := r.Create(map[string]any{"name": "a"})
	require.NoError(t, err)
	id2, err := r.Create(map[string]any{"name": "b"})
	require.NoError(t, err)
	require.Equal(t, entitystore.ID("1"), id1)
	require.Equal(t, entitystore.ID("2"), id2)
}

func TestCreateIgnoresExplicitIDByDefault(t *testing.T) {
	r := entitystore.New()
	id, err := r.Create(map[string]any{"id": "custom", "name": "a"})
	require.NoError(t, err)
	require.Equal(t, entitystore.ID("1"), id)
}

func TestStrictModeRejectsDuplicateExplicitID(t *testing.T) {
	r := entitystore.NewStrict()
	_, err := r.Create(map[string]any{"id": "fixed", "name": "a"})
	require.NoError(t, err)

	_, err = r.Create(map[string]any{"id": "fixed", "name": "b"})
	var alreadyErr *entitystore.AlreadyExistsError
	require.ErrorAs(t, err, &alreadyErr)
}

func TestFindByID(t *testing.T) {
	r := entitystore.New()
	id, err := r.Create(map[string]any{"name": "a"})
	require.NoError(t, err)

	found, err := r.Find(string(id))
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "a", found[0].Properties["name"])

	_, err = r.Find("missing")
	var nfErr *entitystore.NotFoundError
	require.ErrorAs(t, err, &nfErr)
}

func TestFindByQuery(t *testing.T) {
	r := entitystore.New()
	_, err := r.Create(map[string]any{"name": "alice", "age": 30})
	require.NoError(t, err)
	_, err = r.Create(map[string]any{"name": "bob", "age": 40})
	require.NoError(t, err)

	found, err := r.Find(map[string]any{"age": map[string]any{"gte": 35}})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "bob", found[0].Properties["name"])
}

func TestUpdateMergesValuesShallow(t *testing.T) {
	r := entitystore.New()
	id, err := r.Create(map[string]any{"name": "a", "age": 1})
	require.NoError(t, err)

	updated, err := r.Update(string(id), map[string]any{"age": 2})
	require.NoError(t, err)
	require.Len(t, updated, 1)
	require.Equal(t, "a", updated[0].Properties["name"])
	require.Equal(t, 2, updated[0].Properties["age"])
}

func TestDeleteRemovesEntity(t *testing.T) {
	r := entitystore.New()
	id, err := r.Create(map[string]any{"name": "a"})
	require.NoError(t, err)

	deleted, err := r.Delete(string(id))
	require.NoError(t, err)
	require.Len(t, deleted, 1)

	_, err = r.Find(string(id))
	var nfErr *entitystore.NotFoundError
	require.ErrorAs(t, err, &nfErr)
}

func TestFindDisjunctionConcatenatesWithoutDedup(t *testing.T) {
	r := entitystore.New()
	_, err := r.Create(map[string]any{"name": "alice", "age": 30, "vip": true})
	require.NoError(t, err)

	found, err := r.Find([]map[string]any{
		{"vip": true},
		{"age": 30},
	})
	require.NoError(t, err)
	require.Len(t, found, 2)
}
