package termmap_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semmap/termmap"
)

func buildObject(t *testing.T, ref string) *termmap.TermMap {
	t.Helper()
	tm, err := newBuilder().Build(termmap.RoleObject, termmap.Fields{Reference: ref})
	require.NoError(t, err)
	return tm
}

func TestArena_AddLinksObjectMaps(t *testing.T) {
	a := termmap.NewArena()
	g := a.NewGroup("people")

	subject, err := newBuilder().Build(termmap.RoleSubject, termmap.Fields{Template: "http://ex/{id}"})
	require.NoError(t, err)

	sid, err := a.Add(g, subject)
	require.NoError(t, err)
	oid, err := a.Add(g, buildObject(t, "name"))
	require.NoError(t, err)

	assert.Equal(t, []termmap.MapID{sid, oid}, a.Maps(g))
	assert.Equal(t, []termmap.MapID{oid}, a.ObjectMaps(g))

	parent, ok := a.Parent(oid)
	require.True(t, ok)
	assert.Equal(t, g, parent)

	_, ok = a.Parent(sid)
	assert.False(t, ok)

	owner, ok := a.Owner(sid)
	require.True(t, ok)
	assert.Equal(t, g, owner)

	name, ok := a.GroupName(g)
	require.True(t, ok)
	assert.Equal(t, "people", name)
	assert.Equal(t, 2, a.Len())
}

func TestArena_LinkIsIdempotent(t *testing.T) {
	a := termmap.NewArena()
	g := a.NewGroup("people")

	oid, err := a.Add(g, buildObject(t, "name"))
	require.NoError(t, err)

	require.NoError(t, a.Link(g, oid))
	require.NoError(t, a.Link(g, oid))
	assert.Equal(t, []termmap.MapID{oid}, a.ObjectMaps(g))
}

func TestArena_LinkErrors(t *testing.T) {
	a := termmap.NewArena()
	g1 := a.NewGroup("people")
	g2 := a.NewGroup("places")

	oid, err := a.Add(g1, buildObject(t, "name"))
	require.NoError(t, err)

	pred, err := newBuilder().Build(termmap.RolePredicate, termmap.Fields{Constant: iri("http://ex/p")})
	require.NoError(t, err)
	pid, err := a.Add(g1, pred)
	require.NoError(t, err)

	assert.ErrorIs(t, a.Link(g2, oid), termmap.ErrAlreadyLinked)
	err = a.Link(g1, pid)
	assert.ErrorIs(t, err, termmap.ErrNotObjectMap)
	assert.Contains(t, err.Error(), "link http://www.w3.org/ns/r2rml#predicateMap map")
	assert.ErrorIs(t, a.Link(termmap.GroupID(9), oid), termmap.ErrUnknownGroup)
	assert.ErrorIs(t, a.Link(g1, termmap.MapID(9)), termmap.ErrUnknownMap)

	_, err = a.Add(termmap.GroupID(-1), buildObject(t, "x"))
	assert.ErrorIs(t, err, termmap.ErrUnknownGroup)
	_, err = a.Add(g1, nil)
	assert.Error(t, err)

	assert.Empty(t, a.ObjectMaps(g2))
	assert.Nil(t, a.ObjectMaps(termmap.GroupID(9)))
}

func TestArena_Lookups(t *testing.T) {
	a := termmap.NewArena()
	g := a.NewGroup("people")
	tm := buildObject(t, "name")

	id, err := a.Add(g, tm)
	require.NoError(t, err)

	got, ok := a.Map(id)
	require.True(t, ok)
	assert.Same(t, tm, got)

	_, ok = a.Map(termmap.MapID(5))
	assert.False(t, ok)
	_, ok = a.Owner(termmap.MapID(-1))
	assert.False(t, ok)
	_, ok = a.GroupName(termmap.GroupID(3))
	assert.False(t, ok)
	assert.Equal(t, []termmap.GroupID{g}, a.Groups())
}

func TestArena_ConcurrentAdd(t *testing.T) {
	a := termmap.NewArena()
	groups := []termmap.GroupID{a.NewGroup("a"), a.NewGroup("b")}

	const perGroup = 50
	var wg sync.WaitGroup
	for _, g := range groups {
		for i := 0; i < perGroup; i++ {
			wg.Add(1)
			go func(g termmap.GroupID, i int) {
				defer wg.Done()
				tm, err := newBuilder().Build(termmap.RoleObject, termmap.Fields{Reference: fmt.Sprintf("col%d", i)})
				if !assert.NoError(t, err) {
					return
				}
				id, err := a.Add(g, tm)
				if assert.NoError(t, err) {
					assert.NoError(t, a.Link(g, id))
				}
			}(g, i)
		}
	}
	wg.Wait()

	assert.Equal(t, 2*perGroup, a.Len())
	for _, g := range groups {
		objects := a.ObjectMaps(g)
		assert.Len(t, objects, perGroup)
		for _, id := range objects {
			parent, ok := a.Parent(id)
			require.True(t, ok)
			assert.Equal(t, g, parent)
		}
	}
}
