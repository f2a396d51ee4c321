package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "datencheck/pkg/domain"
)

func TestMemoryProviderOperations(t *testing.T) {
	ctx := context.Background()
	const tree = id.TreeID(1)
	m := NewMemoryProvider()

	m.AddPerson(tree, Person{Xref: "I2", Names: []Name{{Given: "Anna", Surname: "Schulz"}}})
	m.AddFamily(tree, Family{Xref: "F1", Husband: "I1", Wife: "I2", Children: []id.Xref{"I3"}})
	// added after its family, links still resolve
	m.AddPerson(tree, Person{Xref: "I1", Names: []Name{{Given: "Johann", Surname: "Meier"}}})
	m.AddPerson(tree, Person{Xref: "I3", Names: []Name{{Given: "Peter", Surname: "Meier", Full: "Peter /Meier/"}}})
	assert.Equal(t, 3, m.Len(tree))

	// Family links
	anna, err := m.Person(ctx, tree, "I2")
	require.NoError(t, err)
	assert.Equal(t, []id.Xref{"F1"}, anna.SpouseFamilies)
	johann, err := m.Person(ctx, tree, "I1")
	require.NoError(t, err)
	assert.Equal(t, []id.Xref{"F1"}, johann.SpouseFamilies)
	peter, err := m.Person(ctx, tree, "I3")
	require.NoError(t, err)
	assert.Equal(t, []id.Xref{"F1"}, peter.ChildFamilies)

	parents, err := m.ParentFamilies(ctx, tree, peter)
	require.NoError(t, err)
	require.Len(t, parents, 1)
	assert.Equal(t, id.Xref("I1"), parents[0].Partner("I2"))

	children, err := m.Children(ctx, tree, parents[0])
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "Peter Meier", children[0].FullName())

	// Name search matches surname or full name
	found, err := m.FindPersonsByName(ctx, tree, "MEIER")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, id.Xref("I1"), found[0].Xref)
	assert.Equal(t, id.Xref("I3"), found[1].Xref)

	// Spouse lookup with wildcard
	fams, err := m.FamiliesBySpouses(ctx, tree, "I1", "")
	require.NoError(t, err)
	assert.Len(t, fams, 1)
	fams, err = m.FamiliesBySpouses(ctx, tree, "", "")
	require.NoError(t, err)
	assert.Empty(t, fams)

	// Paging
	page, err := m.PersonXrefs(ctx, tree, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, []id.Xref{"I2", "I3"}, page)
	page, err = m.PersonXrefs(ctx, tree, 3, 5)
	require.NoError(t, err)
	assert.Empty(t, page)

	// Places are keyed case-insensitively
	m.AddPlace(tree, "Köln ", Coordinates{Lat: 50.9, Lon: 6.9})
	c, err := m.PlaceCoordinates(ctx, tree, "köln")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.InDelta(t, 50.9, c.Lat, 1e-9)

	// Unknown records and trees
	missing, err := m.Person(ctx, tree, "I99")
	require.NoError(t, err)
	assert.Nil(t, missing)
	missing, err = m.Person(ctx, 2, "I1")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryProviderCopyOnWrite(t *testing.T) {
	ctx := context.Background()
	const tree = id.TreeID(1)
	m := NewMemoryProvider()

	m.AddPerson(tree, Person{Xref: "I1"})
	before, err := m.Person(ctx, tree, "I1")
	require.NoError(t, err)

	m.AddFamily(tree, Family{Xref: "F1", Husband: "I1"})
	after, err := m.Person(ctx, tree, "I1")
	require.NoError(t, err)

	assert.Empty(t, before.SpouseFamilies, "handed-out record must not change")
	assert.Equal(t, []id.Xref{"F1"}, after.SpouseFamilies)
}

func TestDateFactHelpers(t *testing.T) {
	var nilFact *DateFact
	assert.False(t, nilFact.HasDate())
	_, ok := nilFact.Year()
	assert.False(t, ok)

	f := &DateFact{Date: "ABT 1850"}
	y, ok := f.Year()
	require.True(t, ok)
	assert.Equal(t, 1850, y)

	p := &Person{Burial: &DateFact{Date: "1900"}}
	assert.Same(t, p.Burial, p.EndFact())
	p.Death = &DateFact{Date: "1899"}
	assert.Same(t, p.Death, p.EndFact())
	assert.Same(t, p.Death, p.Fact(TagDeath))
}
