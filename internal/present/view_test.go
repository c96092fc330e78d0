package present

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patternflow/internal/catalog"
	"patternflow/internal/navigation"
)

func setup(t *testing.T) (*catalog.Catalog, *catalog.Index, *navigation.Controller) {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	idx := catalog.NewIndex(cat)
	return cat, idx, navigation.NewController(cat, idx)
}

func TestBuildDefaultFrame(t *testing.T) {
	cat, idx, ctrl := setup(t)

	v, err := Build(cat, idx, ctrl.State())
	require.NoError(t, err)

	assert.Equal(t, "Abstract Factory", v.Header.Name)
	assert.Equal(t, catalog.Creational, v.Header.Category)
	assert.Contains(t, v.Diagram, "classDiagram")
	assert.NotEmpty(t, v.Roles)
	assert.Contains(t, v.Code, "from abc import ABC")
	assert.Empty(t, v.ModalText)

	require.Len(t, v.Sidebar, 3)
	assert.True(t, v.Sidebar[0].Expanded)
	assert.True(t, v.Sidebar[0].HasActive)
	assert.False(t, v.Sidebar[1].Expanded)
	assert.False(t, v.Sidebar[1].HasActive)

	assert.Equal(t, "visitor", v.Prev.ID)
	assert.Equal(t, "factory-method", v.Next.ID)
}

func TestBuildTabs(t *testing.T) {
	cat, idx, ctrl := setup(t)
	require.NoError(t, ctrl.SetLanguage(catalog.Java))

	v, err := Build(cat, idx, ctrl.State())
	require.NoError(t, err)

	want := []Tab{
		{Language: catalog.Python, Label: "Python"},
		{Language: catalog.JavaScript, Label: "JavaScript"},
		{Language: catalog.Java, Label: "Java", Active: true},
	}
	if diff := cmp.Diff(want, v.Tabs); diff != "" {
		t.Errorf("tabs mismatch (-want +got):\n%s", diff)
	}
	p, _ := cat.Get("abstract-factory")
	assert.Equal(t, p.Code[catalog.Java], v.Code)
}

func TestBuildExactlyOneActiveItem(t *testing.T) {
	cat, idx, ctrl := setup(t)
	require.NoError(t, ctrl.SelectPattern("observer"))

	v, err := Build(cat, idx, ctrl.State())
	require.NoError(t, err)

	active := 0
	for _, g := range v.Sidebar {
		for _, it := range g.Items {
			if it.Active {
				active++
				assert.Equal(t, "observer", it.ID)
				assert.Equal(t, catalog.Behavioral, g.Category)
				assert.True(t, g.Expanded)
			}
		}
	}
	assert.Equal(t, 1, active)
}

func TestBuildCollapsedGroupStillMarksActive(t *testing.T) {
	cat, idx, ctrl := setup(t)
	require.NoError(t, ctrl.ToggleCategory(catalog.Creational))

	v, err := Build(cat, idx, ctrl.State())
	require.NoError(t, err)
	assert.False(t, v.Sidebar[0].Expanded)
	assert.True(t, v.Sidebar[0].HasActive)
}

func TestModalTitles(t *testing.T) {
	cat, idx, ctrl := setup(t)
	require.NoError(t, ctrl.SelectPattern("singleton"))
	require.NoError(t, ctrl.SetLanguage(catalog.JavaScript))

	require.NoError(t, ctrl.OpenModal(navigation.ModalDiagram))
	v, err := Build(cat, idx, ctrl.State())
	require.NoError(t, err)
	assert.Equal(t, "UML: Singleton", v.ModalText)

	require.NoError(t, ctrl.OpenModal(navigation.ModalCode))
	v, err = Build(cat, idx, ctrl.State())
	require.NoError(t, err)
	assert.Equal(t, "Code: Singleton (javascript)", v.ModalText)
}

func TestBuildDanglingID(t *testing.T) {
	cat, idx, _ := setup(t)
	_, err := Build(cat, idx, navigation.State{CurrentID: "ghost"})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestIconCoversCatalog(t *testing.T) {
	cat, _, _ := setup(t)
	for _, p := range cat.All() {
		for _, r := range p.Roles {
			if r.Icon == "" {
				continue
			}
			assert.NotEqual(t, "•", Icon(r.Icon), "%s role %q uses unmapped icon %q", p.ID, r.Title, r.Icon)
		}
	}
	assert.Equal(t, "•", Icon("no-such-icon"))
}
