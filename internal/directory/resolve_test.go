package directory

import (
	"testing"

	"github.com/grupo-nexus/planner/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDisplayIdentities_CurrentSchemaWins(t *testing.T) {
	d := Default()

	post := model.Post{
		Account: "grupo-nexus",
		Owners:  []string{"lavinia"},
	}
	got := d.ResolveDisplayIdentities(post)
	require.Len(t, got, 1)
	assert.Equal(t, "grupo-nexus", got[0].ID)
}

func TestResolveDisplayIdentities_AccountThenResponsibles(t *testing.T) {
	d := Default()

	post := model.Post{
		Account:      "executive",
		Responsibles: []string{"pedro", "gabriel"},
	}
	got := d.ResolveDisplayIdentities(post)
	require.Len(t, got, 3)
	assert.Equal(t, "executive", got[0].ID)
	assert.Equal(t, "pedro", got[1].ID)
	assert.Equal(t, "gabriel", got[2].ID)
}

func TestResolveDisplayIdentities_LegacyFallback(t *testing.T) {
	d := Default()

	post := model.Post{Owners: []string{"pedro", "grupo-nexus"}}
	got := d.ResolveDisplayIdentities(post)
	require.Len(t, got, 2)
	assert.Equal(t, "pedro", got[0].ID)
	assert.Equal(t, "grupo-nexus", got[1].ID)
}

func TestResolveDisplayIdentities_UnresolvedCurrentFallsBackToLegacy(t *testing.T) {
	d := Default()

	// Current schema set but nothing resolves; legacy owners take over.
	post := model.Post{
		Account:      "ghost-account",
		Responsibles: []string{"ghost-person"},
		Owners:       []string{"lavinia"},
	}
	got := d.ResolveDisplayIdentities(post)
	require.Len(t, got, 1)
	assert.Equal(t, "lavinia", got[0].ID)
}

func TestResolveDisplayIdentities_UnresolvedIDsDropped(t *testing.T) {
	d := Default()

	post := model.Post{
		Account:      "grupo-nexus",
		Responsibles: []string{"ghost", "vinicius"},
	}
	got := d.ResolveDisplayIdentities(post)
	require.Len(t, got, 2)
	assert.Equal(t, "grupo-nexus", got[0].ID)
	assert.Equal(t, "vinicius", got[1].ID)
}

func TestResolveDisplayIdentities_NoOwnership(t *testing.T) {
	d := Default()
	assert.Empty(t, d.ResolveDisplayIdentities(model.Post{Theme: "orphan"}))
}

func TestResolveDisplayIdentities_ResponsibleNamespaceOnly(t *testing.T) {
	d := Default()

	// "pedro" only exists in the responsibles directory; as an account
	// reference it must not resolve.
	post := model.Post{Account: "pedro", Owners: []string{"executive"}}
	got := d.ResolveDisplayIdentities(post)
	require.Len(t, got, 1)
	assert.Equal(t, "executive", got[0].ID)
}
