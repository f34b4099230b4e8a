package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixturekit/fixturekit/testset"
)

func TestReadParams(t *testing.T) {
	var params commandParams
	ok := params.Read([]string{"fixturekit", "-run", "Math.*", "-skip", "slow", "-debug", "spec/*_test"})
	require.True(t, ok)
	assert.True(t, params.filters.MustMatch.IsDefined())
	assert.True(t, params.filters.MustNotMatch.IsDefined())
	assert.True(t, params.debug)
	assert.False(t, params.debugAll)
	assert.Equal(t, []string{"spec/*_test"}, params.patterns)
}

func TestReadParamsDefaultsToAllModules(t *testing.T) {
	var params commandParams
	require.True(t, params.Read([]string{"fixturekit"}))
	assert.Equal(t, []string{"*"}, params.patterns)
}

func TestRerunCommandQuotesShellMetacharacters(t *testing.T) {
	id := testset.TestID{Path: []string{"Math fixture", "adds", "#0"}}
	cmd := rerunCommand(id, []string{"spec/*_test"})
	assert.Contains(t, cmd, `'^Math fixture/adds/#0$'`)
	assert.Contains(t, cmd, `'spec/*_test'`)
}
