package feature

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualMatchesExactMajorOnly(t *testing.T) {
	v := Version("1.14")
	assert.True(t, v.Equal("1.14"))

	v2 := Version("1.14.1")
	assert.True(t, v2.Equal("1.14"), `"1.14" should match every 1.14.x`)
}

func TestConditionEqualsPredicate(t *testing.T) {
	defs := []Definition{{Name: "f", Versions: []ConditionGroup{{"== 1.14"}}}}

	set := New(defs, "1.14")
	assert.True(t, set.Enabled("f"))

	set2 := New(defs, "1.14.1")
	assert.False(t, set2.Enabled("f"), `"== 1.14" must not match 1.14.1`)
}

func TestBareVersionMatchesAllPatch(t *testing.T) {
	defs := []Definition{{Name: "f", Versions: []ConditionGroup{{"1.14"}}}}

	assert.True(t, New(defs, "1.14.4").Enabled("f"))
	assert.False(t, New(defs, "1.15").Enabled("f"))
}

func TestGreaterOrEqualPredicate(t *testing.T) {
	defs := []Definition{{Name: "f", Versions: []ConditionGroup{{">= 1.14"}}}}

	assert.True(t, New(defs, "1.16").Enabled("f"))
	assert.True(t, New(defs, "1.14").Enabled("f"))
	assert.False(t, New(defs, "1.13").Enabled("f"))
}

func TestAndGroupRequiresAll(t *testing.T) {
	defs := []Definition{{Name: "f", Versions: []ConditionGroup{{">= 1.14", "< 1.16"}}}}

	assert.True(t, New(defs, "1.15").Enabled("f"))
	assert.False(t, New(defs, "1.16").Enabled("f"))
	assert.False(t, New(defs, "1.13").Enabled("f"))
}

func TestOrAcrossGroups(t *testing.T) {
	defs := []Definition{{Name: "f", Versions: []ConditionGroup{{"== 1.13"}, {">= 1.16"}}}}

	assert.True(t, New(defs, "1.13").Enabled("f"))
	assert.True(t, New(defs, "1.17").Enabled("f"))
	assert.False(t, New(defs, "1.14").Enabled("f"))
}

func TestUnknownFeatureDisabled(t *testing.T) {
	set := New(nil, "1.16")
	assert.False(t, set.Enabled("nonexistent"))
}

func TestConditionGroupUnmarshalBareString(t *testing.T) {
	var g ConditionGroup
	a := assert.New(t)
	err := json.Unmarshal([]byte(`">= 1.14"`), &g)
	a.NoError(err)
	a.Equal(ConditionGroup{">= 1.14"}, g)
}

func TestConditionGroupUnmarshalList(t *testing.T) {
	var g ConditionGroup
	err := json.Unmarshal([]byte(`[">= 1.14", "< 1.16"]`), &g)
	assert.NoError(t, err)
	assert.Equal(t, ConditionGroup{">= 1.14", "< 1.16"}, g)
}

func TestDefinitionUnmarshalFullGrammar(t *testing.T) {
	raw := `{"name":"climableTrapdoor","versions":[">= 1.14", ["1.9", "1.10"]]}`
	var d Definition
	err := json.Unmarshal([]byte(raw), &d)
	assert.NoError(t, err)
	assert.Equal(t, "climableTrapdoor", d.Name)
	assert.Equal(t, []ConditionGroup{{">= 1.14"}, {"1.9", "1.10"}}, d.Versions)
}

func TestMajorVersion(t *testing.T) {
	assert.Equal(t, "1.14", Version("1.14.4").MajorVersion())
	assert.Equal(t, "1.14", Version("1.14").MajorVersion())
}
