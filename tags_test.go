package zpad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTag(t *testing.T) {
	tag := NewTag("selection")
	assert.Equal(t, "selection", tag.Name())
	assert.Equal(t, 0, tag.Index())
	other := tag.Clone(2)
	assert.Equal(t, "selection", other.Name())
	assert.Equal(t, 2, other.Index())
	assert.NotEqual(t, tag, other)
	assert.Equal(t, "selection#2", other.String())
}

func TestTagContainerAddLookup(t *testing.T) {
	tags := NewTagContainer()
	a := NewTag("a")
	iv := CharInterval{Start: CharPos{1, 2}, End: CharPos{1, 6}}
	tags.Add(iv, a)

	got, ok := tags.Lookup(a)
	require.True(t, ok)
	assert.Equal(t, iv, got)

	found, ok := tags.LookupRange(CharInterval{Start: CharPos{1, 3}, End: CharPos{1, 4}})
	require.True(t, ok)
	assert.Equal(t, []Tag{a}, found)

	_, ok = tags.LookupRange(CharInterval{Start: CharPos{3, 0}, End: CharPos{4, 0}})
	assert.False(t, ok)

	_, ok = tags.Lookup(NewTag("b"))
	assert.False(t, ok)
}

func TestTagContainerSwappedInterval(t *testing.T) {
	tags := NewTagContainer()
	a := NewTag("a")
	tags.Add(CharInterval{Start: CharPos{2, 0}, End: CharPos{0, 1}}, a)
	got, ok := tags.Lookup(a)
	require.True(t, ok)
	assert.Equal(t, CharInterval{Start: CharPos{0, 1}, End: CharPos{2, 0}}, got)
}

func TestTagContainerByName(t *testing.T) {
	tags := NewTagContainer()
	h := NewTag("highlight")
	tags.Add(CharInterval{Start: CharPos{0, 0}, End: CharPos{0, 1}}, h)
	tags.Add(CharInterval{Start: CharPos{3, 0}, End: CharPos{3, 1}}, h.Clone(1), h.Clone(2))
	tags.Add(CharInterval{Start: CharPos{5, 0}, End: CharPos{5, 1}}, NewTag("error"))

	assert.Equal(t, []Tag{h, h.Clone(1), h.Clone(2)}, tags.TagsByName("highlight"))
	assert.Nil(t, tags.TagsByName("missing"))

	tags.DeleteByName("highlight")
	assert.Empty(t, tags.TagsByName("highlight"))
	_, ok := tags.Lookup(h.Clone(1))
	assert.False(t, ok)
	_, ok = tags.LookupRange(CharInterval{Start: CharPos{3, 0}, End: CharPos{3, 1}})
	assert.False(t, ok)

	found, ok := tags.LookupRange(CharInterval{Start: CharPos{5, 0}, End: CharPos{5, 1}})
	require.True(t, ok)
	assert.Equal(t, []Tag{NewTag("error")}, found)
}

func TestTagContainerDeleteSharedInterval(t *testing.T) {
	tags := NewTagContainer()
	a, b := NewTag("a"), NewTag("b")
	iv := CharInterval{Start: CharPos{0, 0}, End: CharPos{0, 5}}
	tags.Add(iv, a, b)

	assert.True(t, tags.Delete(a))
	assert.False(t, tags.Delete(a))

	found, ok := tags.LookupRange(iv)
	require.True(t, ok)
	assert.Equal(t, []Tag{b}, found)
}

func TestTagContainerUpsert(t *testing.T) {
	tags := NewTagContainer()
	a := NewTag("a")
	tags.Upsert(a, CharInterval{Start: CharPos{0, 0}, End: CharPos{0, 2}})
	tags.Upsert(a, CharInterval{Start: CharPos{4, 0}, End: CharPos{4, 2}})

	got, ok := tags.Lookup(a)
	require.True(t, ok)
	assert.Equal(t, CharInterval{Start: CharPos{4, 0}, End: CharPos{4, 2}}, got)
	_, ok = tags.LookupRange(CharInterval{Start: CharPos{0, 0}, End: CharPos{0, 1}})
	assert.False(t, ok)
	assert.Equal(t, []Tag{a}, tags.TagsByName("a"))

	tags.Clear()
	_, ok = tags.Lookup(a)
	assert.False(t, ok)
	assert.Nil(t, tags.TagsByName("a"))
}
