package zpad

import (
	"fmt"
	"sync"

	"github.com/lindell/go-ordered-set/orderedset"
	"github.com/rdleal/intervalst/interval"
)

// Tag marks a character interval in the editor display, for example the selection or a
// highlighted paren. Tags with the same name but different indices are distinct.
type Tag struct {
	name  string
	index int
}

// NewTag returns a tag with the given name and index 0.
func NewTag(name string) Tag {
	return Tag{name: name}
}

// Clone returns a tag with the same name and the given index.
func (t Tag) Clone(index int) Tag {
	return Tag{name: t.name, index: index}
}

// Name returns the tag's name.
func (t Tag) Name() string {
	return t.name
}

// Index returns the tag's index.
func (t Tag) Index() int {
	return t.index
}

func (t Tag) String() string {
	return fmt.Sprintf("%s#%d", t.name, t.index)
}

// TagContainer stores tags with their intervals. Intervals are indexed in an interval tree
// so that the tags overlapping a range can be found quickly.
type TagContainer struct {
	intervals map[Tag]CharInterval
	byName    map[string]*orderedset.OrderedSet[Tag]
	lookup    *interval.MultiValueSearchTree[Tag, CharPos]
	mutex     sync.Mutex
}

// NewTagContainer returns an empty tag container.
func NewTagContainer() *TagContainer {
	t := &TagContainer{}
	t.reset()
	return t
}

func (t *TagContainer) reset() {
	t.intervals = make(map[Tag]CharInterval)
	t.byName = make(map[string]*orderedset.OrderedSet[Tag])
	t.lookup = interval.NewMultiValueSearchTreeWithOptions[Tag, CharPos](CmpPos, interval.TreeWithIntervalPoint())
}

// Clear removes all tags.
func (t *TagContainer) Clear() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.reset()
}

// Lookup returns the interval of the tag and true, or false if the tag is not in the container.
func (t *TagContainer) Lookup(tag Tag) (CharInterval, bool) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	iv, ok := t.intervals[tag]
	return iv, ok
}

// LookupRange returns tags whose interval intersects the given one. The interval ends are
// treated as inclusive, so the result may contain tags that only touch the range.
func (t *TagContainer) LookupRange(iv CharInterval) ([]Tag, bool) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.lookup.AnyIntersection(iv.Start, iv.End)
}

// TagsByName returns all tags with the given name in the order they were added.
func (t *TagContainer) TagsByName(name string) []Tag {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	set, ok := t.byName[name]
	if !ok {
		return nil
	}
	var tags []Tag
	iter := set.Iter()
	for tag, ok := iter.Next(); ok; tag, ok = iter.Next() {
		tags = append(tags, tag)
	}
	return tags
}

// Add adds the tags with the given interval. A tag that is already present keeps its old interval
// in the tree until it is deleted, use Upsert to move a tag.
func (t *TagContainer) Add(iv CharInterval, tags ...Tag) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	iv = iv.MaybeSwap()
	t.lookup.Insert(iv.Start, iv.End, tags...)
	for _, tag := range tags {
		t.intervals[tag] = iv
		set, ok := t.byName[tag.name]
		if !ok {
			set = orderedset.New[Tag]()
			t.byName[tag.name] = set
		}
		set.Add(tag)
	}
}

// Delete removes the tag and returns true if it was present.
func (t *TagContainer) Delete(tag Tag) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.delete(tag)
}

func (t *TagContainer) delete(tag Tag) bool {
	iv, ok := t.intervals[tag]
	if !ok {
		return false
	}
	delete(t.intervals, tag)
	if set, ok := t.byName[tag.name]; ok {
		set.Delete(tag)
	}
	// the tree deletes all values of an interval, so the others sharing it are put back
	var rest []Tag
	for other, otherIv := range t.intervals {
		if otherIv == iv {
			rest = append(rest, other)
		}
	}
	t.lookup.Delete(iv.Start, iv.End)
	if len(rest) > 0 {
		t.lookup.Insert(iv.Start, iv.End, rest...)
	}
	return true
}

// DeleteByName removes all tags with the given name.
func (t *TagContainer) DeleteByName(name string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	set, ok := t.byName[name]
	if !ok {
		return
	}
	var tags []Tag
	iter := set.Iter()
	for tag, ok := iter.Next(); ok; tag, ok = iter.Next() {
		tags = append(tags, tag)
	}
	for _, tag := range tags {
		t.delete(tag)
	}
	delete(t.byName, name)
}

// Upsert sets the interval of the tag, adding it if necessary.
func (t *TagContainer) Upsert(tag Tag, iv CharInterval) {
	t.Delete(tag)
	t.Add(iv, tag)
}
