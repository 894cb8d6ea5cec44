// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package objectstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/avl"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/objectstore"
)

type widget struct {
	Id    objectstore.ObjectId `json:"id"`
	Name  string               `json:"name"`
	Owner uint64               `json:"owner"`
	Tags  []string             `json:"tags"`
}

func (w widget) ObjectID() objectstore.ObjectId { return w.Id }

func (w widget) Clone() widget {
	w.Tags = append([]string(nil), w.Tags...)
	return w
}

type fixture struct {
	db      *objectstore.Database
	widgets *objectstore.Index[widget]
	byName  *objectstore.Ordering[widget]
	byOwner *objectstore.Ordering[widget]
}

func setup() *fixture {
	db := objectstore.New()
	widgets := objectstore.NewIndex[widget](db, "widget", 1, 9)
	f := &fixture{
		db:      db,
		widgets: widgets,
		byName: widgets.AddOrdering("by_name", true, func(w widget) avl.Item {
			return objectstore.StringKey(w.Name)
		}),
		byOwner: widgets.AddOrdering("by_owner", false, func(w widget) avl.Item {
			return objectstore.Composite{objectstore.Uint64Key(w.Owner), objectstore.StringKey(w.Name)}
		}),
	}
	return f
}

func (f *fixture) create(t *testing.T, name string, owner uint64) objectstore.ObjectId {
	w, err := f.widgets.Create(func(id objectstore.ObjectId) widget {
		return widget{Id: id, Name: name, Owner: owner}
	})
	require.NoError(t, err, "create: %s", name)
	return w.Id
}

func TestObjectIdText(t *testing.T) {
	id, err := objectstore.ParseObjectId("1.3.42")
	assert.NoError(t, err, "parse")
	assert.Equal(t, objectstore.NewObjectId(1, 3, 42), id, "id")
	assert.Equal(t, "1.3.42", id.String(), "string")

	for _, s := range []string{"", "1.3", "1.3.x", "256.1.1", "1.2.3.4"} {
		_, err := objectstore.ParseObjectId(s)
		assert.Equal(t, fault.ErrInvalidObjectId, err, "parse: %q", s)
	}
}

func TestIdsAreNeverReused(t *testing.T) {
	f := setup()
	a := f.create(t, "a", 1)
	b := f.create(t, "b", 1)
	assert.Equal(t, uint64(0), a.Instance, "first instance")
	assert.Equal(t, uint64(1), b.Instance, "second instance")

	require.NoError(t, f.widgets.Remove(a), "remove")
	_, ok := f.widgets.Find(a)
	assert.False(t, ok, "removed object found")
	_, err := f.widgets.Get(a)
	assert.True(t, fault.IsErrRecord(err), "get removed: %v", err)

	c := f.create(t, "c", 2)
	assert.Equal(t, uint64(2), c.Instance, "instance after removal")

	_, ok = f.widgets.Find(a)
	assert.False(t, ok, "removed id must stay absent")
	assert.Equal(t, 2, f.widgets.Size(), "size")
}

func TestCreateRejectsWrongId(t *testing.T) {
	f := setup()
	_, err := f.widgets.Create(func(id objectstore.ObjectId) widget {
		id.Instance += 5
		return widget{Id: id, Name: "bad"}
	})
	assert.Equal(t, fault.ErrIdentifierMismatch, err, "create")
	assert.Equal(t, uint64(0), f.widgets.NextInstance(), "allocator must not move")
}

func TestUniqueOrdering(t *testing.T) {
	f := setup()
	f.create(t, "one", 1)
	_, err := f.widgets.Create(func(id objectstore.ObjectId) widget {
		return widget{Id: id, Name: "one"}
	})
	assert.True(t, fault.IsErrRecord(err), "duplicate: %v", err)

	two := f.create(t, "two", 1)
	err = f.widgets.Modify(two, func(w *widget) {
		w.Name = "one"
	})
	assert.True(t, fault.IsErrRecord(err), "modify to duplicate: %v", err)

	w, ok := f.byName.Find(objectstore.StringKey("two"))
	assert.True(t, ok, "original key kept")
	assert.Equal(t, two, w.Id, "found id")
}

func TestModifyResynchronisesOrderings(t *testing.T) {
	f := setup()
	id := f.create(t, "alpha", 1)
	f.create(t, "beta", 1)

	err := f.widgets.Modify(id, func(w *widget) {
		w.Name = "omega"
		w.Owner = 2
	})
	require.NoError(t, err, "modify")

	_, ok := f.byName.Find(objectstore.StringKey("alpha"))
	assert.False(t, ok, "old key still present")
	w, ok := f.byName.Find(objectstore.StringKey("omega"))
	assert.True(t, ok, "new key missing")
	assert.Equal(t, id, w.Id, "id")

	owned := []string{}
	f.byOwner.Prefix(objectstore.Composite{objectstore.Uint64Key(1)}, func(w widget) bool {
		owned = append(owned, w.Name)
		return true
	})
	assert.Equal(t, []string{"beta"}, owned, "owner 1")

	err = f.widgets.Modify(id, func(w *widget) {
		w.Id.Instance = 99
	})
	assert.Equal(t, fault.ErrIdChanged, err, "id change")
}

func TestOrderingPosition(t *testing.T) {
	f := setup()
	names := []string{"m", "c", "x", "a", "q"}
	ids := map[string]objectstore.ObjectId{}
	for i, n := range names {
		ids[n] = f.create(t, n, uint64(i))
	}

	expected := map[string]int{"a": 0, "c": 1, "m": 2, "q": 3, "x": 4}
	for n, rank := range expected {
		pos, ok := f.byName.Position(ids[n])
		assert.True(t, ok, "position: %s", n)
		assert.Equal(t, rank, pos, "position: %s", n)
	}

	w, ok := f.byName.At(3)
	assert.True(t, ok, "at")
	assert.Equal(t, "q", w.Name, "at 3")

	page := f.byName.Slice(1, 2)
	assert.Equal(t, 2, len(page), "slice length")
	assert.Equal(t, "c", page[0].Name, "slice 0")
	assert.Equal(t, "m", page[1].Name, "slice 1")
}

func TestUndoSessionRestoresState(t *testing.T) {
	f := setup()
	keep := f.create(t, "keep", 1)
	gone := f.create(t, "gone", 1)

	before := f.widgets.All()

	s := f.db.StartUndoSession()
	f.create(t, "new", 3)
	require.NoError(t, f.widgets.Modify(keep, func(w *widget) {
		w.Tags = append(w.Tags, "changed")
		w.Owner = 7
	}))
	require.NoError(t, f.widgets.Remove(gone))
	s.Undo()

	assert.Equal(t, before, f.widgets.All(), "objects after undo")
	assert.Equal(t, uint64(2), f.widgets.NextInstance(), "allocator after undo")
	_, ok := f.byName.Find(objectstore.StringKey("new"))
	assert.False(t, ok, "undone create still indexed")
	w, ok := f.byName.Find(objectstore.StringKey("gone"))
	assert.True(t, ok, "undone remove not restored")
	assert.Equal(t, gone, w.Id, "restored id")
	assert.Equal(t, 0, f.db.Depth(), "session stack")
}

func TestNestedSessionCommit(t *testing.T) {
	f := setup()

	outer := f.db.StartUndoSession()
	inner := f.db.StartUndoSession()
	f.create(t, "inner", 1)
	inner.Commit()
	assert.Equal(t, 1, f.widgets.Size(), "after inner commit")

	outer.Undo()
	assert.Equal(t, 0, f.widgets.Size(), "outer undo reverts committed inner work")
}

func TestSessionsCloseInOrder(t *testing.T) {
	f := setup()

	outer := f.db.StartUndoSession()
	inner := f.db.StartUndoSession()
	assert.PanicsWithValue(t, "objectstore: session closed out of order, depth: 2", outer.Commit, "outer before inner")

	inner.Commit()
	assert.PanicsWithValue(t, "objectstore: session already closed", inner.Undo, "closed twice")

	outer.Undo()
	assert.Equal(t, 0, f.db.Depth(), "session stack")
}

func TestCheckpointRoundTrip(t *testing.T) {
	f := setup()
	f.create(t, "a", 1)
	b := f.create(t, "b", 2)
	require.NoError(t, f.widgets.Remove(b))

	assert.Equal(t, []uint64{0, 1}, f.widgets.Dirty(), "dirty")

	records := [][]byte{}
	for _, instance := range f.widgets.Dirty() {
		data, ok, err := f.widgets.Marshal(instance)
		require.NoError(t, err, "marshal")
		if ok {
			records = append(records, data)
		}
	}
	assert.Equal(t, 1, len(records), "live records")

	g := setup()
	require.NoError(t, g.widgets.Load(f.widgets.NextInstance(), records), "load")
	assert.Equal(t, f.widgets.All(), g.widgets.All(), "restored objects")
	assert.Equal(t, uint64(2), g.widgets.NextInstance(), "restored allocator")
	assert.Empty(t, g.widgets.Dirty(), "dirty after load")

	obj, ok := g.db.FindObject(objectstore.NewObjectId(1, 9, 0))
	assert.True(t, ok, "generic find")
	assert.Equal(t, "a", obj.(widget).Name, "generic object")
}
