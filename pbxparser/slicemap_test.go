package pbxparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceMap_Order(t *testing.T) {
	m := NewSliceMap()
	m.Set("b", 2)
	m.Set("d", 4)
	m.InsertAt(0, "a", 1)
	m.InsertAt(2, "c", 3)
	m.Set("b", 20)
	assert.Equal(t, []string{"a", "b", "c", "d"}, m.Keys())
	assert.Equal(t, 20, m.ForceGet("b"))

	m.Delete("b")
	assert.Equal(t, []string{"a", "c", "d"}, m.Keys())
	for i, key := range m.Keys() {
		v, ok := m.Get(key)
		require.True(t, ok)
		at, _ := m.GetAt(i)
		assert.Equal(t, v, at, "index of %s out of date", key)
	}

	m.DeleteAt(0)
	m.InsertAt(99, "e", 5)
	assert.Equal(t, []string{"c", "d", "e"}, m.Keys())
	assert.False(t, m.Has("a"))

	m.Clear()
	assert.Equal(t, 0, m.Size())
}

func TestObject_ZeroValue(t *testing.T) {
	var o Object
	assert.True(t, o.IsNil())
	assert.True(t, o.IsEmpty())
	assert.False(t, o.Has("x"))
	assert.Equal(t, "", o.GetString("x"))
	assert.True(t, o.GetObject("x").IsNil())
	o.Foreach(func(string, interface{}) IterateActionType {
		t.Fatal("zero Object has no entries")
		return IterateActionBreak
	})
}

func TestObject_ForeachDeleting(t *testing.T) {
	o := NewObjectWithData([]ObjectItem{
		NewObjectItem("a", 1),
		NewObjectItem("b", 2),
		NewObjectItem("c", 3),
	})
	var seen []string
	o.Foreach(func(key string, _ interface{}) IterateActionType {
		seen = append(seen, key)
		o.Delete(key)
		return IterateActionContinue
	})
	assert.Equal(t, []string{"a", "b", "c"}, seen)
	assert.True(t, o.IsEmpty())
}

func TestObject_Clone(t *testing.T) {
	nested := NewObjectWithData([]ObjectItem{NewObjectItem("k", "v")})
	list := []interface{}{"a", NewObjectWithData([]ObjectItem{NewObjectItem("value", "X")})}
	o := NewObjectWithData([]ObjectItem{
		NewObjectItem("nested", nested),
		NewObjectItem("list", list),
		NewObjectItem("n", 1),
	})

	clone := o.Clone()
	nested.Set("k", "changed")
	list[0] = "changed"
	list[1].(Object).Set("value", "Y")
	o.Set("extra", "x")

	assert.Equal(t, []string{"nested", "list", "n"}, clone.Keys())
	assert.Equal(t, "v", clone.GetObject("nested").GetString("k"))
	assert.Equal(t, "a", clone.GetArray("list")[0])
	assert.Equal(t, "X", clone.GetArray("list")[1].(Object).GetString("value"))
	assert.Equal(t, 1, clone.GetInt("n"))
	assert.True(t, Object{}.Clone().IsNil())
}
