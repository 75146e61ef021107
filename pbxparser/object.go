package pbxparser

import (
	"encoding/json"
	"reflect"
)

type IterateActionType = int8

const (
	IterateActionContinue IterateActionType = iota
	IterateActionBreak
)

type ObjectItem = SliceItem

// Object is an ordered pbxproj dictionary. The zero value is empty and read-only;
// copies share storage.
type Object struct {
	*SliceMap
}

type ObjectWithUUID struct {
	Object
	UUID string
}

func NewObjectItem(key string, value interface{}) ObjectItem {
	return SliceItem{key, value}
}

func NewObject() Object {
	return Object{
		SliceMap: NewSliceMap(),
	}
}

func NewObjectWithData(items []ObjectItem) Object {
	o := NewObject()
	for _, item := range items {
		o.Set(item.key, item.data)
	}
	return o
}

func (o Object) toMarshalJSONData() map[string]interface{} {
	dataMap := make(map[string]interface{})
	o.Foreach(func(key string, val interface{}) IterateActionType {
		dataMap[key] = toMarshalJSONValue(val)
		return IterateActionContinue
	})
	return dataMap
}

func toMarshalJSONValue(val interface{}) interface{} {
	switch v := val.(type) {
	case Object:
		return v.toMarshalJSONData()
	case []interface{}:
		list := make([]interface{}, len(v))
		for i, item := range v {
			list[i] = toMarshalJSONValue(item)
		}
		return list
	default:
		return v
	}
}

func (o Object) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.toMarshalJSONData())
}

func (o Object) IsEmpty() bool {
	if o.SliceMap == nil {
		return true
	}
	return o.Size() == 0
}

// IsNil reports whether o has no backing storage at all; such an Object cannot be
// written to.
func (o Object) IsNil() bool {
	return o.SliceMap == nil
}

func (o Object) Get(key string) (interface{}, bool) {
	if o.SliceMap == nil {
		return nil, false
	}
	return o.SliceMap.Get(key)
}

func (o Object) ForceGet(key string) interface{} {
	v, _ := o.Get(key)
	return v
}

func (o Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

func (o Object) GetObject(key string) Object {
	if value, ok := o.Get(key); ok {
		if obj, ok := value.(Object); ok {
			return obj
		}
	}
	return Object{}
}

func (o Object) GetString(key string) string {
	if value, ok := o.Get(key); ok {
		if v, ok := value.(string); ok {
			return v
		}
	}
	return ""
}

func (o Object) GetInt(key string) int {
	if value, ok := o.Get(key); ok {
		switch value.(type) {
		case int, int8, int16, int32, int64:
			return int(reflect.ValueOf(value).Int())
		}
	}
	return 0
}

func (o Object) GetArray(key string) []interface{} {
	if value, ok := o.Get(key); ok {
		if v, ok := value.([]interface{}); ok {
			return v
		}
	}
	return nil
}

type ApplyFunc = func(key string, val interface{}) IterateActionType
type FilterFunc = func(key string, val interface{}) bool

func (o Object) Foreach(apply ApplyFunc) {
	o.ForeachWithFilter(apply, func(string, interface{}) bool { return true })
}

func (o Object) ForeachWithFilter(apply ApplyFunc, filter FilterFunc) {
	if o.IsEmpty() {
		return
	}
	// apply may delete entries; iterate over a snapshot.
	items := make([]*SliceItem, len(o.Items()))
	copy(items, o.Items())
	for _, item := range items {
		if item.data == nil || !filter(item.key, item.data) {
			continue
		}
		if apply(item.key, item.data) == IterateActionBreak {
			break
		}
	}
}

func (o Object) Filter(f FilterFunc) Object {
	newObj := NewObject()
	o.Foreach(func(key string, val interface{}) IterateActionType {
		if f(key, val) {
			newObj.Set(key, val)
		}
		return IterateActionContinue
	})
	return newObj
}

// Clone returns a deep copy of o. Lists and nested objects are copied, scalars
// are shared.
func (o Object) Clone() Object {
	if o.IsNil() {
		return Object{}
	}
	clone := NewObject()
	for _, item := range o.Items() {
		clone.Set(item.key, cloneValue(item.data))
	}
	return clone
}

func cloneValue(val interface{}) interface{} {
	switch v := val.(type) {
	case Object:
		return v.Clone()
	case []interface{}:
		items := make([]interface{}, len(v))
		for i, item := range v {
			items[i] = cloneValue(item)
		}
		return items
	}
	return val
}
