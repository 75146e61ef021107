package pbxparser

// SliceItem is a single key/value pair of a SliceMap, in insertion order.
type SliceItem struct {
	key  string
	data interface{}
}

func (i SliceItem) Key() string {
	return i.key
}

func (i SliceItem) Value() interface{} {
	return i.data
}

// SliceMap is a map that remembers insertion order. pbxproj output must keep the
// order Xcode wrote, so every dictionary of the model is backed by one.
type SliceMap struct {
	mp map[string]int
	sl []*SliceItem
}

func NewSliceMap() *SliceMap {
	return &SliceMap{
		mp: make(map[string]int),
		sl: make([]*SliceItem, 0),
	}
}

func (m *SliceMap) ForceGet(key string) interface{} {
	v, _ := m.Get(key)
	return v
}

func (m *SliceMap) Get(key string) (interface{}, bool) {
	idx, found := m.mp[key]
	if !found {
		return nil, false
	}
	return m.sl[idx].data, true
}

// Set replaces the value in place when key exists, otherwise appends.
func (m *SliceMap) Set(key string, v interface{}) {
	if idx, found := m.mp[key]; found {
		m.sl[idx] = &SliceItem{key: key, data: v}
		return
	}
	m.sl = append(m.sl, &SliceItem{key: key, data: v})
	m.mp[key] = len(m.sl) - 1
}

// InsertAt places a new key at position idx. Existing keys are replaced in place.
func (m *SliceMap) InsertAt(idx int, key string, v interface{}) {
	if _, found := m.mp[key]; found {
		m.Set(key, v)
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.sl) {
		m.Set(key, v)
		return
	}
	m.sl = append(m.sl, nil)
	copy(m.sl[idx+1:], m.sl[idx:])
	m.sl[idx] = &SliceItem{key: key, data: v}
	m.reindex(idx)
}

func (m *SliceMap) Has(key string) bool {
	_, found := m.mp[key]
	return found
}

func (m *SliceMap) Delete(key string) {
	idx, found := m.mp[key]
	if !found {
		return
	}
	m.DeleteAt(idx)
}

func (m *SliceMap) Clear() {
	m.mp = make(map[string]int)
	m.sl = make([]*SliceItem, 0)
}

func (m *SliceMap) Size() int {
	return len(m.sl)
}

func (m *SliceMap) Items() []*SliceItem {
	return m.sl
}

func (m *SliceMap) Keys() []string {
	keys := make([]string, len(m.sl))
	for i, item := range m.sl {
		keys[i] = item.key
	}
	return keys
}

func (m *SliceMap) GetAt(idx int) (interface{}, bool) {
	if idx < 0 || idx >= len(m.sl) {
		return nil, false
	}
	return m.sl[idx].data, true
}

func (m *SliceMap) DeleteAt(idx int) {
	if idx < 0 || idx >= len(m.sl) {
		return
	}
	delete(m.mp, m.sl[idx].key)
	m.sl = append(m.sl[:idx], m.sl[idx+1:]...)
	m.reindex(idx)
}

// reindex refreshes positions from idx onwards after a shift.
func (m *SliceMap) reindex(from int) {
	for i := from; i < len(m.sl); i++ {
		m.mp[m.sl[i].key] = i
	}
}
