package pbxproj

import (
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/soapywu/pbxtarget/pbxparser"
)

const COMMENT_KEY_SUFFIX = pbxparser.CommentKeySuffix

var uuidRegex = regexp.MustCompile(`^[0-9A-F]{24}$`)

// CommentValue is a reference followed by its `/* comment */`, the shape of every
// list member that points at another object.
type CommentValue struct {
	Value   string
	Comment string
}

func (c CommentValue) ToObject() pbxparser.Object {
	return pbxparser.NewObjectWithData([]pbxparser.ObjectItem{
		pbxparser.NewObjectItem("value", c.Value),
		pbxparser.NewObjectItem("comment", c.Comment),
	})
}

func toCommentValue(v interface{}) (CommentValue, bool) {
	switch v := v.(type) {
	case pbxparser.Object:
		if !v.Has("value") {
			return CommentValue{}, false
		}
		return CommentValue{Value: v.GetString("value"), Comment: v.GetString("comment")}, true
	case string:
		return CommentValue{Value: v}, true
	}
	return CommentValue{}, false
}

func isObject(obj interface{}) bool {
	_, ok := obj.(pbxparser.Object)
	return ok
}

func toObject(obj interface{}) pbxparser.Object {
	return obj.(pbxparser.Object)
}

func isArray(obj interface{}) bool {
	_, ok := obj.([]interface{})
	return ok
}

func toArray(obj interface{}) []interface{} {
	return obj.([]interface{})
}

func isString(obj interface{}) bool {
	_, ok := obj.(string)
	return ok
}

func toString(obj interface{}) string {
	return obj.(string)
}

func isInt(obj interface{}) bool {
	switch obj.(type) {
	case int, int8, int16, int32, int64:
		return true
	}
	return false
}

func toIntString(obj interface{}) string {
	switch obj.(type) {
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(obj).Int(), 10)
	}
	return ""
}

func toCommentKey(key string) string {
	return key + COMMENT_KEY_SUFFIX
}

func fromCommentKey(key string) string {
	return strings.TrimSuffix(key, COMMENT_KEY_SUFFIX)
}

func isCommentKey(key string) bool {
	return strings.HasSuffix(key, COMMENT_KEY_SUFFIX)
}

func nonCommentsFilter(key string, v interface{}) bool {
	return !onlyCommentsFilter(key, v)
}

func onlyCommentsFilter(key string, _ interface{}) bool {
	return isCommentKey(key)
}

func isUuid(s string) bool {
	return uuidRegex.MatchString(s)
}

func unquoted(text string) string {
	return pbxparser.Unquote(text)
}

func quoted(text string) string {
	return pbxparser.Quote(text)
}

func stringToInterfaceSlice(val []string) []interface{} {
	if val == nil {
		return nil
	}
	result := make([]interface{}, len(val))
	for i, v := range val {
		result[i] = v
	}
	return result
}

func addToObjectList(obj pbxparser.Object, key string, val interface{}) {
	if obj.IsNil() {
		return
	}
	list := obj.GetArray(key)
	obj.Set(key, append(list, val))
}

func addToObjectListOnlyNotExist(obj pbxparser.Object, key string, val interface{}, equal func(v1, v2 interface{}) bool) {
	if obj.IsNil() {
		return
	}
	for _, v := range obj.GetArray(key) {
		if equal(v, val) {
			return
		}
	}
	addToObjectList(obj, key, val)
}

func sameReference(v1, v2 interface{}) bool {
	c1, ok1 := toCommentValue(v1)
	c2, ok2 := toCommentValue(v2)
	return ok1 && ok2 && c1.Value == c2.Value
}

// setSorted stores an identifier-keyed record with its comment, keeping the
// section sorted by identifier the way Xcode writes it.
func setSorted(section pbxparser.Object, key string, val interface{}, comment string) {
	if section.Has(key) {
		section.Set(key, val)
	} else {
		keys := section.Keys()
		idx := sort.Search(len(keys), func(i int) bool {
			k := keys[i]
			return fromCommentKey(k) > key
		})
		section.InsertAt(idx, key, val)
	}
	if comment != "" {
		commentKey := toCommentKey(key)
		section.Delete(commentKey)
		section.InsertAt(indexOf(section, key)+1, commentKey, comment)
	}
}

func indexOf(obj pbxparser.Object, key string) int {
	for i, k := range obj.Keys() {
		if k == key {
			return i
		}
	}
	return -1
}

// sortedSettings renders a build setting map in Xcode's alphabetical order.
func sortedSettings(settings map[string]interface{}) pbxparser.Object {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	obj := pbxparser.NewObject()
	for _, k := range keys {
		obj.Set(quoted(k), settings[k])
	}
	return obj
}
