/**
Licensed to the Apache Software Foundation (ASF) under one
or more contributor license agreements.  See the NOTICE file
distributed with this work for additional information
regarding copyright ownership.  The ASF licenses this file
to you under the Apache License, Version 2.0 (the
'License'); you may not use this file except in compliance
with the License.  You may obtain a copy of the License at
http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing,
software distributed under the License is distributed on an
'AS IS' BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
KIND, either express or implied.  See the License for the
specific language governing permissions and limitations
under the License.
*/

package pbxproj

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/soapywu/pbxtarget/pbxparser"
)

const (
	INDENT = "\t"
)

type PbxWriterOption func(w *PbxWriter)

// WithOmitEmpty drops assignments whose value is an empty string.
func WithOmitEmpty() PbxWriterOption {
	return func(w *PbxWriter) {
		w.omitEmptyValues = true
	}
}

// PbxWriter renders a project model in the layout Xcode writes: tab indentation,
// one banner-wrapped block per object section, and PBXBuildFile and
// PBXFileReference records on a single line.
type PbxWriter struct {
	buffer          bytes.Buffer
	omitEmptyValues bool
	contents        pbxparser.Object
	logger          *slog.Logger
	indentLevel     int
	rendered        bool
}

func NewPbxWriter(project *PbxProject, options ...PbxWriterOption) *PbxWriter {
	w := &PbxWriter{
		contents: project.Contents(),
		logger:   project.logger,
	}
	for _, option := range options {
		option(w)
	}
	return w
}

func indent(x int) string {
	return strings.Repeat(INDENT, max(x, 0))
}

func getComment(key string, parent pbxparser.Object) string {
	return parent.GetString(toCommentKey(key))
}

func (w *PbxWriter) write(format string, args ...interface{}) {
	w.buffer.WriteString(indent(w.indentLevel))
	fmt.Fprintf(&w.buffer, format, args...)
}

func (w *PbxWriter) writeNoIndent(format string, args ...interface{}) {
	fmt.Fprintf(&w.buffer, format, args...)
}

func (w *PbxWriter) render() {
	if w.rendered {
		return
	}
	w.rendered = true
	w.writeHeadComment()
	w.writeProject()
}

// Bytes returns the serialized project.
func (w *PbxWriter) Bytes() []byte {
	w.render()
	return bytes.Clone(w.buffer.Bytes())
}

func (w *PbxWriter) WriteTo(writer io.Writer) (int64, error) {
	w.render()
	n, err := writer.Write(w.buffer.Bytes())
	return int64(n), err
}

// Write stores the serialized project at filePath without the integrity checks
// PbxProject.Save performs.
func (w *PbxWriter) Write(filePath string) error {
	return os.WriteFile(filePath, w.Bytes(), 0644)
}

func (w *PbxWriter) writeHeadComment() {
	comment := w.contents.GetString(pbxparser.HeadCommentKey)
	if comment != "" {
		w.writeNoIndent("// %s\n", comment)
	}
}

func (w *PbxWriter) writeProject() {
	proj := w.contents.GetObject(pbxparser.ProjectKey)

	w.write("{\n")
	w.indentLevel++
	proj.ForeachWithFilter(func(key string, val interface{}) pbxparser.IterateActionType {
		if key == "objects" && isObject(val) {
			w.write("%s = {\n", key)
			w.indentLevel++
			w.writeObjectsSections(toObject(val))
			w.indentLevel--
			w.write("};\n")
			return pbxparser.IterateActionContinue
		}
		w.writeEntry(key, val, getComment(key, proj))
		return pbxparser.IterateActionContinue
	}, nonCommentsFilter)
	w.indentLevel--

	w.write("}\n")
}

func (w *PbxWriter) scalar(val interface{}) (string, bool) {
	switch {
	case isString(val):
		str := toString(val)
		if str == "" {
			return `""`, true
		}
		return str, true
	case isInt(val):
		return toIntString(val), true
	}
	return "", false
}

func (w *PbxWriter) skip(val interface{}) bool {
	return w.omitEmptyValues && isString(val) && toString(val) == ""
}

func (w *PbxWriter) writeEntry(key string, val interface{}, cmt string) {
	if w.skip(val) {
		return
	}
	if isArray(val) {
		w.writeArray(toArray(val), key)
		return
	}
	if isObject(val) {
		w.write("%s = {\n", key)
		w.indentLevel++
		w.writeObject(toObject(val))
		w.indentLevel--
		w.write("};\n")
		return
	}
	str, ok := w.scalar(val)
	if !ok {
		w.logger.Warn("Unsupported value skipped.", "key", key, "type", fmt.Sprintf("%T", val))
		return
	}
	if cmt != "" {
		w.write("%s = %s /* %s */;\n", key, str, cmt)
	} else {
		w.write("%s = %s;\n", key, str)
	}
}

func (w *PbxWriter) writeObject(obj pbxparser.Object) {
	obj.ForeachWithFilter(func(key string, val interface{}) pbxparser.IterateActionType {
		w.writeEntry(key, val, getComment(key, obj))
		return pbxparser.IterateActionContinue
	}, nonCommentsFilter)
}

// writeObjectsSections writes each section between its banners. Records kept
// outside any section are written where they stand.
func (w *PbxWriter) writeObjectsSections(obj pbxparser.Object) {
	obj.ForeachWithFilter(func(key string, val interface{}) pbxparser.IterateActionType {
		if !isObject(val) {
			w.writeEntry(key, val, getComment(key, obj))
			return pbxparser.IterateActionContinue
		}
		value := toObject(val)
		if value.Has("isa") {
			w.writeRecord(key, getComment(key, obj), value)
			return pbxparser.IterateActionContinue
		}
		if value.IsEmpty() {
			return pbxparser.IterateActionContinue
		}
		w.writeNoIndent("\n")
		w.writeSectionComment(key, true)
		w.writeSection(value)
		w.writeSectionComment(key, false)
		return pbxparser.IterateActionContinue
	}, nonCommentsFilter)
}

func (w *PbxWriter) writeArray(arr []interface{}, name string) {
	w.write("%s = (\n", name)
	w.indentLevel++

	for _, obj := range arr {
		if ref, ok := toCommentValue(obj); ok && isObject(obj) {
			w.write("%s /* %s */,\n", ref.Value, ref.Comment)
		} else if isObject(obj) {
			w.write("{\n")
			w.indentLevel++
			w.writeObject(toObject(obj))
			w.indentLevel--
			w.write("},\n")
		} else if isArray(obj) {
			w.logger.Warn("Nested list skipped.", "key", name)
		} else if str, ok := w.scalar(obj); ok {
			w.write("%s,\n", str)
		} else {
			w.logger.Warn("Unsupported list item skipped.", "key", name, "type", fmt.Sprintf("%T", obj))
		}
	}
	w.indentLevel--
	w.write(");\n")
}

func (w *PbxWriter) writeSectionComment(name string, begin bool) {
	if begin {
		w.writeNoIndent("/* Begin %s section */\n", name)
	} else {
		w.writeNoIndent("/* End %s section */\n", name)
	}
}

func (w *PbxWriter) writeSection(section pbxparser.Object) {
	section.ForeachWithFilter(func(key string, val interface{}) pbxparser.IterateActionType {
		if !isObject(val) {
			w.writeEntry(key, val, getComment(key, section))
			return pbxparser.IterateActionContinue
		}
		w.writeRecord(key, getComment(key, section), toObject(val))
		return pbxparser.IterateActionContinue
	}, nonCommentsFilter)
}

func (w *PbxWriter) writeRecord(key, cmt string, obj pbxparser.Object) {
	isa := obj.GetString("isa")
	if isa == "PBXBuildFile" || isa == "PBXFileReference" {
		w.writeInlineObject(key, cmt, obj)
		return
	}
	if cmt != "" {
		w.write("%s /* %s */ = {\n", key, cmt)
	} else {
		w.write("%s = {\n", key)
	}
	w.indentLevel++
	w.writeObject(obj)
	w.indentLevel--
	w.write("};\n")
}

func (w *PbxWriter) writeInlineValue(sb *strings.Builder, key string, val interface{}, cmt string) {
	if w.skip(val) {
		return
	}
	switch {
	case isArray(val):
		fmt.Fprintf(sb, "%s = (", key)
		for _, item := range toArray(val) {
			if ref, ok := toCommentValue(item); ok && isObject(item) {
				fmt.Fprintf(sb, "%s /* %s */, ", ref.Value, ref.Comment)
			} else if str, ok := w.scalar(item); ok {
				fmt.Fprintf(sb, "%s, ", str)
			} else {
				w.logger.Warn("Unsupported inline list item skipped.", "key", key, "type", fmt.Sprintf("%T", item))
			}
		}
		sb.WriteString("); ")
	case isObject(val):
		fmt.Fprintf(sb, "%s = {", key)
		w.writeInlineBody(sb, toObject(val))
		sb.WriteString("}; ")
	default:
		str, ok := w.scalar(val)
		if !ok {
			w.logger.Warn("Unsupported inline value skipped.", "key", key, "type", fmt.Sprintf("%T", val))
			return
		}
		if cmt != "" {
			fmt.Fprintf(sb, "%s = %s /* %s */; ", key, str, cmt)
		} else {
			fmt.Fprintf(sb, "%s = %s; ", key, str)
		}
	}
}

func (w *PbxWriter) writeInlineBody(sb *strings.Builder, ref pbxparser.Object) {
	ref.ForeachWithFilter(func(key string, val interface{}) pbxparser.IterateActionType {
		w.writeInlineValue(sb, key, val, getComment(key, ref))
		return pbxparser.IterateActionContinue
	}, nonCommentsFilter)
}

func (w *PbxWriter) writeInlineObject(name string, desc string, ref pbxparser.Object) {
	var sb strings.Builder
	if desc != "" {
		fmt.Fprintf(&sb, "%s /* %s */ = {", name, desc)
	} else {
		fmt.Fprintf(&sb, "%s = {", name)
	}
	w.writeInlineBody(&sb, ref)
	sb.WriteString("};")
	w.write("%s\n", sb.String())
}
