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
	"path"
	"strings"

	"github.com/soapywu/pbxtarget/pbxparser"
)

const (
	DEFAULT_SOURCETREE         = `"<group>"`
	DEFAULT_PRODUCT_SOURCETREE = "BUILT_PRODUCTS_DIR"
	DEFAULT_FILETYPE           = "unknown"

	PHASE_SOURCES    = "Sources"
	PHASE_FRAMEWORKS = "Frameworks"
	PHASE_RESOURCES  = "Resources"
)

var FILETYPE_BY_EXTENSION = map[string]string{
	"a":            "archive.ar",
	"app":          "wrapper.application",
	"appex":        "wrapper.app-extension",
	"bundle":       "wrapper.plug-in",
	"c":            "sourcecode.c.c",
	"cpp":          "sourcecode.cpp.cpp",
	"dylib":        "compiled.mach-o.dylib",
	"entitlements": "text.plist.entitlements",
	"framework":    "wrapper.framework",
	"h":            "sourcecode.c.h",
	"json":         "text.json",
	"m":            "sourcecode.c.objc",
	"markdown":     "text",
	"md":           "net.daringfireball.markdown",
	"metal":        "sourcecode.metal",
	"mm":           "sourcecode.cpp.objcpp",
	"pch":          "sourcecode.c.h",
	"plist":        "text.plist.xml",
	"sh":           "text.script.sh",
	"storyboard":   "file.storyboard",
	"strings":      "text.plist.strings",
	"swift":        "sourcecode.swift",
	"tbd":          "sourcecode.text-based-dylib-definition",
	"xcassets":     "folder.assetcatalog",
	"xcconfig":     "text.xcconfig",
	"xcdatamodel":  "wrapper.xcdatamodel",
	"xcodeproj":    "wrapper.pb-project",
	"xctest":       "wrapper.cfbundle",
	"xib":          "file.xib",
}

// PHASE_BY_FILETYPE names the build phase a file of that type is compiled, linked
// or copied in. Types missing here are referenced from the group only.
var PHASE_BY_FILETYPE = map[string]string{
	"archive.ar":                             PHASE_FRAMEWORKS,
	"compiled.mach-o.dylib":                  PHASE_FRAMEWORKS,
	"sourcecode.text-based-dylib-definition": PHASE_FRAMEWORKS,
	"wrapper.framework":                      PHASE_FRAMEWORKS,
	"sourcecode.c.c":                         PHASE_SOURCES,
	"sourcecode.c.objc":                      PHASE_SOURCES,
	"sourcecode.cpp.cpp":                     PHASE_SOURCES,
	"sourcecode.cpp.objcpp":                  PHASE_SOURCES,
	"sourcecode.metal":                       PHASE_SOURCES,
	"sourcecode.swift":                       PHASE_SOURCES,
	"file.storyboard":                        PHASE_RESOURCES,
	"file.xib":                               PHASE_RESOURCES,
	"folder.assetcatalog":                    PHASE_RESOURCES,
	"text.json":                              PHASE_RESOURCES,
	"text.plist.strings":                     PHASE_RESOURCES,
	"wrapper.plug-in":                        PHASE_RESOURCES,
}

var PATH_BY_FILETYPE = map[string]string{
	"compiled.mach-o.dylib":                  "usr/lib/",
	"sourcecode.text-based-dylib-definition": "usr/lib/",
	"wrapper.framework":                      "System/Library/Frameworks/",
}

var SOURCETREE_BY_FILETYPE = map[string]string{
	"compiled.mach-o.dylib":                  "SDKROOT",
	"sourcecode.text-based-dylib-definition": "SDKROOT",
	"wrapper.framework":                      "SDKROOT",
}

type PbxFileOptions struct {
	LastKnownFileType string
	ExplicitFileType  string
	SourceTree        string
	// Phase overrides the build phase chosen from the file type; "-" keeps the
	// file out of every phase.
	Phase    string
	Settings pbxparser.Object
}

// PbxFile is a file about to be referenced by the project: its PBXFileReference
// (FileRef) and, when it belongs to a build phase, its PBXBuildFile (Uuid).
type PbxFile struct {
	Basename          string
	Name              string
	Path              string
	FileRef           string
	Uuid              string
	LastKnownFileType string
	ExplicitFileType  string
	SourceTree        string
	Phase             string
	Settings          pbxparser.Object
}

func newPbxFile(filePath string, options PbxFileOptions) *PbxFile {
	filePath = strings.ReplaceAll(filePath, `\`, "/")
	pbxfile := &PbxFile{
		Basename: path.Base(filePath),
		Path:     filePath,
		Settings: options.Settings,
	}

	if options.ExplicitFileType != "" {
		// product references
		pbxfile.ExplicitFileType = options.ExplicitFileType
		pbxfile.Path = pbxfile.Basename
		pbxfile.SourceTree = DEFAULT_PRODUCT_SOURCETREE
		return pbxfile
	}

	if options.LastKnownFileType != "" {
		pbxfile.LastKnownFileType = options.LastKnownFileType
	} else {
		pbxfile.LastKnownFileType = detectType(filePath)
	}

	pbxfile.Phase = PHASE_BY_FILETYPE[pbxfile.LastKnownFileType]
	if options.Phase == "-" {
		pbxfile.Phase = ""
	} else if options.Phase != "" {
		pbxfile.Phase = options.Phase
	}

	if sourceTree, ok := SOURCETREE_BY_FILETYPE[pbxfile.LastKnownFileType]; ok && !strings.Contains(filePath, "/") {
		pbxfile.SourceTree = sourceTree
		pbxfile.Path = PATH_BY_FILETYPE[pbxfile.LastKnownFileType] + pbxfile.Basename
		pbxfile.Name = pbxfile.Basename
	} else {
		pbxfile.SourceTree = DEFAULT_SOURCETREE
		if pbxfile.Path != pbxfile.Basename {
			pbxfile.Name = pbxfile.Basename
		}
	}
	if options.SourceTree != "" {
		pbxfile.SourceTree = options.SourceTree
	}
	return pbxfile
}

func detectType(filePath string) string {
	ext := strings.TrimPrefix(path.Ext(filePath), ".")
	if filetype, found := FILETYPE_BY_EXTENSION[strings.ToLower(ext)]; found {
		return filetype
	}
	return DEFAULT_FILETYPE
}

// fileReferenceObj builds the PBXFileReference record; keys follow Xcode's order.
func fileReferenceObj(pbxfile *PbxFile) pbxparser.Object {
	obj := pbxparser.NewObject()
	obj.Set("isa", "PBXFileReference")
	if pbxfile.ExplicitFileType != "" {
		obj.Set("explicitFileType", quoted(pbxfile.ExplicitFileType))
		obj.Set("includeInIndex", 0)
	} else {
		obj.Set("lastKnownFileType", quoted(pbxfile.LastKnownFileType))
	}
	if pbxfile.Name != "" {
		obj.Set("name", quoted(pbxfile.Name))
	}
	obj.Set("path", quoted(pbxfile.Path))
	obj.Set("sourceTree", pbxfile.SourceTree)
	return obj
}

func buildFileObj(pbxfile *PbxFile) pbxparser.Object {
	obj := pbxparser.NewObject()
	obj.Set("isa", "PBXBuildFile")
	obj.Set("fileRef", pbxfile.FileRef)
	obj.Set(toCommentKey("fileRef"), pbxfile.Basename)
	if !pbxfile.Settings.IsEmpty() {
		obj.Set("settings", pbxfile.Settings)
	}
	return obj
}

func longComment(pbxfile *PbxFile) string {
	return pbxfile.Basename + " in " + pbxfile.Phase
}
