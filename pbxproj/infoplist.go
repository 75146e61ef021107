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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"howett.net/plist"
)

const AUDIO_UNIT_EXTENSION_POINT = "com.apple.AudioUnit-UI"

type infoPlist struct {
	CFBundleDevelopmentRegion     string       `plist:"CFBundleDevelopmentRegion"`
	CFBundleDisplayName           string       `plist:"CFBundleDisplayName"`
	CFBundleExecutable            string       `plist:"CFBundleExecutable"`
	CFBundleIdentifier            string       `plist:"CFBundleIdentifier"`
	CFBundleInfoDictionaryVersion string       `plist:"CFBundleInfoDictionaryVersion"`
	CFBundleName                  string       `plist:"CFBundleName"`
	CFBundlePackageType           string       `plist:"CFBundlePackageType"`
	CFBundleShortVersionString    string       `plist:"CFBundleShortVersionString"`
	CFBundleVersion               string       `plist:"CFBundleVersion"`
	NSExtension                   *nsExtension `plist:"NSExtension,omitempty"`
}

type nsExtension struct {
	NSExtensionAttributes      nsExtensionAttributes `plist:"NSExtensionAttributes"`
	NSExtensionPointIdentifier string                `plist:"NSExtensionPointIdentifier"`
	NSExtensionPrincipalClass  string                `plist:"NSExtensionPrincipalClass,omitempty"`
}

type nsExtensionAttributes struct {
	AudioComponents []audioComponent `plist:"AudioComponents"`
}

type audioComponent struct {
	Description     string   `plist:"description"`
	FactoryFunction string   `plist:"factoryFunction"`
	Manufacturer    string   `plist:"manufacturer"`
	Name            string   `plist:"name"`
	SandboxSafe     bool     `plist:"sandboxSafe"`
	Subtype         string   `plist:"subtype"`
	Tags            []string `plist:"tags,omitempty"`
	Type            string   `plist:"type"`
	Version         int      `plist:"version"`
}

func newInfoPlist(spec TargetSpec) infoPlist {
	info := infoPlist{
		CFBundleDevelopmentRegion:     "$(DEVELOPMENT_LANGUAGE)",
		CFBundleDisplayName:           spec.Name,
		CFBundleExecutable:            "$(EXECUTABLE_NAME)",
		CFBundleIdentifier:            "$(PRODUCT_BUNDLE_IDENTIFIER)",
		CFBundleInfoDictionaryVersion: "6.0",
		CFBundleName:                  "$(PRODUCT_NAME)",
		CFBundlePackageType:           "$(PRODUCT_BUNDLE_PACKAGE_TYPE)",
		CFBundleShortVersionString:    "$(MARKETING_VERSION)",
		CFBundleVersion:               "$(CURRENT_PROJECT_VERSION)",
	}
	if au := spec.AudioUnit; au != nil && TARGET_TYPES[spec.Type].embed == embedExtensions {
		version := au.Version
		if version == 0 {
			version = 1
		}
		description := au.Description
		if description == "" {
			description = au.Name
		}
		info.NSExtension = &nsExtension{
			NSExtensionAttributes: nsExtensionAttributes{
				AudioComponents: []audioComponent{{
					Description:     description,
					FactoryFunction: au.Factory,
					Manufacturer:    au.Manufacturer,
					Name:            au.Name,
					SandboxSafe:     true,
					Subtype:         au.Subtype,
					Tags:            au.Tags,
					Type:            au.Type,
					Version:         version,
				}},
			},
			NSExtensionPointIdentifier: AUDIO_UNIT_EXTENSION_POINT,
			NSExtensionPrincipalClass:  au.PrincipalClass,
		}
	}
	return info
}

// WriteInfoPlist writes the Info.plist the target's INFOPLIST_FILE setting points
// at, below dir. An existing file is left alone and created is false.
func WriteInfoPlist(dir string, spec TargetSpec) (path string, created bool, err error) {
	folder := filepath.Join(dir, filepath.FromSlash(spec.folder()))
	path = filepath.Join(folder, "Info.plist")
	if err := os.MkdirAll(folder, 0755); err != nil {
		return path, false, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		return path, false, nil
	}
	if err != nil {
		return path, false, err
	}
	defer f.Close()

	encoder := plist.NewEncoderForFormat(f, plist.XMLFormat)
	encoder.Indent("\t")
	if err := encoder.Encode(newInfoPlist(spec)); err != nil {
		return path, false, fmt.Errorf("encode %s: %w", path, err)
	}
	return path, true, f.Close()
}
