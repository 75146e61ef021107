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

	"github.com/soapywu/pbxtarget/pbxparser"
	"howett.net/plist"
)

// CheckReferences lists every identifier-shaped value that names no object in
// the file. Proxies into other projects are not followed.
func (p *PbxProject) CheckReferences() []DanglingReference {
	defined := make(map[string]struct{})
	p.forEachRecord(func(_, key string, _ pbxparser.Object) {
		defined[key] = struct{}{}
	})

	var dangling []DanglingReference
	if _, ok := defined[p.rootObjectUuid()]; !ok {
		dangling = append(dangling, DanglingReference{Owner: pbxparser.ProjectKey, Key: "rootObject", ID: p.rootObjectUuid()})
	}
	p.forEachRecord(func(_, owner string, record pbxparser.Object) {
		foreignProxy := unquoted(record.GetString("isa")) == "PBXContainerItemProxy" &&
			record.GetString("containerPortal") != p.rootObjectUuid()
		walkValues(record, "", func(key, value string) {
			if !isUuid(value) {
				return
			}
			if foreignProxy && key == "remoteGlobalIDString" {
				return
			}
			if _, ok := defined[value]; !ok {
				dangling = append(dangling, DanglingReference{Owner: owner, Key: key, ID: value})
			}
		})
	})
	return dangling
}

// VerifySerialized decodes data with an independent property list reader and
// checks that the objects table and the root object survived serialization.
func VerifySerialized(data []byte) error {
	var decoded map[string]interface{}
	if _, err := plist.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("serialized project does not decode: %w", err)
	}
	objects, ok := decoded["objects"].(map[string]interface{})
	if !ok {
		return errors.New("serialized project has no objects dictionary")
	}
	rootObject, _ := decoded["rootObject"].(string)
	root, ok := objects[rootObject].(map[string]interface{})
	if !ok {
		return fmt.Errorf("serialized project root object %q is missing", rootObject)
	}
	if isa, _ := root["isa"].(string); isa != "PBXProject" {
		return fmt.Errorf("serialized project root object %q is a %s", rootObject, isa)
	}
	return nil
}
