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
	"fmt"
	"strings"
)

// DuplicateTargetError is returned by AddTarget when a target of that name exists.
type DuplicateTargetError struct {
	Name string
}

func (e *DuplicateTargetError) Error() string {
	return fmt.Sprintf("target %s already exists", e.Name)
}

// InvalidTargetError reports a TargetSpec that cannot be inserted.
type InvalidTargetError struct {
	Name   string
	Reason string
}

func (e *InvalidTargetError) Error() string {
	if e.Name == "" {
		return "invalid target: " + e.Reason
	}
	return fmt.Sprintf("invalid target %s: %s", e.Name, e.Reason)
}

// DanglingReference is an identifier used by an object but defined nowhere.
type DanglingReference struct {
	Owner string
	Key   string
	ID    string
}

func (d DanglingReference) String() string {
	return fmt.Sprintf("%s.%s -> %s", d.Owner, d.Key, d.ID)
}

// IntegrityError stops Save from writing a project with broken references.
type IntegrityError struct {
	Dangling []DanglingReference
}

func (e *IntegrityError) Error() string {
	refs := make([]string, len(e.Dangling))
	for i, d := range e.Dangling {
		refs[i] = d.String()
	}
	return "project has dangling references: " + strings.Join(refs, ", ")
}
