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
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/soapywu/pbxtarget/pbxparser"
)

type ProjectOption func(p *PbxProject)

// WithLogger routes edit diagnostics to logger. The default discards them.
func WithLogger(logger *slog.Logger) ProjectOption {
	return func(p *PbxProject) {
		p.logger = logger
	}
}

// WithUuidGenerator replaces the random identifier source. Collisions with
// existing identifiers are still skipped.
func WithUuidGenerator(gen func() string) ProjectOption {
	return func(p *PbxProject) {
		p.newUuid = gen
	}
}

type PbxProject struct {
	filePath          string
	fileMode          fs.FileMode
	logger            *slog.Logger
	newUuid           func() string
	pbxContents       pbxparser.Object
	topProjectSection pbxparser.Object
	pbxObjectSection  pbxparser.Object
	uuids             map[string]struct{}
	danglingAtLoad    map[string]struct{}
}

func NewPbxProject(filename string, options ...ProjectOption) *PbxProject {
	p := &PbxProject{
		filePath: filename,
		fileMode: 0644,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		newUuid:  randomUuid,
		uuids:    make(map[string]struct{}),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Load reads and parses the project file at path.
func Load(path string, options ...ProjectOption) (*PbxProject, error) {
	p := NewPbxProject(path, options...)
	if err := p.Parse(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PbxProject) FilePath() string {
	return p.filePath
}

func (p *PbxProject) Contents() pbxparser.Object {
	return p.pbxContents
}

func (p *PbxProject) Parse() error {
	data, err := os.ReadFile(p.filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", p.filePath, err)
	}
	if info, err := os.Stat(p.filePath); err == nil {
		p.fileMode = info.Mode().Perm()
	}
	return p.ParseBytes(data)
}

// ParseBytes builds the model from serialized project text. Text that parses as a
// property list but lacks the objects dictionary or the root object is rejected
// with a *pbxparser.ParseError as well.
func (p *PbxProject) ParseBytes(data []byte) error {
	contents, err := pbxparser.Parse(data)
	if err != nil {
		return err
	}
	project := contents.GetObject(pbxparser.ProjectKey)
	objects := project.GetObject("objects")
	if objects.IsNil() {
		return &pbxparser.ParseError{Line: 1, Column: 1, Msg: "no objects dictionary"}
	}
	if project.GetString("rootObject") == "" {
		return &pbxparser.ParseError{Line: 1, Column: 1, Msg: "no rootObject"}
	}
	if p.rootProjectIn(objects, project.GetString("rootObject")).IsNil() {
		return &pbxparser.ParseError{Line: 1, Column: 1, Msg: "rootObject is not a PBXProject"}
	}

	p.pbxContents = contents
	p.topProjectSection = project
	p.pbxObjectSection = objects
	p.buildExistUuids()

	p.danglingAtLoad = make(map[string]struct{})
	for _, d := range p.CheckReferences() {
		p.danglingAtLoad[d.String()] = struct{}{}
	}
	p.logger.Debug("Project parsed.", "path", p.filePath, "sections", objects.Size(), "objects", len(p.uuids))
	return nil
}

// snapshot is a copy of the model an edit can be rolled back to.
type snapshot struct {
	contents pbxparser.Object
	uuids    map[string]struct{}
}

func (p *PbxProject) snapshot() snapshot {
	uuids := make(map[string]struct{}, len(p.uuids))
	for k := range p.uuids {
		uuids[k] = struct{}{}
	}
	return snapshot{contents: p.pbxContents.Clone(), uuids: uuids}
}

func (p *PbxProject) restore(s snapshot) {
	p.pbxContents = s.contents
	p.topProjectSection = s.contents.GetObject(pbxparser.ProjectKey)
	p.pbxObjectSection = p.topProjectSection.GetObject("objects")
	p.uuids = s.uuids
}

func (p *PbxProject) rootProjectIn(objects pbxparser.Object, rootUuid string) pbxparser.Object {
	return objects.GetObject("PBXProject").GetObject(rootUuid)
}

func (p *PbxProject) Dump(writer io.Writer) error {
	buffer := bytes.NewBuffer([]byte{})
	jsonEncoder := json.NewEncoder(buffer)
	jsonEncoder.SetEscapeHTML(false)
	jsonEncoder.SetIndent("", "  ")
	if err := jsonEncoder.Encode(p.Contents()); err != nil {
		return err
	}
	_, err := writer.Write(buffer.Bytes())
	return err
}

// Bytes serializes the current model.
func (p *PbxProject) Bytes() []byte {
	return NewPbxWriter(p).Bytes()
}

// Serialize renders the model after checking it. It refuses references that
// were not dangling when the file was loaded, and output that an independent
// plist decoder cannot read back.
func (p *PbxProject) Serialize() ([]byte, error) {
	var introduced []DanglingReference
	for _, d := range p.CheckReferences() {
		if _, known := p.danglingAtLoad[d.String()]; !known {
			introduced = append(introduced, d)
		}
	}
	if len(introduced) > 0 {
		return nil, &IntegrityError{Dangling: introduced}
	}

	data := p.Bytes()
	if err := VerifySerialized(data); err != nil {
		return nil, err
	}
	return data, nil
}

// Save serializes the checked model and replaces path atomically, keeping the
// mode of the file it was loaded from.
func (p *PbxProject) Save(path string) error {
	data, err := p.Serialize()
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, data, p.fileMode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	p.logger.Debug("Project saved.", "path", path, "bytes", len(data))
	return nil
}

func writeFileAtomic(path string, data []byte, mode fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (p *PbxProject) buildExistUuids() {
	uuids := make(map[string]struct{})
	p.forEachRecord(func(_, key string, record pbxparser.Object) {
		uuids[key] = struct{}{}
		walkValues(record, "", func(_, value string) {
			if isUuid(value) {
				uuids[value] = struct{}{}
			}
		})
	})
	p.uuids = uuids
}

func randomUuid() string {
	u := uuid.Must(uuid.NewV4())
	return strings.ToUpper(strings.ReplaceAll(u.String(), "-", "")[0:24])
}

func (p *PbxProject) generateUuid() string {
	for {
		newUUID := p.newUuid()
		if _, found := p.uuids[newUUID]; !found {
			p.uuids[newUUID] = struct{}{}
			return newUUID
		}
	}
}

// forEachRecord visits every identifier-keyed object, whether it sits in a
// "Begin X section" block or loose in objects.
func (p *PbxProject) forEachRecord(visit func(section, key string, record pbxparser.Object)) {
	p.pbxObjectSection.ForeachWithFilter(func(name string, v interface{}) pbxparser.IterateActionType {
		obj, ok := v.(pbxparser.Object)
		if !ok {
			return pbxparser.IterateActionContinue
		}
		if obj.Has("isa") {
			visit(unquoted(obj.GetString("isa")), name, obj)
			return pbxparser.IterateActionContinue
		}
		obj.ForeachWithFilter(func(key string, value interface{}) pbxparser.IterateActionType {
			if record, ok := value.(pbxparser.Object); ok {
				visit(name, key, record)
			}
			return pbxparser.IterateActionContinue
		}, nonCommentsFilter)
		return pbxparser.IterateActionContinue
	}, nonCommentsFilter)
}

// walkValues calls visit for every scalar string below v, with the key it is
// stored under.
func walkValues(v interface{}, key string, visit func(key, value string)) {
	switch v := v.(type) {
	case string:
		visit(key, v)
	case []interface{}:
		for _, item := range v {
			walkValues(item, key, visit)
		}
	case pbxparser.Object:
		if ref, ok := toCommentValue(v); ok && v.Has("comment") {
			visit(key, ref.Value)
			return
		}
		v.ForeachWithFilter(func(k string, value interface{}) pbxparser.IterateActionType {
			walkValues(value, k, visit)
			return pbxparser.IterateActionContinue
		}, nonCommentsFilter)
	}
}

// section returns the objects section for isa, creating it at its alphabetical
// position when missing.
func (p *PbxProject) section(isa string) pbxparser.Object {
	section := p.pbxObjectSection.GetObject(isa)
	if !section.IsNil() {
		return section
	}
	section = pbxparser.NewObject()
	idx := p.pbxObjectSection.Size()
	for i, key := range p.pbxObjectSection.Keys() {
		if key > isa {
			idx = i
			break
		}
	}
	p.pbxObjectSection.InsertAt(idx, isa, section)
	p.logger.Debug("Section created.", "section", isa)
	return section
}

func (p *PbxProject) addObject(isa, key string, record pbxparser.Object, comment string) {
	setSorted(p.section(isa), key, record, comment)
	p.logger.Debug("Object added.", "isa", isa, "uuid", key, "comment", comment)
}

func (p *PbxProject) objectByUuid(key string) (record pbxparser.Object, isa string) {
	p.forEachRecord(func(section, k string, obj pbxparser.Object) {
		if k == key && record.IsNil() {
			record, isa = obj, section
		}
	})
	return
}

func (p *PbxProject) rootObjectUuid() string {
	return p.topProjectSection.GetString("rootObject")
}

func (p *PbxProject) rootProject() pbxparser.ObjectWithUUID {
	return pbxparser.ObjectWithUUID{
		UUID:   p.rootObjectUuid(),
		Object: p.rootProjectIn(p.pbxObjectSection, p.rootObjectUuid()),
	}
}

// groups

func (p *PbxProject) pbxGroupByKey(key string) pbxparser.Object {
	return p.pbxObjectSection.GetObject("PBXGroup").GetObject(key)
}

func groupDisplayName(group pbxparser.Object) string {
	if name := group.GetString("name"); name != "" {
		return unquoted(name)
	}
	return unquoted(group.GetString("path"))
}

// findChildGroup returns the key of the PBXGroup child of parentKey named name.
func (p *PbxProject) findChildGroup(parentKey, name string) string {
	for _, child := range p.pbxGroupByKey(parentKey).GetArray("children") {
		ref, ok := toCommentValue(child)
		if !ok {
			continue
		}
		group := p.pbxGroupByKey(ref.Value)
		if !group.IsNil() && groupDisplayName(group) == name {
			return ref.Value
		}
	}
	return ""
}

// addToPbxGroup appends child to the group. In the main group the child goes
// before the Products group, where Xcode keeps it.
func (p *PbxProject) addToPbxGroup(groupKey string, child CommentValue) {
	group := p.pbxGroupByKey(groupKey)
	if group.IsNil() {
		return
	}
	children := group.GetArray("children")
	productsKey := p.rootProject().GetString("productRefGroup")
	if groupKey == p.rootProject().GetString("mainGroup") {
		for i, v := range children {
			if ref, ok := toCommentValue(v); ok && ref.Value == productsKey {
				children = append(children[:i], append([]interface{}{child.ToObject()}, children[i:]...)...)
				group.Set("children", children)
				return
			}
		}
	}
	group.Set("children", append(children, child.ToObject()))
}

func (p *PbxProject) pbxCreateGroup(parentKey, name, pathName string) string {
	key, comment := p.newGroupRecord(name, pathName)
	p.addToPbxGroup(parentKey, CommentValue{Value: key, Comment: comment})
	return key
}

func (p *PbxProject) newGroupRecord(name, pathName string) (key, comment string) {
	model := pbxparser.NewObjectWithData([]pbxparser.ObjectItem{
		pbxparser.NewObjectItem("isa", "PBXGroup"),
		pbxparser.NewObjectItem("children", []interface{}{}),
	})
	if name != "" && name != pathName {
		model.Set("name", quoted(name))
	}
	if pathName != "" {
		model.Set("path", quoted(pathName))
	}
	model.Set("sourceTree", DEFAULT_SOURCETREE)

	comment = name
	if comment == "" {
		comment = pathName
	}
	key = p.generateUuid()
	p.addObject("PBXGroup", key, model, comment)
	return key, comment
}

// frameworksGroupKey returns the main group's Frameworks child. A new one is
// appended after Products, where Xcode creates it.
func (p *PbxProject) frameworksGroupKey() string {
	mainGroupKey := p.rootProject().GetString("mainGroup")
	if key := p.findChildGroup(mainGroupKey, "Frameworks"); key != "" {
		return key
	}
	key, comment := p.newGroupRecord("Frameworks", "")
	mainGroup := p.pbxGroupByKey(mainGroupKey)
	if !mainGroup.IsNil() {
		mainGroup.Set("children", append(mainGroup.GetArray("children"), CommentValue{Value: key, Comment: comment}.ToObject()))
	}
	return key
}

// groupFileReference returns the PBXFileReference child of groupKey whose path is
// filePath.
func (p *PbxProject) groupFileReference(groupKey, filePath string) string {
	for _, child := range p.pbxGroupByKey(groupKey).GetArray("children") {
		ref, ok := toCommentValue(child)
		if !ok {
			continue
		}
		fileRef := p.pbxObjectSection.GetObject("PBXFileReference").GetObject(ref.Value)
		if !fileRef.IsNil() && unquoted(fileRef.GetString("path")) == filePath {
			return ref.Value
		}
	}
	return ""
}

// sdkFileReference returns an existing SDK-relative reference to filePath, so
// system frameworks are referenced once per project.
func (p *PbxProject) sdkFileReference(filePath string) string {
	found := ""
	p.pbxObjectSection.GetObject("PBXFileReference").ForeachWithFilter(func(key string, val interface{}) pbxparser.IterateActionType {
		ref, ok := val.(pbxparser.Object)
		if ok && ref.GetString("sourceTree") == "SDKROOT" && unquoted(ref.GetString("path")) == filePath {
			found = key
			return pbxparser.IterateActionBreak
		}
		return pbxparser.IterateActionContinue
	}, nonCommentsFilter)
	return found
}

// build phases

var ISA_BY_PHASE = map[string]string{
	PHASE_SOURCES:    "PBXSourcesBuildPhase",
	PHASE_FRAMEWORKS: "PBXFrameworksBuildPhase",
	PHASE_RESOURCES:  "PBXResourcesBuildPhase",
}

type copyFilesDestination struct {
	dstPath       string
	subfolderSpec int
}

func (p *PbxProject) addBuildPhase(target pbxparser.ObjectWithUUID, isa, name string, dest *copyFilesDestination) (string, pbxparser.Object) {
	buildPhase := pbxparser.NewObject()
	buildPhase.Set("isa", isa)
	buildPhase.Set("buildActionMask", 2147483647)
	if dest != nil {
		buildPhase.Set("dstPath", quoted(dest.dstPath))
		buildPhase.Set("dstSubfolderSpec", dest.subfolderSpec)
	}
	buildPhase.Set("files", []interface{}{})
	if dest != nil {
		buildPhase.Set("name", quoted(name))
	}
	buildPhase.Set("runOnlyForDeploymentPostprocessing", 0)

	key := p.generateUuid()
	p.addObject(isa, key, buildPhase, name)
	addToObjectList(target.Object, "buildPhases", CommentValue{Value: key, Comment: name}.ToObject())
	return key, buildPhase
}

// buildPhaseOf finds the first phase of the given isa in the target.
func (p *PbxProject) buildPhaseOf(target pbxparser.Object, isa string) (string, pbxparser.Object) {
	section := p.pbxObjectSection.GetObject(isa)
	for _, v := range target.GetArray("buildPhases") {
		ref, ok := toCommentValue(v)
		if !ok {
			continue
		}
		if phase := section.GetObject(ref.Value); !phase.IsNil() {
			return ref.Value, phase
		}
	}
	return "", pbxparser.Object{}
}

func (p *PbxProject) copyFilesPhaseOf(target pbxparser.Object, dest copyFilesDestination) (string, pbxparser.Object) {
	section := p.pbxObjectSection.GetObject("PBXCopyFilesBuildPhase")
	for _, v := range target.GetArray("buildPhases") {
		ref, ok := toCommentValue(v)
		if !ok {
			continue
		}
		phase := section.GetObject(ref.Value)
		if phase.IsNil() {
			continue
		}
		if phase.GetInt("dstSubfolderSpec") == dest.subfolderSpec && unquoted(phase.GetString("dstPath")) == dest.dstPath {
			return ref.Value, phase
		}
	}
	return "", pbxparser.Object{}
}

func (p *PbxProject) ensureBuildPhase(target pbxparser.ObjectWithUUID, phaseName string) pbxparser.Object {
	isa := ISA_BY_PHASE[phaseName]
	if _, phase := p.buildPhaseOf(target.Object, isa); !phase.IsNil() {
		return phase
	}
	_, phase := p.addBuildPhase(target, isa, phaseName, nil)
	return phase
}

// files

// addFile references filePath from groupKey and, when the file type belongs to a
// build phase, adds a PBXBuildFile to that phase of target. A reference the group
// already holds for the path is reused.
func (p *PbxProject) addFile(target pbxparser.ObjectWithUUID, groupKey, filePath string, options PbxFileOptions) (*PbxFile, error) {
	pbxfile := newPbxFile(filePath, options)
	if pbxfile.Path == "" || pbxfile.Basename == "." || pbxfile.Basename == "/" {
		return nil, fmt.Errorf("invalid file path %q", filePath)
	}

	if pbxfile.SourceTree == "SDKROOT" {
		pbxfile.FileRef = p.sdkFileReference(pbxfile.Path)
	}
	if pbxfile.FileRef == "" {
		pbxfile.FileRef = p.groupFileReference(groupKey, pbxfile.Path)
	}
	if pbxfile.FileRef == "" {
		pbxfile.FileRef = p.generateUuid()
		p.addObject("PBXFileReference", pbxfile.FileRef, fileReferenceObj(pbxfile), pbxfile.Basename)
		p.addToPbxGroup(groupKey, CommentValue{Value: pbxfile.FileRef, Comment: pbxfile.Basename})
	}

	if pbxfile.Phase != "" && !target.IsNil() {
		phase := p.ensureBuildPhase(target, pbxfile.Phase)
		if p.phaseHasFile(phase, pbxfile.FileRef) {
			return pbxfile, nil
		}
		pbxfile.Uuid = p.generateUuid()
		p.addObject("PBXBuildFile", pbxfile.Uuid, buildFileObj(pbxfile), longComment(pbxfile))
		addToObjectList(phase, "files", CommentValue{Value: pbxfile.Uuid, Comment: longComment(pbxfile)}.ToObject())
	}
	return pbxfile, nil
}

func (p *PbxProject) phaseHasFile(phase pbxparser.Object, fileRef string) bool {
	buildFiles := p.pbxObjectSection.GetObject("PBXBuildFile")
	for _, v := range phase.GetArray("files") {
		if ref, ok := toCommentValue(v); ok && buildFiles.GetObject(ref.Value).GetString("fileRef") == fileRef {
			return true
		}
	}
	return false
}

func (p *PbxProject) addProductFile(basename, fileType string) *PbxFile {
	product := newPbxFile(basename, PbxFileOptions{ExplicitFileType: fileType})
	product.FileRef = p.generateUuid()
	p.addObject("PBXFileReference", product.FileRef, fileReferenceObj(product), product.Basename)
	p.addToPbxGroup(p.rootProject().GetString("productRefGroup"), CommentValue{Value: product.FileRef, Comment: product.Basename})
	return product
}

// targetGroupKey picks the group files added to an existing target go to: the
// main-group child named after the target, else the main group.
func (p *PbxProject) targetGroupKey(targetName string) string {
	mainGroup := p.rootProject().GetString("mainGroup")
	if key := p.findChildGroup(mainGroup, targetName); key != "" {
		return key
	}
	return mainGroup
}

func (p *PbxProject) AddSourceFile(targetName, filePath string) error {
	target, ok := p.findTarget(targetName)
	if !ok {
		return fmt.Errorf("target %s not found", targetName)
	}
	_, err := p.addFile(target, p.targetGroupKey(targetName), filePath, PbxFileOptions{Phase: PHASE_SOURCES})
	return err
}

func (p *PbxProject) AddResourceFile(targetName, filePath string) error {
	target, ok := p.findTarget(targetName)
	if !ok {
		return fmt.Errorf("target %s not found", targetName)
	}
	_, err := p.addFile(target, p.targetGroupKey(targetName), filePath, PbxFileOptions{Phase: PHASE_RESOURCES})
	return err
}

// AddHeaderFile references a header from the target's group. Headers of app
// targets are not compiled, so no build file is created.
func (p *PbxProject) AddHeaderFile(targetName, filePath string) error {
	if _, ok := p.findTarget(targetName); !ok {
		return fmt.Errorf("target %s not found", targetName)
	}
	_, err := p.addFile(pbxparser.ObjectWithUUID{}, p.targetGroupKey(targetName), filePath, PbxFileOptions{Phase: "-"})
	return err
}

// AddFramework links a framework or library into the target; bare names such as
// "AVFoundation.framework" resolve to the SDK. One given with a directory is
// project-relative and its directory joins FRAMEWORK_SEARCH_PATHS, or
// LIBRARY_SEARCH_PATHS for libraries.
func (p *PbxProject) AddFramework(targetName, framework string) error {
	target, ok := p.findTarget(targetName)
	if !ok {
		return fmt.Errorf("target %s not found", targetName)
	}
	return p.linkFramework(target, targetName, framework)
}

func (p *PbxProject) linkFramework(target pbxparser.ObjectWithUUID, targetName, framework string) error {
	pbxfile, err := p.addFile(target, p.frameworksGroupKey(), framework, PbxFileOptions{Phase: PHASE_FRAMEWORKS})
	if err != nil {
		return err
	}
	searchPath := searchPathForFile(pbxfile)
	if searchPath == "" {
		return nil
	}
	setting := "LIBRARY_SEARCH_PATHS"
	if pbxfile.LastKnownFileType == "wrapper.framework" {
		setting = "FRAMEWORK_SEARCH_PATHS"
	}
	return p.AddToSearchPaths(setting, searchPath, "", targetName)
}

// searchPathForFile is the search path entry a project-relative framework or
// library needs; SDK files need none.
func searchPathForFile(pbxfile *PbxFile) string {
	if pbxfile.SourceTree == "SDKROOT" {
		return ""
	}
	dir := path.Dir(pbxfile.Path)
	if dir == "." {
		return "$(PROJECT_DIR)"
	}
	return "$(PROJECT_DIR)/" + dir
}

// configurations

func (p *PbxProject) addXCConfigurationList(configurationObjectsArray []pbxparser.Object, defaultConfigurationName, comment string) pbxparser.ObjectWithUUID {
	buildConfigurations := make([]interface{}, 0, len(configurationObjectsArray))
	for _, configuration := range configurationObjectsArray {
		configurationUuid := p.generateUuid()
		name := unquoted(configuration.GetString("name"))
		p.addObject("XCBuildConfiguration", configurationUuid, configuration, name)
		buildConfigurations = append(buildConfigurations, CommentValue{
			Value:   configurationUuid,
			Comment: name,
		}.ToObject())
	}

	xcConfigurationList := pbxparser.NewObjectWithData([]pbxparser.ObjectItem{
		pbxparser.NewObjectItem("isa", "XCConfigurationList"),
		pbxparser.NewObjectItem("buildConfigurations", buildConfigurations),
		pbxparser.NewObjectItem("defaultConfigurationIsVisible", 0),
		pbxparser.NewObjectItem("defaultConfigurationName", quoted(defaultConfigurationName)),
	})
	xcConfigurationListUuid := p.generateUuid()
	p.addObject("XCConfigurationList", xcConfigurationListUuid, xcConfigurationList, comment)

	return pbxparser.ObjectWithUUID{
		UUID:   xcConfigurationListUuid,
		Object: xcConfigurationList,
	}
}

// buildConfigurationsOf returns the XCBuildConfiguration records of the named
// target, or every configuration in the file when targetName is empty.
func (p *PbxProject) buildConfigurationsOf(targetName string) ([]pbxparser.Object, error) {
	section := p.pbxObjectSection.GetObject("XCBuildConfiguration")
	var configs []pbxparser.Object
	if targetName == "" {
		section.ForeachWithFilter(func(_ string, val interface{}) pbxparser.IterateActionType {
			if obj, ok := val.(pbxparser.Object); ok {
				configs = append(configs, obj)
			}
			return pbxparser.IterateActionContinue
		}, nonCommentsFilter)
		return configs, nil
	}

	target, ok := p.findTarget(targetName)
	if !ok {
		return nil, fmt.Errorf("target %s not found", targetName)
	}
	list := p.pbxObjectSection.GetObject("XCConfigurationList").GetObject(target.GetString("buildConfigurationList"))
	for _, v := range list.GetArray("buildConfigurations") {
		if ref, ok := toCommentValue(v); ok {
			if config := section.GetObject(ref.Value); !config.IsNil() {
				configs = append(configs, config)
			}
		}
	}
	return configs, nil
}

// AddBuildProperty sets prop to value in the matching configurations; empty
// buildName or targetName match all. Values are quoted as needed; new keys are
// inserted in alphabetical position.
func (p *PbxProject) AddBuildProperty(prop, value, buildName, targetName string) error {
	configs, err := p.buildConfigurationsOf(targetName)
	if err != nil {
		return err
	}
	key := quoted(prop)
	for _, configuration := range configs {
		if buildName != "" && unquoted(configuration.GetString("name")) != buildName {
			continue
		}
		buildSettings := configuration.GetObject("buildSettings")
		if buildSettings.IsNil() {
			buildSettings = pbxparser.NewObject()
			configuration.Set("buildSettings", buildSettings)
		}
		if buildSettings.Has(key) {
			buildSettings.Set(key, quoted(value))
			continue
		}
		idx := buildSettings.Size()
		for i, k := range buildSettings.Keys() {
			if unquoted(k) > prop {
				idx = i
				break
			}
		}
		buildSettings.InsertAt(idx, key, quoted(value))
	}
	return nil
}

// AddToSearchPaths appends searchPath to a list setting such as
// FRAMEWORK_SEARCH_PATHS in the matching configurations. A missing setting starts
// from "$(inherited)"; paths already listed are not repeated.
func (p *PbxProject) AddToSearchPaths(setting, searchPath, buildName, targetName string) error {
	configs, err := p.buildConfigurationsOf(targetName)
	if err != nil {
		return err
	}
	key := quoted(setting)
	entry := quoted(searchPath)
	for _, configuration := range configs {
		if buildName != "" && unquoted(configuration.GetString("name")) != buildName {
			continue
		}
		buildSettings := configuration.GetObject("buildSettings")
		if buildSettings.IsNil() {
			buildSettings = pbxparser.NewObject()
			configuration.Set("buildSettings", buildSettings)
		}
		var paths []interface{}
		switch v := buildSettings.ForceGet(key).(type) {
		case nil:
			paths = []interface{}{quoted("$(inherited)")}
		case string:
			paths = []interface{}{v}
		case []interface{}:
			paths = v
		}
		listed := false
		for _, existing := range paths {
			if s, ok := existing.(string); ok && unquoted(s) == searchPath {
				listed = true
			}
		}
		if !listed {
			paths = append(paths, entry)
		}
		setSorted(buildSettings, key, paths, "")
	}
	return nil
}

// GetBuildProperty returns the unquoted values of prop across the matching
// configurations.
func (p *PbxProject) GetBuildProperty(prop, buildName, targetName string) ([]string, error) {
	configs, err := p.buildConfigurationsOf(targetName)
	if err != nil {
		return nil, err
	}
	var props []string
	for _, configuration := range configs {
		if buildName != "" && unquoted(configuration.GetString("name")) != buildName {
			continue
		}
		value, ok := configuration.GetObject("buildSettings").Get(quoted(prop))
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			props = append(props, unquoted(v))
		case []interface{}:
			for _, item := range v {
				if s, ok := item.(string); ok {
					props = append(props, unquoted(s))
				}
			}
		default:
			props = append(props, toIntString(v))
		}
	}
	return props, nil
}

// dependencies

// AddTargetDependency makes target depend on every target in dependencyTargets,
// creating a PBXTargetDependency and its PBXContainerItemProxy for each.
// Existing dependencies are left alone.
func (p *PbxProject) AddTargetDependency(target string, dependencyTargets []string) error {
	targetObj, _ := p.objectByUuid(target)
	if targetObj.IsNil() {
		return fmt.Errorf("target %s not found", target)
	}
	for _, dependencyTarget := range dependencyTargets {
		if obj, _ := p.objectByUuid(dependencyTarget); obj.IsNil() {
			return fmt.Errorf("dependency target %s not found", dependencyTarget)
		}
	}

	for _, dependencyTargetUuid := range dependencyTargets {
		if p.dependsOn(targetObj, dependencyTargetUuid) {
			continue
		}
		dependencyObj, _ := p.objectByUuid(dependencyTargetUuid)
		dependencyName := unquoted(dependencyObj.GetString("name"))

		itemProxyUuid := p.generateUuid()
		itemProxy := pbxparser.NewObjectWithData([]pbxparser.ObjectItem{
			pbxparser.NewObjectItem("isa", "PBXContainerItemProxy"),
			pbxparser.NewObjectItem("containerPortal", p.rootObjectUuid()),
			pbxparser.NewObjectItem(toCommentKey("containerPortal"), "Project object"),
			pbxparser.NewObjectItem("proxyType", 1),
			pbxparser.NewObjectItem("remoteGlobalIDString", dependencyTargetUuid),
			pbxparser.NewObjectItem("remoteInfo", quoted(dependencyName)),
		})
		p.addObject("PBXContainerItemProxy", itemProxyUuid, itemProxy, "PBXContainerItemProxy")

		targetDependencyUuid := p.generateUuid()
		targetDependency := pbxparser.NewObjectWithData([]pbxparser.ObjectItem{
			pbxparser.NewObjectItem("isa", "PBXTargetDependency"),
			pbxparser.NewObjectItem("target", dependencyTargetUuid),
			pbxparser.NewObjectItem(toCommentKey("target"), dependencyName),
			pbxparser.NewObjectItem("targetProxy", itemProxyUuid),
			pbxparser.NewObjectItem(toCommentKey("targetProxy"), "PBXContainerItemProxy"),
		})
		p.addObject("PBXTargetDependency", targetDependencyUuid, targetDependency, "PBXTargetDependency")

		addToObjectList(targetObj, "dependencies", CommentValue{
			Value:   targetDependencyUuid,
			Comment: "PBXTargetDependency",
		}.ToObject())
	}
	return nil
}

func (p *PbxProject) dependsOn(targetObj pbxparser.Object, dependencyTargetUuid string) bool {
	section := p.pbxObjectSection.GetObject("PBXTargetDependency")
	for _, v := range targetObj.GetArray("dependencies") {
		ref, ok := toCommentValue(v)
		if ok && section.GetObject(ref.Value).GetString("target") == dependencyTargetUuid {
			return true
		}
	}
	return false
}
