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
	"sort"
	"strconv"
	"strings"

	"github.com/soapywu/pbxtarget/pbxparser"
)

// AudioUnitSpec describes the AudioComponents entry of an audio unit extension.
type AudioUnitSpec struct {
	Type           string
	Subtype        string
	Manufacturer   string
	Name           string
	Description    string
	Factory        string
	Version        int
	Tags           []string
	PrincipalClass string
}

// TargetSpec is everything AddTarget needs to insert a native target.
type TargetSpec struct {
	Name string
	// Type is one of the keys of TARGET_TYPES, e.g. "application" or "app_extension".
	Type string
	// Subfolder is the on-disk folder and group holding the target's files;
	// defaults to Name.
	Subfolder     string
	BundleID      string
	Sources       []string
	Resources     []string
	Headers       []string
	Frameworks    []string
	EmbedIn       string
	DependsOn     []string
	BuildSettings map[string]string
	// SearchPaths appends entries to list settings such as FRAMEWORK_SEARCH_PATHS.
	SearchPaths map[string][]string
	AudioUnit   *AudioUnitSpec
}

func (s TargetSpec) folder() string {
	if s.Subfolder != "" {
		return s.Subfolder
	}
	return strings.TrimSpace(s.Name)
}

// Target is a read view of a target record.
type Target struct {
	UUID                   string
	Name                   string
	ProductType            string
	ProductReference       string
	BuildConfigurationList string
	BuildPhases            []CommentValue
	Dependencies           []string
}

type targetType struct {
	productType string
	fileType    string
	extension   string
	skipInstall bool
	runpaths    []string
	embed       *embedding
}

type embedding struct {
	phaseName  string
	dest       copyFilesDestination
	attributes []string
}

var (
	embedExtensions = &embedding{
		phaseName:  "Embed Foundation Extensions",
		dest:       copyFilesDestination{subfolderSpec: 13},
		attributes: []string{"RemoveHeadersOnCopy"},
	}
	embedFrameworks = &embedding{
		phaseName:  "Embed Frameworks",
		dest:       copyFilesDestination{subfolderSpec: 10},
		attributes: []string{"CodeSignOnCopy", "RemoveHeadersOnCopy"},
	}
	embedAppClips = &embedding{
		phaseName:  "Embed App Clips",
		dest:       copyFilesDestination{dstPath: "$(CONTENTS_FOLDER_PATH)/AppClips", subfolderSpec: 16},
		attributes: []string{"RemoveHeadersOnCopy"},
	}
	embedWatchContent = &embedding{
		phaseName:  "Embed Watch Content",
		dest:       copyFilesDestination{dstPath: "$(CONTENTS_FOLDER_PATH)/Watch", subfolderSpec: 16},
		attributes: []string{"RemoveHeadersOnCopy"},
	}

	appRunpaths       = []string{"$(inherited)", "@executable_path/Frameworks"}
	extensionRunpaths = []string{"$(inherited)", "@executable_path/Frameworks", "@executable_path/../../Frameworks"}
	frameworkRunpaths = []string{"$(inherited)", "@executable_path/Frameworks", "@loader_path/Frameworks"}
)

var TARGET_TYPES = map[string]targetType{
	"application":       {productType: "com.apple.product-type.application", fileType: "wrapper.application", extension: "app", runpaths: appRunpaths},
	"app_clip":          {productType: "com.apple.product-type.application.on-demand-install-capable", fileType: "wrapper.application", extension: "app", runpaths: appRunpaths, embed: embedAppClips},
	"app_extension":     {productType: "com.apple.product-type.app-extension", fileType: "wrapper.app-extension", extension: "appex", skipInstall: true, runpaths: extensionRunpaths, embed: embedExtensions},
	"bundle":            {productType: "com.apple.product-type.bundle", fileType: "wrapper.plug-in", extension: "bundle", skipInstall: true},
	"command_line_tool": {productType: "com.apple.product-type.tool", fileType: "compiled.mach-o.executable"},
	"dynamic_library":   {productType: "com.apple.product-type.library.dynamic", fileType: "compiled.mach-o.dylib", extension: "dylib", skipInstall: true, embed: embedFrameworks},
	"framework":         {productType: "com.apple.product-type.framework", fileType: "wrapper.framework", extension: "framework", skipInstall: true, runpaths: frameworkRunpaths, embed: embedFrameworks},
	"static_library":    {productType: "com.apple.product-type.library.static", fileType: "archive.ar", extension: "a", skipInstall: true},
	"unit_test_bundle":  {productType: "com.apple.product-type.bundle.unit-test", fileType: "wrapper.cfbundle", extension: "xctest"},
	"ui_test_bundle":    {productType: "com.apple.product-type.bundle.ui-testing", fileType: "wrapper.cfbundle", extension: "xctest"},
	"watch2_app":        {productType: "com.apple.product-type.application.watchapp2", fileType: "wrapper.application", extension: "app", skipInstall: true, embed: embedWatchContent},
	"watch2_extension":  {productType: "com.apple.product-type.watchkit2-extension", fileType: "wrapper.app-extension", extension: "appex", skipInstall: true, runpaths: extensionRunpaths, embed: embedExtensions},
}

var targetSections = []string{"PBXNativeTarget", "PBXAggregateTarget", "PBXLegacyTarget"}

func (p *PbxProject) findTarget(name string) (pbxparser.ObjectWithUUID, bool) {
	for _, sectionName := range targetSections {
		var found pbxparser.ObjectWithUUID
		p.pbxObjectSection.GetObject(sectionName).ForeachWithFilter(func(key string, val interface{}) pbxparser.IterateActionType {
			target, ok := val.(pbxparser.Object)
			if ok && unquoted(target.GetString("name")) == name {
				found = pbxparser.ObjectWithUUID{UUID: key, Object: target}
				return pbxparser.IterateActionBreak
			}
			return pbxparser.IterateActionContinue
		}, nonCommentsFilter)
		if found.UUID != "" {
			return found, true
		}
	}
	return pbxparser.ObjectWithUUID{}, false
}

// HasTarget reports whether a target record with this name exists. Only target
// records are consulted; comments and string values elsewhere never match.
func (p *PbxProject) HasTarget(name string) bool {
	_, ok := p.findTarget(strings.TrimSpace(name))
	return ok
}

func (p *PbxProject) Target(name string) (*Target, bool) {
	found, ok := p.findTarget(strings.TrimSpace(name))
	if !ok {
		return nil, false
	}
	return p.targetView(found), true
}

// Targets lists the targets in PBXProject order.
func (p *PbxProject) Targets() []*Target {
	var targets []*Target
	for _, v := range p.rootProject().GetArray("targets") {
		ref, ok := toCommentValue(v)
		if !ok {
			continue
		}
		if obj, _ := p.objectByUuid(ref.Value); !obj.IsNil() {
			targets = append(targets, p.targetView(pbxparser.ObjectWithUUID{UUID: ref.Value, Object: obj}))
		}
	}
	return targets
}

func (p *PbxProject) targetView(target pbxparser.ObjectWithUUID) *Target {
	view := &Target{
		UUID:                   target.UUID,
		Name:                   unquoted(target.GetString("name")),
		ProductType:            unquoted(target.GetString("productType")),
		ProductReference:       target.GetString("productReference"),
		BuildConfigurationList: target.GetString("buildConfigurationList"),
	}
	for _, v := range target.GetArray("buildPhases") {
		if ref, ok := toCommentValue(v); ok {
			view.BuildPhases = append(view.BuildPhases, ref)
		}
	}
	dependencies := p.pbxObjectSection.GetObject("PBXTargetDependency")
	for _, v := range target.GetArray("dependencies") {
		if ref, ok := toCommentValue(v); ok {
			view.Dependencies = append(view.Dependencies, dependencies.GetObject(ref.Value).GetString("target"))
		}
	}
	return view
}

func (p *PbxProject) validateTargetSpec(spec TargetSpec) (targetType, error) {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return targetType{}, &InvalidTargetError{Reason: "name missing"}
	}
	if p.HasTarget(name) {
		return targetType{}, &DuplicateTargetError{Name: name}
	}
	if spec.Type == "" {
		return targetType{}, &InvalidTargetError{Name: name, Reason: "type missing"}
	}
	kind, ok := TARGET_TYPES[spec.Type]
	if !ok {
		return targetType{}, &InvalidTargetError{Name: name, Reason: fmt.Sprintf("unknown type %q", spec.Type)}
	}
	if spec.EmbedIn != "" {
		if kind.embed == nil {
			return targetType{}, &InvalidTargetError{Name: name, Reason: fmt.Sprintf("%s products cannot be embedded", spec.Type)}
		}
		if !p.HasTarget(spec.EmbedIn) {
			return targetType{}, &InvalidTargetError{Name: name, Reason: "embedding target " + spec.EmbedIn + " not found"}
		}
	}
	for _, dependency := range spec.DependsOn {
		if !p.HasTarget(dependency) {
			return targetType{}, &InvalidTargetError{Name: name, Reason: "dependency " + dependency + " not found"}
		}
	}
	files := make(map[string]struct{})
	for _, list := range [][]string{spec.Sources, spec.Resources, spec.Headers, spec.Frameworks} {
		for _, file := range list {
			if _, dup := files[file]; dup {
				return targetType{}, &InvalidTargetError{Name: name, Reason: "file " + file + " listed twice"}
			}
			files[file] = struct{}{}
		}
	}
	if p.rootProject().GetString("mainGroup") == "" || p.rootProject().GetString("productRefGroup") == "" {
		return targetType{}, &InvalidTargetError{Name: name, Reason: "project has no main or products group"}
	}
	return kind, nil
}

// AddTarget inserts a native target with its configuration list, product
// reference, group, build phases, files, embedding and dependencies. The spec is
// validated before anything is changed, and a failure part way leaves the model
// as it was.
func (p *PbxProject) AddTarget(spec TargetSpec) (*Target, error) {
	kind, err := p.validateTargetSpec(spec)
	if err != nil {
		return nil, err
	}
	saved := p.snapshot()
	target, err := p.addTarget(spec, kind)
	if err != nil {
		p.restore(saved)
		p.logger.Debug("Target rolled back.", "name", spec.Name, "error", err)
		return nil, fmt.Errorf("add target %s: %w", strings.TrimSpace(spec.Name), err)
	}
	return target, nil
}

func (p *PbxProject) addTarget(spec TargetSpec, kind targetType) (*Target, error) {
	name := strings.TrimSpace(spec.Name)
	subfolder := spec.folder()
	p.logger.Debug("Adding target.", "name", name, "type", spec.Type, "subfolder", subfolder)

	configurationList := p.addXCConfigurationList(
		p.targetBuildConfigurations(spec, kind),
		"Release",
		`Build configuration list for PBXNativeTarget "`+name+`"`,
	)

	productName := name
	if kind.extension != "" {
		productName += "." + kind.extension
	}
	product := p.addProductFile(productName, kind.fileType)

	targetUuid := p.generateUuid()
	target := pbxparser.NewObjectWithData([]pbxparser.ObjectItem{
		pbxparser.NewObjectItem("isa", "PBXNativeTarget"),
		pbxparser.NewObjectItem("buildConfigurationList", configurationList.UUID),
		pbxparser.NewObjectItem(toCommentKey("buildConfigurationList"), `Build configuration list for PBXNativeTarget "`+name+`"`),
		pbxparser.NewObjectItem("buildPhases", []interface{}{}),
		pbxparser.NewObjectItem("buildRules", []interface{}{}),
		pbxparser.NewObjectItem("dependencies", []interface{}{}),
		pbxparser.NewObjectItem("name", quoted(name)),
		pbxparser.NewObjectItem("productName", quoted(name)),
		pbxparser.NewObjectItem("productReference", product.FileRef),
		pbxparser.NewObjectItem(toCommentKey("productReference"), product.Basename),
		pbxparser.NewObjectItem("productType", quoted(kind.productType)),
	})
	p.addObject("PBXNativeTarget", targetUuid, target, name)
	newTarget := pbxparser.ObjectWithUUID{UUID: targetUuid, Object: target}

	for _, phaseName := range []string{PHASE_SOURCES, PHASE_FRAMEWORKS, PHASE_RESOURCES} {
		p.addBuildPhase(newTarget, ISA_BY_PHASE[phaseName], phaseName, nil)
	}

	mainGroup := p.rootProject().GetString("mainGroup")
	groupKey := p.findChildGroup(mainGroup, subfolder)
	if groupKey == "" {
		groupKey = p.pbxCreateGroup(mainGroup, subfolder, subfolder)
	}
	for _, source := range spec.Sources {
		if _, err := p.addFile(newTarget, groupKey, source, PbxFileOptions{}); err != nil {
			return nil, err
		}
	}
	for _, resource := range spec.Resources {
		if _, err := p.addFile(newTarget, groupKey, resource, PbxFileOptions{Phase: PHASE_RESOURCES}); err != nil {
			return nil, err
		}
	}
	headers := append(append([]string{}, spec.Headers...), "Info.plist")
	for _, header := range headers {
		if _, err := p.addFile(pbxparser.ObjectWithUUID{}, groupKey, header, PbxFileOptions{Phase: "-"}); err != nil {
			return nil, err
		}
	}
	for _, framework := range spec.Frameworks {
		if err := p.linkFramework(newTarget, name, framework); err != nil {
			return nil, err
		}
	}

	addToObjectListOnlyNotExist(p.rootProject().Object, "targets", CommentValue{Value: targetUuid, Comment: name}.ToObject(), sameReference)
	if err := p.addTargetAttributes(name); err != nil {
		return nil, err
	}

	settingKeys := make([]string, 0, len(spec.BuildSettings))
	for key := range spec.BuildSettings {
		settingKeys = append(settingKeys, key)
	}
	sort.Strings(settingKeys)
	for _, key := range settingKeys {
		if err := p.AddBuildProperty(key, spec.BuildSettings[key], "", name); err != nil {
			return nil, err
		}
	}

	searchSettings := make([]string, 0, len(spec.SearchPaths))
	for setting := range spec.SearchPaths {
		searchSettings = append(searchSettings, setting)
	}
	sort.Strings(searchSettings)
	for _, setting := range searchSettings {
		for _, searchPath := range spec.SearchPaths[setting] {
			if err := p.AddToSearchPaths(setting, searchPath, "", name); err != nil {
				return nil, err
			}
		}
	}

	if spec.EmbedIn != "" {
		host, _ := p.findTarget(spec.EmbedIn)
		p.embedProduct(host, product, kind.embed)
		if err := p.AddTargetDependency(host.UUID, []string{targetUuid}); err != nil {
			return nil, err
		}
	}

	if len(spec.DependsOn) > 0 {
		dependencies := make([]string, len(spec.DependsOn))
		for i, dependency := range spec.DependsOn {
			found, _ := p.findTarget(dependency)
			dependencies[i] = found.UUID
		}
		if err := p.AddTargetDependency(targetUuid, dependencies); err != nil {
			return nil, err
		}
	}

	p.logger.Info("Target added.", "name", name, "uuid", targetUuid, "product", product.Basename)
	return p.targetView(newTarget), nil
}

func (p *PbxProject) targetBuildConfigurations(spec TargetSpec, kind targetType) []pbxparser.Object {
	var configurations []pbxparser.Object
	for _, configName := range []string{"Debug", "Release"} {
		settings := map[string]interface{}{
			"CODE_SIGN_STYLE":         "Automatic",
			"CURRENT_PROJECT_VERSION": 1,
			"INFOPLIST_FILE":          quoted(spec.folder() + "/Info.plist"),
			"MARKETING_VERSION":       "1.0",
			"PRODUCT_NAME":            quoted("$(TARGET_NAME)"),
			"SWIFT_VERSION":           "5.0",
		}
		if spec.BundleID != "" {
			settings["PRODUCT_BUNDLE_IDENTIFIER"] = quoted(spec.BundleID)
		}
		if kind.skipInstall {
			settings["SKIP_INSTALL"] = "YES"
		}
		if len(kind.runpaths) > 0 {
			runpaths := make([]interface{}, len(kind.runpaths))
			for i, path := range kind.runpaths {
				runpaths[i] = quoted(path)
			}
			settings["LD_RUNPATH_SEARCH_PATHS"] = runpaths
		}
		if configName == "Debug" {
			settings["GCC_PREPROCESSOR_DEFINITIONS"] = stringToInterfaceSlice([]string{quoted("DEBUG=1"), quoted("$(inherited)")})
		}

		configurations = append(configurations, pbxparser.NewObjectWithData([]pbxparser.ObjectItem{
			pbxparser.NewObjectItem("isa", "XCBuildConfiguration"),
			pbxparser.NewObjectItem("buildSettings", sortedSettings(settings)),
			pbxparser.NewObjectItem("name", configName),
		}))
	}
	return configurations
}

// embedProduct copies the product into the host through a copy-files phase,
// reusing a phase with the same destination when the host has one.
func (p *PbxProject) embedProduct(host pbxparser.ObjectWithUUID, product *PbxFile, embed *embedding) {
	phaseKey, phase := p.copyFilesPhaseOf(host.Object, embed.dest)
	phaseName := embed.phaseName
	if phase.IsNil() {
		dest := embed.dest
		phaseKey, phase = p.addBuildPhase(host, "PBXCopyFilesBuildPhase", phaseName, &dest)
	} else if comment := p.pbxObjectSection.GetObject("PBXCopyFilesBuildPhase").GetString(toCommentKey(phaseKey)); comment != "" {
		phaseName = comment
	}

	embedded := &PbxFile{
		Basename: product.Basename,
		FileRef:  product.FileRef,
		Uuid:     p.generateUuid(),
		Phase:    phaseName,
		Settings: pbxparser.NewObjectWithData([]pbxparser.ObjectItem{
			pbxparser.NewObjectItem("ATTRIBUTES", stringToInterfaceSlice(embed.attributes)),
		}),
	}
	p.addObject("PBXBuildFile", embedded.Uuid, buildFileObj(embedded), longComment(embedded))
	addToObjectList(phase, "files", CommentValue{Value: embedded.Uuid, Comment: longComment(embedded)}.ToObject())
}

// AddTargetAttribute sets prop in the project's TargetAttributes entry for the
// target, creating the entry and the TargetAttributes dictionary as needed.
func (p *PbxProject) AddTargetAttribute(prop, value, targetName string) error {
	target, ok := p.findTarget(targetName)
	if !ok {
		return fmt.Errorf("target %s not found", targetName)
	}
	attributes := p.rootProject().GetObject("attributes")
	if attributes.IsNil() {
		return errors.New("project has no attributes")
	}
	targetAttributes := attributes.GetObject("TargetAttributes")
	if targetAttributes.IsNil() {
		targetAttributes = pbxparser.NewObject()
		setSorted(attributes, "TargetAttributes", targetAttributes, "")
	}
	targetAttribute := targetAttributes.GetObject(target.UUID)
	if targetAttribute.IsNil() {
		targetAttribute = pbxparser.NewObject()
		setSorted(targetAttributes, target.UUID, targetAttribute, "")
	}
	setSorted(targetAttribute, prop, quoted(value), "")
	return nil
}

// addTargetAttributes records the creating tools version for the target when the
// project keeps TargetAttributes.
func (p *PbxProject) addTargetAttributes(name string) error {
	attributes := p.rootProject().GetObject("attributes")
	if attributes.GetObject("TargetAttributes").IsNil() {
		return nil
	}
	version := attributes.GetInt("LastSwiftUpdateCheck")
	if version == 0 {
		version = attributes.GetInt("LastUpgradeCheck")
	}
	if version == 0 {
		return nil
	}
	toolsVersion := strconv.Itoa(version/100) + "." + strconv.Itoa(version/10%10)
	return p.AddTargetAttribute("CreatedOnToolsVersion", toolsVersion, name)
}
