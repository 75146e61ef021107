package pbxproj

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/soapywu/pbxtarget/internal/testutil"
	"github.com/soapywu/pbxtarget/pbxparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	containerSpec = TargetSpec{
		Name:       "TestPluginContainer",
		Type:       "application",
		BundleID:   "com.example.TestPluginContainer",
		Sources:    []string{"ContentView.swift"},
		Frameworks: []string{"SwiftUI.framework"},
	}
	effectSpec = TargetSpec{
		Name:          "TestEffectAUv3",
		Type:          "app_extension",
		Subfolder:     "TestEffectAUv3",
		BundleID:      "com.example.TestPluginContainer.TestEffectAUv3",
		Sources:       []string{"AudioUnitFactory.swift", "EffectViewController.swift", "TestEffectAudioUnit.swift"},
		Frameworks:    []string{"AVFoundation.framework", "AudioToolbox.framework", "CoreAudioKit.framework"},
		EmbedIn:       "TestPluginContainer",
		BuildSettings: map[string]string{"APPLICATION_EXTENSION_API_ONLY": "YES"},
	}
)

func addPluginTargets(t *testing.T, project *PbxProject) (*Target, *Target) {
	t.Helper()
	container, err := project.AddTarget(containerSpec)
	require.NoError(t, err)
	effect, err := project.AddTarget(effectSpec)
	require.NoError(t, err)
	return container, effect
}

func TestAddTarget_PluginTargets(t *testing.T) {
	project := loadFixture(t)
	container, effect := addPluginTargets(t, project)

	assert.True(t, project.HasTarget("TestPluginContainer"))
	assert.True(t, project.HasTarget("TestEffectAUv3"))
	assert.Empty(t, project.CheckReferences())

	assert.Equal(t, "com.apple.product-type.application", container.ProductType)
	assert.Equal(t, "com.apple.product-type.app-extension", effect.ProductType)

	var names []string
	for _, target := range project.Targets() {
		names = append(names, target.Name)
	}
	assert.Equal(t, []string{"AUv3TestHost", "TestPluginContainer", "TestEffectAUv3"}, names)

	container, ok := project.Target("TestPluginContainer")
	require.True(t, ok)
	var phases []string
	for _, phase := range container.BuildPhases {
		phases = append(phases, phase.Comment)
	}
	assert.Equal(t, []string{"Sources", "Frameworks", "Resources", "Embed Foundation Extensions"}, phases)
	assert.Equal(t, []string{effect.UUID}, container.Dependencies)

	bundleIDs, err := project.GetBuildProperty("PRODUCT_BUNDLE_IDENTIFIER", "", "TestEffectAUv3")
	require.NoError(t, err)
	assert.Equal(t, []string{"com.example.TestPluginContainer.TestEffectAUv3", "com.example.TestPluginContainer.TestEffectAUv3"}, bundleIDs)
	skipInstall, err := project.GetBuildProperty("SKIP_INSTALL", "Release", "TestEffectAUv3")
	require.NoError(t, err)
	assert.Equal(t, []string{"YES"}, skipInstall)
	apiOnly, err := project.GetBuildProperty("APPLICATION_EXTENSION_API_ONLY", "Debug", "TestEffectAUv3")
	require.NoError(t, err)
	assert.Equal(t, []string{"YES"}, apiOnly)
	plist, err := project.GetBuildProperty("INFOPLIST_FILE", "Debug", "TestPluginContainer")
	require.NoError(t, err)
	assert.Equal(t, []string{"TestPluginContainer/Info.plist"}, plist)
	skipInstall, err = project.GetBuildProperty("SKIP_INSTALL", "", "TestPluginContainer")
	require.NoError(t, err)
	assert.Empty(t, skipInstall)

	out := string(project.Bytes())
	embed := regexp.MustCompile(`(?m)^\t\t[0-9A-F]{24} /\* TestEffectAUv3\.appex in Embed Foundation Extensions \*/ = \{isa = PBXBuildFile; fileRef = [0-9A-F]{24} /\* TestEffectAUv3\.appex \*/; settings = \{ATTRIBUTES = \(RemoveHeadersOnCopy, \); \}; \};$`)
	assert.Regexp(t, embed, out)
	assert.Contains(t, out, "\t\t\tdstPath = \"\";\n\t\t\tdstSubfolderSpec = 13;\n")
	assert.Contains(t, out, "\t\t\tname = \"Embed Foundation Extensions\";\n")
	assert.Contains(t, out, "explicitFileType = \"wrapper.app-extension\"; includeInIndex = 0; path = TestEffectAUv3.appex; sourceTree = BUILT_PRODUCTS_DIR; };")
	assert.Contains(t, out, "\t\t\t\t\t"+effect.UUID+" = {\n\t\t\t\t\t\tCreatedOnToolsVersion = 15.0;\n\t\t\t\t\t};\n")
	assert.Contains(t, out, "\t\t\t\t\t\"@executable_path/../../Frameworks\",\n")

	sections := regexp.MustCompile(`/\* Begin (\w+) section \*/`).FindAllStringSubmatch(out, -1)
	var order []string
	for _, m := range sections {
		order = append(order, m[1])
	}
	assert.Equal(t, []string{
		"PBXBuildFile", "PBXContainerItemProxy", "PBXCopyFilesBuildPhase", "PBXFileReference",
		"PBXFrameworksBuildPhase", "PBXGroup", "PBXNativeTarget", "PBXProject",
		"PBXResourcesBuildPhase", "PBXSourcesBuildPhase", "PBXTargetDependency",
		"XCBuildConfiguration", "XCConfigurationList",
	}, order)

	mainGroup := project.pbxGroupByKey(testutil.MainGroupUUID)
	var children []string
	for _, child := range mainGroup.GetArray("children") {
		ref, _ := toCommentValue(child)
		children = append(children, ref.Comment)
	}
	assert.Equal(t, []string{"AUv3TestHost", "TestPluginContainer", "TestEffectAUv3", "Products", "Frameworks"}, children)
}

func TestAddTarget_OutputReparses(t *testing.T) {
	project := loadFixture(t)
	addPluginTargets(t, project)
	out, err := project.Serialize()
	require.NoError(t, err)

	reloaded := NewPbxProject("project.pbxproj")
	require.NoError(t, reloaded.ParseBytes(out))
	assert.True(t, reloaded.HasTarget("TestPluginContainer"))
	assert.True(t, reloaded.HasTarget("TestEffectAUv3"))
	assert.Empty(t, reloaded.CheckReferences())
	assert.Equal(t, string(out), string(reloaded.Bytes()))
}

func TestAddTarget_Deterministic(t *testing.T) {
	first := loadFixture(t)
	addPluginTargets(t, first)
	second := loadFixture(t)
	addPluginTargets(t, second)
	assert.Equal(t, string(first.Bytes()), string(second.Bytes()))
}

func TestAddTarget_FreshIdentifiers(t *testing.T) {
	project := loadFixture(t)
	before := make(map[string]struct{}, len(project.uuids))
	for id := range project.uuids {
		before[id] = struct{}{}
	}
	addPluginTargets(t, project)

	created := 0
	project.forEachRecord(func(_, key string, _ pbxparser.Object) {
		if _, existed := before[key]; !existed {
			created++
		}
	})
	assert.Greater(t, created, 20)
}

func TestAddTarget_Duplicate(t *testing.T) {
	project := loadFixture(t)
	before := string(project.Bytes())

	_, err := project.AddTarget(TargetSpec{Name: "AUv3TestHost", Type: "application"})
	var dupErr *DuplicateTargetError
	require.True(t, errors.As(err, &dupErr), "want *DuplicateTargetError, got %v", err)
	assert.Equal(t, "target AUv3TestHost already exists", err.Error())
	assert.Equal(t, before, string(project.Bytes()))
}

func TestAddTarget_Invalid(t *testing.T) {
	testCases := []struct {
		name   string
		spec   TargetSpec
		reason string
	}{
		{name: "empty name", spec: TargetSpec{Name: "  ", Type: "application"}, reason: "name missing"},
		{name: "missing type", spec: TargetSpec{Name: "X"}, reason: "type missing"},
		{name: "unknown type", spec: TargetSpec{Name: "X", Type: "kernel_extension"}, reason: `unknown type "kernel_extension"`},
		{name: "unknown host", spec: TargetSpec{Name: "X", Type: "app_extension", EmbedIn: "Nowhere"}, reason: "embedding target Nowhere not found"},
		{name: "not embeddable", spec: TargetSpec{Name: "X", Type: "static_library", EmbedIn: "AUv3TestHost"}, reason: "static_library products cannot be embedded"},
		{name: "unknown dependency", spec: TargetSpec{Name: "X", Type: "application", DependsOn: []string{"Nowhere"}}, reason: "dependency Nowhere not found"},
		{name: "source listed twice", spec: TargetSpec{Name: "X", Type: "application", Sources: []string{"a.swift", "a.swift"}}, reason: "file a.swift listed twice"},
		{name: "source also a resource", spec: TargetSpec{Name: "X", Type: "application", Sources: []string{"a.json"}, Resources: []string{"a.json"}}, reason: "file a.json listed twice"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			project := loadFixture(t)
			before := string(project.Bytes())

			_, err := project.AddTarget(tc.spec)
			var invalidErr *InvalidTargetError
			require.True(t, errors.As(err, &invalidErr), "want *InvalidTargetError, got %v", err)
			assert.Equal(t, tc.reason, invalidErr.Reason)
			assert.Equal(t, before, string(project.Bytes()))
		})
	}
}

func TestAddTarget_DependsOn(t *testing.T) {
	project := loadFixture(t)
	framework, err := project.AddTarget(TargetSpec{Name: "DSPKit", Type: "framework", Sources: []string{"Filter.swift"}, EmbedIn: "AUv3TestHost"})
	require.NoError(t, err)
	tool, err := project.AddTarget(TargetSpec{Name: "Bench", Type: "command_line_tool", DependsOn: []string{"DSPKit", "AUv3TestHost"}})
	require.NoError(t, err)

	assert.Equal(t, []string{framework.UUID, testutil.HostTargetUUID}, tool.Dependencies)
	assert.Empty(t, project.CheckReferences())

	out := string(project.Bytes())
	assert.Contains(t, out, "/* DSPKit.framework in Embed Frameworks */ = {isa = PBXBuildFile; fileRef = ")
	assert.Contains(t, out, "settings = {ATTRIBUTES = (CodeSignOnCopy, RemoveHeadersOnCopy, ); }; };")
	assert.Contains(t, out, "\t\t\tdstSubfolderSpec = 10;\n")
	assert.Equal(t, 1, strings.Count(out, "isa = PBXCopyFilesBuildPhase;"))
}

func TestAddTarget_ReusesCopyPhase(t *testing.T) {
	project := loadFixture(t)
	_, err := project.AddTarget(TargetSpec{Name: "First", Type: "app_extension", EmbedIn: "AUv3TestHost"})
	require.NoError(t, err)
	_, err = project.AddTarget(TargetSpec{Name: "Second", Type: "app_extension", EmbedIn: "AUv3TestHost"})
	require.NoError(t, err)

	out := string(project.Bytes())
	assert.Equal(t, 1, strings.Count(out, "isa = PBXCopyFilesBuildPhase;"))
	assert.Contains(t, out, "/* First.appex in Embed Foundation Extensions */,\n")
	assert.Contains(t, out, "/* Second.appex in Embed Foundation Extensions */,\n")
}

func TestAddTarget_FailureLeavesModelUnchanged(t *testing.T) {
	project := loadFixture(t)
	before := string(project.Bytes())

	_, err := project.AddTarget(TargetSpec{Name: "Broken", Type: "application", Sources: []string{"a.swift", ""}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "add target Broken")
	assert.False(t, project.HasTarget("Broken"))
	assert.Equal(t, before, string(project.Bytes()))

	target, err := project.AddTarget(TargetSpec{Name: "Broken", Type: "application", Sources: []string{"a.swift"}})
	require.NoError(t, err)
	assert.Equal(t, "Broken", target.Name)
	assert.Empty(t, project.CheckReferences())

	out := string(project.Bytes())
	assert.Equal(t, 1, strings.Count(out, "/* a.swift */ = {isa = PBXFileReference;"))
	assert.Equal(t, 1, strings.Count(out, "/* Broken */ = {\n\t\t\tisa = PBXGroup;"))
}

func TestAddTarget_ReusesExistingGroup(t *testing.T) {
	project := loadFixture(t)
	groupKey := project.pbxCreateGroup(testutil.MainGroupUUID, "TestEffectAUv3", "TestEffectAUv3")
	_, err := project.addFile(pbxparser.ObjectWithUUID{}, groupKey, "AudioUnitFactory.swift", PbxFileOptions{Phase: "-"})
	require.NoError(t, err)

	addPluginTargets(t, project)

	var named int
	for _, child := range project.pbxGroupByKey(testutil.MainGroupUUID).GetArray("children") {
		if ref, _ := toCommentValue(child); ref.Comment == "TestEffectAUv3" {
			named++
		}
	}
	assert.Equal(t, 1, named)

	out := string(project.Bytes())
	assert.Equal(t, 1, strings.Count(out, "/* AudioUnitFactory.swift */ = {isa = PBXFileReference;"))
	assert.Equal(t, 1, strings.Count(out, "/* AudioUnitFactory.swift in Sources */ = {isa = PBXBuildFile;"))
	assert.Len(t, project.pbxGroupByKey(groupKey).GetArray("children"), 4)
	assert.Empty(t, project.CheckReferences())
}

func TestAddTarget_HeadersAndSearchPaths(t *testing.T) {
	project := loadFixture(t)
	_, err := project.AddTarget(TargetSpec{
		Name:        "DSPCore",
		Type:        "framework",
		Sources:     []string{"Biquad.c"},
		Headers:     []string{"Biquad.h"},
		Frameworks:  []string{"Vendor/Accelerated.framework", "Accelerate.framework"},
		SearchPaths: map[string][]string{"HEADER_SEARCH_PATHS": {"$(SRCROOT)/DSPCore/include"}},
	})
	require.NoError(t, err)

	headers, err := project.GetBuildProperty("HEADER_SEARCH_PATHS", "Debug", "DSPCore")
	require.NoError(t, err)
	assert.Equal(t, []string{"$(inherited)", "$(SRCROOT)/DSPCore/include"}, headers)

	frameworks, err := project.GetBuildProperty("FRAMEWORK_SEARCH_PATHS", "Release", "DSPCore")
	require.NoError(t, err)
	assert.Equal(t, []string{"$(inherited)", "$(PROJECT_DIR)/Vendor"}, frameworks)

	out := string(project.Bytes())
	assert.Contains(t, out, "/* Biquad.h */ = {isa = PBXFileReference; lastKnownFileType = sourcecode.c.h; path = Biquad.h; sourceTree = \"<group>\"; };")
	assert.NotContains(t, out, "Biquad.h in ")
	assert.Contains(t, out, "/* Biquad.c in Sources */")
	assert.Contains(t, out, "/* Accelerated.framework in Frameworks */")
	assert.Empty(t, project.CheckReferences())
}
