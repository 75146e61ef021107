package pbxproj

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/soapywu/pbxtarget/pbxparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectFromText(t *testing.T, text string) *PbxProject {
	t.Helper()
	project := NewPbxProject("project.pbxproj")
	contents, err := pbxparser.Parse([]byte(text))
	require.NoError(t, err)
	project.pbxContents = contents
	return project
}

func TestPbxWriter_Layout(t *testing.T) {
	const text = `// !$*UTF8*$!
{
	archiveVersion = 1;
	objects = {
		AAAAAAAAAAAAAAAAAAAAAAA9 /* loose */ = {
			isa = PBXGroup;
			children = (
			);
		};

/* Begin PBXBuildFile section */
		AAAAAAAAAAAAAAAAAAAAAAA1 /* a.swift in Sources */ = {isa = PBXBuildFile; fileRef = AAAAAAAAAAAAAAAAAAAAAAA2 /* a.swift */; settings = {COMPILER_FLAGS = "-w"; ATTRIBUTES = (Weak, ); }; };
/* End PBXBuildFile section */

/* Begin PBXVariantGroup section */
/* End PBXVariantGroup section */
	};
	rootObject = AAAAAAAAAAAAAAAAAAAAAAA3;
	settings = {
		list = (
			{
				k = v;
			},
			"",
		);
	};
}
`
	const want = `// !$*UTF8*$!
{
	archiveVersion = 1;
	objects = {
		AAAAAAAAAAAAAAAAAAAAAAA9 /* loose */ = {
			isa = PBXGroup;
			children = (
			);
		};

/* Begin PBXBuildFile section */
		AAAAAAAAAAAAAAAAAAAAAAA1 /* a.swift in Sources */ = {isa = PBXBuildFile; fileRef = AAAAAAAAAAAAAAAAAAAAAAA2 /* a.swift */; settings = {COMPILER_FLAGS = "-w"; ATTRIBUTES = (Weak, ); }; };
/* End PBXBuildFile section */
	};
	rootObject = AAAAAAAAAAAAAAAAAAAAAAA3;
	settings = {
		list = (
			{
				k = v;
			},
			"",
		);
	};
}
`
	project := projectFromText(t, text)
	assert.Equal(t, want, string(NewPbxWriter(project).Bytes()))
}

func TestPbxWriter_OmitEmpty(t *testing.T) {
	project := projectFromText(t, "{ a = \"\"; b = c; d = { e = \"\"; }; }")
	assert.Equal(t, "{\n\ta = \"\";\n\tb = c;\n\td = {\n\t\te = \"\";\n\t};\n}\n", string(NewPbxWriter(project).Bytes()))

	project.pbxContents.GetObject(pbxparser.ProjectKey).Set("a", "")
	assert.Equal(t, "{\n\tb = c;\n\td = {\n\t\te = \"\";\n\t};\n}\n", string(NewPbxWriter(project, WithOmitEmpty()).Bytes()),
		"only values that are empty in the model are dropped")
}

func TestPbxWriter_Outputs(t *testing.T) {
	project := loadFixture(t)
	writer := NewPbxWriter(project)

	var buf bytes.Buffer
	n, err := writer.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, buf.Bytes(), writer.Bytes(), "rendering twice must not duplicate output")

	path := filepath.Join(t.TempDir(), "copy.pbxproj")
	require.NoError(t, writer.Write(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, buf.Bytes(), data)
}
