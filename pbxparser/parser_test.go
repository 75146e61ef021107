package pbxparser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProject = `// !$*UTF8*$!
{
	archiveVersion = 1;
	classes = {
	};
	objectVersion = 56;
	objects = {

/* Begin PBXBuildFile section */
		AAAAAAAAAAAAAAAAAAAAAAA1 /* main.swift in Sources */ = {isa = PBXBuildFile; fileRef = AAAAAAAAAAAAAAAAAAAAAAA2 /* main.swift */; };
/* End PBXBuildFile section */

/* Begin PBXNativeTarget section */
		AAAAAAAAAAAAAAAAAAAAAAA3 /* Tool */ = {
			isa = PBXNativeTarget;
			buildPhases = (
				AAAAAAAAAAAAAAAAAAAAAAA4 /* Sources */,
			);
			name = Tool;
			productType = "com.apple.product-type.tool";
		};
/* End PBXNativeTarget section */
	};
	rootObject = AAAAAAAAAAAAAAAAAAAAAAA5 /* Project object */;
}
`

func TestParse_Document(t *testing.T) {
	doc, err := Parse([]byte(sampleProject))
	require.NoError(t, err)

	assert.Equal(t, "!$*UTF8*$!", doc.GetString(HeadCommentKey))
	project := doc.GetObject(ProjectKey)
	require.False(t, project.IsNil())
	assert.Equal(t, []string{"archiveVersion", "classes", "objectVersion", "objects", "rootObject", "rootObject_comment"}, project.Keys())
	assert.Equal(t, 1, project.GetInt("archiveVersion"))
	assert.Equal(t, 56, project.GetInt("objectVersion"))
	assert.True(t, project.GetObject("classes").IsEmpty())
	assert.Equal(t, "Project object", project.GetString("rootObject_comment"))

	objects := project.GetObject("objects")
	assert.Equal(t, []string{"PBXBuildFile", "PBXNativeTarget"}, objects.Keys())

	buildFile := objects.GetObject("PBXBuildFile").GetObject("AAAAAAAAAAAAAAAAAAAAAAA1")
	assert.Equal(t, "PBXBuildFile", buildFile.GetString("isa"))
	assert.Equal(t, "main.swift", buildFile.GetString("fileRef_comment"))
	assert.Equal(t, "main.swift in Sources", objects.GetObject("PBXBuildFile").GetString("AAAAAAAAAAAAAAAAAAAAAAA1_comment"))

	target := objects.GetObject("PBXNativeTarget").GetObject("AAAAAAAAAAAAAAAAAAAAAAA3")
	assert.Equal(t, `"com.apple.product-type.tool"`, target.GetString("productType"))
	phases := target.GetArray("buildPhases")
	require.Len(t, phases, 1)
	phase, ok := phases[0].(Object)
	require.True(t, ok)
	assert.Equal(t, "AAAAAAAAAAAAAAAAAAAAAAA4", phase.GetString("value"))
	assert.Equal(t, "Sources", phase.GetString("comment"))
}

func TestParse_Values(t *testing.T) {
	doc, err := Parse([]byte(`{
		a = 0;
		b = 0755;
		c = 1.0;
		d = "quoted \"value\"";
		e = ( x, "y z" );
		f = ();
		g = { h = i; };
		j = -Onone;
		k = 99999999999999999999;
	}`))
	require.NoError(t, err)
	root := doc.GetObject(ProjectKey)

	got := map[string]interface{}{}
	root.Foreach(func(key string, val interface{}) IterateActionType {
		if obj, ok := val.(Object); ok {
			val = obj.Keys()
		}
		got[key] = val
		return IterateActionContinue
	})
	want := map[string]interface{}{
		"a": 0,
		"b": "0755",
		"c": "1.0",
		"d": `"quoted \"value\""`,
		"e": []interface{}{"x", `"y z"`},
		"f": []interface{}{},
		"g": []string{"h"},
		"j": "-Onone",
		"k": "99999999999999999999",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parsed values mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, doc.Has(HeadCommentKey))
}

func TestParse_KeyCommentWins(t *testing.T) {
	doc, err := Parse([]byte(`{ k /* key */ = v /* value */; l = m /* only value */; }`))
	require.NoError(t, err)
	root := doc.GetObject(ProjectKey)
	assert.Equal(t, "key", root.GetString("k_comment"))
	assert.Equal(t, "only value", root.GetString("l_comment"))
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		line    int
		message string
	}{
		{name: "empty", input: "", line: 1, message: "expected '{'"},
		{name: "missing semicolon", input: "{\n a = b\n}", line: 3, message: "expected ';'"},
		{name: "missing equals", input: "{ a b; }", line: 1, message: "expected '='"},
		{name: "unterminated string", input: "{ a = \"b; }", line: 1, message: "unterminated quoted string"},
		{name: "unterminated comment", input: "{ a = b; /* }", line: 1, message: "unterminated comment"},
		{name: "unclosed dict", input: "{ a = b;", line: 1, message: "expected key or '}'"},
		{name: "trailing garbage", input: "{ a = b; }\n}", line: 2, message: "expected end of input"},
		{name: "bad character", input: "{ a = #; }", line: 1, message: "unexpected character"},
		{name: "unbalanced section", input: "{\n/* End X section */\n}", line: 2, message: "unbalanced end of section X"},
		{name: "nested section", input: "{\n/* Begin X section */\n/* Begin Y section */\n}", line: 3, message: "opened inside section X"},
		{name: "unterminated section", input: "{\n/* Begin X section */\n a = b;\n}", line: 2, message: "unterminated section X"},
		{name: "list separator", input: "{ a = (b c); }", line: 1, message: "expected ',' or ')'"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.input))
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "want *ParseError, got %T", err)
			assert.Equal(t, tc.line, parseErr.Line)
			assert.Contains(t, parseErr.Msg, tc.message)
			assert.True(t, strings.HasPrefix(err.Error(), "pbxproj parse error at line"))
		})
	}
}

func TestParseReader(t *testing.T) {
	doc, err := ParseReader(strings.NewReader(sampleProject))
	require.NoError(t, err)
	assert.Equal(t, 56, doc.GetObject(ProjectKey).GetInt("objectVersion"))
}
