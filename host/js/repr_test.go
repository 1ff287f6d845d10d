package js

import (
	"strings"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reprOf(t *testing.T, src string) string {
	t.Helper()
	vm := goja.New()
	v, err := vm.RunString(src)
	require.NoError(t, err)
	return Repr(vm, v)
}

func TestRepr(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "undefined", src: `undefined`, want: "undefined"},
		{name: "null", src: `null`, want: "null"},
		{name: "integer", src: `42`, want: "42"},
		{name: "float", src: `1.5`, want: "1.5"},
		{name: "bool", src: `true`, want: "true"},
		{name: "string", src: `"hi"`, want: `"hi"`},
		{name: "string escapes", src: `"a\"b\\c\n\t"`, want: `"a\"b\\c\n\t"`},
		{name: "object sorted", src: `({b: 1, a: "x"})`, want: `{a: "x", b: 1}`},
		{name: "quoted key", src: `({"with space": 1})`, want: `{"with space": 1}`},
		{name: "empty object", src: `({})`, want: `{}`},
		{name: "array", src: `[1, "two", null, undefined]`, want: `[1, "two", null, undefined]`},
		{name: "nested", src: `({list: [1, {z: true}]})`, want: `{list: [1, {z: true}]}`},
		{name: "recursive", src: `var o = {}; o.self = o; o`, want: `{self: ..recursive..}`},
		{name: "shared not recursive", src: `var s = {}; ({a: s, b: s})`, want: `{a: {}, b: {}}`},
		{name: "function", src: `(function foo(a, b) {  return a; })`, want: `function foo(a, b) {...}`},
		{name: "error", src: `new Error("bad")`, want: `Error: bad`},
		{name: "custom repr", src: `({__repr__: function () { return "<custom>"; }})`, want: `<custom>`},
		{name: "repr method", src: `({repr: function (indent, width) { return "w" + width; }})`, want: `w80`},
		{name: "toString", src: `({toString: function () { return "T"; }})`, want: `T`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reprOf(t, tt.src))
		})
	}
}

func TestRepr_Multiline(t *testing.T) {
	long := strings.Repeat("a", 40)
	got := reprOf(t, `({b: "`+long+`", a: "`+long+`"})`)

	want := "{\n  a: \"" + long + "\",\n  b: \"" + long + "\"\n}"
	assert.Equal(t, want, got)
}

func TestRepr_MultilineArray(t *testing.T) {
	long := strings.Repeat("x", 50)
	got := reprOf(t, `["`+long+`", "`+long+`"]`)

	want := "[\n  \"" + long + "\",\n  \"" + long + "\"\n]"
	assert.Equal(t, want, got)
}

func TestRepr_NilValue(t *testing.T) {
	assert.Equal(t, "undefined", Repr(goja.New(), nil))
}

func TestFunctionRepr(t *testing.T) {
	assert.Equal(t, "function () {...}", functionRepr("  function ()\n  {\n  body\n}"))
	assert.Equal(t, "x => x", functionRepr("x => x"))
}
