package js

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dop251/goja"
)

// DefaultReprWidth is the width past which objects and arrays are printed
// one member per line.
const DefaultReprWidth = 80

var (
	plainKey      = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	runsOfSpace   = regexp.MustCompile(`\s+`)
	stringEscapes = strings.NewReplacer(
		`"`, `\"`,
		`\`, `\\`,
		"\f", `\f`,
		"\b", `\b`,
		"\n", `\n`,
		"\t", `\t`,
		"\r", `\r`,
	)
)

// Repr returns a readable, deterministic rendering of v. Strings are quoted,
// object keys are sorted, and cyclic references print as "..recursive..".
// Objects may supply their own rendering with a __repr__ or repr method,
// which is called with the current indent and the width.
func Repr(vm *goja.Runtime, v goja.Value) string {
	r := &reprer{vm: vm, width: DefaultReprWidth}
	return r.repr(v, "")
}

type reprer struct {
	vm    *goja.Runtime
	width int
	stack []*goja.Object
}

func (r *reprer) repr(v goja.Value, indent string) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		if s, isString := v.Export().(string); isString {
			return quote(s)
		}
		return v.String()
	}

	for _, seen := range r.stack {
		if seen == obj {
			return "..recursive.."
		}
	}
	if s, ok := r.custom(obj, indent); ok {
		return s
	}
	if _, isFunc := goja.AssertFunction(obj); isFunc {
		return functionRepr(r.toString(obj))
	}
	if isArrayLike(obj) {
		return r.array(obj, indent)
	}
	if s := r.toString(obj); s != "[object Object]" && s != "[object]" {
		return s
	}
	return r.object(obj, indent)
}

func (r *reprer) custom(obj *goja.Object, indent string) (s string, ok bool) {
	defer func() {
		if recover() != nil {
			s, ok = "", false
		}
	}()
	for _, name := range []string{"__repr__", "repr"} {
		fn, callable := goja.AssertFunction(obj.Get(name))
		if !callable {
			continue
		}
		out, err := fn(obj, r.vm.ToValue(indent), r.vm.ToValue(r.width))
		if err != nil {
			return "", false
		}
		return out.String(), true
	}
	return "", false
}

func (r *reprer) toString(obj *goja.Object) (s string) {
	defer func() {
		if recover() != nil {
			s = "[object]"
		}
	}()
	return obj.String()
}

func (r *reprer) push(obj *goja.Object) func() {
	r.stack = append(r.stack, obj)
	return func() { r.stack = r.stack[:len(r.stack)-1] }
}

func (r *reprer) object(obj *goja.Object, indent string) string {
	defer r.push(obj)()

	keys := obj.Keys()
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = keyRepr(k) + ": " + r.repr(obj.Get(k), indent)
	}
	s := "{" + strings.Join(parts, ", ") + "}"
	if len(s) <= r.width-len(indent) {
		return s
	}

	var b strings.Builder
	b.WriteString("{\n")
	for i, k := range keys {
		b.WriteString(indent + "  " + keyRepr(k) + ": " + r.repr(obj.Get(k), indent+"  "))
		if i != len(keys)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(indent + "}")
	return b.String()
}

func (r *reprer) array(obj *goja.Object, indent string) string {
	defer r.push(obj)()

	n := int(obj.Get("length").ToInteger())
	items := make([]string, n)
	for i := range n {
		items[i] = r.repr(obj.Get(itoa(i)), indent)
	}
	s := "[" + strings.Join(items, ", ") + "]"
	if len(s) <= r.width-len(indent) {
		return s
	}

	var b strings.Builder
	b.WriteString("[\n")
	for i := range n {
		b.WriteString(indent + "  " + r.repr(obj.Get(itoa(i)), indent+"  "))
		if i != n-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(indent + "]")
	return b.String()
}

func isArrayLike(obj *goja.Object) bool {
	if obj.ClassName() == "Array" {
		return true
	}
	length := obj.Get("length")
	if length == nil {
		return false
	}
	switch length.Export().(type) {
	case int64, float64:
		return true
	}
	return false
}

func keyRepr(k string) string {
	if plainKey.MatchString(k) {
		return k
	}
	return quote(k)
}

func quote(s string) string {
	return `"` + stringEscapes.Replace(s) + `"`
}

// functionRepr collapses a function's source to its signature.
func functionRepr(src string) string {
	s := runsOfSpace.ReplaceAllString(strings.TrimLeft(src, " \t\r\n"), " ")
	if i := strings.Index(s, "{"); i >= 0 {
		return s[:i] + "{...}"
	}
	return s
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
