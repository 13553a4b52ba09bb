package adaptergen

import (
	"fmt"
	"go/token"
	"go/types"
	"strings"
	"unicode"

	"github.com/golang/glog"
)

// receiver is the receiver name of generated methods.
const receiver = "a"

// AdapterDecl is a generated adapter, ready to be emitted.
type AdapterDecl struct {
	// Name of the adapter type, <Name>CaseAdapter.
	Name    string
	PkgPath string
	PkgName string
	Module  *Module
	// Member holds the module instance.
	Member     string
	FactoryArg string
	Methods    []*DelegateDecl
}

// DelegateDecl forwards one module method.
type DelegateDecl struct {
	Name       string
	Params     []*ParamDecl
	Results    []types.Type
	Variadic   bool
	Deprecated bool
}

// ParamDecl is a parameter of a generated method.
type ParamDecl struct {
	Name string
	Type types.Type
}

// FileName is the suggested file name of the generated source.
func (d *AdapterDecl) FileName() string {
	return snakeCase(d.Name) + ".go"
}

// Processor builds adapter declarations from modules.
type Processor struct{}

// Process returns the adapter declaration of m.
func (Processor) Process(m *Module) *AdapterDecl {
	decl := &AdapterDecl{
		Name:    adapterName(m.Name),
		PkgPath: m.PkgPath,
		PkgName: m.PkgName,
		Module:  m,
		Member:  lowerFirst(m.Name),
	}

	decl.FactoryArg = m.FactoryName
	if decl.FactoryArg == "" || decl.FactoryArg == "_" {
		decl.FactoryArg = argumentName(m.Factory)
	}
	decl.FactoryArg = uniqueNames([]string{decl.FactoryArg})[0]

	own := map[string]bool{"SetUp": true, "TearDown": true, m.Name: true, "Set" + m.Name: true}
	for _, method := range m.Methods {
		if own[method.Name] {
			glog.Warningf("%s.%s is not delegated, %s declares a method of the same name", m.Name, method.Name, decl.Name)
			continue
		}
		decl.Methods = append(decl.Methods, delegate(method))
	}
	return decl
}

func delegate(m *Method) *DelegateDecl {
	sig := m.Signature
	d := &DelegateDecl{
		Name:       m.Name,
		Variadic:   sig.Variadic(),
		Deprecated: m.Deprecated,
	}

	names := make([]string, sig.Params().Len())
	for i := range names {
		names[i] = m.ParamNames[i]
		if names[i] == "" || names[i] == "_" {
			names[i] = argumentName(sig.Params().At(i).Type())
		}
	}
	for i, name := range uniqueNames(names) {
		d.Params = append(d.Params, &ParamDecl{Name: name, Type: sig.Params().At(i).Type()})
	}

	for i := 0; i < sig.Results().Len(); i++ {
		d.Results = append(d.Results, sig.Results().At(i).Type())
	}
	return d
}

// adapterName drops a Module suffix, FooModule and Foo both give FooCaseAdapter.
func adapterName(typeName string) string {
	if base := strings.TrimSuffix(typeName, "Module"); base != "" {
		typeName = base
	}
	return typeName + "CaseAdapter"
}

// argumentName derives a parameter name from its type.
func argumentName(t types.Type) string {
	switch t := t.(type) {
	case *types.Pointer:
		return argumentName(t.Elem())
	case *types.Slice:
		return argumentName(t.Elem()) + "s"
	case *types.Array:
		return argumentName(t.Elem()) + "s"
	case *types.Map:
		return "m"
	case *types.Chan:
		return "ch"
	case *types.Signature:
		return "fn"
	case *types.Basic:
		return t.Name()[:1]
	case *types.Named:
		obj := t.Obj()
		switch {
		case obj.Pkg() == nil && obj.Name() == "error":
			return "err"
		case obj.Pkg() != nil && obj.Pkg().Path() == "context" && obj.Name() == "Context":
			return "ctx"
		}
		return lowerFirst(obj.Name())
	}
	return "v"
}

// uniqueNames numbers duplicates and names that clash with the receiver,
// a keyword or a predeclared identifier.
func uniqueNames(names []string) []string {
	counts := make(map[string]int, len(names))
	for _, n := range names {
		counts[n]++
	}

	used := map[string]bool{receiver: true}
	next := make(map[string]int)
	out := make([]string, len(names))
	for i, n := range names {
		if counts[n] == 1 && !used[n] && !reserved(n) {
			out[i] = n
			used[n] = true
			continue
		}
		for {
			next[n]++
			candidate := fmt.Sprintf("%s%d", n, next[n])
			if !used[candidate] && counts[candidate] == 0 {
				out[i] = candidate
				used[candidate] = true
				break
			}
		}
	}
	return out
}

func reserved(name string) bool {
	return token.IsKeyword(name) || types.Universe.Lookup(name) != nil
}

func lowerFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	// leading acronyms are lowered as a whole, JDBCModule gives jdbcModule
	n := 1
	for n < len(r) && unicode.IsUpper(r[n]) && (n+1 == len(r) || unicode.IsUpper(r[n+1])) {
		n++
	}
	for i := 0; i < n; i++ {
		r[i] = unicode.ToLower(r[i])
	}
	return string(r)
}

func snakeCase(s string) string {
	var b strings.Builder
	r := []rune(s)
	for i, c := range r {
		if unicode.IsUpper(c) {
			if i > 0 && (unicode.IsLower(r[i-1]) || (i+1 < len(r) && unicode.IsLower(r[i+1]))) {
				b.WriteByte('_')
			}
			c = unicode.ToLower(c)
		}
		b.WriteRune(c)
	}
	return b.String()
}
