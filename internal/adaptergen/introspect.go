// Package adaptergen generates delegating case adapters for mock modules.
//
// A module is a named type with a single argument constructor, e.g.
//
//	func NewParamHandler(cfg MatchConfig) *ParamHandler
//
// The generated <Name>CaseAdapter owns one module instance, creates it in
// SetUp from the factory argument, drops it in TearDown and forwards every
// exported method of the module.
package adaptergen

import (
	"errors"
	"fmt"
	"go/ast"
	"go/types"
	"sort"
	"strings"

	"github.com/golang/glog"
	"golang.org/x/tools/go/packages"
)

// ErrNoConstructor is returned for types without a single argument constructor.
var ErrNoConstructor = errors.New("no constructor with mock object factory argument")

// Module describes a type an adapter is generated for.
type Module struct {
	Name    string
	PkgPath string
	PkgName string

	Type        *types.Named
	Constructor *types.Func
	// Factory is the single argument of Constructor.
	Factory     types.Type
	FactoryName string
	// Pointer is set when Constructor returns *Type.
	Pointer bool

	Methods []*Method
}

// Method is an exported method of a module.
type Method struct {
	Name       string
	Signature  *types.Signature
	ParamNames []string
	Deprecated bool
}

// Introspector inspects the types of one loaded package.
type Introspector struct {
	pkg *packages.Package
}

// NewIntrospector returns an introspector over pkg. The package must be
// loaded with types and syntax.
func NewIntrospector(pkg *packages.Package) *Introspector {
	return &Introspector{pkg: pkg}
}

// Load loads the package matching pattern, relative to dir when dir is
// not empty.
func Load(dir, pattern string) (*Introspector, error) {
	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
		Dir:  dir,
		Logf: func(format string, args ...interface{}) { glog.V(3).Infof(format, args...) },
	}, pattern)
	if err != nil {
		return nil, err
	}

	if len(pkgs) != 1 {
		return nil, fmt.Errorf("pattern %s must match exactly one package, got %d", pattern, len(pkgs))
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		var errs []string
		for _, e := range pkg.Errors {
			errs = append(errs, e.Error())
		}
		return nil, fmt.Errorf("found %d error(s) when loading %s:\n\t%s", len(errs), pattern, strings.Join(errs, "\n\t"))
	}
	return NewIntrospector(pkg), nil
}

// Module describes typeName, leaving out the methods named in exclude.
func (in *Introspector) Module(typeName string, exclude ...string) (*Module, error) {
	obj := in.pkg.Types.Scope().Lookup(typeName)
	if obj == nil {
		return nil, fmt.Errorf("no symbol found with name %s in %s", typeName, in.pkg.PkgPath)
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("symbol %s is not a type but %T", typeName, obj)
	}
	named, ok := tn.Type().(*types.Named)
	if !ok {
		return nil, fmt.Errorf("symbol %s is not a named type but %T", typeName, tn.Type())
	}

	m := &Module{
		Name:    typeName,
		PkgPath: in.pkg.PkgPath,
		PkgName: in.pkg.Name,
		Type:    named,
	}
	if err := in.findConstructor(m); err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[strings.TrimSpace(name)] = true
	}

	deprecated := in.deprecatedMethods(typeName)
	for i := 0; i < named.NumMethods(); i++ {
		fn := named.Method(i)
		if !fn.Exported() || excluded[fn.Name()] {
			continue
		}
		sig := fn.Type().(*types.Signature)
		names := make([]string, sig.Params().Len())
		for j := range names {
			names[j] = sig.Params().At(j).Name()
		}
		m.Methods = append(m.Methods, &Method{
			Name:       fn.Name(),
			Signature:  sig,
			ParamNames: names,
			Deprecated: deprecated[fn.Name()],
		})
	}
	sort.Slice(m.Methods, func(i, j int) bool { return m.Methods[i].Name < m.Methods[j].Name })
	return m, nil
}

// findConstructor picks New<Name> when it qualifies, else the first
// qualifying function by name.
func (in *Introspector) findConstructor(m *Module) error {
	scope := in.pkg.Types.Scope()
	var candidates []*types.Func
	for _, name := range scope.Names() {
		fn, ok := scope.Lookup(name).(*types.Func)
		if !ok {
			continue
		}
		sig := fn.Type().(*types.Signature)
		if sig.Params().Len() != 1 || sig.Variadic() || sig.Results().Len() == 0 {
			continue
		}
		if returnsModule(sig.Results().At(0).Type(), m.Type) {
			candidates = append(candidates, fn)
		}
	}
	if len(candidates) == 0 {
		return fmt.Errorf("module %s has %w", m.Name, ErrNoConstructor)
	}

	ctor := candidates[0]
	for _, fn := range candidates {
		if fn.Name() == "New"+m.Name {
			ctor = fn
			break
		}
	}

	sig := ctor.Type().(*types.Signature)
	param := sig.Params().At(0)
	m.Constructor = ctor
	m.Factory = param.Type()
	m.FactoryName = param.Name()
	_, m.Pointer = sig.Results().At(0).Type().(*types.Pointer)
	return nil
}

func returnsModule(t types.Type, named *types.Named) bool {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	return types.Identical(t, named)
}

func (in *Introspector) deprecatedMethods(typeName string) map[string]bool {
	deprecated := make(map[string]bool)
	for _, file := range in.pkg.Syntax {
		for _, decl := range file.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Recv == nil || len(fd.Recv.List) == 0 || fd.Doc == nil {
				continue
			}
			if receiverName(fd.Recv.List[0].Type) != typeName {
				continue
			}
			if isDeprecated(fd.Doc.Text()) {
				deprecated[fd.Name.Name] = true
			}
		}
	}
	return deprecated
}

func receiverName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.StarExpr:
		return receiverName(e.X)
	case *ast.IndexExpr:
		return receiverName(e.X)
	case *ast.IndexListExpr:
		return receiverName(e.X)
	case *ast.Ident:
		return e.Name
	}
	return ""
}

func isDeprecated(doc string) bool {
	for _, line := range strings.Split(doc, "\n") {
		if strings.HasPrefix(line, "Deprecated:") {
			return true
		}
	}
	return false
}
