package adaptergen

import (
	"bytes"
	"fmt"
	"go/types"
	"os"

	"github.com/dave/jennifer/jen"
)

const header = "Code generated by adaptergen. DO NOT EDIT."

// SourceEmitter renders adapter declarations to Go source.
type SourceEmitter struct{}

// Emit builds the source file of decl. It fails if a method signature
// uses a type without a Go source form, such as a tuple.
func (SourceEmitter) Emit(decl *AdapterDecl) (*jen.File, error) {
	tw := &typeWriter{}
	f := jen.NewFilePathName(decl.PkgPath, decl.PkgName)
	f.HeaderComment(header)

	m := decl.Module
	moduleType := jen.Qual(m.PkgPath, m.Name)
	memberType := moduleType.Clone()
	if m.Pointer {
		memberType = jen.Op("*").Add(moduleType.Clone())
	}
	recv := jen.Id(receiver).Op("*").Id(decl.Name)
	member := func() *jen.Statement { return jen.Id(receiver).Dot(decl.Member) }

	f.Commentf("%s delegates to %s. It creates the %s in SetUp and", decl.Name, m.Name, m.Name)
	f.Comment("releases it in TearDown.")
	f.Type().Id(decl.Name).Struct(
		jen.Id(decl.Member).Add(memberType.Clone()),
	)

	f.Commentf("New%s returns an adapter which is already set up.", decl.Name)
	f.Func().Id("New"+decl.Name).Params(
		jen.Id(decl.FactoryArg).Add(tw.typ(m.Factory)),
	).Op("*").Id(decl.Name).Block(
		jen.Id(receiver).Op(":=").Op("&").Id(decl.Name).Values(),
		jen.Id(receiver).Dot("SetUp").Call(jen.Id(decl.FactoryArg)),
		jen.Return(jen.Id(receiver)),
	)

	f.Commentf("SetUp creates the %s from %s.", m.Name, decl.FactoryArg)
	f.Func().Params(recv.Clone()).Id("SetUp").Params(
		jen.Id(decl.FactoryArg).Add(tw.typ(m.Factory)),
	).Block(
		member().Op("=").Qual(m.PkgPath, m.Constructor.Name()).Call(jen.Id(decl.FactoryArg)),
	)

	f.Commentf("TearDown releases the %s.", m.Name)
	var zero jen.Code = jen.Nil()
	if !m.Pointer {
		zero = moduleType.Clone().Values()
	}
	f.Func().Params(recv.Clone()).Id("TearDown").Params().Block(
		member().Op("=").Add(zero),
	)

	f.Commentf("%s returns the %s.", m.Name, m.Name)
	f.Func().Params(recv.Clone()).Id(m.Name).Params().Add(memberType.Clone()).Block(
		jen.Return(member()),
	)

	f.Commentf("Set%s replaces the %s.", m.Name, m.Name)
	f.Func().Params(recv.Clone()).Id("Set" + m.Name).Params(
		jen.Id(decl.Member).Add(memberType.Clone()),
	).Block(
		member().Op("=").Id(decl.Member),
	)

	for _, d := range decl.Methods {
		tw.delegate(f, recv, member, m.Name, d)
	}
	if tw.err != nil {
		return nil, fmt.Errorf("emit %s: %w", decl.Name, tw.err)
	}
	return f, nil
}

func (tw *typeWriter) delegate(f *jen.File, recv *jen.Statement, member func() *jen.Statement, module string, d *DelegateDecl) {
	params := make([]jen.Code, len(d.Params))
	args := make([]jen.Code, len(d.Params))
	for i, p := range d.Params {
		if d.Variadic && i == len(d.Params)-1 {
			elem := p.Type.(*types.Slice).Elem()
			params[i] = jen.Id(p.Name).Op("...").Add(tw.typ(elem))
			args[i] = jen.Id(p.Name).Op("...")
			continue
		}
		params[i] = jen.Id(p.Name).Add(tw.typ(p.Type))
		args[i] = jen.Id(p.Name)
	}

	call := member().Dot(d.Name).Call(args...)
	var body jen.Code = call
	if len(d.Results) > 0 {
		body = jen.Return(call)
	}

	f.Commentf("%s delegates to %s.%s.", d.Name, module, d.Name)
	if d.Deprecated {
		f.Comment("")
		f.Commentf("Deprecated: %s.%s is deprecated.", module, d.Name)
	}
	f.Func().Params(recv.Clone()).Id(d.Name).Params(params...).Add(tw.results(d.Results)).Block(body)
}

// typeWriter renders types, keeping the first type it cannot render.
type typeWriter struct {
	err error
}

func (tw *typeWriter) results(results []types.Type) jen.Code {
	switch len(results) {
	case 0:
		return jen.Null()
	case 1:
		return tw.typ(results[0])
	}
	list := make([]jen.Code, len(results))
	for i, t := range results {
		list[i] = tw.typ(t)
	}
	return jen.Parens(jen.List(list...))
}

// typ renders t, qualifying named types with their import path.
func (tw *typeWriter) typ(t types.Type) *jen.Statement {
	switch t := t.(type) {
	case *types.Basic:
		if t.Kind() == types.UnsafePointer {
			return jen.Qual("unsafe", "Pointer")
		}
		return jen.Id(t.Name())
	case *types.Pointer:
		return jen.Op("*").Add(tw.typ(t.Elem()))
	case *types.Slice:
		return jen.Index().Add(tw.typ(t.Elem()))
	case *types.Array:
		return jen.Index(jen.Lit(int(t.Len()))).Add(tw.typ(t.Elem()))
	case *types.Map:
		return jen.Map(tw.typ(t.Key())).Add(tw.typ(t.Elem()))
	case *types.Chan:
		switch t.Dir() {
		case types.SendOnly:
			return jen.Chan().Op("<-").Add(tw.typ(t.Elem()))
		case types.RecvOnly:
			return jen.Op("<-").Chan().Add(tw.typ(t.Elem()))
		}
		return jen.Chan().Add(tw.typ(t.Elem()))
	case *types.Signature:
		return jen.Func().Add(tw.signature(t))
	case *types.Interface:
		var elems []jen.Code
		for i := 0; i < t.NumEmbeddeds(); i++ {
			elems = append(elems, tw.typ(t.EmbeddedType(i)))
		}
		for i := 0; i < t.NumExplicitMethods(); i++ {
			m := t.ExplicitMethod(i)
			elems = append(elems, jen.Id(m.Name()).Add(tw.signature(m.Type().(*types.Signature))))
		}
		return jen.Interface(elems...)
	case *types.Struct:
		fields := make([]jen.Code, t.NumFields())
		for i := range fields {
			v := t.Field(i)
			field := tw.typ(v.Type())
			if !v.Embedded() {
				field = jen.Id(v.Name()).Add(field)
			}
			if tag := t.Tag(i); tag != "" {
				field = field.Lit(tag)
			}
			fields[i] = field
		}
		return jen.Struct(fields...)
	case *types.TypeParam:
		return jen.Id(t.Obj().Name())
	case *types.Named:
		obj := t.Obj()
		var s *jen.Statement
		if obj.Pkg() == nil {
			s = jen.Id(obj.Name())
		} else {
			s = jen.Qual(obj.Pkg().Path(), obj.Name())
		}
		if args := t.TypeArgs(); args != nil && args.Len() > 0 {
			list := make([]jen.Code, args.Len())
			for i := range list {
				list[i] = tw.typ(args.At(i))
			}
			s = s.Types(list...)
		}
		return s
	}
	if tw.err == nil {
		tw.err = fmt.Errorf("unsupported type %s", t)
	}
	return jen.Null()
}

// signature renders the parameter and result lists of sig.
func (tw *typeWriter) signature(sig *types.Signature) *jen.Statement {
	params := make([]jen.Code, sig.Params().Len())
	for i := range params {
		pt := sig.Params().At(i).Type()
		if sig.Variadic() && i == len(params)-1 {
			params[i] = jen.Op("...").Add(tw.typ(pt.(*types.Slice).Elem()))
			continue
		}
		params[i] = tw.typ(pt)
	}
	results := make([]types.Type, sig.Results().Len())
	for i := range results {
		results[i] = sig.Results().At(i).Type()
	}
	return jen.Params(params...).Add(tw.results(results))
}

// Render renders decl to source.
func (e SourceEmitter) Render(decl *AdapterDecl) ([]byte, error) {
	f, err := e.Emit(decl)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", decl.Name, err)
	}
	return buf.Bytes(), nil
}

// Save writes the source of decl to path.
func (e SourceEmitter) Save(decl *AdapterDecl, path string) error {
	f, err := e.Emit(decl)
	if err != nil {
		return err
	}
	return f.Save(path)
}

// Verify compares the source of decl against the file at path.
func (e SourceEmitter) Verify(decl *AdapterDecl, path string) error {
	existing, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("missing file on disk: %s (%w)", path, err)
	}
	src, err := e.Render(decl)
	if err != nil {
		return err
	}
	if !bytes.Equal(existing, src) {
		return fmt.Errorf("'%s' has changed", path)
	}
	return nil
}
