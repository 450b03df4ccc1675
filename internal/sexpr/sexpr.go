// Package sexpr renders an internal/ast tree as a canonical S-expression:
// each node's display tag followed by its child renderings, literal values
// inline. It exists for debug dumps and golden-file tests, mirroring the
// teacher's internal/format package in shape (a single top-level entry
// point plus an Options-free, side-effect-free render) while targeting a
// parenthesized dump instead of reformatted source text.
package sexpr

import (
	"bytes"
	"fmt"
	"io"

	"github.com/cxylang/frontend/internal/ast"
	"github.com/cxylang/frontend/internal/intern"
)

// Dump renders node and its descendants as a single-line S-expression,
// resolving interned names through in.
func Dump(in *intern.Interner, node ast.Node) string {
	var buf bytes.Buffer
	_ = Write(&buf, in, node)
	return buf.String()
}

// Write renders node into w the same way Dump does.
func Write(w io.Writer, in *intern.Interner, node ast.Node) error {
	p := &printer{w: w, in: in}
	p.node(node)
	return p.err
}

// printer accumulates the first write error encountered and stops writing;
// every caller-facing write is funneled through it so the recursive render
// functions never have to thread an error return.
type printer struct {
	w   io.Writer
	in  *intern.Interner
	err error
}

func (p *printer) str(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *printer) open(tag string) {
	p.str("(")
	p.str(tag)
}

func (p *printer) close() {
	p.str(")")
}

func (p *printer) space() {
	p.str(" ")
}

func (p *printer) name(h intern.Handle) {
	if h == 0 {
		return
	}
	p.space()
	p.str(p.in.String(h))
}

// node dispatches to the concrete node's render. Nodes that have no
// dedicated case (e.g. a Decl reached only through a Node-typed field) fall
// back to a tag built from the Go type name, so an unanticipated node kind
// still produces a legible, if non-canonical, dump instead of a panic.
func (p *printer) node(n ast.Node) {
	if p.err != nil {
		return
	}
	if n == nil {
		p.str("()")
		return
	}

	switch v := n.(type) {
	// Literals and identifiers
	case *ast.IntLiteral:
		p.open("Int")
		if v.Hi == 0 {
			p.space()
			p.str(fmt.Sprintf("%d", v.Lo))
		} else {
			p.space()
			p.str(fmt.Sprintf("0x%016x%016x", v.Hi, v.Lo))
		}
		p.close()
	case *ast.FloatLiteral:
		p.open("Float")
		p.space()
		p.str(fmt.Sprintf("%g", v.Value))
		p.close()
	case *ast.CharLiteral:
		p.open("Char")
		p.space()
		p.str(fmt.Sprintf("%q", v.Value))
		p.close()
	case *ast.StringLiteral:
		p.open("String")
		p.space()
		p.str(fmt.Sprintf("%q", p.in.String(v.Value)))
		p.close()
	case *ast.BoolLiteral:
		p.open("Bool")
		p.space()
		p.str(fmt.Sprintf("%t", v.Value))
		p.close()
	case *ast.NullLiteral:
		p.str("(Null)")
	case *ast.Identifier:
		p.open("Identifier")
		p.name(v.Name)
		p.close()
	case *ast.QualifiedPath:
		p.open("QualifiedPath")
		if v.Rooted {
			p.space()
			p.str("::")
		}
		for _, seg := range v.Segments {
			p.space()
			p.str(p.in.String(seg.Name))
			for _, ta := range seg.TypeArgs {
				p.space()
				p.node(ta)
			}
		}
		p.close()

	// Expressions
	case *ast.UnaryExpr:
		tag := "Unary"
		if !v.Prefix {
			tag = "PostfixUnary"
		}
		p.open(tag)
		p.space()
		p.str(v.Op.String())
		p.space()
		p.node(v.Operand)
		p.close()
	case *ast.BinaryExpr:
		p.open("Binary")
		p.space()
		p.str(v.Op.String())
		p.space()
		p.node(v.LHS)
		p.space()
		p.node(v.RHS)
		p.close()
	case *ast.TernaryExpr:
		p.open("Ternary")
		p.space()
		p.node(v.Cond)
		p.space()
		p.node(v.Then)
		p.space()
		p.node(v.Else)
		p.close()
	case *ast.AssignmentExpr:
		p.open("Assignment")
		p.space()
		p.str(v.Op.String())
		p.space()
		p.node(v.Target)
		p.space()
		p.node(v.Value)
		p.close()
	case *ast.GroupExpr:
		p.open("Group")
		p.space()
		p.node(v.Inner)
		p.close()
	case *ast.StmtExpr:
		p.node(v.Inner)
	case *ast.CastExpr:
		tag := "Cast"
		if v.Retype {
			tag = "Retype"
		}
		p.open(tag)
		p.space()
		p.node(v.Operand)
		p.space()
		p.node(v.Type)
		p.close()
	case *ast.CallExpr:
		p.open("CallExpr")
		p.space()
		p.node(v.Callee)
		for _, a := range v.Args {
			p.space()
			p.node(a)
		}
		p.close()
	case *ast.IndexExpr:
		p.open("Index")
		p.space()
		p.node(v.Object)
		p.space()
		p.node(v.Index)
		p.close()
	case *ast.MemberExpr:
		tag := "Member"
		if v.Arrow {
			tag = "ArrowMember"
		}
		p.open(tag)
		p.space()
		p.node(v.Object)
		p.name(v.Name)
		p.close()
	case *ast.ArrayExpr:
		p.open("Array")
		for _, e := range v.Elements {
			p.space()
			p.node(e)
		}
		p.close()
	case *ast.TupleExpr:
		p.open("Tuple")
		for _, e := range v.Elements {
			p.space()
			p.node(e)
		}
		p.close()
	case *ast.StructExpr:
		p.open("StructExpr")
		if v.Type != nil {
			p.space()
			p.node(v.Type)
		}
		for _, f := range v.Fields {
			p.space()
			p.str("(Field")
			p.name(f.Name)
			p.space()
			p.node(f.Value)
			p.str(")")
		}
		p.close()
	case *ast.MacroCallExpr:
		p.open("MacroCall")
		p.name(v.Name)
		for _, a := range v.Args {
			p.space()
			p.node(a)
		}
		p.close()
	case *ast.ClosureExpr:
		p.open("Closure")
		for _, param := range v.Params {
			p.space()
			p.node(param)
		}
		p.space()
		p.node(v.Body)
		p.close()
	case *ast.RangeExpr:
		tag := "Range"
		if !v.Inclusive {
			tag = "ExclusiveRange"
		}
		p.open(tag)
		if v.Start != nil {
			p.space()
			p.node(v.Start)
		}
		if v.End != nil {
			p.space()
			p.node(v.End)
		}
		p.close()
	case *ast.SpreadExpr:
		p.open("Spread")
		p.space()
		p.node(v.Operand)
		p.close()
	case *ast.StringExpr:
		p.open("Interpolated")
		for _, part := range v.Parts {
			p.space()
			p.node(part)
		}
		p.close()

	// Statements
	case *ast.ExprStmt:
		p.open("ExprStmt")
		p.space()
		p.node(v.X)
		p.close()
	case *ast.BreakStmt:
		p.str("(Break)")
	case *ast.ContinueStmt:
		p.str("(Continue)")
	case *ast.DeferStmt:
		p.open("Defer")
		p.space()
		p.node(v.Inner)
		p.close()
	case *ast.ReturnStmt:
		p.open("Return")
		if v.Value != nil {
			p.space()
			p.node(v.Value)
		}
		p.close()
	case *ast.YieldStmt:
		p.open("Yield")
		if v.Value != nil {
			p.space()
			p.node(v.Value)
		}
		p.close()
	case *ast.BlockStmt:
		p.open("BlockStmt")
		for _, s := range v.Stmts {
			p.space()
			p.node(s)
		}
		p.close()
	case *ast.IfStmt:
		p.open("IfStmt")
		p.space()
		p.node(v.Cond)
		p.space()
		p.node(v.Then)
		if v.Else != nil {
			p.space()
			p.node(v.Else)
		}
		p.close()
	case *ast.WhileStmt:
		p.open("WhileStmt")
		if v.Cond != nil {
			p.space()
			p.node(v.Cond)
		}
		p.space()
		p.node(v.Body)
		p.close()
	case *ast.ForStmt:
		p.open("ForStmt")
		for _, id := range v.Vars {
			p.space()
			p.node(id)
		}
		p.space()
		p.node(v.Range)
		if v.Cond != nil {
			p.space()
			p.node(v.Cond)
		}
		p.space()
		p.node(v.Body)
		p.close()
	case *ast.CaseClause:
		tag := "CaseClause"
		if v.IsDefault {
			tag = "DefaultCase"
		}
		p.open(tag)
		for _, val := range v.Values {
			p.space()
			p.node(val)
		}
		for _, s := range v.Stmts {
			p.space()
			p.node(s)
		}
		p.close()
	case *ast.SwitchStmt:
		p.open("SwitchStmt")
		p.space()
		p.node(v.Disc)
		for _, c := range v.Cases {
			p.space()
			p.node(c)
		}
		p.close()
	case *ast.MatchCase:
		tag := "MatchCase"
		if v.IsDefault {
			tag = "DefaultMatchCase"
		}
		p.open(tag)
		for _, t := range v.TypeList {
			p.space()
			p.node(t)
		}
		if v.HasBind {
			p.name(v.Binding)
		}
		p.space()
		p.node(v.Body)
		p.close()
	case *ast.MatchStmt:
		p.open("MatchStmt")
		p.space()
		p.node(v.Disc)
		for _, c := range v.Cases {
			p.space()
			p.node(c)
		}
		p.close()

	// Declarations
	case *ast.VariableDecl:
		p.open("VariableDeclaration")
		for _, name := range v.Names {
			p.space()
			p.node(name)
		}
		if v.Type != nil {
			p.space()
			p.node(v.Type)
		}
		if v.Init != nil {
			p.space()
			p.node(v.Init)
		}
		p.close()
	case *ast.FuncParam:
		p.open("FuncParamDeclaration")
		p.space()
		p.str(fmt.Sprintf("(Identifier %s)", p.in.String(v.Name)))
		p.space()
		p.node(v.Type)
		if v.Default != nil {
			p.space()
			p.node(v.Default)
		}
		p.close()
	case *ast.FuncDecl:
		p.open("FuncDeclaration")
		if v.IsOperator {
			p.space()
			p.str(fmt.Sprintf("(Operator %s)", v.Operator))
		} else {
			p.space()
			p.str(fmt.Sprintf("(Identifier %s)", p.in.String(v.Name)))
		}
		for _, param := range v.Params {
			p.space()
			p.node(param)
		}
		if v.ReturnType != nil {
			p.space()
			p.node(v.ReturnType)
		}
		if v.Body != nil {
			p.space()
			p.node(v.Body)
		}
		p.close()
	case *ast.TypeDecl:
		p.open("TypeDeclaration")
		p.space()
		p.str(fmt.Sprintf("(Identifier %s)", p.in.String(v.Name)))
		p.space()
		p.node(v.Type)
		p.close()
	case *ast.EnumOption:
		p.open("EnumOption")
		p.space()
		p.str(fmt.Sprintf("(Identifier %s)", p.in.String(v.Name)))
		if v.Value != nil {
			p.space()
			p.node(v.Value)
		}
		p.close()
	case *ast.EnumDecl:
		p.open("EnumDeclaration")
		p.space()
		p.str(fmt.Sprintf("(Identifier %s)", p.in.String(v.Name)))
		if v.BaseType != nil {
			p.space()
			p.node(v.BaseType)
		}
		for _, opt := range v.Options {
			p.space()
			p.node(opt)
		}
		p.close()
	case *ast.Field:
		p.open("FieldDeclaration")
		p.space()
		p.str(fmt.Sprintf("(Identifier %s)", p.in.String(v.Name)))
		if v.Type != nil {
			p.space()
			p.node(v.Type)
		}
		if v.Init != nil {
			p.space()
			p.node(v.Init)
		}
		p.close()
	case *ast.StructDecl:
		p.open("StructDeclaration")
		p.space()
		p.str(fmt.Sprintf("(Identifier %s)", p.in.String(v.Name)))
		for _, m := range v.Members {
			p.space()
			p.node(m)
		}
		p.close()
	case *ast.ClassDecl:
		p.open("ClassDeclaration")
		p.space()
		p.str(fmt.Sprintf("(Identifier %s)", p.in.String(v.Name)))
		if v.Base != nil {
			p.space()
			p.node(v.Base)
		}
		for _, m := range v.Members {
			p.space()
			p.node(m)
		}
		p.close()
	case *ast.ImportDecl:
		p.open("ImportDeclaration")
		p.space()
		p.str(v.Kind.String())
		p.space()
		p.str(fmt.Sprintf("%q", p.in.String(v.Path)))
		if v.Alias != 0 {
			p.name(v.Alias)
		}
		for _, item := range v.Entities {
			p.space()
			p.str("(ImportItem")
			p.name(item.Orig)
			if item.Alias != 0 {
				p.name(item.Alias)
			}
			p.str(")")
		}
		p.close()
	case *ast.TypeParameter:
		p.open("TypeParameterDeclaration")
		p.space()
		p.str(fmt.Sprintf("(Identifier %s)", p.in.String(v.Name)))
		if v.Constraint != nil {
			p.space()
			p.node(v.Constraint)
		}
		if v.Default != nil {
			p.space()
			p.node(v.Default)
		}
		p.close()
	case *ast.GenericDecl:
		p.open("GenericDeclaration")
		for _, tp := range v.TypeParams {
			p.space()
			p.node(tp)
		}
		p.space()
		p.node(v.Decl)
		p.close()
	case *ast.ModuleDecl:
		p.open("Module")
		for _, imp := range v.TopLevel {
			p.space()
			p.node(imp)
		}
		for _, d := range v.MainContent {
			p.space()
			p.node(d)
		}
		p.close()

	// Type expressions
	case *ast.PrimitiveType:
		p.open("Type")
		p.space()
		p.str(v.Kind.String())
		p.close()
	case *ast.ArrayType:
		p.open("ArrayType")
		if v.Size != nil {
			p.space()
			p.node(v.Size)
		}
		p.space()
		p.node(v.Element)
		p.close()
	case *ast.TupleType:
		p.open("TupleType")
		for _, e := range v.Elements {
			p.space()
			p.node(e)
		}
		p.close()
	case *ast.UnionType:
		p.open("UnionType")
		for _, m := range v.Members {
			p.space()
			p.node(m)
		}
		p.close()
	case *ast.PointerType:
		p.open("PointerType")
		p.space()
		p.node(v.Target)
		p.close()
	case *ast.ReferenceType:
		p.open("ReferenceType")
		p.space()
		p.node(v.Target)
		p.close()
	case *ast.OptionalType:
		p.open("OptionalType")
		p.space()
		p.node(v.Target)
		p.close()
	case *ast.ResultType:
		p.open("ResultType")
		p.space()
		p.node(v.Target)
		p.close()
	case *ast.FunctionType:
		p.open("FunctionType")
		for _, param := range v.Params {
			p.space()
			p.node(param)
		}
		if v.ReturnType != nil {
			p.space()
			p.node(v.ReturnType)
		}
		p.close()

	default:
		p.str(fmt.Sprintf("(%T)", n))
	}
}
