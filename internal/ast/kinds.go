package ast

// Expr is implemented by every node that can appear in expression position.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every node that can appear in statement position.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is implemented by every node that can appear at declaration position,
// i.e. directly inside a ModuleDecl's TopLevel/MainContent or a struct/class
// body.
type Decl interface {
	Node
	declNode()
	stmtNode()
}

// TypeExpr is implemented by every node occurring in type-expression
// position.
type TypeExpr interface {
	Node
	typeExprNode()
}
