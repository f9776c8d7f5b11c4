package ast

// Walk traverses the AST starting from node, calling fn for each node in
// pre-order. If fn returns false, Walk stops traversing that branch.
// Absent children are skipped.
func Walk(node Node, fn func(Node) bool) {
	if !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Statements {
			Walk(stmt, fn)
		}

	case *LetStatement:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		if n.Value != nil {
			Walk(n.Value, fn)
		}

	case *ReturnStatement:
		if n.ReturnValue != nil {
			Walk(n.ReturnValue, fn)
		}

	case *ExpressionStatement:
		if n.Expression != nil {
			Walk(n.Expression, fn)
		}

	case *Block:
		for _, stmt := range n.Statements {
			Walk(stmt, fn)
		}

	case *PrefixExpression:
		if n.Right != nil {
			Walk(n.Right, fn)
		}

	case *InfixExpression:
		if n.Left != nil {
			Walk(n.Left, fn)
		}
		if n.Right != nil {
			Walk(n.Right, fn)
		}

	case *IfExpression:
		if n.Condition != nil {
			Walk(n.Condition, fn)
		}
		if n.Consequence != nil {
			Walk(n.Consequence, fn)
		}
		if n.Alternative != nil {
			Walk(n.Alternative, fn)
		}

	case *FunctionLiteral:
		for _, param := range n.Parameters {
			Walk(param, fn)
		}
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *CallExpression:
		if n.Function != nil {
			Walk(n.Function, fn)
		}
		for _, arg := range n.Arguments {
			Walk(arg, fn)
		}

	case *Identifier, *IntegerLiteral, *BooleanLiteral:
		// leaves
	}
}

// Inspect collects every node reachable from root in Walk order.
func Inspect(root Node) []Node {
	var nodes []Node
	Walk(root, func(n Node) bool {
		nodes = append(nodes, n)
		return true
	})
	return nodes
}
