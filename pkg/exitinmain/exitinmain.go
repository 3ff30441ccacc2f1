// Package exitinmain defines an Analyzer that reports os.Exit calls
// inside the main function of the main package. The server must shut
// down through its run loop so that deferred cleanup executes.
package exitinmain

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer reports os.Exit calls inside func main of package main.
var Analyzer = &analysis.Analyzer{
	Name:     "exitinmain",
	Doc:      "reports os.Exit call inside main function of the main package",
	Run:      run,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

func run(pass *analysis.Pass) (interface{}, error) {
	ins := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.File)(nil),
		(*ast.FuncDecl)(nil),
		(*ast.SelectorExpr)(nil),
	}

	var insideMain bool

	ins.Preorder(nodeFilter, func(n ast.Node) {
		switch x := n.(type) {
		case *ast.File:
			if x.Name.Name != "main" {
				return
			}
		case *ast.FuncDecl:
			insideMain = x.Name.Name == "main"
		case *ast.SelectorExpr:
			if insideMain && isOsExit(x) {
				pass.Reportf(x.Pos(), "os.Exit call inside main function")
			}
		}
	})

	return nil, nil
}

func isOsExit(x *ast.SelectorExpr) bool {
	ident, ok := x.X.(*ast.Ident)
	if !ok {
		return false
	}
	return ident.Name == "os" && x.Sel.Name == "Exit"
}
