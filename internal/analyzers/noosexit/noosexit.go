// Package noosexit implements an analyzer forbidding os.Exit in main.main.
package noosexit

import (
	"go/ast"
	"strconv"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// Analyzer flags direct os.Exit calls inside main() of package main. Exit
// codes belong in a helper so deferred cleanup (flushing reporters, syncing
// the logger) still runs.
var Analyzer = &analysis.Analyzer{
	Name: "noosexit",
	Doc:  "forbid direct os.Exit in main.main",
	Run:  run,
}

func run(pass *analysis.Pass) (any, error) {
	if pass.Pkg == nil || pass.Pkg.Name() != "main" {
		return nil, nil
	}
	if strings.HasSuffix(pass.Pkg.Path(), "/cmd/staticlint") {
		return nil, nil
	}
	for _, f := range pass.Files {
		filename := pass.Fset.Position(f.Pos()).Filename
		if strings.Contains(filename, "/.cache/go-build/") || isGenerated(f) || importsTesting(f) {
			continue // testmain and generated files
		}

		ast.Inspect(f, func(n ast.Node) bool {
			fd, ok := n.(*ast.FuncDecl)
			if !ok || fd.Recv != nil || fd.Name == nil || fd.Name.Name != "main" {
				return true
			}
			ast.Inspect(fd.Body, func(n ast.Node) bool {
				call, ok := n.(*ast.CallExpr)
				if !ok {
					return true
				}
				sel, ok := call.Fun.(*ast.SelectorExpr)
				if !ok {
					return true
				}
				if id, ok := sel.X.(*ast.Ident); ok && sel.Sel != nil && id.Name == "os" && sel.Sel.Name == "Exit" {
					pass.Reportf(call.Pos(), "do not call os.Exit inside main; delegate to a helper and return")
				}
				return true
			})
			return false
		})
	}
	return nil, nil
}

func isGenerated(f *ast.File) bool {
	for _, cg := range f.Comments {
		for _, c := range cg.List {
			if strings.Contains(c.Text, "Code generated") && strings.Contains(c.Text, "DO NOT EDIT") {
				return true
			}
		}
	}
	return false
}

func importsTesting(f *ast.File) bool {
	for _, im := range f.Imports {
		if p, _ := strconv.Unquote(im.Path.Value); p == "testing" || p == "testing/internal/testdeps" {
			return true
		}
	}
	return false
}
