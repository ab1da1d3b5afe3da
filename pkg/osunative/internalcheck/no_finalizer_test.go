package internalcheck

import (
	"fmt"
	"go/ast"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// Native objects are released by Close or by the owner that consumed them.
// Nothing may hand that job to the garbage collector.
func TestNoFinalizers(t *testing.T) {
	cfg := &packages.Config{
		Mode:  packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedFiles | packages.NeedName,
		Tests: true,
	}

	pkgs, err := packages.Load(cfg, modulePattern)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	seen := make(map[string]bool)
	var findings []string

	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			fset := pkg.Fset
			ast.Inspect(file, func(n ast.Node) bool {
				call, ok := n.(*ast.CallExpr)
				if !ok {
					return true
				}
				selector, ok := call.Fun.(*ast.SelectorExpr)
				if !ok {
					return true
				}
				obj := pkg.TypesInfo.Uses[selector.Sel]
				if obj == nil || obj.Pkg() == nil || obj.Pkg().Path() != "runtime" {
					return true
				}
				switch obj.Name() {
				case "SetFinalizer", "AddCleanup":
					pos := fset.Position(call.Pos()).String()
					if !seen[pos] {
						seen[pos] = true
						findings = append(findings, fmt.Sprintf("%s: runtime.%s is not allowed", pos, obj.Name()))
					}
				}
				return true
			})
		}
	}

	if len(findings) > 0 {
		t.Fatalf("finalizer policy violation:\n%s", strings.Join(findings, "\n"))
	}
}
