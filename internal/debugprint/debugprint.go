// Package debugprint implements the AST half of `avon --debug`: an
// ast.Visitor that renders an indented tree of an Avon expression to a
// string.
package debugprint

import (
	"fmt"
	"strings"

	"github.com/avonlang/avon/internal/ast"
)

// Printer accumulates an indented dump of an expression tree.
type Printer struct {
	ast.BaseVisitor
	output strings.Builder
	indent int
}

// Print renders expr as an indented tree.
func Print(expr ast.Expr) string {
	p := &Printer{}
	expr.Accept(p)
	return p.output.String()
}

func (p *Printer) line(format string, args ...any) {
	p.output.WriteString(strings.Repeat("  ", p.indent))
	fmt.Fprintf(&p.output, format, args...)
	p.output.WriteString("\n")
}

func (p *Printer) child(expr ast.Expr) {
	p.indent++
	expr.Accept(p)
	p.indent--
}

func (p *Printer) VisitIntLit(n *ast.IntLit) any {
	p.line("Int: %d", n.Value)
	return nil
}

func (p *Printer) VisitFloatLit(n *ast.FloatLit) any {
	p.line("Float: %g", n.Value)
	return nil
}

func (p *Printer) VisitBoolLit(n *ast.BoolLit) any {
	p.line("Bool: %t", n.Value)
	return nil
}

func (p *Printer) VisitTemplate(n *ast.Template) any {
	if n.IsPlainString() {
		p.line("String: %q", n.PlainString())
		return nil
	}
	p.line("Template:")
	p.indent++
	for _, c := range n.Chunks {
		if c.IsExpr {
			p.line("Interp:")
			p.child(c.Expr)
		} else {
			p.line("Literal: %q", c.Literal)
		}
	}
	p.indent--
	return nil
}

func (p *Printer) VisitIdent(n *ast.Ident) any {
	p.line("Ident: %s", n.Name)
	return nil
}

func (p *Printer) VisitListLit(n *ast.ListLit) any {
	if n.IsRange {
		p.line("Range:")
		p.indent++
		p.line("Lo:")
		p.child(n.Lo)
		if n.Next != nil {
			p.line("Next:")
			p.child(n.Next)
		}
		p.line("Hi:")
		p.child(n.Hi)
		p.indent--
		return nil
	}
	p.line("List:")
	p.indent++
	for _, e := range n.Elements {
		e.Accept(p)
	}
	p.indent--
	return nil
}

func (p *Printer) VisitDictLit(n *ast.DictLit) any {
	p.line("Dict:")
	p.indent++
	for _, pair := range n.Pairs {
		p.line("Pair:")
		p.indent++
		p.line("Key:")
		p.child(pair.Key)
		p.line("Value:")
		p.child(pair.Value)
		p.indent--
	}
	p.indent--
	return nil
}

func (p *Printer) VisitMember(n *ast.Member) any {
	p.line("Member: .%s", n.Name)
	p.child(n.Target)
	return nil
}

func (p *Printer) VisitLambda(n *ast.Lambda) any {
	names := make([]string, len(n.Params))
	for i, param := range n.Params {
		if param.Default != nil {
			names[i] = param.Name + "=<default>"
		} else {
			names[i] = param.Name
		}
	}
	p.line("Lambda: \\%s", strings.Join(names, " "))
	p.indent++
	p.line("Body:")
	p.child(n.Body)
	p.indent--
	return nil
}

func (p *Printer) VisitCall(n *ast.Call) any {
	p.line("Call:")
	p.indent++
	p.line("Func:")
	p.child(n.Func)
	p.line("Args:")
	p.indent++
	for _, a := range n.Args {
		a.Accept(p)
	}
	p.indent--
	p.indent--
	return nil
}

func (p *Printer) VisitLet(n *ast.Let) any {
	p.line("Let: %s", n.Name)
	p.indent++
	p.line("Value:")
	p.child(n.Value)
	p.line("Body:")
	p.child(n.Body)
	p.indent--
	return nil
}

func (p *Printer) VisitIf(n *ast.If) any {
	p.line("If:")
	p.indent++
	p.line("Cond:")
	p.child(n.Cond)
	p.line("Then:")
	p.child(n.Then)
	p.line("Else:")
	p.child(n.Else)
	p.indent--
	return nil
}

func (p *Printer) VisitUnaryOp(n *ast.UnaryOp) any {
	p.line("Unary: %s", n.Op)
	p.child(n.Operand)
	return nil
}

func (p *Printer) VisitBinaryOp(n *ast.BinaryOp) any {
	p.line("Binary: %s", n.Op)
	p.indent++
	p.line("Left:")
	p.child(n.Left)
	p.line("Right:")
	p.child(n.Right)
	p.indent--
	return nil
}

func (p *Printer) VisitDeploy(n *ast.Deploy) any {
	p.line("Deploy:")
	p.indent++
	p.line("Path:")
	p.VisitTemplate(n.Path)
	p.line("Content:")
	p.child(n.Content)
	p.indent--
	return nil
}

var _ ast.Visitor = (*Printer)(nil)
