package treegrep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treegrep/treegrep/ast"
	"github.com/treegrep/treegrep/lang"
	"github.com/treegrep/treegrep/matcher"
	"github.com/treegrep/treegrep/metavar"
)

func newTestSession() *Session {
	return NewSession(lang.Unknown, matcher.DefaultOptions())
}

func boundNode(t *testing.T, r Result, name string) *ast.Node {
	t.Helper()
	v, ok := r.Bindings[name]
	require.True(t, ok, "no binding for %s", name)
	return v.Node
}

func TestMatchNodeLiteral(t *testing.T) {
	t.Parallel()
	s := newTestSession()

	results, err := s.MatchNode(
		ast.NewCall(ast.NewIdent("f"), ast.NewInt("1")),
		ast.NewCall(ast.NewIdent("f"), ast.NewInt("1")),
	)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Bindings)

	results, err = s.MatchNode(
		ast.NewCall(ast.NewIdent("f"), ast.NewInt("1")),
		ast.NewCall(ast.NewIdent("g"), ast.NewInt("1")),
	)
	require.NoError(t, err)
	assert.Empty(t, results, "different callee must not match")
}

func TestMatchNodeMetavarConsistency(t *testing.T) {
	t.Parallel()
	s := newTestSession()
	pat := ast.NewCall(ast.NewIdent("f"), ast.NewIdent("$X"), ast.NewIdent("$X"))

	results, err := s.MatchNode(pat, ast.NewCall(ast.NewIdent("f"), ast.NewIdent("a"), ast.NewIdent("a")))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a", boundNode(t, results[0], "$X").Token)

	results, err = s.MatchNode(pat, ast.NewCall(ast.NewIdent("f"), ast.NewIdent("a"), ast.NewIdent("b")))
	require.NoError(t, err)
	assert.Empty(t, results, "conflicting rebinding must fail the branch")
}

func TestMatchNodeEllipsisArgs(t *testing.T) {
	t.Parallel()
	s := newTestSession()
	pat := ast.NewCall(ast.NewIdent("f"), ast.NewIdent("$X"), ast.NewIdent("..."), ast.NewIdent("$Y"))
	tgt := ast.NewCall(ast.NewIdent("f"),
		ast.NewIdent("p"), ast.NewIdent("q"), ast.NewIdent("r"), ast.NewIdent("s"))

	results, err := s.MatchNode(pat, tgt)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "p", boundNode(t, results[0], "$X").Token)
	assert.Equal(t, "s", boundNode(t, results[0], "$Y").Token)

	// Too few arguments for two metavariables.
	results, err = s.MatchNode(pat, ast.NewCall(ast.NewIdent("f"), ast.NewIdent("p")))
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMatchNodeMetavarCapturesExpression(t *testing.T) {
	t.Parallel()
	s := newTestSession()
	pat := ast.NewBinOp("+", ast.NewIdent("$E"), ast.NewInt("1"))
	sub := ast.NewCall(ast.NewIdent("g"), ast.NewIdent("v"))
	tgt := ast.NewBinOp("+", sub, ast.NewInt("1"))

	results, err := s.MatchNode(pat, tgt)
	require.NoError(t, err)
	require.Len(t, results, 1)
	v := results[0].Bindings["$E"]
	assert.Equal(t, metavar.Expr, v.Category)
	assert.True(t, ast.Equal(sub, v.Node))
}

func TestMatchNodeRegexStringLiteral(t *testing.T) {
	t.Parallel()
	s := newTestSession()
	pat := ast.NewCall(ast.NewIdent("log"), ast.NewString("=~/err.*/i"))

	results, err := s.MatchNode(pat, ast.NewCall(ast.NewIdent("log"), ast.NewString("ERROR: boom")))
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = s.MatchNode(pat, ast.NewCall(ast.NewIdent("log"), ast.NewString("fine")))
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMatchNodeRegexIdentifierJSOnly(t *testing.T) {
	t.Parallel()
	pat := ast.NewIdent("=~/on[A-Z].*/")
	tgt := ast.NewIdent("onClick")

	results, err := NewSession(lang.JavaScript, matcher.DefaultOptions()).MatchNode(pat, tgt)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = NewSession(lang.Python, matcher.DefaultOptions()).MatchNode(pat, tgt)
	require.NoError(t, err)
	assert.Empty(t, results, "regex identifiers are a JS-family form")
}

func TestMatchNodeFieldsAnyOrder(t *testing.T) {
	t.Parallel()
	s := newTestSession()
	pat := ast.NewFields(ast.NewIdent("b"), ast.NewIdent("$X"))
	tgt := ast.NewFields(ast.NewIdent("a"), ast.NewIdent("b"), ast.NewIdent("c"))

	results, err := s.MatchNode(pat, tgt)
	require.NoError(t, err)
	// $X can take either remaining field.
	require.Len(t, results, 2)
	assert.Equal(t, "a", boundNode(t, results[0], "$X").Token)
	assert.Equal(t, "c", boundNode(t, results[1], "$X").Token)
}

func TestMatchStmtsSpanAndMultiCapture(t *testing.T) {
	t.Parallel()
	s := newTestSession()

	stmt := func(callee string, args ...*ast.Node) *ast.Node {
		return ast.NewExprStmt(ast.NewCall(ast.NewIdent(callee), args...))
	}
	open := stmt("open")
	work1 := stmt("log", ast.NewInt("1"))
	work2 := stmt("log", ast.NewInt("2"))
	closeStmt := stmt("close", ast.NewIdent("h"))

	pat := []*ast.Node{stmt("open"), ast.NewIdent("$...BODY"), stmt("close", ast.NewIdent("$H"))}
	tgt := []*ast.Node{open, work1, work2, closeStmt}

	results, err := s.MatchStmts(pat, tgt)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "h", boundNode(t, r, "$H").Token)

	body, ok := r.Bindings["$...BODY"]
	require.True(t, ok)
	require.Equal(t, metavar.Stmts, body.Category)
	require.Len(t, body.Nodes, 2)
	assert.Same(t, work1, body.Nodes[0])
	assert.Same(t, work2, body.Nodes[1])

	// Every consumed statement landed in the span, in consumption order.
	require.Len(t, r.Consumed, 4)
	assert.Same(t, open, r.Consumed[0])
	assert.Same(t, closeStmt, r.Consumed[3])
}

func TestMatchStmtsRepeatedMultiCaptureConsistency(t *testing.T) {
	t.Parallel()
	s := newTestSession()
	stmt := func(name string) *ast.Node {
		return ast.NewExprStmt(ast.NewCall(ast.NewIdent(name)))
	}
	pat := []*ast.Node{ast.NewIdent("$...X"), stmt("sep"), ast.NewIdent("$...X")}

	// The two runs differ, so the second occurrence must fail the gate.
	results, err := s.MatchStmts(pat, []*ast.Node{stmt("a"), stmt("sep"), stmt("b")})
	require.NoError(t, err)
	assert.Empty(t, results)

	// Structurally equal runs rebind cleanly.
	results, err = s.MatchStmts(pat, []*ast.Node{stmt("a"), stmt("sep"), stmt("a")})
	require.NoError(t, err)
	require.Len(t, results, 1)
	v := results[0].Bindings["$...X"]
	require.Equal(t, metavar.Stmts, v.Category)
	require.Len(t, v.Nodes, 1)
	assert.True(t, ast.Equal(stmt("a"), v.Nodes[0]))
}

func TestMultiCaptureEmptyGapStillBinds(t *testing.T) {
	t.Parallel()
	s := newTestSession()

	// In argument position: f($...ARGS) against f().
	results, err := s.MatchNode(
		ast.NewCall(ast.NewIdent("f"), ast.NewIdent("$...ARGS")),
		ast.NewCall(ast.NewIdent("f")),
	)
	require.NoError(t, err)
	require.Len(t, results, 1)
	v, ok := results[0].Bindings["$...ARGS"]
	require.True(t, ok, "a gap that consumed nothing still binds")
	assert.Equal(t, metavar.Stmts, v.Category)
	assert.Empty(t, v.Nodes)

	// And over statements.
	ret := ast.NewExprStmt(ast.NewIdent("ret"))
	pat := []*ast.Node{ast.NewIdent("$...BODY"), ast.NewExprStmt(ast.NewIdent("ret"))}
	sres, err := s.MatchStmts(pat, []*ast.Node{ret})
	require.NoError(t, err)
	require.Len(t, sres, 1)
	body, ok := sres[0].Bindings["$...BODY"]
	require.True(t, ok)
	require.Equal(t, metavar.Stmts, body.Category)
	assert.Empty(t, body.Nodes)
}

func TestMatchStmtsEllipsisOnly(t *testing.T) {
	t.Parallel()
	s := newTestSession()

	results, err := s.MatchStmts([]*ast.Node{ast.NewIdent("...")}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Bindings)

	results, err = s.MatchStmts([]*ast.Node{ast.NewExprStmt(ast.NewIdent("x"))}, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMatchNodeMalformedRegexIsError(t *testing.T) {
	t.Parallel()
	s := newTestSession()
	pat := ast.NewString("=~/(/")

	results, err := s.MatchNode(pat, ast.NewString("x"))
	require.Error(t, err, "a broken pattern must not look like a non-match")
	assert.Empty(t, results)

	var bad *matcher.BadPatternError
	assert.ErrorAs(t, err, &bad)
}

func TestCheckPattern(t *testing.T) {
	t.Parallel()
	good := ast.NewCall(ast.NewIdent("f"), ast.NewString("=~/ok.*/"))
	assert.NoError(t, CheckPattern(good, lang.Unknown))

	bad := ast.NewCall(ast.NewIdent("f"), ast.NewString("=~/(/"))
	assert.Error(t, CheckPattern(bad, lang.Unknown))

	badIdent := ast.NewIdent("=~/(/")
	assert.Error(t, CheckPattern(badIdent, lang.JavaScript))
	assert.NoError(t, CheckPattern(nil, lang.Unknown))
}

func TestCachingDoesNotChangeResults(t *testing.T) {
	t.Parallel()
	pat := ast.NewCall(ast.NewIdent("f"),
		ast.NewIdent("..."), ast.NewIdent("$X"), ast.NewIdent("..."))
	tgt := ast.NewCall(ast.NewIdent("f"),
		ast.NewIdent("p"), ast.NewIdent("q"), ast.NewIdent("r"))

	plain, err := newTestSession().MatchNode(pat, tgt)
	require.NoError(t, err)

	cached, err := newTestSession().EnableCache().MatchNode(pat, tgt)
	require.NoError(t, err)

	require.Len(t, cached, len(plain))
	for i := range plain {
		assert.Equal(t, plain[i].Bindings, cached[i].Bindings)
	}
}
