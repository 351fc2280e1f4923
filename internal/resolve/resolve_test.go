package resolve

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	t.Run("stable and short", func(t *testing.T) {
		a := Hash("<h1>Hello World</h1>")
		b := Hash("<h1>Hello World</h1>")
		assert.Equal(t, a, b)
		assert.Len(t, a, 8)
	})

	t.Run("distinct input distinct hash", func(t *testing.T) {
		assert.NotEqual(t, Hash("<p>a</p>"), Hash("<p>b</p>"))
	})
}

func TestInject(t *testing.T) {
	t.Run("into existing instance script", func(t *testing.T) {
		markup := "<script>\nlet n = 1;\n</script>\n<p>{n}</p>"
		got := Inject(markup, "const shared = 2;")
		assert.Equal(t, "<script>\nconst shared = 2;\nlet n = 1;\n</script>\n<p>{n}</p>", got)
	})

	t.Run("synthesizes script when none exists", func(t *testing.T) {
		got := Inject("<p>hi</p>", "const x = 1;")
		assert.Equal(t, "<script>\nconst x = 1;\n</script>\n<p>hi</p>", got)
	})

	t.Run("skips module-context scripts", func(t *testing.T) {
		markup := "<script context=\"module\">\nexport const header = 'h';\n</script>\n" +
			"<script>\nlet n = 1;\n</script>\n<p/>"
		got := Inject(markup, "const x = 1;")
		assert.Contains(t, got, "<script>\nconst x = 1;\nlet n = 1;")
		assert.True(t, strings.HasPrefix(got, "<script context=\"module\">\nexport const header"))
	})

	t.Run("module script only synthesizes a fresh instance script", func(t *testing.T) {
		markup := "<script module>\nexport const a = 1;\n</script>\n<p/>"
		got := Inject(markup, "const x = 1;")
		assert.True(t, strings.HasPrefix(got, "<script>\nconst x = 1;\n</script>\n"))
	})

	t.Run("empty shared code is a no-op", func(t *testing.T) {
		markup := "<p>untouched</p>"
		assert.Equal(t, markup, Inject(markup, ""))
		assert.Equal(t, markup, Inject(markup, "  \n\t"))
	})
}

func TestDeclaresName(t *testing.T) {
	markup := "<script>\nconst count = 5;\nlet title = 'x';\n</script>\n<p>{count}</p>"

	assert.True(t, DeclaresName(markup, "count"))
	assert.True(t, DeclaresName(markup, "title"))
	assert.False(t, DeclaresName(markup, "other"))

	t.Run("module script declarations do not count", func(t *testing.T) {
		m := "<script context=\"module\">\nexport const header = 1;\n</script>\n<p/>"
		assert.False(t, DeclaresName(m, "header"))
	})

	t.Run("markup references do not count", func(t *testing.T) {
		assert.False(t, DeclaresName("<p>{count}</p>", "count"))
	})
}

func TestModule(t *testing.T) {
	t.Run("naming convention", func(t *testing.T) {
		m := NewModule("<h1>Hi</h1>")
		assert.Equal(t, "Inline_"+m.Hash, m.LocalName)
		assert.Equal(t, VirtualPrefix+m.Hash+".svelte", m.Path)
		assert.Equal(t, "Inline_"+m.Hash+".svelte", m.Filename())
		assert.False(t, m.HasModuleScript)
	})

	t.Run("default import", func(t *testing.T) {
		m := NewModule("<h1>Hi</h1>")
		assert.Equal(t, "import "+m.LocalName+" from '"+m.Path+"';", m.ImportStmt())
		assert.Empty(t, m.MergeStmt())
		binds := m.BindStmts("Frank")
		require.Len(t, binds, 1)
		assert.Equal(t, "import Frank from '"+m.Path+"';", binds[0])
	})

	t.Run("namespace import for module-context scripts", func(t *testing.T) {
		m := NewModule("<script context=\"module\">export const header = 1;</script><p/>")
		require.True(t, m.HasModuleScript)
		ns := "__InlineNS_" + m.Hash
		assert.Equal(t, "import * as "+ns+" from '"+m.Path+"';", m.ImportStmt())
		assert.Equal(t, "const "+m.LocalName+" = Object.assign("+ns+".default, "+ns+");", m.MergeStmt())

		binds := m.BindStmts("Card")
		require.Len(t, binds, 2)
		assert.Contains(t, binds[1], "const Card = Object.assign(")
	})

	t.Run("path reverses to filename", func(t *testing.T) {
		m := NewModule("<p/>")
		assert.Equal(t, m.Filename(), PathToFilename(m.Path))
	})
}
