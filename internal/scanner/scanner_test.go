package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTags = []string{"html", "svelte"}

func TestFindBlocks(t *testing.T) {
	t.Run("ordered non-overlapping matches", func(t *testing.T) {
		src := "const a = html`<h1>A</h1>`;\nrender(svelte`<p>B</p>`);\n"
		blocks := FindBlocks(src, testTags)
		require.Len(t, blocks, 2)

		assert.Equal(t, "html", blocks[0].Tag)
		assert.Equal(t, "<h1>A</h1>", blocks[0].Markup)
		assert.Equal(t, "svelte", blocks[1].Tag)
		assert.Equal(t, "<p>B</p>", blocks[1].Markup)
		assert.Less(t, blocks[0].End, blocks[1].Start)
	})

	t.Run("span covers tag through closing backtick", func(t *testing.T) {
		src := "x = html`<div/>`;"
		blocks := FindBlocks(src, testTags)
		require.Len(t, blocks, 1)
		assert.Equal(t, "html`<div/>`", src[blocks[0].Start:blocks[0].End])
	})

	t.Run("tag must stand on an identifier boundary", func(t *testing.T) {
		src := "myhtml`<div/>`"
		assert.Empty(t, FindBlocks(src, testTags))
	})

	t.Run("lazy match stops at first backtick", func(t *testing.T) {
		src := "html`<b>x</b>` + html`<i>y</i>`"
		blocks := FindBlocks(src, testTags)
		require.Len(t, blocks, 2)
		assert.Equal(t, "<b>x</b>", blocks[0].Markup)
		assert.Equal(t, "<i>y</i>", blocks[1].Markup)
	})

	t.Run("no tags configured", func(t *testing.T) {
		assert.Nil(t, FindBlocks("html`<div/>`", nil))
	})
}

func TestFindFence(t *testing.T) {
	t.Run("first occurrence only", func(t *testing.T) {
		src := "a\n/* shared\nconst x = 1;\n*/\nb\n/* shared\nconst y = 2;\n*/\n"
		f, ok := FindFence(src, "/* shared", "*/")
		require.True(t, ok)
		assert.Equal(t, "\nconst x = 1;\n", f.Content)
		assert.Equal(t, "/* shared\nconst x = 1;\n*/", src[f.Start:f.End])
	})

	t.Run("missing end delimiter means absent", func(t *testing.T) {
		_, ok := FindFence("/* shared\nconst x = 1;\n", "/* shared", "*/")
		assert.False(t, ok)
	})

	t.Run("missing start delimiter means absent", func(t *testing.T) {
		_, ok := FindFence("const x = 1;", "/* shared", "*/")
		assert.False(t, ok)
	})

	t.Run("contains", func(t *testing.T) {
		src := "xx/*s yy e*/zz"
		f, ok := FindFence(src, "/*s", "e*/")
		require.True(t, ok)
		assert.True(t, f.Contains(f.Start))
		assert.True(t, f.Contains(f.End-1))
		assert.False(t, f.Contains(f.End))
		assert.False(t, f.Contains(0))
	})
}

func TestParseDeclarations(t *testing.T) {
	t.Run("components and plain values", func(t *testing.T) {
		content := "import { tick } from 'svelte';\n" +
			"const Frank = html`<h1>Frank</h1>`;\n" +
			"const count = 42;\n" +
			"let greeting = 'hi';\n"
		decls, imports := ParseDeclarations(content, testTags)
		require.Len(t, decls, 3)

		assert.Equal(t, "Frank", decls[0].Name)
		assert.Equal(t, KindComponent, decls[0].Kind)
		assert.Equal(t, "<h1>Frank</h1>", decls[0].Text)

		assert.Equal(t, "count", decls[1].Name)
		assert.Equal(t, KindPlain, decls[1].Kind)
		assert.Equal(t, "const count = 42;", decls[1].Text)

		assert.Equal(t, "greeting", decls[2].Name)
		assert.Equal(t, "let greeting = 'hi';", decls[2].Text)

		require.Len(t, imports, 1)
		assert.Equal(t, "import { tick } from 'svelte';", imports[0])
	})

	t.Run("multi-line object literal", func(t *testing.T) {
		content := "const opts = {\n  a: 1,\n  b: [2, 3],\n};\nconst n = 4;\n"
		decls, _ := ParseDeclarations(content, testTags)
		require.Len(t, decls, 2)
		assert.Equal(t, "const opts = {\n  a: 1,\n  b: [2, 3],\n};", decls[0].Text)
		assert.Equal(t, "const n = 4;", decls[1].Text)
	})

	t.Run("nested declarations are not top-level", func(t *testing.T) {
		content := "const f = () => {\n  let inner = 1;\n  return inner;\n};\n"
		decls, _ := ParseDeclarations(content, testTags)
		require.Len(t, decls, 1)
		assert.Equal(t, "f", decls[0].Name)
	})

	t.Run("missing semicolon falls back to newline", func(t *testing.T) {
		content := "const broken = {\nconst after = 1\n"
		decls, _ := ParseDeclarations(content, testTags)
		require.NotEmpty(t, decls)
		assert.Equal(t, "broken", decls[0].Name)
		assert.Equal(t, "const broken = {", decls[0].Text)
	})

	t.Run("component name excluded from plain pass", func(t *testing.T) {
		content := "const Card = svelte`<div>card</div>`;\n"
		decls, _ := ParseDeclarations(content, testTags)
		require.Len(t, decls, 1)
		assert.Equal(t, KindComponent, decls[0].Kind)
	})

	t.Run("later declaration of the same name wins", func(t *testing.T) {
		content := "const x = 1;\nconst x = 2;\n"
		decls, _ := ParseDeclarations(content, testTags)
		require.Len(t, decls, 1)
		assert.Equal(t, "const x = 2;", decls[0].Text)
	})
}
