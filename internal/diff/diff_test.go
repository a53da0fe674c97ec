package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFileChanges(t *testing.T) {
	t.Run("context only diff yields identical sides", func(t *testing.T) {
		diffText := "diff --git a/main.go b/main.go\n" +
			"index 123..456 100644\n" +
			"--- a/main.go\n" +
			"+++ b/main.go\n" +
			"@@ -1,3 +1,3 @@\n" +
			" package main\n" +
			" \n" +
			" func main() {}\n"

		changes := ExtractFileChanges(diffText)

		require.Len(t, changes, 1)
		assert.Equal(t, "main.go", changes[0].FileName)
		assert.Equal(t, changes[0].Original, changes[0].Changed)
		assert.Equal(t, "package main\n\nfunc main() {}", changes[0].Original)
	})

	t.Run("additions only yields empty original", func(t *testing.T) {
		diffText := "diff --git a/new.go b/new.go\n" +
			"@@ -0,0 +1,2 @@\n" +
			"+package new\n" +
			"+var x = 1\n"

		changes := ExtractFileChanges(diffText)

		require.Len(t, changes, 1)
		assert.Equal(t, "", changes[0].Original)
		assert.Equal(t, "package new\nvar x = 1", changes[0].Changed)
	})

	t.Run("deletions only yields empty changed", func(t *testing.T) {
		diffText := "diff --git a/old.go b/old.go\n" +
			"@@ -1,2 +0,0 @@\n" +
			"-package old\n" +
			"-var y = 2\n"

		changes := ExtractFileChanges(diffText)

		require.Len(t, changes, 1)
		assert.Equal(t, "package old\nvar y = 2", changes[0].Original)
		assert.Equal(t, "", changes[0].Changed)
	})

	t.Run("multi file diff splits on headers", func(t *testing.T) {
		diffText := "diff --git a/first.go b/first.go\n" +
			"@@ -1 +1 @@\n" +
			"-old line\n" +
			"+new line\n" +
			"diff --git a/second.go b/second.go\n" +
			"@@ -1 +1 @@\n" +
			" unchanged\n"

		changes := ExtractFileChanges(diffText)

		require.Len(t, changes, 2)
		assert.Equal(t, "first.go", changes[0].FileName)
		assert.Equal(t, "second.go", changes[1].FileName)
		assert.Equal(t, "old line", changes[0].Original)
		assert.Equal(t, "new line", changes[0].Changed)
	})

	t.Run("mixed hunks concatenate in order", func(t *testing.T) {
		diffText := "diff --git a/app.go b/app.go\n" +
			"@@ -1,2 +1,2 @@\n" +
			" package app\n" +
			"-var a = 1\n" +
			"+var a = 2\n" +
			"@@ -10,2 +10,2 @@\n" +
			" func run() {\n" +
			"-\treturn\n" +
			"+\tpanic(\"boom\")\n"

		changes := ExtractFileChanges(diffText)

		require.Len(t, changes, 1)
		assert.Equal(t, "package app\nvar a = 1\nfunc run() {\n\treturn", changes[0].Original)
		assert.Equal(t, "package app\nvar a = 2\nfunc run() {\n\tpanic(\"boom\")", changes[0].Changed)
	})

	t.Run("content before first hunk is ignored", func(t *testing.T) {
		diffText := "diff --git a/readme.md b/readme.md\n" +
			"index abc..def 100644\n" +
			"Binary marker noise\n" +
			"@@ -1 +1 @@\n" +
			"-hello\n" +
			"+goodbye\n"

		changes := ExtractFileChanges(diffText)

		require.Len(t, changes, 1)
		assert.Equal(t, "hello", changes[0].Original)
		assert.Equal(t, "goodbye", changes[0].Changed)
	})

	t.Run("empty input yields empty result", func(t *testing.T) {
		assert.Empty(t, ExtractFileChanges(""))
		assert.Empty(t, ExtractFileChanges("   \n  "))
	})

	t.Run("malformed input yields empty result without panic", func(t *testing.T) {
		assert.Empty(t, ExtractFileChanges("this is not a diff at all"))
		assert.Empty(t, ExtractFileChanges("@@ -1 +1 @@\n-no file header\n"))
	})
}
