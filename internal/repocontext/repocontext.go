// Package repocontext assembles a lightweight snapshot of a repository
// for the model: a listing of the top-level entries followed by the
// beginnings of well-known manifest files. The snapshot rides along with
// prompts that ask about the project rather than change it.
package repocontext

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

const defaultHeadLimit = 1500

var defaultManifests = []string{"README.md", "Cargo.toml", "package.json", "pyproject.toml", "go.mod"}

var contextNeedles = []string{"summarize", "explain", "understand", "what is this", "what does", "describe", "about this"}

// NeedsContext reports whether prompt reads like a question about the
// repository. Matching is case-insensitive.
func NeedsContext(prompt string) bool {
	lower := strings.ToLower(prompt)
	for _, needle := range contextNeedles {
		if strings.Contains(lower, needle) {
			return true
		}
	}
	return false
}

// Gatherer builds repository snapshots.
type Gatherer struct {
	// Manifests are the files whose heads are inlined after the listing,
	// in section order. Nil selects the default set.
	Manifests []string
	// HeadLimit caps how many characters of each manifest are inlined.
	// Zero or negative selects the default of 1500.
	HeadLimit int
}

// Gather returns the snapshot for the directory at root. The listing
// skips dotfiles. Manifest heads are read concurrently but always appear
// in Manifests order. Unreadable entries are left out rather than failing
// the snapshot.
func (g *Gatherer) Gather(ctx context.Context, root string) (string, error) {
	manifests := g.Manifests
	if manifests == nil {
		manifests = defaultManifests
	}
	limit := g.HeadLimit
	if limit <= 0 {
		limit = defaultHeadLimit
	}

	var b strings.Builder
	b.WriteString("FILES:\n")
	if entries, err := os.ReadDir(root); err == nil {
		for _, entry := range entries {
			name := entry.Name()
			if strings.HasPrefix(name, ".") {
				continue
			}
			if entry.IsDir() {
				b.WriteString("[dir] ")
			} else {
				b.WriteString("[file] ")
			}
			b.WriteString(name)
			b.WriteByte('\n')
		}
	}

	type head struct {
		text string
		ok   bool
	}
	heads := make([]head, len(manifests))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, name := range manifests {
		eg.Go(func() error {
			if egCtx.Err() != nil {
				return egCtx.Err()
			}
			content, err := os.ReadFile(filepath.Join(root, name))
			if err != nil {
				// Skip missing or unreadable manifests
				return nil
			}
			heads[i] = head{text: truncate(string(content), limit), ok: true}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return "", err
	}

	for i, name := range manifests {
		if !heads[i].ok {
			continue
		}
		b.WriteString("\n--- ")
		b.WriteString(name)
		b.WriteString(" ---\n")
		b.WriteString(heads[i].text)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// truncate cuts s after limit characters, on a rune boundary.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
