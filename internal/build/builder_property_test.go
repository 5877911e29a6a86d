//go:build property
// +build property

package build

import (
	"context"
	"fmt"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	helpers "git.home.luguber.info/inful/staticbuild/internal/testutil/testutils"
)

// TestBuildProperties checks that the output is exactly the source tree plus the page, every time.
func TestBuildProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("output mirrors source and rebuilds are idempotent", prop.ForAll(
		func(contents []string) bool {
			cfg := testConfig(t)
			files := map[string]string{}
			for i, c := range contents {
				files[fmt.Sprintf("d%d/f%d.txt", i%3, i)] = c
			}
			helpers.WriteTree(t, cfg.Source, files)
			b := quietBuilder(cfg)

			if _, err := b.Build(context.Background()); err != nil {
				return false
			}
			first := helpers.SnapshotTree(t, cfg.Output.Directory)

			want := helpers.SnapshotTree(t, cfg.Source)
			want[filepath.ToSlash(cfg.Output.Page)] = defaultPage(t)
			if !reflect.DeepEqual(want, first) {
				return false
			}

			if _, err := b.Build(context.Background()); err != nil {
				return false
			}
			return reflect.DeepEqual(first, helpers.SnapshotTree(t, cfg.Output.Directory))
		},
		gen.SliceOfN(6, gen.AlphaString()),
	))

	properties.TestingRun(t)
}
