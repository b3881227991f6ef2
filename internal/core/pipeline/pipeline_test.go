package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakiengine/saki/internal/core/manifest"
	"github.com/sakiengine/saki/internal/core/mirror"
	"github.com/sakiengine/saki/internal/core/project"
	"github.com/sakiengine/saki/internal/core/pubspec"
)

const header = `name: sakiengine
description: engine
version: 1.0.0

dependencies:
  flutter:
    sdk: flutter

flutter:
  uses-material-design: true
`

const footer = `  shaders:
    - shaders/blur.frag
`

const baseManifest = header + `  assets:
    - assets/old/

  fonts:
    - family: Old
      fonts:
        - asset: assets/Old.ttf
` + footer

var demo = project.ContentProject{Name: "Demo", Root: "Game/Demo"}

type recordingReporter struct {
	events []string
}

func (r *recordingReporter) StepStart(step, _ string)    { r.events = append(r.events, "start:"+step) }
func (r *recordingReporter) StepComplete(step, _ string) { r.events = append(r.events, "done:"+step) }
func (r *recordingReporter) Warn(step string, err error) {
	r.events = append(r.events, "warn:"+step+":"+err.Error())
}
func (r *recordingReporter) StepError(step string, _ error) { r.events = append(r.events, "error:"+step) }

type fakeIdentity struct {
	got []project.Identity
	err error
}

func (f *fakeIdentity) ApplyIdentity(_ context.Context, id project.Identity) error {
	f.got = append(f.got, id)
	return f.err
}

func writeFiles(t *testing.T, fsys billy.Filesystem, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, util.WriteFile(fsys, name, []byte(content), 0o644))
	}
}

func demoWorkspace(t *testing.T, fsys billy.Filesystem) {
	t.Helper()
	writeFiles(t, fsys, map[string]string{
		"Engine/pubspec.yaml":                          baseManifest,
		"Engine/assets/fonts/SourceHanSansCN-Bold.ttf": "bundled",
		"Engine/assets/shaders/blur.frag":              "shader",
		"Game/Demo/Assets/fonts/Hero.ttf":              "hero",
		"Game/Demo/Assets/images/chars/a.png":          "a",
		"Game/Demo/icon.png":                           "icon",
		"Game/Demo/game_config.txt":                    "Demo\ncom.x.demo\n",
		"default_game.txt":                             "Demo\n",
	})
}

func TestPrepareDemoEndToEnd(t *testing.T) {
	root := t.TempDir()
	fsys := osfs.New(root)
	demoWorkspace(t, fsys)

	rep := &recordingReporter{}
	ids := &fakeIdentity{}
	p := New(fsys, project.DefaultLayout(), WithReporter(rep), WithIdentitySetter(ids))

	res, err := p.Prepare(context.Background(), demo)
	require.NoError(t, err)

	assert.Equal(t, []project.Identity{{AppName: "Demo", BundleID: "com.x.demo"}}, ids.got)
	require.NotNil(t, res.Identity)
	assert.Equal(t, "com.x.demo", res.Identity.BundleID)

	for _, f := range []string{"Assets/fonts/Hero.ttf", "Assets/images/chars/a.png", "icon.png", "default_game.txt"} {
		_, err := os.Stat(filepath.Join(root, "Engine", "assets", filepath.FromSlash(f)))
		assert.NoError(t, err, "missing mirrored file %s", f)
	}
	assert.Equal(t, mirror.IconProject, res.Sync.Icon)

	data, err := os.ReadFile(filepath.Join(root, "Engine", "pubspec.yaml"))
	require.NoError(t, err)
	want := header + `  assets:
    - assets/default_game.txt
    - assets/fonts/
    - assets/Assets/
    - assets/Assets/images/
    - assets/Assets/images/chars/
  fonts:
    - family: SourceHanSansCN
      fonts:
        - asset: assets/fonts/SourceHanSansCN-Bold.ttf
          weight: 700
    - family: Hero
      fonts:
        - asset: assets/Assets/fonts/Hero.ttf
` + footer
	assert.Equal(t, want, string(data))

	assert.True(t, res.Change.Written)
	assert.NoFileExists(t, filepath.Join(root, "Engine", "pubspec.yaml.backup"))

	assert.Equal(t, []string{
		"start:identity", "done:identity",
		"start:sync", "done:sync",
		"start:manifest", "done:manifest",
	}, rep.events)
}

func TestPrepareIdempotent(t *testing.T) {
	t.Parallel()

	fsys := memfs.New()
	demoWorkspace(t, fsys)
	p := New(fsys, project.DefaultLayout())

	_, err := p.Prepare(context.Background(), demo)
	require.NoError(t, err)
	first, err := util.ReadFile(fsys, "Engine/pubspec.yaml")
	require.NoError(t, err)

	res, err := p.Prepare(context.Background(), demo)
	require.NoError(t, err)
	second, err := util.ReadFile(fsys, "Engine/pubspec.yaml")
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.False(t, res.Change.Changed())
	assert.False(t, res.Change.Written)
}

func TestPrepareFailCleanOnMissingAnchor(t *testing.T) {
	t.Parallel()

	fsys := memfs.New()
	demoWorkspace(t, fsys)
	broken := strings.Replace(baseManifest, "  fonts:", " fonts:", 1)
	writeFiles(t, fsys, map[string]string{"Engine/pubspec.yaml": broken})

	rep := &recordingReporter{}
	_, err := New(fsys, project.DefaultLayout(), WithReporter(rep)).Prepare(context.Background(), demo)
	require.Error(t, err)
	assert.ErrorIs(t, err, manifest.ErrSectionNotFound)

	data, err := util.ReadFile(fsys, "Engine/pubspec.yaml")
	require.NoError(t, err)
	assert.Equal(t, broken, string(data), "manifest must be untouched when any section is missing")
	assert.Contains(t, rep.events, "error:manifest")
}

func TestPrepareIdentityFailureStopsPipeline(t *testing.T) {
	t.Parallel()

	fsys := memfs.New()
	demoWorkspace(t, fsys)
	boom := errors.New("rename failed")

	rep := &recordingReporter{}
	_, err := New(fsys, project.DefaultLayout(),
		WithReporter(rep),
		WithIdentitySetter(&fakeIdentity{err: boom}),
	).Prepare(context.Background(), demo)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"start:identity", "error:identity"}, rep.events)

	_, statErr := fsys.Stat("Engine/assets/Assets")
	assert.Error(t, statErr, "sync must not run after identity fails")
}

func TestPrepareInvalidDescriptor(t *testing.T) {
	t.Parallel()

	fsys := memfs.New()
	demoWorkspace(t, fsys)
	writeFiles(t, fsys, map[string]string{"Game/Demo/game_config.txt": "Demo\n"})

	_, err := New(fsys, project.DefaultLayout(), WithIdentitySetter(&fakeIdentity{})).
		Prepare(context.Background(), demo)
	assert.ErrorIs(t, err, project.ErrInvalidDescriptor)
}

func TestPrepareReportsMissingIcon(t *testing.T) {
	t.Parallel()

	fsys := memfs.New()
	demoWorkspace(t, fsys)
	require.NoError(t, fsys.Remove("Game/Demo/icon.png"))

	rep := &recordingReporter{}
	res, err := New(fsys, project.DefaultLayout(), WithReporter(rep)).Prepare(context.Background(), demo)
	require.NoError(t, err)
	assert.Equal(t, mirror.IconMissing, res.Sync.Icon)
	assert.Contains(t, rep.events, "warn:sync:"+mirror.ErrMissingIcon.Error())
}

func TestRegenerateDryRunAndDiff(t *testing.T) {
	t.Parallel()

	fsys := memfs.New()
	demoWorkspace(t, fsys)
	p := New(fsys, project.DefaultLayout(), WithEditorOptions(manifest.WithDryRun(true)))

	_, err := p.Sync(demo)
	require.NoError(t, err)
	change, err := p.Regenerate(demo)
	require.NoError(t, err)
	assert.True(t, change.Changed())
	assert.False(t, change.Written)

	data, err := util.ReadFile(fsys, "Engine/pubspec.yaml")
	require.NoError(t, err)
	assert.Equal(t, baseManifest, string(data))

	var buf bytes.Buffer
	require.NoError(t, change.WriteDiff(context.Background(), &buf, false))
	assert.Contains(t, buf.String(), "-    - assets/old/")
	assert.Contains(t, buf.String(), "+    - family: Hero")
}

func TestRegenerateBackupAndRestore(t *testing.T) {
	t.Parallel()

	fsys := memfs.New()
	demoWorkspace(t, fsys)
	p := New(fsys, project.DefaultLayout(), WithEditorOptions(manifest.WithBackup(true)))

	change, err := p.Regenerate(demo)
	require.NoError(t, err)
	assert.Equal(t, "Engine/pubspec.yaml.backup", change.BackupPath)

	require.NoError(t, p.Restore())
	data, err := util.ReadFile(fsys, "Engine/pubspec.yaml")
	require.NoError(t, err)
	assert.Equal(t, baseManifest, string(data))
}

func TestEditsUseGeneratorOptions(t *testing.T) {
	t.Parallel()

	fsys := memfs.New()
	demoWorkspace(t, fsys)
	p := New(fsys, project.DefaultLayout(), WithGeneratorOptions(
		pubspec.WithBundledFont(pubspec.BundledFont{Family: "Noto", Asset: "assets/fonts/Noto.ttf"}),
	))

	edits := p.Edits(demo)
	require.Len(t, edits, 2)
	assert.Equal(t, "assets", edits[0].Rule.Name())
	assert.Equal(t, "    - family: Noto", edits[1].Body[1])
}

func TestPrepareCancelled(t *testing.T) {
	t.Parallel()

	fsys := memfs.New()
	demoWorkspace(t, fsys)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(fsys, project.DefaultLayout()).Prepare(ctx, demo)
	assert.ErrorIs(t, err, context.Canceled)
}
