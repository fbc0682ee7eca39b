package combine

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarkdownCombine/internal/domain/model"
	"MarkdownCombine/internal/infrastructure/filesystem"
	"MarkdownCombine/internal/infrastructure/logging"
	"MarkdownCombine/internal/usecase/report"
)

type recordingNotifier struct {
	mu      sync.Mutex
	notices []string
}

func (n *recordingNotifier) Notice(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, message)
}

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.notices...)
}

type recordingOpener struct {
	opened []string
	err    error
}

func (o *recordingOpener) Open(_ context.Context, file *model.FileNode) error {
	o.opened = append(o.opened, file.Path)
	return o.err
}

var fixedNow = time.Date(2024, 5, 6, 7, 8, 9, 10_000_000, time.UTC)

func newTestCombiner(vault filesystem.Vault, notifier Notifier, opts ...Option) *Combiner {
	opts = append([]Option{WithGenerator(report.NewGeneratorWithClock(func() time.Time { return fixedNow }))}, opts...)
	return NewCombiner(vault, notifier, logging.NewJSONLogger(io.Discard), opts...)
}

func docsVault() *filesystem.MemoryVault {
	return filesystem.NewMemoryVault().
		AddFile("docs/b/c.md", "World").
		AddFile("docs/a.md", "Hello").
		AddFile("docs/b/image.png", "png").
		AddFile("other.md", "outside")
}

func TestCombine_RoundTrip(t *testing.T) {
	vault := docsVault()
	notifier := &recordingNotifier{}
	opener := &recordingOpener{}
	combiner := newTestCombiner(vault, notifier, WithOpener(opener))

	result, err := combiner.Combine(context.Background(), "/docs")
	require.NoError(t, err)

	wantName := "combined-docs-2024-05-06T07-08-09.md"
	assert.Equal(t, wantName, result.FileName)
	assert.Equal(t, []string{"docs/a.md", "docs/b/c.md"}, result.Files)
	assert.True(t, result.Opened)
	assert.Equal(t, []string{wantName}, opener.opened)
	assert.Equal(t, []string{"Created " + wantName + " with 2 files"}, notifier.all())

	content, ok := vault.Content(wantName)
	require.True(t, ok, "output must be created at the vault root")

	want := "# Combined Markdown Files\n" +
		"*Generated from: /docs*\n" +
		"*Total files: 2*\n\n" +
		"---\n\n" +
		"## File: docs/a.md\n\nHello\n\n---\n\n" +
		"## File: docs/b/c.md\n\nWorld\n\n---\n\n"
	assert.Equal(t, want, content)

	// 各ファイルはちょうど1回だけ読まれる
	assert.Equal(t, 1, vault.ReadCount("docs/a.md"))
	assert.Equal(t, 1, vault.ReadCount("docs/b/c.md"))
	assert.Equal(t, 0, vault.ReadCount("other.md"))
}

func TestCombine_InvalidFolder(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "存在しないパス", path: "missing"},
		{name: "ファイルのパス", path: "docs/a.md"},
		{name: "空白を含む別名", path: " docs "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vault := docsVault()
			notifier := &recordingNotifier{}
			combiner := newTestCombiner(vault, notifier)

			result, err := combiner.Combine(context.Background(), tt.path)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, ErrInvalidFolder)
			assert.Equal(t, []string{NoticeInvalidFolder}, notifier.all())

			// 走査も読み込みも行われない
			assert.Equal(t, 0, vault.ReadCount("docs/a.md"))
			assert.Equal(t, 0, vault.ReadCount("docs/b/c.md"))
		})
	}
}

func TestCombine_NoMarkdownFiles(t *testing.T) {
	vault := filesystem.NewMemoryVault().
		AddFolder("empty/sub").
		AddFile("empty/picture.jpg", "jpg").
		AddFile("empty/NOTES.MD", "upper case extension is not markdown")
	notifier := &recordingNotifier{}
	combiner := newTestCombiner(vault, notifier)

	result, err := combiner.Combine(context.Background(), "empty")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNoMarkdownFiles)
	assert.Equal(t, []string{NoticeNoMarkdownFiles}, notifier.all())

	root, err := vault.Root(context.Background())
	require.NoError(t, err)
	for _, child := range root.Children {
		assert.False(t, strings.HasPrefix(child.NodePath(), "combined-"), "no output file may be created")
	}
}

func TestCombine_RootFolder(t *testing.T) {
	vault := filesystem.NewMemoryVault().AddFile("z.md", "Z").AddFile("a/a.md", "A")
	notifier := &recordingNotifier{}
	combiner := newTestCombiner(vault, notifier)

	result, err := combiner.Combine(context.Background(), "/")
	require.NoError(t, err)
	assert.Equal(t, "combined--2024-05-06T07-08-09.md", result.FileName)
	assert.Equal(t, []string{"a/a.md", "z.md"}, result.Files)
}

func TestCombine_ReadFailurePropagates(t *testing.T) {
	boom := errors.New("i/o error")
	vault := docsVault().FailRead("docs/b/c.md", boom)
	notifier := &recordingNotifier{}
	combiner := newTestCombiner(vault, notifier)

	_, err := combiner.Combine(context.Background(), "docs")
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, notifier.all())

	_, exists := vault.Content("combined-docs-2024-05-06T07-08-09.md")
	assert.False(t, exists)
}

func TestCombine_NameCollisionPropagates(t *testing.T) {
	vault := docsVault().AddFile("combined-docs-2024-05-06T07-08-09.md", "previous")
	notifier := &recordingNotifier{}
	combiner := newTestCombiner(vault, notifier)

	_, err := combiner.Combine(context.Background(), "docs")
	assert.ErrorIs(t, err, fs.ErrExist)
	assert.Empty(t, notifier.all())

	content, _ := vault.Content("combined-docs-2024-05-06T07-08-09.md")
	assert.Equal(t, "previous", content, "existing file must not be overwritten")
}

func TestCombine_OpenFailurePropagates(t *testing.T) {
	vault := docsVault()
	notifier := &recordingNotifier{}
	opener := &recordingOpener{err: errors.New("no viewer")}
	combiner := newTestCombiner(vault, notifier, WithOpener(opener))

	result, err := combiner.Combine(context.Background(), "docs")
	require.Error(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Opened)
	assert.Len(t, notifier.all(), 1)
}

// blockingVault は読み込みを止めて結合処理の実行中状態を作ります
type blockingVault struct {
	*filesystem.MemoryVault
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingVault) Read(ctx context.Context, file *model.FileNode) (string, error) {
	b.once.Do(func() { close(b.started) })
	<-b.release
	return b.MemoryVault.Read(ctx, file)
}

func TestCombine_RejectsOverlappingRuns(t *testing.T) {
	vault := &blockingVault{
		MemoryVault: docsVault(),
		started:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	notifier := &recordingNotifier{}
	combiner := newTestCombiner(vault, notifier)

	done := make(chan error, 1)
	go func() {
		_, err := combiner.Combine(context.Background(), "docs")
		done <- err
	}()
	<-vault.started

	_, err := combiner.Combine(context.Background(), "docs")
	assert.ErrorIs(t, err, ErrBusy)

	close(vault.release)
	require.NoError(t, <-done)
	assert.Len(t, notifier.all(), 1)
}

func TestCombine_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	combiner := newTestCombiner(docsVault(), &recordingNotifier{})
	_, err := combiner.Combine(ctx, "docs")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCombine_UnreadableSubtreeFails(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("PATH_MAX を超えるパスの扱いが異なるため")
	}
	dir := t.TempDir()
	docs := filepath.Join(dir, "docs")
	require.NoError(t, os.MkdirAll(docs, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "a.md"), []byte("Hello"), 0644))

	// docs 配下に絶対パスが長すぎて読めない階層を作る
	t.Chdir(docs)
	name := strings.Repeat("d", 200)
	for i := 0; i < 25; i++ {
		require.NoError(t, os.Mkdir(name, 0755))
		require.NoError(t, os.Chdir(name))
	}
	require.NoError(t, os.WriteFile("deep.md", []byte("deep"), 0644))

	vault, err := filesystem.NewLocalVault(dir, logging.NewJSONLogger(io.Discard))
	require.NoError(t, err)
	notifier := &recordingNotifier{}

	result, err := newTestCombiner(vault, notifier).Combine(context.Background(), "docs")
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Empty(t, notifier.all())

	_, statErr := os.Stat(filepath.Join(dir, "combined-docs-2024-05-06T07-08-09.md"))
	assert.ErrorIs(t, statErr, fs.ErrNotExist)
}

func TestDiscover_SortedAndIdempotent(t *testing.T) {
	vault := filesystem.NewMemoryVault().
		AddFile("notes/zeta.md", "").
		AddFile("notes/Beta.md", "").
		AddFile("notes/alpha.md", "").
		AddFile("notes/sub/deep/x.md", "").
		AddFile("notes/readme.txt", "")
	combiner := newTestCombiner(vault, &recordingNotifier{})

	first, err := combiner.Files(context.Background(), "notes")
	require.NoError(t, err)
	want := []string{"notes/alpha.md", "notes/Beta.md", "notes/sub/deep/x.md", "notes/zeta.md"}
	assert.Equal(t, want, model.Paths(first))

	second, err := combiner.Files(context.Background(), "notes")
	require.NoError(t, err)
	assert.Equal(t, model.Paths(first), model.Paths(second))

	model.SortByPath(second, LocaleCompare())
	assert.Equal(t, want, model.Paths(second))

	_, err = combiner.Files(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrInvalidFolder)
}

func TestDiscover_BinaryOrdering(t *testing.T) {
	vault := filesystem.NewMemoryVault().
		AddFile("notes/alpha.md", "").
		AddFile("notes/Beta.md", "")
	combiner := newTestCombiner(vault, &recordingNotifier{}, WithOrdering(BinaryCompare()))

	files, err := combiner.Files(context.Background(), "notes")
	require.NoError(t, err)
	assert.Equal(t, []string{"notes/Beta.md", "notes/alpha.md"}, model.Paths(files))
}

func TestParseOrdering(t *testing.T) {
	for _, name := range []string{"", "locale", "LOCALE", "binary"} {
		cmp, err := ParseOrdering(name)
		require.NoError(t, err, name)
		assert.NotNil(t, cmp)
	}
	_, err := ParseOrdering("random")
	assert.Error(t, err)
}

func TestFolders(t *testing.T) {
	combiner := newTestCombiner(docsVault(), &recordingNotifier{})
	folders, err := combiner.Folders(context.Background())
	require.NoError(t, err)

	var paths []string
	for _, f := range folders {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{"/", "docs", "docs/b"}, paths)
}
