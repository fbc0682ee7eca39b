package combine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarkdownCombine/internal/domain/model"
)

type cancelPicker struct{ sawRoot *model.FolderNode }

func (p *cancelPicker) Pick(_ context.Context, root *model.FolderNode, _ func(string)) error {
	p.sawRoot = root
	return nil
}

type failingPicker struct{}

func (failingPicker) Pick(context.Context, *model.FolderNode, func(string)) error {
	return errors.New("display unavailable")
}

func TestRun_PathPicker(t *testing.T) {
	notifier := &recordingNotifier{}
	combiner := newTestCombiner(docsVault(), notifier)

	result, err := combiner.Run(context.Background(), PathPicker("docs"))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, []string{"docs/a.md", "docs/b/c.md"}, result.Files)
	assert.Len(t, notifier.all(), 1)
}

func TestRun_CancelDoesNothing(t *testing.T) {
	vault := docsVault()
	notifier := &recordingNotifier{}
	combiner := newTestCombiner(vault, notifier)

	picker := &cancelPicker{}
	result, err := combiner.Run(context.Background(), picker)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Empty(t, notifier.all())
	assert.Equal(t, model.RootPath, picker.sawRoot.Path)
	assert.Equal(t, 0, vault.ReadCount("docs/a.md"))

	result, err = combiner.Run(context.Background(), PathPicker(""))
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestRun_PickerErrorAndCombineError(t *testing.T) {
	notifier := &recordingNotifier{}
	combiner := newTestCombiner(docsVault(), notifier)

	_, err := combiner.Run(context.Background(), failingPicker{})
	assert.Error(t, err)
	assert.Empty(t, notifier.all())

	_, err = combiner.Run(context.Background(), PathPicker("missing"))
	assert.ErrorIs(t, err, ErrInvalidFolder)
	assert.Equal(t, []string{NoticeInvalidFolder}, notifier.all())
}
