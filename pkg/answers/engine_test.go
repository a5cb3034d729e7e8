// pkg/answers/engine_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: pongo2 renderer, mock Prompter
// PURPOSE: Test ordered answer resolution, sources, defaults and re-prompting

package answers_test

import (
	"testing"

	"github.com/arthur-debert/kiln/pkg/answers"
	"github.com/arthur-debert/kiln/pkg/errors"
	"github.com/arthur-debert/kiln/pkg/render"
	"github.com/arthur-debert/kiln/pkg/testutil"
	"github.com/arthur-debert/kiln/pkg/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newEngine(p answers.Prompter, interactive bool) *answers.Engine {
	return answers.NewEngine(render.New(), p, answers.Options{Interactive: interactive, MaxAttempts: 3})
}

func toMap(a *types.Answers) map[string]interface{} {
	return a.Map()
}

func TestResolve_SequentialVisibility(t *testing.T) {
	set := types.QuestionSet{
		{Key: "project_name", Type: types.QuestionTypeText, Default: "Demo"},
		{Key: "slug", Type: types.QuestionTypeText, Default: "{{ project_name|lower }}-{{ suffix }}", Help: "Slug for {{ project_name }}"},
		{Key: "suffix", Type: types.QuestionTypeText, Default: "x"},
	}

	p := &testutil.MockPrompter{}
	p.On("Text", "project_name", "Demo").Return("Demo", nil)
	// suffix is not answered yet, so it renders empty instead of failing
	p.On("Text", "Slug for Demo", "demo-").Return("demo-", nil)
	p.On("Text", "suffix", "x").Return("x", nil)

	got, err := newEngine(p, true).Resolve(set)
	require.NoError(t, err)
	p.AssertExpectations(t)

	assert.Equal(t, []string{"project_name", "slug", "suffix"}, got.Keys())
	assert.True(t, got.Frozen())
	want := map[string]interface{}{"project_name": "Demo", "slug": "demo-", "suffix": "x"}
	if diff := cmp.Diff(want, toMap(got)); diff != "" {
		t.Errorf("answers mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_SourcePrecedence(t *testing.T) {
	set := types.QuestionSet{
		{Key: "name", Type: types.QuestionTypeText},
		{Key: "color", Type: types.QuestionTypeText},
		{Key: "size", Type: types.QuestionTypeText},
	}

	explicit := answers.NewMapSource(answers.SourceExplicit, map[string]interface{}{"name": "from-explicit"})
	preHook := answers.NewMapSource(answers.SourcePreHook, map[string]interface{}{"name": "from-hook", "color": "blue"})

	p := &testutil.MockPrompter{}
	p.On("Text", "size", "").Return("large", nil).Once()

	got, err := newEngine(p, true).Resolve(set, explicit, preHook)
	require.NoError(t, err)
	p.AssertExpectations(t)
	// hook supplied color, so no prompt for it
	p.AssertNotCalled(t, "Text", "color", mock.Anything)

	want := map[string]interface{}{"name": "from-explicit", "color": "blue", "size": "large"}
	assert.Equal(t, want, toMap(got))
}

func TestResolve_AskIfSkipsSourcesAndPrompt(t *testing.T) {
	set := types.QuestionSet{
		{Key: "use_db", Type: types.QuestionTypeBool},
		{Key: "db_name", Type: types.QuestionTypeText, Default: "app_db", AskIf: "use_db"},
		{Key: "engine", Type: types.QuestionTypeText, Choices: []string{"pg", "mysql"}, Default: "mysql", AskIf: "use_db"},
	}

	src := answers.NewMapSource(answers.SourceExplicit, map[string]interface{}{"use_db": false, "db_name": "ignored"})
	p := &testutil.MockPrompter{}

	got, err := newEngine(p, true).Resolve(set, src)
	require.NoError(t, err)
	p.AssertExpectations(t)

	want := map[string]interface{}{"use_db": false, "db_name": "app_db", "engine": 1}
	assert.Equal(t, want, toMap(got))
}

func TestResolve_SkippedChoicesStoreResolvedDefault(t *testing.T) {
	set := types.QuestionSet{
		{Key: "extras", Type: types.QuestionTypeBool},
		{Key: "license", Choices: []string{"MIT", "BSD", "GPL"}, Default: "GPL", AskIf: "extras"},
		{Key: "ci", Choices: []string{"lint", "test", "release"}, Multiselect: true,
			Default: []interface{}{"test", "release"}, AskIf: "extras"},
		{Key: "unknown_default", Choices: []string{"a", "b"}, Default: "z", AskIf: "extras"},
	}

	src := answers.NewMapSource(answers.SourceExplicit, map[string]interface{}{"extras": false, "license": "MIT"})
	got, err := newEngine(nil, false).Resolve(set, src)
	require.NoError(t, err)

	want := map[string]interface{}{
		"extras":          false,
		"license":         2,
		"ci":              []bool{false, true, true},
		"unknown_default": 0,
	}
	if diff := cmp.Diff(want, toMap(got)); diff != "" {
		t.Errorf("skipped answers mismatch (-want +got):\n%s", diff)
	}

	// Asked but unanswered questions still store labels.
	asked, err := newEngine(nil, false).Resolve(set, answers.NewMapSource(answers.SourceExplicit, map[string]interface{}{"extras": true}))
	require.NoError(t, err)
	assert.Equal(t, "GPL", toMap(asked)["license"])
	assert.Equal(t, []string{"test", "release"}, toMap(asked)["ci"])
}

func TestResolve_MalformedExpressionsDegrade(t *testing.T) {
	set := types.QuestionSet{
		{Key: "a", Type: types.QuestionTypeText, Default: "{% if %}", Help: "{{ broken", AskIf: "=="},
	}

	p := &testutil.MockPrompter{}
	p.On("Text", "{{ broken", "").Return("ok", nil)

	got, err := newEngine(p, true).Resolve(set)
	require.NoError(t, err)
	p.AssertExpectations(t)
	v, _ := got.Get("a")
	assert.Equal(t, "ok", v)
}

func TestResolve_PromptKinds(t *testing.T) {
	set := types.QuestionSet{
		{Key: "license", Type: types.QuestionTypeText, Choices: []string{"MIT", "BSD"}, Default: "BSD"},
		{Key: "langs", Type: types.QuestionTypeText, Choices: []string{"go", "rust"}, Multiselect: true, Default: []interface{}{"rust"}},
		{Key: "docker", Type: types.QuestionTypeBool, Default: "yes"},
	}

	p := &testutil.MockPrompter{}
	p.On("Select", "license", []string{"MIT", "BSD"}, 1).Return("MIT", nil)
	p.On("MultiSelect", "langs", []string{"go", "rust"}, []bool{false, true}).Return([]string{"go", "rust"}, nil)
	p.On("Confirm", "docker", true).Return(false, nil)

	got, err := newEngine(p, true).Resolve(set)
	require.NoError(t, err)
	p.AssertExpectations(t)

	assert.Equal(t, map[string]interface{}{
		"license": "MIT",
		"langs":   []string{"go", "rust"},
		"docker":  false,
	}, toMap(got))
}

func TestResolve_NonInteractiveUsesAnswerShapedDefaults(t *testing.T) {
	set := types.QuestionSet{
		{Key: "name", Type: types.QuestionTypeText, Default: "demo"},
		{Key: "title", Type: types.QuestionTypeText, Default: "{{ name|upper }}"},
		{Key: "license", Type: types.QuestionTypeText, Choices: []string{"MIT", "BSD"}, Default: "unknown"},
		{Key: "langs", Type: types.QuestionTypeText, Choices: []string{"go", "rust"}, Multiselect: true, Default: map[string]interface{}{"go": true}},
		{Key: "docker", Type: types.QuestionTypeBool, Default: float64(1)},
		{Key: "count", Type: types.QuestionTypeText, Default: 3},
	}

	got, err := newEngine(nil, false).Resolve(set)
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{
		"name":    "demo",
		"title":   "DEMO",
		"license": "MIT",
		"langs":   []string{"go"},
		"docker":  true,
		"count":   "",
	}, toMap(got))
}

func TestResolve_SecretConfirmation(t *testing.T) {
	set := types.QuestionSet{
		{Key: "password", Type: types.QuestionTypeText, Secret: &types.Secret{Confirm: true, MismatchError: "no match"}},
	}

	t.Run("mismatch then match", func(t *testing.T) {
		p := &testutil.MockPrompter{}
		p.On("Secret", "password").Return("one", nil).Once()
		p.On("Secret", "password (confirm)").Return("two", nil).Once()
		p.On("ShowError", "no match").Return().Once()
		p.On("Secret", "password").Return("good", nil).Once()
		p.On("Secret", "password (confirm)").Return("good", nil).Once()

		got, err := newEngine(p, true).Resolve(set)
		require.NoError(t, err)
		p.AssertExpectations(t)
		v, _ := got.Get("password")
		assert.Equal(t, "good", v)
	})

	t.Run("never matches", func(t *testing.T) {
		p := &testutil.MockPrompter{}
		p.On("Secret", "password").Return("a", nil)
		p.On("Secret", "password (confirm)").Return("b", nil)
		p.On("ShowError", "no match").Return()

		_, err := newEngine(p, true).Resolve(set)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrValidation))
		assert.Equal(t, errors.CategoryValidation, errors.Category(err))
		p.AssertNumberOfCalls(t, "ShowError", 3)
	})
}

func TestResolve_Validation(t *testing.T) {
	set := types.QuestionSet{
		{Key: "port", Type: types.QuestionTypeText, Default: "8080",
			Validation: &types.Validation{Condition: "port|length == 4", ErrorMessage: "four digits"}},
	}

	t.Run("re-prompts on failure", func(t *testing.T) {
		p := &testutil.MockPrompter{}
		p.On("Text", "port", "8080").Return("80", nil).Once()
		p.On("ShowError", "four digits").Return().Once()
		p.On("Text", "port", "8080").Return("9000", nil).Once()

		got, err := newEngine(p, true).Resolve(set)
		require.NoError(t, err)
		p.AssertExpectations(t)
		v, _ := got.Get("port")
		assert.Equal(t, "9000", v)
	})

	t.Run("source value failing is fatal", func(t *testing.T) {
		src := answers.NewMapSource(answers.SourceExplicit, map[string]interface{}{"port": "1"})
		_, err := newEngine(nil, false).Resolve(set, src)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrValidation))
		assert.Equal(t, answers.SourceExplicit, errors.GetErrorDetails(err)["origin"])
	})
}

func TestResolve_PromptFailureIsFatal(t *testing.T) {
	set := types.QuestionSet{{Key: "name", Type: types.QuestionTypeText}}

	p := &testutil.MockPrompter{}
	p.On("Text", "name", "").Return("", assert.AnError)

	_, err := newEngine(p, true).Resolve(set)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPrompt))
}
